package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newswatcher/pkg/domain"
)

// DefaultNYTBaseURL is the top stories endpoint
const DefaultNYTBaseURL = "https://api.nytimes.com/svc/topstories/v2"

// NYTProvider fetches top stories from the New York Times API
type NYTProvider struct {
	baseURL string
	getter  httpGetter
}

// NYTParams configures NYTProvider
type NYTParams struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	UserAgent string
}

// nytResponse is the part of the top stories document we use
type nytResponse struct {
	Status  string      `json:"status"`
	Results []nytResult `json:"results"`
}

type nytResult struct {
	URL         string          `json:"url"`
	Title       string          `json:"title"`
	Abstract    string          `json:"abstract"`
	Section     string          `json:"section"`
	UpdatedDate string          `json:"updated_date"`
	Multimedia  json.RawMessage `json:"multimedia"` // array, but the API sends "" or null when empty
}

type nytMedia struct {
	URL string `json:"url"`
}

// NewNYTProvider makes a provider for the top stories API
func NewNYTProvider(params NYTParams) *NYTProvider {
	if params.BaseURL == "" {
		params.BaseURL = DefaultNYTBaseURL
	}
	return &NYTProvider{
		baseURL: strings.TrimSuffix(params.BaseURL, "/"),
		getter:  newHTTPGetter(params.Timeout, params.UserAgent, map[string]string{"api-key": params.APIKey}),
	}
}

// Fetch gets one category. A body that isn't a JSON document with results is ErrMalformed,
// individual results missing a link or title are skipped.
func (p *NYTProvider) Fetch(ctx context.Context, category string) ([]domain.Story, error) {
	body, err := p.getter.get(ctx, fmt.Sprintf("%s/%s.json", p.baseURL, category), "application/json")
	if err != nil {
		return nil, fmt.Errorf("fetch category %s: %w", category, err)
	}
	defer body.Close()

	var resp nytResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("decode category %s: %w: %v", category, ErrMalformed, err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("category %s has no results: %w", category, ErrMalformed)
	}

	res := make([]domain.Story, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.URL == "" || r.Title == "" {
			lgr.Printf("[DEBUG] skip incomplete result in %s: %q", category, r.Title)
			continue
		}
		s := domain.Story{
			Link:           r.URL,
			Title:          cleanText(r.Title),
			ContentSnippet: cleanText(r.Abstract),
			Source:         r.Section,
			ImageURL:       firstImage(r.Multimedia),
		}
		if r.UpdatedDate != "" {
			if ts, err := time.Parse(time.RFC3339, r.UpdatedDate); err == nil {
				s.Date = ts
			}
		}
		res = append(res, s)
	}
	return res, nil
}

// firstImage returns the url of the first multimedia element, if any
func firstImage(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return ""
	}
	var media []nytMedia
	if err := json.Unmarshal(raw, &media); err != nil || len(media) == 0 {
		return ""
	}
	return media[0].URL
}
