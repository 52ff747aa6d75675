package domain

import (
	"strings"
	"time"
)

// Filter is a named keyword rule owned by a subscriber. NewsStories is a derived cache,
// recomputed on every refresh.
type Filter struct {
	Name             string    `json:"name"`
	KeyWords         []string  `json:"keyWords"`
	EnableAlert      bool      `json:"enableAlert"`
	AlertFrequency   int       `json:"alertFrequency"`
	EnableAutoDelete bool      `json:"enableAutoDelete"`
	DeleteTime       time.Time `json:"deleteTime"`
	TimeOfLastScan   time.Time `json:"timeOfLastScan"`
	NewsStories      []Story   `json:"newsStories"`
}

// HasKeywords reports whether the filter has anything to match on.
// An empty list and a list whose first entry is the empty string both count as no keywords.
func (f Filter) HasKeywords() bool {
	return len(f.KeyWords) > 0 && f.KeyWords[0] != ""
}

// Subscriber owns an ordered list of filters
type Subscriber struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Filters     []Filter  `json:"newsFilters"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DefaultFilter returns the filter every new subscriber starts with
func DefaultFilter() Filter {
	return Filter{
		Name:        "Technology Companies",
		KeyWords:    []string{"Apple", "Microsoft", "IBM", "Amazon", "Google", "Intel"},
		NewsStories: []Story{},
	}
}

// MatchKeywords returns the keywords to match on, trimmed, with empty entries dropped.
// The stored keyword list is not changed.
func (f Filter) MatchKeywords() []string {
	if !f.HasKeywords() {
		return nil
	}
	res := make([]string, 0, len(f.KeyWords))
	for _, k := range f.KeyWords {
		if k = strings.TrimSpace(k); k != "" {
			res = append(res, k)
		}
	}
	return res
}
