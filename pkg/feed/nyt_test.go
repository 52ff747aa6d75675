package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nytBody = `{
  "status": "OK",
  "section": "technology",
  "results": [
    {
      "section": "technology",
      "title": "Amazon expands <b>cloud</b>",
      "abstract": "The company &amp; its partners said on Monday.",
      "url": "https://www.nytimes.com/2024/05/01/technology/amazon-cloud.html",
      "updated_date": "2024-05-01T10:15:00-04:00",
      "multimedia": [{"url": "https://static01.nyt.com/images/a.jpg"}, {"url": "https://static01.nyt.com/images/b.jpg"}]
    },
    {
      "section": "technology",
      "title": "No pictures here",
      "abstract": "Plain abstract",
      "url": "https://www.nytimes.com/2024/05/01/technology/plain.html",
      "updated_date": "not a date",
      "multimedia": ""
    },
    {
      "section": "technology",
      "title": "",
      "url": "https://www.nytimes.com/empty-title.html",
      "multimedia": null
    }
  ]
}`

func TestNYTProvider_Fetch(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(nytBody))
	}))
	defer srv.Close()

	p := NewNYTProvider(NYTParams{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: time.Second})
	stories, err := p.Fetch(context.Background(), "technology")
	require.NoError(t, err)
	assert.Equal(t, "/technology.json", gotPath)
	assert.Equal(t, "secret", gotKey)

	require.Len(t, stories, 2)
	s := stories[0]
	assert.Equal(t, "Amazon expands cloud", s.Title)
	assert.Equal(t, "The company & its partners said on Monday.", s.ContentSnippet)
	assert.Equal(t, "technology", s.Source)
	assert.Equal(t, "https://www.nytimes.com/2024/05/01/technology/amazon-cloud.html", s.Link)
	assert.Equal(t, "https://static01.nyt.com/images/a.jpg", s.ImageURL)
	assert.Equal(t, int64(1714572900), s.Date.Unix())
	assert.Empty(t, s.StoryID, "identity assigned by catalog builder")

	assert.Empty(t, stories[1].ImageURL)
	assert.True(t, stories[1].Date.IsZero())
}

func TestNYTProvider_FetchErrors(t *testing.T) {
	t.Run("status error is not malformed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()
		_, err := NewNYTProvider(NYTParams{BaseURL: srv.URL, Timeout: time.Second}).Fetch(context.Background(), "home")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMalformed)
		assert.Contains(t, err.Error(), "unexpected status code: 429")
	})

	t.Run("not json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html>oops</html>"))
		}))
		defer srv.Close()
		_, err := NewNYTProvider(NYTParams{BaseURL: srv.URL, Timeout: time.Second}).Fetch(context.Background(), "home")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("json without results", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ERROR"}`))
		}))
		defer srv.Close()
		_, err := NewNYTProvider(NYTParams{BaseURL: srv.URL, Timeout: time.Second}).Fetch(context.Background(), "home")
		require.ErrorIs(t, err, ErrMalformed)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(nytBody))
		}))
		defer srv.Close()
		_, err := NewNYTProvider(NYTParams{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}).Fetch(context.Background(), "home")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrMalformed)
	})
}

func TestNewNYTProvider_DefaultURL(t *testing.T) {
	p := NewNYTProvider(NYTParams{})
	assert.Equal(t, DefaultNYTBaseURL, p.baseURL)
}
