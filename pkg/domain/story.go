package domain

import "time"

// Story represents a single news story as held in the catalog and in filter results
type Story struct {
	StoryID        string    `json:"storyID"`
	Title          string    `json:"title"`
	Link           string    `json:"link"`
	Source         string    `json:"source"`
	ContentSnippet string    `json:"contentSnippet"`
	Date           time.Time `json:"date"`
	ImageURL       string    `json:"imageUrl,omitempty"`
}

// HasImage reports whether the story carries an image, only such stories are kept in the catalog
func (s Story) HasImage() bool {
	return s.ImageURL != ""
}

// Catalog is the global, deduplicated set of known stories.
// Version is bumped every time a fetch cycle replaces the catalog.
type Catalog struct {
	Version         int64     `json:"version"`
	NewsStories     []Story   `json:"newsStories"`
	HomeNewsStories []Story   `json:"homeNewsStories"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CategoryStories is a batch of candidate stories fetched for one upstream category
type CategoryStories struct {
	Category string
	Stories  []Story
}

// CopyStories returns a structural copy of the given stories
func CopyStories(stories []Story) []Story {
	if stories == nil {
		return nil
	}
	res := make([]Story, len(stories))
	copy(res, stories)
	return res
}
