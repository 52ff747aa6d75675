package catalog

import (
	"context"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newswatcher/pkg/domain"
)

// Builder turns the categories fetched in one cycle into a complete catalog replacement
type Builder struct {
	hasher *Hasher
	now    func() time.Time
}

// NewBuilder makes a catalog builder using the given identity hasher
func NewBuilder(hasher *Hasher) *Builder {
	return &Builder{hasher: hasher, now: time.Now}
}

// Build assigns identities to all image-bearing stories, merges them in fetch order and
// derives the home subset from the stories admitted out of the first category.
// The previous catalog is not consulted, stories not fetched again are dropped.
// Version is left for the store to assign.
func (b *Builder) Build(ctx context.Context, batches []domain.CategoryStories) (domain.Catalog, error) {
	candidates := make([]domain.Story, 0)
	firstCategory := make(map[string]bool) // story ids seen in the first category
	for i, batch := range batches {
		for _, s := range batch.Stories {
			if err := ctx.Err(); err != nil {
				return domain.Catalog{}, err
			}
			if !s.HasImage() {
				continue
			}
			s.StoryID = b.hasher.StoryID(s.Link)
			candidates = append(candidates, s)
			if i == 0 {
				firstCategory[s.StoryID] = true
			}
		}
	}

	stories := Merge(candidates)
	home := make([]domain.Story, 0)
	for _, s := range stories {
		if firstCategory[s.StoryID] {
			home = append(home, s)
		}
	}

	lgr.Printf("[DEBUG] catalog built from %d candidates, %d stories, %d home stories",
		len(candidates), len(stories), len(home))

	return domain.Catalog{
		NewsStories:     stories,
		HomeNewsStories: home,
		UpdatedAt:       b.now(),
	}, nil
}

// Merge admits candidates in order, rejecting any whose identity or title was already admitted.
// First seen wins.
func Merge(candidates []domain.Story) []domain.Story {
	res := make([]domain.Story, 0, len(candidates))
	ids := make(map[string]struct{}, len(candidates))
	titles := make(map[string]struct{}, len(candidates))
	for _, s := range candidates {
		if _, ok := ids[s.StoryID]; ok {
			continue
		}
		if _, ok := titles[s.Title]; ok {
			continue
		}
		ids[s.StoryID] = struct{}{}
		titles[s.Title] = struct{}{}
		res = append(res, s)
	}
	return res
}
