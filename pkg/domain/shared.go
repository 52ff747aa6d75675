package domain

import "time"

// Comment is a single discussion entry on a shared item
type Comment struct {
	DisplayName string    `json:"displayName"`
	UserID      int64     `json:"userId"`
	DateTime    time.Time `json:"dateTime"`
	Comment     string    `json:"comment"`
}

// SharedItem is a story shared for discussion. It is retired by the retention sweep.
type SharedItem struct {
	ID       string    `json:"id"`
	Story    Story     `json:"story"`
	Comments []Comment `json:"comments"`
}

// SharedAt returns the time the item was shared, taken from the first comment.
// Items without comments report zero time.
func (s SharedItem) SharedAt() time.Time {
	if len(s.Comments) == 0 {
		return time.Time{}
	}
	return s.Comments[0].DateTime
}
