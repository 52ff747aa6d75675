// Package catalog builds the global story catalog: it assigns stable identities to fetched
// stories, deduplicates them and derives the home-page subset.
package catalog

import (
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/argon2"
)

// HasherParams control the cost of the identity hash
type HasherParams struct {
	Salt     string
	Time     uint32
	MemoryKB uint32
	Threads  uint8
	KeyLen   uint32
}

// DefaultHasherParams returns production identity hash settings
func DefaultHasherParams() HasherParams {
	return HasherParams{Salt: "newswatcher", Time: 1, MemoryKB: 8 * 1024, Threads: 1, KeyLen: 24}
}

// Hasher computes story identities from links with a slow, salted hash.
// The salt is fixed, so the same link always maps to the same identity.
type Hasher struct {
	params HasherParams
}

// NewHasher makes a Hasher, zero params fall back to defaults
func NewHasher(params HasherParams) *Hasher {
	def := DefaultHasherParams()
	if params.Salt == "" {
		params.Salt = def.Salt
	}
	if params.Time == 0 {
		params.Time = def.Time
	}
	if params.MemoryKB == 0 {
		params.MemoryKB = def.MemoryKB
	}
	if params.Threads == 0 {
		params.Threads = def.Threads
	}
	if params.KeyLen == 0 {
		params.KeyLen = def.KeyLen
	}
	return &Hasher{params: params}
}

// StoryID returns a url-safe, fixed-length token for the link
func (h *Hasher) StoryID(link string) string {
	key := argon2.IDKey([]byte(link), []byte(h.params.Salt), h.params.Time, h.params.MemoryKB, h.params.Threads, h.params.KeyLen)
	return URLSafe(base64.StdEncoding.EncodeToString(key))
}

// URLSafe transliterates a standard base64 string into the url/filesystem safe alphabet:
// '+' becomes '-', '/' becomes '_' and trailing '=' padding is removed.
func URLSafe(s string) string {
	s = strings.ReplaceAll(s, "+", "-")
	s = strings.ReplaceAll(s, "/", "_")
	return strings.TrimRight(s, "=")
}
