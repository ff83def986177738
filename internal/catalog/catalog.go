package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyKey indicates a venue without a key.
	ErrEmptyKey = errors.New("venue key is empty")

	// ErrEmptyName indicates a venue without a display name.
	ErrEmptyName = errors.New("venue name is empty")

	// ErrDuplicateKey indicates two venues sharing one key.
	ErrDuplicateKey = errors.New("duplicate venue key")

	// ErrNoVenues indicates a catalog with no venues at all.
	ErrNoVenues = errors.New("catalog has no venues")
)

// Venue is a selectable lunch place.
// Key is stable and used both as the form field name and the storage key.
type Venue struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`
}

// Catalog is an immutable, ordered set of venues.
type Catalog struct {
	venues []Venue
	index  map[string]int
}

// New builds a Catalog from venues in the given order.
// Keys must be non-empty and unique; names must be non-empty.
func New(venues ...Venue) (*Catalog, error) {
	if len(venues) == 0 {
		return nil, ErrNoVenues
	}

	c := &Catalog{
		venues: make([]Venue, len(venues)),
		index:  make(map[string]int, len(venues)),
	}
	for i, v := range venues {
		if v.Key == "" {
			return nil, fmt.Errorf("venue %d: %w", i, ErrEmptyKey)
		}
		if v.Name == "" {
			return nil, fmt.Errorf("venue %q: %w", v.Key, ErrEmptyName)
		}
		if _, exists := c.index[v.Key]; exists {
			return nil, fmt.Errorf("venue %q: %w", v.Key, ErrDuplicateKey)
		}
		c.venues[i] = v
		c.index[v.Key] = i
	}

	return c, nil
}

// MustNew is like New but panics on error. Intended for tests and
// package-level fixtures built from literals.
func MustNew(venues ...Venue) *Catalog {
	c, err := New(venues...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the display name for key.
// ok is false if the key is not in the catalog.
func (c *Catalog) Lookup(key string) (name string, ok bool) {
	i, ok := c.index[key]
	if !ok {
		return "", false
	}
	return c.venues[i].Name, true
}

// Contains reports whether key is in the catalog.
func (c *Catalog) Contains(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Index returns the definition position of key.
func (c *Catalog) Index(key string) (int, bool) {
	i, ok := c.index[key]
	return i, ok
}

// Entries returns all venues in definition order.
// The returned slice is a copy; callers may modify it.
func (c *Catalog) Entries() []Venue {
	out := make([]Venue, len(c.venues))
	copy(out, c.venues)
	return out
}

// Keys returns all venue keys in definition order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.venues))
	for i, v := range c.venues {
		keys[i] = v.Key
	}
	return keys
}

// Len returns the number of venues.
func (c *Catalog) Len() int {
	return len(c.venues)
}
