package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		Venue{Key: "markthalle", Name: "Markthalle"},
		Venue{Key: "burgerlich", Name: "Burgerlich"},
		Venue{Key: "pho", Name: "Pho Saigon"},
	)
	require.NoError(t, err)
	return c
}

func TestLookup(t *testing.T) {
	c := testCatalog(t)

	name, ok := c.Lookup("burgerlich")
	assert.True(t, ok)
	assert.Equal(t, "Burgerlich", name)

	name, ok = c.Lookup("kebab")
	assert.False(t, ok)
	assert.Empty(t, name)
}

func TestEntries_DefinitionOrder(t *testing.T) {
	c := testCatalog(t)

	// Not sorted: definition order wins.
	assert.Equal(t, []string{"markthalle", "burgerlich", "pho"}, c.Keys())

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Venue{Key: "pho", Name: "Pho Saigon"}, entries[2])
}

func TestEntries_ReturnsCopy(t *testing.T) {
	c := testCatalog(t)

	entries := c.Entries()
	entries[0].Name = "Changed"

	name, _ := c.Lookup("markthalle")
	assert.Equal(t, "Markthalle", name)
}

func TestIndex(t *testing.T) {
	c := testCatalog(t)

	i, ok := c.Index("pho")
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = c.Index("missing")
	assert.False(t, ok)
	assert.True(t, c.Contains("markthalle"))
	assert.False(t, c.Contains("missing"))
	assert.Equal(t, 3, c.Len())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		venues []Venue
		want   error
	}{
		{"no venues", nil, ErrNoVenues},
		{"empty key", []Venue{{Key: "", Name: "X"}}, ErrEmptyKey},
		{"empty name", []Venue{{Key: "x", Name: ""}}, ErrEmptyName},
		{"duplicate", []Venue{{Key: "x", Name: "X"}, {Key: "x", Name: "Y"}}, ErrDuplicateKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.venues...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew() })
}
