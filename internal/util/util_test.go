package util

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Go Basics", "go-basics"},
		{"  Channels & Goroutines  ", "channels-and-goroutines"},
		{"Café au lait", "cafe-au-lait"},
		{"!!!", "quiz"},
		{"", "quiz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), tt.title)
	}
	assert.Equal(t, "go-basics-3", SuffixSlug("go-basics", 3))
}

func TestSlugify_LongTitle(t *testing.T) {
	words := Slugify(strings.Repeat("word ", 48))
	assert.Len(t, words, 189)
	assert.True(t, strings.HasSuffix(words, "-word"), "cut at a word boundary")

	solid := Slugify(strings.Repeat("a", 440))
	assert.Len(t, solid, MaxSlugBase)

	assert.LessOrEqual(t, len(SuffixSlug(solid, maxSuffixForTest)), 200)
}

const maxSuffixForTest = 100

func TestNewULID(t *testing.T) {
	prev := NewULID()
	for i := 0; i < 100; i++ {
		id := NewULID()
		assert.True(t, IsULID(id))
		assert.Greater(t, id, prev, "ids must increase")
		prev = id
	}
	assert.False(t, IsULID("not-a-ulid"))
	assert.False(t, IsULID(""))
}

func TestNullHelpers(t *testing.T) {
	assert.Equal(t, sql.NullString{}, StringToNullString(""))
	assert.Equal(t, sql.NullString{String: "x", Valid: true}, StringToNullString("x"))
	assert.Equal(t, sql.NullInt64{}, IntToNullInt64(2, false))
	assert.Equal(t, sql.NullInt64{Int64: 2, Valid: true}, IntToNullInt64(2, true))
}
