package validation

import (
	"strings"
	"testing"

	"quizbook/internal/domain"
	"quizbook/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateQuizID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateQuizID(util.NewULID()))
	require.Len(t, v.ValidateQuizID(""), 1)
	assert.Equal(t, "is required", v.ValidateQuizID(" ")[0].Message)
	assert.Contains(t, v.ValidateQuizID("42")[0].Message, "invalid format")
}

func TestValidateSlug(t *testing.T) {
	v := NewValidator()

	for _, ok := range []string{"go-basics", "go_basics", "Go2", "go-basics-2"} {
		assert.Empty(t, v.ValidateSlug(ok), ok)
	}
	for _, bad := range []string{"", "go basics", "go/basics", "../etc", strings.Repeat("a", 201)} {
		errs := v.ValidateSlug(bad)
		require.Len(t, errs, 1, bad)
		assert.Equal(t, "slug", errs[0].Field)
	}
}

func TestValidateCheckRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateCheckRequest("p1", map[string]*domain.Answer{
		"q1": {OptionID: "o1"},
		"q2": nil,
		"q3": {Texts: map[int]string{0: "a", 1: "b"}},
	}))
	assert.Empty(t, v.ValidateCheckRequest("p1", map[string]*domain.Answer{}))

	errs := v.ValidateCheckRequest("", nil)
	require.Len(t, errs, 2)
	assert.Equal(t, "page_id", errs[0].Field)
	assert.Equal(t, "answers", errs[1].Field)

	errs = v.ValidateCheckRequest("p1", map[string]*domain.Answer{
		"q1": {Texts: map[int]string{-1: "x"}, Selections: map[int]string{-2: "o"}},
	})
	require.Len(t, errs, 2)
	assert.Equal(t, "answers.q1.texts", errs[0].Field)
	assert.Equal(t, "answers.q1.selections", errs[1].Field)
}
