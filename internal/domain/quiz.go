package domain

import (
	"time"
)

// PageType tags a page with the kind of questions it holds.
type PageType string

const (
	PageTypeSingle     PageType = "single"
	PageTypeMultiple   PageType = "multiple"
	PageTypeInput      PageType = "input"
	PageTypeSelectGaps PageType = "select_gaps"
)

// Valid reports whether t is one of the known page types.
func (t PageType) Valid() bool {
	switch t {
	case PageTypeSingle, PageTypeMultiple, PageTypeInput, PageTypeSelectGaps:
		return true
	}
	return false
}

// IsChoice reports whether the page is answered by picking options.
func (t PageType) IsChoice() bool {
	return t == PageTypeSingle || t == PageTypeMultiple
}

// HasGaps reports whether options on this page type are bound to a gap.
func (t PageType) HasGaps() bool {
	return t == PageTypeInput || t == PageTypeSelectGaps
}

// TheoryType tags a theory block.
type TheoryType string

const (
	TheoryTypeText  TheoryType = "text"
	TheoryTypeImage TheoryType = "image"
)

// Valid reports whether t is one of the known theory block types.
func (t TheoryType) Valid() bool {
	return t == TheoryTypeText || t == TheoryTypeImage
}

// Quiz is the root of a quiz tree.
type Quiz struct {
	ID           string         `json:"id" yaml:"id,omitempty"`
	Title        string         `json:"title" yaml:"title"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Slug         string         `json:"slug" yaml:"slug,omitempty"`
	CreatedAt    time.Time      `json:"created_at" yaml:"-"`
	Pages        []*Page        `json:"pages" yaml:"pages"`
	TheoryBlocks []*TheoryBlock `json:"theory_blocks" yaml:"theory_blocks,omitempty"`

	// LegacyQuestions holds questions attached directly to the quiz by the
	// flat schema (no page). They are read-only and scored as single choice.
	LegacyQuestions []*Question `json:"legacy_questions,omitempty" yaml:"-"`
}

// Page is a quiz subdivision with one question type.
type Page struct {
	ID         string      `json:"id" yaml:"id,omitempty"`
	QuizID     string      `json:"quiz_id" yaml:"-"`
	Type       PageType    `json:"type" yaml:"type"`
	Title      string      `json:"title,omitempty" yaml:"title,omitempty"`
	OrderIndex int         `json:"order_index" yaml:"-"`
	Questions  []*Question `json:"questions" yaml:"questions"`
}

// Question belongs to a page. Title is the question template and may contain
// gap tokens.
type Question struct {
	ID          string    `json:"id" yaml:"id,omitempty"`
	PageID      string    `json:"page_id,omitempty" yaml:"-"`
	QuizID      string    `json:"quiz_id,omitempty" yaml:"-"`
	Title       string    `json:"title" yaml:"title"`
	Explanation string    `json:"explanation,omitempty" yaml:"explanation,omitempty"`
	OrderIndex  int       `json:"order_index" yaml:"-"`
	Options     []*Option `json:"options" yaml:"options"`
}

// Option is an answer option. GapIndex is 0 when the option answers the
// first (or only) gap; choice pages ignore it.
type Option struct {
	ID         string `json:"id" yaml:"id,omitempty"`
	QuestionID string `json:"question_id" yaml:"-"`
	Text       string `json:"text" yaml:"text"`
	IsCorrect  bool   `json:"is_correct" yaml:"is_correct"`
	GapIndex   int    `json:"gap_index" yaml:"gap_index,omitempty"`
	OrderIndex int    `json:"order_index" yaml:"-"`
}

// TheoryBlock is a text or image unit shown alongside a quiz.
type TheoryBlock struct {
	ID         string     `json:"id" yaml:"id,omitempty"`
	QuizID     string     `json:"quiz_id" yaml:"-"`
	Type       TheoryType `json:"type" yaml:"type"`
	Content    string     `json:"content" yaml:"content"`
	OrderIndex int        `json:"order_index" yaml:"-"`
}

// PageByID returns the page with the given id, or nil.
func (q *Quiz) PageByID(id string) *Page {
	for _, p := range q.Pages {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ImageBlocks returns the image theory blocks of the quiz.
func (q *Quiz) ImageBlocks() []*TheoryBlock {
	var out []*TheoryBlock
	for _, b := range q.TheoryBlocks {
		if b.Type == TheoryTypeImage {
			out = append(out, b)
		}
	}
	return out
}

// OptionsForGap returns the options bound to gap g.
func (q *Question) OptionsForGap(g int) []*Option {
	var out []*Option
	for _, o := range q.Options {
		if o.GapIndex == g {
			out = append(out, o)
		}
	}
	return out
}

// CorrectOptions returns the options flagged correct.
func (q *Question) CorrectOptions() []*Option {
	var out []*Option
	for _, o := range q.Options {
		if o.IsCorrect {
			out = append(out, o)
		}
	}
	return out
}
