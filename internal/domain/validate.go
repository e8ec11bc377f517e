package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTitleLength matches the width of the quizzes.title column.
const MaxTitleLength = 500

// Validate checks the whole submitted tree and reports every structural
// problem with a field path. It performs no writes.
func (q *Quiz) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(q.Title) == "" {
		errs.add("title", "title is required")
	} else if n := utf8.RuneCountInString(q.Title); n > MaxTitleLength {
		errs.add("title", "title must be at most %d characters (got %d)", MaxTitleLength, n)
	}
	for i, p := range q.Pages {
		pf := fmt.Sprintf("pages[%d]", i)
		if p == nil {
			errs.add(pf, "page is empty")
			continue
		}
		if !p.Type.Valid() {
			errs.add(pf+".type", "unknown page type %q", p.Type)
			continue
		}
		for j, question := range p.Questions {
			errs = append(errs, ValidateQuestion(p.Type, question, fmt.Sprintf("%s.questions[%d]", pf, j))...)
		}
	}
	for i, b := range q.TheoryBlocks {
		bf := fmt.Sprintf("theory_blocks[%d]", i)
		if b == nil {
			errs.add(bf, "theory block is empty")
			continue
		}
		if !b.Type.Valid() {
			errs.add(bf+".type", "unknown theory block type %q", b.Type)
		}
		if strings.TrimSpace(b.Content) == "" {
			errs.add(bf+".content", "content is required")
		}
	}
	return errs.OrNil()
}

// ValidateQuestion checks one question against the rules of its page type.
// field prefixes every reported path.
func ValidateQuestion(pageType PageType, q *Question, field string) ValidationErrors {
	var errs ValidationErrors
	if q == nil {
		errs.add(field, "question is empty")
		return errs
	}
	if strings.TrimSpace(q.Title) == "" {
		errs.add(field+".title", "question text is required")
	}
	for i, o := range q.Options {
		if o == nil {
			errs.add(fmt.Sprintf("%s.options[%d]", field, i), "option is empty")
			return errs
		}
	}

	switch pageType {
	case PageTypeSingle, PageTypeMultiple:
		if len(q.Options) == 0 {
			errs.add(field+".options", "at least one option is required")
		}
	case PageTypeInput:
		gaps := GapCount(q.Title)
		for i, o := range q.Options {
			if NormalizeAnswer(o.Text) == "" {
				errs.add(fmt.Sprintf("%s.options[%d].text", field, i), "accepted answer must not be empty")
			}
			if o.GapIndex < 0 || o.GapIndex >= gaps {
				errs.add(fmt.Sprintf("%s.options[%d].gap_index", field, i), "gap index %d is out of range (question has %d gaps)", o.GapIndex, gaps)
			}
		}
		for g := 0; g < gaps; g++ {
			if len(q.OptionsForGap(g)) == 0 {
				errs.add(field+".options", "gap %d needs at least one accepted answer", g)
			}
		}
	case PageTypeSelectGaps:
		gaps := GapCount(q.Title)
		for i, o := range q.Options {
			if o.GapIndex < 0 || o.GapIndex >= gaps {
				errs.add(fmt.Sprintf("%s.options[%d].gap_index", field, i), "gap index %d is out of range (question has %d gaps)", o.GapIndex, gaps)
			}
		}
		for g := 0; g < gaps; g++ {
			opts := q.OptionsForGap(g)
			if len(opts) == 0 {
				errs.add(field+".options", "gap %d needs at least one option", g)
				continue
			}
			hasCorrect := false
			for _, o := range opts {
				hasCorrect = hasCorrect || o.IsCorrect
			}
			if !hasCorrect {
				errs.add(field+".options", "gap %d needs a correct option", g)
			}
		}
	}
	return errs
}
