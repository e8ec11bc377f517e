package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

// Answer is a respondent's submission for one question. Which fields are read
// depends on the page type:
//   - single: OptionID
//   - multiple: OptionIDs
//   - input: Text for gap 0 or Texts keyed by gap index
//   - select_gaps: Selections keyed by gap index (option id)
type Answer struct {
	OptionID   string         `json:"option_id,omitempty"`
	OptionIDs  []string       `json:"option_ids,omitempty"`
	Text       string         `json:"text,omitempty"`
	Texts      map[int]string `json:"texts,omitempty"`
	Selections map[int]string `json:"selections,omitempty"`
}

// QuestionResult is the outcome of scoring one question. Gaps is set for
// gap-bearing page types and holds one entry per gap.
type QuestionResult struct {
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
	Gaps       []bool `json:"gaps,omitempty"`
}

// PageScore is the page-level (correct, total) pair with per-question detail.
type PageScore struct {
	PageID  string           `json:"page_id"`
	Correct int              `json:"correct"`
	Total   int              `json:"total"`
	Results []QuestionResult `json:"results"`
}

var folder = cases.Fold()

// NormalizeAnswer trims surrounding whitespace and case-folds s.
func NormalizeAnswer(s string) string {
	return folder.String(strings.TrimSpace(s))
}

// ScoreQuestion computes correctness of a single question. It never mutates
// its inputs and never fails: malformed questions score as incorrect.
func ScoreQuestion(pageType PageType, q *Question, a *Answer) QuestionResult {
	res := QuestionResult{}
	if q == nil {
		return res
	}
	res.QuestionID = q.ID
	if pageType.HasGaps() {
		res.Gaps = make([]bool, GapCount(q.Title))
	}
	if len(q.Options) == 0 || a == nil {
		return res
	}

	switch pageType {
	case PageTypeSingle:
		res.Correct = scoreSingle(q, a)
	case PageTypeMultiple:
		res.Correct = scoreMultiple(q, a)
	case PageTypeInput:
		res.Correct = scoreGaps(res.Gaps, func(g int) bool { return inputGapCorrect(q, a, g) })
	case PageTypeSelectGaps:
		res.Correct = scoreGaps(res.Gaps, func(g int) bool { return selectGapCorrect(q, a, g) })
	}
	return res
}

// ScorePage scores every question on the page. Unanswered questions count as
// incorrect.
func ScorePage(p *Page, answers map[string]*Answer) PageScore {
	score := PageScore{PageID: p.ID, Total: len(p.Questions), Results: make([]QuestionResult, 0, len(p.Questions))}
	for _, q := range p.Questions {
		r := ScoreQuestion(p.Type, q, answers[q.ID])
		if r.Correct {
			score.Correct++
		}
		score.Results = append(score.Results, r)
	}
	return score
}

func scoreSingle(q *Question, a *Answer) bool {
	correct := q.CorrectOptions()
	if len(correct) != 1 || a.OptionID == "" {
		return false
	}
	return correct[0].ID == a.OptionID
}

func scoreMultiple(q *Question, a *Answer) bool {
	want := make(map[string]struct{})
	for _, o := range q.CorrectOptions() {
		want[o.ID] = struct{}{}
	}
	got := make(map[string]struct{}, len(a.OptionIDs))
	for _, id := range a.OptionIDs {
		got[id] = struct{}{}
	}
	if len(want) != len(got) {
		return false
	}
	for id := range got {
		if _, ok := want[id]; !ok {
			return false
		}
	}
	return true
}

func scoreGaps(gaps []bool, check func(g int) bool) bool {
	all := true
	for g := range gaps {
		gaps[g] = check(g)
		all = all && gaps[g]
	}
	return all
}

func inputGapCorrect(q *Question, a *Answer, g int) bool {
	submitted, ok := a.Texts[g]
	if !ok && g == 0 {
		submitted = a.Text
	}
	submitted = NormalizeAnswer(submitted)
	if submitted == "" {
		return false
	}
	for _, o := range q.OptionsForGap(g) {
		accepted := NormalizeAnswer(o.Text)
		if accepted != "" && accepted == submitted {
			return true
		}
	}
	return false
}

func selectGapCorrect(q *Question, a *Answer, g int) bool {
	selected := a.Selections[g]
	if selected == "" {
		return false
	}
	for _, o := range q.OptionsForGap(g) {
		if o.ID == selected {
			return o.IsCorrect
		}
	}
	return false
}
