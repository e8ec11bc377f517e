package domain

import "sort"

// TreeRows holds the flat rows of one or more quiz trees as returned by
// batched child queries.
type TreeRows struct {
	Pages           []*Page
	Questions       []*Question
	LegacyQuestions []*Question
	Options         []*Option
	TheoryBlocks    []*TheoryBlock
}

// AssembleTree attaches the rows to their parents and orders every level by
// order index. Rows whose parent is not part of quizzes are dropped.
// Option order is the row order returned by the store.
func AssembleTree(quizzes []*Quiz, rows TreeRows) {
	optionsByQuestion := make(map[string][]*Option)
	for _, o := range rows.Options {
		optionsByQuestion[o.QuestionID] = append(optionsByQuestion[o.QuestionID], o)
	}

	questionsByPage := make(map[string][]*Question)
	for _, opts := range optionsByQuestion {
		sort.SliceStable(opts, func(i, j int) bool { return opts[i].OrderIndex < opts[j].OrderIndex })
	}

	for _, q := range rows.Questions {
		q.Options = nonNilOptions(optionsByQuestion[q.ID])
		questionsByPage[q.PageID] = append(questionsByPage[q.PageID], q)
	}

	pagesByQuiz := make(map[string][]*Page)
	for _, p := range rows.Pages {
		p.Questions = questionsByPage[p.ID]
		sortQuestions(p.Questions)
		if p.Questions == nil {
			p.Questions = []*Question{}
		}
		pagesByQuiz[p.QuizID] = append(pagesByQuiz[p.QuizID], p)
	}

	legacyByQuiz := make(map[string][]*Question)
	for _, q := range rows.LegacyQuestions {
		q.Options = nonNilOptions(optionsByQuestion[q.ID])
		legacyByQuiz[q.QuizID] = append(legacyByQuiz[q.QuizID], q)
	}

	blocksByQuiz := make(map[string][]*TheoryBlock)
	for _, b := range rows.TheoryBlocks {
		blocksByQuiz[b.QuizID] = append(blocksByQuiz[b.QuizID], b)
	}

	for _, quiz := range quizzes {
		quiz.Pages = pagesByQuiz[quiz.ID]
		sort.SliceStable(quiz.Pages, func(i, j int) bool {
			return quiz.Pages[i].OrderIndex < quiz.Pages[j].OrderIndex
		})
		if quiz.Pages == nil {
			quiz.Pages = []*Page{}
		}

		quiz.LegacyQuestions = legacyByQuiz[quiz.ID]
		sortQuestions(quiz.LegacyQuestions)

		quiz.TheoryBlocks = blocksByQuiz[quiz.ID]
		sort.SliceStable(quiz.TheoryBlocks, func(i, j int) bool {
			return quiz.TheoryBlocks[i].OrderIndex < quiz.TheoryBlocks[j].OrderIndex
		})
		if quiz.TheoryBlocks == nil {
			quiz.TheoryBlocks = []*TheoryBlock{}
		}
	}
}

// LegacyPage wraps the legacy flat question list into a single-choice page
// so it can be scored with ScorePage. It returns nil when there are none.
func (q *Quiz) LegacyPage() *Page {
	if len(q.LegacyQuestions) == 0 {
		return nil
	}
	return &Page{ID: q.ID, QuizID: q.ID, Type: PageTypeSingle, Questions: q.LegacyQuestions}
}

func sortQuestions(qs []*Question) {
	sort.SliceStable(qs, func(i, j int) bool { return qs[i].OrderIndex < qs[j].OrderIndex })
}

func nonNilOptions(opts []*Option) []*Option {
	if opts == nil {
		return []*Option{}
	}
	return opts
}
