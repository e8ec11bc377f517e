package service

import (
	"context"
	"fmt"

	"quizbook/internal/domain"
)

// LevelCounts counts the writes issued at one level of the quiz tree.
type LevelCounts struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
}

// AssetError reports a blob that could not be removed after a save.
type AssetError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// SaveResult summarizes one create, update or delete of a quiz tree.
type SaveResult struct {
	QuizID        string       `json:"quiz_id"`
	Slug          string       `json:"slug"`
	Quiz          LevelCounts  `json:"quiz"`
	Pages         LevelCounts  `json:"pages"`
	Questions     LevelCounts  `json:"questions"`
	Options       LevelCounts  `json:"options"`
	TheoryBlocks  LevelCounts  `json:"theory_blocks"`
	RemovedAssets []string     `json:"removed_assets,omitempty"`
	AssetErrors   []AssetError `json:"asset_errors,omitempty"`
}

// childLevel describes how to persist one level of the tree.
type childLevel[T any] struct {
	id      func(T) string
	resetID func(T)
	// prepare stamps parent id and position and validates the item before
	// any write for it.
	prepare func(item T, index int) error
	create  func(ctx context.Context, item T) error
	update  func(ctx context.Context, item T) error
	remove  func(ctx context.Context, id string) error
	// children reconciles the item's own children after it is written.
	children func(ctx context.Context, item T) error
}

// reconcileChildren syncs the persisted children of one parent with the
// desired list. Items whose id is among current are updated, the rest are
// inserted under a fresh id, and current items not kept are deleted.
func reconcileChildren[T any](ctx context.Context, lvl childLevel[T], current, desired []T, counts *LevelCounts) error {
	known := make(map[string]struct{}, len(current))
	for _, c := range current {
		known[lvl.id(c)] = struct{}{}
	}

	kept := make(map[string]struct{}, len(desired))
	for i, item := range desired {
		if lvl.prepare != nil {
			if err := lvl.prepare(item, i); err != nil {
				return err
			}
		}

		id := lvl.id(item)
		_, isKnown := known[id]
		_, isKept := kept[id]
		if id != "" && isKnown && !isKept {
			if err := lvl.update(ctx, item); err != nil {
				return err
			}
			counts.Updated++
		} else {
			lvl.resetID(item)
			if err := lvl.create(ctx, item); err != nil {
				return err
			}
			counts.Inserted++
		}
		kept[lvl.id(item)] = struct{}{}

		if lvl.children != nil {
			if err := lvl.children(ctx, item); err != nil {
				return err
			}
		}
	}

	for _, c := range current {
		id := lvl.id(c)
		if _, ok := kept[id]; ok {
			continue
		}
		if err := lvl.remove(ctx, id); err != nil {
			return err
		}
		counts.Deleted++
	}
	return nil
}

// treeReconciler writes a desired quiz tree over the existing one. It holds
// the existing tree indexed by id so each level sees only the current
// children of its own parent.
type treeReconciler struct {
	repo   domain.QuizRepository
	result *SaveResult

	pages     map[string]*domain.Page
	questions map[string]*domain.Question
}

func newTreeReconciler(repo domain.QuizRepository, existing *domain.Quiz, result *SaveResult) *treeReconciler {
	r := &treeReconciler{
		repo:      repo,
		result:    result,
		pages:     make(map[string]*domain.Page),
		questions: make(map[string]*domain.Question),
	}
	if existing != nil {
		for _, p := range existing.Pages {
			r.pages[p.ID] = p
			for _, q := range p.Questions {
				r.questions[q.ID] = q
			}
		}
	}
	return r
}

// reconcileQuiz syncs pages and theory blocks of quiz. existing is nil for a
// new quiz.
func (r *treeReconciler) reconcileQuiz(ctx context.Context, quiz, existing *domain.Quiz) error {
	var currentPages []*domain.Page
	var currentBlocks []*domain.TheoryBlock
	if existing != nil {
		currentPages = existing.Pages
		currentBlocks = existing.TheoryBlocks
	}

	if err := reconcileChildren(ctx, r.pageLevel(quiz.ID), currentPages, quiz.Pages, &r.result.Pages); err != nil {
		return err
	}
	return reconcileChildren(ctx, r.theoryLevel(quiz.ID), currentBlocks, quiz.TheoryBlocks, &r.result.TheoryBlocks)
}

func (r *treeReconciler) pageLevel(quizID string) childLevel[*domain.Page] {
	return childLevel[*domain.Page]{
		id:      func(p *domain.Page) string { return p.ID },
		resetID: func(p *domain.Page) { p.ID = "" },
		prepare: func(p *domain.Page, i int) error {
			p.QuizID = quizID
			p.OrderIndex = i
			return nil
		},
		create: r.repo.CreatePage,
		update: r.repo.UpdatePage,
		remove: r.repo.DeletePage,
		children: func(ctx context.Context, p *domain.Page) error {
			var current []*domain.Question
			if old, ok := r.pages[p.ID]; ok {
				current = old.Questions
			}
			return reconcileChildren(ctx, r.questionLevel(p), current, p.Questions, &r.result.Questions)
		},
	}
}

func (r *treeReconciler) questionLevel(page *domain.Page) childLevel[*domain.Question] {
	return childLevel[*domain.Question]{
		id:      func(q *domain.Question) string { return q.ID },
		resetID: func(q *domain.Question) { q.ID = "" },
		prepare: func(q *domain.Question, i int) error {
			field := fmt.Sprintf("pages[%d].questions[%d]", page.OrderIndex, i)
			if errs := domain.ValidateQuestion(page.Type, q, field); len(errs) > 0 {
				return domain.NewError(domain.CodeValidation, "question validation failed", errs)
			}
			q.PageID = page.ID
			q.QuizID = ""
			q.OrderIndex = i
			return nil
		},
		create: r.repo.CreateQuestion,
		update: r.repo.UpdateQuestion,
		remove: r.repo.DeleteQuestion,
		children: func(ctx context.Context, q *domain.Question) error {
			var current []*domain.Option
			if old, ok := r.questions[q.ID]; ok {
				current = old.Options
			}
			return reconcileChildren(ctx, r.optionLevel(page.Type, q.ID), current, q.Options, &r.result.Options)
		},
	}
}

func (r *treeReconciler) optionLevel(pageType domain.PageType, questionID string) childLevel[*domain.Option] {
	persistGap := pageType.HasGaps()
	return childLevel[*domain.Option]{
		id:      func(o *domain.Option) string { return o.ID },
		resetID: func(o *domain.Option) { o.ID = "" },
		prepare: func(o *domain.Option, i int) error {
			o.QuestionID = questionID
			o.OrderIndex = i
			switch pageType {
			case domain.PageTypeInput:
				o.IsCorrect = true
			case domain.PageTypeSingle, domain.PageTypeMultiple:
				o.GapIndex = 0
			}
			return nil
		},
		create: func(ctx context.Context, o *domain.Option) error { return r.repo.CreateOption(ctx, o, persistGap) },
		update: func(ctx context.Context, o *domain.Option) error { return r.repo.UpdateOption(ctx, o, persistGap) },
		remove: r.repo.DeleteOption,
	}
}

func (r *treeReconciler) theoryLevel(quizID string) childLevel[*domain.TheoryBlock] {
	return childLevel[*domain.TheoryBlock]{
		id:      func(b *domain.TheoryBlock) string { return b.ID },
		resetID: func(b *domain.TheoryBlock) { b.ID = "" },
		prepare: func(b *domain.TheoryBlock, i int) error {
			b.QuizID = quizID
			b.OrderIndex = i
			return nil
		},
		create: r.repo.CreateTheoryBlock,
		update: r.repo.UpdateTheoryBlock,
		remove: r.repo.DeleteTheoryBlock,
	}
}

// removedImageURLs returns the image URLs of before that no image block of
// after still references. after may be nil when the quiz is deleted.
func removedImageURLs(before, after *domain.Quiz) []string {
	if before == nil {
		return nil
	}
	still := make(map[string]struct{})
	if after != nil {
		for _, b := range after.ImageBlocks() {
			still[b.Content] = struct{}{}
		}
	}
	var removed []string
	seen := make(map[string]struct{})
	for _, b := range before.ImageBlocks() {
		if _, ok := still[b.Content]; ok {
			continue
		}
		if _, ok := seen[b.Content]; ok {
			continue
		}
		seen[b.Content] = struct{}{}
		removed = append(removed, b.Content)
	}
	return removed
}
