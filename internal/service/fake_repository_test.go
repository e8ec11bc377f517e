package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"quizbook/internal/domain"
	"quizbook/internal/util"
)

// memRepository is an in-memory domain.QuizRepository. Stored values are
// private copies and are replaced, never mutated, so a shallow copy of the
// maps is a consistent snapshot.
type memRepository struct {
	mu sync.Mutex

	quizzes   map[string]domain.Quiz
	pages     map[string]domain.Page
	questions map[string]domain.Question
	options   map[string]domain.Option
	nullGap   map[string]bool
	blocks    map[string]domain.TheoryBlock

	writes    int
	slugReads int
	// failOn names a write method that returns failErr.
	failOn  string
	failErr error
}

func newMemRepository() *memRepository {
	return &memRepository{
		quizzes:   map[string]domain.Quiz{},
		pages:     map[string]domain.Page{},
		questions: map[string]domain.Question{},
		options:   map[string]domain.Option{},
		nullGap:   map[string]bool{},
		blocks:    map[string]domain.TheoryBlock{},
	}
}

type memSnapshot struct {
	quizzes   map[string]domain.Quiz
	pages     map[string]domain.Page
	questions map[string]domain.Question
	options   map[string]domain.Option
	nullGap   map[string]bool
	blocks    map[string]domain.TheoryBlock
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (r *memRepository) snapshot() memSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return memSnapshot{
		quizzes: copyMap(r.quizzes), pages: copyMap(r.pages), questions: copyMap(r.questions),
		options: copyMap(r.options), nullGap: copyMap(r.nullGap), blocks: copyMap(r.blocks),
	}
}

func (r *memRepository) restore(s memSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes, r.pages, r.questions = s.quizzes, s.pages, s.questions
	r.options, r.nullGap, r.blocks = s.options, s.nullGap, s.blocks
}

func (r *memRepository) write(method string) error {
	if r.failOn == method {
		return r.failErr
	}
	r.writes++
	return nil
}

// memTransactionManager rolls the repository back to its state at the start
// of the transaction when fn fails.
type memTransactionManager struct {
	repo      *memRepository
	commits   int
	rollbacks int
}

func (m *memTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.repo.snapshot()
	if err := fn(ctx); err != nil {
		m.repo.restore(snap)
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

func (r *memRepository) ListQuizzes(ctx context.Context) ([]*domain.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		q := q
		out = append(out, &q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *memRepository) GetQuizBySlug(ctx context.Context, slug string) (*domain.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.slugReads++
	for _, q := range r.quizzes {
		if q.Slug == slug {
			q := q
			return &q, nil
		}
	}
	return nil, nil
}

func (r *memRepository) GetPagesByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := set(quizIDs)
	var out []*domain.Page
	for _, p := range r.pages {
		if want[p.QuizID] {
			p := p
			p.Questions = nil
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepository) GetQuestionsByPageIDs(ctx context.Context, pageIDs []string) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := set(pageIDs)
	var out []*domain.Question
	for _, q := range r.questions {
		if q.PageID != "" && want[q.PageID] {
			q := q
			q.Options = nil
			out = append(out, &q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepository) GetLegacyQuestionsByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := set(quizIDs)
	var out []*domain.Question
	for _, q := range r.questions {
		if q.PageID == "" && want[q.QuizID] {
			q := q
			q.Options = nil
			out = append(out, &q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepository) GetOptionsByQuestionIDs(ctx context.Context, questionIDs []string) ([]*domain.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := set(questionIDs)
	var out []*domain.Option
	for _, o := range r.options {
		if want[o.QuestionID] {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OrderIndex != out[j].OrderIndex {
			return out[i].OrderIndex < out[j].OrderIndex
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *memRepository) GetTheoryBlocksByQuizIDs(ctx context.Context, quizIDs []string) ([]*domain.TheoryBlock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := set(quizIDs)
	var out []*domain.TheoryBlock
	for _, b := range r.blocks {
		if want[b.QuizID] {
			b := b
			out = append(out, &b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memRepository) ReferencedImageURLs(ctx context.Context, urls []string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	want := set(urls)
	found := map[string]bool{}
	for _, b := range r.blocks {
		if b.Type == domain.TheoryTypeImage && want[b.Content] {
			found[b.Content] = true
		}
	}
	return found, nil
}

func (r *memRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quizzes {
		if q.Slug == quiz.Slug {
			return fmt.Errorf("slug %q: %w", quiz.Slug, domain.ErrSlugConflict)
		}
	}
	if err := r.write("CreateQuiz"); err != nil {
		return err
	}
	if quiz.ID == "" {
		quiz.ID = util.NewULID()
	}
	r.quizzes[quiz.ID] = domain.Quiz{ID: quiz.ID, Title: quiz.Title, Description: quiz.Description, Slug: quiz.Slug, CreatedAt: quiz.CreatedAt}
	return nil
}

func (r *memRepository) UpdateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quizzes {
		if q.Slug == quiz.Slug && q.ID != quiz.ID {
			return fmt.Errorf("slug %q: %w", quiz.Slug, domain.ErrSlugConflict)
		}
	}
	old, ok := r.quizzes[quiz.ID]
	if !ok {
		return domain.NewNotFoundError("quiz " + quiz.ID + " not found")
	}
	if err := r.write("UpdateQuiz"); err != nil {
		return err
	}
	r.quizzes[quiz.ID] = domain.Quiz{ID: quiz.ID, Title: quiz.Title, Description: quiz.Description, Slug: quiz.Slug, CreatedAt: old.CreatedAt}
	return nil
}

func (r *memRepository) DeleteQuiz(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("DeleteQuiz"); err != nil {
		return err
	}
	delete(r.quizzes, id)
	for pid, p := range r.pages {
		if p.QuizID == id {
			r.deletePageLocked(pid)
		}
	}
	for qid, q := range r.questions {
		if q.PageID == "" && q.QuizID == id {
			r.deleteQuestionLocked(qid)
		}
	}
	for bid, b := range r.blocks {
		if b.QuizID == id {
			delete(r.blocks, bid)
		}
	}
	return nil
}

func (r *memRepository) CreatePage(ctx context.Context, page *domain.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("CreatePage"); err != nil {
		return err
	}
	if page.ID == "" {
		page.ID = util.NewULID()
	}
	p := *page
	p.Questions = nil
	r.pages[p.ID] = p
	return nil
}

func (r *memRepository) UpdatePage(ctx context.Context, page *domain.Page) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("UpdatePage"); err != nil {
		return err
	}
	p := *page
	p.Questions = nil
	r.pages[p.ID] = p
	return nil
}

func (r *memRepository) DeletePage(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("DeletePage"); err != nil {
		return err
	}
	r.deletePageLocked(id)
	return nil
}

func (r *memRepository) deletePageLocked(id string) {
	delete(r.pages, id)
	for qid, q := range r.questions {
		if q.PageID == id {
			r.deleteQuestionLocked(qid)
		}
	}
}

func (r *memRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("CreateQuestion"); err != nil {
		return err
	}
	if question.ID == "" {
		question.ID = util.NewULID()
	}
	q := *question
	q.Options = nil
	r.questions[q.ID] = q
	return nil
}

func (r *memRepository) UpdateQuestion(ctx context.Context, question *domain.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("UpdateQuestion"); err != nil {
		return err
	}
	q := *question
	q.Options = nil
	r.questions[q.ID] = q
	return nil
}

func (r *memRepository) DeleteQuestion(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("DeleteQuestion"); err != nil {
		return err
	}
	r.deleteQuestionLocked(id)
	return nil
}

func (r *memRepository) deleteQuestionLocked(id string) {
	delete(r.questions, id)
	for oid, o := range r.options {
		if o.QuestionID == id {
			delete(r.options, oid)
			delete(r.nullGap, oid)
		}
	}
}

func (r *memRepository) CreateOption(ctx context.Context, option *domain.Option, persistGap bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("CreateOption"); err != nil {
		return err
	}
	if option.ID == "" {
		option.ID = util.NewULID()
	}
	r.putOptionLocked(option, persistGap)
	return nil
}

func (r *memRepository) UpdateOption(ctx context.Context, option *domain.Option, persistGap bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("UpdateOption"); err != nil {
		return err
	}
	r.putOptionLocked(option, persistGap)
	return nil
}

func (r *memRepository) putOptionLocked(option *domain.Option, persistGap bool) {
	o := *option
	if !persistGap {
		o.GapIndex = 0
	}
	r.options[o.ID] = o
	r.nullGap[o.ID] = !persistGap
}

func (r *memRepository) DeleteOption(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("DeleteOption"); err != nil {
		return err
	}
	delete(r.options, id)
	delete(r.nullGap, id)
	return nil
}

func (r *memRepository) CreateTheoryBlock(ctx context.Context, block *domain.TheoryBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("CreateTheoryBlock"); err != nil {
		return err
	}
	if block.ID == "" {
		block.ID = util.NewULID()
	}
	r.blocks[block.ID] = *block
	return nil
}

func (r *memRepository) UpdateTheoryBlock(ctx context.Context, block *domain.TheoryBlock) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("UpdateTheoryBlock"); err != nil {
		return err
	}
	r.blocks[block.ID] = *block
	return nil
}

func (r *memRepository) DeleteTheoryBlock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.write("DeleteTheoryBlock"); err != nil {
		return err
	}
	delete(r.blocks, id)
	return nil
}

func set(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
