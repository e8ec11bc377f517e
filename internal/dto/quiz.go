package dto

import (
	"time"

	"quizbook/internal/domain"
)

// QuizSummaryResponse represents a quiz in the list response
// @Description Quiz without its pages
type QuizSummaryResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListQuizzesResponse represents the quiz list
type ListQuizzesResponse struct {
	Quizzes []QuizSummaryResponse `json:"quizzes"`
}

// QuizResponse is the public view of a quiz tree. Correct flags are never
// included, and input pages carry no options since those are the accepted
// answers.
// @Description Quiz with pages and theory blocks for respondents
type QuizResponse struct {
	ID           string                `json:"id"`
	Title        string                `json:"title"`
	Description  string                `json:"description,omitempty"`
	Slug         string                `json:"slug"`
	CreatedAt    time.Time             `json:"created_at"`
	Pages        []PageResponse        `json:"pages"`
	TheoryBlocks []TheoryBlockResponse `json:"theory_blocks"`
}

// PageResponse is one page of a public quiz. The legacy question list of a
// quiz is exposed as an extra single-choice page whose id is the quiz id.
type PageResponse struct {
	ID         string             `json:"id"`
	Type       domain.PageType    `json:"type"`
	Title      string             `json:"title,omitempty"`
	OrderIndex int                `json:"order_index"`
	Questions  []QuestionResponse `json:"questions"`
}

// QuestionResponse is one question of a public page. Segments holds the text
// around the gaps for input and select_gaps pages.
type QuestionResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Explanation string           `json:"explanation,omitempty"`
	Segments    []string         `json:"segments,omitempty"`
	GapCount    int              `json:"gap_count,omitempty"`
	Options     []OptionResponse `json:"options"`
}

// OptionResponse is an answer option without its correct flag.
type OptionResponse struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	GapIndex *int   `json:"gap_index,omitempty"`
}

// TheoryBlockResponse is a text or image block.
type TheoryBlockResponse struct {
	ID         string            `json:"id"`
	Type       domain.TheoryType `json:"type"`
	Content    string            `json:"content"`
	OrderIndex int               `json:"order_index"`
}

// CheckPageRequest carries answers keyed by question id
// @Description Request body for checking the answers of one page
type CheckPageRequest struct {
	Answers map[string]*domain.Answer `json:"answers"`
}

// CheckPageResponse is the score of one page
// @Description Page score with per-question results
type CheckPageResponse struct {
	PageID  string                  `json:"page_id"`
	Correct int                     `json:"correct"`
	Total   int                     `json:"total"`
	Results []domain.QuestionResult `json:"results"`
}

// UploadAssetResponse is returned after an image upload
type UploadAssetResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

// NewQuizSummaryResponse maps a quiz root to its list entry.
func NewQuizSummaryResponse(q *domain.Quiz) QuizSummaryResponse {
	return QuizSummaryResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Slug:        q.Slug,
		CreatedAt:   q.CreatedAt,
	}
}

// NewListQuizzesResponse maps quiz roots to the list response.
func NewListQuizzesResponse(quizzes []*domain.Quiz) ListQuizzesResponse {
	resp := ListQuizzesResponse{Quizzes: make([]QuizSummaryResponse, 0, len(quizzes))}
	for _, q := range quizzes {
		resp.Quizzes = append(resp.Quizzes, NewQuizSummaryResponse(q))
	}
	return resp
}

// NewQuizResponse builds the public view of quiz.
func NewQuizResponse(quiz *domain.Quiz) QuizResponse {
	resp := QuizResponse{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		Slug:         quiz.Slug,
		CreatedAt:    quiz.CreatedAt,
		Pages:        make([]PageResponse, 0, len(quiz.Pages)+1),
		TheoryBlocks: make([]TheoryBlockResponse, 0, len(quiz.TheoryBlocks)),
	}
	for _, p := range quiz.Pages {
		resp.Pages = append(resp.Pages, newPageResponse(p))
	}
	if legacy := quiz.LegacyPage(); legacy != nil {
		lp := newPageResponse(legacy)
		lp.OrderIndex = len(quiz.Pages)
		resp.Pages = append(resp.Pages, lp)
	}
	for _, b := range quiz.TheoryBlocks {
		resp.TheoryBlocks = append(resp.TheoryBlocks, TheoryBlockResponse{
			ID:         b.ID,
			Type:       b.Type,
			Content:    b.Content,
			OrderIndex: b.OrderIndex,
		})
	}
	return resp
}

func newPageResponse(p *domain.Page) PageResponse {
	page := PageResponse{
		ID:         p.ID,
		Type:       p.Type,
		Title:      p.Title,
		OrderIndex: p.OrderIndex,
		Questions:  make([]QuestionResponse, 0, len(p.Questions)),
	}
	for _, q := range p.Questions {
		question := QuestionResponse{
			ID:          q.ID,
			Title:       q.Title,
			Explanation: q.Explanation,
			Options:     []OptionResponse{},
		}
		if p.Type.HasGaps() {
			question.Segments = domain.SplitTemplate(q.Title)
			question.GapCount = domain.GapCount(q.Title)
		}
		if p.Type != domain.PageTypeInput {
			for _, o := range q.Options {
				opt := OptionResponse{ID: o.ID, Text: o.Text}
				if p.Type.HasGaps() {
					gap := o.GapIndex
					opt.GapIndex = &gap
				}
				question.Options = append(question.Options, opt)
			}
		}
		page.Questions = append(page.Questions, question)
	}
	return page
}

// NewCheckPageResponse maps a page score to the response.
func NewCheckPageResponse(score *domain.PageScore) CheckPageResponse {
	return CheckPageResponse{
		PageID:  score.PageID,
		Correct: score.Correct,
		Total:   score.Total,
		Results: score.Results,
	}
}
