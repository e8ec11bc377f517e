package validation

import (
	"fmt"
	"regexp"
	"strings"

	"quizbook/internal/domain"
	"quizbook/internal/util"
)

const maxSlugLength = 200

var validSlug = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizID validates a quiz id path parameter.
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errs = append(errs, domain.FieldError{Field: "id", Message: "is required"})
	} else if !util.IsULID(id) {
		errs = append(errs, domain.FieldError{Field: "id", Message: fmt.Sprintf("invalid format: %q", id)})
	}
	return errs
}

// ValidateSlug validates a quiz slug path parameter.
func (v *Validator) ValidateSlug(slug string) domain.ValidationErrors {
	var errs domain.ValidationErrors
	switch {
	case strings.TrimSpace(slug) == "":
		errs = append(errs, domain.FieldError{Field: "slug", Message: "is required"})
	case len(slug) > maxSlugLength:
		errs = append(errs, domain.FieldError{Field: "slug", Message: fmt.Sprintf("must be at most %d characters", maxSlugLength)})
	case !validSlug.MatchString(slug):
		errs = append(errs, domain.FieldError{Field: "slug", Message: fmt.Sprintf("invalid format: %q", slug)})
	}
	return errs
}

// ValidateCheckRequest validates the answers of a page check request.
func (v *Validator) ValidateCheckRequest(pageID string, answers map[string]*domain.Answer) domain.ValidationErrors {
	var errs domain.ValidationErrors
	if strings.TrimSpace(pageID) == "" {
		errs = append(errs, domain.FieldError{Field: "page_id", Message: "is required"})
	}
	if answers == nil {
		errs = append(errs, domain.FieldError{Field: "answers", Message: "is required"})
	}
	for questionID, a := range answers {
		if a == nil {
			continue
		}
		for g := range a.Texts {
			if g < 0 {
				errs = append(errs, domain.FieldError{Field: "answers." + questionID + ".texts", Message: "gap index must not be negative"})
			}
		}
		for g := range a.Selections {
			if g < 0 {
				errs = append(errs, domain.FieldError{Field: "answers." + questionID + ".selections", Message: "gap index must not be negative"})
			}
		}
	}
	return errs
}
