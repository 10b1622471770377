package category

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "medcast/internal/errors"
	"medcast/internal/models"
)

// Validation error codes.
const (
	CodeNameRequired       = "NAME_REQUIRED"
	CodeNameTooLong        = "NAME_TOO_LONG"
	CodeInvalidParent      = "INVALID_PARENT"
	CodeDuplicateName      = "DUPLICATE_NAME"
	CodeDescriptionTooLong = "DESCRIPTION_TOO_LONG"
)

// Result is the outcome of validating a create or update payload.
type Result struct {
	Valid  bool                   `json:"valid"`
	Errors []apperrors.FieldError `json:"errors"`
}

// Validate checks a candidate payload against the current flat collection.
// All rules are evaluated and every failure collected, so a form can show
// the complete set of problems at once. excludeID names the category being
// updated so it does not collide with itself; pass "" for creates.
// Pure and idempotent: safe to call per keystroke before submission.
func Validate(in Input, existing []models.Category, excludeID string) Result {
	var errs []apperrors.FieldError

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs = append(errs, apperrors.FieldError{
			Field: "name", Code: CodeNameRequired,
			Message: "name is required",
		})
	} else if utf8.RuneCountInString(name) > models.CategoryNameMaxLen {
		errs = append(errs, apperrors.FieldError{
			Field: "name", Code: CodeNameTooLong,
			Message: fmt.Sprintf("name must be at most %d characters", models.CategoryNameMaxLen),
		})
	}

	if in.ParentID != nil && *in.ParentID != "" {
		parent, ok := findByID(existing, *in.ParentID)
		if !ok || !parent.IsPrimary() {
			errs = append(errs, apperrors.FieldError{
				Field: "parent_id", Code: CodeInvalidParent,
				Message: "parent category must exist and be a primary category",
			})
		}
	}

	if name != "" {
		for _, c := range existing {
			if c.ID == excludeID {
				continue
			}
			if sameScope(c.ParentID, in.ParentID) && strings.EqualFold(strings.TrimSpace(c.Name), name) {
				errs = append(errs, apperrors.FieldError{
					Field: "name", Code: CodeDuplicateName,
					Message: fmt.Sprintf("a sibling category named %q already exists", c.Name),
				})
				break
			}
		}
	}

	if utf8.RuneCountInString(in.Description) > models.CategoryDescriptionMaxLen {
		errs = append(errs, apperrors.FieldError{
			Field: "description", Code: CodeDescriptionTooLong,
			Message: fmt.Sprintf("description must be at most %d characters", models.CategoryDescriptionMaxLen),
		})
	}

	return Result{Valid: len(errs) == 0, Errors: errs}
}

// findByID returns the category with the given id, if present.
func findByID(cats []models.Category, id string) (models.Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return models.Category{}, false
}

// sameScope reports whether two parent references name the same sibling
// scope. nil and "" both mean the primary level.
func sameScope(a, b *string) bool {
	av, bv := "", ""
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}
