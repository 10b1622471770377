package category

import (
	"strings"
	"testing"

	"medcast/internal/models"
)

func hasCode(res Result, code string) bool {
	for _, e := range res.Errors {
		if e.Code == code {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	existing := []models.Category{
		makeCategory("card", "Cardiology", nil, 1),
		makeCategory("sub1", "Arrhythmia", ptr("card"), 1),
	}

	t.Run("valid_primary", func(t *testing.T) {
		res := Validate(Input{Name: "Neurology"}, existing, "")
		if !res.Valid {
			t.Fatalf("expected valid, got errors %v", res.Errors)
		}
	})

	t.Run("name_required", func(t *testing.T) {
		res := Validate(Input{Name: "   "}, existing, "")
		if res.Valid || !hasCode(res, CodeNameRequired) {
			t.Errorf("expected NAME_REQUIRED, got %v", res.Errors)
		}
	})

	t.Run("name_too_long", func(t *testing.T) {
		res := Validate(Input{Name: strings.Repeat("x", 101)}, existing, "")
		if res.Valid || !hasCode(res, CodeNameTooLong) {
			t.Errorf("expected NAME_TOO_LONG, got %v", res.Errors)
		}
	})

	t.Run("name_at_limit_ok", func(t *testing.T) {
		res := Validate(Input{Name: strings.Repeat("x", 100)}, existing, "")
		if !res.Valid {
			t.Errorf("expected 100-char name to be valid, got %v", res.Errors)
		}
	})

	t.Run("duplicate_name_case_insensitive", func(t *testing.T) {
		res := Validate(Input{Name: "cardiology"}, existing, "")
		if res.Valid || !hasCode(res, CodeDuplicateName) {
			t.Errorf("expected DUPLICATE_NAME, got %v", res.Errors)
		}
	})

	t.Run("duplicate_name_trims_whitespace", func(t *testing.T) {
		res := Validate(Input{Name: "  Cardiology  "}, existing, "")
		if res.Valid || !hasCode(res, CodeDuplicateName) {
			t.Errorf("expected DUPLICATE_NAME, got %v", res.Errors)
		}
	})

	t.Run("self_update_allowed", func(t *testing.T) {
		res := Validate(Input{Name: "Cardiology"}, existing, "card")
		if !res.Valid {
			t.Errorf("expected self-update to pass, got %v", res.Errors)
		}
	})

	t.Run("same_name_different_scope_allowed", func(t *testing.T) {
		res := Validate(Input{Name: "Cardiology", ParentID: ptr("card")}, existing, "")
		if !res.Valid {
			t.Errorf("expected same name under a different parent to pass, got %v", res.Errors)
		}
	})

	t.Run("parent_missing", func(t *testing.T) {
		res := Validate(Input{Name: "Asthma", ParentID: ptr("nope")}, existing, "")
		if res.Valid || !hasCode(res, CodeInvalidParent) {
			t.Errorf("expected INVALID_PARENT, got %v", res.Errors)
		}
	})

	t.Run("parent_is_secondary", func(t *testing.T) {
		res := Validate(Input{Name: "Too Deep", ParentID: ptr("sub1")}, existing, "")
		if res.Valid || !hasCode(res, CodeInvalidParent) {
			t.Errorf("expected INVALID_PARENT for depth > 2, got %v", res.Errors)
		}
	})

	t.Run("description_too_long", func(t *testing.T) {
		res := Validate(Input{Name: "Ok", Description: strings.Repeat("d", 501)}, existing, "")
		if res.Valid || !hasCode(res, CodeDescriptionTooLong) {
			t.Errorf("expected DESCRIPTION_TOO_LONG, got %v", res.Errors)
		}
	})

	t.Run("collects_all_errors", func(t *testing.T) {
		res := Validate(Input{
			Name:        "",
			Description: strings.Repeat("d", 501),
			ParentID:    ptr("nope"),
		}, existing, "")
		if res.Valid {
			t.Fatal("expected invalid result")
		}
		for _, code := range []string{CodeNameRequired, CodeInvalidParent, CodeDescriptionTooLong} {
			if !hasCode(res, code) {
				t.Errorf("expected %s among errors, got %v", code, res.Errors)
			}
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		in := Input{Name: "cardiology"}
		first := Validate(in, existing, "")
		second := Validate(in, existing, "")
		if first.Valid != second.Valid || len(first.Errors) != len(second.Errors) {
			t.Error("expected identical results on repeated calls")
		}
	})
}
