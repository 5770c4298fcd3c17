package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestItemPatch_Validate(t *testing.T) {
	cases := map[string]struct {
		patch ItemPatch
		field string
	}{
		"empty patch":       {patch: ItemPatch{}},
		"valid title":       {patch: ItemPatch{Title: Some("ok")}},
		"null description":  {patch: ItemPatch{Description: Null[string]()}},
		"null title":        {patch: ItemPatch{Title: Null[string]()}, field: "title"},
		"empty title":       {patch: ItemPatch{Title: Some("")}, field: "title"},
		"long title":        {patch: ItemPatch{Title: Some(strings.Repeat("x", 201))}, field: "title"},
		"null is_completed": {patch: ItemPatch{IsCompleted: Null[bool]()}, field: "is_completed"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.patch.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Fields[0].Field != tc.field {
				t.Fatalf("expected %s error, got %+v", tc.field, ve.Fields)
			}
		})
	}
}

func TestItemPatch_Apply(t *testing.T) {
	desc := "keep me"
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	item := &Item{ID: 1, OwnerID: 9, Title: "t", Description: &desc, CreatedAt: created, UpdatedAt: created}
	now := created.Add(time.Hour)

	ItemPatch{IsCompleted: Some(true)}.Apply(item, now)

	if item.Title != "t" || item.Description == nil || *item.Description != "keep me" {
		t.Fatalf("unsupplied fields changed: %+v", item)
	}
	if !item.IsCompleted || !item.UpdatedAt.Equal(now) || !item.CreatedAt.Equal(created) {
		t.Fatalf("unexpected item after apply: %+v", item)
	}

	ItemPatch{Title: Some("new"), Description: Null[string]()}.Apply(item, now)
	if item.Title != "new" || item.Description != nil || item.OwnerID != 9 {
		t.Fatalf("unexpected item after second apply: %+v", item)
	}
}

func TestValidationError(t *testing.T) {
	var ve ValidationError
	if ve.OrNil() != nil {
		t.Fatalf("empty ValidationError must be nil")
	}
	ve.Add("title", "title is required")
	ve.Add("limit", "limit must be at most 1000")

	if ve.Error() != "title is required; limit must be at most 1000" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
	if ve.OrNil() == nil {
		t.Fatalf("expected error")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Alice@Example.COM "); got != "alice@example.com" {
		t.Fatalf("unexpected %q", got)
	}
}
