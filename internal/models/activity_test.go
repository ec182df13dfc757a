package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func validActivity() Activity {
	return Activity{
		TenantID: uuid.New(),
		Type:     ActivityTypeCampaignCreated,
		Category: ActivityCategoryCampaign,
		Title:    "Campaign created",
	}
}

func TestActivityValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Activity)
		wantField string
	}{
		{"valid", func(a *Activity) {}, ""},
		{"missing tenant", func(a *Activity) { a.TenantID = uuid.Nil }, "tenantId"},
		{"empty title", func(a *Activity) { a.Title = "" }, "title"},
		{"title at limit", func(a *Activity) { a.Title = strings.Repeat("x", 255) }, ""},
		{"title too long", func(a *Activity) { a.Title = strings.Repeat("x", 256) }, "title"},
		// The limit is 255 characters, not bytes.
		{"multibyte title at limit", func(a *Activity) { a.Title = strings.Repeat("ж", 255) }, ""},
		{"multibyte title too long", func(a *Activity) { a.Title = strings.Repeat("ж", 256) }, "title"},
		{"unknown type", func(a *Activity) { a.Type = "campaign_launched" }, "type"},
		{"empty type", func(a *Activity) { a.Type = "" }, "type"},
		{"unknown category", func(a *Activity) { a.Category = "billing" }, "category"},
		{"empty category", func(a *Activity) { a.Category = "" }, "category"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validActivity()
			tt.mutate(&a)
			err := a.Validate()

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if ve.Field != tt.wantField {
				t.Errorf("Validate() field = %q, want %q", ve.Field, tt.wantField)
			}
		})
	}
}

func TestEveryActivityTypeIsValid(t *testing.T) {
	for _, typ := range ActivityTypes() {
		if !IsValidActivityType(typ) {
			t.Errorf("listed type %q rejected by IsValidActivityType", typ)
		}
	}
	for _, category := range ActivityCategories() {
		if !IsValidActivityCategory(category) {
			t.Errorf("listed category %q rejected by IsValidActivityCategory", category)
		}
	}
}
