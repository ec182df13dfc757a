package handlers

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/campaignhub/backend/internal/models"
	"github.com/campaignhub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newOrganizationService(store *orgStoreStub) *services.OrganizationService {
	log := zap.NewNop()
	activity := services.NewActivityService(activitySinkStub{}, noopPublisher{}, log)
	return services.NewOrganizationService(store, activity, log)
}

func TestGetOrganizationStorageFailureIsMasked(t *testing.T) {
	tenantID := uuid.New()
	store := &orgStoreStub{getErr: errors.New("dial tcp 10.0.0.5:5432: i/o timeout")}
	h := NewOrganizationHandler(newOrganizationService(store), zap.NewNop())

	app := newAuthedApp(tenantID, uuid.New())
	app.Get("/organizations/:id", h.GetOrganization)

	status, er, raw := doJSON(t, app, http.MethodGet, "/organizations/"+uuid.NewString(), "")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", status, fiber.StatusInternalServerError)
	}
	if er.Error != "internal error" {
		t.Errorf("error = %q, want %q", er.Error, "internal error")
	}
	if strings.Contains(raw, "i/o timeout") {
		t.Errorf("response leaks storage detail: %s", raw)
	}
}

func TestGetOrganizationMissingReturns404(t *testing.T) {
	tenantID := uuid.New()
	h := NewOrganizationHandler(newOrganizationService(&orgStoreStub{}), zap.NewNop())

	app := newAuthedApp(tenantID, uuid.New())
	app.Get("/organizations/:id", h.GetOrganization)

	status, er, _ := doJSON(t, app, http.MethodGet, "/organizations/"+uuid.NewString(), "")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, fiber.StatusNotFound)
	}
	if er.Error != "organization not found" {
		t.Errorf("error = %q, want %q", er.Error, "organization not found")
	}
}

func TestGetOrganizationOtherTenantReturns404(t *testing.T) {
	org := &models.Organization{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		Name:     "Acme",
		Status:   models.OrganizationStatusActive,
	}
	h := NewOrganizationHandler(newOrganizationService(&orgStoreStub{org: org}), zap.NewNop())

	// Authenticated as a different tenant than the organization's owner.
	app := newAuthedApp(uuid.New(), uuid.New())
	app.Get("/organizations/:id", h.GetOrganization)

	status, _, _ := doJSON(t, app, http.MethodGet, "/organizations/"+org.ID.String(), "")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want %d", status, fiber.StatusNotFound)
	}
}
