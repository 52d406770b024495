package handlers

import (
	"net/http"

	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/middleware"
	"shift-planner-backend/pkg/models"
	"shift-planner-backend/pkg/scheduling"
	"shift-planner-backend/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
)

type OnboardingHandler struct {
	config     *config.Config
	store      database.Store
	invites    *scheduling.InviteService
	onboarding *scheduling.OnboardingService
}

func NewOnboardingHandler(cfg *config.Config, store database.Store, invites *scheduling.InviteService, onboarding *scheduling.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{config: cfg, store: store, invites: invites, onboarding: onboarding}
}

// GET /invite?orgId={orgId}&token={token}
// Public invite-link validation. A missing parameter is an invalid link
// and short-circuits before any store lookup.
func (h *OnboardingHandler) ValidateInvite(w http.ResponseWriter, r *http.Request) {
	orgID := r.URL.Query().Get("orgId")
	token := r.URL.Query().Get("token")
	if orgID == "" || token == "" {
		utils.WriteValidationErrorResponse(w, "invalid invite link: orgId and token are required")
		return
	}
	org, err := h.invites.Validate(r.Context(), orgID, token)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"valid": true,
		"organization": map[string]interface{}{
			"id":          org.ID,
			"name":        org.Name,
			"description": org.Description,
		},
	})
}

// POST /api/orgs/{orgID}/join
// Accepting an invite: the token must validate before the join request is
// recorded as a pending employee.
func (h *OnboardingHandler) RequestJoin(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	var req struct {
		Token string `json:"token"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if req.Token == "" {
		utils.WriteValidationErrorResponse(w, "token required")
		return
	}
	if _, err := h.invites.Validate(r.Context(), orgID, req.Token); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	if err := h.onboarding.RequestJoin(r.Context(), orgID, user.ID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{
		"status":          models.PendingStatusPending,
		"organization_id": orgID,
	})
}

// GET /api/orgs/{orgID}/pending
func (h *OnboardingHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	actor, err := h.store.GetEmployee(orgID, user.ID)
	if err != nil || !actor.IsAdmin() {
		utils.WriteForbiddenResponse(w, "Admin privileges required")
		return
	}
	pending, err := h.store.ListPendingEmployees(orgID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"pending": pending})
}

// POST /api/orgs/{orgID}/pending/{userID}/approve
func (h *OnboardingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	targetID := chiRoute.URLParam(r, "userID")
	if err := h.onboarding.Approve(r.Context(), user.ID, orgID, targetID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"approved": true, "user_id": targetID})
}

// POST /api/orgs/{orgID}/pending/{userID}/deny
func (h *OnboardingHandler) Deny(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	targetID := chiRoute.URLParam(r, "userID")
	if err := h.onboarding.Deny(r.Context(), user.ID, orgID, targetID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"denied": true, "user_id": targetID})
}
