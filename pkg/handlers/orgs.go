package handlers

import (
	"net/http"
	"strings"

	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/middleware"
	"shift-planner-backend/pkg/models"
	"shift-planner-backend/pkg/scheduling"
	"shift-planner-backend/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
)

type OrgsHandler struct {
	config  *config.Config
	store   database.Store
	invites *scheduling.InviteService
}

func NewOrgsHandler(cfg *config.Config, store database.Store, invites *scheduling.InviteService) *OrgsHandler {
	return &OrgsHandler{config: cfg, store: store, invites: invites}
}

// ==== helpers: membership/role checks ====

func (h *OrgsHandler) requireOrgMember(w http.ResponseWriter, userID, orgID string) (*models.Employee, bool) {
	employee, err := h.store.GetEmployee(orgID, userID)
	if err != nil {
		utils.WriteForbiddenResponse(w, "Not a member of organization")
		return nil, false
	}
	return employee, true
}

func (h *OrgsHandler) requireOrgAdmin(w http.ResponseWriter, userID, orgID string) bool {
	employee, ok := h.requireOrgMember(w, userID, orgID)
	if !ok {
		return false
	}
	if !employee.IsAdmin() {
		utils.WriteForbiddenResponse(w, "Admin privileges required")
		return false
	}
	return true
}

// POST /api/orgs
func (h *OrgsHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	var req struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		Roles       []string `json:"roles"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.WriteValidationErrorResponse(w, "organization name required")
		return
	}

	// Every organization carries the default role; requested custom roles
	// are deduplicated around it.
	roles := []string{models.DefaultEmployeeRole}
	for _, role := range req.Roles {
		role = strings.TrimSpace(role)
		if role == "" || role == models.DefaultEmployeeRole {
			continue
		}
		duplicate := false
		for _, existing := range roles {
			if existing == role {
				duplicate = true
				break
			}
		}
		if !duplicate {
			roles = append(roles, role)
		}
	}

	org := &models.Organization{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     user.ID,
		Roles:       roles,
		InviteLinks: []models.InviteLink{},
	}
	if err := h.store.CreateOrganization(org); err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	// The creator becomes the Owner employee of the new organization.
	profile, err := h.store.GetUserByID(user.ID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	owner := &models.Employee{
		UserID:         user.ID,
		OrganizationID: org.ID,
		DisplayName:    profile.DisplayName(),
		Email:          profile.Email,
		OrgRole:        models.OrgRoleOwner,
		Roles:          []string{},
	}
	if err := h.store.CreateEmployee(owner); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	if !profile.MemberOf(org.ID) {
		profile.OrganizationIDs = append(profile.OrganizationIDs, org.ID)
		if err := h.store.UpdateUser(profile); err != nil {
			utils.WriteDomainError(w, err)
			return
		}
	}

	utils.WriteCreatedResponse(w, map[string]interface{}{"organization": org})
}

// GET /api/orgs
func (h *OrgsHandler) ListMyOrganizations(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgs, err := h.store.ListUserOrganizations(user.ID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"organizations": orgs})
}

// DELETE /api/orgs/{orgID}
// Hard delete of the organization document. Employee and schedule
// subcollections are not cascaded; see the persisted-layout notes.
func (h *OrgsHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	if !h.requireOrgAdmin(w, user.ID, orgID) {
		return
	}
	if err := h.store.DeleteOrganization(orgID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"deleted": true, "id": orgID})
}

// PUT /api/orgs/{orgID}/roles
func (h *OrgsHandler) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	if !h.requireOrgAdmin(w, user.ID, orgID) {
		return
	}
	var req struct {
		Roles []string `json:"roles"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}

	org, err := h.store.GetOrganization(orgID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	roles := []string{models.DefaultEmployeeRole}
	for _, role := range req.Roles {
		role = strings.TrimSpace(role)
		if role == "" || role == models.DefaultEmployeeRole {
			continue
		}
		for _, existing := range roles {
			if existing == role {
				utils.WriteConflictResponse(w, "duplicate role name: "+role)
				return
			}
		}
		roles = append(roles, role)
	}
	org.Roles = roles
	if err := h.store.UpdateOrganization(org); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"organization": org})
}

// GET /api/orgs/{orgID}/members
func (h *OrgsHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	if _, ok := h.requireOrgMember(w, user.ID, orgID); !ok {
		return
	}
	members, err := h.store.ListEmployees(orgID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"members": members})
}

// DELETE /api/orgs/{orgID}/members/{userID}
func (h *OrgsHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	targetID := chiRoute.URLParam(r, "userID")
	if !h.requireOrgAdmin(w, user.ID, orgID) {
		return
	}
	target, err := h.store.GetEmployee(orgID, targetID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	if target.OrgRole == models.OrgRoleOwner {
		utils.WriteForbiddenResponse(w, "The owner cannot be removed")
		return
	}
	if err := h.store.DeleteEmployee(orgID, targetID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	// Best effort: drop the membership from the user profile too.
	if profile, err := h.store.GetUserByID(targetID); err == nil {
		kept := profile.OrganizationIDs[:0]
		for _, id := range profile.OrganizationIDs {
			if id != orgID {
				kept = append(kept, id)
			}
		}
		profile.OrganizationIDs = kept
		_ = h.store.UpdateUser(profile)
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"removed": true, "user_id": targetID})
}

// POST /api/orgs/{orgID}/invites
func (h *OrgsHandler) IssueInvite(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	link, err := h.invites.Issue(r.Context(), orgID, user.ID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{
		"invite_link": link,
		"invite_url":  "/invite?orgId=" + orgID + "&token=" + link.Token,
	})
}
