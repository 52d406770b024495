package handlers

import (
	"net/http"
	"strings"

	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/middleware"
	"shift-planner-backend/pkg/models"
	"shift-planner-backend/pkg/utils"
)

// AuthHandler is the identity collaborator: profile registration and the
// JWT token pair. The upstream authentication handshake (OAuth et al.)
// lives outside this service.
type AuthHandler struct {
	config *config.Config
	store  database.Store
	jwt    *utils.JWTService
}

func NewAuthHandler(cfg *config.Config, store database.Store) *AuthHandler {
	return &AuthHandler{config: cfg, store: store, jwt: utils.NewJWTService(cfg.JWTSecret)}
}

// GET /
func (h *AuthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if err := h.store.HealthCheck(); err != nil {
		status = "degraded: " + err.Error()
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"service": "shift-planner-backend",
		"status":  status,
	})
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegisterRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.WriteValidationErrorResponse(w, "valid email required")
		return
	}
	if strings.TrimSpace(req.FirstName) == "" {
		utils.WriteValidationErrorResponse(w, "first_name required")
		return
	}

	user := &models.User{
		Email:           req.Email,
		FirstName:       strings.TrimSpace(req.FirstName),
		LastName:        strings.TrimSpace(req.LastName),
		OrganizationIDs: []string{},
	}
	if err := h.store.CreateUser(user); err != nil {
		utils.WriteDomainError(w, err)
		return
	}

	access, refresh, expiresIn, err := h.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteCreatedResponse(w, models.UserAuthResponse{
		User:         *user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	})
}

// POST /api/auth/login
// The handshake itself is external; presenting a known email yields a
// token pair so clients of the core can establish identity.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	user, err := h.store.GetUserByEmail(strings.TrimSpace(req.Email))
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	access, refresh, expiresIn, err := h.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		utils.WriteInternalServerErrorResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, models.UserAuthResponse{
		User:         *user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	})
}

// POST /api/auth/refresh
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if req.RefreshToken == "" {
		utils.WriteValidationErrorResponse(w, "refresh_token required")
		return
	}
	access, expiresIn, err := h.jwt.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		utils.WriteUnauthorizedResponse(w, err.Error())
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{
		"access_token": access,
		"expires_in":   expiresIn,
	})
}

// GET /api/user/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	profile, err := h.store.GetUserByID(user.ID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"user": profile})
}
