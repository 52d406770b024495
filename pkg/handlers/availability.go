package handlers

import (
	"errors"
	"net/http"
	"time"

	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/database"
	"shift-planner-backend/pkg/middleware"
	"shift-planner-backend/pkg/models"
	"shift-planner-backend/pkg/utils"
)

type AvailabilityHandler struct {
	config *config.Config
	store  database.Store
}

func NewAvailabilityHandler(cfg *config.Config, store database.Store) *AvailabilityHandler {
	return &AvailabilityHandler{config: cfg, store: store}
}

var validDayNames = map[string]bool{
	time.Monday.String():    true,
	time.Tuesday.String():   true,
	time.Wednesday.String(): true,
	time.Thursday.String():  true,
	time.Friday.String():    true,
	time.Saturday.String():  true,
	time.Sunday.String():    true,
}

// PUT /api/availability
func (h *AvailabilityHandler) Set(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	var req struct {
		Entries []models.AvailabilityEntry `json:"entries"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	seen := map[string]bool{}
	for _, entry := range req.Entries {
		if !validDayNames[entry.DayOfWeek] {
			utils.WriteValidationErrorResponse(w, "day_of_week must be a full day name, got: "+entry.DayOfWeek)
			return
		}
		if seen[entry.DayOfWeek] {
			utils.WriteValidationErrorResponse(w, "duplicate entry for "+entry.DayOfWeek)
			return
		}
		seen[entry.DayOfWeek] = true
		switch entry.Status {
		case models.AvailabilityAvailable, models.AvailabilityPreferred, models.AvailabilityUnavailable:
		default:
			utils.WriteValidationErrorResponse(w, "status must be AVAILABLE, PREFERRED or UNAVAILABLE")
			return
		}
	}

	avail := &models.WeekAvailability{UserID: user.ID, Entries: req.Entries}
	if err := h.store.SaveAvailability(avail); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"availability": avail})
}

// GET /api/availability
func (h *AvailabilityHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	avail, err := h.store.GetAvailability(user.ID)
	if err != nil {
		// No declared availability yet reads as an empty entry set.
		if errors.Is(err, models.ErrNotFound) {
			utils.WriteSuccessResponse(w, map[string]interface{}{
				"availability": models.WeekAvailability{UserID: user.ID, Entries: []models.AvailabilityEntry{}},
			})
			return
		}
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"availability": avail})
}
