package handlers

import (
	"net/http"

	"shift-planner-backend/pkg/config"
	"shift-planner-backend/pkg/middleware"
	"shift-planner-backend/pkg/models"
	"shift-planner-backend/pkg/scheduling"
	"shift-planner-backend/pkg/utils"

	chiRoute "github.com/go-chi/chi/v5"
)

type SchedulesHandler struct {
	config    *config.Config
	schedules *scheduling.ScheduleService
}

func NewSchedulesHandler(cfg *config.Config, schedules *scheduling.ScheduleService) *SchedulesHandler {
	return &SchedulesHandler{config: cfg, schedules: schedules}
}

// POST /api/orgs/{orgID}/schedules
func (h *SchedulesHandler) Generate(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	var req struct {
		WeekStart string `json:"week_start"`
		NumDays   int    `json:"num_days"`
		Overwrite bool   `json:"overwrite"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	sched, err := h.schedules.GenerateWeek(r.Context(), user.ID, orgID, req.WeekStart, req.NumDays, req.Overwrite)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteCreatedResponse(w, map[string]interface{}{"schedule": sched})
}

// GET /api/orgs/{orgID}/schedules
func (h *SchedulesHandler) List(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	schedules, err := h.schedules.ListSchedules(r.Context(), user.ID, orgID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"schedules": schedules})
}

// GET /api/orgs/{orgID}/schedules/{scheduleID}
func (h *SchedulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	scheduleID := chiRoute.URLParam(r, "scheduleID")
	sched, err := h.schedules.GetSchedule(r.Context(), user.ID, orgID, scheduleID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"schedule": sched})
}

// PUT /api/orgs/{orgID}/schedules/{scheduleID}
// Read-modify-write replacement of the schedule's day content.
func (h *SchedulesHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	scheduleID := chiRoute.URLParam(r, "scheduleID")
	var req struct {
		Days map[string]*models.DayRecord `json:"days"`
	}
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.WriteBadRequestResponse(w, "Invalid body")
		return
	}
	if len(req.Days) == 0 {
		utils.WriteValidationErrorResponse(w, "days required")
		return
	}
	sched, err := h.schedules.UpdateDays(r.Context(), user.ID, orgID, scheduleID, req.Days)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"schedule": sched})
}

// POST /api/orgs/{orgID}/schedules/{scheduleID}/publish
func (h *SchedulesHandler) Publish(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	scheduleID := chiRoute.URLParam(r, "scheduleID")
	sched, err := h.schedules.Publish(r.Context(), user.ID, orgID, scheduleID)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"schedule": sched})
}

// DELETE /api/orgs/{orgID}/schedules/{scheduleID}
func (h *SchedulesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	scheduleID := chiRoute.URLParam(r, "scheduleID")
	if err := h.schedules.DeleteSchedule(r.Context(), user.ID, orgID, scheduleID); err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"deleted": true, "id": scheduleID})
}

// GET /api/orgs/{orgID}/schedules/candidates?date=&start=&end=
// Employees whose declared availability permits a shift on the date.
func (h *SchedulesHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.RequireUser(r.Context())
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Authentication required")
		return
	}
	orgID := chiRoute.URLParam(r, "orgID")
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.WriteValidationErrorResponse(w, "date required")
		return
	}
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	employees, err := h.schedules.AvailableEmployees(r.Context(), user.ID, orgID, date, start, end)
	if err != nil {
		utils.WriteDomainError(w, err)
		return
	}
	utils.WriteSuccessResponse(w, map[string]interface{}{"employees": employees})
}
