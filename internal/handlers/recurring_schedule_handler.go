package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/services"
)

// RecurringScheduleHandler handles recurring schedule requests.
type RecurringScheduleHandler struct {
	scheduleService services.RecurringScheduleServicer
	auditService    services.AuditServicer
}

// NewRecurringScheduleHandler creates a new RecurringScheduleHandler.
func NewRecurringScheduleHandler(scheduleService services.RecurringScheduleServicer, auditService services.AuditServicer) *RecurringScheduleHandler {
	return &RecurringScheduleHandler{scheduleService: scheduleService, auditService: auditService}
}

// CreateScheduleRequest represents the request payload for creating a schedule.
// Exactly one of asset_id and liability_id must be set.
type CreateScheduleRequest struct {
	AssetID     *string `json:"asset_id" binding:"omitempty,uuid"`
	LiabilityID *string `json:"liability_id" binding:"omitempty,uuid"`
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	DayOfMonth  int     `json:"day_of_month" binding:"required,gte=1,lte=31"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     *string `json:"end_date"`
	Description string  `json:"description" binding:"max=500"`
}

// UpdateScheduleRequest represents the request payload for updating a schedule.
type UpdateScheduleRequest struct {
	Amount      *int64  `json:"amount" binding:"omitempty,gt=0"`
	DayOfMonth  *int    `json:"day_of_month" binding:"omitempty,gte=1,lte=31"`
	StartDate   *string `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Description *string `json:"description" binding:"omitempty,max=500"`
	IsActive    *bool   `json:"is_active"`
}

func scheduleFilterFromQuery(c *gin.Context) services.ScheduleFilter {
	var filter services.ScheduleFilter
	if v := c.Query("asset_id"); v != "" {
		filter.AssetID = &v
	}
	if v := c.Query("liability_id"); v != "" {
		filter.LiabilityID = &v
	}
	return filter
}

// CreateSchedule handles the creation of a new recurring schedule
// @Summary     Create a recurring schedule
// @Description Create a monthly recurring payment schedule against an asset or liability
// @Tags        schedules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateScheduleRequest true "Schedule details"
// @Success     201 {object} SuccessResponse{data=models.RecurringSchedule} "Schedule created"
// @Failure     400 {object} ErrorResponse "Invalid input or target"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Target not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schedules [post]
func (h *RecurringScheduleHandler) CreateSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	input := services.CreateScheduleInput{
		AssetID:     req.AssetID,
		LiabilityID: req.LiabilityID,
		Amount:      req.Amount,
		DayOfMonth:  req.DayOfMonth,
		StartDate:   startDate,
		Description: req.Description,
	}
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.EndDate = &endDate
	}

	schedule, err := h.scheduleService.CreateSchedule(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SCHEDULE", "recurring_schedule", schedule.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "day_of_month": req.DayOfMonth})

	respondSuccess(c, http.StatusCreated, "Schedule created successfully", schedule)
}

// GetSchedules handles the retrieval of schedules for a user
// @Summary     Get recurring schedules
// @Description Get the authenticated user's schedules. Unfiltered listings return active schedules only; filtering by target returns every schedule for that target.
// @Tags        schedules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       asset_id     query string false "Filter by asset"
// @Param       liability_id query string false "Filter by liability"
// @Success     200 {object} SuccessResponse{data=[]models.RecurringSchedule} "Schedules"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schedules [get]
func (h *RecurringScheduleHandler) GetSchedules(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedules, err := h.scheduleService.GetSchedules(userID, scheduleFilterFromQuery(c))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Schedules retrieved", schedules)
}

// GetScheduleByID handles the retrieval of a specific schedule
// @Summary     Get schedule by ID
// @Description Get a specific recurring schedule by ID for the authenticated user
// @Tags        schedules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Schedule ID"
// @Success     200 {object} SuccessResponse{data=models.RecurringSchedule} "Schedule details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Schedule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schedules/{id} [get]
func (h *RecurringScheduleHandler) GetScheduleByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.scheduleService.GetScheduleByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Schedule retrieved", schedule)
}

// UpdateSchedule handles updating a schedule.
// @Summary     Update schedule
// @Description Update an existing recurring schedule, including pausing or resuming it
// @Tags        schedules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                true "Schedule ID"
// @Param       request body UpdateScheduleRequest true "Updated schedule details"
// @Success     200 {object} SuccessResponse{data=models.RecurringSchedule} "Updated schedule"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Schedule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schedules/{id} [put]
func (h *RecurringScheduleHandler) UpdateSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	input := services.UpdateScheduleInput{
		Amount:      req.Amount,
		DayOfMonth:  req.DayOfMonth,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.StartDate != nil && *req.StartDate != "" {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.StartDate = &startDate
	}
	if req.EndDate != nil && *req.EndDate != "" {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			respondWithError(c, err)
			return
		}
		input.EndDate = &endDate
	}

	schedule, err := h.scheduleService.UpdateSchedule(userID, c.Param("id"), input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_SCHEDULE", "recurring_schedule", schedule.ID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles deleting a schedule.
// @Summary     Delete schedule
// @Description Delete a recurring schedule for the authenticated user
// @Tags        schedules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Schedule ID"
// @Success     200 {object} SuccessResponse "Schedule deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Schedule not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schedules/{id} [delete]
func (h *RecurringScheduleHandler) DeleteSchedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	scheduleID := c.Param("id")
	if err := h.scheduleService.DeleteSchedule(userID, scheduleID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SCHEDULE", "recurring_schedule", scheduleID, c.ClientIP(), nil)

	respondSuccess(c, http.StatusOK, "Schedule deleted successfully", nil)
}

// GetUpcomingPayments projects the user's schedules into upcoming occurrences.
// @Summary     Get upcoming payments
// @Description Project the matching schedules over the coming months and classify each occurrence as paid, due_today, or upcoming
// @Tags        schedules
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       months       query int    false "Projection window in months (default 12)"
// @Param       asset_id     query string false "Filter by asset"
// @Param       liability_id query string false "Filter by liability"
// @Success     200 {object} SuccessResponse{data=[]services.UpcomingPayment} "Upcoming payments, sorted by date"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /schedules/upcoming [get]
func (h *RecurringScheduleHandler) GetUpcomingPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := 12
	if v := c.Query("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 120 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be an integer between 1 and 120"))
			return
		}
		months = parsed
	}

	payments, err := h.scheduleService.ProjectUpcoming(userID, scheduleFilterFromQuery(c), months, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Upcoming payments retrieved", payments)
}
