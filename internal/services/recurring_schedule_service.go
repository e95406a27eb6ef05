package services

import (
	"errors"
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	apperrors "nidhi/internal/errors"
	"nidhi/internal/models"
)

// recurringScheduleService manages monthly recurring payment schedules and
// projects their upcoming occurrences against the recorded transactions.
type recurringScheduleService struct {
	db *gorm.DB
}

// NewRecurringScheduleService creates a new RecurringScheduleServicer.
func NewRecurringScheduleService(db *gorm.DB) RecurringScheduleServicer {
	return &recurringScheduleService{db: db}
}

func validateDayOfMonth(day int) error {
	if day < 1 || day > 31 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "day of month must be between 1 and 31")
	}
	return nil
}

// CreateSchedule creates a new recurring schedule. New schedules start active.
func (s *recurringScheduleService) CreateSchedule(userID string, input CreateScheduleInput) (*models.RecurringSchedule, error) {
	if err := validateTarget(input.AssetID, input.LiabilityID); err != nil {
		return nil, err
	}
	if input.Amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if err := validateDayOfMonth(input.DayOfMonth); err != nil {
		return nil, err
	}
	if input.StartDate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "start date is required")
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}

	if input.AssetID != nil {
		var count int64
		if err := s.db.Model(&models.Asset{}).Where("id = ? AND user_id = ?", *input.AssetID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrAssetNotFound
		}
	} else {
		var count int64
		if err := s.db.Model(&models.Liability{}).Where("id = ? AND user_id = ?", *input.LiabilityID, userID).Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrLiabilityNotFound
		}
	}

	schedule := &models.RecurringSchedule{
		UserID:      userID,
		AssetID:     input.AssetID,
		LiabilityID: input.LiabilityID,
		Amount:      input.Amount,
		DayOfMonth:  input.DayOfMonth,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
		IsActive:    true,
	}

	if err := s.db.Create(schedule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return schedule, nil
}

// GetSchedules retrieves a user's schedules, newest first. An unfiltered
// listing returns active schedules only; filtering by target returns every
// schedule for that target, paused ones included, so the target's detail view
// shows its full history.
func (s *recurringScheduleService) GetSchedules(userID string, filter ScheduleFilter) ([]models.RecurringSchedule, error) {
	query := s.db.Where("user_id = ?", userID)
	switch {
	case filter.AssetID != nil:
		query = query.Where("asset_id = ?", *filter.AssetID)
	case filter.LiabilityID != nil:
		query = query.Where("liability_id = ?", *filter.LiabilityID)
	default:
		query = query.Where("is_active = ?", true)
	}

	var schedules []models.RecurringSchedule
	if err := query.Order("created_at DESC").Find(&schedules).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if schedules == nil {
		schedules = []models.RecurringSchedule{}
	}
	return schedules, nil
}

// GetScheduleByID retrieves a schedule by ID for a specific user
func (s *recurringScheduleService) GetScheduleByID(userID, scheduleID string) (*models.RecurringSchedule, error) {
	var schedule models.RecurringSchedule
	if err := s.db.Where("id = ? AND user_id = ?", scheduleID, userID).First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrScheduleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &schedule, nil
}

// UpdateSchedule applies a partial update. The target record cannot change
// after creation.
func (s *recurringScheduleService) UpdateSchedule(userID, scheduleID string, input UpdateScheduleInput) (*models.RecurringSchedule, error) {
	schedule, err := s.GetScheduleByID(userID, scheduleID)
	if err != nil {
		return nil, err
	}

	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
		}
		schedule.Amount = *input.Amount
	}
	if input.DayOfMonth != nil {
		if err := validateDayOfMonth(*input.DayOfMonth); err != nil {
			return nil, err
		}
		schedule.DayOfMonth = *input.DayOfMonth
	}
	if input.StartDate != nil {
		schedule.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		schedule.EndDate = input.EndDate
	}
	if schedule.EndDate != nil && schedule.EndDate.Before(schedule.StartDate) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "end date must not be before start date")
	}
	if input.Description != nil {
		schedule.Description = *input.Description
	}
	if input.IsActive != nil {
		schedule.IsActive = *input.IsActive
	}

	if err := s.db.Save(schedule).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return schedule, nil
}

// DeleteSchedule deletes a schedule owned by the user
func (s *recurringScheduleService) DeleteSchedule(userID, scheduleID string) error {
	schedule, err := s.GetScheduleByID(userID, scheduleID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(schedule).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ProjectUpcoming expands the matching schedules into concrete occurrences
// over the given number of months starting at from, classifies each against
// the recorded transactions, and returns them sorted by date ascending. Only
// active schedules are projected; a target filter widens the listing to
// paused schedules, but a paused schedule never produces occurrences.
//
// An occurrence is generated per schedule per month on the schedule's day of
// month. A day past the end of a month rolls forward into the next month
// (Jan 31 + one month lands on Mar 2 or 3). Occurrences before the start
// date, after the end date, or already in the past are dropped; an occurrence
// falling on from's calendar day is kept as due_today. All calendar days are
// taken in UTC so occurrences and transactions agree on the day regardless of
// where either timestamp was produced.
func (s *recurringScheduleService) ProjectUpcoming(userID string, filter ScheduleFilter, months int, from time.Time) ([]UpcomingPayment, error) {
	if months <= 0 {
		months = 12
	}
	from = from.In(time.UTC)

	schedules, err := s.GetSchedules(userID, filter)
	if err != nil {
		return nil, err
	}

	paid, err := s.paidOccurrences(userID, filter)
	if err != nil {
		return nil, err
	}

	today := truncateToDay(from)

	payments := []UpcomingPayment{}
	for _, schedule := range schedules {
		if !schedule.IsActive {
			continue
		}
		start := truncateToDay(schedule.StartDate)
		for i := 0; i < months; i++ {
			occurrence := time.Date(from.Year(), from.Month()+time.Month(i), schedule.DayOfMonth,
				0, 0, 0, 0, time.UTC)

			if occurrence.Before(start) {
				continue
			}
			if schedule.EndDate != nil && occurrence.After(truncateToDay(*schedule.EndDate)) {
				continue
			}
			if occurrence.Before(today) {
				continue
			}

			status := PaymentStatusUpcoming
			switch {
			case paid[occurrenceKey(scheduleTarget(&schedule), occurrence, schedule.Amount)]:
				status = PaymentStatusPaid
			case occurrence.Equal(today):
				status = PaymentStatusDueToday
			}

			payments = append(payments, UpcomingPayment{
				Date:     occurrence,
				Amount:   schedule.Amount,
				Status:   status,
				Schedule: schedule,
			})
		}
	}

	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].Date.Before(payments[j].Date)
	})

	return payments, nil
}

// paidOccurrences indexes the user's transactions by target, day, and amount
// so projected occurrences can be marked paid by exact match.
func (s *recurringScheduleService) paidOccurrences(userID string, filter ScheduleFilter) (map[string]bool, error) {
	query := s.db.Where("user_id = ?", userID)
	switch {
	case filter.AssetID != nil:
		query = query.Where("asset_id = ?", *filter.AssetID)
	case filter.LiabilityID != nil:
		query = query.Where("liability_id = ?", *filter.LiabilityID)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	paid := make(map[string]bool, len(transactions))
	for _, t := range transactions {
		target := ""
		switch {
		case t.AssetID != nil:
			target = *t.AssetID
		case t.LiabilityID != nil:
			target = *t.LiabilityID
		}
		paid[occurrenceKey(target, t.Date, t.Amount)] = true
	}
	return paid, nil
}

func scheduleTarget(schedule *models.RecurringSchedule) string {
	if schedule.AssetID != nil {
		return *schedule.AssetID
	}
	if schedule.LiabilityID != nil {
		return *schedule.LiabilityID
	}
	return ""
}

// occurrenceKey keys an occurrence or transaction by its UTC calendar day so
// the two sides match even when their timestamps carry different locations.
func occurrenceKey(target string, date time.Time, amount int64) string {
	return target + "|" + date.In(time.UTC).Format("2006-01-02") + "|" + strconv.FormatInt(amount, 10)
}

func truncateToDay(t time.Time) time.Time {
	t = t.In(time.UTC)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
