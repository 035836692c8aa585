// Package calllogs maintains the append-only record of call attempts and
// the ad-hoc statistics derived from it.
package calllogs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/validation"
	"gorm.io/gorm"
)

// Service handles call log business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new call log service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Append records one call attempt. Logs are immutable facts: the
// representative name and script title are stored as copied strings, never
// as live references.
func (s *Service) Append(ctx context.Context, req models.CreateCallLogRequest) (*models.CallLogResponse, error) {
	callDatetime, err := parseTimestamp(req.CallDatetime)
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid call_datetime: %q", req.CallDatetime))
	}

	outcome := domain.CallOutcome(req.CallOutcome)
	if !domain.ValidOutcome(outcome) {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid call_outcome: %q", req.CallOutcome))
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		userID = domain.DefaultUserID
	}

	entry := domain.CallLog{
		UserID:             userID,
		RepresentativeName: validation.SanitizeInput(req.RepresentativeName),
		PhoneNumber:        validation.SanitizeInput(req.PhoneNumber),
		PhoneType:          validation.SanitizeInput(req.PhoneType),
		CallDatetime:       callDatetime,
		CallOutcome:        outcome,
		CallNotes:          validation.SanitizeInput(req.CallNotes),
		ScriptID:           req.ScriptID,
		ScriptTitle:        validation.SanitizeInput(req.ScriptTitle),
		SessionID:          validation.SanitizeInput(req.SessionID),
		IsTestData:         req.IsTestData,
	}
	if entry.RepresentativeName == "" {
		return nil, domain.NewValidationError("representative_name is required")
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	response := toResponse(&entry)
	return &response, nil
}

// List returns the filtered call logs, most recent call first.
func (s *Service) List(ctx context.Context, filter models.CallLogFilter) (*models.CallLogListResponse, error) {
	query, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.Outcome != "" {
		query = query.Where("call_outcome = ?", filter.Outcome)
	}

	var rows []domain.CallLog
	if err := query.Order("call_datetime DESC").Find(&rows).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	logs := make([]models.CallLogResponse, 0, len(rows))
	for i := range rows {
		logs = append(logs, toResponse(&rows[i]))
	}

	return &models.CallLogListResponse{CallLogs: logs, Total: len(logs)}, nil
}

// Stats aggregates the filtered logs into four groupings: by outcome, by
// calendar date, by representative name, and by script title (empty titles
// are not counted). Pure read-side computation.
func (s *Service) Stats(ctx context.Context, filter models.CallLogFilter) (*models.CallStatsResponse, error) {
	query, err := s.filtered(ctx, filter)
	if err != nil {
		return nil, err
	}

	var rows []domain.CallLog
	if err := query.Find(&rows).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	stats := &models.CallStatsResponse{
		TotalCalls:     len(rows),
		CallsByOutcome: make(map[string]int),
		CallsByDate:    make(map[string]int),
		CallsByRep:     make(map[string]int),
		CallsByScript:  make(map[string]int),
	}

	for i := range rows {
		row := &rows[i]
		stats.CallsByOutcome[string(row.CallOutcome)]++
		stats.CallsByDate[row.CallDatetime.Format("2006-01-02")]++
		stats.CallsByRep[row.RepresentativeName]++
		if row.ScriptTitle != "" {
			stats.CallsByScript[row.ScriptTitle]++
		}
	}

	return stats, nil
}

// filtered builds the base query shared by List and Stats: user scope,
// optional date range, and the test-data switch.
func (s *Service) filtered(ctx context.Context, filter models.CallLogFilter) (*gorm.DB, error) {
	userID := strings.TrimSpace(filter.UserID)
	if userID == "" {
		userID = domain.DefaultUserID
	}

	query := s.db.WithContext(ctx).Model(&domain.CallLog{}).Where("user_id = ?", userID)

	if filter.StartDate != "" {
		start, err := parseTimestamp(filter.StartDate)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid start_date: %q", filter.StartDate))
		}
		query = query.Where("call_datetime >= ?", start)
	}
	if filter.EndDate != "" {
		end, err := parseTimestamp(filter.EndDate)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid end_date: %q", filter.EndDate))
		}
		query = query.Where("call_datetime <= ?", end)
	}
	if !filter.IncludeTestData {
		query = query.Where("is_test_data = ?", false)
	}

	return query, nil
}

// parseTimestamp accepts RFC3339 timestamps and bare dates.
func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

func toResponse(log *domain.CallLog) models.CallLogResponse {
	return models.CallLogResponse{
		ID:                 log.ID,
		UserID:             log.UserID,
		RepresentativeName: log.RepresentativeName,
		PhoneNumber:        log.PhoneNumber,
		PhoneType:          log.PhoneType,
		CallDatetime:       log.CallDatetime.UTC().Format(time.RFC3339),
		CallOutcome:        string(log.CallOutcome),
		CallNotes:          log.CallNotes,
		ScriptID:           log.ScriptID,
		ScriptTitle:        log.ScriptTitle,
		SessionID:          log.SessionID,
		IsTestData:         log.IsTestData,
		CreatedAt:          log.CreatedAt.UTC().Format(time.RFC3339),
	}
}
