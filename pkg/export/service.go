// Package export generates downloadable CSV and Excel files of a user's
// call history.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/civicline/repcall/pkg/calllogs"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/logger"
	"github.com/civicline/repcall/pkg/models"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportTTL is how long a generated file stays downloadable.
const ExportTTL = 24 * time.Hour

var columns = []string{
	"ID", "Representative", "Phone", "Phone Type", "Call Time",
	"Outcome", "Notes", "Script", "Created At",
}

// Service handles export business logic
type Service struct {
	db          *gorm.DB
	logService  *calllogs.Service
	storagePath string
	log         logger.Logger
}

// NewService creates a new export service
func NewService(db *gorm.DB, logService *calllogs.Service, storagePath string, log logger.Logger) *Service {
	// Ensure storage directory exists
	os.MkdirAll(storagePath, 0755)

	if log == nil {
		log = logger.Default()
	}

	return &Service{
		db:          db,
		logService:  logService,
		storagePath: storagePath,
		log:         log,
	}
}

// CreateExport writes the user's filtered call logs to a file and records
// it for later download. Generation is synchronous: per-user call histories
// are small enough that a job queue would be overhead.
func (s *Service) CreateExport(ctx context.Context, req models.ExportCallLogsRequest) (*models.ExportResponse, error) {
	if req.Format != "csv" && req.Format != "excel" {
		return nil, domain.NewValidationError("format must be csv or excel")
	}

	list, err := s.logService.List(ctx, models.CallLogFilter{
		UserID:          req.UserID,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		IncludeTestData: req.IncludeTestData,
	})
	if err != nil {
		return nil, err
	}

	record := domain.ExportRecord{
		UserID:    userOrDefault(req.UserID),
		Format:    req.Format,
		Status:    domain.ExportStatusReady,
		RowCount:  list.Total,
		ExpiresAt: time.Now().Add(ExportTTL),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}

	filename := fmt.Sprintf("call-logs-%d-%s.%s", record.ID, time.Now().Format("20060102-150405"), extensionFor(req.Format))
	path := filepath.Join(s.storagePath, filename)

	if req.Format == "csv" {
		err = s.generateCSV(path, list.CallLogs)
	} else {
		err = s.generateExcel(path, list.CallLogs)
	}
	if err != nil {
		s.db.WithContext(ctx).Model(&record).Update("status", domain.ExportStatusFailed)
		return nil, domain.NewInternalError(err)
	}

	if err := s.db.WithContext(ctx).Model(&record).Update("file_path", path).Error; err != nil {
		return nil, domain.NewPersistenceError(err)
	}
	record.FilePath = path

	s.log.Info("export generated",
		"export_id", record.ID,
		"format", record.Format,
		"rows", record.RowCount,
	)

	return toResponse(&record), nil
}

// GetExport returns the metadata for one export owned by the user.
func (s *Service) GetExport(ctx context.Context, userID string, exportID uint) (*models.ExportResponse, error) {
	record, err := s.find(ctx, userID, exportID)
	if err != nil {
		return nil, err
	}
	return toResponse(record), nil
}

// FilePath resolves the on-disk file for a download request. Expired
// exports behave as if they never existed.
func (s *Service) FilePath(ctx context.Context, userID string, exportID uint) (string, error) {
	record, err := s.find(ctx, userID, exportID)
	if err != nil {
		return "", err
	}
	if record.Status != domain.ExportStatusReady || record.FilePath == "" {
		return "", domain.NewNotFoundError("export file")
	}
	if time.Now().After(record.ExpiresAt) {
		return "", domain.NewNotFoundError("export file")
	}
	return record.FilePath, nil
}

// PurgeExpired deletes expired export files and their records. Returns the
// number of records removed.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	var expired []domain.ExportRecord
	err := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Find(&expired).Error
	if err != nil {
		return 0, domain.NewPersistenceError(err)
	}

	for i := range expired {
		if expired[i].FilePath != "" {
			os.Remove(expired[i].FilePath)
		}
		if err := s.db.WithContext(ctx).Delete(&expired[i]).Error; err != nil {
			return 0, domain.NewPersistenceError(err)
		}
	}
	if len(expired) > 0 {
		s.log.Info("purged expired exports", "count", len(expired))
	}
	return len(expired), nil
}

func (s *Service) find(ctx context.Context, userID string, exportID uint) (*domain.ExportRecord, error) {
	var record domain.ExportRecord
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", exportID, userOrDefault(userID)).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("export")
		}
		return nil, domain.NewPersistenceError(err)
	}
	return &record, nil
}

func (s *Service) generateCSV(path string, logs []models.CallLogResponse) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, log := range logs {
		if err := writer.Write(rowFor(&log)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

func (s *Service) generateExcel(path string, logs []models.CallLogResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Call Logs"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	for i, header := range columns {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for rowIdx := range logs {
		row := rowIdx + 2
		for colIdx, value := range rowFor(&logs[rowIdx]) {
			cell := fmt.Sprintf("%c%d", 'A'+colIdx, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range columns {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, 18)
	}

	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

func rowFor(log *models.CallLogResponse) []string {
	return []string{
		strconv.FormatUint(uint64(log.ID), 10),
		log.RepresentativeName,
		log.PhoneNumber,
		log.PhoneType,
		log.CallDatetime,
		log.CallOutcome,
		log.CallNotes,
		log.ScriptTitle,
		log.CreatedAt,
	}
}

func extensionFor(format string) string {
	if format == "excel" {
		return "xlsx"
	}
	return "csv"
}

func userOrDefault(userID string) string {
	if userID == "" {
		return domain.DefaultUserID
	}
	return userID
}

func toResponse(record *domain.ExportRecord) *models.ExportResponse {
	return &models.ExportResponse{
		ID:        record.ID,
		Format:    record.Format,
		Status:    string(record.Status),
		RowCount:  record.RowCount,
		FileURL:   fmt.Sprintf("/api/v1/call-logs/exports/%d/download", record.ID),
		ExpiresAt: record.ExpiresAt.UTC().Format(time.RFC3339),
		CreatedAt: record.CreatedAt.UTC().Format(time.RFC3339),
	}
}
