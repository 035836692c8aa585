package suggestions

import (
	"context"
	"strconv"
	"testing"

	"github.com/civicline/repcall/pkg/database"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
	"github.com/civicline/repcall/pkg/representatives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedSuggestion(t *testing.T, db *gorm.DB, zip, first, last string, position domain.Position) *domain.RepresentativeSuggestion {
	s := &domain.RepresentativeSuggestion{
		ZipCode:   zip,
		FirstName: first,
		LastName:  last,
		Position:  position,
		State:     "VA",
		Source:    "congress_gov",
	}
	require.NoError(t, db.Create(s).Error)
	require.NoError(t, db.Create(&domain.RepresentativeSuggestionPhone{
		SuggestionID: s.ID,
		Phone:        "(202) 224-2023",
		PhoneType:    "DC Office",
	}).Error)
	return s
}

func idStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestGetByZip(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	seedSuggestion(t, db, "22205", "Mark", "Warner", domain.PositionSenator)
	seedSuggestion(t, db, "22205", "Tim", "Kaine", domain.PositionSenator)
	seedSuggestion(t, db, "94102", "Nancy", "Pelosi", domain.PositionRepresentative)

	list, err := service.GetByZip(ctx, "22205")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Mark Warner", list[0].FullName)
	assert.Equal(t, "congress_gov", list[0].Source)
	require.Len(t, list[0].PhoneNumbers, 1)
	assert.Equal(t, "(202) 224-2023", list[0].PhoneNumbers[0].Phone)
}

func TestGetByZipRejectsBadZip(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	_, err := service.GetByZip(context.Background(), "abc")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAccept(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	warner := seedSuggestion(t, db, "22205", "Mark", "Warner", domain.PositionSenator)
	kaine := seedSuggestion(t, db, "22205", "Tim", "Kaine", domain.PositionSenator)

	result, err := service.Accept(ctx, models.AcceptSuggestionsRequest{
		ZipCode:       "22205",
		SuggestionIDs: []string{idStr(warner.ID), idStr(kaine.ID)},
	})
	require.NoError(t, err)
	require.Len(t, result.Added, 2)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "Added 2 representative(s)", result.Message)

	// phones are copied verbatim
	require.Len(t, result.Added[0].PhoneNumbers, 1)
	assert.Equal(t, "(202) 224-2023", result.Added[0].PhoneNumbers[0].Phone)
	assert.Nil(t, result.Added[0].CustomPosition)

	// promoted records show up in the authoritative lookup
	reps, err := representatives.NewService(db, nil).GetByZip(ctx, "22205")
	require.NoError(t, err)
	assert.Len(t, reps, 2)
}

func TestAcceptSkipsDuplicates(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	warner := seedSuggestion(t, db, "22205", "Mark", "Warner", domain.PositionSenator)
	kaine := seedSuggestion(t, db, "22205", "Tim", "Kaine", domain.PositionSenator)

	// Warner already exists as a live representative
	require.NoError(t, db.Create(&domain.Representative{
		ZipCode:   "22205",
		FirstName: "Mark",
		LastName:  "Warner",
		Position:  domain.PositionSenator,
	}).Error)

	result, err := service.Accept(ctx, models.AcceptSuggestionsRequest{
		ZipCode:       "22205",
		SuggestionIDs: []string{idStr(warner.ID), idStr(kaine.ID)},
	})
	require.NoError(t, err)
	require.Len(t, result.Added, 1)
	assert.Equal(t, "Tim Kaine", result.Added[0].FullName)
	assert.Equal(t, []string{"Mark Warner"}, result.Skipped)
	assert.Equal(t, "Added 1 representative(s), skipped 1 duplicate(s)", result.Message)
}

func TestAcceptSoftDeletedIsNotADuplicate(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	warner := seedSuggestion(t, db, "22205", "Mark", "Warner", domain.PositionSenator)

	rep := &domain.Representative{
		ZipCode:   "22205",
		FirstName: "Mark",
		LastName:  "Warner",
		Position:  domain.PositionSenator,
	}
	require.NoError(t, db.Create(rep).Error)
	require.NoError(t, db.Delete(rep).Error)

	result, err := service.Accept(ctx, models.AcceptSuggestionsRequest{
		ZipCode:       "22205",
		SuggestionIDs: []string{idStr(warner.ID)},
	})
	require.NoError(t, err)
	assert.Len(t, result.Added, 1)
	assert.Empty(t, result.Skipped)
}

func TestAcceptSkipsForeignZip(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	pelosi := seedSuggestion(t, db, "94102", "Nancy", "Pelosi", domain.PositionRepresentative)

	result, err := service.Accept(ctx, models.AcceptSuggestionsRequest{
		ZipCode:       "22205",
		SuggestionIDs: []string{idStr(pelosi.ID)},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Skipped)
	assert.Equal(t, "No suggestions were added", result.Message)
}

func TestAcceptSkipsMissingIDs(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	result, err := service.Accept(context.Background(), models.AcceptSuggestionsRequest{
		ZipCode:       "22205",
		SuggestionIDs: []string{"99999"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Skipped)
}

func TestAcceptRejectsNonNumericIDs(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	warner := seedSuggestion(t, db, "22205", "Mark", "Warner", domain.PositionSenator)

	_, err := service.Accept(context.Background(), models.AcceptSuggestionsRequest{
		ZipCode:       "22205",
		SuggestionIDs: []string{idStr(warner.ID), "abc"},
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	// nothing was written
	var count int64
	db.Model(&domain.Representative{}).Count(&count)
	assert.Zero(t, count)
}
