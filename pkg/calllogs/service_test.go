package calllogs

import (
	"context"
	"testing"
	"time"

	"github.com/civicline/repcall/pkg/database"
	"github.com/civicline/repcall/pkg/domain"
	"github.com/civicline/repcall/pkg/models"
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

func logRequest(name, datetime, outcome string) models.CreateCallLogRequest {
	return models.CreateCallLogRequest{
		RepresentativeName: name,
		PhoneNumber:        "(202) 225-4965",
		PhoneType:          "DC Office",
		CallDatetime:       datetime,
		CallOutcome:        outcome,
	}
}

func TestAppend(t *testing.T) {
	service := NewService(setupTestDB(t))

	created, err := service.Append(context.Background(), models.CreateCallLogRequest{
		RepresentativeName: "Nancy Pelosi",
		PhoneNumber:        "(202) 225-4965",
		PhoneType:          "DC Office",
		CallDatetime:       "2026-08-27T14:30:00Z",
		CallOutcome:        "person",
		CallNotes:          "Spoke with <b>staffer</b> about the bill",
		ScriptTitle:        "Healthcare Reform",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.DefaultUserID, created.UserID)
	assert.Equal(t, "2026-08-27T14:30:00Z", created.CallDatetime)
	assert.Equal(t, "Spoke with staffer about the bill", created.CallNotes)
}

func TestAppendRejectsBadDatetime(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.Append(context.Background(), logRequest("Nancy Pelosi", "yesterday", "person"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAppendRejectsBadOutcome(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.Append(context.Background(), logRequest("Nancy Pelosi", "2026-08-27T14:30:00Z", "hung_up"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestListNewestCallFirst(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	_, err := service.Append(ctx, logRequest("Mark Warner", "2026-08-25T09:00:00Z", "voicemail"))
	require.NoError(t, err)
	_, err = service.Append(ctx, logRequest("Tim Kaine", "2026-08-27T09:00:00Z", "person"))
	require.NoError(t, err)

	list, err := service.List(ctx, models.CallLogFilter{})
	require.NoError(t, err)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, "Tim Kaine", list.CallLogs[0].RepresentativeName)
	assert.Equal(t, "Mark Warner", list.CallLogs[1].RepresentativeName)
}

func TestListFilters(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	_, err := service.Append(ctx, logRequest("Mark Warner", "2026-08-20T09:00:00Z", "voicemail"))
	require.NoError(t, err)
	_, err = service.Append(ctx, logRequest("Tim Kaine", "2026-08-25T09:00:00Z", "person"))
	require.NoError(t, err)
	_, err = service.Append(ctx, logRequest("Nancy Pelosi", "2026-08-27T09:00:00Z", "failed"))
	require.NoError(t, err)

	byOutcome, err := service.List(ctx, models.CallLogFilter{Outcome: "person"})
	require.NoError(t, err)
	require.Equal(t, 1, byOutcome.Total)
	assert.Equal(t, "Tim Kaine", byOutcome.CallLogs[0].RepresentativeName)

	byRange, err := service.List(ctx, models.CallLogFilter{
		StartDate: "2026-08-24",
		EndDate:   "2026-08-26",
	})
	require.NoError(t, err)
	require.Equal(t, 1, byRange.Total)
	assert.Equal(t, "Tim Kaine", byRange.CallLogs[0].RepresentativeName)
}

func TestListScopesToUser(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	req := logRequest("Mark Warner", "2026-08-25T09:00:00Z", "person")
	req.UserID = "alice"
	_, err := service.Append(ctx, req)
	require.NoError(t, err)
	_, err = service.Append(ctx, logRequest("Tim Kaine", "2026-08-25T10:00:00Z", "person"))
	require.NoError(t, err)

	alice, err := service.List(ctx, models.CallLogFilter{UserID: "alice"})
	require.NoError(t, err)
	require.Equal(t, 1, alice.Total)
	assert.Equal(t, "Mark Warner", alice.CallLogs[0].RepresentativeName)

	fallback, err := service.List(ctx, models.CallLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.Total)
}

func TestListExcludesTestDataByDefault(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	real := logRequest("Mark Warner", "2026-08-25T09:00:00Z", "person")
	_, err := service.Append(ctx, real)
	require.NoError(t, err)

	seeded := logRequest("Tim Kaine", "2026-08-25T10:00:00Z", "voicemail")
	seeded.IsTestData = true
	_, err = service.Append(ctx, seeded)
	require.NoError(t, err)

	list, err := service.List(ctx, models.CallLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	all, err := service.List(ctx, models.CallLogFilter{IncludeTestData: true})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestStats(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	outcomes := []string{"person", "voicemail", "failed"}
	for _, outcome := range outcomes {
		req := logRequest("Mark Warner", "2026-08-25T09:00:00Z", outcome)
		req.ScriptTitle = "Healthcare Reform"
		_, err := service.Append(ctx, req)
		require.NoError(t, err)
	}

	stats, err := service.Stats(ctx, models.CallLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalCalls)
	assert.Equal(t, map[string]int{"person": 1, "voicemail": 1, "failed": 1}, stats.CallsByOutcome)
	assert.Equal(t, map[string]int{"2026-08-25": 3}, stats.CallsByDate)
	assert.Equal(t, map[string]int{"Mark Warner": 3}, stats.CallsByRep)
	assert.Equal(t, map[string]int{"Healthcare Reform": 3}, stats.CallsByScript)
}

func TestStatsSkipsEmptyScriptTitles(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	_, err := service.Append(ctx, logRequest("Mark Warner", "2026-08-25T09:00:00Z", "person"))
	require.NoError(t, err)

	withScript := logRequest("Mark Warner", "2026-08-26T09:00:00Z", "person")
	withScript.ScriptTitle = "Education Funding"
	_, err = service.Append(ctx, withScript)
	require.NoError(t, err)

	stats, err := service.Stats(ctx, models.CallLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCalls)
	assert.Equal(t, map[string]int{"Education Funding": 1}, stats.CallsByScript)
}

func TestStatsEmpty(t *testing.T) {
	service := NewService(setupTestDB(t))

	stats, err := service.Stats(context.Background(), models.CallLogFilter{})
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCalls)
	assert.Empty(t, stats.CallsByOutcome)
}

func TestStatsDateKeys(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	ts := time.Date(2026, 8, 25, 23, 45, 0, 0, time.UTC)
	_, err := service.Append(ctx, logRequest("Mark Warner", ts.Format(time.RFC3339), "person"))
	require.NoError(t, err)

	stats, err := service.Stats(ctx, models.CallLogFilter{})
	require.NoError(t, err)
	assert.Contains(t, stats.CallsByDate, "2026-08-25")
}
