package scripts

import (
	"context"
	"testing"

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

func TestCreateAndGet(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	created, err := service.Create(ctx, models.CreateScriptRequest{
		Title:   "Healthcare Reform",
		Content: "Hi, I'm calling about healthcare reform.",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Healthcare Reform", got.Title)
}

func TestCreateSanitizes(t *testing.T) {
	service := NewService(setupTestDB(t))

	created, err := service.Create(context.Background(), models.CreateScriptRequest{
		Title:   "<b>Climate</b> Action",
		Content: "Hello<script>alert(1)</script> there",
	})
	require.NoError(t, err)
	assert.Equal(t, "Climate Action", created.Title)
	assert.Equal(t, "Helloalert(1) there", created.Content)
}

func TestCreateRequiresContent(t *testing.T) {
	service := NewService(setupTestDB(t))

	_, err := service.Create(context.Background(), models.CreateScriptRequest{Title: "Empty"})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdatePartialMerge(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	created, err := service.Create(ctx, models.CreateScriptRequest{
		Title:   "Education Funding",
		Content: "Original content",
	})
	require.NoError(t, err)

	newTitle := "Education Funding v2"
	updated, err := service.Update(ctx, created.ID, models.UpdateScriptRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Education Funding v2", updated.Title)
	assert.Equal(t, "Original content", updated.Content)
}

func TestUpdateMissing(t *testing.T) {
	service := NewService(setupTestDB(t))

	title := "x"
	_, err := service.Update(context.Background(), 42, models.UpdateScriptRequest{Title: &title})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDelete(t *testing.T) {
	service := NewService(setupTestDB(t))
	ctx := context.Background()

	created, err := service.Create(ctx, models.CreateScriptRequest{
		Title:   "Gun Control",
		Content: "content",
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	_, err = service.Get(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	err = service.Delete(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	ctx := context.Background()

	_, err := service.Create(ctx, models.CreateScriptRequest{Title: "First", Content: "a"})
	require.NoError(t, err)
	_, err = service.Create(ctx, models.CreateScriptRequest{Title: "Second", Content: "b"})
	require.NoError(t, err)

	list, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
}
