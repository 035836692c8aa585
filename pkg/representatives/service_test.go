package representatives

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

func createRequest() models.CreateRepresentativeRequest {
	return models.CreateRepresentativeRequest{
		ZipCode:  "94102",
		Name:     "Nancy Pelosi",
		Position: "Representative",
		Phone:    "2022254965",
	}
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	rep, err := service.Create(context.Background(), createRequest())
	require.NoError(t, err)

	assert.NotZero(t, rep.ID)
	assert.Equal(t, "Nancy", rep.FirstName)
	assert.Equal(t, "Pelosi", rep.LastName)
	assert.Equal(t, "Nancy Pelosi", rep.FullName)
	assert.Equal(t, "Representative", rep.DisplayPosition)
	require.Len(t, rep.PhoneNumbers, 1)
	assert.Equal(t, "(202) 225-4965", rep.PhoneNumbers[0].Phone)
}

func TestCreateWithPhoneList(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	req := models.CreateRepresentativeRequest{
		ZipCode:  "22205",
		Name:     "Mark Warner",
		Position: "Senator",
		Phones: []models.PhoneInput{
			{Phone: "12022242023", PhoneType: "DC Office"},
			{Phone: "703-555-0100", Extension: "12", PhoneType: "District Office"},
		},
	}

	rep, err := service.Create(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, rep.PhoneNumbers, 2)
	assert.Equal(t, "(202) 224-2023", rep.PhoneNumbers[0].Phone)
	assert.Equal(t, "(703) 555-0100", rep.PhoneNumbers[1].Phone)
	assert.Equal(t, "(703) 555-0100 ext. 12", rep.PhoneNumbers[1].DisplayPhone)
}

func TestCreateSingleTokenName(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	req := createRequest()
	req.Name = "Cher"

	rep, err := service.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Cher", rep.FirstName)
	assert.Equal(t, "", rep.LastName)
	assert.Equal(t, "Cher", rep.FullName)
}

func TestCreateOtherPosition(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	req := createRequest()
	req.Position = "Other"
	req.CustomPosition = "Governor"

	rep, err := service.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Governor", rep.DisplayPosition)

	// Other without a custom label is rejected
	req.CustomPosition = ""
	_, err = service.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateRejectsBeforeWrite(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	req := createRequest()
	req.Phones = []models.PhoneInput{
		{Phone: "2022254965"},
		{Phone: "12345"}, // bad digit count fails the whole operation
	}

	_, err := service.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	var count int64
	db.Model(&domain.Representative{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateInvalidPosition(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	req := createRequest()
	req.Position = "Mayor"

	_, err := service.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestGetByZip(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	_, err := service.Create(ctx, createRequest())
	require.NoError(t, err)

	other := createRequest()
	other.ZipCode = "22205"
	other.Name = "Tim Kaine"
	other.Position = "Senator"
	_, err = service.Create(ctx, other)
	require.NoError(t, err)

	reps, err := service.GetByZip(ctx, "94102")
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Equal(t, "Nancy Pelosi", reps[0].FullName)

	reps, err = service.GetByZip(ctx, "00000")
	require.NoError(t, err)
	assert.Empty(t, reps)
}

func TestGetByZipValidatesFirst(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)

	_, err := service.GetByZip(context.Background(), "not-a-zip")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestSoftDelete(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	rep, err := service.Create(ctx, createRequest())
	require.NoError(t, err)

	require.NoError(t, service.SoftDelete(ctx, rep.ID))

	// gone from lookups
	reps, err := service.GetByZip(ctx, "94102")
	require.NoError(t, err)
	assert.Empty(t, reps)

	// deleting again resolves to not found
	err = service.SoftDelete(ctx, rep.ID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	// the row survives for administrative queries
	admin, err := service.GetByIDAdmin(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nancy Pelosi", admin.FullName)
}

func TestAddPhone(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	rep, err := service.Create(ctx, createRequest())
	require.NoError(t, err)

	phone, err := service.AddPhone(ctx, rep.ID, models.AddPhoneRequest{
		Phone:     "4155554000",
		PhoneType: "District Office",
	})
	require.NoError(t, err)
	assert.Equal(t, "(415) 555-4000", phone.Phone)

	reps, err := service.GetByZip(ctx, "94102")
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Len(t, reps[0].PhoneNumbers, 2)
}

func TestAddPhoneToDeletedRep(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	rep, err := service.Create(ctx, createRequest())
	require.NoError(t, err)
	require.NoError(t, service.SoftDelete(ctx, rep.ID))

	_, err = service.AddPhone(ctx, rep.ID, models.AddPhoneRequest{Phone: "4155554000"})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestDeletePhone(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, nil)
	ctx := context.Background()

	rep, err := service.Create(ctx, createRequest())
	require.NoError(t, err)
	phoneID := rep.PhoneNumbers[0].ID

	require.NoError(t, service.DeletePhone(ctx, rep.ID, phoneID))

	reps, err := service.GetByZip(ctx, "94102")
	require.NoError(t, err)
	require.Len(t, reps, 1)
	assert.Empty(t, reps[0].PhoneNumbers)

	// second delete sees an absent row
	err = service.DeletePhone(ctx, rep.ID, phoneID)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
