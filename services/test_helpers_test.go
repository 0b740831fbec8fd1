package services

import (
	"testing"
	"time"

	"lexium/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated shared-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbName := "mem_" + uuid.New().String()
	db, err := gorm.Open(
		sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000"),
		&gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func mustUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u, err := CreateUser(db, UserInput{Username: username, FirstName: "Test", LastName: username})
	require.NoError(t, err)
	return u
}

func mustClient(t *testing.T, db *gorm.DB, code, name string) *models.Client {
	t.Helper()
	c, err := CreateClient(db, ClientInput{
		ClientType:   models.ClientTypeCompany,
		ClientCode:   code,
		Name:         name,
		Headquarters: "Budapest",
	})
	require.NoError(t, err)
	return c
}

func mustCompany(t *testing.T, db *gorm.DB, shortName string) *models.OutsourceCompany {
	t.Helper()
	c, err := CreateOutsourceCompany(db, OutsourceCompanyInput{Name: shortName + " Kft.", ShortName: shortName})
	require.NoError(t, err)
	return c
}

func mustCase(t *testing.T, db *gorm.DB, clientID uint, name string, billing models.BillingType, rate int64) *models.Case {
	t.Helper()
	c, err := CreateCase(db, CaseInput{
		Name:        name,
		ClientID:    clientID,
		BillingType: billing,
		RateAmount:  decimal.NewFromInt(rate),
		IsActive:    true,
	})
	require.NoError(t, err)
	return c
}

func mustWork(t *testing.T, db *gorm.DB, userID, caseID uint, date, start, end string, billed bool) *models.CaseWork {
	t.Helper()
	d, err := time.Parse(DateLayout, date)
	require.NoError(t, err)
	w, err := CreateCaseWork(db, CaseWorkInput{
		UserID:    userID,
		CaseID:    caseID,
		Date:      d,
		StartTime: models.MustParseTimeOfDay(start),
		EndTime:   models.MustParseTimeOfDay(end),
		Billed:    billed,
	})
	require.NoError(t, err)
	return w
}
