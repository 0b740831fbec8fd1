package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"lexium/config"
	"lexium/middleware"
	"lexium/models"
	"lexium/services"
	"lexium/services/i18n"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// fakePDF records the HTML it was asked to print
type fakePDF struct {
	html string
	opts services.PDFOptions
}

func (f *fakePDF) RenderPDF(ctx context.Context, htmlContent string, options services.PDFOptions) ([]byte, error) {
	f.html = htmlContent
	f.opts = options
	return []byte("%PDF-1.4 fake"), nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// Use unique shared memory name to isolate tests
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(
		sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000"),
		&gorm.Config{TranslateError: true, Logger: logger.Default.LogMode(logger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, testDB.AutoMigrate(models.All()...))

	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return testDB
}

// setupServer wires a handler and the middleware the pages depend on. CSRF
// is left out so tests can post forms directly.
func setupServer(t *testing.T) (*Handler, *echo.Echo) {
	t.Helper()
	cfg := &config.Config{
		Environment:     "test",
		DefaultLanguage: "en",
		ExportDir:       t.TempDir(),
	}
	h := &Handler{
		DB:      setupTestDB(t),
		Cfg:     cfg,
		PDF:     &fakePDF{},
		Storage: services.NewLocalStorage(cfg.ExportDir),
		Flash:   middleware.NewFlasher([]byte("test-secret-key-of-32-bytes-long"), false),
		Now:     func() time.Time { return testNow },
	}

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.Locale(cfg))
	e.Use(h.Flash.Middleware())
	h.RegisterRoutes(e)
	return h, e
}

func doGet(e *echo.Echo, path string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doGetWithCookie(e *echo.Echo, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doPost(e *echo.Echo, path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// flashCookie returns the flash cookie set by a response
func flashCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	var found *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "lexium_flash" && c.Value != "" {
			found = c
		}
	}
	require.NotNil(t, found, "expected a flash cookie")
	return found
}

func seedClient(t *testing.T, db *gorm.DB, code, name string) *models.Client {
	t.Helper()
	c, err := services.CreateClient(db, services.ClientInput{
		ClientType:   models.ClientTypeCompany,
		ClientCode:   code,
		Name:         name,
		Headquarters: "Budapest",
	})
	require.NoError(t, err)
	return c
}

func seedCase(t *testing.T, db *gorm.DB, clientID uint, name string, rate int64) *models.Case {
	t.Helper()
	c, err := services.CreateCase(db, services.CaseInput{
		Name:        name,
		ClientID:    clientID,
		BillingType: models.BillingTypeHourly,
		RateAmount:  decimal.NewFromInt(rate),
		IsActive:    true,
	})
	require.NoError(t, err)
	return c
}

func seedUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u, err := services.CreateUser(db, services.UserInput{Username: username, FirstName: "Anna", LastName: "Kovács"})
	require.NoError(t, err)
	return u
}

func seedWork(t *testing.T, db *gorm.DB, userID, caseID uint, date, start, end string) *models.CaseWork {
	t.Helper()
	d, err := services.ParseDate(date)
	require.NoError(t, err)
	w, err := services.CreateCaseWork(db, services.CaseWorkInput{
		UserID:    userID,
		CaseID:    caseID,
		Date:      d,
		StartTime: models.MustParseTimeOfDay(start),
		EndTime:   models.MustParseTimeOfDay(end),
	})
	require.NoError(t, err)
	return w
}
