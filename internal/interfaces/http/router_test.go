package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userUsecases "stockdesk/internal/application/user/usecases"
	ticketvo "stockdesk/internal/domain/ticket/valueobjects"
	"stockdesk/internal/infrastructure/config"
	"stockdesk/internal/infrastructure/database"
	"stockdesk/internal/infrastructure/migration"
	"stockdesk/internal/interfaces/http/handlers/testutil"
	sharedConfig "stockdesk/internal/shared/config"
	"stockdesk/internal/shared/i18n"
	"stockdesk/internal/shared/logger"
	"stockdesk/internal/shared/utils"
)

const routerCSRFToken = "router-test-csrf-token"

// newTestRouter boots the full stack on a migrated sqlite file, as the server command does.
func newTestRouter(t *testing.T) *Router {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	db, err := database.Open(&sharedConfig.DatabaseConfig{Driver: "sqlite", File: filepath.Join(dir, "stockdesk.db")}, dir)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	m, err := migration.NewMigrator(db, logger.NewNop())
	require.NoError(t, err)
	_, err = m.Up(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{
		Server:    sharedConfig.ServerConfig{Mode: gin.TestMode, MaxUploadMB: 1, DefaultLanguage: "ru"},
		Auth:      sharedConfig.AuthConfig{SecretKey: "router-test-secret", SessionHours: 1, BcryptCost: bcrypt.MinCost},
		Storage:   sharedConfig.StorageConfig{DataDir: dir, UploadDir: "uploads"},
		RateLimit: sharedConfig.RateLimitConfig{LoginPerMinute: 100},
		Seed:      sharedConfig.SeedConfig{Enabled: true},
	}

	router, err := NewRouter(db, cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(router.Shutdown)

	require.NoError(t, router.Bootstrap(context.Background()))
	router.SetupRoutes()
	return router
}

// browser keeps cookies between requests and submits the CSRF token with every form.
type browser struct {
	t       *testing.T
	engine  *gin.Engine
	cookies map[string]string
}

func newBrowser(t *testing.T, router *Router) *browser {
	return &browser{
		t:       t,
		engine:  router.GetEngine(),
		cookies: map[string]string{utils.CSRFTokenCookie: routerCSRFToken},
	}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	for name, value := range b.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	w := httptest.NewRecorder()
	b.engine.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(b.cookies, ck.Name)
			continue
		}
		b.cookies[ck.Name] = ck.Value
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	form.Set(utils.CSRFFormField, routerCSRFToken)
	return b.do(testutil.NewFormRequest(http.MethodPost, path, form))
}

func (b *browser) login(username, password string) {
	b.t.Helper()
	w := b.post("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusSeeOther, w.Code, "login as %s", username)
	require.Equal(b.t, "/dashboard", w.Header().Get("Location"))
	require.NotEmpty(b.t, b.cookies[utils.SessionCookie])
}

func (b *browser) createTicket(project string) uint {
	b.t.Helper()
	w := b.post("/tickets/new", url.Values{
		"project_name":    {project},
		"applicant_name":  {"Ivan Petrov"},
		"applicant_phone": {"+7 900 123-45-67"},
		"description":     {"20 bags of cement"},
	})
	require.Equal(b.t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	require.True(b.t, strings.HasPrefix(location, "/tickets/"), location)
	id, err := strconv.ParseUint(strings.TrimPrefix(location, "/tickets/"), 10, 64)
	require.NoError(b.t, err)
	return uint(id)
}

func TestRouter_BootstrapIsRepeatable(t *testing.T) {
	router := newTestRouter(t)

	require.NoError(t, router.Bootstrap(context.Background()))

	b := newBrowser(t, router)
	b.login("admin", "admin123")
	assert.Equal(t, http.StatusOK, b.get("/admin/users").Code)
}

func TestRouter_RoleAccess(t *testing.T) {
	router := newTestRouter(t)

	applicant := newBrowser(t, router)
	applicant.login("applicant1", "test123")
	ticketID := applicant.createTicket("North block")
	ticketPath := "/tickets/" + strconv.FormatUint(uint64(ticketID), 10)

	_, err := router.ucs.createUser.Execute(context.Background(), userUsecases.CreateUserCommand{
		Username: "applicant2",
		Password: "test123",
		Role:     "applicant",
	})
	require.NoError(t, err)
	other := newBrowser(t, router)
	other.login("applicant2", "test123")

	stockman := newBrowser(t, router)
	stockman.login("stockman1", "test123")

	tests := []struct {
		name         string
		client       *browser
		path         string
		wantStatus   int
		wantLocation string
		wantFlash    string
	}{
		{
			name:         "stockman is sent back from the new ticket form",
			client:       stockman,
			path:         "/tickets/new",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/dashboard",
			wantFlash:    i18n.T(i18n.RU, "access.create_denied"),
		},
		{
			name:         "applicant is sent back from the user list",
			client:       applicant,
			path:         "/admin/users",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/dashboard",
			wantFlash:    i18n.T(i18n.RU, "access.role_denied"),
		},
		{
			name:       "applicant cannot open another applicant's ticket",
			client:     other,
			path:       ticketPath,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "owner opens own ticket",
			client:     applicant,
			path:       ticketPath,
			wantStatus: http.StatusOK,
		},
		{
			name:       "stockman opens any ticket",
			client:     stockman,
			path:       ticketPath,
			wantStatus: http.StatusOK,
		},
		{
			name:       "encoded traversal under uploads is not found",
			client:     stockman,
			path:       "/uploads/..%2f..",
			wantStatus: http.StatusNotFound,
		},
		{
			name:         "anonymous visitor is sent to login",
			client:       newBrowser(t, router),
			path:         "/dashboard",
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.client.get(tt.path)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
			}
			if tt.wantFlash != "" {
				assert.Contains(t, testutil.FlashMessages(t, w), tt.wantFlash)
			}
		})
	}
}

func TestRouter_PickedUpClosesTicket(t *testing.T) {
	router := newTestRouter(t)

	applicant := newBrowser(t, router)
	applicant.login("applicant1", "test123")
	ticketID := applicant.createTicket("South block")
	ticketPath := "/tickets/" + strconv.FormatUint(uint64(ticketID), 10)

	stockman := newBrowser(t, router)
	stockman.login("stockman1", "test123")

	w := stockman.post(ticketPath, url.Values{
		"action":           {"status"},
		"status":           {"picked_up"},
		"pickup_recipient": {"Foreman Sidorov"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, ticketPath, w.Header().Get("Location"))

	stored, err := router.repos.ticketRepo.GetByID(context.Background(), ticketID)
	require.NoError(t, err)
	assert.Equal(t, ticketvo.StatusClosed, stored.Status())
	assert.Equal(t, "Foreman Sidorov", stored.PickupRecipient())
	require.NotNil(t, stored.PickupAt())
	require.NotNil(t, stored.ClosedAt())
	assert.True(t, stored.PickupAt().Equal(*stored.ClosedAt()))

	// The applicant may not change status through the same form.
	w = applicant.post(ticketPath, url.Values{"action": {"status"}, "status": {"in_progress"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, testutil.FlashMessages(t, w), i18n.T(i18n.RU, "access.denied"))

	stored, err = router.repos.ticketRepo.GetByID(context.Background(), ticketID)
	require.NoError(t, err)
	assert.Equal(t, ticketvo.StatusClosed, stored.Status())
}
