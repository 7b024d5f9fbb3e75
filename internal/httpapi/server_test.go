package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hirenearby/internal/config"
	"github.com/maxaizer/hirenearby/internal/domain/models"
	"github.com/maxaizer/hirenearby/internal/repositories"
	"github.com/maxaizer/hirenearby/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type apiEnv struct {
	server *Server
	users  *repositories.CachedUsers
}

func newAPIEnv(t *testing.T, rateLimit int) *apiEnv {
	t.Helper()

	dbCtx, err := repositories.NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbCtx.Migrate())
	t.Cleanup(func() { _ = dbCtx.Close() })

	bus := EventBus.New()
	locks := services.NewJobLocks()
	users := repositories.NewCachedUsers(repositories.NewUsersRepository(dbCtx.DB), time.Minute)
	jobs := repositories.NewJobsRepository(dbCtx.DB)
	notifications := services.NewNotificationsService(repositories.NewNotificationsRepository(dbCtx.DB))

	dispatcher, err := services.NewNotificationDispatcher(bus, notifications)
	require.NoError(t, err)
	t.Cleanup(dispatcher.Stop)

	svc := Services{
		Auth: services.NewAuthService(users, services.NewTokenIssuer("test-secret-with-enough-length", time.Hour),
			bcrypt.MinCost),
		Jobs:          services.NewJobsService(jobs, bus, locks),
		Bids:          services.NewBidsService(repositories.NewBidsRepository(dbCtx.DB), jobs, users, bus, locks),
		Notifications: notifications,
		Admin:         services.NewAdminService(users, bus),
	}

	cfg := config.HTTPConfig{Address: ":0", RateLimitPerMinute: rateLimit, ShutdownTimeout: time.Second}
	return &apiEnv{server: New(cfg, svc), users: users}
}

func (env *apiEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.server.ServeHTTP(rec, req)
	return rec
}

func (env *apiEnv) signup(t *testing.T, name, email string) (models.User, string) {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/auth/signup", "", echoMap{
		"name": name, "email": email, "password": "password123", "location": "New York, NY",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var result services.AuthResult
	decode(t, rec, &result)
	return result.User, result.Token
}

type echoMap map[string]any

func decode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decode(t, rec, &body)
	return body.Error
}

func Test_BidLifecycleOverHTTP(t *testing.T) {
	env := newAPIEnv(t, 0)
	_, ownerToken := env.signup(t, "John Doe", "john@example.com")
	_, janeToken := env.signup(t, "Jane Smith", "jane@example.com")
	_, mikeToken := env.signup(t, "Mike Johnson", "mike@example.com")

	rec := env.do(t, http.MethodPost, "/api/jobs", ownerToken, echoMap{
		"title":    "Plumbing Repair - Kitchen Sink",
		"category": "Home Services",
		"location": "Downtown, City Center",
		"budget":   echoMap{"type": "fixed", "min": 75, "max": 150},
		"urgent":   true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var job models.Job
	decode(t, rec, &job)
	assert.Contains(t, rec.Body.String(), `"display":"$75 - $150"`)

	rec = env.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/bids", janeToken, echoMap{"amount": 120, "message": "Can start today"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var janeBid models.Bid
	decode(t, rec, &janeBid)

	rec = env.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/bids", mikeToken, echoMap{"amount": 200})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "bid amount must be between $75 and $150", errorOf(t, rec))

	rec = env.do(t, http.MethodPost, "/api/jobs/"+job.ID+"/bids", mikeToken, echoMap{"amount": 100})
	require.Equal(t, http.StatusCreated, rec.Code)
	var mikeBid models.Bid
	decode(t, rec, &mikeBid)

	rec = env.do(t, http.MethodPost, "/api/bids/"+janeBid.ID+"/accept", janeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/bids/"+janeBid.ID+"/accept", ownerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/jobs/"+job.ID+"/bids", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bids []models.Bid
	decode(t, rec, &bids)
	require.Len(t, bids, 2)
	assert.Equal(t, models.BidAccepted, bids[0].Status)
	assert.Equal(t, mikeBid.ID, bids[1].ID)
	assert.Equal(t, models.BidRejected, bids[1].Status)

	rec = env.do(t, http.MethodGet, "/api/jobs/"+job.ID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &job)
	assert.Equal(t, models.JobInProgress, job.Status)
	assert.Equal(t, 2, job.BidsCount)

	rec = env.do(t, http.MethodGet, "/api/notifications/unread-count", mikeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/notifications", mikeToken, nil)
	var notifications []models.Notification
	decode(t, rec, &notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationBidRejected, notifications[0].Type)

	rec = env.do(t, http.MethodPost, "/api/notifications/"+notifications[0].ID+"/read", janeToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/notifications/"+notifications[0].ID+"/read", mikeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/bids/mine", janeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &bids)
	require.Len(t, bids, 1)
	assert.Equal(t, models.BidAccepted, bids[0].Status)
}

func Test_ListJobsQueryParams(t *testing.T) {
	env := newAPIEnv(t, 0)
	_, ownerToken := env.signup(t, "John Doe", "john@example.com")
	_, viewerToken := env.signup(t, "Jane Smith", "jane@example.com")

	for _, body := range []echoMap{
		{"title": "Logo Design", "category": "Design", "budget": echoMap{"type": "fixed", "min": 200, "max": 500}},
		{"title": "Math Tutor", "category": "Education", "budget": echoMap{"type": "hourly", "rate": 30}, "urgent": true},
	} {
		rec := env.do(t, http.MethodPost, "/api/jobs", ownerToken, body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	var page models.JobsPage
	rec := env.do(t, http.MethodGet, "/api/jobs?category=design", viewerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Logo Design", page.Jobs[0].Title)

	rec = env.do(t, http.MethodGet, "/api/jobs?urgent=true&budgetType=hourly", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &page)
	require.Len(t, page.Jobs, 1)
	assert.Equal(t, "Math Tutor", page.Jobs[0].Title)

	rec = env.do(t, http.MethodGet, "/api/jobs", ownerToken, nil)
	decode(t, rec, &page)
	assert.Empty(t, page.Jobs)
	assert.Equal(t, models.Pagination{CurrentPage: 1}, page.Pagination)

	rec = env.do(t, http.MethodGet, "/api/jobs/mine", ownerToken, nil)
	var mine []models.Job
	decode(t, rec, &mine)
	assert.Len(t, mine, 2)

	for _, query := range []string{"page=two", "page=9223372036854775807", "budgetMin=cheap", "urgent=maybe", "budgetType=weekly"} {
		rec = env.do(t, http.MethodGet, "/api/jobs?"+query, "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func Test_AuthErrors(t *testing.T) {
	env := newAPIEnv(t, 0)
	_, token := env.signup(t, "John Doe", "john@example.com")

	rec := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "missing bearer token", errorOf(t, rec))

	rec = env.do(t, http.MethodGet, "/api/auth/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/login", "", echoMap{"email": "john@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/signup", "", echoMap{
		"name": "John Again", "email": "john@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	raw := httptest.NewRecorder()
	env.server.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)
	assert.Equal(t, "invalid JSON payload", errorOf(t, raw))

	rec = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = env.do(t, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_AdminEndpoints(t *testing.T) {
	env := newAPIEnv(t, 0)
	jane, janeToken := env.signup(t, "Jane Smith", "jane@example.com")
	adminToken := env.addAdmin(t)

	rec := env.do(t, http.MethodGet, "/api/admin/stats", janeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/users?filter=pending", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var pending []models.User
	decode(t, rec, &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, jane.ID, pending[0].ID)

	rec = env.do(t, http.MethodGet, "/api/admin/users?filter=everyone", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/admin/users/"+jane.ID+"/verify", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"totalUsers":2,"verifiedUsers":2,"pendingUsers":0}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/api/notifications", janeToken, nil)
	var notifications []models.Notification
	decode(t, rec, &notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Account Verified", notifications[0].Title)

	rec = env.do(t, http.MethodPost, "/api/notifications/read-all", janeToken, nil)
	assert.JSONEq(t, `{"updated":1}`, rec.Body.String())
}

func (env *apiEnv) addAdmin(t *testing.T) string {
	t.Helper()
	hash, err := services.HashPassword("admin123", bcrypt.MinCost)
	require.NoError(t, err)
	admin := models.NewUser("Admin User", "admin@hirenearby.com", hash, "San Francisco, CA", []string{"Management"})
	admin.Role, admin.IsVerified = models.RoleAdmin, true
	require.NoError(t, env.users.Add(context.Background(), admin))

	rec := env.do(t, http.MethodPost, "/api/auth/login", "", echoMap{"email": "admin@hirenearby.com", "password": "admin123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result services.AuthResult
	decode(t, rec, &result)
	assert.Equal(t, models.RoleAdmin, result.User.Role)
	return result.Token
}

func Test_RateLimiter(t *testing.T) {
	env := newAPIEnv(t, 2)

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodGet, "/api/jobs", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	rec := env.do(t, http.MethodGet, "/api/jobs", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", errorOf(t, rec))

	rec = env.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
