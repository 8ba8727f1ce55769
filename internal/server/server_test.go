package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"github.com/unclebandit/customer-service/internal/controller"
	"github.com/unclebandit/customer-service/internal/handler"
	"github.com/unclebandit/customer-service/internal/metrics"
	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/repository"
	"github.com/unclebandit/customer-service/internal/server"
	"github.com/unclebandit/customer-service/internal/service"
	"github.com/unclebandit/customer-service/internal/testutil"
)

const allowedOrigin = "http://localhost:3000"

func newTestRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db := testutil.NewSQLiteDB(t)
	require.NoError(t, repository.EnsureSchema(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	svc := service.NewCustomerService(repository.NewCustomerRepository(db))

	router := server.NewRouter(server.Deps{
		CustomerController: controller.NewCustomerController(svc, log),
		HealthHandler:      handler.NewHealthHandler(sqlDB, log),
		Metrics:            metrics.New(),
		Logger:             log,
		AllowedOrigin:      "http://localhost:3000/",
		RequestTimeout:     5 * time.Second,
	})
	return router, db
}

func do(h http.Handler, method, target, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func countCustomers(t *testing.T, db *gorm.DB) int64 {
	var n int64
	require.NoError(t, db.Raw(`SELECT COUNT(*) FROM "Customer"`).Scan(&n).Error)
	return n
}

func TestGetCustomerFromAllowedOrigin(t *testing.T) {
	router, db := newTestRouter(t)
	testutil.InsertCustomer(t, db, "Jane", "Doe", "1 Main St", "Springfield")

	w := do(router, http.MethodGet, "/getcustomer", allowedOrigin)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t,
		`[{"id":1,"firstName":"Jane","lastName":"Doe","address":"1 Main St","city":"Springfield"}]`,
		strings.TrimSpace(w.Body.String()),
	)
}

func TestGetCustomerLengthMatchesRowCount(t *testing.T) {
	router, db := newTestRouter(t)
	for _, city := range []string{"Springfield", "Shelbyville", "Ogdenville", "North Haverbrook"} {
		testutil.InsertCustomer(t, db, "First", "Last", "Somewhere", city)
	}

	w := do(router, http.MethodGet, "/getcustomer", "")
	require.Equal(t, http.StatusOK, w.Code)

	var customers []model.Customer
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &customers))
	assert.Len(t, customers, int(countCustomers(t, db)))
}

func TestGetCustomerEmptyStore(t *testing.T) {
	router, _ := newTestRouter(t)

	w := do(router, http.MethodGet, "/getcustomer", allowedOrigin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestGetCustomerIsIdempotent(t *testing.T) {
	router, db := newTestRouter(t)
	testutil.InsertCustomer(t, db, "Jane", "Doe", "1 Main St", "Springfield")
	testutil.InsertCustomer(t, db, "John", "Smith", "22 Elm Rd", "Shelbyville")

	first := do(router, http.MethodGet, "/getcustomer", "")
	second := do(router, http.MethodGet, "/getcustomer", "")

	var a, b []model.Customer
	require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
	assert.ElementsMatch(t, a, b)
}

func TestGetCustomerStoreFailure(t *testing.T) {
	router, db := newTestRouter(t)
	require.NoError(t, db.Exec(`DROP TABLE "Customer"`).Error)

	w := do(router, http.MethodGet, "/getcustomer", allowedOrigin)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func TestResetAccHasNoSideEffects(t *testing.T) {
	router, db := newTestRouter(t)
	testutil.InsertCustomer(t, db, "Jane", "Doe", "1 Main St", "Springfield")
	before := do(router, http.MethodGet, "/getcustomer", "").Body.String()

	for _, target := range []string{"/resetAcc", "/resetAcc?id=1&unlock=true"} {
		w := do(router, http.MethodGet, target, allowedOrigin)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Your Account has been Unlocked Successfully ", w.Body.String())
	}

	assert.Equal(t, before, do(router, http.MethodGet, "/getcustomer", "").Body.String())
}

func TestResetAccWithBrokenStore(t *testing.T) {
	router, db := newTestRouter(t)
	require.NoError(t, db.Exec(`DROP TABLE "Customer"`).Error)

	w := do(router, http.MethodGet, "/resetAcc", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, controller.ResetAccountMessage, w.Body.String())
}

func TestDisallowedOriginIsRejected(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, origin := range []string{"http://evil.example", "http://localhost:3001", "https://localhost:3000"} {
		for _, target := range []string{"/getcustomer", "/resetAcc"} {
			w := do(router, http.MethodGet, target, origin)
			assert.Equal(t, http.StatusForbidden, w.Code, "%s from %s", target, origin)
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			assert.NotContains(t, w.Body.String(), "Unlocked")
		}
	}
}

func TestSameOriginRequestIsNotCORS(t *testing.T) {
	router, _ := newTestRouter(t)

	// httptest requests target host example.com
	w := do(router, http.MethodGet, "/resetAcc", "http://example.com")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPreflightFromAllowedOrigin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/getcustomer", nil)
	req.Header.Set("Origin", allowedOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, allowedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestPreflightFromDisallowedOrigin(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/getcustomer", nil)
	req.Header.Set("Origin", "http://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHeadAndTrailingSlash(t *testing.T) {
	router, _ := newTestRouter(t)

	head := do(router, http.MethodHead, "/resetAcc", "")
	assert.Equal(t, http.StatusOK, head.Code)

	slash := do(router, http.MethodGet, "/getcustomer/", "")
	assert.Equal(t, http.StatusOK, slash.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	health := do(router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())

	do(router, http.MethodGet, "/getcustomer", "")
	m := do(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, m.Code)
	assert.Contains(t, m.Body.String(), `route="/getcustomer"`)
}

func TestNewHTTPServer(t *testing.T) {
	srv := server.NewHTTPServer("9090", http.NotFoundHandler(), 30*time.Second)

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 30*time.Second, srv.ReadTimeout)
	assert.Greater(t, srv.WriteTimeout, srv.ReadTimeout)
}
