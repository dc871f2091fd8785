package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SibartechCompany/eWash-Backend/internal/config"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

// testServer bundles the router and database of one API instance.
type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	t      *testing.T
}

func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")
	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	cfg := &config.Config{
		JWTSecret: "test-secret",
		TokenTTL:  time.Minute,
	}

	router := gin.New()
	Register(router, db, cfg, nil)

	return &testServer{router: router, db: db, t: t}
}

func (s *testServer) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

// registerAndLogin bootstraps an organization with its admin and returns a
// valid bearer token.
func (s *testServer) registerAndLogin(email string) string {
	rec := s.request(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"organization_name": "Lavadero " + email,
		"full_name":         "Admin " + email,
		"email":             email,
		"password":          "password123",
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var login LoginResponse
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(s.t, login.AccessToken)
	return login.AccessToken
}

func (s *testServer) createClient(token, name, phone string) string {
	rec := s.request(http.MethodPost, "/api/v1/clients", token, gin.H{
		"full_name": name,
		"phone":     phone,
	})
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeJSON(s.t, rec)["data"].(map[string]interface{})
	return data["id"].(string)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "admin@ewash.co",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "nobody@ewash.co",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	s := newTestServer(t)
	s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"organization_name": "Otro Lavadero",
		"full_name":         "Otro Admin",
		"email":             "admin@ewash.co",
		"password":          "password123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.request(http.MethodGet, "/api/v1/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.request(http.MethodGet, "/api/v1/clients", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestClientListEnvelope(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	for i := 0; i < 3; i++ {
		s.createClient(token, fmt.Sprintf("Cliente %d", i), fmt.Sprintf("300%d", i))
	}

	rec := s.request(http.MethodGet, "/api/v1/clients?limit=2", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := decodeJSON(t, rec)
	assert.Equal(t, float64(3), page["total"])
	assert.Equal(t, float64(1), page["page"])
	assert.Equal(t, float64(2), page["size"])
	assert.Equal(t, float64(2), page["pages"])
	assert.Len(t, page["items"], 2)
}

func TestClientSearchMinLength(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")
	s.createClient(token, "Maria Lopez", "3001234567")

	rec := s.request(http.MethodGet, "/api/v1/clients/search?q=M", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "single-character query is rejected before hitting the database")

	rec = s.request(http.MethodGet, "/api/v1/clients/search?q=mar", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Maria Lopez", results[0]["full_name"])
}

func TestClientDuplicatePhone(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")
	s.createClient(token, "Maria Lopez", "3001234567")

	rec := s.request(http.MethodPost, "/api/v1/clients", token, gin.H{
		"full_name": "Otra Maria",
		"phone":     "3001234567",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCrossTenantAccessIsForbidden(t *testing.T) {
	s := newTestServer(t)
	tokenA := s.registerAndLogin("a@ewash.co")
	tokenB := s.registerAndLogin("b@ewash.co")

	clientID := s.createClient(tokenA, "Maria Lopez", "3001234567")

	// The other tenant gets 403, not 404: existence is not hidden.
	rec := s.request(http.MethodGet, "/api/v1/clients/"+clientID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.request(http.MethodDelete, "/api/v1/clients/"+clientID, tokenB, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// And the owner still sees it.
	rec = s.request(http.MethodGet, "/api/v1/clients/"+clientID, tokenA, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTenantListIsolation(t *testing.T) {
	s := newTestServer(t)
	tokenA := s.registerAndLogin("a@ewash.co")
	tokenB := s.registerAndLogin("b@ewash.co")

	s.createClient(tokenA, "Maria Lopez", "3001")

	rec := s.request(http.MethodGet, "/api/v1/clients", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeJSON(t, rec)
	assert.Equal(t, float64(0), page["total"])
}

func TestBranchDuplicateCode(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	body := gin.H{"name": "Sede Norte", "code": "NORTE", "address": "Calle 100"}
	rec := s.request(http.MethodPost, "/api/v1/branches", token, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(http.MethodPost, "/api/v1/branches", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestVehicleCrossTenantCreate(t *testing.T) {
	s := newTestServer(t)
	tokenA := s.registerAndLogin("a@ewash.co")
	tokenB := s.registerAndLogin("b@ewash.co")

	clientA := s.createClient(tokenA, "Maria Lopez", "3001")

	rec := s.request(http.MethodPost, "/api/v1/vehicles", tokenB, gin.H{
		"vehicle_type": "car",
		"plate":        "ABC123",
		"model":        "Corolla",
		"client_id":    clientA,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	require.NoError(t, s.db.Model(&models.Vehicle{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "rejected vehicle must not be persisted")
}

func TestVehicleInvalidType(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")
	clientID := s.createClient(token, "Maria Lopez", "3001")

	rec := s.request(http.MethodPost, "/api/v1/vehicles", token, gin.H{
		"vehicle_type": "truck",
		"plate":        "ABC123",
		"model":        "F-150",
		"client_id":    clientID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVehicleSearchByPlate(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")
	clientID := s.createClient(token, "Maria Lopez", "3001")

	rec := s.request(http.MethodPost, "/api/v1/vehicles", token, gin.H{
		"vehicle_type": "car",
		"plate":        "ABC123",
		"model":        "Corolla",
		"client_id":    clientID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.request(http.MethodGet, "/api/v1/vehicles/search?plate=bc1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "ABC123", data["plate"])

	rec = s.request(http.MethodGet, "/api/v1/vehicles/search?plate=ZZZ", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.request(http.MethodGet, "/api/v1/vehicles/search", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEmployeeToggleStatus(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodPost, "/api/v1/employees", token, gin.H{
		"full_name":       "Ana Diaz",
		"document_type":   "CC",
		"document_number": "1020304050",
		"phone":           "3001",
		"position":        "washer",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
	employeeID := data["id"].(string)

	rec = s.request(http.MethodPatch, "/api/v1/employees/"+employeeID+"/toggle-status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "inactive", data["status"])

	rec = s.request(http.MethodPatch, "/api/v1/employees/"+employeeID+"/toggle-status", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "active", data["status"])
}

func TestEmployeeBadStartDate(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodPost, "/api/v1/employees", token, gin.H{
		"full_name":       "Ana Diaz",
		"document_type":   "CC",
		"document_number": "1020304050",
		"phone":           "3001",
		"position":        "washer",
		"start_date":      "15/01/2026",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServiceDuplicateName(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	body := gin.H{
		"name":         "Lavado Premium",
		"price":        25000,
		"duration":     45,
		"vehicle_type": "car",
	}
	rec := s.request(http.MethodPost, "/api/v1/services", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.request(http.MethodPost, "/api/v1/services", token, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
