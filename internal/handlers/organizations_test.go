package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

func (s *testServer) promoteToSuperuser(email string) {
	err := s.db.Model(&models.User{}).Where("email = ?", email).
		Update("is_superuser", true).Error
	require.NoError(s.t, err)
}

func TestOrganizationGlobalListIsSuperuserOnly(t *testing.T) {
	s := newTestServer(t)
	admin := s.registerAndLogin("admin@ewash.co")
	s.registerAndLogin("other@ewash.co")

	rec := s.request(http.MethodGet, "/api/v1/organizations", admin, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code, "a regular admin only sees their own organization")

	s.promoteToSuperuser("admin@ewash.co")
	// Re-login so no stale principal is cached anywhere.
	rec = s.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "admin@ewash.co", "password": "password123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.request(http.MethodGet, "/api/v1/organizations", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeJSON(t, rec)
	assert.Equal(t, float64(2), page["total"])
}

func TestOrganizationMe(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodGet, "/api/v1/organizations/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Lavadero admin@ewash.co", data["name"])

	rec = s.request(http.MethodPut, "/api/v1/organizations/me", token, gin.H{
		"name": "Lavadero El Trebol",
		"city": "Bogota",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "Lavadero El Trebol", data["name"])
	assert.Equal(t, "Bogota", data["city"])
}

func TestOrganizationParentChainValidation(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodGet, "/api/v1/organizations/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ownID := decodeJSON(t, rec)["data"].(map[string]interface{})["id"].(string)

	// Self-parenting is a cycle.
	rec = s.request(http.MethodPut, "/api/v1/organizations/me", token, gin.H{
		"parent_organization_id": ownID,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown parent.
	rec = s.request(http.MethodPut, "/api/v1/organizations/me", token, gin.H{
		"parent_organization_id": "6b1de7b4-58ff-4a9c-9ae1-000000000000",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuthMe(t *testing.T) {
	s := newTestServer(t)
	token := s.registerAndLogin("admin@ewash.co")

	rec := s.request(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "admin@ewash.co", data["email"])
	_, leaked := data["hashed_password"]
	assert.False(t, leaked, "password hash never leaves the API")
}
