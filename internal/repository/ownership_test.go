package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SibartechCompany/eWash-Backend/internal/apperrors"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

func TestAuthorize(t *testing.T) {
	orgA := uuid.New()
	orgB := uuid.New()

	owner := &models.User{OrganizationID: orgA}
	stranger := &models.User{OrganizationID: orgB}
	superuser := &models.User{OrganizationID: orgB, IsSuperuser: true}

	client := &models.Client{OrganizationID: orgA}

	assert.NoError(t, Authorize(owner, client))
	assert.NoError(t, Authorize(superuser, client), "superusers bypass tenancy")

	err := Authorize(stranger, client)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err),
		"cross-tenant access is denied, not hidden")
}

func TestAuthorizeVehicleResolvesThroughClient(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	orgA := uuid.New()
	client := &models.Client{FullName: "Maria", Phone: "3001", OrganizationID: orgA}
	require.NoError(t, db.Create(client).Error)

	vehicle := &models.Vehicle{
		VehicleType: models.VehicleTypeCar, Plate: "ABC123", Model: "Corolla",
		ClientID: client.ID,
	}
	require.NoError(t, db.Create(vehicle).Error)

	owner := &models.User{OrganizationID: orgA}
	stranger := &models.User{OrganizationID: uuid.New()}
	superuser := &models.User{OrganizationID: uuid.New(), IsSuperuser: true}

	assert.NoError(t, AuthorizeVehicle(ctx, db, owner, vehicle))
	assert.NoError(t, AuthorizeVehicle(ctx, db, superuser, vehicle))

	err := AuthorizeVehicle(ctx, db, stranger, vehicle)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindPermissionDenied, apperrors.KindOf(err))
}

func TestVehicleTenantMissingClient(t *testing.T) {
	db := setupTestDB(t)

	vehicle := &models.Vehicle{ClientID: uuid.New()}
	_, err := VehicleTenant(context.Background(), db, vehicle)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}
