package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/apperrors"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

// Authorize checks that the principal may act on a directly-owned entity.
// Cross-tenant access fails with PermissionDenied, not NotFound: existence
// is intentionally not hidden from other tenants.
func Authorize(principal *models.User, entity models.TenantOwned) error {
	if principal.IsSuperuser {
		return nil
	}
	if entity.OwnerOrganization() != principal.OrganizationID {
		return apperrors.PermissionDenied("Not enough permissions")
	}
	return nil
}

// AuthorizeVehicle walks the client edge to resolve a vehicle's effective
// tenant before permitting access.
func AuthorizeVehicle(ctx context.Context, db *gorm.DB, principal *models.User, vehicle *models.Vehicle) error {
	if principal.IsSuperuser {
		return nil
	}
	orgID, err := VehicleTenant(ctx, db, vehicle)
	if err != nil {
		return err
	}
	if orgID != principal.OrganizationID {
		return apperrors.PermissionDenied("Not enough permissions")
	}
	return nil
}

// VehicleTenant resolves the organization that owns a vehicle through its
// client. Vehicles have no organization_id of their own.
func VehicleTenant(ctx context.Context, db *gorm.DB, vehicle *models.Vehicle) (uuid.UUID, error) {
	var client models.Client
	result := db.WithContext(ctx).First(&client, "id = ?", vehicle.ClientID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return uuid.Nil, apperrors.NotFound("Client not found")
		}
		return uuid.Nil, apperrors.Internal("failed to resolve vehicle owner", result.Error)
	}
	return client.OrganizationID, nil
}
