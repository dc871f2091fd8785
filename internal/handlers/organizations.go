package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/apperrors"
	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// maxHierarchyDepth bounds the parent-organization walk; the chain has no
// legitimate reason to be this deep, so hitting the bound means a cycle.
const maxHierarchyDepth = 32

// UpdateOrganizationRequest is the patch payload for the caller's own
// organization. Only fields present in the body are applied.
type UpdateOrganizationRequest struct {
	Name                 *string                  `json:"name"`
	LegalName            *string                  `json:"legal_name"`
	TaxID                *string                  `json:"tax_id"`
	Email                *string                  `json:"email"`
	Phone                *string                  `json:"phone"`
	Address              *string                  `json:"address"`
	City                 *string                  `json:"city"`
	Website              *string                  `json:"website"`
	LogoURL              *string                  `json:"logo_url"`
	OrganizationType     *models.OrganizationType `json:"organization_type"`
	ParentOrganizationID *uuid.UUID               `json:"parent_organization_id"`
}

func newOrganizationRepo(db *gorm.DB) *repository.Repository[models.Organization] {
	return repository.New[models.Organization](db, repository.Options{
		Name:       "Organization",
		SoftDelete: true,
	})
}

// RegisterOrganizationRoutes mounts the organization endpoints. The global
// listing is superuser-only; everything else operates on the caller's own
// organization.
func RegisterOrganizationRoutes(rg *gin.RouterGroup, db *gorm.DB, authMW *middleware.AuthMiddleware) {
	repo := newOrganizationRepo(db)
	rg.GET("", authMW.RequireSuperuser(), handleListOrganizations(repo))
	rg.GET("/me", handleGetMyOrganization(repo))
	rg.PUT("/me", handleUpdateMyOrganization(db, repo))
}

// handleListOrganizations lists every organization. Superuser-only, so no
// tenant predicate is injected.
func handleListOrganizations(repo *repository.Repository[models.Organization]) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := repository.Query{
			Search:        c.Query("search"),
			SearchColumns: []string{"name", "legal_name", "tax_id"},
			Params:        paginationParams(c),
			OrderBy:       "created_at DESC",
		}
		respondPage(c, repo, q)
	}
}

func handleGetMyOrganization(repo *repository.Repository[models.Organization]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		org, err := repo.Get(c.Request.Context(), user.OrganizationID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Organization retrieved successfully", org)
	}
}

func handleUpdateMyOrganization(db *gorm.DB, repo *repository.Repository[models.Organization]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		org, err := repo.Get(ctx, user.OrganizationID)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateOrganizationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.Name != nil {
			org.Name = *req.Name
		}
		if req.LegalName != nil {
			org.LegalName = *req.LegalName
		}
		if req.TaxID != nil {
			org.TaxID = *req.TaxID
		}
		if req.Email != nil {
			org.Email = *req.Email
		}
		if req.Phone != nil {
			org.Phone = *req.Phone
		}
		if req.Address != nil {
			org.Address = *req.Address
		}
		if req.City != nil {
			org.City = *req.City
		}
		if req.Website != nil {
			org.Website = *req.Website
		}
		if req.LogoURL != nil {
			org.LogoURL = *req.LogoURL
		}
		if req.OrganizationType != nil {
			if *req.OrganizationType != models.OrganizationTypeMain && *req.OrganizationType != models.OrganizationTypeBranch {
				httpx.BadRequestResponse(c, "Invalid organization type")
				return
			}
			org.OrganizationType = *req.OrganizationType
		}
		if req.ParentOrganizationID != nil {
			if err := validateParentChain(ctx, db, org.ID, *req.ParentOrganizationID); err != nil {
				httpx.Error(c, err)
				return
			}
			org.ParentOrganizationID = req.ParentOrganizationID
		}

		if err := repo.Update(ctx, org); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Organization updated successfully", org)
	}
}

// validateParentChain walks the parent chain starting at the proposed parent
// and rejects the assignment when it loops back to the organization itself
// or exceeds the depth bound.
func validateParentChain(ctx context.Context, db *gorm.DB, orgID, parentID uuid.UUID) error {
	current := parentID
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		if current == orgID {
			return apperrors.Validation("Organization hierarchy cannot contain cycles")
		}

		var parent models.Organization
		result := db.WithContext(ctx).Select("id", "parent_organization_id").First(&parent, "id = ?", current)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				if current == parentID {
					return apperrors.NotFound("Parent organization not found")
				}
				return nil
			}
			return apperrors.Internal("failed to resolve parent organization", result.Error)
		}
		if parent.ParentOrganizationID == nil {
			return nil
		}
		current = *parent.ParentOrganizationID
	}
	return apperrors.Validation("Organization hierarchy too deep")
}
