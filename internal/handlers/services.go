package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// CreateServiceRequest is the service creation payload. Duration is in
// minutes.
type CreateServiceRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price" binding:"required"`
	Duration    int                `json:"duration" binding:"required"`
	VehicleType models.VehicleType `json:"vehicle_type" binding:"required"`
}

// UpdateServiceRequest is the service patch payload.
type UpdateServiceRequest struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Price       *decimal.Decimal    `json:"price"`
	Duration    *int                `json:"duration"`
	VehicleType *models.VehicleType `json:"vehicle_type"`
}

var serviceSearchColumns = []string{"name", "description"}

func newServiceRepo(db *gorm.DB) *repository.Repository[models.Service] {
	return repository.New[models.Service](db, repository.Options{
		Name:         "Service",
		TenantScoped: true,
		SoftDelete:   true,
	})
}

// RegisterServiceRoutes mounts the service catalog endpoints.
func RegisterServiceRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := newServiceRepo(db)
	rg.GET("", handleListServices(repo))
	rg.POST("", handleCreateService(repo))
	rg.GET("/:id", handleGetService(repo))
	rg.PUT("/:id", handleUpdateService(repo))
	rg.DELETE("/:id", handleDeleteService(repo))
	rg.PATCH("/:id/toggle-status", handleToggleServiceStatus(repo))
}

func handleListServices(repo *repository.Repository[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		q := repository.Query{
			TenantID:      user.OrganizationID,
			Search:        c.Query("search"),
			SearchColumns: serviceSearchColumns,
			Params:        paginationParams(c),
			OrderBy:       "name ASC",
		}
		if vt := c.Query("vehicle_type"); models.ValidVehicleType(models.VehicleType(vt)) {
			q.Filters = map[string]interface{}{"vehicle_type": vt}
		}
		respondPage(c, repo, q)
	}
}

func handleCreateService(repo *repository.Repository[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}
		if !models.ValidVehicleType(req.VehicleType) {
			httpx.BadRequestResponse(c, "Invalid vehicle type")
			return
		}
		if req.Price.IsNegative() {
			httpx.BadRequestResponse(c, "Price cannot be negative")
			return
		}
		if req.Duration <= 0 {
			httpx.BadRequestResponse(c, "Duration must be positive")
			return
		}

		exists, err := repo.ExistsActive(ctx, "name = ? AND organization_id = ?", req.Name, user.OrganizationID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if exists {
			httpx.ConflictResponse(c, "Service with this name already exists")
			return
		}

		service := models.Service{
			Name:           req.Name,
			Description:    req.Description,
			Price:          req.Price,
			Duration:       req.Duration,
			VehicleType:    req.VehicleType,
			OrganizationID: user.OrganizationID,
		}
		if err := repo.Create(ctx, &service); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.CreatedResponse(c, "Service created successfully", service)
	}
}

func handleGetService(repo *repository.Repository[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		service, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, service); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Service retrieved successfully", service)
	}
}

func handleUpdateService(repo *repository.Repository[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		service, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, service); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateServiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.Name != nil && *req.Name != service.Name {
			exists, err := repo.ExistsActive(ctx, "name = ? AND organization_id = ? AND id != ?",
				*req.Name, service.OrganizationID, service.ID)
			if err != nil {
				httpx.Error(c, err)
				return
			}
			if exists {
				httpx.ConflictResponse(c, "Service with this name already exists")
				return
			}
			service.Name = *req.Name
		}
		if req.VehicleType != nil {
			if !models.ValidVehicleType(*req.VehicleType) {
				httpx.BadRequestResponse(c, "Invalid vehicle type")
				return
			}
			service.VehicleType = *req.VehicleType
		}
		if req.Price != nil {
			if req.Price.IsNegative() {
				httpx.BadRequestResponse(c, "Price cannot be negative")
				return
			}
			// Existing orders keep their snapshotted amount.
			service.Price = *req.Price
		}
		if req.Duration != nil {
			if *req.Duration <= 0 {
				httpx.BadRequestResponse(c, "Duration must be positive")
				return
			}
			service.Duration = *req.Duration
		}
		if req.Description != nil {
			service.Description = *req.Description
		}

		if err := repo.Update(ctx, service); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Service updated successfully", service)
	}
}

func handleDeleteService(repo *repository.Repository[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		service, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, service); err != nil {
			httpx.Error(c, err)
			return
		}

		service, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Service deleted successfully", service)
	}
}

// handleToggleServiceStatus flips the visibility flag so a service can be
// taken off the catalog and brought back without recreating it.
func handleToggleServiceStatus(repo *repository.Repository[models.Service]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		service, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, service); err != nil {
			httpx.Error(c, err)
			return
		}

		service.IsActive = !service.IsActive
		if err := repo.Update(ctx, service); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Service status updated successfully", service)
	}
}
