package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/pagination"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// maxAutocompleteResults bounds the autocomplete window.
const maxAutocompleteResults = 20

// CreateVehicleRequest is the vehicle creation payload. The referenced
// client must belong to the caller's organization.
type CreateVehicleRequest struct {
	VehicleType models.VehicleType `json:"vehicle_type" binding:"required"`
	Plate       string             `json:"plate" binding:"required"`
	Model       string             `json:"model" binding:"required"`
	Year        *int               `json:"year"`
	Color       string             `json:"color"`
	ClientID    uuid.UUID          `json:"client_id" binding:"required"`
}

// UpdateVehicleRequest is the vehicle patch payload.
type UpdateVehicleRequest struct {
	VehicleType *models.VehicleType `json:"vehicle_type"`
	Plate       *string             `json:"plate"`
	Model       *string             `json:"model"`
	Year        *int                `json:"year"`
	Color       *string             `json:"color"`
}

func newVehicleRepo(db *gorm.DB) *repository.Repository[models.Vehicle] {
	// Vehicles are indirectly owned: no tenant column, ownership resolved
	// through the client.
	return repository.New[models.Vehicle](db, repository.Options{
		Name:       "Vehicle",
		SoftDelete: true,
	})
}

// RegisterVehicleRoutes mounts the vehicle endpoints.
func RegisterVehicleRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := newVehicleRepo(db)
	rg.GET("", handleListVehicles(db))
	rg.GET("/search", handleSearchVehicleByPlate(db))
	rg.GET("/autocomplete", handleAutocompleteVehicles(db))
	rg.POST("", handleCreateVehicle(db, repo))
	rg.GET("/:id", handleGetVehicle(db, repo))
	rg.PUT("/:id", handleUpdateVehicle(db, repo))
	rg.DELETE("/:id", handleDeleteVehicle(db, repo))
}

// tenantVehicleQuery scopes vehicles to the caller's organization through
// the client join. The same builder backs both the count and the fetch so
// the pagination envelope stays consistent.
func tenantVehicleQuery(db *gorm.DB, orgID uuid.UUID) *gorm.DB {
	return db.Model(&models.Vehicle{}).
		Joins("JOIN clients ON clients.id = vehicles.client_id").
		Where("clients.organization_id = ?", orgID).
		Where("vehicles.is_active = ?", true)
}

func handleListVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()
		params := paginationParams(c)

		build := func() *gorm.DB {
			q := tenantVehicleQuery(db.WithContext(ctx), user.OrganizationID)
			if rawClientID := c.Query("client_id"); rawClientID != "" {
				clientID, err := uuid.Parse(rawClientID)
				if err != nil {
					return nil
				}
				q = q.Where("vehicles.client_id = ?", clientID)
			}
			return q
		}

		countQuery := build()
		if countQuery == nil {
			httpx.BadRequestResponse(c, "Invalid client_id format")
			return
		}

		var total int64
		if err := countQuery.Count(&total).Error; err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to count vehicles")
			return
		}

		var vehicles []models.Vehicle
		err := build().Preload("Client").
			Order("vehicles.created_at DESC").
			Offset(params.Skip).Limit(params.Limit).
			Find(&vehicles).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to fetch vehicles")
			return
		}

		c.JSON(200, pagination.NewPage(vehicles, total, params))
	}
}

// handleSearchVehicleByPlate finds a single vehicle by plate substring
// within the caller's organization.
func handleSearchVehicleByPlate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		plate := strings.TrimSpace(c.Query("plate"))
		if plate == "" {
			httpx.BadRequestResponse(c, "plate query parameter is required")
			return
		}

		var vehicle models.Vehicle
		err := tenantVehicleQuery(db.WithContext(c.Request.Context()), user.OrganizationID).
			Where("LOWER(vehicles.plate) LIKE ?", "%"+strings.ToLower(plate)+"%").
			Preload("Client").
			First(&vehicle).Error
		if err != nil {
			httpx.NotFoundResponse(c, "Vehicle not found")
			return
		}
		httpx.OKResponse(c, "Vehicle retrieved successfully", vehicle)
	}
}

// handleAutocompleteVehicles matches plate or model for typeahead.
func handleAutocompleteVehicles(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			httpx.BadRequestResponse(c, "q query parameter is required")
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit <= 0 {
			limit = 10
		}
		if limit > maxAutocompleteResults {
			limit = maxAutocompleteResults
		}

		pattern := "%" + strings.ToLower(query) + "%"
		var vehicles []models.Vehicle
		err := tenantVehicleQuery(db.WithContext(c.Request.Context()), user.OrganizationID).
			Where("LOWER(vehicles.plate) LIKE ? OR LOWER(vehicles.model) LIKE ?", pattern, pattern).
			Preload("Client").
			Limit(limit).
			Find(&vehicles).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to fetch vehicles")
			return
		}
		c.JSON(200, vehicles)
	}
}

// handleCreateVehicle validates the ownership chain before persisting: the
// referenced client must exist and belong to the caller's organization.
func handleCreateVehicle(db *gorm.DB, repo *repository.Repository[models.Vehicle]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}
		if !models.ValidVehicleType(req.VehicleType) {
			httpx.BadRequestResponse(c, "Invalid vehicle type")
			return
		}

		var client models.Client
		if err := db.WithContext(ctx).First(&client, "id = ?", req.ClientID).Error; err != nil {
			httpx.NotFoundResponse(c, "Client not found")
			return
		}
		if !user.CanAccessOrganization(client.OrganizationID) {
			httpx.ForbiddenResponse(c, "Not enough permissions")
			return
		}

		vehicle := models.Vehicle{
			VehicleType: req.VehicleType,
			Plate:       req.Plate,
			Model:       req.Model,
			Year:        req.Year,
			Color:       req.Color,
			ClientID:    req.ClientID,
		}
		if err := repo.Create(ctx, &vehicle); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.CreatedResponse(c, "Vehicle created successfully", vehicle)
	}
}

func handleGetVehicle(db *gorm.DB, repo *repository.Repository[models.Vehicle]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		vehicle, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.AuthorizeVehicle(ctx, db, user, vehicle); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Vehicle retrieved successfully", vehicle)
	}
}

func handleUpdateVehicle(db *gorm.DB, repo *repository.Repository[models.Vehicle]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		vehicle, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.AuthorizeVehicle(ctx, db, user, vehicle); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateVehicleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.VehicleType != nil {
			if !models.ValidVehicleType(*req.VehicleType) {
				httpx.BadRequestResponse(c, "Invalid vehicle type")
				return
			}
			vehicle.VehicleType = *req.VehicleType
		}
		if req.Plate != nil {
			vehicle.Plate = *req.Plate
		}
		if req.Model != nil {
			vehicle.Model = *req.Model
		}
		if req.Year != nil {
			vehicle.Year = req.Year
		}
		if req.Color != nil {
			vehicle.Color = *req.Color
		}

		if err := repo.Update(ctx, vehicle); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Vehicle updated successfully", vehicle)
	}
}

func handleDeleteVehicle(db *gorm.DB, repo *repository.Repository[models.Vehicle]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		vehicle, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.AuthorizeVehicle(ctx, db, user, vehicle); err != nil {
			httpx.Error(c, err)
			return
		}

		vehicle, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Vehicle deleted successfully", vehicle)
	}
}
