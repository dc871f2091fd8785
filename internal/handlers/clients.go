package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// minSearchLength applies to the dedicated /clients/search endpoint.
const minSearchLength = 2

// CreateClientRequest is the client creation payload.
type CreateClientRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone" binding:"required"`
	Address  string `json:"address"`
}

// UpdateClientRequest is the client patch payload.
type UpdateClientRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

var clientSearchColumns = []string{"full_name", "phone", "email"}

func newClientRepo(db *gorm.DB) *repository.Repository[models.Client] {
	return repository.New[models.Client](db, repository.Options{
		Name:         "Client",
		TenantScoped: true,
		SoftDelete:   true,
	})
}

// RegisterClientRoutes mounts the client CRUD and search endpoints.
func RegisterClientRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := newClientRepo(db)
	rg.GET("", handleListClients(repo))
	rg.GET("/search", handleSearchClients(repo))
	rg.POST("", handleCreateClient(repo))
	rg.GET("/:id", handleGetClient(repo))
	rg.PUT("/:id", handleUpdateClient(repo))
	rg.DELETE("/:id", handleDeleteClient(repo))
}

func handleListClients(repo *repository.Repository[models.Client]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		q := repository.Query{
			TenantID:      user.OrganizationID,
			Search:        c.Query("search"),
			SearchColumns: clientSearchColumns,
			Params:        paginationParams(c),
			OrderBy:       "full_name ASC",
		}
		respondPage(c, repo, q)
	}
}

// handleSearchClients is the autocomplete-style search endpoint. Queries
// below the minimum length fail validation before touching the database.
func handleSearchClients(repo *repository.Repository[models.Client]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		query := strings.TrimSpace(c.Query("q"))
		if len(query) < minSearchLength {
			httpx.BadRequestResponse(c, "Search query must be at least 2 characters")
			return
		}

		q := repository.Query{
			TenantID:      user.OrganizationID,
			Search:        query,
			SearchColumns: clientSearchColumns,
			Params:        paginationParams(c),
			OrderBy:       "full_name ASC",
		}
		clients, err := repo.List(c.Request.Context(), q)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		c.JSON(200, clients)
	}
}

func handleCreateClient(repo *repository.Repository[models.Client]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		exists, err := repo.ExistsActive(ctx, "phone = ? AND organization_id = ?", req.Phone, user.OrganizationID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if exists {
			httpx.ConflictResponse(c, "Client with this phone number already exists")
			return
		}

		client := models.Client{
			FullName:       req.FullName,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			OrganizationID: user.OrganizationID,
		}
		if err := repo.Create(ctx, &client); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.CreatedResponse(c, "Client created successfully", client)
	}
}

func handleGetClient(repo *repository.Repository[models.Client]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		client, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, client); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Client retrieved successfully", client)
	}
}

func handleUpdateClient(repo *repository.Repository[models.Client]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		client, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, client); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.Phone != nil && *req.Phone != client.Phone {
			exists, err := repo.ExistsActive(ctx, "phone = ? AND organization_id = ? AND id != ?",
				*req.Phone, client.OrganizationID, client.ID)
			if err != nil {
				httpx.Error(c, err)
				return
			}
			if exists {
				httpx.ConflictResponse(c, "Client with this phone number already exists")
				return
			}
			client.Phone = *req.Phone
		}
		if req.FullName != nil {
			client.FullName = *req.FullName
		}
		if req.Email != nil {
			client.Email = *req.Email
		}
		if req.Address != nil {
			client.Address = *req.Address
		}

		if err := repo.Update(ctx, client); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Client updated successfully", client)
	}
}

func handleDeleteClient(repo *repository.Repository[models.Client]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		client, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, client); err != nil {
			httpx.Error(c, err)
			return
		}

		client, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Client deleted successfully", client)
	}
}
