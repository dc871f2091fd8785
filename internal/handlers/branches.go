package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// CreateBranchRequest is the branch creation payload. organization_id is
// never accepted from the caller; it is derived from the principal.
type CreateBranchRequest struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	Description  string `json:"description"`
	Address      string `json:"address" binding:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	ManagerName  string `json:"manager_name"`
	ManagerPhone string `json:"manager_phone"`
	IsMain       bool   `json:"is_main"`
}

// UpdateBranchRequest is the branch patch payload.
type UpdateBranchRequest struct {
	Name         *string `json:"name"`
	Code         *string `json:"code"`
	Description  *string `json:"description"`
	Address      *string `json:"address"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
	ManagerName  *string `json:"manager_name"`
	ManagerPhone *string `json:"manager_phone"`
	IsMain       *bool   `json:"is_main"`
}

var branchSearchColumns = []string{"name", "code", "address"}

func newBranchRepo(db *gorm.DB) *repository.Repository[models.Branch] {
	return repository.New[models.Branch](db, repository.Options{
		Name:         "Branch",
		TenantScoped: true,
		SoftDelete:   true,
	})
}

// RegisterBranchRoutes mounts the branch CRUD endpoints.
func RegisterBranchRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := newBranchRepo(db)
	rg.GET("", handleListBranches(repo))
	rg.POST("", handleCreateBranch(repo))
	rg.GET("/:id", handleGetBranch(repo))
	rg.PUT("/:id", handleUpdateBranch(repo))
	rg.DELETE("/:id", handleDeleteBranch(repo))
}

func handleListBranches(repo *repository.Repository[models.Branch]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		q := repository.Query{
			TenantID:      user.OrganizationID,
			Search:        c.Query("search"),
			SearchColumns: branchSearchColumns,
			Params:        paginationParams(c),
			OrderBy:       "name ASC",
		}
		respondPage(c, repo, q)
	}
}

func handleCreateBranch(repo *repository.Repository[models.Branch]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateBranchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		exists, err := repo.ExistsActive(ctx, "code = ? AND organization_id = ?", req.Code, user.OrganizationID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if exists {
			httpx.ConflictResponse(c, "Branch with this code already exists")
			return
		}

		branch := models.Branch{
			Name:           req.Name,
			Code:           req.Code,
			Description:    req.Description,
			Address:        req.Address,
			Phone:          req.Phone,
			Email:          req.Email,
			ManagerName:    req.ManagerName,
			ManagerPhone:   req.ManagerPhone,
			IsMain:         req.IsMain,
			OrganizationID: user.OrganizationID,
		}
		if err := repo.Create(ctx, &branch); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.CreatedResponse(c, "Branch created successfully", branch)
	}
}

func handleGetBranch(repo *repository.Repository[models.Branch]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		branch, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, branch); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Branch retrieved successfully", branch)
	}
}

func handleUpdateBranch(repo *repository.Repository[models.Branch]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		branch, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, branch); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateBranchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.Code != nil && *req.Code != branch.Code {
			exists, err := repo.ExistsActive(ctx, "code = ? AND organization_id = ? AND id != ?",
				*req.Code, branch.OrganizationID, branch.ID)
			if err != nil {
				httpx.Error(c, err)
				return
			}
			if exists {
				httpx.ConflictResponse(c, "Branch with this code already exists")
				return
			}
			branch.Code = *req.Code
		}
		if req.Name != nil {
			branch.Name = *req.Name
		}
		if req.Description != nil {
			branch.Description = *req.Description
		}
		if req.Address != nil {
			branch.Address = *req.Address
		}
		if req.Phone != nil {
			branch.Phone = *req.Phone
		}
		if req.Email != nil {
			branch.Email = *req.Email
		}
		if req.ManagerName != nil {
			branch.ManagerName = *req.ManagerName
		}
		if req.ManagerPhone != nil {
			branch.ManagerPhone = *req.ManagerPhone
		}
		if req.IsMain != nil {
			branch.IsMain = *req.IsMain
		}

		if err := repo.Update(ctx, branch); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Branch updated successfully", branch)
	}
}

func handleDeleteBranch(repo *repository.Repository[models.Branch]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		branch, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, branch); err != nil {
			httpx.Error(c, err)
			return
		}

		branch, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Branch deleted successfully", branch)
	}
}
