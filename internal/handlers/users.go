package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/auth"
	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// CreateUserRequest is the payload for adding a user to the caller's
// organization.
type CreateUserRequest struct {
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	FullName string          `json:"full_name" binding:"required"`
	Phone    string          `json:"phone"`
	Role     models.UserRole `json:"role"`
}

// UpdateUserRequest is the user patch payload. Passwords and superuser
// status are not editable through this endpoint.
type UpdateUserRequest struct {
	FullName *string          `json:"full_name"`
	Phone    *string          `json:"phone"`
	Role     *models.UserRole `json:"role"`
}

var userSearchColumns = []string{"full_name", "email"}

func newUserRepo(db *gorm.DB) *repository.Repository[models.User] {
	return repository.New[models.User](db, repository.Options{
		Name:         "User",
		TenantScoped: true,
		SoftDelete:   true,
	})
}

// RegisterUserRoutes mounts the user management endpoints.
func RegisterUserRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := newUserRepo(db)
	rg.GET("", handleListUsers(repo))
	rg.POST("", handleCreateUser(repo))
	rg.GET("/:id", handleGetUser(repo))
	rg.PUT("/:id", handleUpdateUser(repo))
	rg.DELETE("/:id", handleDeleteUser(repo))
}

func handleListUsers(repo *repository.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		q := repository.Query{
			TenantID:      user.OrganizationID,
			Search:        c.Query("search"),
			SearchColumns: userSearchColumns,
			Params:        paginationParams(c),
			OrderBy:       "full_name ASC",
		}
		respondPage(c, repo, q)
	}
}

func handleCreateUser(repo *repository.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		role := req.Role
		if role == "" {
			role = models.RoleEmployee
		}
		if !models.ValidUserRole(role) || role == models.RoleSuperAdmin {
			httpx.BadRequestResponse(c, "Invalid role")
			return
		}

		// Email uniqueness is global, so the check ignores tenancy.
		exists, err := repo.ExistsActive(ctx, "email = ?", req.Email)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if exists {
			httpx.ConflictResponse(c, "User with this email already exists")
			return
		}

		hashed, err := auth.HashPassword(req.Password)
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to create user")
			return
		}

		newUser := models.User{
			Email:          req.Email,
			HashedPassword: hashed,
			FullName:       req.FullName,
			Phone:          req.Phone,
			Role:           role,
			OrganizationID: user.OrganizationID,
		}
		if err := repo.Create(ctx, &newUser); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.CreatedResponse(c, "User created successfully", newUser)
	}
}

func handleGetUser(repo *repository.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		target, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, target); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "User retrieved successfully", target)
	}
}

func handleUpdateUser(repo *repository.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		target, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, target); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.Role != nil {
			if !models.ValidUserRole(*req.Role) || *req.Role == models.RoleSuperAdmin {
				httpx.BadRequestResponse(c, "Invalid role")
				return
			}
			target.Role = *req.Role
		}
		if req.FullName != nil {
			target.FullName = *req.FullName
		}
		if req.Phone != nil {
			target.Phone = *req.Phone
		}

		if err := repo.Update(ctx, target); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "User updated successfully", target)
	}
}

func handleDeleteUser(repo *repository.Repository[models.User]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		if id == user.ID {
			httpx.BadRequestResponse(c, "Cannot delete your own account")
			return
		}

		target, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, target); err != nil {
			httpx.Error(c, err)
			return
		}

		target, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "User deleted successfully", target)
	}
}
