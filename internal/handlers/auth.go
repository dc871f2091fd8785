package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/auth"
	"github.com/SibartechCompany/eWash-Backend/internal/config"
	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

// RegisterRequest bootstraps a new organization with its first admin user.
type RegisterRequest struct {
	OrganizationName string `json:"organization_name" binding:"required"`
	FullName         string `json:"full_name" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=8"`
	Phone            string `json:"phone"`
}

// RegisterAuthRoutes mounts login, register and the current-user endpoint.
func RegisterAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, authMW *middleware.AuthMiddleware) {
	rg.POST("/login", handleLogin(db, cfg))
	rg.POST("/register", handleRegister(db))
	rg.GET("/me", authMW.RequireAuth(), handleMe())
}

// handleLogin verifies credentials and issues an access token.
func handleLogin(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		var user models.User
		result := db.WithContext(c.Request.Context()).First(&user, "email = ?", req.Email)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				httpx.UnauthorizedResponse(c, "Incorrect email or password")
			} else {
				httpx.InternalServerErrorResponse(c, "Failed to fetch user")
			}
			return
		}

		if !auth.CheckPassword(req.Password, user.HashedPassword) {
			httpx.UnauthorizedResponse(c, "Incorrect email or password")
			return
		}
		if !user.IsActive {
			httpx.BadRequestResponse(c, "Inactive user")
			return
		}

		token, err := auth.CreateAccessToken(user.ID, cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		c.JSON(200, LoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			User:        &user,
		})
	}
}

// handleRegister creates an organization and its first admin user in one
// transaction.
func handleRegister(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		ctx := c.Request.Context()

		var existing models.User
		err := db.WithContext(ctx).First(&existing, "email = ?", req.Email).Error
		if err == nil {
			httpx.ConflictResponse(c, "User with this email already exists")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.InternalServerErrorResponse(c, "Failed to register organization")
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			httpx.Error(c, err)
			return
		}

		org := models.Organization{
			Name:             req.OrganizationName,
			OrganizationType: models.OrganizationTypeMain,
		}
		user := models.User{
			Email:          req.Email,
			HashedPassword: hash,
			FullName:       req.FullName,
			Phone:          req.Phone,
			Role:           models.RoleAdmin,
		}

		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&org).Error; err != nil {
				return err
			}
			user.OrganizationID = org.ID
			return tx.Create(&user).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				httpx.ConflictResponse(c, "User with this email already exists")
				return
			}
			httpx.InternalServerErrorResponse(c, "Failed to register organization")
			return
		}

		logrus.WithFields(logrus.Fields{
			"organization_id": org.ID,
			"user_id":         user.ID,
		}).Info("organization registered")

		httpx.CreatedResponse(c, "Organization registered successfully", gin.H{
			"organization": org,
			"user":         user,
		})
	}
}

// handleMe returns the authenticated principal.
func handleMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		httpx.OKResponse(c, "User retrieved successfully", user)
	}
}
