package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// CreateEmployeeRequest is the employee creation payload. start_date is a
// YYYY-MM-DD string; absent means today.
type CreateEmployeeRequest struct {
	FullName       string              `json:"full_name" binding:"required"`
	DocumentType   models.DocumentType `json:"document_type" binding:"required"`
	DocumentNumber string              `json:"document_number" binding:"required"`
	Email          string              `json:"email"`
	Phone          string              `json:"phone" binding:"required"`
	Address        string              `json:"address"`
	Position       string              `json:"position" binding:"required"`
	StartDate      string              `json:"start_date"`
	BranchID       *uuid.UUID          `json:"branch_id"`
}

// UpdateEmployeeRequest is the employee patch payload.
type UpdateEmployeeRequest struct {
	FullName       *string                `json:"full_name"`
	DocumentType   *models.DocumentType   `json:"document_type"`
	DocumentNumber *string                `json:"document_number"`
	Email          *string                `json:"email"`
	Phone          *string                `json:"phone"`
	Address        *string                `json:"address"`
	Position       *string                `json:"position"`
	StartDate      *string                `json:"start_date"`
	Status         *models.EmployeeStatus `json:"status"`
	BranchID       *uuid.UUID             `json:"branch_id"`
}

var employeeSearchColumns = []string{"full_name", "phone", "email", "document_number"}

func newEmployeeRepo(db *gorm.DB) *repository.Repository[models.Employee] {
	return repository.New[models.Employee](db, repository.Options{
		Name:         "Employee",
		TenantScoped: true,
		SoftDelete:   true,
	})
}

// RegisterEmployeeRoutes mounts the employee endpoints.
func RegisterEmployeeRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	repo := newEmployeeRepo(db)
	rg.GET("", handleListEmployees(repo))
	rg.POST("", handleCreateEmployee(repo))
	rg.GET("/:id", handleGetEmployee(repo))
	rg.PUT("/:id", handleUpdateEmployee(repo))
	rg.DELETE("/:id", handleDeleteEmployee(repo))
	rg.PATCH("/:id/toggle-status", handleToggleEmployeeStatus(repo))
}

func handleListEmployees(repo *repository.Repository[models.Employee]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		q := repository.Query{
			TenantID:      user.OrganizationID,
			Search:        c.Query("search"),
			SearchColumns: employeeSearchColumns,
			Params:        paginationParams(c),
			OrderBy:       "full_name ASC",
		}
		// Unknown status values are ignored rather than rejected.
		if status := c.Query("status"); status == string(models.EmployeeStatusActive) ||
			status == string(models.EmployeeStatusInactive) {
			q.Filters = map[string]interface{}{"status": status}
		}
		respondPage(c, repo, q)
	}
}

// parseStartDate parses a YYYY-MM-DD start date string.
func parseStartDate(raw string) (*time.Time, error) {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func handleCreateEmployee(repo *repository.Repository[models.Employee]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateEmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}
		if !models.ValidDocumentType(req.DocumentType) {
			httpx.BadRequestResponse(c, "Invalid document type")
			return
		}

		startDate := time.Now().Truncate(24 * time.Hour)
		start := &startDate
		if req.StartDate != "" {
			parsed, err := parseStartDate(req.StartDate)
			if err != nil {
				httpx.BadRequestResponse(c, "start_date must be in YYYY-MM-DD format")
				return
			}
			start = parsed
		}

		exists, err := repo.ExistsActive(ctx, "document_number = ? AND organization_id = ?",
			req.DocumentNumber, user.OrganizationID)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if exists {
			httpx.ConflictResponse(c, "Employee with this document number already exists")
			return
		}

		employee := models.Employee{
			FullName:       req.FullName,
			DocumentType:   req.DocumentType,
			DocumentNumber: req.DocumentNumber,
			Email:          req.Email,
			Phone:          req.Phone,
			Address:        req.Address,
			Position:       req.Position,
			StartDate:      start,
			Status:         models.EmployeeStatusActive,
			OrganizationID: user.OrganizationID,
			BranchID:       req.BranchID,
		}
		if err := repo.Create(ctx, &employee); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.CreatedResponse(c, "Employee created successfully", employee)
	}
}

func handleGetEmployee(repo *repository.Repository[models.Employee]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}

		employee, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, employee); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Employee retrieved successfully", employee)
	}
}

func handleUpdateEmployee(repo *repository.Repository[models.Employee]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		employee, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, employee); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateEmployeeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.DocumentNumber != nil && *req.DocumentNumber != employee.DocumentNumber {
			exists, err := repo.ExistsActive(ctx, "document_number = ? AND organization_id = ? AND id != ?",
				*req.DocumentNumber, employee.OrganizationID, employee.ID)
			if err != nil {
				httpx.Error(c, err)
				return
			}
			if exists {
				httpx.ConflictResponse(c, "Employee with this document number already exists")
				return
			}
			employee.DocumentNumber = *req.DocumentNumber
		}
		if req.DocumentType != nil {
			if !models.ValidDocumentType(*req.DocumentType) {
				httpx.BadRequestResponse(c, "Invalid document type")
				return
			}
			employee.DocumentType = *req.DocumentType
		}
		if req.Status != nil {
			if *req.Status != models.EmployeeStatusActive && *req.Status != models.EmployeeStatusInactive {
				httpx.BadRequestResponse(c, "Invalid status")
				return
			}
			employee.Status = *req.Status
		}
		if req.StartDate != nil {
			parsed, err := parseStartDate(*req.StartDate)
			if err != nil {
				httpx.BadRequestResponse(c, "start_date must be in YYYY-MM-DD format")
				return
			}
			employee.StartDate = parsed
		}
		if req.FullName != nil {
			employee.FullName = *req.FullName
		}
		if req.Email != nil {
			employee.Email = *req.Email
		}
		if req.Phone != nil {
			employee.Phone = *req.Phone
		}
		if req.Address != nil {
			employee.Address = *req.Address
		}
		if req.Position != nil {
			employee.Position = *req.Position
		}
		if req.BranchID != nil {
			employee.BranchID = req.BranchID
		}

		if err := repo.Update(ctx, employee); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Employee updated successfully", employee)
	}
}

func handleDeleteEmployee(repo *repository.Repository[models.Employee]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		employee, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, employee); err != nil {
			httpx.Error(c, err)
			return
		}

		employee, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Employee deleted successfully", employee)
	}
}

// handleToggleEmployeeStatus flips the employment status between active and
// inactive. This is independent of the soft-delete flag.
func handleToggleEmployeeStatus(repo *repository.Repository[models.Employee]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		employee, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, employee); err != nil {
			httpx.Error(c, err)
			return
		}

		if employee.Status == models.EmployeeStatusActive {
			employee.Status = models.EmployeeStatusInactive
		} else {
			employee.Status = models.EmployeeStatusActive
		}

		if err := repo.Update(ctx, employee); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Employee status updated successfully", employee)
	}
}
