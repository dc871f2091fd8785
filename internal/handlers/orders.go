package handlers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/events"
	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
	"github.com/SibartechCompany/eWash-Backend/internal/pagination"
	"github.com/SibartechCompany/eWash-Backend/internal/repository"
)

// CreateOrderRequest is the order creation payload. The client is derived
// from the vehicle, and the total amount is never accepted from the caller;
// it is snapshotted from the service price.
type CreateOrderRequest struct {
	VehicleID          uuid.UUID  `json:"vehicle_id" binding:"required"`
	ServiceID          uuid.UUID  `json:"service_id" binding:"required"`
	AssignedEmployeeID *uuid.UUID `json:"assigned_employee_id"`
	BranchID           *uuid.UUID `json:"branch_id"`
	ScheduledAt        *time.Time `json:"scheduled_at"`
	Notes              string     `json:"notes"`
}

// UpdateOrderRequest is the order patch payload. Status transitions go
// through the dedicated status endpoint.
type UpdateOrderRequest struct {
	AssignedEmployeeID *uuid.UUID            `json:"assigned_employee_id"`
	BranchID           *uuid.UUID            `json:"branch_id"`
	ScheduledAt        *time.Time            `json:"scheduled_at"`
	Notes              *string               `json:"notes"`
	PaymentStatus      *models.PaymentStatus `json:"payment_status"`
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

func newOrderRepo(db *gorm.DB) *repository.Repository[models.Order] {
	return repository.New[models.Order](db, repository.Options{
		Name:         "Order",
		TenantScoped: true,
		SoftDelete:   true,
	})
}

// RegisterOrderRoutes mounts the order endpoints.
func RegisterOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, producer *events.Producer) {
	repo := newOrderRepo(db)
	rg.GET("", handleListOrders(db))
	rg.POST("", handleCreateOrder(db, repo, producer))
	rg.GET("/:id", handleGetOrder(db, repo))
	rg.PUT("/:id", handleUpdateOrder(repo))
	rg.DELETE("/:id", handleDeleteOrder(repo))
	rg.PATCH("/:id/status", handleUpdateOrderStatus(repo, producer))
}

func handleListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()
		params := paginationParams(c)

		build := func() *gorm.DB {
			q := db.WithContext(ctx).Model(&models.Order{}).
				Where("organization_id = ?", user.OrganizationID).
				Where("is_active = ?", true)
			if status := c.Query("status"); models.ValidOrderStatus(models.OrderStatus(status)) {
				q = q.Where("status = ?", status)
			}
			if ps := c.Query("payment_status"); models.ValidPaymentStatus(models.PaymentStatus(ps)) {
				q = q.Where("payment_status = ?", ps)
			}
			return q
		}

		var total int64
		if err := build().Count(&total).Error; err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to count orders")
			return
		}

		var orders []models.Order
		err := build().
			Preload("Client").Preload("Vehicle").Preload("Service").
			Preload("AssignedEmployee").
			Order("created_at DESC").
			Offset(params.Skip).Limit(params.Limit).
			Find(&orders).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to fetch orders")
			return
		}

		c.JSON(200, pagination.NewPage(orders, total, params))
	}
}

// generateOrderNumber builds a system-unique order number. The random suffix
// keeps concurrent creations within the same second apart; the unique index
// on order_number is the final arbiter.
func generateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102-150405"), rand.Intn(10000))
}

// handleCreateOrder validates the ownership chain before persisting: the
// service must belong to the caller's organization, the vehicle must exist,
// and the vehicle's client must resolve to the caller's organization. The
// order's client is the vehicle's owner; callers never send it.
func handleCreateOrder(db *gorm.DB, repo *repository.Repository[models.Order], producer *events.Producer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		var service models.Service
		if err := db.WithContext(ctx).First(&service, "id = ?", req.ServiceID).Error; err != nil {
			httpx.NotFoundResponse(c, "Service not found")
			return
		}
		if !user.CanAccessOrganization(service.OrganizationID) {
			httpx.ForbiddenResponse(c, "Not enough permissions")
			return
		}

		var vehicle models.Vehicle
		if err := db.WithContext(ctx).First(&vehicle, "id = ?", req.VehicleID).Error; err != nil {
			httpx.NotFoundResponse(c, "Vehicle not found")
			return
		}

		var client models.Client
		if err := db.WithContext(ctx).First(&client, "id = ?", vehicle.ClientID).Error; err != nil {
			httpx.NotFoundResponse(c, "Client not found")
			return
		}
		if !user.CanAccessOrganization(client.OrganizationID) {
			httpx.ForbiddenResponse(c, "Not enough permissions")
			return
		}

		order := models.Order{
			OrderNumber:        generateOrderNumber(),
			Status:             models.OrderStatusPending,
			Notes:              req.Notes,
			ScheduledAt:        req.ScheduledAt,
			TotalAmount:        service.Price,
			PaymentStatus:      models.PaymentStatusPending,
			OrganizationID:     user.OrganizationID,
			ClientID:           vehicle.ClientID,
			ServiceID:          req.ServiceID,
			VehicleID:          req.VehicleID,
			AssignedEmployeeID: req.AssignedEmployeeID,
			BranchID:           req.BranchID,
		}
		if err := repo.Create(ctx, &order); err != nil {
			httpx.Error(c, err)
			return
		}

		producer.Publish(events.OrderEvent{
			Type:           events.EventOrderCreated,
			OrderID:        order.ID,
			OrganizationID: order.OrganizationID,
			OrderNumber:    order.OrderNumber,
			Status:         string(order.Status),
			TotalAmount:    order.TotalAmount.String(),
		})

		httpx.CreatedResponse(c, "Order created successfully", order)
	}
}

func handleGetOrder(db *gorm.DB, repo *repository.Repository[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		order, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, order); err != nil {
			httpx.Error(c, err)
			return
		}

		// Re-read with associations for the detail view.
		var detailed models.Order
		err = db.WithContext(ctx).
			Preload("Client").Preload("Vehicle").Preload("Service").
			Preload("AssignedEmployee").Preload("Branch").
			First(&detailed, "id = ?", id).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to fetch order")
			return
		}
		httpx.OKResponse(c, "Order retrieved successfully", detailed)
	}
}

func handleUpdateOrder(repo *repository.Repository[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		order, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, order); err != nil {
			httpx.Error(c, err)
			return
		}

		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}

		if req.PaymentStatus != nil {
			if !models.ValidPaymentStatus(*req.PaymentStatus) {
				httpx.BadRequestResponse(c, "Invalid payment status")
				return
			}
			order.PaymentStatus = *req.PaymentStatus
		}
		if req.AssignedEmployeeID != nil {
			order.AssignedEmployeeID = req.AssignedEmployeeID
		}
		if req.BranchID != nil {
			order.BranchID = req.BranchID
		}
		if req.ScheduledAt != nil {
			order.ScheduledAt = req.ScheduledAt
		}
		if req.Notes != nil {
			order.Notes = *req.Notes
		}

		if err := repo.Update(ctx, order); err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Order updated successfully", order)
	}
}

func handleDeleteOrder(repo *repository.Repository[models.Order]) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		order, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, order); err != nil {
			httpx.Error(c, err)
			return
		}

		order, err = repo.Remove(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		httpx.OKResponse(c, "Order deleted successfully", order)
	}
}

// handleUpdateOrderStatus applies a lifecycle transition. Moving to
// in_progress stamps started_at once; completing stamps completed_at;
// reopening to pending clears it.
func handleUpdateOrderStatus(repo *repository.Repository[models.Order], producer *events.Producer) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		id, ok := parseIDParam(c, "id")
		if !ok {
			return
		}
		ctx := c.Request.Context()

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.BadRequestResponse(c, "Invalid request format")
			return
		}
		if !models.ValidOrderStatus(req.Status) {
			httpx.BadRequestResponse(c, "Invalid order status")
			return
		}

		order, err := repo.Get(ctx, id)
		if err != nil {
			httpx.Error(c, err)
			return
		}
		if err := repository.Authorize(user, order); err != nil {
			httpx.Error(c, err)
			return
		}

		order.Status = req.Status
		now := time.Now().UTC()
		switch req.Status {
		case models.OrderStatusInProgress:
			if order.StartedAt == nil {
				order.StartedAt = &now
			}
		case models.OrderStatusCompleted:
			order.CompletedAt = &now
		case models.OrderStatusPending:
			order.CompletedAt = nil
		}

		if err := repo.Update(ctx, order); err != nil {
			httpx.Error(c, err)
			return
		}

		producer.Publish(events.OrderEvent{
			Type:           events.EventOrderStatusChanged,
			OrderID:        order.ID,
			OrganizationID: order.OrganizationID,
			OrderNumber:    order.OrderNumber,
			Status:         string(order.Status),
			TotalAmount:    order.TotalAmount.String(),
		})

		httpx.OKResponse(c, "Order status updated successfully", order)
	}
}
