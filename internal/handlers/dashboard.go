package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/SibartechCompany/eWash-Backend/internal/httpx"
	"github.com/SibartechCompany/eWash-Backend/internal/middleware"
	"github.com/SibartechCompany/eWash-Backend/internal/models"
)

// DashboardStats aggregates the headline numbers for the caller's
// organization. Monthly figures cover a rolling 30-day window.
type DashboardStats struct {
	TotalClients   int64           `json:"total_clients"`
	TotalEmployees int64           `json:"total_employees"`
	TotalServices  int64           `json:"total_services"`
	MonthlyOrders  int64           `json:"monthly_orders"`
	MonthlyRevenue decimal.Decimal `json:"monthly_revenue"`
	PendingOrders  int64           `json:"pending_orders"`
}

// RegisterDashboardRoutes mounts the dashboard endpoints.
func RegisterDashboardRoutes(rg *gin.RouterGroup, db *gorm.DB) {
	rg.GET("/stats", handleDashboardStats(db))
	rg.GET("/recent-orders", handleRecentOrders(db))
}

func handleDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		ctx := c.Request.Context()
		orgID := user.OrganizationID
		since := time.Now().AddDate(0, 0, -30)

		var stats DashboardStats
		stats.MonthlyRevenue = decimal.Zero

		err := db.WithContext(ctx).Model(&models.Client{}).
			Where("organization_id = ? AND is_active = ?", orgID, true).
			Count(&stats.TotalClients).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to compute dashboard stats")
			return
		}

		err = db.WithContext(ctx).Model(&models.Employee{}).
			Where("organization_id = ? AND is_active = ? AND status = ?", orgID, true, models.EmployeeStatusActive).
			Count(&stats.TotalEmployees).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to compute dashboard stats")
			return
		}

		err = db.WithContext(ctx).Model(&models.Service{}).
			Where("organization_id = ? AND is_active = ?", orgID, true).
			Count(&stats.TotalServices).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to compute dashboard stats")
			return
		}

		err = db.WithContext(ctx).Model(&models.Order{}).
			Where("organization_id = ? AND is_active = ? AND created_at >= ?", orgID, true, since).
			Count(&stats.MonthlyOrders).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to compute dashboard stats")
			return
		}

		// COALESCE keeps the sum NULL-safe when no completed orders exist.
		var revenue decimal.NullDecimal
		row := db.WithContext(ctx).Model(&models.Order{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("organization_id = ? AND is_active = ? AND status = ? AND created_at >= ?",
				orgID, true, models.OrderStatusCompleted, since).
			Row()
		if err := row.Scan(&revenue); err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to compute dashboard stats")
			return
		}
		if revenue.Valid {
			stats.MonthlyRevenue = revenue.Decimal
		}

		err = db.WithContext(ctx).Model(&models.Order{}).
			Where("organization_id = ? AND is_active = ? AND status IN ?",
				orgID, true, []models.OrderStatus{models.OrderStatusPending, models.OrderStatusInProgress}).
			Count(&stats.PendingOrders).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to compute dashboard stats")
			return
		}

		httpx.OKResponse(c, "Dashboard stats retrieved successfully", stats)
	}
}

// handleRecentOrders returns the latest orders for the dashboard feed.
func handleRecentOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit <= 0 {
			limit = 10
		}
		if limit > 50 {
			limit = 50
		}

		var orders []models.Order
		err := db.WithContext(c.Request.Context()).
			Where("organization_id = ? AND is_active = ?", user.OrganizationID, true).
			Preload("Client").Preload("Vehicle").Preload("Service").
			Order("created_at DESC").
			Limit(limit).
			Find(&orders).Error
		if err != nil {
			httpx.InternalServerErrorResponse(c, "Failed to fetch recent orders")
			return
		}
		httpx.OKResponse(c, "Recent orders retrieved successfully", orders)
	}
}
