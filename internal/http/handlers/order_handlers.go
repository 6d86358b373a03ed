package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/http/middleware"
)

// OrderHandlers handles order history HTTP requests
type OrderHandlers struct {
	orderRepo  domain.OrderRepository
	enrollRepo domain.EnrollmentRepository
}

// NewOrderHandlers creates new order handlers
func NewOrderHandlers(orderRepo domain.OrderRepository, enrollRepo domain.EnrollmentRepository) *OrderHandlers {
	return &OrderHandlers{
		orderRepo:  orderRepo,
		enrollRepo: enrollRepo,
	}
}

// ListOrders handles listing the caller's orders
func (h *OrderHandlers) ListOrders(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	orders, err := h.orderRepo.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GetOrder handles fetching one of the caller's orders
func (h *OrderHandlers) GetOrder(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderRepo.FindByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get order"})
		return
	}
	if order.StudentID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":         order.ID,
			"is_paid":    order.IsPaid,
			"items":      order.Items,
			"total_cost": order.TotalCost(),
			"created_at": order.CreatedAt,
		},
	})
}

// ListEnrollments handles listing the caller's course enrollments
func (h *OrderHandlers) ListEnrollments(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	enrollments, err := h.enrollRepo.ListByStudent(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list enrollments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": enrollments})
}
