package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abolfazl-babaei01/love-code-learn-api/domain"
	"github.com/abolfazl-babaei01/love-code-learn-api/internal/http/middleware"
)

// CartHandlers handles cart and checkout HTTP requests
type CartHandlers struct {
	cartSvc     domain.CartService
	checkoutSvc domain.CheckoutService
}

// NewCartHandlers creates new cart handlers
func NewCartHandlers(cartSvc domain.CartService, checkoutSvc domain.CheckoutService) *CartHandlers {
	return &CartHandlers{
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
	}
}

// CartItemRequest references a course to add or remove
type CartItemRequest struct {
	CourseID uint `json:"course_id" binding:"required"`
}

// GetCart handles fetching the caller's cart
func (h *CartHandlers) GetCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	cart, err := h.cartSvc.GetCart(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			// No row is an empty cart from the client's perspective.
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"items": []domain.CartItem{}, "total_price": 0}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"id":          cart.ID,
			"items":       cart.Items,
			"total_price": cart.TotalPrice(),
		},
	})
}

// AddItem handles adding a course to the cart
func (h *CartHandlers) AddItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cartSvc.AddItem(c.Request.Context(), userID, req.CourseID); err != nil {
		switch {
		case errors.Is(err, domain.ErrCourseNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
		case errors.Is(err, domain.ErrCourseAlreadyInCart):
			c.JSON(http.StatusConflict, gin.H{"error": "Course already in cart"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add course to cart"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"message": "Course added to cart"}})
}

// RemoveItem handles removing a course from the cart
func (h *CartHandlers) RemoveItem(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	courseID, ok := pathID(c, "course_id")
	if !ok {
		return
	}

	if err := h.cartSvc.RemoveItem(c.Request.Context(), userID, courseID); err != nil {
		if errors.Is(err, domain.ErrCourseNotInCart) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not in cart"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove course from cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Course removed from cart"}})
}

// Purchase handles converting the cart into a paid order
func (h *CartHandlers) Purchase(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}
	cartID, ok := pathID(c, "id")
	if !ok {
		return
	}

	purchased, err := h.checkoutSvc.Purchase(c.Request.Context(), userID, cartID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCartNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
		case errors.Is(err, domain.ErrCartEmpty):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Purchase failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message":   "Purchase completed",
			"purchased": purchased,
		},
	})
}
