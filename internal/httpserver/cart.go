package httpserver

import (
	"net/http"

	"sunnyside-shop/internal/domain"

	"github.com/gin-gonic/gin"
)

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *handlers) viewCart(c *gin.Context) {
	sess := currentSession(c)
	lines, total := h.deps.CartSvc.View(sess)
	if lines == nil {
		lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, gin.H{"cart": lines, "total": total})
}

func (h *handlers) addToCart(c *gin.Context) {
	sess := currentSession(c)
	var in cartQuantityRequest
	// Missing body defaults to quantity 1, like the storefront's add button.
	_ = c.ShouldBindJSON(&in)

	if err := h.deps.CartSvc.Add(c.Request.Context(), sess, c.Param("id"), in.Quantity); err != nil {
		h.writeError(c, err)
		return
	}
	lines, total := h.deps.CartSvc.View(sess)
	c.JSON(http.StatusOK, gin.H{"cart": lines, "total": total})
}

func (h *handlers) updateCartItem(c *gin.Context) {
	sess := currentSession(c)
	var in cartQuantityRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.deps.CartSvc.UpdateQuantity(sess, c.Param("id"), in.Quantity); err != nil {
		h.writeError(c, err)
		return
	}
	lines, total := h.deps.CartSvc.View(sess)
	c.JSON(http.StatusOK, gin.H{"cart": lines, "total": total})
}

func (h *handlers) removeCartItem(c *gin.Context) {
	sess := currentSession(c)
	h.deps.CartSvc.Remove(sess, c.Param("id"))
	lines, total := h.deps.CartSvc.View(sess)
	c.JSON(http.StatusOK, gin.H{"cart": lines, "total": total})
}
