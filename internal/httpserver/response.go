package httpserver

import (
	"errors"
	"net/http"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/service/checkout"
	usersvc "sunnyside-shop/internal/service/user"

	"github.com/gin-gonic/gin"
)

// writeError maps the typed checkout errors onto the storefront's
// user-facing pages: the redirect field tells the client where to send the
// shopper, mirroring the flash-and-redirect flow of the web UI.
func (h *handlers) writeError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	var stockErr *domain.StockReconciliationError

	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "your cart is empty", "redirect": "/cart"})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "please fill all fields", "missing": vErr.Missing, "redirect": "/checkout"})
	case errors.As(err, &stockErr):
		// End users get a generic message; the per-line causes go to the
		// operator log only.
		for _, f := range stockErr.Result.Failed {
			h.logger.Printf("http: stock failure product_id=%s cause=%s", f.ProductID, f.Cause)
		}
		c.JSON(http.StatusConflict, gin.H{"error": "stock update failed, please try again", "redirect": "/cart"})
	case errors.Is(err, domain.ErrGatewayUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment provider is unavailable, please try again"})
	case errors.Is(err, domain.ErrPaymentNotConfirmed):
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "payment was not completed"})
	case errors.Is(err, domain.ErrNoPendingPayment):
		c.JSON(http.StatusConflict, gin.H{"error": "no payment in progress"})
	case errors.Is(err, domain.ErrIntentFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "payment already resolved"})
	case errors.Is(err, checkout.ErrUnknownProvider):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method", "redirect": "/checkout"})
	case errors.Is(err, usersvc.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
	case errors.Is(err, usersvc.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.Printf("http: internal error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
