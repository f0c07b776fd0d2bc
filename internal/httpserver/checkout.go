package httpserver

import (
	"context"
	"net/http"

	"sunnyside-shop/internal/domain"

	"github.com/gin-gonic/gin"
)

// OrderReader lists a user's durable order history.
type OrderReader interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type checkoutRequest struct {
	FullName      string `json:"fullName"`
	Address       string `json:"address"`
	Contact       string `json:"contact"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// beginCheckout takes the checkout form and opens a payment intent. The
// response carries what the client needs to collect payment: the QR payload
// for the push provider, or the provider order id for the card provider.
func (h *handlers) beginCheckout(c *gin.Context) {
	sess := currentSession(c)

	var in checkoutRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method", "redirect": "/checkout"})
		return
	}
	provider, ok := domain.ParseProvider(in.PaymentMethod)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment method", "redirect": "/checkout"})
		return
	}

	delivery := domain.DeliveryDetails{
		FullName: in.FullName,
		Address:  in.Address,
		Contact:  in.Contact,
	}

	intent, err := h.deps.CheckoutSvc.Begin(c.Request.Context(), sess, delivery, provider)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{
		"provider":    intent.Provider,
		"amount":      domain.FormatCents(intent.AmountCents),
		"externalRef": intent.ExternalRef,
		"status":      intent.Status,
	}
	if intent.QRCode != "" {
		resp["qrCodeUrl"] = "data:image/png;base64," + intent.QRCode
	}
	c.JSON(http.StatusOK, resp)
}

// confirmCheckout asks the gateway whether the pending payment went through
// and, when it did, returns the finalized order.
func (h *handlers) confirmCheckout(c *gin.Context) {
	sess := currentSession(c)

	order, err := h.deps.CheckoutSvc.Confirm(c.Request.Context(), sess)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *handlers) listOrders(c *gin.Context) {
	sess := currentSession(c)
	orders, err := h.deps.OrderReader.ListByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
