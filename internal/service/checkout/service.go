// Package checkout turns a session-held cart into an immutable order. The
// flow is: snapshot the cart, price it, open a payment intent with the
// chosen gateway, wait for the out-of-band confirmation trigger, reconcile
// stock, then finalize the order and clear the cart.
package checkout

import (
	"context"
	"errors"
	"io"
	"log"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/payment"
	productrepo "sunnyside-shop/internal/repository/product"
)

// ErrUnknownProvider is returned for a payment method no gateway serves.
var ErrUnknownProvider = errors.New("unknown payment provider")

type Service struct {
	stock    stockRepo
	orders   orderWriter
	gateways map[domain.PaymentProvider]payment.Gateway
	logger   *log.Logger
}

type stockRepo interface {
	BeginStock(ctx context.Context) (productrepo.StockTx, error)
}

type orderWriter interface {
	Insert(ctx context.Context, o domain.Order) error
}

func New(stock stockRepo, orders orderWriter, gateways map[domain.PaymentProvider]payment.Gateway, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		stock:    stock,
		orders:   orders,
		gateways: gateways,
		logger:   logger,
	}
}

func (s *Service) gateway(provider domain.PaymentProvider) (payment.Gateway, error) {
	gw, ok := s.gateways[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}
	return gw, nil
}
