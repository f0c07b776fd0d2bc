package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sunnyside-shop/internal/domain"
	"sunnyside-shop/internal/payment"
	productrepo "sunnyside-shop/internal/repository/product"
	"sunnyside-shop/internal/service/cart"
	"sunnyside-shop/internal/service/catalog"
	"sunnyside-shop/internal/service/checkout"
	"sunnyside-shop/internal/session"

	"github.com/gin-gonic/gin"
)

type fakeStockTx struct {
	stock map[string]int
}

func (t *fakeStockTx) Decrement(_ context.Context, productID string, quantity int) (int64, error) {
	if t.stock[productID] < quantity {
		return 0, nil
	}
	t.stock[productID] -= quantity
	return 1, nil
}

func (t *fakeStockTx) Exists(_ context.Context, productID string) (bool, error) {
	_, ok := t.stock[productID]
	return ok, nil
}

func (t *fakeStockTx) Commit(_ context.Context) error   { return nil }
func (t *fakeStockTx) Rollback(_ context.Context) error { return nil }

type fakeProductRepo struct {
	products map[string]*domain.Product
	stock    map[string]int
}

func (r *fakeProductRepo) List(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.products[p.ID] = &p
	return &p, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	r.products[p.ID] = &p
	return &p, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) BeginStock(_ context.Context) (productrepo.StockTx, error) {
	return &fakeStockTx{stock: r.stock}, nil
}

type fakeOrderStore struct {
	orders []domain.Order
}

func (s *fakeOrderStore) Insert(_ context.Context, o domain.Order) error {
	s.orders = append(s.orders, o)
	return nil
}

func (s *fakeOrderStore) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeGateway struct {
	confirmErr error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountCents int64) (*domain.PaymentIntent, error) {
	return &domain.PaymentIntent{
		Provider:    domain.ProviderNETSQR,
		AmountCents: amountCents,
		ExternalRef: "ref-1",
		QRCode:      "iVBORw0KGgo=",
		Status:      domain.IntentPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func (g *fakeGateway) Confirm(_ context.Context, _ *domain.PaymentIntent) error {
	return g.confirmErr
}

type checkoutFixture struct {
	router *gin.Engine
	store  *session.Store
	sess   *session.Session
	orders *fakeOrderStore
	gw     *fakeGateway
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := &fakeProductRepo{
		products: map[string]*domain.Product{
			"p1": {ID: "p1", Name: "Kopi O", PriceCents: 1000, Quantity: 10},
		},
		stock: map[string]int{"p1": 10},
	}
	orders := &fakeOrderStore{}
	gw := &fakeGateway{}
	store := session.NewStore(time.Hour)
	logger := log.New(io.Discard, "", 0)

	deps := Deps{
		Sessions:   store,
		CatalogSvc: catalog.New(products),
		CartSvc:    cart.New(products),
		CheckoutSvc: checkout.New(products, orders, map[domain.PaymentProvider]payment.Gateway{
			domain.ProviderNETSQR: gw,
		}, logger),
		OrderReader: orders,
	}

	router, err := buildRouter(logger, nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}

	sess, err := store.Issue("u1", "ann", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue session: %v", err)
	}

	return &checkoutFixture{router: router, store: store, sess: sess, orders: orders, gw: gw}
}

func (f *checkoutFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+f.sess.Token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

var checkoutForm = gin.H{
	"fullName":      "Ann Tan",
	"address":       "1 Sunny Rd",
	"contact":       "91234567",
	"paymentMethod": "NETSQR",
}

func TestCheckoutFlow(t *testing.T) {
	f := newCheckoutFixture(t)

	rec := f.do(t, http.MethodPost, "/cart/items/p1", gin.H{"quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add to cart: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPost, "/checkout", checkoutForm)
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var begin struct {
		Amount    string `json:"amount"`
		QRCodeURL string `json:"qrCodeUrl"`
		Status    string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &begin); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	if begin.Amount != "20.00" {
		t.Fatalf("expected amount 20.00, got %s", begin.Amount)
	}
	if begin.QRCodeURL != "data:image/png;base64,iVBORw0KGgo=" {
		t.Fatalf("unexpected qrCodeUrl %q", begin.QRCodeURL)
	}
	if begin.Status != string(domain.IntentPending) {
		t.Fatalf("expected PENDING, got %s", begin.Status)
	}

	rec = f.do(t, http.MethodPost, "/checkout/confirm", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirm struct {
		Order domain.Order `json:"order"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &confirm); err != nil {
		t.Fatalf("decode confirm response: %v", err)
	}
	if confirm.Order.Total != "20.00" {
		t.Fatalf("expected order total 20.00, got %s", confirm.Order.Total)
	}

	rec = f.do(t, http.MethodGet, "/cart", nil)
	var cartView struct {
		Cart  []domain.CartLine `json:"cart"`
		Total string            `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &cartView); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if len(cartView.Cart) != 0 {
		t.Fatalf("cart not emptied after order: %+v", cartView.Cart)
	}

	rec = f.do(t, http.MethodGet, "/orders", nil)
	var history struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if len(history.Orders) != 1 {
		t.Fatalf("expected 1 order in history, got %d", len(history.Orders))
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	rec := f.do(t, http.MethodPost, "/checkout", checkoutForm)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Redirect != "/cart" {
		t.Fatalf("expected redirect /cart, got %s", resp.Redirect)
	}
}

func TestCheckoutMissingDeliveryFields(t *testing.T) {
	f := newCheckoutFixture(t)

	if rec := f.do(t, http.MethodPost, "/cart/items/p1", nil); rec.Code != http.StatusOK {
		t.Fatalf("add to cart: got %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/checkout", gin.H{
		"fullName":      "Ann Tan",
		"paymentMethod": "NETSQR",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Missing  []string `json:"missing"`
		Redirect string   `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Missing) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", resp.Missing)
	}
	if resp.Redirect != "/checkout" {
		t.Fatalf("expected redirect /checkout, got %s", resp.Redirect)
	}
}

func TestCheckoutInvalidPaymentMethod(t *testing.T) {
	f := newCheckoutFixture(t)

	if rec := f.do(t, http.MethodPost, "/cart/items/p1", nil); rec.Code != http.StatusOK {
		t.Fatalf("add to cart: got %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/checkout", gin.H{
		"fullName":      "Ann Tan",
		"address":       "1 Sunny Rd",
		"contact":       "91234567",
		"paymentMethod": "CASH",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConfirmDeclinedPayment(t *testing.T) {
	f := newCheckoutFixture(t)
	f.gw.confirmErr = domain.ErrPaymentNotConfirmed

	if rec := f.do(t, http.MethodPost, "/cart/items/p1", gin.H{"quantity": 2}); rec.Code != http.StatusOK {
		t.Fatalf("add to cart: got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/checkout", checkoutForm); rec.Code != http.StatusOK {
		t.Fatalf("checkout: got %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/checkout/confirm", nil)
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.orders.orders) != 0 {
		t.Fatalf("order recorded for declined payment")
	}
}

func TestConfirmInsufficientStock(t *testing.T) {
	f := newCheckoutFixture(t)

	// Ask for more than the 10 on hand.
	if rec := f.do(t, http.MethodPost, "/cart/items/p1", gin.H{"quantity": 50}); rec.Code != http.StatusOK {
		t.Fatalf("add to cart: got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/checkout", checkoutForm); rec.Code != http.StatusOK {
		t.Fatalf("checkout: got %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/checkout/confirm", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(f.orders.orders) != 0 {
		t.Fatalf("order recorded despite stock failure")
	}
}

func TestConfirmWithoutCheckout(t *testing.T) {
	f := newCheckoutFixture(t)

	rec := f.do(t, http.MethodPost, "/checkout/confirm", nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
