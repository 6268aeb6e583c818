// Package checkout prices the cart, validates the order form and simulates
// payment before clearing the cart.
package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/cart"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/enums"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/metrics"
)

const (
	defaultPaymentDelay  = 2 * time.Second
	defaultRedirectAfter = 10 * time.Second

	orderPlacedMessage = "Order placed successfully!"
)

type cartStore interface {
	Load(ctx context.Context, sessionID string) (cart.Cart, error)
	Settle(ctx context.Context, sessionID string, paid cart.Cart) (cart.Snapshot, error)
}

// Quote is the priced view of the current cart.
type Quote struct {
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"itemCount"`
	Totals    Totals      `json:"totals"`
}

// Confirmation is returned once an order has been accepted.
type Confirmation struct {
	OrderID              uuid.UUID           `json:"orderId"`
	PlacedAt             time.Time           `json:"placedAt"`
	Lines                []cart.Line         `json:"lines"`
	ItemCount            int                 `json:"itemCount"`
	Totals               Totals              `json:"totals"`
	PaymentMethod        enums.PaymentMethod `json:"paymentMethod"`
	RedirectAfterSeconds int                 `json:"redirectAfterSeconds"`
	Message              string              `json:"message"`
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Carts         cartStore
	Pricing       Pricing
	PaymentDelay  time.Duration
	RedirectAfter time.Duration
	Logger        *logger.Logger
	Metrics       *metrics.Storefront
	Clock         func() time.Time
	NewOrderID    func() uuid.UUID
}

// Service places orders for a session's cart.
type Service interface {
	Quote(ctx context.Context, sessionID string, delivery enums.DeliveryMethod) (Quote, error)
	PlaceOrder(ctx context.Context, sessionID string, form Form) (Confirmation, error)
}

type service struct {
	carts         cartStore
	pricing       Pricing
	paymentDelay  time.Duration
	redirectAfter time.Duration
	logg          *logger.Logger
	metrics       *metrics.Storefront
	clock         func() time.Time
	newOrderID    func() uuid.UUID
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	if params.Pricing.TaxRate.IsNegative() || params.Pricing.ExpressFee.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pricing must be non-negative")
	}
	if params.PaymentDelay < 0 {
		params.PaymentDelay = defaultPaymentDelay
	}
	if params.RedirectAfter <= 0 {
		params.RedirectAfter = defaultRedirectAfter
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	if params.NewOrderID == nil {
		params.NewOrderID = uuid.New
	}
	return &service{
		carts:         params.Carts,
		pricing:       params.Pricing,
		paymentDelay:  params.PaymentDelay,
		redirectAfter: params.RedirectAfter,
		logg:          params.Logger,
		metrics:       params.Metrics,
		clock:         params.Clock,
		newOrderID:    params.NewOrderID,
	}, nil
}

// Quote prices the session cart for the requested delivery method.
func (s *service) Quote(ctx context.Context, sessionID string, delivery enums.DeliveryMethod) (Quote, error) {
	if delivery != "" && !delivery.IsValid() {
		return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery method").WithDetails(map[string]string{
			"deliveryMethod": "must be one of standard, express",
		})
	}
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return Quote{}, err
	}
	return Quote{
		Lines:     c.Lines(),
		ItemCount: c.ItemCount(),
		Totals:    s.pricing.Compute(c.Total(), delivery),
	}, nil
}

// PlaceOrder validates the form, waits out the simulated payment and removes the
// paid lines from the cart. A cancelled context aborts the payment and leaves the cart untouched.
func (s *service) PlaceOrder(ctx context.Context, sessionID string, form Form) (Confirmation, error) {
	confirmation, err := s.placeOrder(ctx, sessionID, form.Normalized())
	if err != nil {
		code := pkgerrors.CodeInternal
		if typed := pkgerrors.As(err); typed != nil {
			code = typed.Code()
		}
		s.metrics.IncCheckoutFailure(string(code))
		return Confirmation{}, err
	}
	return confirmation, nil
}

func (s *service) placeOrder(ctx context.Context, sessionID string, form Form) (Confirmation, error) {
	c, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return Confirmation{}, err
	}
	if c.IsEmpty() {
		return Confirmation{}, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	if err := form.Validate(); err != nil {
		return Confirmation{}, err
	}

	totals := s.pricing.Compute(c.Total(), form.DeliveryMethod)
	ctx = s.logg.WithFields(ctx, map[string]any{
		"payment_method":  form.PaymentMethod.String(),
		"delivery_method": form.DeliveryMethod.String(),
		"item_count":      c.ItemCount(),
		"total":           totals.Total.String(),
	})
	s.logg.Info(ctx, "processing payment")

	if err := s.waitForPayment(ctx); err != nil {
		return Confirmation{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "payment processing interrupted")
	}

	remaining, err := s.carts.Settle(ctx, sessionID, c)
	if err != nil {
		return Confirmation{}, err
	}
	if remaining.ItemCount > 0 {
		s.logg.Info(s.logg.WithField(ctx, "remaining_items", remaining.ItemCount), "cart changed during payment, keeping unpaid items")
	}

	orderID := s.newOrderID()
	s.metrics.IncCheckout(form.PaymentMethod.String(), form.DeliveryMethod.String())
	s.logg.Info(s.logg.WithField(ctx, "order_id", orderID.String()), "order placed")

	return Confirmation{
		OrderID:              orderID,
		PlacedAt:             s.clock().UTC(),
		Lines:                c.Lines(),
		ItemCount:            c.ItemCount(),
		Totals:               totals,
		PaymentMethod:        form.PaymentMethod,
		RedirectAfterSeconds: int(s.redirectAfter / time.Second),
		Message:              orderPlacedMessage,
	}, nil
}

func (s *service) waitForPayment(ctx context.Context) error {
	if s.paymentDelay == 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(s.paymentDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewPricing builds pricing from a tax rate and express fee in whole currency units.
func NewPricing(taxRate decimal.Decimal, expressFee int64) Pricing {
	return Pricing{TaxRate: taxRate, ExpressFee: decimal.NewFromInt(expressFee)}
}
