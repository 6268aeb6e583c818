package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Chinmay1145/velocity-speed-emporium/internal/catalog"
	pkgerrors "github.com/Chinmay1145/velocity-speed-emporium/pkg/errors"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/logger"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/metrics"
	"github.com/Chinmay1145/velocity-speed-emporium/pkg/storage/kv"
)

// DefaultSlotKey is the durable slot used when no session id is supplied.
const DefaultSlotKey = "cart"

type productLookup interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}

// Snapshot is the state of a cart after an operation.
type Snapshot struct {
	Lines       []Line          `json:"lines"`
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Event       *Event          `json:"event,omitempty"`
}

// SnapshotOf captures lines and derived values of c.
func SnapshotOf(c Cart) Snapshot {
	return Snapshot{
		Lines:       c.Lines(),
		ItemCount:   c.ItemCount(),
		TotalAmount: c.Total(),
	}
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store   kv.Store
	Catalog productLookup
	Logger  *logger.Logger
	Metrics *metrics.Storefront
	SlotKey string
}

// Service owns the cart of each session and keeps its durable slot in sync.
type Service interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Get(ctx context.Context, sessionID string) (Snapshot, error)
	AddItem(ctx context.Context, sessionID, productID string, quantity int, color string) (Snapshot, error)
	RemoveItem(ctx context.Context, sessionID, productID string) (Snapshot, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (Snapshot, error)
	Clear(ctx context.Context, sessionID string) (Snapshot, error)
	Settle(ctx context.Context, sessionID string, paid Cart) (Snapshot, error)
}

type service struct {
	store   kv.Store
	catalog productLookup
	logg    *logger.Logger
	metrics *metrics.Storefront
	slotKey string

	// mu serializes load-mutate-persist so each slot has a single writer.
	mu sync.Mutex
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart store is required")
	}
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog is required")
	}
	if params.Logger == nil {
		params.Logger = logger.Nop()
	}
	if strings.TrimSpace(params.SlotKey) == "" {
		params.SlotKey = DefaultSlotKey
	}
	return &service{
		store:   params.Store,
		catalog: params.Catalog,
		logg:    params.Logger,
		metrics: params.Metrics,
		slotKey: params.SlotKey,
	}, nil
}

// Load rehydrates the session cart from its durable slot.
func (s *service) Load(ctx context.Context, sessionID string) (Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, sessionID)
}

func (s *service) Get(ctx context.Context, sessionID string) (Snapshot, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return SnapshotOf(c), nil
}

// AddItem resolves the product from the catalog and adds it in the given color.
// An empty color selects the product's first color.
func (s *service) AddItem(ctx context.Context, sessionID, productID string, quantity int, color string) (Snapshot, error) {
	product, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return Snapshot{}, err
	}
	color = strings.TrimSpace(color)
	if color == "" && len(product.Colors) > 0 {
		color = product.Colors[0]
	}
	if !product.HasColor(color) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "color is not offered for this product").WithDetails(map[string]any{
			"field":   "color",
			"allowed": product.Colors,
		})
	}

	return s.mutate(ctx, sessionID, func(c Cart) (Cart, Event, error) {
		return c.Add(product, quantity, color)
	})
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) (Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c Cart) (Cart, Event, error) {
		next, event := c.Remove(productID)
		return next, event, nil
	})
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c Cart) (Cart, Event, error) {
		next, event := c.UpdateQuantity(productID, quantity)
		return next, event, nil
	})
}

func (s *service) Clear(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c Cart) (Cart, Event, error) {
		next, event := c.Clear()
		return next, event, nil
	})
}

// Settle takes the paid lines out of the session cart, keeping anything added
// since paid was loaded.
func (s *service) Settle(ctx context.Context, sessionID string, paid Cart) (Snapshot, error) {
	return s.mutate(ctx, sessionID, func(c Cart) (Cart, Event, error) {
		next, event := c.Settle(paid)
		return next, event, nil
	})
}

func (s *service) mutate(ctx context.Context, sessionID string, apply func(Cart) (Cart, Event, error)) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.load(ctx, sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	next, event, err := apply(current)
	if err != nil {
		return Snapshot{}, err
	}
	if err := s.persist(ctx, sessionID, next); err != nil {
		return Snapshot{}, err
	}

	s.metrics.IncCartEvent(event.Kind.String())
	ctx = s.logg.WithFields(ctx, map[string]any{
		"event":      event.Kind.String(),
		"product_id": event.ProductID,
		"item_count": next.ItemCount(),
	})
	s.logg.Debug(ctx, "cart updated")

	snapshot := SnapshotOf(next)
	snapshot.Event = &event
	return snapshot, nil
}

func (s *service) load(ctx context.Context, sessionID string) (Cart, error) {
	key := s.key(sessionID)
	raw, err := s.store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}

	c, decodeErr := Unmarshal(raw)
	if decodeErr == nil {
		return c, nil
	}

	// Unreadable content is dropped and the shopper starts with an empty cart.
	s.metrics.IncCartLoadFailure("decode")
	warnCtx := s.logg.WithFields(ctx, map[string]any{"slot": key, "error": decodeErr.Error()})
	s.logg.Warn(warnCtx, "discarding unreadable persisted cart")
	if delErr := s.store.Delete(ctx, key); delErr != nil {
		s.logg.Error(warnCtx, "delete unreadable cart slot", delErr)
	}
	return Cart{}, nil
}

func (s *service) persist(ctx context.Context, sessionID string, c Cart) error {
	key := s.key(sessionID)
	if c.IsEmpty() {
		if err := s.store.Delete(ctx, key); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart")
		}
		return nil
	}
	raw, err := Marshal(c)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, key, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return nil
}

func (s *service) key(sessionID string) string {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return s.slotKey
	}
	return s.slotKey + ":" + sessionID
}
