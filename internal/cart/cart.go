// Package cart implements the authenticated cart and checkout computation
// that sits on top of the session core. It never touches the credential
// digest or the user records directly; the only question it asks the auth
// layer is who the current user is.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"shopcore/internal/auth"
	"shopcore/internal/common"
	"shopcore/internal/logging"
	"shopcore/internal/store"
)

// Item is one cart line. Prices are integer cents.
type Item struct {
	ProductID      string `json:"productId"`
	Name           string `json:"name"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Quantity       int    `json:"quantity"`
}

// Order is a placed order. Immutable once written.
type Order struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Items      []Item    `json:"items"`
	TotalCents int64     `json:"totalCents"`
	PlacedAt   time.Time `json:"placedAt"`
}

// Service manages the single active cart and the order history.
type Service struct {
	store    store.Store
	sessions *auth.Manager
	log      logging.Logger

	// now is a test seam; production code leaves it at time.Now.
	now func() time.Time
}

func NewService(st store.Store, sessions *auth.Manager, log logging.Logger) *Service {
	return &Service{store: st, sessions: sessions, log: log, now: time.Now}
}

// Add puts an item in the cart, merging quantities when the product is
// already present.
func (s *Service) Add(ctx context.Context, item Item) error {
	if item.ProductID == "" || item.Quantity <= 0 || item.UnitPriceCents < 0 {
		return fmt.Errorf("%w: a product id and a positive quantity are required", common.ErrMissingFields)
	}

	items, err := s.Items(ctx)
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	return s.saveCart(ctx, items)
}

// Remove takes a product out of the cart entirely.
func (s *Service) Remove(ctx context.Context, productID string) error {
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return fmt.Errorf("%w: product %s is not in the cart", common.ErrNotFound, productID)
	}

	return s.saveCart(ctx, kept)
}

// Items returns the current cart contents. An unreadable persisted cart
// degrades to empty.
func (s *Service) Items(ctx context.Context) ([]Item, error) {
	raw, err := s.store.Get(ctx, store.KeyCart)
	if err != nil {
		return nil, fmt.Errorf("reading cart: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		s.log.Warn(ctx, "discarding unreadable cart", "error", err)
		return nil, nil
	}
	return items, nil
}

// TotalCents sums the cart lines.
func TotalCents(items []Item) int64 {
	var total int64
	for _, it := range items {
		total += it.UnitPriceCents * int64(it.Quantity)
	}
	return total
}

// Checkout turns the cart into an order for the signed-in user and empties
// the cart. It is the one place where the cart layer crosses the auth
// boundary: no session, no order.
func (s *Service) Checkout(ctx context.Context) (*Order, error) {
	sess, err := s.sessions.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrNotAuthenticated
	}

	items, err := s.Items(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.ErrEmptyCart
	}

	order := Order{
		ID:         uuid.NewString(),
		Email:      sess.Email,
		Items:      items,
		TotalCents: TotalCents(items),
		PlacedAt:   s.now(),
	}

	// Appending the order and clearing the cart belong together; backends
	// that can group writes run them in one transaction, plain stores fall
	// back to independent writes.
	write := func(ctx context.Context, st store.Store) error {
		orders, err := s.loadOrders(ctx, st)
		if err != nil {
			return err
		}
		orders = append(orders, order)
		if err := s.saveOrders(ctx, st, orders); err != nil {
			return err
		}
		if err := st.Delete(ctx, store.KeyCart); err != nil {
			return fmt.Errorf("clearing cart: %w", err)
		}
		return nil
	}

	if tx, ok := s.store.(store.TxStore); ok {
		err = tx.WithTx(ctx, write)
	} else {
		err = write(ctx, s.store)
	}
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "order placed", "order_id", order.ID, "email", order.Email, "total_cents", order.TotalCents)
	return &order, nil
}

// Orders lists the caller's order history. The administrator sees every
// order; everyone else sees only their own.
func (s *Service) Orders(ctx context.Context) ([]Order, error) {
	sess, err := s.sessions.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, common.ErrNotAuthenticated
	}

	all, err := s.loadOrders(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin {
		return all, nil
	}

	var own []Order
	for _, o := range all {
		if o.Email == sess.Email {
			own = append(own, o)
		}
	}
	return own, nil
}

func (s *Service) saveCart(ctx context.Context, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.store.Set(ctx, store.KeyCart, raw); err != nil {
		return fmt.Errorf("storing cart: %w", err)
	}
	return nil
}

func (s *Service) loadOrders(ctx context.Context, st store.Store) ([]Order, error) {
	raw, err := st.Get(ctx, store.KeyOrders)
	if err != nil {
		return nil, fmt.Errorf("reading orders: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var orders []Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		s.log.Warn(ctx, "discarding unreadable order history", "error", err)
		return nil, nil
	}
	return orders, nil
}

func (s *Service) saveOrders(ctx context.Context, st store.Store, orders []Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encoding orders: %w", err)
	}
	if err := st.Set(ctx, store.KeyOrders, raw); err != nil {
		return fmt.Errorf("storing orders: %w", err)
	}
	return nil
}
