// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package state

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

// CartStore holds the shopping cart. Lines are unique by (ProductID, Size,
// Color) and totals are recomputed after every mutation.
type CartStore struct {
	mu        sync.RWMutex
	cart      models.Cart
	ids       IDGenerator
	validate  *validator.Validate
	persister *Persister[models.Cart]
	seq       uint64
	now       func() time.Time
	logger    *logger.Logger
}

// NewCartStore returns an empty cart persisted through repo (may be nil).
func NewCartStore(repo store.StateRepository, ids IDGenerator, log *logger.Logger) *CartStore {
	return &CartStore{
		cart:      models.Cart{Items: []models.CartItem{}, TotalPrice: decimal.Zero},
		ids:       ids,
		validate:  newValidator(),
		persister: NewPersister[models.Cart](repo, KeyCart),
		now:       time.Now,
		logger:    log,
	}
}

// AddItem merges req into the line with the same (ProductID, Size, Color)
// or appends a new line. A merge only adds the quantity: the line keeps the
// name and price it was first added with. It returns the resulting line.
func (s *CartStore) AddItem(ctx context.Context, req models.AddItemRequest) (models.CartItem, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return models.CartItem{}, err
	}

	var item models.CartItem
	s.mutate(ctx, func() bool {
		idx := slices.IndexFunc(s.cart.Items, func(it models.CartItem) bool {
			return it.Matches(req.ProductID, req.Size, req.Color)
		})
		if idx >= 0 {
			s.cart.Items[idx].Quantity += req.Quantity
		} else {
			s.cart.Items = append(s.cart.Items, models.CartItem{
				ID:        s.ids.Generate(),
				ProductID: req.ProductID,
				Name:      req.Name,
				Size:      req.Size,
				Color:     req.Color,
				Price:     req.Price,
				Quantity:  req.Quantity,
				Image:     req.Image,
			})
			idx = len(s.cart.Items) - 1
		}
		item = s.cart.Items[idx]
		return true
	})
	return item, nil
}

// RemoveItem drops the line with id and reports whether it existed.
func (s *CartStore) RemoveItem(ctx context.Context, id string) bool {
	return s.mutate(ctx, func() bool { return s.removeLocked(id) })
}

// UpdateQuantity sets the quantity of line id. A quantity <= 0 removes the
// line. It reports whether the line existed.
func (s *CartStore) UpdateQuantity(ctx context.Context, id string, quantity int) bool {
	return s.mutate(ctx, func() bool {
		if quantity <= 0 {
			return s.removeLocked(id)
		}

		idx := s.indexLocked(id)
		if idx < 0 {
			return false
		}
		s.cart.Items[idx].Quantity = quantity
		return true
	})
}

// ClearCart empties the cart.
func (s *CartStore) ClearCart(ctx context.Context) {
	s.mutate(ctx, func() bool {
		s.cart.Items = []models.CartItem{}
		return true
	})
}

// CalculateTotals recomputes and returns the cart totals. Calling it without
// an intervening mutation yields the same result.
func (s *CartStore) CalculateTotals() (totalItems int, totalPrice decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recalculateLocked()
	return s.cart.TotalItems, s.cart.TotalPrice
}

// Snapshot returns a copy of the cart.
func (s *CartStore) Snapshot() models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Item returns the line with id.
func (s *CartStore) Item(id string) (models.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexLocked(id)
	if idx < 0 {
		return models.CartItem{}, false
	}
	return s.cart.Items[idx], true
}

// Restore replaces the cart with the persisted one, if any.
func (s *CartStore) Restore(ctx context.Context) error {
	cart, ok, err := s.persister.Load(ctx)
	if err != nil || !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = cart
	if s.cart.Items == nil {
		s.cart.Items = []models.CartItem{}
	}
	s.recalculateLocked()
	return nil
}

// Flush writes the current cart to persistence.
func (s *CartStore) Flush(ctx context.Context) error {
	return s.persister.Save(ctx, s.Snapshot())
}

func (s *CartStore) indexLocked(id string) int {
	return slices.IndexFunc(s.cart.Items, func(it models.CartItem) bool { return it.ID == id })
}

func (s *CartStore) removeLocked(id string) bool {
	idx := s.indexLocked(id)
	if idx < 0 {
		return false
	}
	s.cart.Items = slices.Delete(s.cart.Items, idx, idx+1)
	return true
}

func (s *CartStore) snapshotLocked() models.Cart {
	cp := s.cart
	cp.Items = slices.Clone(s.cart.Items)
	return cp
}

func (s *CartStore) recalculateLocked() {
	totalItems := 0
	totalPrice := decimal.Zero
	for _, it := range s.cart.Items {
		totalItems += it.Quantity
		totalPrice = totalPrice.Add(it.Subtotal())
	}

	s.cart.TotalItems = totalItems
	s.cart.TotalPrice = totalPrice.Round(2)
}

// mutate runs fn under the lock. When fn reports a change the totals are
// recomputed and the cart is mirrored after the lock is released.
func (s *CartStore) mutate(ctx context.Context, fn func() bool) bool {
	s.mu.Lock()
	if !fn() {
		s.mu.Unlock()
		return false
	}
	s.recalculateLocked()
	s.cart.UpdatedAt = s.now()
	s.seq++
	seq, snapshot := s.seq, s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persister.Mirror(context.WithoutCancel(ctx), seq, snapshot); err != nil {
		s.logger.Err(err).Str("func", "CartStore.mutate").Msg("failed to persist cart")
	}
	return true
}
