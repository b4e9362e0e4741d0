package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/storage"
)

// storageKey matches the localStorage key the backend's web clients use.
const storageKey = "cart"

// Store is the authoritative local cart. Every mutation writes the full line
// list through to storage before returning, so the persisted view never lags
// the in-memory one. Nothing here touches the network.
type Store struct {
	kv storage.KV
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Add puts one unit of the product in the cart. Adding a product that is
// already present bumps its quantity; the cart holds at most one line per
// product id.
func (s *Store) Add(ctx context.Context, productID int64, name string, unitPrice decimal.Decimal) error {
	lines, err := s.load(ctx)
	if err != nil {
		return err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, domain.CartLine{
			ProductID: productID,
			Name:      name,
			UnitPrice: unitPrice,
			Quantity:  1,
		})
	}

	return s.save(ctx, lines)
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID int64) error {
	lines, err := s.load(ctx)
	if err != nil {
		return err
	}

	for i, line := range lines {
		if line.ProductID == productID {
			lines = append(lines[:i], lines[i+1:]...)
			return s.save(ctx, lines)
		}
	}
	return nil
}

// Items returns the current lines in insertion order.
func (s *Store) Items(ctx context.Context) ([]domain.CartLine, error) {
	return s.load(ctx)
}

// Total sums unit price times quantity over all lines.
func (s *Store) Total(ctx context.Context) (decimal.Decimal, error) {
	lines, err := s.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal())
	}
	return total, nil
}

// Clear removes the cart from storage entirely.
func (s *Store) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, storageKey)
}

func (s *Store) load(ctx context.Context) ([]domain.CartLine, error) {
	raw, err := s.kv.Get(ctx, storageKey)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return lines, nil
}

func (s *Store) save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.kv.Set(ctx, storageKey, raw); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}
