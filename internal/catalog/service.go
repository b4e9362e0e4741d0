package catalog

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

type ProductLister interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}

// Service serves the product grid from cache when it can, collapsing
// concurrent misses into one backend fetch. Cache trouble never fails a
// listing; the backend does.
type Service struct {
	api   ProductLister
	cache ProductCache
	sfg   singleflight.Group
	log   *slog.Logger
}

func NewService(api ProductLister, cache ProductCache, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{api: api, cache: cache, log: log}
}

// Products lists the catalog, at most limit entries. limit <= 0 means all.
func (s *Service) Products(ctx context.Context, limit int) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("catalog cache get failed", "err", err)
		}

		products, err = s.api.ListProducts(ctx)
		if err != nil {
			return nil, err
		}

		go func() {
			if err := s.cache.Set(context.Background(), products); err != nil {
				s.log.Warn("catalog cache set failed", "err", err)
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	products := v.([]domain.Product)
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}
