package checkout

import (
	"context"
	"log/slog"

	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/api"
	"github.com/NilaRamamoorthy/ecommerce-frontend/internal/domain"
)

// CartStore is what checkout needs from the local cart.
type CartStore interface {
	Items(ctx context.Context) ([]domain.CartLine, error)
	Clear(ctx context.Context) error
}

// SessionStore supplies the bearer token for the checkout request.
type SessionStore interface {
	Token(ctx context.Context) (string, error)
}

// CheckoutAPI is the remote endpoint. A nil item list means "use the
// server-side cart".
type CheckoutAPI interface {
	Checkout(ctx context.Context, token string, items []domain.CartLine) error
}

// Service turns the local cart into a server-side order, at most once per
// call. The cart is only cleared after the server confirms the order; any
// failure leaves it exactly as it was.
type Service struct {
	cart    CartStore
	session SessionStore
	api     CheckoutAPI

	// sendItems selects the checkout body variant: the client-sent item
	// list, or an empty body deferring to the server-side cart.
	sendItems bool
	log       *slog.Logger
}

type Options struct {
	SendCartItems bool
	Logger        *slog.Logger
}

func NewService(cart CartStore, session SessionStore, api CheckoutAPI, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		cart:      cart,
		session:   session,
		api:       api,
		sendItems: opts.SendCartItems,
		log:       log,
	}
}

// PlaceOrder runs the checkout protocol. Without a session it returns
// api.ErrAuthRequired before any request is issued. There is no retry and no
// double-submit protection; the caller owns the confirmation step.
func (s *Service) PlaceOrder(ctx context.Context) error {
	token, err := s.session.Token(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return api.ErrAuthRequired
	}

	var payload []domain.CartLine
	if s.sendItems {
		items, err := s.cart.Items(ctx)
		if err != nil {
			return err
		}
		if items == nil {
			items = []domain.CartLine{}
		}
		payload = items
	}

	if err := s.api.Checkout(ctx, token, payload); err != nil {
		s.log.Warn("checkout rejected, cart left untouched", "err", err)
		return err
	}

	// Order is placed. A failed clear is logged rather than surfaced: the
	// purchase went through and reporting an error here would say otherwise.
	if err := s.cart.Clear(ctx); err != nil {
		s.log.Error("order placed but cart clear failed", "err", err)
	}

	s.log.Info("order placed")
	return nil
}
