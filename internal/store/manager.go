package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"storefront-proxy/internal/persist"
)

// Document kinds used to build persistence keys. Each store persists an
// independent document.
const (
	KindCart     = "cart"
	KindWishlist = "wishlist"
	KindRecent   = "recently-viewed"
)

// Session groups the three stores of one shopping session.
type Session struct {
	ID       string
	Cart     *Cart
	Wishlist *Wishlist
	Recent   *RecentlyViewed
}

// Manager owns the per-session stores. It is the single source of truth per
// concern: the application root creates one Manager and hands it to the
// handlers, which look sessions up by ID. Snapshots are loaded from durable
// storage on first touch and written back after every mutation.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	persist persist.Store
	logger  *slog.Logger
}

// NewManager creates a Manager backed by the given snapshot store.
func NewManager(p persist.Store, logger *slog.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		persist:  p,
		logger:   logger,
	}
}

// Session returns the stores for the given session ID, restoring persisted
// documents on first access. A load failure surfaces to the caller rather
// than silently handing out an empty cart over a populated snapshot.
func (m *Manager) Session(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	s, err := m.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	m.sessions[id] = s
	return s, nil
}

func (m *Manager) loadSession(ctx context.Context, id string) (*Session, error) {
	loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s := &Session{
		ID:       id,
		Cart:     NewCart(),
		Wishlist: NewWishlist(),
		Recent:   NewRecentlyViewed(),
	}

	var cartDoc CartDocument
	if found, err := m.persist.Load(loadCtx, persist.Key(KindCart, id), &cartDoc); err != nil {
		return nil, fmt.Errorf("loading cart snapshot: %w", err)
	} else if found {
		s.Cart.Restore(cartDoc)
	}

	var wishDoc WishlistDocument
	if found, err := m.persist.Load(loadCtx, persist.Key(KindWishlist, id), &wishDoc); err != nil {
		return nil, fmt.Errorf("loading wishlist snapshot: %w", err)
	} else if found {
		s.Wishlist.Restore(wishDoc)
	}

	var recentDoc RecentDocument
	if found, err := m.persist.Load(loadCtx, persist.Key(KindRecent, id), &recentDoc); err != nil {
		return nil, fmt.Errorf("loading recently-viewed snapshot: %w", err)
	} else if found {
		s.Recent.Restore(recentDoc)
	}

	s.Cart.saver = &saver{store: m.persist, key: persist.Key(KindCart, id), logger: m.logger}
	s.Wishlist.saver = &saver{store: m.persist, key: persist.Key(KindWishlist, id), logger: m.logger}
	s.Recent.saver = &saver{store: m.persist, key: persist.Key(KindRecent, id), logger: m.logger}

	return s, nil
}
