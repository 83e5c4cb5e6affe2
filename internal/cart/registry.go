package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/swag-catalog/internal/models"
	"github.com/jellydator/ttlcache/v3"
	"golang.org/x/sync/singleflight"
)

const maxUpdateAttempts = 3

type StorageFactory func(sessionID string) Storage

// SessionObserver is attached to every store the registry creates.
type SessionObserver func(sessionID string, items []models.CartItem)

// session serialises storage access for one session id across every store
// opened for it. It lives as long as an opener or an unretired store holds it.
type session struct {
	mu    sync.Mutex
	store *Store
	refs  int
}

// Registry hands out one Store per session, seeding it from storage on first
// use. Stores are dropped ttl after they were loaded, or earlier once capacity
// sessions are held; storage is written on every mutation, so a dropped store
// is simply reloaded on the next request and never outlives its snapshot.
// A dropped or replaced store is retired and refuses further mutations.
type Registry struct {
	mu        sync.Mutex
	sessions  map[string]*session
	stores    *ttlcache.Cache[string, *Store]
	loads     singleflight.Group
	factory   StorageFactory
	observers []SessionObserver
}

// NewRegistry keeps at most capacity stores; 0 means no limit.
func NewRegistry(factory StorageFactory, ttl time.Duration, capacity uint64, observers ...SessionObserver) *Registry {
	r := &Registry{
		sessions: make(map[string]*session),
		stores: ttlcache.New[string, *Store](
			ttlcache.WithTTL[string, *Store](ttl),
			ttlcache.WithCapacity[string, *Store](capacity),
			ttlcache.WithDisableTouchOnHit[string, *Store](),
		),
		factory:   factory,
		observers: observers,
	}

	r.stores.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, *Store]) {
		item.Value().retire()
	})

	return r
}

// Get returns the session's store, loading and retaining it on a miss.
// Concurrent first requests for one session share a single load; loads for
// different sessions run in parallel.
func (r *Registry) Get(ctx context.Context, sessionID string) (*Store, error) {
	if item := r.stores.Get(sessionID); item != nil {
		return item.Value(), nil
	}

	v, err, _ := r.loads.Do("get:"+sessionID, func() (any, error) {
		return r.open(ctx, sessionID, true)
	})
	if err != nil {
		return nil, err
	}

	return v.(*Store), nil
}

// View returns a store for reading. A session with nothing stored gets a
// detached empty store that is not retained, so read-only traffic from new
// sessions does not grow the registry. Mutating a detached store returns
// ErrRetired.
func (r *Registry) View(ctx context.Context, sessionID string) (*Store, error) {
	if item := r.stores.Get(sessionID); item != nil {
		return item.Value(), nil
	}

	v, err, _ := r.loads.Do("view:"+sessionID, func() (any, error) {
		return r.open(ctx, sessionID, false)
	})
	if err != nil {
		return nil, err
	}

	return v.(*Store), nil
}

// Update runs fn against the session's store. When fn reports ErrRetired the
// store was dropped while fn held it, and fn runs again on a fresh one.
func (r *Registry) Update(ctx context.Context, sessionID string, fn func(*Store) error) (*Store, error) {
	for attempt := 1; ; attempt++ {
		store, err := r.Get(ctx, sessionID)
		if err != nil {
			return nil, err
		}

		err = fn(store)
		if errors.Is(err, ErrRetired) && attempt < maxUpdateAttempts {
			continue
		}

		return store, err
	}
}

func (r *Registry) open(ctx context.Context, sessionID string, keepEmpty bool) (*Store, error) {
	sess := r.acquire(sessionID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// another load for the session finished while this one waited
	if item := r.stores.Get(sessionID); item != nil {
		r.release(sessionID)
		return item.Value(), nil
	}

	if sess.store != nil {
		sess.store.retireLocked()
		sess.store = nil
	}

	store, err := load(context.WithoutCancel(ctx), r.factory(sessionID), &sess.mu)
	if err != nil {
		r.release(sessionID)
		return nil, err
	}

	for _, o := range r.observers {
		store.subscribeLocked(func(items []models.CartItem) {
			o(sessionID, items)
		})
	}

	if !keepEmpty && len(store.items) == 0 {
		store.retired = true
		r.release(sessionID)

		return store, nil
	}

	store.onRetire = func() { r.release(sessionID) }
	sess.store = store
	r.stores.Set(sessionID, store, ttlcache.DefaultTTL)

	return store, nil
}

func (r *Registry) acquire(sessionID string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.sessions[sessionID]
	if !ok {
		sess = &session{}
		r.sessions[sessionID] = sess
	}
	sess.refs++

	return sess
}

func (r *Registry) release(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess := r.sessions[sessionID]
	sess.refs--
	if sess.refs == 0 {
		delete(r.sessions, sessionID)
	}
}

func (r *Registry) Len() int {
	return r.stores.Len()
}

// Start runs the eviction loop until Stop is called.
func (r *Registry) Start() {
	r.stores.Start()
}

func (r *Registry) Stop() {
	r.stores.Stop()
}
