package cart

import (
	"sync"

	"github.com/smarttools-ng/storefront/internal/models"
)

// Engine owns the live cart state for one session. Transitions are
// applied atomically: totals are recomputed before the new snapshot is
// visible, so a reader never observes stale derived fields. The engine
// performs no I/O; persistence is the caller's side effect, triggered
// through Subscribe or after Dispatch returns.
type Engine struct {
	mu        sync.Mutex
	reducer   *Reducer
	state     models.Cart
	listeners map[int]func(models.Cart)
	nextSubID int
}

func NewEngine(reducer *Reducer) *Engine {
	return &Engine{
		reducer:   reducer,
		state:     reducer.Empty(),
		listeners: make(map[int]func(models.Cart)),
	}
}

// Dispatch applies an intent and returns the resulting snapshot.
// Subscribers are notified outside the lock with their own copy.
func (e *Engine) Dispatch(in Intent) models.Cart {
	e.mu.Lock()
	e.state = e.reducer.Apply(e.state, in)
	snapshot := cloneCart(e.state)

	notify := make([]func(models.Cart), 0, len(e.listeners))
	for _, fn := range e.listeners {
		notify = append(notify, fn)
	}
	e.mu.Unlock()

	for _, fn := range notify {
		fn(cloneCart(snapshot))
	}

	return snapshot
}

// Snapshot is the current immutable cart value.
func (e *Engine) Snapshot() models.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()

	return cloneCart(e.state)
}

// Subscribe registers a collaborator to be called after every
// transition. The returned function unsubscribes it.
func (e *Engine) Subscribe(fn func(models.Cart)) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	id := e.nextSubID
	e.nextSubID++
	e.listeners[id] = fn

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

// IsInCart reports whether a line exists for the product.
func (e *Engine) IsInCart(productID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return lineIndex(e.state.Items, productID) >= 0
}

// QuantityOf returns the line quantity for a product, zero if absent.
func (e *Engine) QuantityOf(productID string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if i := lineIndex(e.state.Items, productID); i >= 0 {
		return e.state.Items[i].Quantity
	}

	return 0
}

func cloneCart(c models.Cart) models.Cart {
	cloned := c
	cloned.Items = cloneLines(c.Items)

	return cloned
}
