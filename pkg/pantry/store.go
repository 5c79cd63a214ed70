package pantry

import (
	"context"
	"log"
	"sync"
	"time"
)

type (
	// Item is the in-memory view of a pantry item held by the Store. IDs
	// starting with "temp-" are placeholders awaiting remote confirmation.
	Item struct {
		ID             string
		Name           string
		Quantity       float64
		Unit           string
		Category       string
		ExpirationDate string
		Notes          string
		AddedDate      time.Time
		ImageURL       string
	}

	// ItemPatch is a merge-patch: nil fields are left untouched.
	ItemPatch struct {
		Name           *string
		Quantity       *float64
		Unit           *string
		Category       *string
		ExpirationDate *string
		Notes          *string
		ImageURL       *string
	}

	Loader func(ctx context.Context) ([]Item, error)

	// Store is the single cache of one user's item list. Mutations are
	// optimistic: AddItem takes effect before any remote confirmation and
	// is never rolled back, while DeleteItem/UpdateItem must only be called
	// after the caller confirmed the remote operation.
	Store struct {
		mu      sync.RWMutex
		items   []Item
		load    Loader
		lastErr error
	}
)

func NewStore(load Loader) *Store {
	return &Store{load: load}
}

// Items returns a snapshot copy of the current list.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Refresh is cache-then-network: a non-empty cache is served as-is while a
// background read reconciles it (failures there are logged and swallowed);
// an empty cache forces a direct read whose failure is recorded and
// surfaced. The background snapshot replaces the list wholesale -
// last-writer-wins, no version check - so it can transiently clobber an
// optimistic insert still in flight. Accepted behavior, not corrected.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	cached := len(s.items) > 0
	s.mu.RUnlock()

	if cached {
		go func() {
			items, err := s.load(context.Background())
			if err != nil {
				log.Printf("background inventory reconcile failed: %v", err)
				return
			}
			s.replace(items)
		}()
		return nil
	}

	items, err := s.load(ctx)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}
	s.replace(items)
	return nil
}

func (s *Store) replace(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.lastErr = nil
}

// AddItem prepends optimistically; the item shows up before any remote
// write has been attempted.
func (s *Store) AddItem(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]Item{item}, s.items...)
}

// ReplaceTempID swaps a placeholder id for the server-confirmed one in
// place, keeping list position and every other field. If the confirmed id
// is already present (a background reconcile beat us to it) the temp entry
// is dropped instead, so ids stay unique.
func (s *Store) ReplaceTempID(tempID, realID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	realExists := false
	for _, it := range s.items {
		if it.ID == realID {
			realExists = true
			break
		}
	}

	for i, it := range s.items {
		if it.ID != tempID {
			continue
		}
		if realExists {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].ID = realID
		}
		return true
	}
	return false
}

// DeleteItem removes locally. Callers must have confirmed the remote delete
// first; the store does not call the remote side itself.
func (s *Store) DeleteItem(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateItem applies a local-only merge-patch.
func (s *Store) UpdateItem(id string, patch ItemPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		applyPatch(&s.items[i], patch)
		return true
	}
	return false
}

func applyPatch(item *Item, patch ItemPatch) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.ExpirationDate != nil {
		item.ExpirationDate = *patch.ExpirationDate
	}
	if patch.Notes != nil {
		item.Notes = *patch.Notes
	}
	if patch.ImageURL != nil {
		item.ImageURL = *patch.ImageURL
	}
}
