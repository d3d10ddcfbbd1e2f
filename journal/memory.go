package journal

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Slidrive/prismtrade/ledger"
)

// MemoryStore is an in-memory TradeStore for tests and paper runs.
type MemoryStore struct {
	mu     sync.Mutex
	trades map[string]ledger.Trade
	order  []string // insertion order
}

func NewMemory() *MemoryStore {
	return &MemoryStore{trades: make(map[string]ledger.Trade)}
}

func (s *MemoryStore) CreateTrade(t *ledger.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trades[t.ID]; ok {
		return fmt.Errorf("trade %q already exists", t.ID)
	}
	s.trades[t.ID] = *t
	s.order = append(s.order, t.ID)
	return nil
}

func (s *MemoryStore) GetTrade(id string) (ledger.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trades[id]
	if !ok {
		return ledger.Trade{}, fmt.Errorf("trade %q: %w", id, ledger.ErrNotFound)
	}
	return t, nil
}

func (s *MemoryStore) UpdateTrade(t *ledger.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.trades[t.ID]; !ok {
		return fmt.Errorf("trade %q: %w", t.ID, ledger.ErrNotFound)
	}
	s.trades[t.ID] = *t
	return nil
}

func (s *MemoryStore) ListOpen(mode ledger.Mode) ([]ledger.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ledger.Trade
	for _, id := range s.order {
		t := s.trades[id]
		if t.Status == ledger.StatusOpen && t.Mode == mode {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *MemoryStore) ListClosed(mode ledger.Mode, limit int) ([]ledger.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []ledger.Trade
	for _, id := range s.order {
		t := s.trades[id]
		if t.Status == ledger.StatusClosed && t.Mode == mode {
			out = append(out, t)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExitTime.After(out[j].ExitTime)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }
