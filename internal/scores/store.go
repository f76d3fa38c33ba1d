// Package scores keeps the per-game best score. The whole table is stored
// as one JSON object in a Blob and is loaded lazily on first use.
package scores

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
)

// Order is the comparison direction of a game's score.
type Order int

const (
	HigherIsBetter Order = iota
	LowerIsBetter
)

// String returns the order name.
func (o Order) String() string {
	if o == LowerIsBetter {
		return "lower"
	}
	return "higher"
}

// Better reports whether candidate strictly beats best.
func (o Order) Better(candidate, best int) bool {
	if o == LowerIsBetter {
		return candidate < best
	}
	return candidate > best
}

// Option configures a Store.
type Option func(*Store)

// WithOrders sets the lookup used to find each game's comparison direction.
func WithOrders(orderOf func(gameID int) Order) Option {
	return func(s *Store) {
		if orderOf != nil {
			s.orderOf = orderOf
		}
	}
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store is the process-wide high-score table. It is safe for concurrent
// use.
type Store struct {
	blob    Blob
	orderOf func(int) Order
	logger  *log.Logger

	mu         sync.Mutex
	loaded     bool
	best       map[int]int
	memoryOnly bool
	writes     int
}

// New creates a store persisting to blob. A nil blob keeps scores in memory.
func New(blob Blob, opts ...Option) *Store {
	s := &Store{
		blob:    blob,
		orderOf: func(int) Order { return HigherIsBetter },
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if blob == nil {
		s.memoryOnly = true
	}
	return s
}

// Record compares value with the stored best for gameID using the game's
// order. Only a strictly better value is stored and persisted. It returns
// whether the best changed.
func (s *Store) Record(gameID int, value int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	if best, ok := s.best[gameID]; ok && !s.orderOf(gameID).Better(value, best) {
		return false
	}
	s.best[gameID] = value
	s.persist()
	return true
}

// Best returns the stored best for gameID.
func (s *Store) Best(gameID int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	v, ok := s.best[gameID]
	return v, ok
}

// All returns a copy of the whole table.
func (s *Store) All() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	return maps.Clone(s.best)
}

// Clear forgets the best for gameID and persists the table.
func (s *Store) Clear(gameID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if _, ok := s.best[gameID]; !ok {
		return
	}
	delete(s.best, gameID)
	s.persist()
}

// MemoryOnly reports whether persistence was given up for this session.
func (s *Store) MemoryOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.memoryOnly
}

// Writes returns the number of successful persistence writes.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.best = make(map[int]int)
	if s.blob == nil {
		return
	}

	data, err := s.blob.Load()
	if err != nil {
		s.logger.Warn("high scores unavailable, starting empty", "error", err)
		return
	}
	if len(data) == 0 {
		return
	}
	best, err := Decode(data)
	if err != nil {
		s.logger.Warn("high scores corrupt, starting empty", "error", err)
		return
	}
	s.best = best
}

func (s *Store) persist() {
	if s.memoryOnly {
		return
	}
	data, err := Encode(s.best)
	if err == nil {
		err = s.blob.Save(data)
	}
	if err != nil {
		s.memoryOnly = true
		s.logger.Error("saving high scores failed, keeping them in memory", "error", err)
		return
	}
	s.writes++
}

// Encode serializes the table as a JSON object keyed by decimal game id.
func Encode(best map[int]int) ([]byte, error) {
	out := make(map[string]int, len(best))
	for id, v := range best {
		out[strconv.Itoa(id)] = v
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("scores: encode: %w", err)
	}
	return data, nil
}

// Decode parses a JSON object into a table. Keys that are not integers and
// values that are not integral numbers are skipped.
func Decode(data []byte) (map[int]int, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("scores: decode: %w", err)
	}
	best := make(map[int]int, len(raw))
	for key, msg := range raw {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		var v json.Number
		if err := json.Unmarshal(msg, &v); err != nil {
			continue
		}
		n, err := v.Int64()
		if err != nil {
			continue
		}
		best[id] = int(n)
	}
	return best, nil
}
