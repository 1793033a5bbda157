// Package score persists the high score across runs. Storage goes
// through gdata so the same code works on every platform; when the
// backing store cannot be opened the store degrades to memory-only.
package score

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

const (
	scoreObject = "scores"
	bestProp    = "best"
)

// Store holds the best score. A nil manager means degraded mode: the
// value lives only for the process lifetime. Safe for concurrent use;
// the SSH server shares one store across sessions.
type Store struct {
	mu      sync.Mutex
	log     *log.Logger
	manager *gdata.Manager
	best    int
}

// Open creates a store backed by the platform data directory. Failure to
// open the backing store is not fatal; the store runs memory-only.
func Open(logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}

	s := &Store{log: logger}

	manager, err := gdata.Open(gdata.Config{AppName: "starlane"})
	if err != nil {
		logger.Warn("high score storage unavailable, scores will not persist", "err", err)
		return s
	}
	s.manager = manager

	if err := s.load(); err != nil {
		logger.Warn("failed to load high score", "err", err)
	}
	return s
}

func (s *Store) load() error {
	if !s.manager.ObjectPropExists(scoreObject, bestProp) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(scoreObject, bestProp)
	if err != nil {
		return fmt.Errorf("load best score: %w", err)
	}
	best, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("parse best score %q: %w", data, err)
	}
	s.best = best
	return nil
}

// Best returns the best score seen so far.
func (s *Store) Best() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best
}

// Record submits a finished run's score. Returns true when it beats the
// previous best. The new best is persisted when a manager is available.
func (s *Store) Record(score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if score <= s.best {
		return false
	}
	s.best = score

	if s.manager == nil {
		return true
	}
	data := []byte(strconv.Itoa(score))
	if err := s.manager.SaveObjectProp(scoreObject, bestProp, data); err != nil {
		s.log.Warn("failed to persist high score", "err", err)
	}
	return true
}
