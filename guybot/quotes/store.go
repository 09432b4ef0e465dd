// Package quotes holds the in-memory collection of quotes the bot draws from.
package quotes

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"

	log "github.com/sirupsen/logrus"
)

// ErrNotFound is matched by every error Load returns: a missing folder and a
// file that is not a fortune file are both reported as the quotes not being
// found.
var ErrNotFound = errors.New("quotes not found")

// Store is a read-mostly collection of quotes. The slice is written once,
// before the Store is returned to callers, and never modified afterward.
type Store struct {
	mu     sync.RWMutex
	quotes []string
}

// New returns a Store holding a copy of quotes.
func New(quotes []string) *Store {
	s := &Store{}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = append([]string(nil), quotes...)
	return s
}

// Load builds a Store from every regular file directly inside folder. Files
// are read in lexical order. Subdirectories are not descended into.
func Load(folder string) (*Store, error) {
	info, err := os.Stat(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: folder %q: %v", ErrNotFound, folder, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a folder", ErrNotFound, folder)
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %v", ErrNotFound, folder, err)
	}

	var all []string
	for _, e := range entries {
		path := filepath.Join(folder, e.Name())
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		recs, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		log.WithFields(log.Fields{"file": path, "quotes": len(recs)}).Debug("Loaded fortune file")
		all = append(all, recs...)
	}
	return New(all), nil
}

func loadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load fortunes from %q: %v", ErrNotFound, path, err)
	}
	recs, err := parseFortuneFile(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load fortunes from %q: %v", ErrNotFound, path, err)
	}
	return recs, nil
}

// Random returns a uniformly chosen quote. It reports false if the store is
// empty.
func (s *Store) Random() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.quotes) == 0 {
		return "", false
	}
	return s.quotes[rand.IntN(len(s.quotes))], true
}

// Len returns the number of quotes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.quotes)
}

// All returns a copy of every quote in load order.
func (s *Store) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.quotes...)
}
