// Package save persists shrine achievements between runs.
package save

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/oni-patrol/internal/logger"
)

const (
	achievementsObject   = "progress"
	achievementsProperty = "achievements.yaml"
)

// progress is the stored payload.
type progress struct {
	Achieved []int `yaml:"achieved"`
}

// Store keeps shrine achievements in memory and mirrors them to the
// platform data directory. Without a manager it runs in memory only.
type Store struct {
	mu       sync.Mutex
	manager  *gdata.Manager
	achieved map[int]bool
}

// Open opens the store for appName and loads saved achievements.
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open save data for %s: %w", appName, err)
	}
	return NewStore(m)
}

// NewStore wraps manager, which may be nil.
func NewStore(manager *gdata.Manager) (*Store, error) {
	s := &Store{manager: manager, achieved: make(map[int]bool)}
	if err := s.load(); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(achievementsObject, achievementsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(achievementsObject, achievementsProperty)
	if err != nil {
		return fmt.Errorf("failed to load achievements: %w", err)
	}
	var p progress
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to unmarshal achievements: %w", err)
	}
	for _, i := range p.Achieved {
		s.achieved[i] = true
	}
	logger.Debug("achievements loaded", zap.Ints("achieved", p.Achieved))
	return nil
}

// Achieved reports whether shrine has been cleared.
func (s *Store) Achieved(shrine int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.achieved[shrine]
}

// SetAchieved records shrine as cleared and writes the store. The memory
// copy is updated even when the write fails.
func (s *Store) SetAchieved(shrine int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achieved[shrine] = true
	return s.flush()
}

// Reset forgets every achievement.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.achieved = make(map[int]bool)
	return s.flush()
}

// List returns the achieved shrines in ascending order.
func (s *Store) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list()
}

func (s *Store) list() []int {
	out := make([]int, 0, len(s.achieved))
	for i := range s.achieved {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (s *Store) flush() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(progress{Achieved: s.list()})
	if err != nil {
		return fmt.Errorf("failed to marshal achievements: %w", err)
	}
	if err := s.manager.SaveObjectProp(achievementsObject, achievementsProperty, data); err != nil {
		return fmt.Errorf("failed to save achievements: %w", err)
	}
	return nil
}
