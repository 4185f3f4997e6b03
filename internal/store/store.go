// Package store keeps captured screenshots in memory for later composition.
package store

import (
	"errors"
	"image"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rviscarra/snapcompose/internal/rdisplay"
	"go.uber.org/zap"
)

// ErrNotFound no screenshot has the requested id
var ErrNotFound = errors.New("screenshot not found")

// Screenshot is a stored capture
type Screenshot struct {
	ID        string
	Timestamp int64
	Width     int
	Height    int
	Region    rdisplay.Region
	Image     *image.RGBA
}

// Store is a screenshot map guarded by a single mutex. Stored images are
// never mutated, so callers may read them after the lock is released.
type Store struct {
	mu          sync.Mutex
	screenshots map[string]Screenshot
	now         func() time.Time
	logger      *zap.Logger
}

// New creates an empty Store
func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		screenshots: make(map[string]Screenshot),
		now:         time.Now,
		logger:      logger,
	}
}

// Add stores img under a fresh id and returns the stored entry
func (s *Store) Add(img *image.RGBA, region rdisplay.Region) Screenshot {
	shot := Screenshot{
		ID:     uuid.New().String(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Region: region,
		Image:  img,
	}

	s.mu.Lock()
	shot.Timestamp = s.now().Unix()
	s.screenshots[shot.ID] = shot
	total := len(s.screenshots)
	s.mu.Unlock()

	s.logger.Debug("Stored screenshot",
		zap.String("id", shot.ID),
		zap.Int("width", shot.Width),
		zap.Int("height", shot.Height),
		zap.Int("total", total))
	return shot
}

// Get returns the screenshot with the given id
func (s *Store) Get(id string) (Screenshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shot, ok := s.screenshots[id]
	if !ok {
		return Screenshot{}, ErrNotFound
	}
	return shot, nil
}

// List returns every screenshot, oldest first
func (s *Store) List() []Screenshot {
	s.mu.Lock()
	result := make([]Screenshot, 0, len(s.screenshots))
	for _, shot := range s.screenshots {
		result = append(result, shot)
	}
	s.mu.Unlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Timestamp != result[j].Timestamp {
			return result[i].Timestamp < result[j].Timestamp
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Delete removes the screenshot with the given id. Unknown ids are ignored;
// the return value reports whether anything was removed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	_, ok := s.screenshots[id]
	delete(s.screenshots, id)
	s.mu.Unlock()

	if ok {
		s.logger.Debug("Deleted screenshot", zap.String("id", id))
	}
	return ok
}

// Len returns the number of stored screenshots
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.screenshots)
}

// Snapshot resolves ids under a single lock acquisition. Found images come
// back in request order; ids with no entry are returned in missing.
func (s *Store) Snapshot(ids []string) (images []image.Image, missing []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range ids {
		shot, ok := s.screenshots[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		images = append(images, shot.Image)
	}
	return images, missing
}
