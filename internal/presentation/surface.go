package presentation

import (
	"sort"
	"sync"

	"mosque/pkg/geo"
)

// MemorySurface is a Surface that only records what was drawn. The HTTP
// service renders from it and tests assert against it.
type MemorySurface struct {
	mu          sync.Mutex
	overlays    map[string]Overlay
	center      geo.Coordinate
	zoom        int
	invalidated int
	openLabel   string
}

// NewMemorySurface returns a surface with nothing drawn.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{overlays: make(map[string]Overlay)}
}

func (s *MemorySurface) AddOverlay(o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overlays[o.OverlayID()] = o
}

func (s *MemorySurface) RemoveOverlay(o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overlays, o.OverlayID())
	if s.openLabel == o.OverlayID() {
		s.openLabel = ""
	}
}

func (s *MemorySurface) SetView(center geo.Coordinate, zoom int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.center = center
	s.zoom = zoom
}

func (s *MemorySurface) InvalidateSize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invalidated++
}

func (s *MemorySurface) OpenLabel(o Overlay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openLabel = o.OverlayID()
}

// Overlays returns the IDs of everything currently drawn, sorted.
func (s *MemorySurface) Overlays() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.overlays))
	for id := range s.overlays {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *MemorySurface) Overlay(id string) (Overlay, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overlays[id]
	return o, ok
}

func (s *MemorySurface) View() (geo.Coordinate, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.center, s.zoom
}

func (s *MemorySurface) Invalidations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// OpenLabelID is the overlay whose popup is open, empty when none is.
func (s *MemorySurface) OpenLabelID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openLabel
}
