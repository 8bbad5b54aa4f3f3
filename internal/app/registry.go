package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"hotel_match/internal/domain"
)

// HotelRegistry holds hotels keyed by name together with their booked state.
// All reads and writes go through one mutex so a booking's check and set
// happen as a single step.
type HotelRegistry struct {
	mu     sync.Mutex
	hotels []domain.Hotel
	byName map[string]int
}

// NewHotelRegistry seeds the registry. Duplicate names in seed collapse
// onto the first entry.
func NewHotelRegistry(seed []domain.Hotel) *HotelRegistry {
	r := &HotelRegistry{byName: make(map[string]int, len(seed))}
	for _, h := range seed {
		if _, ok := r.byName[h.Name]; ok {
			continue
		}
		h.NearestUser = nil
		r.byName[h.Name] = len(r.hotels)
		r.hotels = append(r.hotels, h)
	}
	return r
}

// List returns a copy of all hotels in registration order.
func (r *HotelRegistry) List() []domain.Hotel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Hotel, len(r.hotels))
	copy(out, r.hotels)
	return out
}

// Book marks the named hotel as booked. An unknown name is registered as
// booked. It reports false, without changing anything, when the hotel is
// already booked.
func (r *HotelRegistry) Book(h domain.Hotel) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.byName[h.Name]; ok {
		if r.hotels[i].IsBooked {
			log.Info().Str("hotel", h.Name).Msg("booking rejected: already booked")
			return false
		}
		r.hotels[i].IsBooked = true
		log.Info().Str("hotel", h.Name).Msg("hotel booked")
		return true
	}

	h.IsBooked = true
	h.NearestUser = nil
	r.byName[h.Name] = len(r.hotels)
	r.hotels = append(r.hotels, h)
	log.Info().Str("hotel", h.Name).Float64("lat", h.Latitude).Float64("lng", h.Longitude).Msg("hotel registered and booked")
	return true
}
