package app

import (
	"math"

	"hotel_match/internal/domain"
	"hotel_match/internal/geo"
)

// FindNearest returns one result per hotel, in input order, naming the
// closest user by great-circle distance. Ties go to the user that appears
// first in users. With no users every result has a nil NearestUser.
func FindNearest(hotels []domain.Hotel, users []domain.User) []domain.MatchResult {
	out := make([]domain.MatchResult, 0, len(hotels))
	for _, h := range hotels {
		res := domain.MatchResult{Hotel: h}
		hc := h.Coordinate()

		best := -1
		bestDist := math.Inf(1)
		for i := range users {
			d := geo.Distance(hc, users[i].Address.Geo.Coordinate())
			if d < bestDist {
				bestDist = d
				best = i
			}
		}

		if best >= 0 {
			u := users[best]
			name := u.Name
			dist := bestDist
			res.NearestUser = &u
			res.Hotel.NearestUser = &name
			res.DistanceMeters = &dist
		}
		out = append(out, res)
	}
	return out
}
