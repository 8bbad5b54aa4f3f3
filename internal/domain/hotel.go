package domain

// Coordinate is a latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

type Hotel struct {
	Name        string  `json:"name" validate:"required"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	IsBooked    bool    `json:"isBooked"`
	NearestUser *string `json:"nearestUser,omitempty"` // informational, set by the matcher
}

func (h Hotel) Coordinate() Coordinate {
	return Coordinate{Latitude: h.Latitude, Longitude: h.Longitude}
}

// MatchResult pairs a queried hotel with its closest user.
// NearestUser is nil when there were no candidates.
type MatchResult struct {
	Hotel          Hotel    `json:"hotel"`
	NearestUser    *User    `json:"nearestUser"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
}

// HotelsFromParallel zips the names/latitudes/longitudes arrays used by the
// nearest-user query into hotels. All three must have the same length.
func HotelsFromParallel(names []string, lats, lngs []float64) ([]Hotel, error) {
	if len(names) != len(lats) || len(lats) != len(lngs) {
		return nil, &InvalidInputError{
			Field:  "names,latitudes,longitudes",
			Reason: "Hotel parameters must be provided in equal lengths",
		}
	}
	out := make([]Hotel, len(names))
	for i := range names {
		out[i] = Hotel{Name: names[i], Latitude: lats[i], Longitude: lngs[i]}
	}
	return out, nil
}
