package shared

import "hotel_match/internal/domain"

// SeedHotels is the registry's starting set.
var SeedHotels = []domain.Hotel{
	{Name: "Grand Hotel", Latitude: 40.7128, Longitude: -74.0060},
	{Name: "Seaside Resort", Latitude: -43.9509, Longitude: -34.4618},
	{Name: "Mountain Lodge", Latitude: 34.0522, Longitude: -118.2437},
	{Name: "Desert Oasis", Latitude: -25.2744, Longitude: 133.7751},
}
