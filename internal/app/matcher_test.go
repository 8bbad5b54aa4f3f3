package app_test

import (
	"math/rand"
	"testing"

	"hotel_match/internal/app"
	"hotel_match/internal/domain"
	"hotel_match/internal/geo"
)

func TestFindNearest_GrandHotel(t *testing.T) {
	hotels := []domain.Hotel{hotel("Grand Hotel", 40.7128, -74.0060)}
	users := []domain.User{
		user(1, "Leanne", 40.7306, -73.9866),
		user(2, "Ervin", 34.0522, -118.2437),
	}

	got := app.FindNearest(hotels, users)
	if len(got) != 1 {
		t.Fatalf("results = %d, want 1", len(got))
	}
	r := got[0]
	if r.NearestUser == nil || r.NearestUser.ID != 1 {
		t.Fatalf("nearest = %+v, want id 1", r.NearestUser)
	}
	if r.DistanceMeters == nil || *r.DistanceMeters > 3000 {
		t.Fatalf("distance = %v, want about 2.6km", r.DistanceMeters)
	}
	if r.Hotel.NearestUser == nil || *r.Hotel.NearestUser != "Leanne" {
		t.Fatalf("hotel.nearestUser = %v, want Leanne", r.Hotel.NearestUser)
	}
	if r.Hotel.Name != "Grand Hotel" {
		t.Fatalf("hotel name = %q", r.Hotel.Name)
	}
}

func TestFindNearest_OneResultPerHotelInOrder(t *testing.T) {
	hotels := []domain.Hotel{
		hotel("Hotel A", -43.9509, -34.4618),
		hotel("Hotel B", 40.7128, -74.0060),
		hotel("Hotel C", 34.0522, -118.2437),
		hotel("Hotel D", -25.2744, 133.7751),
	}
	users := []domain.User{
		user(1, "User 1", -34.4618, -58.5718),
		user(2, "User 2", 40.7548, -73.9774),
		user(3, "User 3", 34.0194, -118.4108),
		user(4, "User 4", -25.3444, 131.0369),
		user(5, "User 5", 51.5074, -0.1278),
	}

	got := app.FindNearest(hotels, users)
	if len(got) != len(hotels) {
		t.Fatalf("results = %d, want %d", len(got), len(hotels))
	}
	for i, want := range []int{1, 2, 3, 4} {
		if got[i].Hotel.Name != hotels[i].Name {
			t.Errorf("result %d hotel = %q, want %q", i, got[i].Hotel.Name, hotels[i].Name)
		}
		if got[i].NearestUser == nil || got[i].NearestUser.ID != want {
			t.Errorf("result %d nearest = %+v, want id %d", i, got[i].NearestUser, want)
		}
	}
}

func TestFindNearest_TieGoesToFirstUser(t *testing.T) {
	hotels := []domain.Hotel{hotel("Equator", 0, 0)}
	users := []domain.User{
		user(7, "east", 0, 1),
		user(3, "west", 0, -1),
		user(9, "east again", 0, 1),
	}
	got := app.FindNearest(hotels, users)
	if got[0].NearestUser == nil || got[0].NearestUser.ID != 7 {
		t.Fatalf("nearest = %+v, want id 7", got[0].NearestUser)
	}
}

func TestFindNearest_EmptyInputs(t *testing.T) {
	if got := app.FindNearest(nil, []domain.User{user(1, "a", 0, 0)}); len(got) != 0 {
		t.Fatalf("empty hotels: got %d results", len(got))
	}

	got := app.FindNearest([]domain.Hotel{hotel("a", 1, 1), hotel("b", 2, 2)}, nil)
	if len(got) != 2 {
		t.Fatalf("results = %d, want 2", len(got))
	}
	for _, r := range got {
		if r.NearestUser != nil || r.DistanceMeters != nil || r.Hotel.NearestUser != nil {
			t.Fatalf("expected absent match, got %+v", r)
		}
	}
}

func TestFindNearest_Minimal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	users := make([]domain.User, 200)
	for i := range users {
		users[i] = user(i+1, "u", rng.Float64()*180-90, rng.Float64()*360-180)
	}
	hotels := make([]domain.Hotel, 50)
	for i := range hotels {
		hotels[i] = hotel("h", rng.Float64()*180-90, rng.Float64()*360-180)
	}

	for _, r := range app.FindNearest(hotels, users) {
		if r.NearestUser == nil {
			t.Fatal("expected a match")
		}
		best := geo.Distance(r.Hotel.Coordinate(), r.NearestUser.Address.Geo.Coordinate())
		for _, u := range users {
			if d := geo.Distance(r.Hotel.Coordinate(), u.Address.Geo.Coordinate()); d < best {
				t.Fatalf("user %d at %.1fm is closer than chosen %d at %.1fm", u.ID, d, r.NearestUser.ID, best)
			}
		}
	}
}

func TestFindNearest_DoesNotMutateInputs(t *testing.T) {
	hotels := []domain.Hotel{hotel("a", 1, 1)}
	users := []domain.User{user(1, "x", 1, 1)}
	_ = app.FindNearest(hotels, users)
	if hotels[0].NearestUser != nil {
		t.Fatal("input hotel was modified")
	}
}
