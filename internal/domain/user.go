package domain

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

type User struct {
	ID       int     `json:"id"`
	Name     string  `json:"name" validate:"required"`
	Username string  `json:"username"`
	Email    string  `json:"email" validate:"omitempty,email"`
	Address  Address `json:"address"`
	Phone    string  `json:"phone"`
	Website  string  `json:"website"`
	Company  Company `json:"company"`
}

type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
}

type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	Bs          string `json:"bs"`
}

// Geo is the user's position. The public directory serves lat/lng as
// strings ("-37.3159"); both strings and numbers are accepted on decode.
type Geo struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

func (g Geo) Coordinate() Coordinate {
	return Coordinate{Latitude: g.Lat, Longitude: g.Lng}
}

func (g *Geo) UnmarshalJSON(b []byte) error {
	var raw struct {
		Lat json.RawMessage `json:"lat"`
		Lng json.RawMessage `json:"lng"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	lat, err := flexFloat(raw.Lat)
	if err != nil {
		return &InvalidInputError{Field: "address.geo.lat", Reason: err.Error()}
	}
	lng, err := flexFloat(raw.Lng)
	if err != nil {
		return &InvalidInputError{Field: "address.geo.lng", Reason: err.Error()}
	}
	g.Lat, g.Lng = lat, lng
	return nil
}

// flexFloat reads a JSON number or numeric string; empty/null is 0.
func flexFloat(b json.RawMessage) (float64, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0, err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return 0, err
	}
	return f, nil
}
