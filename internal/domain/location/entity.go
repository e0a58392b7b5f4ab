package location

import "errors"

type LocationID string

// Location - площадка, где проходит игра
type Location struct {
	ID            LocationID
	Name          string
	Address       string
	AddressMapURL string
}

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrNameRequired     = errors.New("location name is required")
)
