package address

import (
	"strings"
	"time"
)

const DefaultCountry = "India"

type Address struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	ZipCode   string    `json:"zipCode"`
	Country   string    `json:"country"`
	IsDefault bool      `json:"isDefault"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the client-supplied part of an address, also embedded by signup
// and booking payloads as "manualAddress".
type Input struct {
	Street    string `json:"street"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// Envelope mirrors the {mode, manualAddress} wrapper the client sends.
type Envelope struct {
	Mode          string `json:"mode"`
	ManualAddress *Input `json:"manualAddress"`
}

// Normalize trims every field and fills in the default country.
func (in Input) Normalize() Input {
	in.Street = strings.TrimSpace(in.Street)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
	in.Country = strings.TrimSpace(in.Country)
	if in.Country == "" {
		in.Country = DefaultCountry
	}
	return in
}

func (in Input) Validate() error {
	if in.Street == "" || in.City == "" || in.State == "" || in.ZipCode == "" {
		return ErrIncomplete
	}
	return nil
}

func (in Input) toAddress(userID int) Address {
	return Address{
		UserID:    userID,
		Street:    in.Street,
		City:      in.City,
		State:     in.State,
		ZipCode:   in.ZipCode,
		Country:   in.Country,
		IsDefault: in.IsDefault,
	}
}
