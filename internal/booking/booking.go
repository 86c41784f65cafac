package booking

import (
	"sort"
	"strings"
	"time"

	"github.com/wichananm65/mill-store-backend/internal/address"
)

type ServiceType string

const (
	ServiceSpices   ServiceType = "Spices"
	ServiceFlour    ServiceType = "Flour"
	ServiceGrinding ServiceType = "Grinding"
)

var serviceTypes = []ServiceType{ServiceSpices, ServiceFlour, ServiceGrinding}

// parseServiceType matches case-insensitively and returns the canonical form.
func parseServiceType(raw string) (ServiceType, bool) {
	raw = strings.TrimSpace(raw)
	for _, st := range serviceTypes {
		if strings.EqualFold(raw, string(st)) {
			return st, true
		}
	}
	return "", false
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Booking is a request for an in-store or doorstep milling service.
type Booking struct {
	ID          int         `json:"id"`
	UserID      int         `json:"userId"`
	Name        string      `json:"name"`
	Mobile      string      `json:"mobile"`
	ServiceType ServiceType `json:"serviceType"`
	Date        time.Time   `json:"date"`
	Address     Address     `json:"address"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type Input struct {
	Name        string           `json:"name"`
	Mobile      string           `json:"mobile"`
	ServiceType string           `json:"serviceType"`
	Date        *time.Time       `json:"date"`
	Address     address.Envelope `json:"address"`
}

// sortBookings puts open bookings before cancelled ones, newest date first.
func sortBookings(list []Booking) {
	sort.SliceStable(list, func(i, j int) bool {
		ci, cj := list[i].Status == StatusCancelled, list[j].Status == StatusCancelled
		if ci != cj {
			return !ci
		}
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ID > list[j].ID
	})
}
