package user

import (
	"time"

	"github.com/wichananm65/mill-store-backend/internal/address"
)

type User struct {
	ID        int               `json:"id"`
	Name      string            `json:"name"`
	Mobile    string            `json:"mobile"`
	Avatar    *string           `json:"avatar"`
	Coins     int               `json:"coins"`
	Addresses []address.Address `json:"addresses"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
