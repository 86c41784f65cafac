package review

import (
	"math"
	"time"
)

type Review struct {
	ID        int       `json:"id"`
	ProductID int       `json:"productId"`
	UserID    int       `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is the aggregate shown on the product card.
type Stats struct {
	Mean  float64
	Count int
}

// roundedMean returns the mean with one decimal place.
func (s Stats) roundedMean() float64 {
	return math.Round(s.Mean*10) / 10
}
