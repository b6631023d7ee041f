package entity

import (
	"math"
	"time"
)

type DayHours struct {
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
	Closed bool   `json:"closed"`
}

// Rating is stored as a running sum and count; Average is derived.
type Rating struct {
	Sum   int64 `json:"-"`
	Count int64 `json:"count"`
}

func (r Rating) Average() float64 {
	if r.Count == 0 {
		return 0
	}
	return math.Round(float64(r.Sum)/float64(r.Count)*10) / 10
}

type VetContact struct {
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

type VetDirectoryEntry struct {
	ID                   string              `json:"id"`
	VetID                string              `json:"vetId"`
	ClinicName           string              `json:"clinicName"`
	Description          string              `json:"description,omitempty"`
	Specializations      []string            `json:"specializations"`
	Services             []string            `json:"services"`
	Location             Location            `json:"location"`
	City                 string              `json:"city"`
	State                string              `json:"state"`
	ZipCode              string              `json:"zipCode,omitempty"`
	Contact              VetContact          `json:"contact"`
	OperatingHours       map[string]DayHours `json:"operatingHours,omitempty"`
	IsEmergencyAvailable bool                `json:"isEmergencyAvailable"`
	Is24Hours            bool                `json:"is24Hours"`
	Rating               Rating              `json:"rating"`
	AverageRating        float64             `json:"averageRating"`
	IsVerified           bool                `json:"isVerified"`
	IsActive             bool                `json:"isActive"`
	CreatedAt            time.Time           `json:"createdAt"`
	UpdatedAt            time.Time           `json:"updatedAt"`
}
