package entity

import (
	"errors"
	"math"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleVet   Role = "vet"
	RoleAdmin Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleVet, RoleAdmin:
		return true
	}
	return false
}

// Location is a GeoJSON point. Coordinates are [longitude, latitude].
type Location struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
	Address     string     `json:"address,omitempty"`
}

func NewLocation(lng, lat float64, address string) Location {
	return Location{Type: "Point", Coordinates: [2]float64{lng, lat}, Address: address}
}

func (l Location) Longitude() float64 { return l.Coordinates[0] }
func (l Location) Latitude() float64  { return l.Coordinates[1] }

func (l Location) Validate() error {
	if l.Coordinates[0] < -180 || l.Coordinates[0] > 180 || l.Coordinates[1] < -90 || l.Coordinates[1] > 90 {
		return errors.New("coordinates out of range")
	}
	return nil
}

// PetDetails describes an animal on posts, alerts and listings.
type PetDetails struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type,omitempty"`
	Breed       string `json:"breed,omitempty"`
	Color       string `json:"color,omitempty"`
	Age         string `json:"age,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Size        string `json:"size,omitempty"`
	Description string `json:"description,omitempty"`
}

type ContactInfo struct {
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit well inside int64.
	MaxPage = 1_000_000
)

// PageRequest is a normalized page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

func NewPageRequest(page, limit int) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return PageRequest{Page: page, Limit: limit}
}

func (p PageRequest) Skip() int64 { return int64(p.Page-1) * int64(p.Limit) }

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

func NewPagination(p PageRequest, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return Pagination{Total: total, Page: p.Page, Limit: p.Limit, Pages: pages}
}
