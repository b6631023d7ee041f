package entity

import "time"

const (
	MinRating = 1
	MaxRating = 5
	// PublicTestimonialLimit caps the public approved list.
	PublicTestimonialLimit = 6
)

// Testimonial is a user's site-wide review. Each user holds at most one.
type Testimonial struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	Content    string    `json:"content"`
	Rating     int       `json:"rating"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func ValidRating(r int) bool { return r >= MinRating && r <= MaxRating }
