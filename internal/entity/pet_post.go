package entity

import (
	"strings"
	"time"
)

type PostType string

const (
	PostTypeMissing   PostType = "missing"
	PostTypeEmergency PostType = "emergency"
	PostTypeWounded   PostType = "wounded"
)

func (t PostType) IsValid() bool {
	switch t {
	case PostTypeMissing, PostTypeEmergency, PostTypeWounded:
		return true
	}
	return false
}

type PostStatus string

const (
	PostStatusActive   PostStatus = "active"
	PostStatusResolved PostStatus = "resolved"
	PostStatusClosed   PostStatus = "closed"
)

func (s PostStatus) IsValid() bool {
	switch s {
	case PostStatusActive, PostStatusResolved, PostStatusClosed:
		return true
	}
	return false
}

// PostAction is a lifecycle action applied through PATCH /api/posts/{id}.
type PostAction string

const (
	PostActionComment PostAction = "comment"
	PostActionResolve PostAction = "resolve"
	PostActionClose   PostAction = "close"
)

type PostComment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type PetPost struct {
	ID                string        `json:"id"`
	UserID            string        `json:"userId"`
	PostType          PostType      `json:"postType"`
	Pet               PetDetails    `json:"pet"`
	Description       string        `json:"description"`
	Images            []string      `json:"images"`
	Location          Location      `json:"location"`
	City              string        `json:"city,omitempty"`
	State             string        `json:"state,omitempty"`
	ContactPhone      string        `json:"contactPhone,omitempty"`
	LastSeenDate      *time.Time    `json:"lastSeenDate,omitempty"`
	InjuryDescription string        `json:"injuryDescription,omitempty"`
	Status            PostStatus    `json:"status"`
	Comments          []PostComment `json:"comments"`
	Views             int64         `json:"views"`
	ResolvedBy        string        `json:"resolvedBy,omitempty"`
	ResolvedAt        *time.Time    `json:"resolvedAt,omitempty"`
	ClosedBy          string        `json:"closedBy,omitempty"`
	ClosedAt          *time.Time    `json:"closedAt,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}

// Validate checks the per-type required fields of a new post.
func (p *PetPost) Validate() error {
	verr := &ValidationError{Fields: map[string]string{}}
	if !p.PostType.IsValid() {
		verr.Fields["postType"] = "postType must be one of missing, emergency, wounded"
	}
	if strings.TrimSpace(p.Description) == "" {
		verr.Fields["description"] = "Description is required"
	}
	if strings.TrimSpace(p.Pet.Type) == "" {
		verr.Fields["petType"] = "Pet type is required"
	}
	switch p.PostType {
	case PostTypeMissing:
		if p.LastSeenDate == nil || p.LastSeenDate.IsZero() {
			verr.Fields["lastSeenDate"] = "Last seen date is required for missing pets"
		}
	case PostTypeWounded:
		if strings.TrimSpace(p.InjuryDescription) == "" {
			verr.Fields["injuryDescription"] = "Injury description is required for wounded pets"
		}
	case PostTypeEmergency:
		if strings.TrimSpace(p.ContactPhone) == "" {
			verr.Fields["contactPhone"] = "Contact phone is required for emergencies"
		}
	}
	if err := p.Location.Validate(); err != nil {
		verr.Fields["location"] = err.Error()
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (p *PetPost) IsActive() bool { return p.Status == PostStatusActive }
