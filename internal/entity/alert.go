package entity

import "time"

type AlertType string

const (
	AlertTypeLost      AlertType = "lost"
	AlertTypeFound     AlertType = "found"
	AlertTypeFoster    AlertType = "foster"
	AlertTypeEmergency AlertType = "emergency"
	AlertTypeAdoption  AlertType = "adoption"
	AlertTypeGeneral   AlertType = "general"
)

func (t AlertType) IsValid() bool {
	switch t {
	case AlertTypeLost, AlertTypeFound, AlertTypeFoster, AlertTypeEmergency, AlertTypeAdoption, AlertTypeGeneral:
		return true
	}
	return false
}

type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

func (u Urgency) IsValid() bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

type AlertStatus string

const (
	AlertStatusActive   AlertStatus = "active"
	AlertStatusResolved AlertStatus = "resolved"
	AlertStatusExpired  AlertStatus = "expired"
)

func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusActive, AlertStatusResolved, AlertStatusExpired:
		return true
	}
	return false
}

type Audience string

const (
	AudienceAll    Audience = "all"
	AudienceUsers  Audience = "users"
	AudienceVets   Audience = "vets"
	AudienceAdmins Audience = "admins"
)

func (a Audience) IsValid() bool {
	switch a {
	case AudienceAll, AudienceUsers, AudienceVets, AudienceAdmins:
		return true
	}
	return false
}

const (
	DefaultAlertRadiusKm = 10.0
	DefaultAlertLifetime = 7 * 24 * time.Hour
)

// AlertArea is the area an alert covers, RadiusKm around Point.
type AlertArea struct {
	Point    Location `json:"point"`
	City     string   `json:"city"`
	State    string   `json:"state"`
	RadiusKm float64  `json:"radius"`
}

type Alert struct {
	ID             string      `json:"id"`
	Type           AlertType   `json:"type"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Urgency        Urgency     `json:"urgency"`
	Status         AlertStatus `json:"status"`
	TargetAudience Audience    `json:"targetAudience"`
	Location       AlertArea   `json:"location"`
	PetDetails     *PetDetails `json:"petDetails,omitempty"`
	ContactInfo    ContactInfo `json:"contactInfo"`
	Images         []string    `json:"images"`
	CreatedBy      string      `json:"createdBy"`
	ExpiresAt      time.Time   `json:"expiresAt"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ApplyDefaults fills urgency, audience, status, radius and expiry.
func (a *Alert) ApplyDefaults(now time.Time) {
	if a.Urgency == "" {
		a.Urgency = UrgencyMedium
	}
	if a.TargetAudience == "" {
		a.TargetAudience = AudienceAll
	}
	if a.Status == "" {
		a.Status = AlertStatusActive
	}
	if a.Location.RadiusKm <= 0 {
		a.Location.RadiusKm = DefaultAlertRadiusKm
	}
	if a.Location.Point.Type == "" {
		a.Location.Point.Type = "Point"
	}
	if a.ExpiresAt.IsZero() {
		a.ExpiresAt = now.Add(DefaultAlertLifetime)
	}
}
