package entity

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Application is a user's request to adopt or foster a listed pet.
type Application struct {
	ID          string            `json:"id"`
	ApplicantID string            `json:"applicantId"`
	Message     string            `json:"message,omitempty"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"appliedAt"`
}

// Compatibility flags shared by adoption and foster listings.
type Compatibility struct {
	IsVaccinated   bool `json:"isVaccinated"`
	IsNeutered     bool `json:"isNeutered"`
	IsHouseTrained bool `json:"isHouseTrained"`
	GoodWithKids   bool `json:"goodWithKids"`
	GoodWithPets   bool `json:"goodWithPets"`
}

type AdoptionStatus string

const (
	AdoptionAvailable AdoptionStatus = "available"
	AdoptionPending   AdoptionStatus = "pending"
	AdoptionAdopted   AdoptionStatus = "adopted"
)

func (s AdoptionStatus) IsValid() bool {
	switch s {
	case AdoptionAvailable, AdoptionPending, AdoptionAdopted:
		return true
	}
	return false
}

type AdoptionListing struct {
	ID            string         `json:"id"`
	Pet           PetDetails     `json:"pet"`
	Description   string         `json:"description"`
	Images        []string       `json:"images"`
	Location      Location       `json:"location"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	AdoptionFee   float64        `json:"adoptionFee"`
	Requirements  []string       `json:"requirements"`
	Compatibility Compatibility  `json:"compatibility"`
	HealthNotes   string         `json:"healthNotes,omitempty"`
	ContactInfo   ContactInfo    `json:"contactInfo"`
	Status        AdoptionStatus `json:"status"`
	PostedBy      string         `json:"postedBy"`
	Applications  []Application  `json:"applications"`
	AdoptedBy     string         `json:"adoptedBy,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (l *AdoptionListing) HasApplied(userID string) bool {
	return hasApplied(l.Applications, userID)
}

type FosterDuration string

const (
	FosterShortTerm FosterDuration = "short-term"
	FosterLongTerm  FosterDuration = "long-term"
	FosterEmergency FosterDuration = "emergency"
)

func (d FosterDuration) IsValid() bool {
	switch d {
	case FosterShortTerm, FosterLongTerm, FosterEmergency:
		return true
	}
	return false
}

type FosterStatus string

const (
	FosterAvailable FosterStatus = "available"
	FosterFostered  FosterStatus = "fostered"
	FosterCompleted FosterStatus = "completed"
)

func (s FosterStatus) IsValid() bool {
	switch s {
	case FosterAvailable, FosterFostered, FosterCompleted:
		return true
	}
	return false
}

type FosterParent struct {
	UserID     string    `json:"userId"`
	AssignedAt time.Time `json:"assignedAt"`
	Notes      string    `json:"notes,omitempty"`
}

type FosterListing struct {
	ID            string         `json:"id"`
	Pet           PetDetails     `json:"pet"`
	Description   string         `json:"description"`
	Images        []string       `json:"images"`
	Location      Location       `json:"location"`
	City          string         `json:"city"`
	State         string         `json:"state"`
	Duration      FosterDuration `json:"duration"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       *time.Time     `json:"endDate,omitempty"`
	Requirements  []string       `json:"requirements"`
	SpecialNeeds  string         `json:"specialNeeds,omitempty"`
	Compatibility Compatibility  `json:"compatibility"`
	ContactInfo   ContactInfo    `json:"contactInfo"`
	Status        FosterStatus   `json:"status"`
	PostedBy      string         `json:"postedBy"`
	FosterParent  *FosterParent  `json:"fosterParent,omitempty"`
	Applications  []Application  `json:"applications"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

func (l *FosterListing) HasApplied(userID string) bool {
	return hasApplied(l.Applications, userID)
}

func hasApplied(apps []Application, userID string) bool {
	for _, a := range apps {
		if a.ApplicantID == userID {
			return true
		}
	}
	return false
}
