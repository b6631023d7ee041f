package entity

import "time"

type Permissions struct {
	CanPost         bool `json:"canPost"`
	CanComment      bool `json:"canComment"`
	CanCreateAlerts bool `json:"canCreateAlerts"`
}

func DefaultPermissions() Permissions {
	return Permissions{CanPost: true, CanComment: true, CanCreateAlerts: true}
}

type VetInfo struct {
	LicenseNumber  string `json:"licenseNumber,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	ClinicName     string `json:"clinicName,omitempty"`
}

type User struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Password     string      `json:"-"`
	Role         Role        `json:"role"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	Bio          string      `json:"bio,omitempty"`
	ProfileImage string      `json:"profileImage,omitempty"`
	VetInfo      *VetInfo    `json:"vetInfo,omitempty"`
	Permissions  Permissions `json:"permissions"`
	IsActive     bool        `json:"isActive"`

	IsBlocked   bool       `json:"isBlocked"`
	BlockedBy   string     `json:"blockedBy,omitempty"`
	BlockedAt   *time.Time `json:"blockedAt,omitempty"`
	BlockReason string     `json:"blockReason,omitempty"`

	IsEmailVerified          bool       `json:"isEmailVerified"`
	EmailVerificationToken   string     `json:"-"`
	EmailVerificationExpires *time.Time `json:"-"`
	PasswordResetToken       string     `json:"-"`
	PasswordResetExpires     *time.Time `json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
func (u *User) IsVet() bool   { return u.Role == RoleVet }

// Block records the moderation decision on the user.
func (u *User) Block(by, reason string, at time.Time) {
	u.IsBlocked = true
	u.BlockedBy = by
	u.BlockedAt = &at
	u.BlockReason = reason
}

// Unblock clears every block field.
func (u *User) Unblock() {
	u.IsBlocked = false
	u.BlockedBy = ""
	u.BlockedAt = nil
	u.BlockReason = ""
}

type UserStats struct {
	Total        int64          `json:"total"`
	Active       int64          `json:"active"`
	Blocked      int64          `json:"blocked"`
	NewThisMonth int64          `json:"newThisMonth"`
	ByRole       map[Role]int64 `json:"byRole"`
}

// DashboardStats is the admin overview.
type DashboardStats struct {
	Users               UserStats            `json:"users"`
	Posts               map[PostStatus]int64 `json:"posts"`
	PendingReports      int64                `json:"pendingReports"`
	PendingTestimonials int64                `json:"pendingTestimonials"`
}

// StartOfMonth returns midnight UTC on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
