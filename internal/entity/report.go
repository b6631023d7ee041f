package entity

import "time"

type ReportTarget string

const (
	ReportTargetPost    ReportTarget = "post"
	ReportTargetComment ReportTarget = "comment"
	ReportTargetAlert   ReportTarget = "alert"
	ReportTargetUser    ReportTarget = "user"
	ReportTargetListing ReportTarget = "listing"
)

func (t ReportTarget) IsValid() bool {
	switch t {
	case ReportTargetPost, ReportTargetComment, ReportTargetAlert, ReportTargetUser, ReportTargetListing:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportReviewed  ReportStatus = "reviewed"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportPending, ReportReviewed, ReportResolved, ReportDismissed:
		return true
	}
	return false
}

// CanTransitionTo reports whether moderation may move a report from s to next.
// Resolved and dismissed are terminal.
func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	switch s {
	case ReportPending:
		return next == ReportReviewed || next == ReportResolved || next == ReportDismissed
	case ReportReviewed:
		return next == ReportResolved || next == ReportDismissed
	}
	return false
}

type Report struct {
	ID          string       `json:"id"`
	ReporterID  string       `json:"reporterId"`
	TargetType  ReportTarget `json:"targetType"`
	TargetID    string       `json:"targetId"`
	Reason      string       `json:"reason"`
	Description string       `json:"description,omitempty"`
	Status      ReportStatus `json:"status"`
	ReviewedBy  string       `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time   `json:"reviewedAt,omitempty"`
	AdminNotes  string       `json:"adminNotes,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
