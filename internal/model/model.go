package model

import "time"

type Participant struct {
	ID            string
	Email         string
	PasswordHash  string
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Team struct {
	ID              string
	Name            string
	LeaderID        string
	LeaderName      string
	LeaderEmail     string
	AcademicYear    string
	TopicName       string
	Members         []string
	SubmissionLinks []string
	Score           *int
	Notification    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type AdminAccount struct {
	ID           string
	PasswordHash string
	Role         string
	Permissions  []string
	CreatedAt    time.Time
}

// AdminSession is the server-side record backing an admin token. The token
// itself carries the expiry claim; the row exists so logout can revoke it.
type AdminSession struct {
	ID        string
	AdminID   string
	TokenHash string
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type FAQStatus string

const (
	FAQPending  FAQStatus = "pending"
	FAQApproved FAQStatus = "approved"
	FAQRejected FAQStatus = "rejected"
)

type FAQItem struct {
	ID              string
	Question        string
	Answer          *string
	Status          FAQStatus
	RejectionReason *string
	AuthorID        *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ScheduleEntry struct {
	ID       string
	Position int
	Title    string
	Detail   string
	StartsAt time.Time
	EndsAt   *time.Time
}
