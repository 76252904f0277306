package domain

import "time"

// Role is the authorization category assigned to a user at registration.
// It is a closed set; anything unrecognized parses to RoleUnknown so role
// checks never silently fall through on a new or corrupted value.
type Role string

const (
	RolePatient Role = "patient"
	RoleNurse   Role = "nurse"
	RoleAdmin   Role = "admin"
	RoleUnknown Role = "unknown"
)

// ParseRole maps a stored role string onto the closed Role set.
func ParseRole(s string) Role {
	switch Role(s) {
	case RolePatient:
		return RolePatient
	case RoleNurse:
		return RoleNurse
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUnknown
	}
}

// Known reports whether the role is one of the three assignable roles.
func (r Role) Known() bool {
	switch r {
	case RolePatient, RoleNurse, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string { return string(r) }

// User represents an authenticated account in the system
type User struct {
	ID            string
	Email         string
	PasswordHash  string `gorm:"column:password"`
	IsActive      bool
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Profile holds the display and contact attributes of a user.
// One profile per user, created at registration.
type Profile struct {
	UserID    string
	FirstName string
	LastName  string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoleAssignment binds a user to exactly one role
type RoleAssignment struct {
	UserID    string
	Role      Role
	CreatedAt time.Time
}

// Identity is the stable user reference extracted from a session
type Identity struct {
	ID    string
	Email string
}

// Session represents a server-issued proof of authentication
type Session struct {
	ID        string
	UserID    string
	Email     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Identity derives the identity carried by the session.
func (s *Session) Identity() Identity {
	return Identity{ID: s.UserID, Email: s.Email}
}

// AuthRequest represents authentication credentials
type AuthRequest struct {
	Email    string
	Password string
}

// Registration carries everything needed to open an account request.
// Phone is optional; all other fields are required.
type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
}

// AuthResult represents authentication outcome
type AuthResult struct {
	User         *User
	Role         Role
	AccessToken  string
	RefreshToken string
	SessionID    string
	ExpiresIn    int64
}

// VerificationRequest represents an email verification token in flight
type VerificationRequest struct {
	Email     string
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// Medicine is a catalog entry managed by admins
type Medicine struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Prescription binds a patient to a medicine with a dosing plan.
// NurseID records who prescribed it.
type Prescription struct {
	ID           string
	PatientID    string
	NurseID      string
	MedicineID   string
	Dosage       string
	Frequency    string
	Instructions string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Medicine is populated on reads that join the catalog.
	Medicine *Medicine
}

// IntakeStatus records what happened to a scheduled dose
type IntakeStatus string

const (
	IntakeTaken   IntakeStatus = "taken"
	IntakeSkipped IntakeStatus = "skipped"
	IntakeMissed  IntakeStatus = "missed"
)

// ParseIntakeStatus maps a status string onto the closed set.
func ParseIntakeStatus(s string) (IntakeStatus, bool) {
	switch IntakeStatus(s) {
	case IntakeTaken, IntakeSkipped, IntakeMissed:
		return IntakeStatus(s), true
	default:
		return "", false
	}
}

// MedicationLog is one recorded intake event for a prescription
type MedicationLog struct {
	ID             string
	PrescriptionID string
	PatientID      string
	Status         IntakeStatus
	TakenAt        time.Time

	// Prescription is populated on reads that join prescriptions.
	Prescription *Prescription
}

// NursePatient assigns a patient to a nurse's care list
type NursePatient struct {
	NurseID   string
	PatientID string
	CreatedAt time.Time
}

// PatientSummary is what a nurse sees on the care dashboard:
// the assigned patient's profile plus adherence counters.
type PatientSummary struct {
	Patient             Profile
	ActivePrescriptions int64
	LogsLastWeek        int64
}

// UserAccount joins a user's profile with the assigned role for admin listings
type UserAccount struct {
	User    User
	Profile Profile
	Role    Role
}

// AdminStats aggregates the counters shown on the admin dashboard
type AdminStats struct {
	TotalPatients      int64
	TotalNurses        int64
	TotalMedicines     int64
	TotalPrescriptions int64
}
