package domain

import "context"

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	MarkEmailVerified(ctx context.Context, userID string) error
}

// ProfileRepository defines profile data access operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	FindByUserID(ctx context.Context, userID string) (*Profile, error)
	Update(ctx context.Context, profile *Profile) error
	ListWithRoles(ctx context.Context) ([]UserAccount, error)
}

// RoleRepository defines role-assignment data access operations.
// Each user has at most one assignment; FindByUserID returns
// ErrRoleNotFound when none exists.
type RoleRepository interface {
	Assign(ctx context.Context, assignment *RoleAssignment) error
	FindByUserID(ctx context.Context, userID string) (Role, error)
	CountByRole(ctx context.Context, role Role) (int64, error)
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteExpired(ctx context.Context) error
}

// MedicineRepository defines medicine catalog access
type MedicineRepository interface {
	Create(ctx context.Context, medicine *Medicine) error
	FindByID(ctx context.Context, id string) (*Medicine, error)
	List(ctx context.Context) ([]Medicine, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// PrescriptionRepository defines prescription data access
type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *Prescription) error
	FindByID(ctx context.Context, id string) (*Prescription, error)
	ListActiveByPatient(ctx context.Context, patientID string) ([]Prescription, error)
	CountActiveByPatient(ctx context.Context, patientID string) (int64, error)
	Deactivate(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

// MedicationLogRepository defines intake log data access
type MedicationLogRepository interface {
	Create(ctx context.Context, log *MedicationLog) error
	ListRecentByPatient(ctx context.Context, patientID string, limit int) ([]MedicationLog, error)
	CountByPatientSince(ctx context.Context, patientID string, days int) (int64, error)
}

// NursePatientRepository defines care assignment data access
type NursePatientRepository interface {
	Assign(ctx context.Context, assignment *NursePatient) error
	Unassign(ctx context.Context, nurseID, patientID string) error
	IsAssigned(ctx context.Context, nurseID, patientID string) (bool, error)
	ListPatients(ctx context.Context, nurseID string) ([]Profile, error)
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, reg Registration) (*User, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetAccount(ctx context.Context, userID string) (*UserAccount, error)
}

// VerificationService defines email verification operations
type VerificationService interface {
	Generate(ctx context.Context, email, userID string) (*VerificationRequest, error)
	Verify(ctx context.Context, token string) (string, error)
	CanResend(ctx context.Context, email string) (bool, int64, error)
}

// MedicationService defines the patient-facing adherence operations
type MedicationService interface {
	ActivePrescriptions(ctx context.Context, patientID string) ([]Prescription, error)
	RecentLogs(ctx context.Context, patientID string, limit int) ([]MedicationLog, error)
	LogIntake(ctx context.Context, patientID, prescriptionID string, status IntakeStatus) (*MedicationLog, error)
}

// CareService defines the nurse-facing care operations
type CareService interface {
	Patients(ctx context.Context, nurseID string) ([]PatientSummary, error)
	PatientPrescriptions(ctx context.Context, nurseID, patientID string) ([]Prescription, error)
	Prescribe(ctx context.Context, nurseID string, prescription *Prescription) error
	DeactivatePrescription(ctx context.Context, nurseID, prescriptionID string) error
	AssignPatient(ctx context.Context, nurseID, patientID string) error
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines token operations
type TokenService interface {
	GenerateAccessToken(userID string, role Role, sessionID string) (string, error)
	GenerateRefreshToken(userID string, role Role, sessionID string) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService defines outbound notification operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// TokenClaims represents JWT token claims
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      Role   `json:"role"`
	SessionID string `json:"session_id,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
