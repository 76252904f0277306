package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailNotVerified   = errors.New("email address not verified")
)

// Registration errors
var (
	ErrMissingField = errors.New("required registration field is missing")
	ErrInvalidRole  = errors.New("role is not one of patient, nurse, admin")
)

// Verification errors
var (
	ErrVerificationExpired     = errors.New("verification token has expired")
	ErrVerificationInvalid     = errors.New("invalid verification token")
	ErrVerificationNotFound    = errors.New("verification token not found")
	ErrVerificationResendLimit = errors.New("verification resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
	ErrResourceNotFound = errors.New("resource not found")
)

// Profile and role lookup errors
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrRoleNotFound    = errors.New("role assignment not found")
)

// Care and medication errors
var (
	ErrMedicineNotFound     = errors.New("medicine not found")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrPrescriptionInactive = errors.New("prescription is no longer active")
	ErrNotPrescribedToUser  = errors.New("prescription does not belong to this patient")
	ErrPatientNotAssigned   = errors.New("patient is not assigned to this nurse")
	ErrInvalidIntakeStatus  = errors.New("intake status must be taken or skipped")
)
