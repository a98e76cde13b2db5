package domain

import "errors"

// Business-rule failures carry fixed user-facing text. Only errors on this
// list may reach a client verbatim; everything else is logged server-side and
// replaced with an operation-specific fallback at the delivery boundary.
var (
	ErrEmailTaken         = errors.New("Email already registered")
	ErrPhoneTaken         = errors.New("Phone number already registered")
	ErrInvalidRole        = errors.New("Invalid role")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrAccountSuspended   = errors.New("Account suspended")
	ErrInvalidOTP         = errors.New("Invalid OTP")
	ErrExpiredOTP         = errors.New("Invalid or expired OTP")
	ErrInvalidResetToken  = errors.New("Invalid or expired reset token")

	ErrUserNotFound = errors.New("User not found")
	ErrNotEligible  = errors.New("Account not eligible for verification")
	ErrNotRejected  = errors.New("Only rejected accounts can resubmit verification")
	ErrNotPending   = errors.New("User is not pending verification")
	ErrNotAdmin     = errors.New("Insufficient permissions")

	ErrDocumentType     = errors.New("Invalid file type. Only JPEG, PNG, and WebP images are allowed.")
	ErrDocumentTooLarge = errors.New("File too large. Maximum size is 5MB.")
)

var safeErrors = []error{
	ErrEmailTaken, ErrPhoneTaken, ErrInvalidRole,
	ErrInvalidCredentials, ErrAccountSuspended,
	ErrInvalidOTP, ErrExpiredOTP, ErrInvalidResetToken,
	ErrUserNotFound, ErrNotEligible, ErrNotRejected, ErrNotPending, ErrNotAdmin,
	ErrDocumentType, ErrDocumentTooLarge,
}

// IsSafe reports whether err carries a pre-approved user-facing message.
func IsSafe(err error) bool {
	for _, safe := range safeErrors {
		if errors.Is(err, safe) {
			return true
		}
	}
	return false
}
