package delivery

import (
	"medigate/domain"

	"github.com/rs/zerolog/log"
)

// Operation-specific fallback text for anything off the safe-message list.
// Raw internal error text never reaches a client.
var fallbackMessages = map[string]string{
	"register":                "Registration failed. Please try again.",
	"login":                   "Login failed. Please try again.",
	"forgotPassword":          "Request failed. Please try again.",
	"verifyOtp":               "OTP verification failed. Please try again.",
	"resetPassword":           "Password reset failed. Please try again.",
	"submitVerification":      "Verification submission failed. Please try again.",
	"resubmitVerification":    "Verification resubmission failed. Please try again.",
	"approveVerification":     "Verification approval failed. Please try again.",
	"rejectVerification":      "Verification rejection failed. Please try again.",
	"getPendingVerifications": "Could not retrieve pending verifications. Please try again.",
}

func sanitizeError(err error, operation string) string {
	if domain.IsSafe(err) {
		return err.Error()
	}

	log.Error().Err(err).Str("operation", operation).Msg("internal error")

	if msg, ok := fallbackMessages[operation]; ok {
		return msg
	}
	return "Request failed. Please try again."
}
