package utils

import (
	"crypto/rand"
)

const OTPLength = 6

// GenerateOTP returns a random numeric one-time passcode.
func GenerateOTP() (string, error) {
	const digits = "0123456789"
	bytes := make([]byte, OTPLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	otp := make([]byte, OTPLength)
	for i, b := range bytes {
		otp[i] = digits[int(b)%len(digits)]
	}
	return string(otp), nil
}
