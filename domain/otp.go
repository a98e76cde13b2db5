// domain/otp.go
package domain

import (
	"context"
	"time"
)

type OTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	UserID    string    `gorm:"type:uuid;index;not null" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"not null;default:false" json:"used"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type OTPRepository interface {
	// ReplaceActiveOTP marks every unused code for the user as used and
	// inserts the new one, in a single transaction. At most one code is
	// actionable per user at any time.
	ReplaceActiveOTP(ctx context.Context, userID, code string, expiresAt time.Time) error
	// ConsumeOTP marks a matching unused, unexpired code as used. It reports
	// false when no such code exists; a consumed code never matches again.
	ConsumeOTP(ctx context.Context, userID, code string) (bool, error)
	// InvalidateAllOTPs marks every code for the user as used, including ones
	// already consumed or expired.
	InvalidateAllOTPs(ctx context.Context, userID string) error
}
