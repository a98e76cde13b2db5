// domain/auth.go
package domain

import (
	"context"

	"medigate/utils"
)

type RegisterInput struct {
	FullName    string
	Email       string // lowercased and trimmed by the caller
	PhoneNumber string // already normalized to E.164
	Password    string
	Role        Role // empty means USER
}

type LoginResult struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*PublicUser, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// ForgotPassword never reports whether the email is registered. Lookup,
	// persistence, and delivery failures are swallowed internally.
	ForgotPassword(ctx context.Context, email string)
	// VerifyOTP consumes a matching code and returns a reset token. This is
	// the only way to obtain one.
	VerifyOTP(ctx context.Context, email, code string) (string, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
	Tokens() *utils.TokenCodec
}

// Notifier is the outbound mail contract. Both sends are best-effort: a
// failure is reported as false, never as an error.
type Notifier interface {
	SendOTPEmail(to, code string) bool
	SendVerificationOutcome(to string, approved bool, fullName, reason string) bool
}
