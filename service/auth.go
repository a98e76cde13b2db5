package service

import (
	"context"
	"time"

	"medigate/domain"
	"medigate/utils"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const otpTTL = 10 * time.Minute

type authService struct {
	userRepo domain.UserRepository
	otpRepo  domain.OTPRepository
	notifier domain.Notifier
	codec    *utils.TokenCodec
}

func NewAuthService(userRepo domain.UserRepository, otpRepo domain.OTPRepository, notifier domain.Notifier, secret string) domain.AuthUseCase {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		notifier: notifier,
		codec:    utils.NewTokenCodec(secret),
	}
}

func (s *authService) Register(ctx context.Context, in domain.RegisterInput) (*domain.PublicUser, error) {
	if _, err := s.userRepo.GetUserByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrEmailTaken
	}
	if _, err := s.userRepo.GetUserByPhone(ctx, in.PhoneNumber); err == nil {
		return nil, domain.ErrPhoneTaken
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	// ADMIN accounts are only ever seeded, never self-registered.
	if role != domain.RoleUser && role != domain.RoleMed {
		return nil, domain.ErrInvalidRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	status := domain.StatusActive
	if role == domain.RoleMed {
		status = domain.StatusPendingVerification
	}

	user := &domain.User{
		FullName:      in.FullName,
		Email:         in.Email,
		PhoneNumber:   in.PhoneNumber,
		Password:      string(hashed),
		Role:          role,
		AccountStatus: status,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	pub := user.Public()
	return &pub, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		// Indistinguishable from a wrong password, to prevent enumeration.
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// PENDING_VERIFICATION and REJECTED users may log in; clients branch on
	// the returned account status. Only SUSPENDED is blocked.
	if user.AccountStatus == domain.StatusSuspended {
		return nil, domain.ErrAccountSuspended
	}

	token, err := s.codec.IssueSessionToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResult{
		Token: token,
		User:  user.Public(),
	}, nil
}

// ForgotPassword issues a fresh OTP for a registered email and swallows every
// failure: the caller observes the same outcome whether or not the account
// exists or the mail went out.
func (s *authService) ForgotPassword(ctx context.Context, email string) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		log.Error().Err(err).Msg("failed to generate OTP")
		return
	}

	if err := s.otpRepo.ReplaceActiveOTP(ctx, user.ID, code, time.Now().Add(otpTTL)); err != nil {
		log.Error().Err(err).Msg("failed to store OTP")
		return
	}

	if !s.notifier.SendOTPEmail(user.Email, code) {
		log.Warn().Str("user", user.ID).Msg("OTP email not delivered")
	}
}

func (s *authService) VerifyOTP(ctx context.Context, email, code string) (string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return "", domain.ErrInvalidOTP
	}

	matched, err := s.otpRepo.ConsumeOTP(ctx, user.ID, code)
	if err != nil {
		return "", err
	}
	if !matched {
		return "", domain.ErrExpiredOTP
	}

	return s.codec.IssueResetToken(user.ID)
}

func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	payload, ok := s.codec.Validate(resetToken)
	if !ok || payload.Purpose != utils.ResetPurpose {
		return domain.ErrInvalidResetToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.userRepo.UpdateUser(ctx, payload.UserID, map[string]any{
		"password": string(hashed),
	}); err != nil {
		return err
	}

	// Every outstanding code for the user dies with the old password, not
	// just the one consumed by VerifyOTP.
	if err := s.otpRepo.InvalidateAllOTPs(ctx, payload.UserID); err != nil {
		log.Error().Err(err).Str("user", payload.UserID).Msg("failed to invalidate OTPs after reset")
	}

	return nil
}

func (s *authService) Tokens() *utils.TokenCodec {
	return s.codec
}
