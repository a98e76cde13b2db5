package service

import (
	"context"
	"time"

	"medigate/domain"

	"github.com/rs/zerolog/log"
)

type verificationService struct {
	userRepo domain.UserRepository
	notifier domain.Notifier
}

func NewVerificationService(userRepo domain.UserRepository, notifier domain.Notifier) domain.VerificationUseCase {
	return &verificationService{
		userRepo: userRepo,
		notifier: notifier,
	}
}

func (s *verificationService) Submit(ctx context.Context, in domain.VerificationSubmission) error {
	user, err := s.userRepo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if user.AccountStatus != domain.StatusPendingVerification {
		return domain.ErrNotEligible
	}

	// Status stays PENDING_VERIFICATION; the submission just queues the
	// account for admin review.
	return s.userRepo.UpdateUser(ctx, in.UserID, map[string]any{
		"has_submitted_verification": true,
		"medical_license_number":     in.MedicalLicenseNumber,
		"id_document_front_path":     in.IDDocumentFrontPath,
		"id_document_back_path":      in.IDDocumentBackPath,
	})
}

func (s *verificationService) Resubmit(ctx context.Context, in domain.VerificationSubmission) error {
	user, err := s.userRepo.GetUserByID(ctx, in.UserID)
	if err != nil {
		return domain.ErrUserNotFound
	}
	if user.AccountStatus != domain.StatusRejected {
		return domain.ErrNotRejected
	}

	ok, err := s.userRepo.UpdateUserStatusIf(ctx, in.UserID, domain.StatusRejected, map[string]any{
		"account_status":             domain.StatusPendingVerification,
		"has_submitted_verification": true,
		"medical_license_number":     in.MedicalLicenseNumber,
		"id_document_front_path":     in.IDDocumentFrontPath,
		"id_document_back_path":      in.IDDocumentBackPath,
		"verification_notes":         nil,
		"verified_at":                nil,
		"verified_by":                nil,
	})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotRejected
	}
	return nil
}

func (s *verificationService) Approve(ctx context.Context, userID, adminID, notes string) error {
	user, err := s.decide(ctx, userID, adminID, domain.StatusActive, notes)
	if err != nil {
		return err
	}

	if !s.notifier.SendVerificationOutcome(user.Email, true, user.FullName, "") {
		log.Warn().Str("user", user.ID).Msg("approval email not delivered")
	}
	return nil
}

func (s *verificationService) Reject(ctx context.Context, userID, adminID, notes string) error {
	user, err := s.decide(ctx, userID, adminID, domain.StatusRejected, notes)
	if err != nil {
		return err
	}

	if !s.notifier.SendVerificationOutcome(user.Email, false, user.FullName, notes) {
		log.Warn().Str("user", user.ID).Msg("rejection email not delivered")
	}
	return nil
}

// decide applies an admin's approve/reject outcome. The acting user must hold
// the ADMIN role so verified_by can only ever reference an admin, and the
// status write is guarded against a concurrent decision on the same account.
// The notification is sent by the caller after the transition has committed.
func (s *verificationService) decide(ctx context.Context, userID, adminID string, outcome domain.AccountStatus, notes string) (*domain.User, error) {
	admin, err := s.userRepo.GetUserByID(ctx, adminID)
	if err != nil || admin.Role != domain.RoleAdmin {
		return nil, domain.ErrNotAdmin
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if user.AccountStatus != domain.StatusPendingVerification {
		return nil, domain.ErrNotPending
	}

	fields := map[string]any{
		"account_status": outcome,
		"verified_at":    time.Now(),
		"verified_by":    adminID,
	}
	if notes != "" {
		fields["verification_notes"] = notes
	}

	ok, err := s.userRepo.UpdateUserStatusIf(ctx, userID, domain.StatusPendingVerification, fields)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotPending
	}
	return user, nil
}

func (s *verificationService) PendingVerifications(ctx context.Context) ([]domain.PendingVerification, error) {
	return s.userRepo.GetPendingVerifications(ctx)
}
