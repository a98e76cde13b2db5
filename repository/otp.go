package repository

import (
	"context"
	"errors"
	"time"

	"medigate/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) domain.OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) ReplaceActiveOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	// Invalidate-then-insert runs in one transaction so two concurrent
	// requests cannot leave two actionable codes behind.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.OTP{}).
			Where("user_id = ? AND used = ?", userID, false).
			Update("used", true).Error; err != nil {
			return err
		}

		return tx.Create(&domain.OTP{
			Code:      code,
			UserID:    userID,
			ExpiresAt: expiresAt,
		}).Error
	})
}

func (r *otpRepository) ConsumeOTP(ctx context.Context, userID, code string) (bool, error) {
	matched := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var otp domain.OTP
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND code = ? AND used = ? AND expires_at > ?",
				userID, code, false, time.Now()).
			First(&otp).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Model(&otp).Update("used", true).Error; err != nil {
			return err
		}
		matched = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

func (r *otpRepository) InvalidateAllOTPs(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&domain.OTP{}).
		Where("user_id = ?", userID).
		Update("used", true).Error
}
