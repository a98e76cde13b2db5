package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleMed   Role = "MED"
	RoleAdmin Role = "ADMIN"
)

type AccountStatus string

const (
	StatusActive              AccountStatus = "ACTIVE"
	StatusPendingVerification AccountStatus = "PENDING_VERIFICATION"
	StatusRejected            AccountStatus = "REJECTED"
	StatusSuspended           AccountStatus = "SUSPENDED"
)

type User struct {
	ID                       string        `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	FullName                 string        `gorm:"not null" json:"full_name"`
	Email                    string        `gorm:"uniqueIndex;not null" json:"email"`
	PhoneNumber              string        `gorm:"uniqueIndex;not null" json:"phone_number"` // E.164
	Password                 string        `gorm:"not null" json:"-"`
	Role                     Role          `gorm:"not null;default:USER" json:"role"`
	AccountStatus            AccountStatus `gorm:"not null;default:ACTIVE" json:"account_status"`
	HasSubmittedVerification bool          `gorm:"not null;default:false" json:"has_submitted_verification"`
	MedicalLicenseNumber     *string       `json:"medical_license_number,omitempty"`
	IDDocumentFrontPath      *string       `json:"id_document_front_path,omitempty"`
	IDDocumentBackPath       *string       `json:"id_document_back_path,omitempty"`
	VerificationNotes        *string       `json:"verification_notes,omitempty"`
	VerifiedAt               *time.Time    `json:"verified_at,omitempty"`
	VerifiedBy               *string       `gorm:"type:uuid" json:"verified_by,omitempty"`
	CreatedAt                time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt                time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// PublicUser is the projection returned to clients. The password hash never
// leaves the domain layer.
type PublicUser struct {
	ID            string        `json:"id"`
	FullName      string        `json:"full_name"`
	Email         string        `json:"email"`
	PhoneNumber   string        `json:"phone_number"`
	Role          Role          `json:"role"`
	AccountStatus AccountStatus `json:"account_status"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		PhoneNumber:   u.PhoneNumber,
		Role:          u.Role,
		AccountStatus: u.AccountStatus,
	}
}

// PendingVerification is the restricted projection of users awaiting admin
// review.
type PendingVerification struct {
	ID                   string    `json:"id"`
	FullName             string    `json:"full_name"`
	Email                string    `json:"email"`
	PhoneNumber          string    `json:"phone_number"`
	MedicalLicenseNumber *string   `json:"medical_license_number"`
	IDDocumentFrontPath  *string   `json:"id_document_front_path"`
	IDDocumentBackPath   *string   `json:"id_document_back_path"`
	CreatedAt            time.Time `json:"created_at"`
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByPhone(ctx context.Context, phone string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUser(ctx context.Context, id string, fields map[string]any) error
	// UpdateUserStatusIf applies fields only while account_status still equals
	// expect. It reports whether the guarded write landed, so concurrent
	// status transitions cannot clobber each other.
	UpdateUserStatusIf(ctx context.Context, id string, expect AccountStatus, fields map[string]any) (bool, error)
	// GetPendingVerifications returns PENDING_VERIFICATION users that have a
	// license number on file, oldest created first.
	GetPendingVerifications(ctx context.Context) ([]PendingVerification, error)
}
