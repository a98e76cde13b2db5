// domain/verification.go
package domain

import (
	"context"
	"mime/multipart"
)

type VerificationSubmission struct {
	UserID               string
	MedicalLicenseNumber string
	IDDocumentFrontPath  string
	IDDocumentBackPath   string
}

type VerificationUseCase interface {
	Submit(ctx context.Context, in VerificationSubmission) error
	Resubmit(ctx context.Context, in VerificationSubmission) error
	Approve(ctx context.Context, userID, adminID, notes string) error
	Reject(ctx context.Context, userID, adminID, notes string) error
	PendingVerifications(ctx context.Context) ([]PendingVerification, error)
}

// DocumentStore accepts an uploaded file and returns an opaque retrievable
// reference to it. Implementations enforce the image allow-list and size cap.
type DocumentStore interface {
	Save(ctx context.Context, file *multipart.FileHeader) (string, error)
}
