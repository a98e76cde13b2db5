package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"medigate/domain"

	"gorm.io/gorm"
)

// fakeUserRepo is an in-memory stand-in for the Postgres user repository. It
// mirrors the real repository's behavior closely enough for state-machine
// tests: unique email/phone, field-map updates, guarded status writes.
type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.nextID++
		if u.ID == "" {
			u.ID = fmt.Sprintf("user-%d", r.nextID)
		}
		if u.CreatedAt.IsZero() {
			u.CreatedAt = time.Now()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
		if existing.PhoneNumber == user.PhoneNumber {
			return domain.ErrPhoneTaken
		}
	}

	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByPhone(ctx context.Context, phone string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	applyFields(u, fields)
	return nil
}

func (r *fakeUserRepo) UpdateUserStatusIf(ctx context.Context, id string, expect domain.AccountStatus, fields map[string]any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.AccountStatus != expect {
		return false, nil
	}
	applyFields(u, fields)
	return true, nil
}

func (r *fakeUserRepo) GetPendingVerifications(ctx context.Context) ([]domain.PendingVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []domain.PendingVerification
	for _, u := range r.users {
		if u.AccountStatus != domain.StatusPendingVerification || u.MedicalLicenseNumber == nil {
			continue
		}
		pending = append(pending, domain.PendingVerification{
			ID:                   u.ID,
			FullName:             u.FullName,
			Email:                u.Email,
			PhoneNumber:          u.PhoneNumber,
			MedicalLicenseNumber: u.MedicalLicenseNumber,
			IDDocumentFrontPath:  u.IDDocumentFrontPath,
			IDDocumentBackPath:   u.IDDocumentBackPath,
			CreatedAt:            u.CreatedAt,
		})
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func applyFields(u *domain.User, fields map[string]any) {
	for key, val := range fields {
		switch key {
		case "password":
			u.Password = val.(string)
		case "account_status":
			u.AccountStatus = val.(domain.AccountStatus)
		case "has_submitted_verification":
			u.HasSubmittedVerification = val.(bool)
		case "medical_license_number":
			u.MedicalLicenseNumber = optString(val)
		case "id_document_front_path":
			u.IDDocumentFrontPath = optString(val)
		case "id_document_back_path":
			u.IDDocumentBackPath = optString(val)
		case "verification_notes":
			u.VerificationNotes = optString(val)
		case "verified_at":
			if val == nil {
				u.VerifiedAt = nil
			} else {
				t := val.(time.Time)
				u.VerifiedAt = &t
			}
		case "verified_by":
			u.VerifiedBy = optString(val)
		}
	}
}

func optString(val any) *string {
	if val == nil {
		return nil
	}
	s := val.(string)
	return &s
}

type fakeOTPRepo struct {
	mu     sync.Mutex
	otps   []*domain.OTP
	nextID uint
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{}
}

func (r *fakeOTPRepo) ReplaceActiveOTP(ctx context.Context, userID, code string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otp := range r.otps {
		if otp.UserID == userID && !otp.Used {
			otp.Used = true
		}
	}
	r.nextID++
	r.otps = append(r.otps, &domain.OTP{
		ID:        r.nextID,
		Code:      code,
		UserID:    userID,
		ExpiresAt: expiresAt,
	})
	return nil
}

func (r *fakeOTPRepo) ConsumeOTP(ctx context.Context, userID, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otp := range r.otps {
		if otp.UserID == userID && otp.Code == code && !otp.Used && otp.ExpiresAt.After(time.Now()) {
			otp.Used = true
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOTPRepo) InvalidateAllOTPs(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, otp := range r.otps {
		if otp.UserID == userID {
			otp.Used = true
		}
	}
	return nil
}

func (r *fakeOTPRepo) activeCodes(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var codes []string
	for _, otp := range r.otps {
		if otp.UserID == userID && !otp.Used && otp.ExpiresAt.After(time.Now()) {
			codes = append(codes, otp.Code)
		}
	}
	return codes
}

type sentOTP struct {
	to   string
	code string
}

type sentOutcome struct {
	to       string
	approved bool
	fullName string
	reason   string
}

type fakeNotifier struct {
	mu       sync.Mutex
	fail     bool
	otps     []sentOTP
	outcomes []sentOutcome
}

func (n *fakeNotifier) SendOTPEmail(to, code string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return false
	}
	n.otps = append(n.otps, sentOTP{to: to, code: code})
	return true
}

func (n *fakeNotifier) SendVerificationOutcome(to string, approved bool, fullName, reason string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return false
	}
	n.outcomes = append(n.outcomes, sentOutcome{to: to, approved: approved, fullName: fullName, reason: reason})
	return true
}

func (n *fakeNotifier) sentOTPs() []sentOTP {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentOTP(nil), n.otps...)
}

func (n *fakeNotifier) sentOutcomes() []sentOutcome {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentOutcome(nil), n.outcomes...)
}
