package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"medigate/domain"
)

func submission(userID string) domain.VerificationSubmission {
	return domain.VerificationSubmission{
		UserID:               userID,
		MedicalLicenseNumber: "MD-12345",
		IDDocumentFrontPath:  "uploads/verifications/front.jpg",
		IDDocumentBackPath:   "uploads/verifications/back.jpg",
	}
}

func seedMed(id string, status domain.AccountStatus) *domain.User {
	return &domain.User{
		ID:            id,
		FullName:      "Dr. Amara Boateng",
		Email:         id + "@example.com",
		PhoneNumber:   "+233244" + id,
		Password:      "hash",
		Role:          domain.RoleMed,
		AccountStatus: status,
	}
}

func seedAdminUser(id string) *domain.User {
	return &domain.User{
		ID:            id,
		FullName:      "Admin",
		Email:         id + "@example.com",
		PhoneNumber:   "+13125550" + id,
		Password:      "hash",
		Role:          domain.RoleAdmin,
		AccountStatus: domain.StatusActive,
	}
}

func TestSubmit_RequiresPendingStatus(t *testing.T) {
	for _, status := range []domain.AccountStatus{domain.StatusActive, domain.StatusRejected, domain.StatusSuspended} {
		t.Run(string(status), func(t *testing.T) {
			userRepo := newFakeUserRepo(seedMed("med1", status))
			ver := NewVerificationService(userRepo, &fakeNotifier{})

			err := ver.Submit(context.Background(), submission("med1"))
			if !errors.Is(err, domain.ErrNotEligible) {
				t.Fatalf("err = %v, want ErrNotEligible", err)
			}
		})
	}
}

func TestSubmit_StoresDocumentsAndKeepsStatus(t *testing.T) {
	userRepo := newFakeUserRepo(seedMed("med1", domain.StatusPendingVerification))
	ver := NewVerificationService(userRepo, &fakeNotifier{})

	if err := ver.Submit(context.Background(), submission("med1")); err != nil {
		t.Fatalf("submit: %v", err)
	}

	user, _ := userRepo.GetUserByID(context.Background(), "med1")
	if user.AccountStatus != domain.StatusPendingVerification {
		t.Errorf("status = %s, want PENDING_VERIFICATION", user.AccountStatus)
	}
	if !user.HasSubmittedVerification {
		t.Error("hasSubmittedVerification not set")
	}
	if user.MedicalLicenseNumber == nil || *user.MedicalLicenseNumber != "MD-12345" {
		t.Errorf("license = %v, want MD-12345", user.MedicalLicenseNumber)
	}
	if user.IDDocumentFrontPath == nil || user.IDDocumentBackPath == nil {
		t.Error("document paths not stored")
	}
}

func TestResubmit_OnlyFromRejected(t *testing.T) {
	for _, status := range []domain.AccountStatus{domain.StatusActive, domain.StatusPendingVerification, domain.StatusSuspended} {
		t.Run(string(status), func(t *testing.T) {
			userRepo := newFakeUserRepo(seedMed("med1", status))
			ver := NewVerificationService(userRepo, &fakeNotifier{})

			err := ver.Resubmit(context.Background(), submission("med1"))
			if !errors.Is(err, domain.ErrNotRejected) {
				t.Fatalf("err = %v, want ErrNotRejected", err)
			}
		})
	}
}

func TestResubmit_ResetsStatusAndClearsDecision(t *testing.T) {
	med := seedMed("med1", domain.StatusRejected)
	notes := "blurry documents"
	decidedAt := time.Now().Add(-24 * time.Hour)
	adminID := "admin1"
	med.VerificationNotes = &notes
	med.VerifiedAt = &decidedAt
	med.VerifiedBy = &adminID

	userRepo := newFakeUserRepo(med)
	ver := NewVerificationService(userRepo, &fakeNotifier{})

	if err := ver.Resubmit(context.Background(), submission("med1")); err != nil {
		t.Fatalf("resubmit: %v", err)
	}

	user, _ := userRepo.GetUserByID(context.Background(), "med1")
	if user.AccountStatus != domain.StatusPendingVerification {
		t.Errorf("status = %s, want PENDING_VERIFICATION", user.AccountStatus)
	}
	if user.VerificationNotes != nil || user.VerifiedAt != nil || user.VerifiedBy != nil {
		t.Error("previous decision fields were not cleared")
	}
}

func TestApprove_ActivatesAndRecordsAdmin(t *testing.T) {
	med := seedMed("med1", domain.StatusPendingVerification)
	notifier := &fakeNotifier{}
	userRepo := newFakeUserRepo(med, seedAdminUser("admin1"))
	ver := NewVerificationService(userRepo, notifier)

	if err := ver.Approve(context.Background(), "med1", "admin1", "license checks out"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	user, _ := userRepo.GetUserByID(context.Background(), "med1")
	if user.AccountStatus != domain.StatusActive {
		t.Errorf("status = %s, want ACTIVE", user.AccountStatus)
	}
	if user.VerifiedBy == nil || *user.VerifiedBy != "admin1" {
		t.Errorf("verifiedBy = %v, want admin1", user.VerifiedBy)
	}
	if user.VerifiedAt == nil {
		t.Error("verifiedAt not set")
	}

	outcomes := notifier.sentOutcomes()
	if len(outcomes) != 1 || !outcomes[0].approved {
		t.Fatalf("outcomes = %+v, want one approval", outcomes)
	}
}

func TestReject_RecordsReasonAndNotifies(t *testing.T) {
	notifier := &fakeNotifier{}
	userRepo := newFakeUserRepo(seedMed("med1", domain.StatusPendingVerification), seedAdminUser("admin1"))
	ver := NewVerificationService(userRepo, notifier)

	if err := ver.Reject(context.Background(), "med1", "admin1", "license expired"); err != nil {
		t.Fatalf("reject: %v", err)
	}

	user, _ := userRepo.GetUserByID(context.Background(), "med1")
	if user.AccountStatus != domain.StatusRejected {
		t.Errorf("status = %s, want REJECTED", user.AccountStatus)
	}
	if user.VerificationNotes == nil || *user.VerificationNotes != "license expired" {
		t.Errorf("notes = %v, want reason", user.VerificationNotes)
	}

	outcomes := notifier.sentOutcomes()
	if len(outcomes) != 1 || outcomes[0].approved || outcomes[0].reason != "license expired" {
		t.Fatalf("outcomes = %+v, want one rejection with reason", outcomes)
	}
}

func TestDecisions_RequirePendingStatus(t *testing.T) {
	for _, status := range []domain.AccountStatus{domain.StatusActive, domain.StatusRejected, domain.StatusSuspended} {
		t.Run(string(status), func(t *testing.T) {
			userRepo := newFakeUserRepo(seedMed("med1", status), seedAdminUser("admin1"))
			ver := NewVerificationService(userRepo, &fakeNotifier{})

			if err := ver.Approve(context.Background(), "med1", "admin1", ""); !errors.Is(err, domain.ErrNotPending) {
				t.Errorf("approve err = %v, want ErrNotPending", err)
			}
			if err := ver.Reject(context.Background(), "med1", "admin1", "reason"); !errors.Is(err, domain.ErrNotPending) {
				t.Errorf("reject err = %v, want ErrNotPending", err)
			}
		})
	}
}

func TestDecisions_ActorMustBeAdmin(t *testing.T) {
	userRepo := newFakeUserRepo(
		seedMed("med1", domain.StatusPendingVerification),
		seedMed("med2", domain.StatusActive))
	ver := NewVerificationService(userRepo, &fakeNotifier{})

	if err := ver.Approve(context.Background(), "med1", "med2", ""); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("err = %v, want ErrNotAdmin", err)
	}

	user, _ := userRepo.GetUserByID(context.Background(), "med1")
	if user.AccountStatus != domain.StatusPendingVerification || user.VerifiedBy != nil {
		t.Fatal("non-admin decision mutated the account")
	}
}

func TestApprove_NotificationFailureDoesNotFailApproval(t *testing.T) {
	notifier := &fakeNotifier{fail: true}
	userRepo := newFakeUserRepo(seedMed("med1", domain.StatusPendingVerification), seedAdminUser("admin1"))
	ver := NewVerificationService(userRepo, notifier)

	if err := ver.Approve(context.Background(), "med1", "admin1", ""); err != nil {
		t.Fatalf("approve: %v", err)
	}

	user, _ := userRepo.GetUserByID(context.Background(), "med1")
	if user.AccountStatus != domain.StatusActive {
		t.Fatal("approval rolled back on notification failure")
	}
}

func TestPendingVerifications_FilterAndOrder(t *testing.T) {
	base := time.Now()
	withLicense := func(u *domain.User, license string, created time.Time) *domain.User {
		u.MedicalLicenseNumber = &license
		u.CreatedAt = created
		return u
	}

	userRepo := newFakeUserRepo(
		withLicense(seedMed("newest", domain.StatusPendingVerification), "MD-3", base),
		withLicense(seedMed("oldest", domain.StatusPendingVerification), "MD-1", base.Add(-2*time.Hour)),
		withLicense(seedMed("middle", domain.StatusPendingVerification), "MD-2", base.Add(-time.Hour)),
		seedMed("nolicense", domain.StatusPendingVerification),
		withLicense(seedMed("active", domain.StatusActive), "MD-4", base.Add(-3*time.Hour)),
	)
	ver := NewVerificationService(userRepo, &fakeNotifier{})

	pending, err := ver.PendingVerifications(context.Background())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}

	want := []string{"oldest", "middle", "newest"}
	if len(pending) != len(want) {
		t.Fatalf("got %d entries, want %d", len(pending), len(want))
	}
	for i, id := range want {
		if pending[i].ID != id {
			t.Errorf("pending[%d] = %s, want %s", i, pending[i].ID, id)
		}
	}
}

// Full journey: MED registration through admin approval to a working login.
func TestMedRegistrationThroughApproval(t *testing.T) {
	userRepo := newFakeUserRepo(seedAdminUser("admin1"))
	otpRepo := newFakeOTPRepo()
	notifier := &fakeNotifier{}
	auth := NewAuthService(userRepo, otpRepo, notifier, testSecret)
	ver := NewVerificationService(userRepo, notifier)

	created, err := auth.Register(context.Background(), domain.RegisterInput{
		FullName:    "Dr. Amara Boateng",
		Email:       "amara@example.com",
		PhoneNumber: "+233244123456",
		Password:    "secure-password",
		Role:        domain.RoleMed,
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.AccountStatus != domain.StatusPendingVerification {
		t.Fatalf("status after register = %s", created.AccountStatus)
	}

	if err := ver.Submit(context.Background(), submission(created.ID)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := ver.Approve(context.Background(), created.ID, "admin1", "verified"); err != nil {
		t.Fatalf("approve: %v", err)
	}

	result, err := auth.Login(context.Background(), "amara@example.com", "secure-password")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.User.AccountStatus != domain.StatusActive {
		t.Errorf("status after approval = %s, want ACTIVE", result.User.AccountStatus)
	}

	user, _ := userRepo.GetUserByID(context.Background(), created.ID)
	if user.VerifiedBy == nil || *user.VerifiedBy != "admin1" {
		t.Errorf("verifiedBy = %v, want admin1", user.VerifiedBy)
	}
}
