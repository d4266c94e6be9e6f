package identity

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"campusattend/internal/apperr"
	"campusattend/internal/testutil"
)

func newTestService(t *testing.T, name string) (*Service, *Repository) {
	t.Helper()
	db := testutil.OpenTestDB(t, name)
	repo := NewRepository(db)
	return NewService(repo), repo
}

func registerInput(studentID, email string) RegisterInput {
	return RegisterInput{
		StudentID: studentID,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     email,
		Password:  "secret1",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t, "identity_register_validation")
	ctx := context.Background()

	in := registerInput("S1", "a@x.com")
	in.FirstName = ""
	if _, err := svc.Register(ctx, in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty field, got %v", err)
	}

	in = registerInput("S1", "a@x.com")
	in.Password = "short"
	if _, err := svc.Register(ctx, in); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc, repo := newTestService(t, "identity_register_dup")
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("S1", "a@x.com")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	// Same email, different case.
	if _, err := svc.Register(ctx, registerInput("S2", "A@X.COM")); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
	// Same student id.
	if _, err := svc.Register(ctx, registerInput("S1", "b@x.com")); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for duplicate student id, got %v", err)
	}

	users, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("store gained rows from rejected registrations: %d users", len(users))
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, repo := newTestService(t, "identity_register_hash")
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerInput("S1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	u, err := repo.GetByID(ctx, pub.ID)
	if err != nil || u == nil {
		t.Fatalf("get: %v %+v", err, u)
	}
	if u.PasswordHash == "secret1" {
		t.Fatal("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) != nil {
		t.Fatal("stored hash does not verify the original password")
	}
	if u.Status != StatusPending || u.Role != RoleStudent {
		t.Fatalf("new user should be pending student, got %s/%s", u.Status, u.Role)
	}
	if u.QRCode != nil {
		t.Fatal("new user should have no qr code")
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t, "identity_login")
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerInput("S1", "a@x.com")); err != nil {
		t.Fatalf("register: %v", err)
	}

	pub, err := svc.Login(ctx, "A@x.Com", "secret1")
	if err != nil {
		t.Fatalf("login with mixed-case email: %v", err)
	}
	if pub.Status != StatusPending {
		t.Fatalf("expected pending status, got %s", pub.Status)
	}

	if _, err := svc.Login(ctx, "a@x.com", "wrong"); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected auth error for bad password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@x.com", "secret1"); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expected auth error for unknown email, got %v", err)
	}
	if _, err := svc.Login(ctx, "", ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty credentials, got %v", err)
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, "identity_verify")
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerInput("S1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.Verify(ctx, pub.ID, ""); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty qr code, got %v", err)
	}
	if err := svc.Verify(ctx, "missing", "QR1"); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}

	if err := svc.Verify(ctx, pub.ID, "QR1"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	got, err := svc.Get(ctx, pub.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != StatusVerified || got.QRCode == nil || *got.QRCode != "QR1" {
		t.Fatalf("verify did not stick: %+v", got)
	}
}

func TestUpdatePatchSemantics(t *testing.T) {
	svc, _ := newTestService(t, "identity_update")
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerInput("S1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, registerInput("S2", "b@x.com")); err != nil {
		t.Fatalf("register other: %v", err)
	}

	if err := svc.Update(ctx, pub.ID, Patch{}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}

	// Only the provided field changes.
	first := "Grace"
	if err := svc.Update(ctx, pub.ID, Patch{FirstName: &first}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := svc.Get(ctx, pub.ID)
	if got.FirstName != "Grace" || got.LastName != "Lovelace" || got.Email != "a@x.com" {
		t.Fatalf("patch touched unspecified fields: %+v", got)
	}

	// Taking another user's email conflicts.
	email := "B@x.com"
	if err := svc.Update(ctx, pub.ID, Patch{Email: &email}); apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict for taken email, got %v", err)
	}

	// A too-short password alone leaves nothing to update.
	short := "abc"
	if err := svc.Update(ctx, pub.ID, Patch{Password: &short}); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for short-password-only patch, got %v", err)
	}

	// A valid password change takes effect.
	newPass := "evenmoresecret"
	if err := svc.Update(ctx, pub.ID, Patch{Password: &newPass}); err != nil {
		t.Fatalf("password update: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", newPass); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestSetRole(t *testing.T) {
	svc, _ := newTestService(t, "identity_role")
	ctx := context.Background()

	pub, err := svc.Register(ctx, registerInput("S1", "a@x.com"))
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.SetRole(ctx, pub.ID, "superuser"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}
	if err := svc.SetRole(ctx, "missing", RoleAdmin); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	if err := svc.SetRole(ctx, pub.ID, RoleAdmin); err != nil {
		t.Fatalf("set role: %v", err)
	}
	got, _ := svc.Get(ctx, pub.ID)
	if got.Role != RoleAdmin {
		t.Fatalf("role not updated: %+v", got)
	}
}
