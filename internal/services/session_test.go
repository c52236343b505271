package services_test

import (
	"errors"
	"fmt"
	"testing"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
	"campus_tracker/internal/store/storetest"
)

func stubIssuer(userID uint, role string) (string, error) {
	return fmt.Sprintf("token-%d-%s", userID, role), nil
}

func newSession() (*services.SessionService, *services.ApprovalService) {
	users := storetest.NewUsers()
	return services.NewSessionService(users, stubIssuer), services.NewApprovalService(users)
}

func TestLoginUnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	sessions, approval := newSession()
	if _, err := approval.Register("Bob", "bob@u.edu", "secret1", "student"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, errUnknown := sessions.Login("ghost@u.edu", "whatever", "")
	_, _, errWrongPass := sessions.Login("bob@u.edu", "wrong", "")

	if !errors.Is(errUnknown, services.ErrInvalidCredential) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredential", errUnknown)
	}
	if !errors.Is(errWrongPass, services.ErrInvalidCredential) {
		t.Errorf("wrong password err = %v, want ErrInvalidCredential", errWrongPass)
	}
	// Same error value both ways, so the response cannot reveal whether the
	// email exists.
	if errUnknown.Error() != errWrongPass.Error() {
		t.Errorf("error shape differs: %q vs %q", errUnknown, errWrongPass)
	}
}

func TestLoginPendingUserBlockedEvenWithCorrectPassword(t *testing.T) {
	sessions, approval := newSession()
	if _, err := approval.Register("Alice", "alice@u.edu", "secret1", "driver"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := sessions.Login("alice@u.edu", "secret1", "")
	if !errors.Is(err, services.ErrPendingApproval) {
		t.Errorf("err = %v, want ErrPendingApproval", err)
	}
}

func TestLoginRoleMismatch(t *testing.T) {
	sessions, approval := newSession()
	if _, err := approval.Register("Bob", "bob@u.edu", "secret1", "student"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, _, err := sessions.Login("bob@u.edu", "secret1", models.RoleDriver)
	if !errors.Is(err, services.ErrRoleMismatch) {
		t.Errorf("err = %v, want ErrRoleMismatch", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	sessions, approval := newSession()
	registered, err := approval.Register("Bob", "Bob@U.edu", "secret1", "student")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, user, err := sessions.Login("bob@u.edu", "secret1", models.RoleStudent)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("user id = %d, want %d", user.ID, registered.ID)
	}
	want := fmt.Sprintf("token-%d-student", registered.ID)
	if token != want {
		t.Errorf("token = %q, want %q", token, want)
	}
}

// Alice registers as a driver, is blocked until an admin approves her, and
// can then log into the driver portal.
func TestDriverApprovalLoginFlow(t *testing.T) {
	sessions, approval := newSession()

	alice, err := approval.Register("Alice", "alice@u.edu", "secret1", "driver")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if alice.Status != models.StatusPending {
		t.Fatalf("status = %q, want pending", alice.Status)
	}

	if _, _, err := sessions.Login("alice@u.edu", "secret1", ""); !errors.Is(err, services.ErrPendingApproval) {
		t.Fatalf("pre-approval login err = %v, want ErrPendingApproval", err)
	}

	approved, err := approval.Approve(alice.ID, "ok")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if approved.Status != models.StatusApproved || approved.Role != models.RoleDriver {
		t.Fatalf("post-approval record: %q/%q", approved.Status, approved.Role)
	}

	_, user, err := sessions.Login("alice@u.edu", "secret1", models.RoleDriver)
	if err != nil {
		t.Fatalf("post-approval login: %v", err)
	}
	if user.Role != models.RoleDriver {
		t.Errorf("role = %q, want driver", user.Role)
	}
}
