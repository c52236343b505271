package services_test

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"campus_tracker/internal/models"
	"campus_tracker/internal/services"
	"campus_tracker/internal/store/storetest"
)

func newApproval() (*services.ApprovalService, *storetest.Users) {
	users := storetest.NewUsers()
	return services.NewApprovalService(users), users
}

func TestRegisterStudentIsApprovedImmediately(t *testing.T) {
	approval, _ := newApproval()

	user, err := approval.Register("Bob", "bob@u.edu", "secret1", "student")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", user.Status)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", user.Role)
	}
	if user.RequestedRole != "" {
		t.Errorf("requested role = %q, want empty", user.RequestedRole)
	}
}

func TestRegisterEmptyRoleDefaultsToStudent(t *testing.T) {
	approval, _ := newApproval()

	user, err := approval.Register("Bob", "bob@u.edu", "secret1", "")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != models.RoleStudent || user.Status != models.StatusApproved {
		t.Errorf("got role=%q status=%q, want student/approved", user.Role, user.Status)
	}
}

func TestRegisterDriverIsPendingStudent(t *testing.T) {
	approval, _ := newApproval()

	user, err := approval.Register("Alice", "alice@u.edu", "secret1", "driver")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Status != models.StatusPending {
		t.Errorf("status = %q, want pending", user.Status)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("role = %q, want student until approved", user.Role)
	}
	if user.RequestedRole != models.RoleDriver {
		t.Errorf("requested role = %q, want driver", user.RequestedRole)
	}
}

func TestRegisterHashesPassword(t *testing.T) {
	approval, users := newApproval()

	if _, err := approval.Register("Bob", "bob@u.edu", "secret1", "student"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	stored, err := users.FindByEmail("bob@u.edu")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if stored.Password == "secret1" || stored.Password == "" {
		t.Fatal("password stored in the clear or not at all")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	approval, _ := newApproval()

	if _, err := approval.Register("Bob", "Bob@U.edu", "secret1", "student"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := approval.Register("Bobby", "  bob@u.edu ", "secret2", "student")
	if !errors.Is(err, services.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestRegisterUnknownRole(t *testing.T) {
	approval, _ := newApproval()

	_, err := approval.Register("Bob", "bob@u.edu", "secret1", "superuser")
	if !errors.Is(err, services.ErrInvalidArgument) {
		t.Errorf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestApproveGrantsRequestedRole(t *testing.T) {
	approval, _ := newApproval()

	pending, err := approval.Register("Alice", "alice@u.edu", "secret1", "driver")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := approval.Approve(pending.ID, "ok")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if user.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", user.Status)
	}
	if user.Role != models.RoleDriver {
		t.Errorf("role = %q, want driver", user.Role)
	}
	if user.RequestedRole != "" {
		t.Errorf("requested role = %q, want cleared", user.RequestedRole)
	}
	if user.ApprovalNote != "ok" {
		t.Errorf("note = %q, want %q", user.ApprovalNote, "ok")
	}
}

func TestApproveTwiceFailsWithoutMutation(t *testing.T) {
	approval, users := newApproval()

	pending, _ := approval.Register("Alice", "alice@u.edu", "secret1", "admin")
	if _, err := approval.Approve(pending.ID, "first"); err != nil {
		t.Fatalf("first Approve: %v", err)
	}

	_, err := approval.Approve(pending.ID, "second")
	if !errors.Is(err, services.ErrInvalidState) {
		t.Fatalf("second Approve err = %v, want ErrInvalidState", err)
	}

	stored, _ := users.FindByID(pending.ID)
	if stored.ApprovalNote != "first" {
		t.Errorf("note = %q, second approve must not mutate the record", stored.ApprovalNote)
	}
	if stored.Role != models.RoleAdmin {
		t.Errorf("role = %q, want admin from first approve", stored.Role)
	}
}

func TestRejectKeepsStudentRole(t *testing.T) {
	approval, _ := newApproval()

	pending, _ := approval.Register("Alice", "alice@u.edu", "secret1", "driver")
	user, err := approval.Reject(pending.ID, "no vacancies")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if user.Status != models.StatusRejected {
		t.Errorf("status = %q, want rejected", user.Status)
	}
	if user.Role != models.RoleStudent {
		t.Errorf("role = %q, want student", user.Role)
	}
	if user.ApprovalNote != "no vacancies" {
		t.Errorf("note = %q", user.ApprovalNote)
	}
}

func TestRejectNonPending(t *testing.T) {
	approval, _ := newApproval()

	student, _ := approval.Register("Bob", "bob@u.edu", "secret1", "student")
	_, err := approval.Reject(student.ID, "nope")
	if !errors.Is(err, services.ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestApproveUnknownUser(t *testing.T) {
	approval, _ := newApproval()

	_, err := approval.Approve(42, "ok")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestCheckStatusReportsRequestedRoleWhilePending(t *testing.T) {
	approval, _ := newApproval()

	pending, _ := approval.Register("Alice", "alice@u.edu", "secret1", "driver")

	status, role, err := approval.CheckStatus("ALICE@u.edu")
	if err != nil {
		t.Fatalf("CheckStatus: %v", err)
	}
	if status != models.StatusPending || role != models.RoleDriver {
		t.Errorf("got %q/%q, want pending/driver", status, role)
	}

	if _, err := approval.Approve(pending.ID, ""); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	status, role, err = approval.CheckStatus("alice@u.edu")
	if err != nil {
		t.Fatalf("CheckStatus after approve: %v", err)
	}
	if status != models.StatusApproved || role != models.RoleDriver {
		t.Errorf("got %q/%q, want approved/driver", status, role)
	}
}

func TestCheckStatusUnknownEmail(t *testing.T) {
	approval, _ := newApproval()

	_, _, err := approval.CheckStatus("ghost@u.edu")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListPendingStripsCredentials(t *testing.T) {
	approval, _ := newApproval()

	approval.Register("Alice", "alice@u.edu", "secret1", "driver")
	approval.Register("Bob", "bob@u.edu", "secret1", "student")

	pending, err := approval.ListPending()
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("len = %d, want 1", len(pending))
	}
	if pending[0].Email != "alice@u.edu" {
		t.Errorf("email = %q", pending[0].Email)
	}
	if pending[0].Password != "" {
		t.Error("pending listing must not carry password hashes")
	}
}

func TestUpdateProfileCannotTouchRole(t *testing.T) {
	approval, users := newApproval()

	user, _ := approval.Register("Bob", "bob@u.edu", "secret1", "student")

	newName := "Robert"
	newPassword := "better-secret"
	updated, err := approval.UpdateProfile(user.ID, services.ProfilePatch{
		Name:     &newName,
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Robert" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Role != models.RoleStudent || updated.Status != models.StatusApproved {
		t.Errorf("role/status changed: %q/%q", updated.Role, updated.Status)
	}

	stored, _ := users.FindByID(user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("better-secret")); err != nil {
		t.Errorf("new password does not verify: %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	approval, users := newApproval()

	user, _ := approval.Register("Bob", "bob@u.edu", "secret1", "student")
	if err := approval.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := users.FindByID(user.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("user still present after delete: %v", err)
	}
	if err := approval.DeleteUser(user.ID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
