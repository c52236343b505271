package services

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"campus_tracker/internal/models"
)

// ApprovalService owns the user lifecycle: registration, the pending ->
// approved/rejected decision for privileged-role requests, and the admin and
// self-service record operations. It is the only writer of a user's status,
// role and requested role.
type ApprovalService struct {
	users UserStore
}

func NewApprovalService(users UserStore) *ApprovalService {
	return &ApprovalService{users: users}
}

// ProfilePatch carries the fields a user may change about themselves. Role
// and status are deliberately absent; only Approve/Reject touch those.
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}

// Register creates a new account. A student is approved immediately. A
// driver or admin request is stored as a pending student with the privileged
// role recorded in RequestedRole, to be granted by Approve.
func (s *ApprovalService) Register(name, email, password, role string) (*models.User, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	if role == "" {
		role = models.RoleStudent
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidArgument, role)
	}

	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidArgument)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleStudent,
		Status:   models.StatusApproved,
	}
	if role == models.RoleDriver || role == models.RoleAdmin {
		user.Status = models.StatusPending
		user.RequestedRole = role
	}

	// The unique index on email is the real guard; the store maps the
	// violation to ErrDuplicateEmail.
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ListPending returns every user awaiting an admin decision, credentials
// stripped.
func (s *ApprovalService) ListPending() ([]models.User, error) {
	users, err := s.users.ListByStatus(models.StatusPending)
	if err != nil {
		return nil, err
	}
	return stripCredentials(users), nil
}

// Approve grants a pending request: the user becomes approved and receives
// the requested role, which is then cleared. A second call on the same user
// fails with ErrInvalidState rather than silently re-granting.
func (s *ApprovalService) Approve(userID uint, note string) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: user is not pending approval", ErrInvalidState)
	}

	user.Status = models.StatusApproved
	if user.RequestedRole != "" {
		user.Role = user.RequestedRole
	}
	user.RequestedRole = ""
	user.ApprovalNote = note

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Reject declines a pending request. The user keeps the student role.
func (s *ApprovalService) Reject(userID uint, note string) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: user is not pending approval", ErrInvalidState)
	}

	user.Status = models.StatusRejected
	user.ApprovalNote = note

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// CheckStatus is the public, unauthenticated status probe. For a pending
// request it reports the requested role so the applicant sees what they
// asked for.
func (s *ApprovalService) CheckStatus(email string) (status, role string, err error) {
	user, err := s.users.FindByEmail(normalizeEmail(email))
	if err != nil {
		return "", "", err
	}
	role = user.Role
	if user.RequestedRole != "" {
		role = user.RequestedRole
	}
	return user.Status, role, nil
}

// ListUsers returns every account for the admin dashboard, credentials
// stripped.
func (s *ApprovalService) ListUsers() ([]models.User, error) {
	users, err := s.users.ListAll()
	if err != nil {
		return nil, err
	}
	return stripCredentials(users), nil
}

func stripCredentials(users []models.User) []models.User {
	for i := range users {
		users[i].Password = ""
	}
	return users
}

// UpdateProfile applies a self-service patch. Email changes re-run the
// normalization and uniqueness checks; password changes are re-hashed.
func (s *ApprovalService) UpdateProfile(userID uint, patch ProfilePatch) (*models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidArgument)
		}
		user.Name = name
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidArgument)
		}
		user.Email = email
	}
	if patch.Password != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, fmt.Errorf("could not hash password: %w", hashErr)
		}
		user.Password = string(hash)
	}

	if err := s.users.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account outright.
func (s *ApprovalService) DeleteUser(userID uint) error {
	return s.users.Delete(userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
