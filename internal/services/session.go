package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"campus_tracker/internal/models"
)

// TokenIssuer signs a token embedding a user's identity and role. The JWT
// middleware supplies the real implementation; tests stub it.
type TokenIssuer func(userID uint, role string) (string, error)

// SessionService maps credentials to an identity. It never reveals whether a
// failed login was an unknown email or a wrong password: both come back as
// ErrInvalidCredential.
type SessionService struct {
	users UserStore
	issue TokenIssuer
}

func NewSessionService(users UserStore, issue TokenIssuer) *SessionService {
	return &SessionService{users: users, issue: issue}
}

// Login verifies the password, blocks accounts that are not approved, and
// optionally enforces the role the client claims to be logging in as. On
// success it returns a signed token and the user record.
func (s *SessionService) Login(email, password, expectedRole string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredential
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredential
	}

	if user.Status != models.StatusApproved {
		return "", nil, ErrPendingApproval
	}

	if expectedRole != "" && expectedRole != user.Role {
		return "", nil, ErrRoleMismatch
	}

	token, err := s.issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
