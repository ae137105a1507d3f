package domain

import (
	"fmt"
	"strings"
	"time"
)

// User-specific validation errors. All of them wrap ErrValidation.
var (
	ErrEmptyUsername    = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameLength   = fmt.Errorf("%w: username must be between 3 and 50 characters", ErrValidation)
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrInvalidRole      = fmt.Errorf("%w: invalid role", ErrValidation)
)

// Role is the closed set of actor classes. Authorization decisions are
// exhaustive matches over these two variants, never raw string comparison.
type Role string

const (
	// RoleStandard actors can create tasks and mutate the ones they created.
	RoleStandard Role = "standard"

	// RoleElevated actors can assign/reassign tasks and bypass ownership
	// checks on update and delete.
	RoleElevated Role = "elevated"
)

// ParseRole converts a raw string into a Role.
// Returns ErrInvalidRole for unknown values.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStandard, RoleElevated:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleStandard || r == RoleElevated
}

// User represents a registered account. The plaintext Password is only
// populated transiently during registration; it is hashed before storage
// and never serialized.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a new standard-role User with the given credentials.
// The caller is responsible for hashing the password before storing the
// user. Returns an error if validation fails.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username:  username,
		Email:     email,
		Password:  password,
		Role:      RoleStandard,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) < 3 || len(u.Username) > 50 {
		return ErrUsernameLength
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if !u.Role.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}

	if u.Password != "" {
		if len(u.Password) < 8 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validateEmailFormat performs basic validation of email format: a single
// @ with a dotted domain part. Anything stricter belongs to a dedicated
// validation library at the request boundary.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	if strings.ContainsRune(domain, '@') {
		return false
	}

	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
