package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// UserRole is the authorization role of a user.
type UserRole string

// Possible user roles
const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"
)

// UserStatus is the lifecycle state of a user account.
type UserStatus string

// Possible user status values
const (
	UserStatusActive    UserStatus = "ACTIVE"
	UserStatusInactive  UserStatus = "INACTIVE"
	UserStatusSuspended UserStatus = "SUSPENDED"
)

// Maximum field lengths, mirrored by the users table.
const (
	MaxLoginIDLength  = 50
	MaxNicknameLength = 50
	MaxEmailLength    = 255
)

// Common validation errors
var (
	ErrEmptyLoginID        = errors.New("login ID cannot be empty")
	ErrLoginIDTooLong      = errors.New("login ID must be at most 50 characters long")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyNickname       = errors.New("nickname cannot be empty")
	ErrNicknameTooLong     = errors.New("nickname must be at most 50 characters long")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrInvalidUserRole     = errors.New("invalid user role")
	ErrInvalidUserStatus   = errors.New("invalid user status")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered member who writes posts and places stickers.
// The login ID, email and nickname are fixed at registration; only Role and
// Status change afterwards.
type User struct {
	ID             uuid.UUID  `json:"id"`
	LoginID        string     `json:"login_id"`
	Password       string     `json:"-"` // Plaintext password, used only until the store hashes it
	HashedPassword string     `json:"-"` // Never expose password hash in JSON
	Email          string     `json:"email"`
	Nickname       string     `json:"nickname"`
	Role           UserRole   `json:"role"`
	Status         UserStatus `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewUser creates an active USER with the given credentials.
// The ID is left empty so that the store assigns one on first save.
// Returns an error if validation fails.
//
// NOTE: the plaintext password is hashed by the store when the user is saved
// and is never written to the database.
func NewUser(loginID, password, email, nickname string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		LoginID:   loginID,
		Password:  password,
		Email:     email,
		Nickname:  nickname,
		Role:      UserRoleUser,
		Status:    UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.LoginID == "" {
		return ErrEmptyLoginID
	}
	if len(u.LoginID) > MaxLoginIDLength {
		return ErrLoginIDTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if len(u.Email) > MaxEmailLength || !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Nickname == "" {
		return ErrEmptyNickname
	}
	if len([]rune(u.Nickname)) > MaxNicknameLength {
		return ErrNicknameTooLong
	}

	if !isValidUserRole(u.Role) {
		return ErrInvalidUserRole
	}
	if !isValidUserStatus(u.Status) {
		return ErrInvalidUserStatus
	}

	// A plaintext password is only present on registration; stored users
	// must carry a hash instead.
	if u.Password != "" {
		if !validatePasswordComplexity(u.Password) {
			if len(u.Password) < 12 {
				return ErrPasswordTooShort
			}
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ChangeStatus moves the user to a new lifecycle state.
func (u *User) ChangeStatus(status UserStatus) error {
	if !isValidUserStatus(status) {
		return ErrInvalidUserStatus
	}
	u.Status = status
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// ChangeRole grants the user a new role.
func (u *User) ChangeRole(role UserRole) error {
	if !isValidUserRole(role) {
		return ErrInvalidUserRole
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// IsActive reports whether the account may act in the application.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

func isValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleUser, UserRoleAdmin:
		return true
	default:
		return false
	}
}

func isValidUserStatus(status UserStatus) bool {
	switch status {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	default:
		return false
	}
}

// validateEmailFormat performs basic validation of email format:
// a non-empty local part, an @, and a domain with an inner dot.
func validateEmailFormat(email string) bool {
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	return dotIndex > 0 && dotIndex != len(domainPart)-1
}

// validatePasswordComplexity checks if a password is between 12 and 72
// bytes long. 72 bytes is the most bcrypt will hash.
func validatePasswordComplexity(password string) bool {
	passLen := len(password)
	return passLen >= 12 && passLen <= 72
}
