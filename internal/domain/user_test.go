package domain

import (
	"strings"
	"testing"
)

func TestNewUser(t *testing.T) {
	validPassword := "password12345"

	user, err := NewUser("moana_01", validPassword, "moana@test.com", "모아나")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.Role != UserRoleUser {
		t.Errorf("Expected role %s, got %s", UserRoleUser, user.Role)
	}
	if user.Status != UserStatusActive {
		t.Errorf("Expected status %s, got %s", UserStatusActive, user.Status)
	}
	if user.Password != validPassword {
		t.Errorf("Expected plaintext password to be kept until hashing")
	}
	if user.HashedPassword != "" {
		t.Errorf("Expected no hash before the store saves the user")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestUserValidate(t *testing.T) {
	valid := func() User {
		return User{
			LoginID:        "user_1",
			HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
			Email:          "user@example.com",
			Nickname:       "nick",
			Role:           UserRoleUser,
			Status:         UserStatusActive,
		}
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
	}{
		{"valid stored user", func(u *User) {}, nil},
		{"empty login id", func(u *User) { u.LoginID = "" }, ErrEmptyLoginID},
		{"long login id", func(u *User) { u.LoginID = strings.Repeat("a", 51) }, ErrLoginIDTooLong},
		{"empty email", func(u *User) { u.Email = "" }, ErrEmptyEmail},
		{"email without at", func(u *User) { u.Email = "invalidemail" }, ErrInvalidEmail},
		{"email without domain dot", func(u *User) { u.Email = "a@bcd" }, ErrInvalidEmail},
		{"empty nickname", func(u *User) { u.Nickname = "" }, ErrEmptyNickname},
		{"long nickname", func(u *User) { u.Nickname = strings.Repeat("모", 51) }, ErrNicknameTooLong},
		{"unknown role", func(u *User) { u.Role = "ROOT" }, ErrInvalidUserRole},
		{"unknown status", func(u *User) { u.Status = "GONE" }, ErrInvalidUserStatus},
		{"no password and no hash", func(u *User) { u.HashedPassword = "" }, ErrEmptyPassword},
		{"short plaintext password", func(u *User) { u.Password = "1111" }, ErrPasswordTooShort},
		{"long plaintext password", func(u *User) { u.Password = strings.Repeat("p", 73) }, ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := valid()
			tt.mutate(&u)
			if err := u.Validate(); err != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUserChangeStatusAndRole(t *testing.T) {
	user, err := NewUser("user_2", "password12345", "u2@test.com", "nick")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := user.ChangeStatus(UserStatusSuspended); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.IsActive() {
		t.Error("Expected suspended user to be inactive")
	}
	if err := user.ChangeStatus("BANNED"); err != ErrInvalidUserStatus {
		t.Errorf("Expected %v, got %v", ErrInvalidUserStatus, err)
	}

	if err := user.ChangeRole(UserRoleAdmin); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user.Role != UserRoleAdmin {
		t.Errorf("Expected role %s, got %s", UserRoleAdmin, user.Role)
	}
	if err := user.ChangeRole("OWNER"); err != ErrInvalidUserRole {
		t.Errorf("Expected %v, got %v", ErrInvalidUserRole, err)
	}
}
