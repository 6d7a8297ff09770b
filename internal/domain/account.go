package domain

import (
	"encoding/base64"
	"time"

	"github.com/Phaneesh28/project-backend/internal/utils"
)

const (
	maxUsernameLen = 64
	// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
	maxPasswordLen = 72
)

// Account is the stored credential record. PasswordHash is never the plaintext.
type Account struct {
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"password"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Status string `json:"status"`
	Token  string `json:"token"`
}

func (r *RegisterRequest) Normalize() {
	r.Username = utils.NormalizeString(r.Username)
	r.Email = utils.NormalizeEmail(r.Email)
	r.Phone = normalizePhone(r.Phone)
}

// normalizePhone strips formatting but leaves input with no digits as typed
// so Validate still rejects it.
func normalizePhone(phone string) string {
	if digits := utils.NormalizePhone(phone); digits != "" {
		return digits
	}
	return utils.NormalizeString(phone)
}

func (r *RegisterRequest) Validate() error {
	if err := validateUsername(r.Username); err != nil {
		return err
	}
	if r.Email == "" {
		return validationError("email is required")
	}
	if !utils.IsValidEmail(r.Email) {
		return validationError("invalid email format")
	}
	if r.Phone != "" && !utils.IsValidPhone(r.Phone) {
		return validationError("invalid phone format")
	}
	return validatePassword(r.Password)
}

func (r *LoginRequest) Normalize() {
	r.Username = utils.NormalizeString(r.Username)
}

func (r *LoginRequest) Validate() error {
	if r.Username == "" {
		return validationError("username is required")
	}
	if r.Password == "" {
		return validationError("password is required")
	}
	return nil
}

// DecodePassword replaces a base64 encoded password with its plaintext.
func (r *LoginRequest) DecodePassword() error {
	raw, err := base64.StdEncoding.DecodeString(r.Password)
	if err != nil {
		return validationError("password is not valid base64")
	}
	r.Password = string(raw)
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return validationError("username is required")
	}
	if len(username) > maxUsernameLen {
		return validationError("username must be at most %d characters", maxUsernameLen)
	}
	if !utils.IsValidUsername(username) {
		return validationError("username may only contain letters, digits, '.', '_' and '-'")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return validationError("password is required")
	}
	if len(password) > maxPasswordLen {
		return validationError("password must be at most %d bytes", maxPasswordLen)
	}
	return nil
}
