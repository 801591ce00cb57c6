// internal/domain/identity/entity.go
package identity

import (
	"errors"
	"strings"
)

// User is the signed-in shopper as reported by the commerce API
type User struct {
	ID    string `json:"id"`
	Phone string `json:"phone"`
}

// Identity is the authenticated session of one browser
type Identity struct {
	Token         string `json:"token,omitempty"`
	User          *User  `json:"user"`
	Authenticated bool   `json:"is_authenticated"`
}

// Login stores token and user and marks the identity authenticated
func (i *Identity) Login(token string, user User) {
	i.Token = token
	i.User = &user
	i.Authenticated = true
}

// Logout clears token, user and the authenticated flag
func (i *Identity) Logout() {
	i.Token = ""
	i.User = nil
	i.Authenticated = false
}

// ValidationError is a rule violation caught before anything is sent
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

var (
	errInvalidPhone = ValidationError{Field: "phone", Message: "Please enter a valid phone number"}
	errInvalidOTP   = ValidationError{Field: "otp", Message: "Please enter a valid 6-digit OTP"}
)

// NormalizePhone accepts 10 local digits or an already prefixed number and
// returns it in countryCode-prefixed form, e.g. +919999999999
func NormalizePhone(raw, countryCode string) (string, error) {
	phone := strings.TrimSpace(raw)
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)

	local := strings.TrimPrefix(phone, countryCode)
	if len(local) != 10 || !allDigits(local) {
		return "", errInvalidPhone
	}

	return countryCode + local, nil
}

// ValidateOTP checks the code is exactly six digits
func ValidateOTP(otp string) error {
	if len(otp) != 6 || !allDigits(otp) {
		return errInvalidOTP
	}
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
