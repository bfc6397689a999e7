package auth

import (
	"strings"

	"organizer-portal/internal/constants"
	"organizer-portal/internal/utils"

	"golang.org/x/crypto/bcrypt"
)

// NewJoinCode returns a fresh team join code and the bcrypt hash to store.
// The plain code is shown to the inviter once and never persisted.
func NewJoinCode() (code, hash string, err error) {
	code, err = utils.GenerateCode(constants.JoinCodeLength)
	if err != nil {
		return "", "", err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", "", err
	}
	return code, string(h), nil
}

// CheckJoinCode compares a typed code against the stored hash. Input is
// trimmed and upper-cased first.
func CheckJoinCode(hash, code string) bool {
	if hash == "" {
		return false
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
}
