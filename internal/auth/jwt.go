package auth

import (
	"errors"
	"fmt"
	"time"

	"organizer-portal/internal/config"
	"organizer-portal/internal/constants"

	"github.com/golang-jwt/jwt/v4"
)

var jwtSecret []byte

var ErrInvalidInviteToken = errors.New("invitation link is not valid")

func InitJWT(cfg *config.Config) {
	jwtSecret = []byte(cfg.JWT.Secret)
}

// InviteClaims is the payload of an invitation link.
type InviteClaims struct {
	InvitationID string `json:"inv"`
	EventID      string `json:"evt"`
	jwt.RegisteredClaims
}

// GenerateInviteToken signs the link token for an invitation issued at now.
func GenerateInviteToken(invitationID, eventID string, now time.Time) (string, error) {
	claims := InviteClaims{
		InvitationID: invitationID,
		EventID:      eventID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   invitationID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.InvitationTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ValidateInviteToken checks signature and expiry. Every failure is reported
// as ErrInvalidInviteToken wrapping the parser error.
func ValidateInviteToken(tokenString string) (*InviteClaims, error) {
	claims := &InviteClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInviteToken, err)
	}
	if !token.Valid || claims.InvitationID == "" {
		return nil, ErrInvalidInviteToken
	}
	return claims, nil
}
