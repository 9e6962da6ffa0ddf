package auth

import (
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sangle2000/final-project-backend/apperr"
	"github.com/sangle2000/final-project-backend/models"
)

const defaultTokenTTL = 24 * time.Hour

// tokenTTL reads JWT_TTL_HOURS; 0 explicitly opts into non-expiring tokens.
func tokenTTL() (time.Duration, bool) {
	raw := os.Getenv("JWT_TTL_HOURS")
	if raw == "" {
		return defaultTokenTTL, true
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours < 0 {
		return defaultTokenTTL, true
	}
	if hours == 0 {
		return 0, false
	}
	return time.Duration(hours) * time.Hour, true
}

// IssueToken signs a JWT carrying the user's id plus profile claims, so
// identity-scoped reads don't need a database round trip. Callers must
// re-issue after any profile mutation or the claims go stale.
func IssueToken(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"phone":      u.Phone,
		"address":    u.Address,
		"role":       u.Role,
		"wallet":     strconv.FormatInt(u.Wallet, 10),
		"created_at": u.CreatedAt.UTC().Format(time.RFC3339),
	}
	if ttl, expires := tokenTTL(); expires {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to sign token", err)
	}
	return signed, nil
}

// ParseToken verifies the signature and returns the claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.New(apperr.Unauthorized, "invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Wrap(apperr.Unauthorized, "invalid or expired token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperr.New(apperr.Unauthorized, "invalid token claims")
	}
	return claims, nil
}
