// Package auth checks the administrative credential and mints admin tokens.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminRole is the role claim carried by admin bearer tokens.
const AdminRole = "admin"

var ErrInvalidCredential = errors.New("invalid credential")

// Verifier accepts the shared admin secret, either as plain text or as a
// bcrypt hash, and optionally HS256 bearer tokens with role=admin.
type Verifier struct {
	token     []byte
	tokenHash []byte
	jwtSecret []byte
}

// NewVerifier builds a verifier. With no token, no hash and no JWT secret
// every credential is rejected.
func NewVerifier(token, tokenHash, jwtSecret string) *Verifier {
	return &Verifier{
		token:     []byte(token),
		tokenHash: []byte(tokenHash),
		jwtSecret: []byte(jwtSecret),
	}
}

// CheckToken reports whether the raw shared secret is correct.
func (v *Verifier) CheckToken(presented string) bool {
	if presented == "" {
		return false
	}
	if len(v.tokenHash) > 0 {
		return bcrypt.CompareHashAndPassword(v.tokenHash, []byte(presented)) == nil
	}
	if len(v.token) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(v.token, []byte(presented)) == 1
}

// CheckBearer validates an admin JWT and returns its subject.
func (v *Verifier) CheckBearer(tokenString string) (string, error) {
	if len(v.jwtSecret) == 0 || tokenString == "" {
		return "", ErrInvalidCredential
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidCredential
	}
	if role, _ := claims["role"].(string); role != AdminRole {
		return "", fmt.Errorf("%w: role %q", ErrInvalidCredential, role)
	}
	sub, _ := claims.GetSubject()
	return sub, nil
}

// TokenIssuer mints admin bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates an issuer signing with secret.
func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed admin token for subject.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("JWT secret is not configured")
	}
	now := i.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": AdminRole,
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// HashToken returns the bcrypt hash to configure instead of the plain secret.
func HashToken(token string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
