package otp

import (
	"fmt"
	"os"
	"time"

	otperrors "go-hrdocs/internal/otp/errors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	uploadGrantScope = "document:upload"
	uploadGrantTTL   = 30 * time.Minute
)

// signUploadGrant mints the short-lived token returned by a successful
// OTP verification. It carries only the employee id and scope; it is
// not an access token and the auth middleware will not accept it.
func signUploadGrant(employeeID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"employee_id": employeeID,
		"scope":       uploadGrantScope,
		"iat":         now.Unix(),
		"exp":         now.Add(uploadGrantTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(os.Getenv("JWT_SECRET")))
}

// VerifyUploadGrant checks signature, expiry and scope, and returns
// the employee the grant was issued to.
func VerifyUploadGrant(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", otperrors.ErrInvalidUploadGrant
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", otperrors.ErrInvalidUploadGrant
	}
	if scope, _ := claims["scope"].(string); scope != uploadGrantScope {
		return "", otperrors.ErrInvalidUploadGrant
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return "", otperrors.ErrInvalidUploadGrant
	}
	return employeeID, nil
}
