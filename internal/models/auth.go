package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// UserRole represents the roles known to the RBAC middleware.
type UserRole string

const (
	RoleAdmin     UserRole = "ADMIN"
	RoleNurse     UserRole = "NURSE"
	RoleCaregiver UserRole = "CAREGIVER"
)

// Valid reports whether the role is supported.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleNurse, RoleCaregiver:
		return true
	default:
		return false
	}
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
