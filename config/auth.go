package config

import (
	"crypto/subtle"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var JWTSecret []byte
var JWTExpiration time.Duration

var AdminPassword string
var AdminPasswordHash string

func init() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "your-secret-key-change-this-in-production"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour

	AdminPassword = os.Getenv("ADMIN_PASSWORD")
	if AdminPassword == "" {
		AdminPassword = "admin123"
	}
	AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
}

// CheckAdminPassword compares against the bcrypt hash when one is configured,
// otherwise against the plain password in constant time.
func CheckAdminPassword(password string) bool {
	if AdminPasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(AdminPasswordHash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(AdminPassword)) == 1
}
