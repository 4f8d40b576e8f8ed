package nostd

import (
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

func BcryptEncode(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

func BcryptMatch(hashedPassword, password []byte) error {
	return bcrypt.CompareHashAndPassword(hashedPassword, password)
}

func IsEmail(address string) bool {
	_, err := mail.ParseAddress(address)
	return err == nil
}

func NormalizeEmail(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}
