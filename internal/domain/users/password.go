package users

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashFailure indica que no se pudo cifrar la contraseña;
// el guardado se aborta, jamás se persiste el texto plano.
var ErrHashFailure = errors.New("no se pudo cifrar la contraseña")

// HashPassword cifra una contraseña en texto plano con bcrypt (costo 10).
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashFailure, err)
	}
	return string(hash), nil
}

// CheckPassword compara un candidato en texto plano contra el hash guardado.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
