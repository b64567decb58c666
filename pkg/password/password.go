// Package password centraliza el hash de claves con bcrypt.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmpty se devuelve al intentar hashear una clave vacía.
var ErrEmpty = errors.New("password: clave vacía")

// Cost es el costo bcrypt usado por Hash. Los tests lo bajan a bcrypt.MinCost.
var Cost = bcrypt.DefaultCost

// Hash devuelve el hash bcrypt de plain.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", ErrEmpty
	}
	h, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches indica si plain corresponde al hash. Un hash corrupto no coincide.
func Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CountMatches cuenta cuántos hashes corresponden a plain.
func CountMatches(hashes []string, plain string) int {
	n := 0
	for _, h := range hashes {
		if Matches(h, plain) {
			n++
		}
	}
	return n
}
