package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateStateToken returns an opaque token for OAuth state round-trips.
func GenerateStateToken() string {
	id, err := gonanoid.Generate(idAlphabet, 24)
	if err != nil {
		return ""
	}
	return id
}
