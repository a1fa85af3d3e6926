// Package idgen provides short, filename-safe unique suffix generation
// backed by nanoid. Used to name the temporary files behind atomic
// write-then-rename so concurrent writers never collide.
package idgen

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet defines the character set used for generated suffixes.
var Alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Length is the number of random characters generated.
var Length = 10

// Suffix returns a new random suffix, e.g. for "config.json.tmp.<suffix>".
func Suffix() (string, error) {
	s, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return s, nil
}
