package analysis

import (
	"fmt"

	"github.com/verte-zerg/chiffre/internal/text"
)

// EncryptVigenere shifts the i-th letter of plainText forward by the
// (i mod len(key))-th key letter. Both inputs are normalized first, so the
// result holds letters only.
func EncryptVigenere(plainText, key string) (string, error) {
	return applyVigenere(plainText, key, 1)
}

// DecryptVigenere is the inverse of EncryptVigenere.
func DecryptVigenere(cipherText, key string) (string, error) {
	return applyVigenere(cipherText, key, -1)
}

func applyVigenere(s, key string, dir int) (string, error) {
	k := text.Normalize(key)
	if len(k) == 0 {
		return "", fmt.Errorf("%w: key %q has no letters", ErrEmptyKey, key)
	}
	in := text.Normalize(s)
	out := make([]byte, len(in))
	for i := 0; i < len(in); i++ {
		out[i] = rotate(in[i], dir*int(k[i%len(k)]-'A'))
	}
	return string(out), nil
}
