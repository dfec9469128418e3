package provision

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// Character classes for generated one-time passwords. Ambiguous glyphs
// (0/O, 1/l/I) are excluded because these passwords are read out or copied
// by hand.
const (
	lowerChars = "abcdefghjkmnpqrstuvwxyz"
	upperChars = "ABCDEFGHJKMNPQRSTUVWXYZ"
	digitChars = "23456789"
	allChars   = lowerChars + upperChars + digitChars
)

const minPasswordLength = 6

// Generator produces one-time passwords and their bcrypt hashes. Plaintext
// comes from crypto/rand and always contains at least one lowercase letter,
// one uppercase letter and one digit.
type Generator struct {
	Length int
	Cost   int // bcrypt cost; 0 means bcrypt.DefaultCost
}

// Generate returns a fresh plaintext password and its hash.
func (g Generator) Generate() (plain string, hash string, err error) {
	length := g.Length
	if length < minPasswordLength {
		length = minPasswordLength
	}

	buf := make([]byte, length)
	// one from each class keeps the password usable against common
	// complexity rules regardless of what the random tail drew
	if buf[0], err = pick(lowerChars); err != nil {
		return "", "", err
	}
	if buf[1], err = pick(upperChars); err != nil {
		return "", "", err
	}
	if buf[2], err = pick(digitChars); err != nil {
		return "", "", err
	}
	for i := 3; i < length; i++ {
		if buf[i], err = pick(allChars); err != nil {
			return "", "", err
		}
	}
	if err = shuffle(buf); err != nil {
		return "", "", err
	}

	cost := g.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword(buf, cost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(buf), string(hashed), nil
}

func pick(chars string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random byte: %w", err)
	}
	return chars[n.Int64()], nil
}

func shuffle(buf []byte) error {
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return fmt.Errorf("failed to draw random byte: %w", err)
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}
	return nil
}
