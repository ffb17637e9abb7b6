package groupreservation

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"

	"groupbook/internal/pkg/errs"
)

// codeAlphabet drops visually ambiguous characters (0/O, 1/I/L) so codes
// survive being read aloud or scribbled on paper.
const (
	codeAlphabet = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
	codeLength   = 8
	maxAttempts  = 10
)

// ErrCodeSpaceExhausted means the generator collided on every attempt. That
// is an operator problem (alphabet or length too small for the current
// cardinality), not something to retry at runtime.
var ErrCodeSpaceExhausted = errors.New("invite code space exhausted")

// CodeExistsFunc probes the persistence layer for a code collision.
type CodeExistsFunc func(ctx context.Context, code string) (bool, error)

type CodeGenerator struct{}

func NewCodeGenerator() *CodeGenerator {
	return &CodeGenerator{}
}

// Generate produces a unique invite code, retrying on collision up to a
// fixed bound rather than looping forever.
func (cg *CodeGenerator) Generate(ctx context.Context, exists CodeExistsFunc) (string, error) {
	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", errs.Wrap(err, "failed to draw random code")
		}

		taken, err := exists(ctx, code)
		if err != nil {
			return "", errs.Wrap(err, "failed to check code uniqueness")
		}
		if !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
