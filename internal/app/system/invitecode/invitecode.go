// Package invitecode generates the unique join tokens for groups.
//
// Codes are short random alphanumeric strings checked against the existing
// codes before use. The generator retries a bounded number of times. The
// UNIQUE constraint on groups.invite_code remains the authoritative guard;
// callers treat an insert-time violation as one more collision within the
// same bound.
package invitecode

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Alphabet is the invite-code symbol set: uppercase letters and digits.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Defaults for the generator.
const (
	DefaultLength      = 8
	DefaultMaxAttempts = 5
)

// ErrCodeSpaceExhausted is returned when every attempt collided with an
// existing code.
var ErrCodeSpaceExhausted = errors.New("failed to generate unique invite code")

// Generator issues invite codes. The zero value is not usable; construct
// with New.
type Generator struct {
	length      int
	maxAttempts int
	random      io.Reader
}

// Option configures a Generator.
type Option func(*Generator)

// WithLength overrides the code length.
func WithLength(n int) Option {
	return func(g *Generator) { g.length = n }
}

// WithMaxAttempts overrides the collision retry bound.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = n }
}

// WithRand overrides the randomness source. Tests use this to force
// collisions deterministically.
func WithRand(r io.Reader) Option {
	return func(g *Generator) { g.random = r }
}

// New constructs a Generator with crypto/rand defaults.
func New(opts ...Option) *Generator {
	g := &Generator{
		length:      DefaultLength,
		maxAttempts: DefaultMaxAttempts,
		random:      rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// MaxAttempts reports the collision retry bound. Callers that perform their
// own uniqueness checks around Generate use it to budget attempts.
func (g *Generator) MaxAttempts() int { return g.maxAttempts }

// Generate returns one random candidate code without any uniqueness check.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.length)
	max := big.NewInt(int64(len(Alphabet)))
	for i := range buf {
		n, err := rand.Int(g.random, max)
		if err != nil {
			return "", fmt.Errorf("reading random source: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// Issue generates candidate codes until taken reports one free, up to the
// attempt bound. Exhausting the bound returns ErrCodeSpaceExhausted.
func (g *Generator) Issue(ctx context.Context, taken func(ctx context.Context, code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < g.maxAttempts; attempt++ {
		code, err := g.Generate()
		if err != nil {
			return "", err
		}
		inUse, err := taken(ctx, code)
		if err != nil {
			return "", err
		}
		if !inUse {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}
