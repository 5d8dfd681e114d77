package order

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
)

const (
	idPrefix    = "ORD-"
	idMin       = 100000
	idSpan      = 900000
	maxAttempts = 16
)

var ErrIDSpaceExhausted = errors.New("could not allocate a unique order id")

// IDGenerator issues ids of the form ORD-NNNNNN. Ids are unique for the life
// of the generator; a random draw that was already issued is retried.
type IDGenerator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	intn   func(n int) int
}

func NewIDGenerator() *IDGenerator {
	return NewIDGeneratorWithSource(rand.IntN)
}

// NewIDGeneratorWithSource uses intn, which must return a value in [0, n),
// as the source of randomness.
func NewIDGeneratorWithSource(intn func(n int) int) *IDGenerator {
	return &IDGenerator{
		issued: make(map[string]struct{}),
		intn:   intn,
	}
}

func (g *IDGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := 0; i < maxAttempts; i++ {
		id := fmt.Sprintf("%s%06d", idPrefix, idMin+g.intn(idSpan))
		if _, dup := g.issued[id]; dup {
			continue
		}
		g.issued[id] = struct{}{}
		return id, nil
	}
	return "", ErrIDSpaceExhausted
}
