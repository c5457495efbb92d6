package profile

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncouragementListHasEnoughMessages(t *testing.T) {
	assert.GreaterOrEqual(t, len(EncouragementMessages()), 5)
}

func TestEncouragerPicksFromList(t *testing.T) {
	messages := EncouragementMessages()
	for _, e := range []*Encourager{NewEncourager(nil), NewEncourager(rand.New(rand.NewPCG(7, 7))), nil} {
		for i := 0; i < 20; i++ {
			assert.Contains(t, messages, e.Pick())
		}
	}
}

func TestEncouragerCoversEveryMessage(t *testing.T) {
	e := NewEncourager(rand.New(rand.NewPCG(42, 1)))
	seen := map[string]int{}
	for i := 0; i < 6000; i++ {
		seen[e.Pick()]++
	}

	assert.Len(t, seen, len(EncouragementMessages()))
	for msg, n := range seen {
		// uniform expectation is 1000 per message
		assert.InDelta(t, 1000, n, 200, msg)
	}
}

func TestEncouragementMessagesReturnsCopy(t *testing.T) {
	msgs := EncouragementMessages()
	msgs[0] = "mutated"
	assert.NotEqual(t, "mutated", EncouragementMessages()[0])
}
