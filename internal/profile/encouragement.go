package profile

import (
	"math/rand/v2"
	"sync"
)

var encouragementMessages = []string{
	"Musicians with a photo get far more messages. Show them who you are!",
	"Tell your story in your bio. Bands want to know what drives you.",
	"Add your social links so people can hear what you sound like.",
	"Play more than one instrument? List them and open up more opportunities.",
	"A custom username makes you easier to remember and easier to find.",
	"Every detail you add brings you one step closer to your next band.",
}

// EncouragementMessages returns a copy of the fixed message list.
func EncouragementMessages() []string {
	out := make([]string, len(encouragementMessages))
	copy(out, encouragementMessages)
	return out
}

// Encourager picks a uniformly random encouragement line.
type Encourager struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewEncourager uses rng when given; nil falls back to the global source.
func NewEncourager(rng *rand.Rand) *Encourager {
	return &Encourager{rng: rng}
}

func (e *Encourager) Pick() string {
	if e == nil || e.rng == nil {
		return encouragementMessages[rand.IntN(len(encouragementMessages))]
	}

	// *rand.Rand is not safe for concurrent use.
	e.mu.Lock()
	defer e.mu.Unlock()
	return encouragementMessages[e.rng.IntN(len(encouragementMessages))]
}
