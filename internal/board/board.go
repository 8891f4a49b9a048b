package board

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_sampler.go github.com/KirkDiggler/lightmatch/internal/board Sampler

// Sampler randomizes board contents
type Sampler interface {
	// Sample returns n labels, each drawn independently from labels
	Sample(labels []string, n int) []string

	// Shuffle returns a random permutation of labels without modifying the input
	Shuffle(labels []string) []string
}

// Randomizer provides board randomization
type Randomizer struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the randomizer
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new randomizer
func New(cfg *Config) *Randomizer {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &Randomizer{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Sample draws n labels with replacement
func (r *Randomizer) Sample(labels []string, n int) []string {
	if len(labels) == 0 || n <= 0 {
		return []string{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cells := make([]string, n)
	for i := range cells {
		cells[i] = labels[r.random.Intn(len(labels))]
	}
	return cells
}

// Shuffle returns a shuffled copy of labels
func (r *Randomizer) Shuffle(labels []string) []string {
	out := make([]string, len(labels))
	copy(out, labels)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.random.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
