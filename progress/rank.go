package progress

import (
	"fmt"
	"log"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/cuberoll/prefabs"
)

// DefaultRankScript is the embedded script NewRanker loads.
const DefaultRankScript = "rank.tengo"

// Ranker grades a finished run with a tengo script. The script reads the
// globals seconds and prisms and must set rank.
type Ranker struct {
	mu       sync.Mutex
	compiled *tengo.Compiled
}

// NewRanker compiles the rank script from prefabs, preferring the on-disk
// copy.
func NewRanker() (*Ranker, error) {
	src, err := prefabs.LoadScript(DefaultRankScript)
	if err != nil {
		return nil, fmt.Errorf("progress: load rank script: %w", err)
	}
	return NewRankerFromSource(src)
}

func NewRankerFromSource(src []byte) (*Ranker, error) {
	script := tengo.NewScript(src)
	_ = script.Add("seconds", 0.0)
	_ = script.Add("prisms", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("progress: compile rank script: %w", err)
	}
	return &Ranker{compiled: compiled}, nil
}

// Rank returns the letter grade for a run. A nil Ranker or a failing script
// falls back to FallbackRank.
func (r *Ranker) Rank(seconds float64, prisms int) string {
	if r == nil || r.compiled == nil {
		return FallbackRank(seconds, prisms)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.compiled.Set("seconds", seconds); err != nil {
		log.Printf("progress: rank script: %v", err)
		return FallbackRank(seconds, prisms)
	}
	if err := r.compiled.Set("prisms", prisms); err != nil {
		log.Printf("progress: rank script: %v", err)
		return FallbackRank(seconds, prisms)
	}
	if err := r.compiled.Run(); err != nil {
		log.Printf("progress: rank script: %v", err)
		return FallbackRank(seconds, prisms)
	}
	if !r.compiled.IsDefined("rank") {
		log.Printf("progress: rank script did not set rank")
		return FallbackRank(seconds, prisms)
	}
	rank := r.compiled.Get("rank").String()
	if rank == "" {
		return FallbackRank(seconds, prisms)
	}
	return rank
}

// FallbackRank mirrors the shipped script.
func FallbackRank(seconds float64, prisms int) string {
	score := seconds - float64(prisms*2)
	switch {
	case score <= 10:
		return "S"
	case score <= 20:
		return "A"
	case score <= 40:
		return "B"
	}
	return "C"
}
