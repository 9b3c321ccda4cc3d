// Package ai layers tunable play personalities over the variant
// heuristics. A Selector never invents moves; it only chooses among the
// legal candidates the engine hands it, so a personality can be weak or
// erratic but never illegal.
package ai

import (
	"fmt"
	"sort"
	"time"
)

// Personality tunes how a seat plays. All ratio fields are clamped to
// [0, 1] when the selector is built.
type Personality struct {
	// Skill narrows the candidate window: 1.0 always takes the
	// top-ranked move, 0.0 picks among a wide window.
	Skill float64

	// Aggressiveness weights shedding high-pip tiles.
	Aggressiveness float64

	// Defensiveness weights moves that strip opponents of playable
	// ends.
	Defensiveness float64

	// MistakeRate is the chance a turn ignores ranking entirely and
	// plays a uniformly random legal move.
	MistakeRate float64

	// Speed is the simulated thinking delay for interactive play.
	Speed time.Duration
}

var presets = map[string]Personality{
	"rookie": {
		Skill: 0.2, Aggressiveness: 0.3, Defensiveness: 0.1,
		MistakeRate: 0.35, Speed: 600 * time.Millisecond,
	},
	"casual": {
		Skill: 0.5, Aggressiveness: 0.5, Defensiveness: 0.3,
		MistakeRate: 0.15, Speed: 900 * time.Millisecond,
	},
	"hustler": {
		Skill: 0.8, Aggressiveness: 0.9, Defensiveness: 0.4,
		MistakeRate: 0.05, Speed: 1200 * time.Millisecond,
	},
	"veterano": {
		Skill: 1.0, Aggressiveness: 0.6, Defensiveness: 0.9,
		MistakeRate: 0.0, Speed: 1500 * time.Millisecond,
	},
}

// Preset returns a named stock personality.
func Preset(name string) (Personality, error) {
	p, ok := presets[name]
	if !ok {
		return Personality{}, fmt.Errorf("unknown personality %q", name)
	}
	return p, nil
}

// PresetNames lists the stock personalities, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (p Personality) normalized() Personality {
	p.Skill = clamp01(p.Skill)
	p.Aggressiveness = clamp01(p.Aggressiveness)
	p.Defensiveness = clamp01(p.Defensiveness)
	p.MistakeRate = clamp01(p.MistakeRate)
	return p
}
