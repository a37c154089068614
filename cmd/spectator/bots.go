package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/lixenwraith/warpzone/engine"
	"github.com/lixenwraith/warpzone/hero"
	"github.com/lixenwraith/warpzone/vmath"
)

const (
	botMinHold = 300.0 // ms a bot keeps its keys before re-rolling
	botMaxHold = 1500.0
	botAbility = 0.05 // chance of pressing the ability on a re-roll
)

var botHeroes = []string{"maven", "revenant"}

// bot is a locally driven client that wanders with random keys
type bot struct {
	id    int64
	name  string
	hero  string
	input hero.Input
	hold  float64
}

type botSwarm struct {
	bots   []*bot
	rng    *vmath.FastRand
	logger *zap.Logger
}

func newBotSwarm(n int, rng *vmath.FastRand, logger *zap.Logger) *botSwarm {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &botSwarm{rng: rng, logger: logger.Named("bots")}
	for i := 0; i < n; i++ {
		s.bots = append(s.bots, &bot{
			id:   int64(i + 1),
			name: fmt.Sprintf("bot%02d", i+1),
			hero: botHeroes[i%len(botHeroes)],
		})
	}
	return s
}

// join connects every bot; bots already in the game are skipped
func (s *botSwarm) join(eng *engine.Engine) error {
	for _, b := range s.bots {
		if _, ok := eng.Player(b.id); ok {
			continue
		}
		if err := eng.Join(b.id, b.name, b.hero); err != nil {
			return err
		}
	}
	return nil
}

// drive advances hold timers by delta ms and stages each bot's input
// Bots removed after their death timer ran out are re-joined
func (s *botSwarm) drive(eng *engine.Engine, delta float64) {
	for _, b := range s.bots {
		if _, ok := eng.Player(b.id); !ok {
			if err := eng.Join(b.id, b.name, b.hero); err != nil {
				s.logger.Debug("bot join failed", zap.Int64("bot", b.id), zap.Error(err))
			}
			continue
		}
		b.hold -= delta
		if b.hold <= 0 {
			s.reroll(b)
		}
		if err := eng.Input(b.id, b.input); err != nil {
			s.logger.Debug("bot input rejected", zap.Int64("bot", b.id), zap.Error(err))
		}
	}
}

func (s *botSwarm) reroll(b *bot) {
	b.input = hero.Input{
		Left:     s.rng.Float64() < 0.25,
		Right:    s.rng.Float64() < 0.55, // bias toward the next area
		Up:       s.rng.Float64() < 0.3,
		Down:     s.rng.Float64() < 0.3,
		Shift:    s.rng.Float64() < 0.2,
		Ability1: s.rng.Float64() < botAbility,
	}
	b.hold = s.rng.Range(botMinHold, botMaxHold)
}
