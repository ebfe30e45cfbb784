package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/on-the-run/internal/core"
	"github.com/vovakirdan/on-the-run/internal/game"
	"github.com/vovakirdan/on-the-run/internal/state"
)

// Wandering script parameters
const (
	simTurnEvery = 45 // ticks between direction changes
	simIdleShare = 8  // one in this many turns stands still
)

var flagTicks int

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless scripted game",
	Long: `Play a run without a terminal. A scripted player wanders the city,
buys the cheapest supply whenever a dealer opens, and stops at game over
or after --ticks ticks. The clock is simulated, so the same seed and
config always produce the same summary.

Examples:
  ontherun sim
  ontherun sim --ticks 7200 --seed 42
  ontherun sim --difficulty hard --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	addSessionFlags(simCmd)
	simCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "Maximum ticks to simulate")
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	game.SetConfig(cfg)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := max(flagFPS, 1)

	clock := core.NewManualClock(time.Unix(0, 0))
	session, err := game.Create(flagVariant,
		game.WithRand(core.NewRand(seed)),
		game.WithClock(clock),
		game.WithLogger(log.Default()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	session.Reset(core.RuntimeConfig{TickRate: fps, Seed: seed})

	sum := simulate(session, clock, core.NewRand(seed+1), flagTicks, time.Second/time.Duration(fps))
	printSummary(session, seed, sum)
}

type simSummary struct {
	ticks  int
	events map[core.EventKind]int
}

// simulate drives the session with a wandering script until game over or
// the tick limit.
func simulate(s *game.Session, clock *core.ManualClock, script core.Rand, limit int, frame time.Duration) simSummary {
	sum := simSummary{events: make(map[core.EventKind]int)}

	var dir core.Vec
	for sum.ticks < limit && s.Current() != state.GameOver {
		var in core.InputFrame
		switch s.Current() {
		case state.Menu:
			in.SetCommand(core.CommandInteract)
		case state.Shop:
			if price, ok := s.Price(0); ok && price <= s.Player().Money {
				in.SetBuy(0)
			} else {
				in.SetCommand(core.CommandInteract)
			}
		case state.Playing:
			if sum.ticks%simTurnEvery == 0 {
				dir = wander(script)
			}
			in.Move = dir
		}

		clock.Advance(frame)
		res := s.Step(in)
		for _, e := range res.Events {
			sum.events[e.Kind]++
		}
		sum.ticks++
	}
	s.Events() // drained through StepResult already
	return sum
}

// wander picks one of the eight compass directions, or none.
func wander(r core.Rand) core.Vec {
	if r.Intn(simIdleShare) == 0 {
		return core.Vec{}
	}
	for {
		d := core.V(float64(r.Intn(3)-1), float64(r.Intn(3)-1))
		if d != (core.Vec{}) {
			return d
		}
	}
}

func printSummary(s *game.Session, seed int64, sum simSummary) {
	snap := s.Snapshot()

	fmt.Printf("On The Run - simulated %d ticks (seed %d)\n", sum.ticks, seed)
	fmt.Println()
	fmt.Printf("  %-12s %s\n", "State", s.Current())
	if r := s.Reason(); r != state.ReasonNone {
		fmt.Printf("  %-12s %s\n", "Ending", game.ReasonText(r))
	}
	fmt.Printf("  %-12s %s\n", "Survived", game.FormatElapsed(s.Elapsed()))
	fmt.Printf("  %-12s $%.0f\n", "Cash", s.Player().Money)
	fmt.Printf("  %-12s %.1f / %.0f\n", "Buzz", s.Player().Buzz, s.Player().MaxBuzz)
	fmt.Printf("  %-12s %d\n", "Purchases", s.PurchaseCount())
	fmt.Printf("  %-12s %d\n", "Police", len(snap.Police))
	fmt.Printf("  %-12s %d\n", "Buildings", len(snap.Buildings))

	if len(sum.events) == 0 {
		return
	}
	kinds := make([]core.EventKind, 0, len(sum.events))
	for k := range sum.events {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	fmt.Println()
	fmt.Println("  Events")
	for _, k := range kinds {
		fmt.Printf("    %-16s %d\n", k, sum.events[k])
	}
}
