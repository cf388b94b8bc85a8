package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"chosenoffset.com/pong/internal/core/pong"
	"chosenoffset.com/pong/internal/game"
	"chosenoffset.com/pong/internal/loop"
	ebitenrender "chosenoffset.com/pong/internal/render/ebiten"
	"chosenoffset.com/pong/internal/render/terminal"
	"chosenoffset.com/pong/internal/simulation"
	"chosenoffset.com/pong/internal/ui/hud"
)

func main() {
	configPath := flag.String("config", "pong.toml", "Path to a .json, .toml or .yaml config file")
	backend := flag.String("backend", "ebiten", "Front end: ebiten or terminal")
	seed := flag.Int64("seed", 0, "Serve randomness seed (0 picks one from the clock)")
	tps := flag.Int("tps", 0, "Frames per second (overrides the config)")
	logPath := flag.String("log", "pong.log", "Log file for the terminal backend")
	flag.Parse()

	matchID := uuid.New()
	log.SetPrefix(fmt.Sprintf("[match %s] ", matchID.String()[:8]))

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Printf("Config: %s", *configPath)
	if *tps > 0 {
		cfg.Display.TPS = *tps
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	log.Printf("Seed: %d", *seed)
	sim := pong.NewSimulation(cfg.Geometry(), cfg.Tuning(), rand.New(rand.NewSource(*seed)))

	switch *backend {
	case "ebiten":
		err = runWindow(cfg, sim)
	case "terminal":
		err = runTerminal(cfg, sim, *logPath)
	default:
		log.Fatalf("Unknown backend %q, want ebiten or terminal", *backend)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Println("Game over")
}

func newHUD(cfg *simulation.Config) *hud.HUD {
	return hud.New(&cfg.HUD)
}

// runWindow plays in an Ebiten window. Frames are pumped from Ebiten's
// Update, so the display refresh sets the pace.
func runWindow(cfg *simulation.Config, sim *pong.Simulation) error {
	width, height := int(cfg.Playfield.Width), int(cfg.Playfield.Height)
	host := ebitenrender.NewHost(width, height)

	g := game.New(sim, host.Scheduler(), host, newHUD(cfg), host.Input())
	defer g.Close()
	manager := game.NewManager(g, host.Controls(), width, height)

	host.SetWindowSize(int(float64(width)*cfg.Display.Scale), int(float64(height)*cfg.Display.Scale))
	host.SetWindowTitle(cfg.Display.Title)
	host.SetTPS(cfg.Display.TPS)

	log.Println("Host: ebiten")
	g.Start()
	return host.RunGame(manager)
}

// runTerminal plays in the terminal. Frames run on a fixed-rate timer while
// tcell delivers input on its own goroutine. Logging moves to logPath so it
// does not draw over the court.
func runTerminal(cfg *simulation.Config, sim *pong.Simulation, logPath string) error {
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	defer log.SetOutput(os.Stderr)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}

	host := terminal.NewHost(screen, cfg.Playfield.Width, cfg.Playfield.Height)
	host.SetHoldTimeout(time.Duration(cfg.Display.KeyHoldMS) * time.Millisecond)
	if err := host.Open(); err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer host.Close()

	sched := loop.NewTickerScheduler(loop.IntervalForTPS(cfg.Display.TPS))
	log.Printf("Frame interval: %v", sched.Interval())
	g := game.New(sim, sched, host, newHUD(cfg), host)
	defer g.Close()
	manager := game.NewManager(g, host, int(cfg.Playfield.Width), int(cfg.Playfield.Height))

	host.SetWindowTitle(cfg.Display.Title)
	host.SetTPS(cfg.Display.TPS)

	log.Println("Host: terminal")
	g.Start()
	return host.RunGame(manager)
}
