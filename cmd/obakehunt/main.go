package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ayusman/obakehunt/internal/app"
	"github.com/ayusman/obakehunt/internal/capture"
	"github.com/ayusman/obakehunt/internal/config"
	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/gesture"
	"github.com/ayusman/obakehunt/internal/render"
	"github.com/ayusman/obakehunt/internal/server"
	"github.com/ayusman/obakehunt/internal/store"
	"github.com/ayusman/obakehunt/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "YAML config file (default $OBAKE_CONFIG)")
	noCamera := flag.Bool("no-camera", false, "do not open a local camera; wait for a browser tracker")
	useTray := flag.Bool("tray", false, "show a system tray menu")
	scale := flag.Int("scale", 3, "window scale factor")
	flag.Parse()

	log.Println("Obake Hunt")

	if err := config.LoadEnv(); err != nil {
		log.Println(err)
	}

	path := config.Path(*configPath, os.LookupEnv)
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if path != "" {
		log.Printf("Loaded config from %s", path)
	}
	if err := config.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	st, err := store.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	if v, err := st.Settings().GetFloat(store.SettingSensitivity); err == nil {
		cfg.Game.Sensitivity.Initial = v
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Ignoring saved sensitivity: %v", err)
	}

	source := gesture.NewLatestSource()
	tracker := gesture.NewTracker(cfg.Gesture, cfg.Game.Sensitivity.Initial, cfg.Game.Arena.W, cfg.Game.Arena.H)
	recorder := app.NewRecorder(st)
	session := game.NewSession(cfg.Game, tracker, source, game.NewRand(uint64(time.Now().UnixNano())), recorder)
	defer recorder.Close()
	session.OnSensitivity = recorder.SaveSensitivity

	tracking := app.New(app.Config{Camera: cfg.Camera, Detector: cfg.Detector}, source)

	if cfg.Addr != "" {
		staticDir := cfg.StaticDir
		if staticDir == "" {
			staticDir = findWebDir()
		}
		if staticDir != "" {
			log.Printf("Serving static files from: %s", staticDir)
		}

		srv := server.New(server.Config{
			StaticDir:     staticDir,
			Store:         st,
			Source:        source,
			Sensitivity:   cfg.Game.Sensitivity,
			OnSensitivity: session.RequestSensitivity,
			OnTrackers: func(n int) {
				tracking.SetYielding(n > 0)
			},
		})
		go func() {
			log.Printf("Starting server on %s", cfg.Addr)
			if err := srv.ListenAndServe(cfg.Addr); err != nil {
				log.Printf("Server stopped: %v", err)
			}
		}()
	}

	if !*noCamera {
		if err := tracking.Start(); err != nil {
			log.Printf("Camera tracking unavailable (%v); waiting for a browser tracker", err)
		} else {
			go logCameraReady(tracking.Camera())
		}
	}
	defer tracking.Stop()

	if path != "" {
		w, err := config.NewWatcher(path)
		if err != nil {
			log.Printf("Not watching config: %v", err)
		} else {
			defer w.Close()
			go w.Follow(func(c config.Config) {
				session.RequestSensitivity(c.Game.Sensitivity.Initial)
			})
		}
	}

	g := render.New(session)

	if *useTray {
		t := tray.New()
		t.OnToggle(tracking.SetEnabled)
		t.OnHistory(func() {
			log.Printf("Round history: http://%s/api/rounds", cfg.Addr)
		})
		t.OnQuit(g.Quit)
		recorder.OnFinish = func(r *store.Round) {
			best := r.Score
			if b, err := st.Rounds().Best(); err == nil {
				best = b.Score
			}
			t.SetLastRound(r.Score, best)
		}
		t.Register()
	}

	if err := render.Run(g, "Obake Hunt", *scale); err != nil {
		log.Printf("Game exited: %v", err)
	}
}

// logCameraReady reports the negotiated camera size once frames arrive.
func logCameraReady(cam capture.Camera) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	w, h, err := capture.WaitReady(ctx, cam, 100*time.Millisecond)
	if err != nil {
		log.Printf("Camera produced no frames: %v", err)
		return
	}
	log.Printf("Camera ready: %dx%d", w, h)
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.obakehunt/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".obakehunt", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
