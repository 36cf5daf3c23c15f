package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ayusman/dreamsketch/internal/app"
	"github.com/ayusman/dreamsketch/internal/config"
	"github.com/ayusman/dreamsketch/internal/server"
	"github.com/ayusman/dreamsketch/internal/store"
	"github.com/ayusman/dreamsketch/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	camera := flag.Int("camera", 0, "camera device index")
	listen := flag.String("listen", "", "serve the HTTP API on this address")
	journal := flag.String("journal", "", `session journal path ("off" disables it)`)
	useTray := flag.Bool("tray", false, "show the system tray menu")
	headless := flag.Bool("headless", false, "run without the preview window")
	flag.Parse()

	fmt.Println("DreamSketch - Gesture Drawing")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Flags given on the command line override the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "camera":
			cfg.Camera.Device = *camera
		case "listen":
			cfg.Server.Enabled = true
			cfg.Server.Listen = *listen
		case "journal":
			if *journal == "off" {
				cfg.Journal.Enabled = false
			} else {
				cfg.Journal.Enabled = true
				cfg.Journal.Path = *journal
			}
		case "tray":
			cfg.Tray.Enabled = *useTray
		case "headless":
			cfg.Display.Window = !*headless
		}
	})

	// The tray owns the main thread, which the preview window also needs.
	if cfg.Tray.Enabled && cfg.Display.Window {
		log.Println("Tray enabled, running without the preview window")
		cfg.Display.Window = false
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	var st *store.Store
	if cfg.Journal.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Journal.Path), 0755); err != nil {
			log.Fatalf("Failed to create data directory: %v", err)
		}
		st, err = store.New(cfg.Journal.Path)
		if err != nil {
			log.Fatalf("Failed to initialize store: %v", err)
		}
		defer st.Close()
		log.Printf("Journal: %s", cfg.Journal.Path)
	}

	a := app.New(cfg, st)
	if err := a.Open(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var srv *server.Server
	if cfg.Server.Enabled {
		srv = server.New(server.Config{
			Store:  st,
			State:  a,
			Frames: a,
			Hub:    a.Hub(),
		})
		go func() {
			fmt.Printf("Starting server on %s\n", cfg.Server.Listen)
			if err := srv.ListenAndServe(cfg.Server.Listen); err != nil {
				log.Printf("Server failed: %v", err)
			}
		}()
	}

	if cfg.Tray.Enabled {
		err = runWithTray(ctx, stop, a)
	} else {
		err = a.Run(ctx)
	}

	switch {
	case err == nil, errors.Is(err, app.ErrQuit):
	default:
		log.Printf("Pipeline stopped: %v", err)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown: %v", err)
		}
		cancel()
	}

	if err := a.Close(); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	log.Printf("Processed %d frames", a.State().Frames)
}

// runWithTray runs the pipeline in the background and the tray on the main
// goroutine. Either side finishing stops the other.
func runWithTray(ctx context.Context, stop context.CancelFunc, a *app.App) error {
	t := tray.New(a.IsEnabled())
	t.OnToggle(a.SetEnabled)
	t.OnQuit(stop)
	a.OnState(func(s server.State) {
		t.SetMode(s.Mode)
		t.SetLastGesture(s.LastEvent)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.Run(ctx)
		t.Quit()
	}()

	t.Run()
	stop()
	return <-errCh
}
