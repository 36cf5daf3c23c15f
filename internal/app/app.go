// Package app wires capture, hand detection, the mode machine, rendering
// and the session journal into the running DreamSketch application.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/dreamsketch/internal/capture"
	"github.com/ayusman/dreamsketch/internal/config"
	"github.com/ayusman/dreamsketch/internal/detector"
	"github.com/ayusman/dreamsketch/internal/gesture"
	"github.com/ayusman/dreamsketch/internal/mode"
	"github.com/ayusman/dreamsketch/internal/render"
	"github.com/ayusman/dreamsketch/internal/server"
	"github.com/ayusman/dreamsketch/internal/store"
)

// SettingEnabled is the settings key that persists the recognition toggle.
const SettingEnabled = "enabled"

// ErrQuit is returned by Run when the user closes the preview with ESC.
var ErrQuit = errors.New("quit requested")

// App is the main application that turns camera frames into drawings.
type App struct {
	config   *config.Config
	camera   capture.Camera
	detector detector.Detector
	machine  *mode.Machine
	renderer *render.Renderer
	store    *store.Store
	session  *store.Session
	hub      *server.Hub

	mu        sync.RWMutex
	enabled   bool
	reset     bool
	state     server.State
	jpeg      []byte
	seq       uint64
	frames    int64
	observers []func(server.State)
}

// New creates an App for cfg. st may be nil to run without a journal.
func New(cfg *config.Config, st *store.Store) *App {
	a := &App{
		config:   cfg,
		camera:   capture.NewCamera(cfg.Camera),
		machine:  mode.New(cfg.Mode),
		renderer: render.NewRenderer(cfg.Particles, uint64(time.Now().UnixNano()), cfg.Display.HUD),
		store:    st,
		hub:      server.NewHub(),
		enabled:  true,
	}

	if st != nil {
		a.enabled = st.Settings().Bool(SettingEnabled, true)
	}
	a.state = server.State{Mode: mode.Idle.String(), Enabled: a.enabled}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(cfg.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture recognition. Disabling returns the
// machine to Idle and drops the stroke in progress. The choice is persisted in the journal when one is open.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	changed := a.enabled != enabled
	a.enabled = enabled
	a.state.Enabled = enabled
	if changed && !enabled {
		// The machine belongs to the pipeline goroutine; it resets on its next step.
		a.reset = true
		a.state.Mode = mode.Idle.String()
	}
	a.mu.Unlock()

	if a.store != nil {
		if err := a.store.Settings().SetBool(SettingEnabled, enabled); err != nil {
			log.Printf("Failed to persist enabled state: %v", err)
		}
	}
	log.Printf("Gesture recognition enabled: %v", enabled)
}

// IsEnabled returns whether gesture recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// SetCamera replaces the capture device. It must be called before Open.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Hub returns the live-feed hub the app publishes its state to.
func (a *App) Hub() *server.Hub {
	return a.hub
}

// Renderer returns the frame renderer.
func (a *App) Renderer() *render.Renderer {
	return a.renderer
}

// Session returns the journal session of this run, or nil.
func (a *App) Session() *store.Session {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session
}

// OnState registers fn to be called with the live state after every frame.
// Callbacks run on the pipeline goroutine and must not block.
func (a *App) OnState(fn func(server.State)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.observers = append(a.observers, fn)
}

// State returns the latest live snapshot.
func (a *App) State() server.State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// LatestJPEG returns the most recent composited frame and its sequence
// number. It is empty unless the server is enabled.
func (a *App) LatestJPEG() ([]byte, uint64) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.jpeg, a.seq
}

// Open starts the camera and, when a journal is configured, a new session.
func (a *App) Open() error {
	if err := a.Camera().Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	if a.store != nil {
		sess := &store.Session{}
		if err := a.store.Sessions().Create(sess); err != nil {
			a.Camera().Close()
			return fmt.Errorf("start session: %w", err)
		}
		a.mu.Lock()
		a.session = sess
		a.state.SessionID = sess.ID
		a.mu.Unlock()
		log.Printf("Journal session %s started", sess.ID)
	}

	return nil
}

// Close ends the journal session and releases the camera, the detector and
// the live-feed hub.
func (a *App) Close() error {
	var errs []error

	a.mu.Lock()
	sess, frames := a.session, a.frames
	a.session = nil
	a.mu.Unlock()

	if sess != nil {
		if err := a.store.Sessions().End(sess.ID, time.Now(), frames); err != nil {
			errs = append(errs, fmt.Errorf("end session: %w", err))
		}
	}

	if err := a.Camera().Close(); err != nil {
		errs = append(errs, fmt.Errorf("close camera: %w", err))
	}

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close detector: %w", err))
		}
	}

	a.hub.Close()
	return errors.Join(errs...)
}

// ProcessHands runs one tick on already detected hands for a frame of the
// given size: the machine advances, events are journaled, the particle
// system steps and the live state is published. It draws nothing.
func (a *App) ProcessHands(now time.Time, width, height int, hands []detector.HandLandmarks) mode.Output {
	out := a.step(now, width, height, hands)
	a.renderer.Apply(out)
	a.publish(now, out, len(hands))
	return out
}

// step advances the machine unless recognition is disabled, and journals
// the recognized events.
func (a *App) step(now time.Time, width, height int, hands []detector.HandLandmarks) mode.Output {
	a.mu.Lock()
	enabled, reset := a.enabled, a.reset
	a.reset = false
	a.mu.Unlock()

	if reset {
		a.machine.Reset()
	}
	if !enabled {
		return mode.Output{Mode: mode.Idle, ModeLabel: mode.Idle.String()}
	}

	before := a.machine.Mode()
	out := a.machine.Tick(now, mode.Frame{Width: width, Height: height, Hands: hands})

	for _, ev := range out.Events {
		log.Printf("Gesture %s (%s) in %s -> %s", ev.Kind, ev.Label(), before, out.Mode)
		a.journal(ev, before, now)
	}
	if out.Mode != before {
		log.Printf("Mode %s -> %s", before, out.Mode)
	}

	return out
}

// journal appends ev to the session. Failures are logged, not fatal.
func (a *App) journal(ev gesture.Event, m mode.Mode, now time.Time) {
	sess := a.Session()
	if sess == nil {
		return
	}

	e := &store.Event{
		SessionID: sess.ID,
		Kind:      string(ev.Kind),
		Side:      string(ev.Side),
		Direction: string(ev.Direction),
		Mode:      m.String(),
		At:        now,
	}
	if err := a.store.Events().Append(e); err != nil {
		log.Printf("Failed to journal %s: %v", ev.Kind, err)
	}
}

// publish updates the live state, notifies observers and pushes the state
// to websocket clients.
func (a *App) publish(now time.Time, out mode.Output, hands int) {
	a.mu.Lock()
	a.frames++
	s := &a.state
	s.Mode = out.ModeLabel
	s.Gesture = out.GestureLabel
	s.Frames = a.frames
	s.Hands = hands
	s.Stroke = len(a.machine.Trajectory())
	s.Particles = a.renderer.Particles().Len()
	s.ObservedAt = now.UnixMilli()
	if n := len(out.Events); n > 0 {
		s.LastEvent = out.Events[n-1].Label()
	}
	state := a.state
	observers := a.observers
	a.mu.Unlock()

	for _, fn := range observers {
		fn(state)
	}
	a.hub.Publish(state)
}

// storeJPEG keeps buf as the latest preview frame.
func (a *App) storeJPEG(buf []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.jpeg = buf
	a.seq++
}
