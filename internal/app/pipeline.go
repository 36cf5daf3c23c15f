package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ayusman/dreamsketch/internal/capture"
	"github.com/ayusman/dreamsketch/internal/detector"
	"github.com/ayusman/dreamsketch/internal/mode"
	"gocv.io/x/gocv"
)

// keyEscape is the key code WaitKey reports for ESC.
const keyEscape = 27

// ProcessFrame runs the full per-frame pipeline on frame in place: hand
// detection, one machine tick, journaling, rendering and, when the server
// is enabled, JPEG encoding for the preview stream. A failing detector is
// logged and the frame is treated as having no hands.
func (a *App) ProcessFrame(now time.Time, frame *gocv.Mat) mode.Output {
	var hands []detector.HandLandmarks
	if a.IsEnabled() {
		var err error
		hands, err = a.Detector().Detect(frame)
		if err != nil {
			log.Printf("Error detecting hands: %v", err)
			hands = nil
		}
	}

	out := a.step(now, frame.Cols(), frame.Rows(), hands)
	a.renderer.Render(frame, out)

	if a.config.Server.Enabled {
		a.encode(frame)
	}

	a.publish(now, out, len(hands))
	return out
}

// encode stores frame as the latest preview JPEG.
func (a *App) encode(frame *gocv.Mat) {
	buf, err := gocv.IMEncode(gocv.JPEGFileExt, *frame)
	if err != nil {
		log.Printf("Error encoding preview: %v", err)
		return
	}
	defer buf.Close()

	// GetBytes aliases native memory freed by Close.
	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	a.storeJPEG(data)
}

// Run drives the pipeline at the camera's frame rate until ctx is done, the
// camera fails, or ESC is pressed in the preview window. Open must be
// called first. A camera that has run out of frames ends Run with an error
// wrapping capture.ErrNoFrames.
func (a *App) Run(ctx context.Context) error {
	var window *gocv.Window
	if a.config.Display.Window {
		window = gocv.NewWindow(a.config.Display.Title)
		defer window.Close()
	}

	camera := a.Camera()
	fps := camera.FPS()
	if fps <= 0 {
		fps = capture.DefaultFPS
	}

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	log.Printf("Pipeline running at %d FPS", fps)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		frame, err := camera.ReadFrame()
		if err != nil {
			return fmt.Errorf("read frame: %w", err)
		}

		a.ProcessFrame(time.Now(), frame)

		if window != nil {
			window.IMShow(*frame)
			if window.WaitKey(1) == keyEscape {
				frame.Close()
				return ErrQuit
			}
		}
		frame.Close()
	}
}
