package detector

import "gocv.io/x/gocv"

// MaxHands is the most hands the pipeline ever hands to the gesture layer.
const MaxHands = 2

// Detector defines the interface for hand detection implementations.
type Detector interface {
	// Detect analyzes a video frame and returns detected hand landmarks.
	// Returns an empty slice if no hands are detected.
	Detect(frame *gocv.Mat) ([]HandLandmarks, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for hand detection.
type Config struct {
	// MaxHands is the maximum number of hands to detect (default: 2).
	MaxHands int `yaml:"max_hands"`

	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64 `yaml:"min_confidence"`

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64 `yaml:"min_tracking_confidence"`

	// Script overrides the location of mediapipe_service.py.
	Script string `yaml:"script"`

	// Python overrides the interpreter used to run Script.
	Python string `yaml:"python"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MaxHands:        MaxHands,
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
	}
}

// Limit truncates hands to at most MaxHands entries.
func Limit(hands []HandLandmarks) []HandLandmarks {
	if len(hands) > MaxHands {
		return hands[:MaxHands]
	}
	return hands
}
