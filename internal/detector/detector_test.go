package detector

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func TestHandLandmarks_Scale(t *testing.T) {
	t.Run("distance between index and pinky tips", func(t *testing.T) {
		hand := HandLandmarks{}
		hand.Points[IndexTip] = Point3D{X: 0.3, Y: 0.4}
		hand.Points[PinkyTip] = Point3D{X: 0.0, Y: 0.0}

		if got := hand.Scale(); math.Abs(got-0.5) > epsilon {
			t.Errorf("Scale() = %f, want 0.5", got)
		}
	})

	t.Run("ignores depth", func(t *testing.T) {
		hand := HandLandmarks{}
		hand.Points[IndexTip] = Point3D{X: 0.1, Y: 0.0, Z: 5.0}
		hand.Points[PinkyTip] = Point3D{X: 0.0, Y: 0.0, Z: -5.0}

		if got := hand.Scale(); math.Abs(got-0.1) > epsilon {
			t.Errorf("Scale() = %f, want 0.1", got)
		}
	})

	t.Run("coincident landmarks are floored", func(t *testing.T) {
		hand := HandLandmarks{}

		got := hand.Scale()
		if got <= 0 {
			t.Fatalf("Scale() = %f, want > 0", got)
		}
		if got != MinHandScale {
			t.Errorf("Scale() = %f, want %f", got, MinHandScale)
		}
	})

	t.Run("always positive for fixtures", func(t *testing.T) {
		fixtures := []HandLandmarks{
			OpenPalmLandmarks(),
			FistLandmarks(),
			OKSignLandmarks(),
			IndexUpLandmarks(),
		}
		fixtures = append(fixtures, HeartLandmarks()...)

		for i, h := range fixtures {
			if h.Scale() <= 0 {
				t.Errorf("fixture %d: Scale() = %f, want > 0", i, h.Scale())
			}
		}
	})
}

func TestHandLandmarks_ExtendedFolded(t *testing.T) {
	hand := HandLandmarks{}
	hand.Points[IndexPIP] = Point3D{Y: 0.5}

	tests := []struct {
		name     string
		tipY     float64
		extended bool
		folded   bool
	}{
		{name: "well above pip", tipY: 0.3, extended: true, folded: false},
		{name: "inside margin above", tipY: 0.495, extended: false, folded: false},
		{name: "level with pip", tipY: 0.5, extended: false, folded: false},
		{name: "inside margin below", tipY: 0.505, extended: false, folded: false},
		{name: "well below pip", tipY: 0.7, extended: false, folded: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand.Points[IndexTip] = Point3D{Y: tt.tipY}

			if got := hand.Extended(IndexTip, IndexPIP, 1.0, 0.01); got != tt.extended {
				t.Errorf("Extended() = %v, want %v", got, tt.extended)
			}
			if got := hand.Folded(IndexTip, IndexPIP, 1.0, 0.01); got != tt.folded {
				t.Errorf("Folded() = %v, want %v", got, tt.folded)
			}
		})
	}
}

func TestHandLandmarks_Pixel(t *testing.T) {
	hand := HandLandmarks{}
	hand.Points[IndexTip] = Point3D{X: 0.25, Y: 0.5}

	x, y := hand.Pixel(IndexTip, 640, 480)
	if x != 160 || y != 240 {
		t.Errorf("Pixel() = (%f, %f), want (160, 240)", x, y)
	}
}

func TestCountFoldedExtended(t *testing.T) {
	fist := FistLandmarks()
	palm := OpenPalmLandmarks()

	if got := fist.CountFolded(Fingers[:], fist.Scale(), 0.05); got != 4 {
		t.Errorf("fist CountFolded() = %d, want 4", got)
	}
	if got := palm.CountExtended(Fingers[:], palm.Scale(), 0.05); got != 4 {
		t.Errorf("palm CountExtended() = %d, want 4", got)
	}
	if got := palm.CountFolded(OtherFingers[:], palm.Scale(), 0.05); got != 0 {
		t.Errorf("palm CountFolded() = %d, want 0", got)
	}
}

func TestResolveSides(t *testing.T) {
	labelled := func(s Side) HandLandmarks { return HandLandmarks{Handedness: s} }

	tests := []struct {
		name  string
		hands []HandLandmarks
		want  []Side
	}{
		{name: "no hands", hands: nil, want: []Side{}},
		{name: "labels kept", hands: []HandLandmarks{labelled(SideRight), labelled(SideLeft)}, want: []Side{SideRight, SideLeft}},
		{name: "single unlabelled defaults left", hands: []HandLandmarks{labelled(SideUnknown)}, want: []Side{SideLeft}},
		{name: "two unlabelled by order", hands: []HandLandmarks{labelled(SideUnknown), labelled(SideUnknown)}, want: []Side{SideLeft, SideRight}},
		{name: "unlabelled takes free side", hands: []HandLandmarks{labelled(SideUnknown), labelled(SideLeft)}, want: []Side{SideRight, SideLeft}},
		{name: "duplicate label reassigned", hands: []HandLandmarks{labelled(SideRight), labelled(SideRight)}, want: []Side{SideRight, SideLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveSides(tt.hands)
			if len(got) != len(tt.want) {
				t.Fatalf("ResolveSides() returned %d sides, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("side[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	tests := map[string]Side{
		"Left":  SideLeft,
		"right": SideRight,
		"":      SideUnknown,
		"both":  SideUnknown,
	}
	for in, want := range tests {
		if got := ParseSide(in); got != want {
			t.Errorf("ParseSide(%q) = %q, want %q", in, got, want)
		}
	}

	if SideUnknown.String() != "Unknown" {
		t.Errorf("SideUnknown.String() = %q, want Unknown", SideUnknown.String())
	}
}

func TestParseResponse(t *testing.T) {
	t.Run("decodes hands and caps at two", func(t *testing.T) {
		points := `[` + repeatPoint(NumLandmarks) + `]`
		line := []byte(`{"hands":[` +
			`{"points":` + points + `,"handedness":"Left","score":0.9},` +
			`{"points":` + points + `,"handedness":"Right","score":0.8},` +
			`{"points":` + points + `,"handedness":"Right","score":0.7}]}` + "\n")

		hands, err := parseResponse(line)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 2 {
			t.Fatalf("got %d hands, want 2", len(hands))
		}
		if hands[0].Handedness != SideLeft {
			t.Errorf("hands[0].Handedness = %q, want Left", hands[0].Handedness)
		}
		if hands[1].Points[IndexTip].X != 0.5 {
			t.Errorf("hands[1] index tip X = %f, want 0.5", hands[1].Points[IndexTip].X)
		}
	})

	t.Run("skips short landmark lists", func(t *testing.T) {
		line := []byte(`{"hands":[{"points":[` + repeatPoint(5) + `],"handedness":"Left"}]}`)

		hands, err := parseResponse(line)
		if err != nil {
			t.Fatalf("parseResponse() error = %v", err)
		}
		if len(hands) != 0 {
			t.Errorf("got %d hands, want 0", len(hands))
		}
	})

	t.Run("service error", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"hands":[],"error":"decode failed"}`)); err == nil {
			t.Error("expected error for service error reply")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := parseResponse([]byte(`{"hands":`)); err == nil {
			t.Error("expected error for malformed reply")
		}
	})
}

func repeatPoint(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ","
		}
		s += `{"x":0.5,"y":0.5,"z":0}`
	}
	return s
}

func TestMockDetector(t *testing.T) {
	t.Run("returns empty hands by default", func(t *testing.T) {
		mock := NewMockDetector()

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if hands != nil {
			t.Errorf("expected nil hands, got %v", hands)
		}
	})

	t.Run("returns configured hands capped at two", func(t *testing.T) {
		mock := NewMockDetector()
		mock.SetHands([]HandLandmarks{
			OKSignLandmarks(),
			OpenPalmLandmarks(),
			FistLandmarks(),
		})

		hands, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(hands) != 2 {
			t.Errorf("expected 2 hands, got %d", len(hands))
		}
		if mock.Calls() != 1 {
			t.Errorf("Calls() = %d, want 1", mock.Calls())
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockDetector()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		hands, err := mock.Detect(nil)

		if !errors.Is(err, expectedErr) {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if hands != nil {
			t.Errorf("expected nil hands when error is set, got %v", hands)
		}
	})

	t.Run("implements Detector interface", func(t *testing.T) {
		var _ Detector = (*MockDetector)(nil)
		var _ Detector = (*MediaPipeDetector)(nil)
	})
}

func TestFixtures(t *testing.T) {
	t.Run("open palm has all fingers above their pips", func(t *testing.T) {
		h := OpenPalmLandmarks()
		for _, f := range Fingers {
			if h.Points[f.Tip].Y >= h.Points[f.PIP].Y {
				t.Errorf("tip %d should be above pip %d", f.Tip, f.PIP)
			}
		}
	})

	t.Run("fist tucks the thumb below the index knuckle", func(t *testing.T) {
		h := FistLandmarks()
		if h.Points[ThumbTip].Y <= h.Points[IndexMCP].Y {
			t.Error("thumb tip should be below index MCP")
		}
	})

	t.Run("ok sign joins thumb and index tips", func(t *testing.T) {
		h := OKSignLandmarks()
		if d := Distance2D(h.Points[ThumbTip], h.Points[IndexTip]); d > epsilon {
			t.Errorf("thumb-index distance = %f, want 0", d)
		}
	})

	t.Run("heart hands are mirrored about the center", func(t *testing.T) {
		hands := HeartLandmarks()
		if len(hands) != 2 {
			t.Fatalf("got %d hands, want 2", len(hands))
		}
		mid := (hands[0].Points[Wrist].X + hands[1].Points[Wrist].X) / 2
		if math.Abs(mid-0.5) > epsilon {
			t.Errorf("wrist midpoint = %f, want 0.5", mid)
		}
		if math.Abs(hands[0].Scale()-hands[1].Scale()) > epsilon {
			t.Errorf("scales differ: %f vs %f", hands[0].Scale(), hands[1].Scale())
		}
	})
}
