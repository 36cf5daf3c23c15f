package gesture

import (
	"testing"

	"github.com/ayusman/dreamsketch/internal/detector"
)

func hands(h ...detector.HandLandmarks) []detector.HandLandmarks {
	return h
}

func shift(h detector.HandLandmarks, dx, dy float64) detector.HandLandmarks {
	for i := range h.Points {
		h.Points[i].X += dx
		h.Points[i].Y += dy
	}
	return h
}

func TestIsOKSign(t *testing.T) {
	cfg := DefaultThresholds().OK

	tests := []struct {
		name  string
		hands []detector.HandLandmarks
		want  bool
	}{
		{name: "no hands", hands: nil, want: false},
		{name: "ok sign", hands: hands(detector.OKSignLandmarks()), want: true},
		{name: "two hands", hands: hands(detector.OKSignLandmarks(), detector.OKSignLandmarks()), want: false},
		{name: "ok plus incidental hand", hands: hands(detector.OKSignLandmarks(), detector.OpenPalmLandmarks()), want: false},
		{name: "open palm", hands: hands(detector.OpenPalmLandmarks()), want: false},
		{name: "index up", hands: hands(detector.IndexUpLandmarks()), want: false},
		{name: "fist", hands: hands(detector.FistLandmarks()), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOKSign(tt.hands, cfg); got != tt.want {
				t.Errorf("IsOKSign() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("coincident tips with unit scale", func(t *testing.T) {
		h := detector.HandLandmarks{}
		h.Points[detector.IndexTip] = detector.Point3D{X: 1, Y: 0}
		h.Points[detector.PinkyTip] = detector.Point3D{X: 0, Y: 0}
		h.Points[detector.ThumbTip] = h.Points[detector.IndexTip]

		if !IsOKSign(hands(h), cfg) {
			t.Error("expected OK sign for coincident thumb and index tips")
		}
	})

	t.Run("folded requirement", func(t *testing.T) {
		strict := cfg
		strict.MinOthersFolded = 2

		if IsOKSign(hands(detector.OKSignLandmarks()), strict) {
			t.Error("OK fixture has extended fingers and should fail the folded requirement")
		}
	})
}

func TestOKReleased(t *testing.T) {
	tests := []struct {
		prev, now, want bool
	}{
		{prev: false, now: false, want: false},
		{prev: false, now: true, want: false},
		{prev: true, now: true, want: false},
		{prev: true, now: false, want: true},
	}

	for _, tt := range tests {
		if got := OKReleased(tt.prev, tt.now); got != tt.want {
			t.Errorf("OKReleased(%v, %v) = %v, want %v", tt.prev, tt.now, got, tt.want)
		}
	}
}

func TestIsIndexUp(t *testing.T) {
	cfg := DefaultThresholds().IndexUp

	tests := []struct {
		name  string
		hands []detector.HandLandmarks
		want  bool
	}{
		{name: "no hands", hands: nil, want: false},
		{name: "index up", hands: hands(detector.IndexUpLandmarks()), want: true},
		{name: "two pointing hands", hands: hands(detector.IndexUpLandmarks(), detector.IndexUpAt(0.2, 0.8)), want: false},
		{name: "open palm", hands: hands(detector.OpenPalmLandmarks()), want: false},
		{name: "fist", hands: hands(detector.FistLandmarks()), want: false},
		{name: "ok sign", hands: hands(detector.OKSignLandmarks()), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsIndexUp(tt.hands, cfg); got != tt.want {
				t.Errorf("IsIndexUp() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("one other finger raised still counts", func(t *testing.T) {
		h := detector.BuildHand(detector.SideRight, 0.5, 0.8, 1, [4]bool{true, false, false, true})
		if !IsIndexUp(hands(h), cfg) {
			t.Error("two folded fingers should be enough")
		}
	})

	t.Run("two other fingers raised fails", func(t *testing.T) {
		h := detector.BuildHand(detector.SideRight, 0.5, 0.8, 1, [4]bool{true, true, false, true})
		if IsIndexUp(hands(h), cfg) {
			t.Error("only one folded finger should not count as index up")
		}
	})
}

func TestPoses(t *testing.T) {
	cfg := DefaultThresholds().Pose

	tests := []struct {
		name string
		hand detector.HandLandmarks
		fist bool
		palm bool
	}{
		{name: "fist", hand: detector.FistLandmarks(), fist: true, palm: false},
		{name: "open palm", hand: detector.OpenPalmLandmarks(), fist: false, palm: true},
		{name: "index up", hand: detector.IndexUpLandmarks(), fist: false, palm: false},
		{name: "ok sign", hand: detector.OKSignLandmarks(), fist: false, palm: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFrontFist(&tt.hand, cfg); got != tt.fist {
				t.Errorf("IsFrontFist() = %v, want %v", got, tt.fist)
			}
			if got := IsPalmOpen(&tt.hand, cfg); got != tt.palm {
				t.Errorf("IsPalmOpen() = %v, want %v", got, tt.palm)
			}
		})
	}

	t.Run("untucked thumb is not a fist", func(t *testing.T) {
		h := detector.BuildHand(detector.SideRight, 0.5, 0.8, 1, [4]bool{})
		h.Points[detector.ThumbTip].Y = h.Points[detector.IndexMCP].Y - 0.05
		if IsFrontFist(&h, cfg) {
			t.Error("fist with raised thumb should be rejected when ThumbTucked is set")
		}

		loose := cfg
		loose.ThumbTucked = false
		if !IsFrontFist(&h, loose) {
			t.Error("fist with raised thumb should pass when ThumbTucked is off")
		}
	})

	t.Run("orientation gate", func(t *testing.T) {
		gated := cfg
		gated.Orientation = true

		fist := detector.FistLandmarks()
		fist.Points[detector.MiddleTip].Z = 0.1
		if !IsFrontFist(&fist, gated) {
			t.Error("back of hand toward camera should pass the fist gate")
		}

		palm := detector.OpenPalmLandmarks()
		palm.Points[detector.MiddleTip].Z = 0.1
		if IsPalmOpen(&palm, gated) {
			t.Error("back of hand toward camera should fail the palm gate")
		}
		palm.Points[detector.MiddleTip].Z = -0.1
		if !IsPalmOpen(&palm, gated) {
			t.Error("palm toward camera should pass the palm gate")
		}
	})
}

func TestIsTwoHandHeart(t *testing.T) {
	cfg := DefaultThresholds().Heart
	heart := detector.HeartLandmarks()

	t.Run("heart pose", func(t *testing.T) {
		if !IsTwoHandHeart(heart, cfg) {
			t.Error("expected heart for fixture")
		}
	})

	t.Run("requires exactly two hands", func(t *testing.T) {
		if IsTwoHandHeart(nil, cfg) {
			t.Error("no hands should not be a heart")
		}
		if IsTwoHandHeart(heart[:1], cfg) {
			t.Error("one hand should not be a heart")
		}
	})

	t.Run("off center", func(t *testing.T) {
		moved := hands(shift(heart[0], 0.3, 0), shift(heart[1], 0.3, 0))
		if IsTwoHandHeart(moved, cfg) {
			t.Error("heart far from center should be rejected")
		}
	})

	t.Run("wrists not level", func(t *testing.T) {
		tilted := hands(heart[0], shift(heart[1], 0, 0.3))
		if IsTwoHandHeart(tilted, cfg) {
			t.Error("hands at different heights should be rejected")
		}
	})

	t.Run("hands apart", func(t *testing.T) {
		apart := hands(shift(heart[0], -0.15, 0), shift(heart[1], 0.15, 0))
		if IsTwoHandHeart(apart, cfg) {
			t.Error("separated hands should be rejected")
		}
	})

	t.Run("open fingers", func(t *testing.T) {
		open := hands(detector.OpenPalmAt(detector.SideLeft, 0.4, 0.7), detector.OpenPalmAt(detector.SideRight, 0.6, 0.7))
		if IsTwoHandHeart(open, cfg) {
			t.Error("two open palms should be rejected")
		}
	})
}
