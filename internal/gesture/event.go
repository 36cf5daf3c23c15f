package gesture

import "github.com/ayusman/dreamsketch/internal/detector"

// Kind identifies a recognized gesture.
type Kind string

const (
	KindNone         Kind = ""
	KindOKSign       Kind = "ok_sign"
	KindIndexUp      Kind = "index_up"
	KindHeart        Kind = "heart"
	KindFistPalmFlip Kind = "fist_palm_flip"
	KindPalmSweep    Kind = "palm_sweep"
)

// Event is a gesture recognized on one frame. Side is set for
// KindFistPalmFlip and KindPalmSweep, Direction for KindPalmSweep.
type Event struct {
	Kind      Kind          `json:"kind"`
	Side      detector.Side `json:"side,omitempty"`
	Direction Direction     `json:"direction,omitempty"`
}

// Label returns the short on-screen text for the event.
func (e Event) Label() string {
	switch e.Kind {
	case KindOKSign:
		return "OK"
	case KindIndexUp:
		return "Index up"
	case KindHeart:
		return "Heart"
	case KindFistPalmFlip:
		if e.Side == detector.SideRight {
			return "Sakura"
		}
		return "Rose"
	case KindPalmSweep:
		if e.Direction == DirectionLeft {
			return "Meteor <-"
		}
		return "Meteor ->"
	default:
		return ""
	}
}
