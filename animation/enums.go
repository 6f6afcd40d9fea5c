package animation

import (
	"errors"
	"fmt"
	"strings"
)

// Animation playback direction.
type Direction int

const (
	DirectionNormal Direction = iota
	DirectionReverse
	DirectionAlternate
	DirectionAlternateReverse
)

var ErrInvalidDirection = errors.New("not a valid Direction")

var directionNames = map[Direction]string{
	DirectionNormal:           "normal",
	DirectionReverse:          "reverse",
	DirectionAlternate:        "alternate",
	DirectionAlternateReverse: "alternate-reverse",
}

func (x Direction) String() string {
	if s, ok := directionNames[x]; ok {
		return s
	}
	return fmt.Sprintf("Direction(%d)", x)
}

func (x Direction) IsValid() bool {
	_, ok := directionNames[x]
	return ok
}

func ParseDirection(name string) (Direction, error) {
	for k, v := range directionNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return DirectionNormal, fmt.Errorf("%s is %w", name, ErrInvalidDirection)
}

func (x Direction) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// Which keyframe snapshot applies outside of active animation window.
type FillMode int

const (
	FillModeNone FillMode = iota
	FillModeForwards
	FillModeBackwards
	FillModeBoth
)

var ErrInvalidFillMode = errors.New("not a valid FillMode")

var fillModeNames = map[FillMode]string{
	FillModeNone:      "none",
	FillModeForwards:  "forwards",
	FillModeBackwards: "backwards",
	FillModeBoth:      "both",
}

func (x FillMode) String() string {
	if s, ok := fillModeNames[x]; ok {
		return s
	}
	return fmt.Sprintf("FillMode(%d)", x)
}

func (x FillMode) IsValid() bool {
	_, ok := fillModeNames[x]
	return ok
}

func ParseFillMode(name string) (FillMode, error) {
	for k, v := range fillModeNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return FillModeNone, fmt.Errorf("%s is %w", name, ErrInvalidFillMode)
}

func (x FillMode) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *FillMode) UnmarshalText(text []byte) error {
	v, err := ParseFillMode(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// Requested play state of animation.
type PlayState int

const (
	PlayStateRunning PlayState = iota
	PlayStatePaused
)

var ErrInvalidPlayState = errors.New("not a valid PlayState")

var playStateNames = map[PlayState]string{
	PlayStateRunning: "running",
	PlayStatePaused:  "paused",
}

func (x PlayState) String() string {
	if s, ok := playStateNames[x]; ok {
		return s
	}
	return fmt.Sprintf("PlayState(%d)", x)
}

func (x PlayState) IsValid() bool {
	_, ok := playStateNames[x]
	return ok
}

func ParsePlayState(name string) (PlayState, error) {
	for k, v := range playStateNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return PlayStateRunning, fmt.Errorf("%s is %w", name, ErrInvalidPlayState)
}

func (x PlayState) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *PlayState) UnmarshalText(text []byte) error {
	v, err := ParsePlayState(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// Controller lifecycle state, pause is tracked separately.
type State int

const (
	StateNotStarted State = iota
	StateRunning
	StateCompleted
)

var ErrInvalidState = errors.New("not a valid State")

var stateNames = map[State]string{
	StateNotStarted: "not-started",
	StateRunning:    "running",
	StateCompleted:  "completed",
}

func (x State) String() string {
	if s, ok := stateNames[x]; ok {
		return s
	}
	return fmt.Sprintf("State(%d)", x)
}

func (x State) IsValid() bool {
	_, ok := stateNames[x]
	return ok
}

func ParseState(name string) (State, error) {
	for k, v := range stateNames {
		if strings.EqualFold(v, name) {
			return k, nil
		}
	}
	return StateNotStarted, fmt.Errorf("%s is %w", name, ErrInvalidState)
}

func (x State) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

func (x *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}
