package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoDifficulty is returned when a run is started before a tier is picked.
	ErrNoDifficulty = errors.New("no difficulty selected")
	// ErrUnknownDifficulty is returned for tier names outside the table.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

// Difficulty names a tier of the difficulty table.
type Difficulty string

const (
	DifficultyNone   Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties returns the tiers in menu order.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficulty converts a user-supplied name into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return d, nil
	case DifficultyNone:
		return DifficultyNone, ErrNoDifficulty
	}
	return DifficultyNone, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}

// Label returns a capitalized display name.
func (d Difficulty) Label() string {
	if d == DifficultyNone {
		return "-"
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Tier looks up the physics tier for a difficulty.
func (c Config) Tier(d Difficulty) (Tier, error) {
	if d == DifficultyNone {
		return Tier{}, ErrNoDifficulty
	}
	t, ok := c.Difficulties[d]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, string(d))
	}
	return t, nil
}
