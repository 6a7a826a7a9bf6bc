package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	MinWeight = 0
	MaxWeight = 10
)

// WeightKind is one matching dimension a user can weigh.
type WeightKind string

const (
	WeightDistance WeightKind = "distance"
	WeightAge      WeightKind = "age"
	WeightFood     WeightKind = "food"
	WeightHobbies  WeightKind = "hobbies"
	WeightMusic    WeightKind = "music"
)

// WeightKinds lists every kind in display order.
var WeightKinds = []WeightKind{WeightDistance, WeightAge, WeightFood, WeightHobbies, WeightMusic}

// ParseWeightKind maps a route segment onto a WeightKind.
func ParseWeightKind(s string) (WeightKind, bool) {
	for _, k := range WeightKinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// ClampWeight pins v into [MinWeight, MaxWeight].
func ClampWeight(v int) int {
	return max(MinWeight, min(MaxWeight, v))
}

// ParseWeight reads user input the way a numeric slider does: the leading
// integer counts, anything without one is 0, and the result is clamped.
func ParseWeight(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return MinWeight
	}
	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return MinWeight
		}
		return MaxWeight
	}
	return ClampWeight(n)
}

// WeightFromFloat rounds a backend value and clamps it.
func WeightFromFloat(f float64) int {
	if math.IsNaN(f) {
		return MinWeight
	}
	if math.IsInf(f, 0) {
		if f > 0 {
			return MaxWeight
		}
		return MinWeight
	}
	return ClampWeight(int(math.Round(f)))
}

// Weights is the full weight vector of a user.
type Weights map[WeightKind]int

// WeightDraft is validated right before a weight is sent.
type WeightDraft struct {
	Number int `json:"number" validate:"min=0,max=10"`
}
