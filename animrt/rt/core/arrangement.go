package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownArrangement = errors.New("core: unknown arrangement")
	ErrUnknownShape       = errors.New("core: unknown shape")
)

// Arrangement identifies one animation behavior.
type Arrangement int

const (
	Radial Arrangement = iota
	Spiral
	Grid
	Wave
	Cannon
	Tunnel
	Helix
	Matrix
	Orbits
	Vortex
	Constellation
	Kaleidoscope
	Stream
	Explosion
	FishSchool
	Murmuration
	Pendulums
	Dominoes
	Compass
	Sunflowers
	SolarPanels
	Windmills
	Surfers
	Sailboats
	Forest
	Flags

	arrangementCount
)

type arrangementInfo struct {
	name     string
	cap      int
	hardware bool
}

var arrangements = [arrangementCount]arrangementInfo{
	Radial:        {"radial", 4000, true},
	Spiral:        {"spiral", 4000, true},
	Grid:          {"grid", 4000, true},
	Wave:          {"wave", 4000, true},
	Cannon:        {"cannon", 1500, false},
	Tunnel:        {"tunnel", 1500, false},
	Helix:         {"helix", 400, false},
	Matrix:        {"matrix", 1200, false},
	Orbits:        {"orbits", 800, false},
	Vortex:        {"vortex", 1200, false},
	Constellation: {"constellation", 120, false},
	Kaleidoscope:  {"kaleidoscope", 960, false},
	Stream:        {"stream", 800, false},
	Explosion:     {"explosion", 1000, false},
	FishSchool:    {"fishSchool", 150, false},
	Murmuration:   {"murmuration", 600, false},
	Pendulums:     {"pendulums", 35, false},
	Dominoes:      {"dominoes", 300, false},
	Compass:       {"compass", 400, false},
	Sunflowers:    {"sunflowers", 300, false},
	SolarPanels:   {"solarPanels", 300, false},
	Windmills:     {"windmills", 120, false},
	Surfers:       {"surfers", 24, false},
	Sailboats:     {"sailboats", 40, false},
	Forest:        {"forest", 300, false},
	Flags:         {"flags", 60, false},
}

// Arrangements lists every arrangement in declaration order.
func Arrangements() []Arrangement {
	out := make([]Arrangement, arrangementCount)
	for i := range out {
		out[i] = Arrangement(i)
	}
	return out
}

func (a Arrangement) Valid() bool { return a >= 0 && a < arrangementCount }

func (a Arrangement) String() string {
	if !a.Valid() {
		return fmt.Sprintf("arrangement(%d)", int(a))
	}
	return arrangements[a].name
}

// Cap is the largest population the arrangement will allocate.
func (a Arrangement) Cap() int {
	if !a.Valid() {
		return 1
	}
	return arrangements[a].cap
}

// HardwareCapable reports whether the instanced pipeline can draw the arrangement.
func (a Arrangement) HardwareCapable() bool {
	return a.Valid() && arrangements[a].hardware
}

// Clamp bounds a requested instance count to [1, Cap].
func (a Arrangement) Clamp(n int) int {
	if n < 1 {
		return 1
	}
	if c := a.Cap(); n > c {
		return c
	}
	return n
}

// ParseArrangement matches names case-insensitively, ignoring '-' and '_'.
func ParseArrangement(name string) (Arrangement, error) {
	key := foldName(name)
	for i, info := range arrangements {
		if foldName(info.name) == key {
			return Arrangement(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownArrangement, name)
}

func (a Arrangement) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownArrangement, int(a))
	}
	return []byte(a.String()), nil
}

func (a *Arrangement) UnmarshalText(b []byte) error {
	v, err := ParseArrangement(string(b))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Shape is the primitive solid drawn for each instance.
type Shape int

const (
	Cube Shape = iota
	Sphere
	Pyramid
)

var shapeNames = [...]string{Cube: "cube", Sphere: "sphere", Pyramid: "pyramid"}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return fmt.Sprintf("shape(%d)", int(s))
	}
	return shapeNames[s]
}

func ParseShape(name string) (Shape, error) {
	key := foldName(name)
	for i, n := range shapeNames {
		if n == key {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
}

func (s Shape) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Shape) UnmarshalText(b []byte) error {
	v, err := ParseShape(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
