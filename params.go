package ambient

import "github.com/gekko3d/ambient/animrt/rt/core"

// Params is the caller-supplied description of what to animate. It is read
// by value on every frame and never modified by the engine.
type Params = core.Params

type (
	Arrangement = core.Arrangement
	Shape       = core.Shape
	RGB         = core.RGB
)

func DefaultParams() Params { return core.DefaultParams() }
