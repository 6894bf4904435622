package ambient

import "fmt"

// targetGuard records which mode currently owns a drawable target. Hardware
// draws into the host window surface and software into its own canvas; a
// mode has to release before the other may claim.
type targetGuard struct {
	owner RendererMode
}

func (g *targetGuard) claim(mode RendererMode) error {
	if g.owner != ModeUnresolved && g.owner != mode {
		return fmt.Errorf("%w: %s holds it, %s asked", ErrTargetInUse, g.owner, mode)
	}
	g.owner = mode
	return nil
}

func (g *targetGuard) release(mode RendererMode) {
	if g.owner == mode {
		g.owner = ModeUnresolved
	}
}

func (g *targetGuard) holder() RendererMode { return g.owner }
