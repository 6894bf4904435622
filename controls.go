package ambient

import "github.com/gekko3d/ambient/animrt/rt/core"

// Command is a host-independent user action.
type Command int

const (
	CmdNone Command = iota
	CmdNextArrangement
	CmdPrevArrangement
	CmdNextShape
	CmdMore
	CmdLess
	CmdFaster
	CmdSlower
	CmdQuit
)

// Apply returns p with c applied. CmdQuit and CmdNone leave p unchanged.
// When hardwareOnly is set, arrangement cycling skips arrangements the
// hardware renderer cannot draw.
func (c Command) Apply(p Params, hardwareOnly bool) Params {
	switch c {
	case CmdNextArrangement, CmdPrevArrangement:
		step := 1
		if c == CmdPrevArrangement {
			step = -1
		}
		p.Arrangement = cycle(p.Arrangement, step, hardwareOnly)
	case CmdNextShape:
		p.Shape = (p.Shape + 1) % (core.Pyramid + 1)
	case CmdMore:
		p.InstanceCount = p.Arrangement.Clamp(p.InstanceCount + max(p.InstanceCount/4, 1))
	case CmdLess:
		p.InstanceCount = p.Arrangement.Clamp(p.InstanceCount - max(p.InstanceCount/5, 1))
	case CmdFaster:
		p.CameraSpeed = core.Clamp(p.CameraSpeed*1.25, 0.05, 20)
	case CmdSlower:
		p.CameraSpeed = core.Clamp(p.CameraSpeed/1.25, 0.05, 20)
	}
	return p
}

func cycle(a core.Arrangement, step int, hardwareOnly bool) core.Arrangement {
	all := core.Arrangements()
	idx := 0
	for i, x := range all {
		if x == a {
			idx = i
			break
		}
	}
	for range all {
		idx = (idx + step + len(all)) % len(all)
		if !hardwareOnly || all[idx].HardwareCapable() {
			return all[idx]
		}
	}
	return a
}

// CommandForRune maps the keys shared by every host.
func CommandForRune(r rune) Command {
	switch r {
	case 'n', 'l':
		return CmdNextArrangement
	case 'p', 'h':
		return CmdPrevArrangement
	case 's':
		return CmdNextShape
	case '+', '=':
		return CmdMore
	case '-', '_':
		return CmdLess
	case ']':
		return CmdFaster
	case '[':
		return CmdSlower
	case 'q':
		return CmdQuit
	}
	return CmdNone
}
