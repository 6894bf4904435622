package ambient

import (
	"context"
	"time"

	"github.com/gekko3d/ambient/animrt/rt/gpu"
	"github.com/gekko3d/ambient/animrt/rt/soft"
	"github.com/google/uuid"
)

type EngineBuilder struct {
	log           Logger
	ctx           context.Context
	probe         ProbeFunc
	factory       HardwareFactory
	seed          int64
	forceSoftware bool
	params        Params
	cssW, cssH    float64
	dpr           float64
}

func NewEngineBuilder() *EngineBuilder {
	return &EngineBuilder{
		ctx:    context.Background(),
		seed:   time.Now().UnixNano(),
		params: DefaultParams(),
		cssW:   800,
		cssH:   600,
		dpr:    1,
	}
}

func (b *EngineBuilder) UseLogger(log Logger) *EngineBuilder {
	b.log = log
	return b
}

// UseContext bounds the capability probe.
func (b *EngineBuilder) UseContext(ctx context.Context) *EngineBuilder {
	b.ctx = ctx
	return b
}

// UseProbe replaces the default adapter probe.
func (b *EngineBuilder) UseProbe(probe ProbeFunc) *EngineBuilder {
	b.probe = probe
	return b
}

// UseHardware installs the factory used when hardware mode is selected.
func (b *EngineBuilder) UseHardware(factory HardwareFactory) *EngineBuilder {
	b.factory = factory
	return b
}

func (b *EngineBuilder) UseSeed(seed int64) *EngineBuilder {
	b.seed = seed
	return b
}

func (b *EngineBuilder) UseParams(p Params) *EngineBuilder {
	b.params = p
	return b
}

func (b *EngineBuilder) UseSize(cssWidth, cssHeight, dpr float64) *EngineBuilder {
	b.cssW, b.cssH, b.dpr = cssWidth, cssHeight, dpr
	return b
}

// ForceSoftware makes the probe report no hardware.
func (b *EngineBuilder) ForceSoftware(force bool) *EngineBuilder {
	b.forceSoftware = force
	return b
}

func (b *EngineBuilder) Build() *Engine {
	log := orNop(b.log)
	probe := b.probe
	switch {
	case b.forceSoftware || b.factory == nil:
		probe = func(context.Context) bool { return false }
	case probe == nil:
		probe = gpu.Probe
	}

	e := &Engine{
		id:      uuid.New(),
		log:     log,
		ctx:     b.ctx,
		sel:     NewSelector(probe, log),
		factory: b.factory,
		soft:    soft.NewEngine(log, b.seed),
		params:  b.params.Normalize(),
	}
	e.width, e.height = BackingSize(b.cssW, b.cssH, b.dpr)
	log.Debugf("engine %s built (%dx%d, %s)", e.shortID(), e.width, e.height, e.params.Arrangement)
	return e
}
