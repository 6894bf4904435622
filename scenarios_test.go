package ambient

import (
	"context"
	"time"

	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/gekko3d/ambient/animrt/rt/geom"
	"github.com/gekko3d/ambient/animrt/rt/gpu"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Engine", func() {
	var (
		rig *hardwareRig
		e   *Engine
	)

	start := func(supported bool, p Params) {
		e = newTestEngine(rig, supported, p)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		Expect(e.WaitReady(ctx)).To(Succeed())
	}

	BeforeEach(func() {
		rig = &hardwareRig{}
	})

	AfterEach(func() {
		if e != nil {
			e.Stop()
		}
	})

	Context("without hardware support", func() {
		DescribeTable("always draws in software",
			func(a core.Arrangement) {
				start(false, params(a, core.Cube, 100))
				Expect(e.Mode()).To(Equal(ModeSoftware))
				Expect(e.FallbackReason()).To(Equal(string(ReasonHardwareUnavailable)))
				Expect(rig.built).To(BeEmpty())
			},
			Entry("grid", core.Grid),
			Entry("wave", core.Wave),
			Entry("helix", core.Helix),
			Entry("surfers", core.Surfers),
		)
	})

	Context("with hardware support", func() {
		It("uses hardware for grid", func() {
			start(true, params(core.Grid, core.Cube, 100))
			Expect(e.Mode()).To(Equal(ModeHardware))
			Expect(e.FallbackReason()).To(BeEmpty())
		})

		It("uses software for helix without logging it as a failure", func() {
			start(true, params(core.Helix, core.Cube, 100))
			Expect(e.Mode()).To(Equal(ModeSoftware))
			Expect(e.FallbackReason()).To(Equal(string(ReasonArrangementUnsupported)))
			Expect(e.Stats().Demotions).To(BeZero())
		})

		It("switches wave at 400 to pendulums at 35 before the next frame", func() {
			start(true, params(core.Wave, core.Cube, 400))
			hw := rig.last()
			Expect(hw).NotTo(BeNil())
			Expect(hw.count).To(Equal(400))
			Expect(gpu.BuildInstances(hw.count, hw.arrangement)).To(HaveLen(400))

			first := gpu.BuildInstances(400, core.Wave)[0]
			carpet := geom.CarpetAt(0, 400)
			Expect(first.Offset[1]).To(BeNumerically("~", carpet.Pos[1]*gpu.WorldScale+gpu.Center[1], 1e-5))

			Expect(e.SetParams(params(core.Pendulums, core.Cube, 400))).To(Succeed())
			Expect(hw.released).To(BeTrue())
			Expect(hw.geometryLive || hw.instanceLive).To(BeFalse())
			Expect(e.Stats().Population).To(Equal(35))

			Expect(e.Frame()).To(Succeed())
			Expect(e.Image()).NotTo(BeNil())
		})

		It("demotes and keeps drawing when the device cannot be created", func() {
			rig.failErr = errNoDevice
			start(true, params(core.Spiral, core.Sphere, 100))
			Expect(e.Mode()).To(Equal(ModeSoftware))
			Expect(e.FallbackReason()).To(Equal(string(ReasonHardwareFailed)))
			Expect(e.Frame()).To(Succeed())
			Expect(e.Image()).NotTo(BeNil())
		})
	})

	Context("when the probe resolves after stop", func() {
		It("ignores the result", func() {
			release := make(chan struct{})
			e = NewEngineBuilder().
				UseProbe(func(context.Context) bool { <-release; return true }).
				UseHardware(rig.factory).
				Build()
			Expect(e.Frame()).To(Succeed())
			e.Stop()
			close(release)
			Eventually(e.sel.Ready()).Should(BeClosed())
			Expect(e.Mode()).To(Equal(ModeUnresolved))
			Expect(rig.built).To(BeEmpty())
		})
	})
})
