package processor_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/KuangjuX-Archived/tomasulo-emulator/processor"
)

var _ = Describe("Config", func() {
	It("has the canonical defaults", func() {
		cfg := processor.DefaultConfig()
		Expect(cfg.Validate()).To(Succeed())
		Expect(cfg.Stations[processor.ClassAddSub]).To(Equal(3))
		Expect(cfg.Stations[processor.ClassMulDiv]).To(Equal(2))
		Expect(cfg.Stations[processor.ClassLoadStore]).To(Equal(2))
		Expect(cfg.ROBSize).To(Equal(6))
		Expect(cfg.FaultMode).To(Equal(processor.SilentZero))

		lat := cfg.Latencies
		Expect(lat.Latency(processor.OpAdd)).To(Equal(2))
		Expect(lat.Latency(processor.OpSub)).To(Equal(2))
		Expect(lat.Latency(processor.OpMul)).To(Equal(12))
		Expect(lat.Latency(processor.OpDiv)).To(Equal(24))
		Expect(lat.Latency(processor.OpLoad)).To(Equal(2))
		Expect(lat.Latency(processor.OpStore)).To(Equal(2))
		Expect(lat.Latency(processor.OpJump)).To(Equal(1))
	})

	DescribeTable("rejects machines that cannot finish",
		func(opt processor.Option) {
			_, err := processor.NewTomasulo(opt)
			Expect(err).To(MatchError(processor.ErrBadConfig))
		},
		Entry("no issue", processor.WithIssueWidth(0)),
		Entry("no reorder buffer", processor.WithROBSize(0)),
		Entry("no MulDiv stations", processor.WithStations(processor.ClassMulDiv, 0)),
		Entry("no branch units", processor.WithUnits(processor.ClassBranch, 0)),
		Entry("zero latency", processor.WithLatencies(processor.LatencyTable{Add: 1, Sub: 1, Mul: 1, Div: 0, Load: 1, Store: 1, Jump: 1})),
	)

	It("builds machines by kind", func() {
		m, err := processor.New(processor.KindTomasulo)
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(BeAssignableToTypeOf(&processor.Tomasulo{}))

		m, err = processor.New(processor.KindInOrder)
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(BeAssignableToTypeOf(&processor.InOrder{}))

		m, err = processor.New("vliw")
		Expect(err).To(MatchError(processor.ErrBadConfig))
		Expect(m).To(BeNil())
	})

	It("parses fault modes", func() {
		Expect(processor.ParseFaultMode("trap")).To(Equal(processor.Trap))
		Expect(processor.ParseFaultMode("silent-zero")).To(Equal(processor.SilentZero))
		_, err := processor.ParseFaultMode("loud")
		Expect(err).To(MatchError(processor.ErrBadConfig))
	})
})
