package processor

import "fmt"

// Config sizes the machine. The zero value is not usable; start from
// DefaultConfig and apply Options.
type Config struct {
	// IssueWidth is the maximum number of instructions issued per cycle.
	// 1 models a single-issue machine.
	IssueWidth int

	Stations [NumClasses]int
	Units    [NumClasses]int
	ROBSize  int

	Latencies LatencyTable
	FaultMode FaultMode
	Alignment AlignmentPolicy

	// Tracer, if set, is told about every committed instruction.
	Tracer Tracer
}

func DefaultConfig() Config {
	return Config{
		IssueWidth: 2,
		Stations:   [NumClasses]int{ClassAddSub: 3, ClassMulDiv: 2, ClassLoadStore: 2, ClassBranch: 1},
		Units:      [NumClasses]int{ClassAddSub: 2, ClassMulDiv: 1, ClassLoadStore: 1, ClassBranch: 1},
		ROBSize:    6,
		Latencies:  DefaultLatencies(),
		FaultMode:  SilentZero,
		Alignment:  AlignDown,
	}
}

// Validate rejects configurations that could never finish a program.
func (c Config) Validate() error {
	if c.IssueWidth < 1 {
		return fmt.Errorf("%w: issue width %d", ErrBadConfig, c.IssueWidth)
	}
	if c.ROBSize < 1 {
		return fmt.Errorf("%w: reorder buffer size %d", ErrBadConfig, c.ROBSize)
	}
	for cl := Class(0); cl < NumClasses; cl++ {
		if c.Stations[cl] < 1 {
			return fmt.Errorf("%w: %d %s reservation stations", ErrBadConfig, c.Stations[cl], cl)
		}
		if c.Units[cl] < 1 {
			return fmt.Errorf("%w: %d %s execution units", ErrBadConfig, c.Units[cl], cl)
		}
	}
	for _, op := range allOpcodes {
		if l := c.Latencies.Latency(op); l < 1 {
			return fmt.Errorf("%w: %s latency %d", ErrBadConfig, op, l)
		}
	}
	return nil
}

type Option func(*Config)

func WithIssueWidth(k int) Option {
	return func(c *Config) {
		c.IssueWidth = k
	}
}

func WithStations(class Class, n int) Option {
	return func(c *Config) {
		c.Stations[class] = n
	}
}

func WithUnits(class Class, n int) Option {
	return func(c *Config) {
		c.Units[class] = n
	}
}

func WithROBSize(n int) Option {
	return func(c *Config) {
		c.ROBSize = n
	}
}

func WithLatencies(t LatencyTable) Option {
	return func(c *Config) {
		c.Latencies = t
	}
}

func WithFaultMode(m FaultMode) Option {
	return func(c *Config) {
		c.FaultMode = m
	}
}

func WithAlignment(p AlignmentPolicy) Option {
	return func(c *Config) {
		c.Alignment = p
	}
}

func WithTracer(t Tracer) Option {
	return func(c *Config) {
		c.Tracer = t
	}
}

func newConfig(opts []Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
