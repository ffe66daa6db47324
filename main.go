package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/sarchlab/akita/v3/sim"

	"github.com/KuangjuX-Archived/tomasulo-emulator/processor"
)

const usage = `usage:
  tomasulo [flags] <program> [<output.json>]
  tomasulo gen [flags]

A program is one instruction per line, or a JSON array of instruction
strings when the file name ends in .json.
`

// regValues collects repeated -reg R1=5 flags.
type regValues map[processor.Reg]int32

func (v regValues) String() string {
	parts := make([]string, 0, len(v))
	for r, val := range v {
		parts = append(parts, fmt.Sprintf("%s=%d", r, val))
	}
	return strings.Join(parts, ",")
}

func (v regValues) Set(s string) error {
	name, val, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("want Rn=value, got %q", s)
	}
	r, err := processor.ParseRegister(name)
	if err != nil {
		return err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(val), 0, 32)
	if err != nil {
		return fmt.Errorf("bad value %q", val)
	}
	v[r] = int32(n)
	return nil
}

type options struct {
	machine string
	engine  string
	data    string
	trace   string
	check   bool

	regs regValues
	opts []processor.Option
}

func parseFlags(args []string) (*options, []string, error) {
	def := processor.DefaultConfig()
	o := &options{regs: regValues{}}

	fs := flag.NewFlagSet("tomasulo", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&o.machine, "cpu", string(processor.KindTomasulo), "machine to run: tomasulo or inorder")
	fs.StringVar(&o.engine, "engine", "step", "clocking: step, or akita for an event-driven clock")
	fs.StringVar(&o.data, "data", "", "initial memory, one \"addr: value\" per line")
	fs.StringVar(&o.trace, "trace", "", "write a register dump per commit to this file, - for stdout")
	fs.BoolVar(&o.check, "check", false, "also run the in-order reference and compare the results")
	fs.Var(o.regs, "reg", "initial register value as Rn=value, repeatable")

	width := fs.Int("issue-width", def.IssueWidth, "instructions issued per cycle")
	rob := fs.Int("rob", def.ROBSize, "reorder buffer entries")
	fault := fs.String("fault", def.FaultMode.String(), "arithmetic fault handling: silent-zero or trap")
	strict := fs.Bool("strict-align", false, "fail misaligned loads instead of aligning them down")

	var stations, units [processor.NumClasses]*int
	for c := processor.Class(0); c < processor.NumClasses; c++ {
		name := strings.ToLower(c.String())
		stations[c] = fs.Int("rs-"+name, def.Stations[c], c.String()+" reservation stations")
		units[c] = fs.Int("fu-"+name, def.Units[c], c.String()+" execution units")
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	mode, err := processor.ParseFaultMode(*fault)
	if err != nil {
		return nil, nil, err
	}
	o.opts = append(o.opts,
		processor.WithIssueWidth(*width),
		processor.WithROBSize(*rob),
		processor.WithFaultMode(mode),
	)
	if *strict {
		o.opts = append(o.opts, processor.WithAlignment(processor.Strict))
	}
	for c := processor.Class(0); c < processor.NumClasses; c++ {
		o.opts = append(o.opts,
			processor.WithStations(c, *stations[c]),
			processor.WithUnits(c, *units[c]),
		)
	}
	return o, fs.Args(), nil
}

func readProgram(path string) ([]processor.Instruction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if !strings.HasSuffix(path, ".json") {
		return processor.ParseProgram(f)
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, err
	}
	return processor.ParseInstructions(lines)
}

func readData(path string) ([]processor.Word, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return processor.ParseData(f)
}

// build creates a machine of the given kind loaded with the program, the
// initial registers and memory.
func build(kind processor.Kind, o *options, program []processor.Instruction, words []processor.Word, extra ...processor.Option) (processor.Machine, error) {
	m, err := processor.New(kind, append(o.opts, extra...)...)
	if err != nil {
		return nil, err
	}
	for r, v := range o.regs {
		if err := m.SetRegister(r, v); err != nil {
			return nil, err
		}
	}
	if err := processor.Seed(m, words); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	if err := processor.LoadProgram(m, program); err != nil {
		return nil, err
	}
	return m, nil
}

func run(o *options, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New(usage)
	}

	program, err := readProgram(args[0])
	if err != nil {
		return err
	}
	words, err := readData(o.data)
	if err != nil {
		return err
	}

	var extra []processor.Option
	if o.trace != "" {
		w := io.Writer(os.Stdout)
		if o.trace != "-" {
			f, err := os.Create(o.trace)
			if err != nil {
				return err
			}
			defer f.Close()
			w = f
		}
		extra = append(extra, processor.WithTracer(processor.NewRegisterDump(w)))
	}

	m, err := build(processor.Kind(o.machine), o, program, words, extra...)
	if err != nil {
		return err
	}

	switch {
	case len(args) == 2:
		if o.engine != "step" {
			return fmt.Errorf("the state log needs -engine step")
		}
		out, err := os.Create(args[1])
		if err != nil {
			return err
		}
		defer out.Close()
		err = processor.Simulate(m, out)
		if err != nil {
			return err
		}
	case o.engine == "akita":
		now, err := processor.NewClockedRunner("Core", m, 1*sim.GHz).Run()
		if err != nil {
			return err
		}
		log.Printf("finished at %.9fs simulated time", float64(now))
	case o.engine == "step":
		if err := m.Run(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown engine %q", o.engine)
	}

	st := m.Stats()
	log.Printf("%s: %d instructions in %d cycles, IPC %.2f", o.machine, st.Committed, st.Cycles, st.IPC())
	if st.IssueStalls+st.DispatchStalls+st.OrderingStalls > 0 {
		log.Printf("stalls: issue %d, dispatch %d, memory ordering %d",
			st.IssueStalls, st.DispatchStalls, st.OrderingStalls)
	}
	if st.Faults > 0 {
		log.Printf("%d arithmetic faults committed as zero", st.Faults)
	}

	if o.check {
		return check(m, o, program, words)
	}
	return nil
}

// check replays the program on the in-order reference and compares the
// architectural state.
func check(m processor.Machine, o *options, program []processor.Instruction, words []processor.Word) error {
	ref, err := build(processor.KindInOrder, o, program, words)
	if err != nil {
		return err
	}
	if err := ref.Run(); err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	got, want := m.Registers(), ref.Registers()
	for r := range got {
		if got[r] != want[r] {
			return fmt.Errorf("check: R%d is %d, reference has %d", r, got[r], want[r])
		}
	}
	if !reflect.DeepEqual(m.Memory().Words(), ref.Memory().Words()) {
		return errors.New("check: memory differs from the reference")
	}
	log.Println("check: registers and memory match the in-order reference")
	return nil
}

func main() {
	log.SetFlags(0)

	if len(os.Args) > 1 && os.Args[1] == "gen" {
		if err := generate(os.Args[2:]); err != nil {
			log.Fatalln(err)
		}
		return
	}

	o, args, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalln(err)
	}
	if err := run(o, args); err != nil {
		log.Fatalln(err)
	}
}
