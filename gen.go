package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/KuangjuX-Archived/tomasulo-emulator/processor"
)

type genConfig struct {
	seed  int64
	n     int
	words int
}

// randomProgram emits n instructions over all opcodes. Memory accesses use
// R0 as base with word-aligned offsets inside the first words words, so a
// generated program always runs to completion.
func randomProgram(rng *rand.Rand, cfg genConfig) []processor.Instruction {
	reg := func() processor.Reg { return processor.Reg(rng.Intn(processor.NumRegisters)) }
	// R0 stays zero so that it keeps working as a base register.
	dst := func() processor.Reg { return processor.Reg(1 + rng.Intn(processor.NumRegisters-1)) }
	off := func() int32 { return int32(processor.WordSize * rng.Intn(cfg.words)) }

	prog := make([]processor.Instruction, cfg.n)
	for i := range prog {
		switch rng.Intn(7) {
		case 0:
			prog[i] = processor.Add(dst(), reg(), reg())
		case 1:
			prog[i] = processor.Sub(dst(), reg(), reg())
		case 2:
			prog[i] = processor.Mul(dst(), reg(), reg())
		case 3:
			prog[i] = processor.Div(dst(), reg(), reg())
		case 4:
			prog[i] = processor.Load{Rd: dst(), Base: 0, Offset: off()}
		case 5:
			prog[i] = processor.Store{Rt: reg(), Base: 0, Offset: off()}
		default:
			prog[i] = processor.Jump{Rs: reg()}
		}
	}
	return prog
}

func randomData(rng *rand.Rand, cfg genConfig) []processor.Word {
	words := make([]processor.Word, cfg.words)
	for i := range words {
		words[i] = processor.Word{
			Addr:  uint32(processor.WordSize * i),
			Value: int32(rng.Intn(1000)),
		}
	}
	return words
}

func writeProgram(w io.Writer, prog []processor.Instruction) error {
	for _, ins := range prog {
		if _, err := fmt.Fprintln(w, ins); err != nil {
			return err
		}
	}
	return nil
}

func writeData(w io.Writer, words []processor.Word) error {
	for _, word := range words {
		if _, err := fmt.Fprintf(w, "0x%x: %d\n", word.Addr, word.Value); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// generate implements the gen subcommand: a random program and a matching
// memory image, reproducible from the seed.
func generate(args []string) error {
	var cfg genConfig
	fs := flag.NewFlagSet("gen", flag.ContinueOnError)
	fs.Int64Var(&cfg.seed, "seed", 0, "random seed, 0 picks one from the clock")
	fs.IntVar(&cfg.n, "n", 100, "number of instructions")
	fs.IntVar(&cfg.words, "words", 64, "number of memory words")
	program := fs.String("program", "program.txt", "program output file")
	data := fs.String("data", "data.txt", "memory image output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.n < 0 || cfg.words < 1 {
		return fmt.Errorf("%w: need -n >= 0 and -words >= 1", processor.ErrBadConfig)
	}
	if cfg.seed == 0 {
		cfg.seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	prog := randomProgram(rng, cfg)
	words := randomData(rng, cfg)

	if err := writeFile(*program, func(w io.Writer) error { return writeProgram(w, prog) }); err != nil {
		return err
	}
	if err := writeFile(*data, func(w io.Writer) error { return writeData(w, words) }); err != nil {
		return err
	}
	log.Printf("seed %d: wrote %d instructions to %s and %d words to %s", cfg.seed, len(prog), *program, len(words), *data)
	return nil
}
