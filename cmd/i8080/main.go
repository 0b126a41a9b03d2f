// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ezrec/i8080/debugger"
	"github.com/ezrec/i8080/emulator"
)

func loadEmulator(path string, rate float64, verbose bool) (emu *emulator.Emulator, err error) {
	emu = emulator.NewEmulator()
	emu.Verbose = verbose

	err = emu.LoadFile(path)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		return
	}

	emu.SetClockRate(rate)

	return
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "i8080",
		Short:        "Intel 8080 simulator, debugger and assembler",
		SilenceUsage: true,
	}

	// run command
	var rate float64
	var output string
	var digest bool
	var record bool
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run ROM",
		Short: "Run a ROM image (or .asm source) until it halts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu, err := loadEmulator(args[0], rate, verbose)
			if err != nil {
				return err
			}

			out := os.Stdout
			if output != "-" {
				out, err = os.Create(output)
				if err != nil {
					return err
				}
				defer out.Close()
			}
			emu.SetOutput(out)
			emu.SetRecord(record)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			_, err = emu.Run(ctx)
			if record {
				reportWrites(os.Stderr, emu.Recorder.Writes)
			}
			if err != nil {
				reportFault(os.Stderr, err)
				return err
			}

			if verbose {
				log.Printf("i8080: halted after %v instructions\n%v", emu.Ticks(), emu.Cpu)
			}
			if digest {
				fmt.Printf("%016x\n", emu.Digest())
			}

			return nil
		},
	}
	runCmd.Flags().Float64Var(&rate, "rate", 0, "Instructions per second (0 = unthrottled)")
	runCmd.Flags().StringVar(&output, "output", "-", "File receiving OUT port writes")
	runCmd.Flags().BoolVar(&digest, "digest", false, "Print a hash of memory after halting")
	runCmd.Flags().BoolVar(&record, "record", false, "List every OUT port write on stderr after the run")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// debug command
	var debugRate float64

	debugCmd := &cobra.Command{
		Use:   "debug ROM",
		Short: "Step through a ROM image interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu, err := loadEmulator(args[0], debugRate, false)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			dbg := debugger.NewDebugger(emu, os.Stdout)
			return dbg.Loop(ctx, os.Stdin)
		},
	}
	debugCmd.Flags().Float64Var(&debugRate, "rate", 0, "Instructions per second (0 = unthrottled)")

	// disasm command
	var start uint16
	var count int

	disasmCmd := &cobra.Command{
		Use:   "disasm ROM",
		Short: "Disassemble a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			emu, err := loadEmulator(args[0], 0, false)
			if err != nil {
				return err
			}

			for _, ins := range emu.Listing(start, count) {
				raw := emu.Dump(ins.Address, ins.Length())
				fmt.Printf("%04X  %-8X  %v\n", ins.Address, raw, ins)
			}

			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&start, "start", 0, "First address to disassemble")
	disasmCmd.Flags().IntVar(&count, "count", 32, "Number of instructions")

	// asm command
	var asmOutput string

	asmCmd := &cobra.Command{
		Use:   "asm SOURCE",
		Short: "Assemble source into a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inf, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer inf.Close()

			emu := emulator.NewEmulator()
			err = emu.Assemble(inf)
			if err != nil {
				return fmt.Errorf("%v: %w", args[0], err)
			}

			return os.WriteFile(asmOutput, emu.Program.Binary(), 0o644)
		},
	}
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "a.out", "ROM image to write")

	rootCmd.AddCommand(runCmd, debugCmd, disasmCmd, asmCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
