package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"leg/legvm"
)

// dumpFormat is a pflag.Value so `dump --format` rejects anything but
// its two known spellings instead of silently falling back to a zero
// value.
type dumpFormat string

const (
	dumpFormatState dumpFormat = "state"
	dumpFormatAsm   dumpFormat = "asm"
)

func (f *dumpFormat) String() string { return string(*f) }

func (f *dumpFormat) Set(s string) error {
	switch dumpFormat(s) {
	case dumpFormatState, dumpFormatAsm:
		*f = dumpFormat(s)
		return nil
	default:
		return fmt.Errorf("invalid --format %q: want %q or %q", s, dumpFormatState, dumpFormatAsm)
	}
}

func (f *dumpFormat) Type() string { return "format" }

var _ pflag.Value = (*dumpFormat)(nil)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var traceFlag bool

	root := &cobra.Command{
		Use:           "leg",
		Short:         "Assemble and run programs for the LEG 8-bit computer",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().BoolVar(&traceFlag, "trace", false, "print the machine state after every step")

	root.AddCommand(newAsmCmd())
	root.AddCommand(newRunCmd(&traceFlag))
	root.AddCommand(newDumpCmd())

	return root
}

func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}

func newAsmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asm [file]",
		Short: "Assemble source into the two-byte-per-instruction wire format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			source, err := readSource(cmd, path)
			if err != nil {
				return err
			}

			image, err := legvm.AssembleBytes(source)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(image)
			return err
		},
	}
}

func newRunCmd(trace *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Assemble and run a program to completion, printing its final state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			source, err := readSource(cmd, path)
			if err != nil {
				return err
			}

			image, err := legvm.AssembleBytes(source)
			if err != nil {
				return err
			}

			m := legvm.NewMachine(image)
			if *trace {
				for !m.IsHalted() {
					fmt.Fprintln(cmd.OutOrStdout(), m.Dump())
					if err := m.Step(); err != nil {
						return err
					}
				}
			} else if err := m.Run(); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), m.Dump())
			return nil
		},
	}
}

func newDumpCmd() *cobra.Command {
	format := dumpFormatState

	cmd := &cobra.Command{
		Use:   "dump [file]",
		Short: "Render an assembled image as a state dump or as disassembled source",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			source, err := readSource(cmd, path)
			if err != nil {
				return err
			}

			image, err := legvm.AssembleBytes(source)
			if err != nil {
				return err
			}

			if format == dumpFormatState {
				m := legvm.NewMachine(image)
				fmt.Fprint(cmd.OutOrStdout(), m.Dump())
				return nil
			}

			text, err := legvm.Disassemble(image)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().Var(&format, "format", `output format: "state" or "asm"`)
	return cmd
}
