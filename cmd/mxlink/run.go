package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Evaluate statements in the engine",
	Long: `Evaluate statements in the engine's remote workspace.

Statements can be provided via:
  - File argument: mxlink run script.m
  - Inline flag: mxlink run -c 'x = magic(4)'
  - Stdin: echo 'disp(1+1)' | mxlink run

Engine output is forwarded to stdout.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringP("code", "c", "", "Statements to evaluate")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) {
	code, _ := cmd.Flags().GetString("code")

	var source string
	switch {
	case code != "":
		source = code
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal(err)
		}
		source = string(data)
	default:
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			cmd.Help()
			return
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fatal(err)
		}
		source = string(data)
		if source == "" {
			cmd.Help()
			return
		}
	}

	session, _, err := openSession(cmd, os.Stdout)
	if err != nil {
		fatal(err)
	}
	defer session.Close()

	if err := session.Eval(source); err != nil {
		fatal(err)
	}
}
