package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call FN [ARG...]",
	Short: "Call a remote engine function",
	Long: `Call a function in the engine and print its results.

Arguments that parse as numbers are passed as doubles; anything else is
passed as a string. The number of results to request is set with --nout.

Examples:
  mxlink call sqrt 2
  mxlink call size --nout 2 x
  mxlink call disp --nout 0 hello`,
	Args: cobra.MinimumNArgs(1),
	Run:  runCall,
}

func init() {
	callCmd.Flags().Int("nout", 1, "Number of results to request")
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) {
	nout, _ := cmd.Flags().GetInt("nout")

	fn := args[0]
	in := make([]any, 0, len(args)-1)
	for _, arg := range args[1:] {
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			in = append(in, f)
		} else {
			in = append(in, arg)
		}
	}

	session, _, err := openSession(cmd, os.Stdout)
	if err != nil {
		fatal(err)
	}
	defer session.Close()

	outs, err := session.MXCall(fn, nout, in...)
	if err != nil {
		fatal(err)
	}

	m := session.Marshaler()
	for _, arr := range outs {
		v, err := m.Unmarshal(arr)
		m.Release(arr)
		if err != nil {
			fatal(err)
		}
		fmt.Println(v)
	}
}
