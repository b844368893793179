/*
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command bagsort reads a scheduling request document and writes the
// resulting schedule, wiring pkg/wire, pkg/schedulerconfig, and
// pkg/engine end to end for one request per invocation.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bagline/bagsort/pkg/engine"
	"github.com/bagline/bagsort/pkg/schedulerconfig"
	"github.com/bagline/bagsort/pkg/wire"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bagsort",
		Short: "Job-shop CP-SAT scheduler for bag-production machines",
	}
	root.AddCommand(newSolveCmd())
	return root
}

func newSolveCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "solve [request.json]",
		Short: "Solve a scheduling request and print the resulting schedule as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd, args, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string, verbose bool) error {
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	input, err := readInput(args)
	if err != nil {
		return err
	}

	req, err := wire.DecodeRequest(input)
	if err != nil {
		return err
	}

	cfg, err := schedulerconfig.FromEnv()
	if err != nil {
		return err
	}

	sched := engine.New(logger.Sugar(), cfg)
	schedule, err := sched.Solve(context.Background(), *req)
	if err != nil {
		return err
	}

	out, err := wire.EncodeResponse(schedule)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 1 {
		return os.ReadFile(args[0])
	}
	return io.ReadAll(os.Stdin)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
