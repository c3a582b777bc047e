package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
	"github.com/KirkDiggler/bt-ship-roller/internal/prompt"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

var (
	rollCount   int
	rollSession string

	dropshipFilter  filterFlags
	primitiveFilter filterFlags
)

var jumpshipCmd = &cobra.Command{
	Use:   "jumpship",
	Short: "Roll JumpShip classes from the d100 table",
	Args:  cobra.NoArgs,
	RunE:  runJumpShips,
}

var dropshipCmd = &cobra.Command{
	Use:   "dropship",
	Short: "Roll DropShip classes from the weighted catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCatalogRoll(cmd, roller.TableDropShip, &dropshipFilter)
	},
}

var primitiveCmd = &cobra.Command{
	Use:   "primitive",
	Short: "Roll primitive JumpShip classes from the weighted catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCatalogRoll(cmd, roller.TablePrimitiveJumpShip, &primitiveFilter)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{jumpshipCmd, dropshipCmd, primitiveCmd} {
		cmd.Flags().IntVarP(&rollCount, "count", "n", 1, "number of classes to roll")
		cmd.Flags().StringVar(&rollSession, "session", "", "record the batch in this roll session")
		cmd.Flags().String("session-store", "", "roll session store: none, memory or redis")
	}
	dropshipFilter.register(dropshipCmd)
	primitiveFilter.register(primitiveCmd)
}

func runJumpShips(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.RollJumpShips(ctx, &roller.RollJumpShipsInput{
		Count:     rollCount,
		SessionID: rollSession,
	})
	if err != nil {
		return err
	}

	printLines(cmd.OutOrStdout(), "JS", lineTexts(out.Results))
	return nil
}

func runCatalogRoll(cmd *cobra.Command, table roller.Table, flags *filterFlags) error {
	ctx := cmd.Context()

	filter, err := flags.filter()
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	input := &roller.RollInput{Filter: filter, Count: rollCount, SessionID: rollSession}
	prefix := "DS"
	var out *roller.RollOutput
	if table == roller.TablePrimitiveJumpShip {
		prefix = "PJ"
		out, err = a.service.RollPrimitiveJumpShips(ctx, input)
	} else {
		out, err = a.service.RollDropShips(ctx, input)
	}

	switch {
	case errors.Is(err, sampler.ErrNoEligibleCandidates):
		printLines(cmd.OutOrStdout(), prefix, noCandidates(rollCount))
		return nil
	case errors.Is(err, sampler.ErrNoDataLoaded):
		return errors.FailedPreconditionf("no %s data loaded; run 'bt-roller scrape' or check overrides.source", table)
	case err != nil:
		return err
	}

	printLines(cmd.OutOrStdout(), prefix, lineTexts(out.Results))
	return nil
}

func lineTexts(results []roller.Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Line)
	}
	return out
}

func noCandidates(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prompt.NoCandidatesLine
	}
	return out
}

func printLines(w io.Writer, prefix string, lines []string) {
	for i, line := range lines {
		_, _ = fmt.Fprintf(w, "%s-%02d: %s\n", prefix, i+1, line)
	}
}
