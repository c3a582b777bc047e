package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/KirkDiggler/bt-ship-roller/internal/errors"
	"github.com/KirkDiggler/bt-ship-roller/internal/handlers/roller/v1alpha1"
	"github.com/KirkDiggler/bt-ship-roller/internal/sampler"
)

var (
	clientCount   int32
	clientSession string
	clientTable   string

	clientDropShipFilter  filterFlags
	clientPrimitiveFilter filterFlags
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running roller server",
}

var clientRollJumpShipsCmd = &cobra.Command{
	Use:   "roll-jumpships",
	Short: "Roll JumpShips on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return remoteRoll(cmd, "JS", func(ctx context.Context, c v1alpha1.RollerServiceClient) (*v1alpha1.RollResponse, error) {
			return c.RollJumpShips(ctx, &v1alpha1.RollJumpShipsRequest{Count: clientCount, SessionId: clientSession})
		})
	},
}

var clientRollDropShipsCmd = &cobra.Command{
	Use:   "roll-dropships",
	Short: "Roll DropShips on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := clientDropShipFilter.wire()
		if err != nil {
			return err
		}
		return remoteRoll(cmd, "DS", func(ctx context.Context, c v1alpha1.RollerServiceClient) (*v1alpha1.RollResponse, error) {
			return c.RollDropShips(ctx, &v1alpha1.RollRequest{Filter: filter, Count: clientCount, SessionId: clientSession})
		})
	},
}

var clientRollPrimitiveCmd = &cobra.Command{
	Use:   "roll-primitive",
	Short: "Roll primitive JumpShips on the server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		filter, err := clientPrimitiveFilter.wire()
		if err != nil {
			return err
		}
		return remoteRoll(cmd, "PJ", func(ctx context.Context, c v1alpha1.RollerServiceClient) (*v1alpha1.RollResponse, error) {
			return c.RollPrimitiveJumpShips(ctx, &v1alpha1.RollRequest{Filter: filter, Count: clientCount, SessionId: clientSession})
		})
	},
}

var clientSessionCmd = &cobra.Command{
	Use:   "session <id>",
	Short: "Show a roll session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c v1alpha1.RollerServiceClient) error {
			resp, err := c.GetRollSession(ctx, &v1alpha1.GetRollSessionRequest{SessionId: args[0]})
			if err != nil {
				return err
			}
			s := resp.Session
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Session %s (%s), expires %s\n", s.Id, s.Context, s.ExpiresAt.Format("15:04:05"))
			for i, r := range s.Rolls {
				_, _ = fmt.Fprintf(out, "%3d. [%s] %s\n", i+1, r.Table, r.Line)
			}
			return nil
		})
	},
}

var clientClearSessionCmd = &cobra.Command{
	Use:   "clear-session <id>",
	Short: "Delete a roll session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(cmd, func(ctx context.Context, c v1alpha1.RollerServiceClient) error {
			resp, err := c.ClearRollSession(ctx, &v1alpha1.ClearRollSessionRequest{SessionId: args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d rolls\n", resp.RollsDeleted)
			return nil
		})
	},
}

var clientAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Print the server's catalog audit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(cmd, func(ctx context.Context, c v1alpha1.RollerServiceClient) error {
			resp, err := c.Audit(ctx, &v1alpha1.AuditRequest{Table: clientTable})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), resp.Text)
			return nil
		})
	},
}

func init() {
	clientCmd.PersistentFlags().String("address", "", "server address (default server.address)")

	for _, cmd := range []*cobra.Command{clientRollJumpShipsCmd, clientRollDropShipsCmd, clientRollPrimitiveCmd} {
		cmd.Flags().Int32VarP(&clientCount, "count", "n", 1, "number of classes to roll")
		cmd.Flags().StringVar(&clientSession, "session", "", "record the batch in this roll session")
	}
	clientDropShipFilter.register(clientRollDropShipsCmd)
	clientPrimitiveFilter.register(clientRollPrimitiveCmd)
	clientAuditCmd.Flags().StringVar(&clientTable, "table", "dropship", "catalog to audit: dropship or primitive_jumpship")

	clientCmd.AddCommand(
		clientRollJumpShipsCmd,
		clientRollDropShipsCmd,
		clientRollPrimitiveCmd,
		clientSessionCmd,
		clientClearSessionCmd,
		clientAuditCmd,
	)
}

func withClient(cmd *cobra.Command, fn func(context.Context, v1alpha1.RollerServiceClient) error) error {
	conn, err := grpc.NewClient(cfg.Server.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Server.Address, err)
	}
	defer func() { _ = conn.Close() }()

	if err := fn(cmd.Context(), v1alpha1.NewRollerServiceClient(conn)); err != nil {
		return errors.FromGRPCError(err)
	}
	return nil
}

// remoteRoll runs one roll call and prints its lines. An empty pool prints
// one no-candidates line per requested roll, like the local commands.
func remoteRoll(
	cmd *cobra.Command,
	prefix string,
	call func(context.Context, v1alpha1.RollerServiceClient) (*v1alpha1.RollResponse, error),
) error {
	var resp *v1alpha1.RollResponse
	err := withClient(cmd, func(ctx context.Context, c v1alpha1.RollerServiceClient) error {
		var err error
		resp, err = call(ctx, c)
		return err
	})
	if errors.Is(err, sampler.ErrNoEligibleCandidates) {
		printLines(cmd.OutOrStdout(), prefix, noCandidates(int(clientCount)))
		return nil
	}
	if err != nil {
		return err
	}

	lines := make([]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		lines = append(lines, r.Line)
	}
	printLines(cmd.OutOrStdout(), prefix, lines)
	return nil
}
