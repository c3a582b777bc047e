package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/bt-ship-roller/internal/audit"
	"github.com/KirkDiggler/bt-ship-roller/internal/orchestrators/roller"
)

var (
	auditTable string
	auditXLSX  string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Summarise a catalog and list overrides that match no class",
	Args:  cobra.NoArgs,
	RunE:  runAudit,
}

func init() {
	auditCmd.Flags().StringVar(&auditTable, "table", string(roller.TableDropShip), "catalog to audit: dropship or primitive_jumpship")
	auditCmd.Flags().StringVar(&auditXLSX, "xlsx", "", "also write the audit to this .xlsx file")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	out, err := a.service.Audit(ctx, &roller.AuditInput{Table: roller.Table(auditTable)})
	if err != nil {
		return err
	}
	if err := out.Report.WriteText(cmd.OutOrStdout()); err != nil {
		return err
	}

	if auditXLSX != "" {
		if err := audit.ExportXLSX(auditXLSX, out.Catalog, out.Report); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", auditXLSX)
	}
	return nil
}
