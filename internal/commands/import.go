package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fintrack-dev/fintrack/internal/api"
	"github.com/fintrack-dev/fintrack/internal/daterange"
	"github.com/fintrack-dev/fintrack/internal/importer"
)

// importScanLimit caps how many existing transactions are fetched for
// duplicate detection.
const importScanLimit = 10000

func newImportCommand(a *app) *cobra.Command {
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create transactions from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, a, args[0], format, dryRun)
		},
	}

	cmd.Flags().StringVar(&format, "format", "fintrack", "file format: "+strings.Join(importer.DefaultRegistry().Formats(), ", "))
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the file without creating anything")
	return cmd
}

func runImport(cmd *cobra.Command, a *app, path, format string, dryRun bool) error {
	reg := importer.DefaultRegistry()
	parser := reg.Get(format)
	if parser == nil {
		return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(reg.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	records, err := parser.Parse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	out := cmd.OutOrStdout()
	if dryRun {
		fmt.Fprintf(out, "Parsed %d transactions from %s (dry run)\n", len(records), path)
		return nil
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "Nothing to import.")
		return nil
	}

	if err := a.requireLogin(); err != nil {
		return err
	}
	ctx := cmd.Context()
	cats, err := a.client.Categories(ctx)
	if err != nil {
		return err
	}
	existing, err := a.client.Transactions(ctx, api.TransactionQuery{Range: daterange.Range{}, Limit: importScanLimit})
	if err != nil {
		return err
	}

	svc := importer.NewService(a.client, cats, existing, a.log)
	res, err := svc.Import(ctx, records)
	if err != nil {
		fmt.Fprintf(out, "Imported %d transactions before failing\n", res.Created)
		return err
	}
	a.log.Info("import finished", zap.String("file", path), zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	fmt.Fprintf(out, "Imported %d transactions (%d duplicates skipped)\n", res.Created, res.Skipped)
	return nil
}
