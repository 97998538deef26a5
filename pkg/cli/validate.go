package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/cli/config"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/usecase"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ErrOutOfSync is returned by the validate command when discrepancies exist
var ErrOutOfSync = goerr.New("session and canonical stores are out of sync")

func cmdValidate() *cli.Command {
	var userID string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "user-id",
			Aliases:     []string{"u"},
			Usage:       "User to compare across session and canonical stores",
			Required:    true,
			Destination: &userID,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "List discrepancies between the session and canonical stores",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, repoCfg.UseCaseOptions()...)
			report, err := uc.Sync.ValidateSync(ctx, userID)
			if err != nil {
				return goerr.Wrap(err, "validation failed", goerr.V("user_id", userID))
			}

			printReport(c.Root().Writer, report)
			if !report.InSync() {
				return goerr.Wrap(ErrOutOfSync, "discrepancies found",
					goerr.V("user_id", userID),
					goerr.V("count", len(report.Discrepancies)))
			}
			return nil
		},
	}
}

var discrepancyColors = map[types.DiscrepancyKind]*color.Color{
	types.DiscrepancyMissing:  color.New(color.FgRed, color.Bold),
	types.DiscrepancyStale:    color.New(color.FgYellow, color.Bold),
	types.DiscrepancyOrphaned: color.New(color.FgMagenta, color.Bold),
}

func printReport(w io.Writer, report *model.ValidationReport) {
	if report.InSync() {
		_, _ = color.New(color.FgGreen).Fprintf(w, "in sync: %s\n", report.UserID)
		return
	}

	_, _ = fmt.Fprintf(w, "%d discrepancy(ies) for %s\n", len(report.Discrepancies), report.UserID)
	for _, d := range report.Discrepancies {
		c, ok := discrepancyColors[d.Kind]
		if !ok {
			c = color.New(color.Reset)
		}
		_, _ = c.Fprintf(w, "  %-9s", d.Kind)
		_, _ = fmt.Fprintf(w, " %s session=%s canonical=%s\n",
			d.Module,
			runLabel(d.SessionRunID),
			runLabel(d.CanonicalRunID))
	}
}

func runLabel(runID string) string {
	if runID == "" {
		return "-"
	}
	return runID
}
