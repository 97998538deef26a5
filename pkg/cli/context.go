package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/cli/config"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/usecase"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdContext() *cli.Command {
	var (
		useCase  string
		terms    []string
		elements []string
		subject  string
		grade    string
		explain  bool
	)
	var repoCfg config.Repository
	var retrievalCfg config.Retrieval

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "use-case",
			Usage:       "Consumer of the context (" + useCaseNames() + ")",
			Required:    true,
			Destination: &useCase,
		},
		&cli.StringSliceFlag{
			Name:        "term",
			Aliases:     []string{"t"},
			Usage:       "Search term, repeatable",
			Destination: &terms,
		},
		&cli.StringSliceFlag{
			Name:        "element",
			Usage:       "Named pedagogical element, repeatable",
			Destination: &elements,
		},
		&cli.StringFlag{
			Name:        "subject",
			Usage:       "Subject of the lesson",
			Destination: &subject,
		},
		&cli.StringFlag{
			Name:        "grade",
			Usage:       "Grade level",
			Destination: &grade,
		},
		&cli.BoolFlag{
			Name:        "explain",
			Usage:       "Print scores and matched terms instead of the rendered context",
			Destination: &explain,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, retrievalCfg.Flags()...)

	return &cli.Command{
		Name:  "context",
		Usage: "Render the reference context for a use case",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			u, err := types.ParseUseCase(useCase)
			if err != nil {
				return goerr.Wrap(err, "invalid use case")
			}

			rCfg, err := retrievalCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load retrieval configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			uc := usecase.New(repo, append(repoCfg.UseCaseOptions(), usecase.WithRetrievalConfig(rCfg))...)
			criteria := model.Criteria{
				Terms:    terms,
				Subject:  subject,
				Grade:    grade,
				Elements: elements,
			}
			w := c.Root().Writer

			if !explain {
				_, _ = fmt.Fprintln(w, uc.Retrieval.BuildContext(ctx, u, criteria))
				return nil
			}

			ranked, err := uc.Retrieval.Explain(ctx, u, criteria)
			if err != nil {
				return goerr.Wrap(err, "failed to rank reference documents")
			}
			if len(ranked) == 0 {
				_, _ = fmt.Fprintln(w, "no eligible documents")
				return nil
			}

			bold := color.New(color.Bold)
			for i, r := range ranked {
				_, _ = bold.Fprintf(w, "%d. %s", i+1, r.Document.Title)
				_, _ = fmt.Fprintf(w, " [%s] id=%s type=%s score=%d matched=%v\n",
					r.Document.Category,
					r.Document.ID,
					r.Document.DocumentType,
					r.Score,
					r.MatchedTerms)
			}
			return nil
		},
	}
}

func useCaseNames() string {
	names := make([]string, 0, len(types.AllUseCases()))
	for _, u := range types.AllUseCases() {
		names = append(names, u.String())
	}
	return strings.Join(names, ", ")
}
