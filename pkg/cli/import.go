package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/cli/config"
	"github.com/mgprofile/mgprofile/pkg/domain/model"
	"github.com/mgprofile/mgprofile/pkg/domain/types"
	"github.com/mgprofile/mgprofile/pkg/usecase"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// documentFile is the TOML layout accepted by the import command
type documentFile struct {
	Documents []documentEntry `toml:"document"`
}

type documentEntry struct {
	ID             string               `toml:"id"`
	Title          string               `toml:"title"`
	Category       string               `toml:"category"`
	Content        string               `toml:"content"`
	DocumentType   string               `toml:"document_type"`
	Status         string               `toml:"status"`
	UsageTags      model.UsageTags      `toml:"usage_tags"`
	PriorityScores model.PriorityScores `toml:"priority_scores"`
}

func (e documentEntry) toModel() *model.ReferenceDocument {
	return &model.ReferenceDocument{
		ID:             model.ReferenceDocumentID(e.ID),
		Title:          e.Title,
		Category:       e.Category,
		Content:        e.Content,
		DocumentType:   types.DocumentType(e.DocumentType),
		Status:         types.DocumentStatus(e.Status),
		UsageTags:      e.UsageTags,
		PriorityScores: e.PriorityScores,
	}
}

func loadDocumentFile(path string) ([]*model.ReferenceDocument, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read document file", goerr.V(config.ConfigPathKey, path))
	}

	var file documentFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse document file", goerr.V(config.ConfigPathKey, path))
	}

	docs := make([]*model.ReferenceDocument, len(file.Documents))
	for i, entry := range file.Documents {
		docs[i] = entry.toModel()
	}
	return docs, nil
}

func cmdImport() *cli.Command {
	var path string
	var repoCfg config.Repository

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "TOML file with [[document]] entries",
			Required:    true,
			Destination: &path,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "import",
		Usage: "Import reference documents from a TOML file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			docs, err := loadDocumentFile(path)
			if err != nil {
				return err
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

			uc := usecase.New(repo, repoCfg.UseCaseOptions()...)
			n, err := uc.Reference.ImportDocuments(ctx, docs)
			if err != nil {
				return goerr.Wrap(err, "import failed", goerr.V("imported", n))
			}

			for _, doc := range docs {
				_, _ = fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\n", doc.ID, doc.Status, doc.Title)
			}
			logging.Default().Info("Imported reference documents", "count", n, "path", path)
			return nil
		},
	}
}
