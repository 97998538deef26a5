package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mgprofile/mgprofile/pkg/cli/config"
	"github.com/mgprofile/mgprofile/pkg/repository/firestore"
	"github.com/mgprofile/mgprofile/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview Firestore changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Create Firestore and MongoDB indexes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if repoCfg.ProjectID() == "" && !repoCfg.HasMongo() {
				return goerr.Wrap(config.ErrMissingParameter, "nothing to migrate, set firestore-project-id or mongo-uri")
			}

			if repoCfg.ProjectID() != "" {
				if err := migrateFirestore(ctx, &repoCfg, dryRun); err != nil {
					return err
				}
			}

			mdb, err := repoCfg.Mongo(ctx)
			if err != nil {
				return err
			}
			if mdb == nil {
				return nil
			}
			defer func() {
				if err := mdb.Close(); err != nil {
					logger.Error("failed to close mongo client", "error", err.Error())
				}
			}()

			if dryRun {
				logger.Info("Dry run mode - skipping MongoDB indexes")
				return nil
			}
			if err := mdb.EnsureIndexes(ctx); err != nil {
				return goerr.Wrap(err, "failed to create mongo indexes")
			}
			logger.Info("MongoDB indexes ensured")
			return nil
		},
	}
}

func migrateFirestore(ctx context.Context, repoCfg *config.Repository, dryRun bool) error {
	logger := logging.Default()
	logger.Info("Migrate configuration",
		"projectID", repoCfg.ProjectID(),
		"databaseID", repoCfg.DatabaseID(),
		"dryRun", dryRun)

	indexConfig := getIndexConfig(repoCfg.CollectionPrefix())

	client, err := fireconf.New(ctx, repoCfg.ProjectID(), repoCfg.DatabaseID(), indexConfig,
		fireconf.WithLogger(logger),
		fireconf.WithDryRun(dryRun),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
	} else {
		logger.Info("Applying migrations")
	}
	if err := client.Migrate(ctx); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations completed", "dryRun", dryRun)
	return nil
}

// getIndexConfig returns the Firestore index configuration
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.CollectionName(prefix, firestore.CollectionCanonicalRecords),
				Indexes: []fireconf.Index{
					// ListByUser: UserID ASC, CreatedAt DESC, RunID DESC
					{
						Fields: []fireconf.IndexField{
							{Path: "UserID", Order: fireconf.OrderAscending},
							{Path: "CreatedAt", Order: fireconf.OrderDescending},
							{Path: "RunID", Order: fireconf.OrderDescending},
						},
					},
				},
			},
		},
	}
}
