package main

import (
	"context"
	"flag"
	"time"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/database"
	"github.com/pageza/nutriplan/backend/internal/logging"
	"github.com/pageza/nutriplan/backend/internal/repository"
)

// Copies a food catalog (embedded, a local file or an S3 object) into the
// food_items table so the API can run with CATALOG_SOURCE=database.
func main() {
	file := flag.String("file", "", "JSON or YAML catalog to import instead of the embedded one")
	fromS3 := flag.Bool("s3", false, "Import the catalog object configured by S3_BUCKET and S3_KEY")
	flag.Parse()

	logger := logging.Setup(config.IsDevelopment())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var src catalog.Source = catalog.EmbeddedSource{}
	switch {
	case *file != "":
		src = catalog.FileSource{Path: *file}
	case *fromS3:
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create S3 client")
		}
		src = catalog.S3Source{Client: s3Cfg.Client, Bucket: s3Cfg.BucketName, Key: s3Cfg.Key}
	}

	ds, err := src.Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load catalog")
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	if err := database.RunMigrations(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	n, err := repository.NewFoodRepository(db).Seed(ctx, ds)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to seed catalog")
	}
	logger.Info().Str("source", ds.Source()).Int("foods", n).Msg("catalog seeded")
}
