package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pageza/nutriplan/backend/config"
	"github.com/pageza/nutriplan/backend/internal/catalog"
	"github.com/pageza/nutriplan/backend/internal/evaluator"
	"github.com/pageza/nutriplan/backend/internal/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	rulesFile   string
	catalogFile string
}

func main() {
	logging.Setup(config.IsDevelopment())
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "recommend",
		Short:        "Rule-based diet plan recommender",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&opts.rulesFile, "rules", "", "rule thresholds file (YAML, JSON or TOML)")
	cmd.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "food catalog file to use instead of the built-in one")

	cmd.AddCommand(
		newProfileCmd(opts),
		newBatchCmd(opts),
		newTemplateCmd(),
		newTokenCmd(),
	)
	return cmd
}

// evaluator builds the evaluator from the persistent flags.
func (o *rootOptions) evaluator(ctx context.Context) (*evaluator.Evaluator, error) {
	rc, err := config.LoadRulesConfig(o.rulesFile)
	if err != nil {
		return nil, err
	}

	var src catalog.Source = catalog.EmbeddedSource{}
	if o.catalogFile != "" {
		src = catalog.FileSource{Path: o.catalogFile}
	}
	ds, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return evaluator.NewFromConfig(rc, ds), nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func writeJSONFile(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writeJSON(f, v, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
