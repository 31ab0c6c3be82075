package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pageza/nutriplan/backend/internal/middleware"
	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newBatchCmd(root *rootOptions) *cobra.Command {
	var (
		csvPath string
		outdir  string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate every row of a CSV, one JSON file per row",
		Long: "Reads a CSV whose header names profile fields and writes profile_001.json, " +
			"profile_002.json and so on. Rows that fail validation get the error document " +
			"instead and the command exits non-zero after processing every row.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := root.evaluator(cmd.Context())
			if err != nil {
				return err
			}

			f, err := os.Open(csvPath)
			if err != nil {
				return fmt.Errorf("failed to open csv: %w", err)
			}
			defer f.Close()

			if err := os.MkdirAll(outdir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			r := csv.NewReader(f)
			r.FieldsPerRecord = -1
			header, err := r.Read()
			if err != nil {
				return fmt.Errorf("failed to read csv header: %w", err)
			}

			var rows, failed int
			for {
				record, err := r.Read()
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("failed to read csv row %d: %w", rows+1, err)
				}
				rows++

				path := filepath.Join(outdir, fmt.Sprintf("profile_%03d.json", rows))
				var out interface{}
				result, err := ev.Evaluate(profile.FromRecord(header, record))
				var verr *profile.ValidationError
				switch {
				case errors.As(err, &verr):
					failed++
					out = middleware.ErrorResponse{Error: "invalid profile", Fields: verr.Fields}
					log.Warn().Int("row", rows).Err(err).Msg("row failed validation")
				case err != nil:
					return err
				default:
					out = result
				}

				if err := writeJSONFile(path, out); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
			}

			log.Info().Int("rows", rows).Int("failed", failed).Msg("batch finished")
			if failed > 0 {
				return fmt.Errorf("%d of %d rows failed validation", failed, rows)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&csvPath, "csv", "", "path to the profiles CSV")
	cmd.Flags().StringVar(&outdir, "outdir", "", "directory for the JSON outputs")
	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("outdir")
	return cmd
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [file]",
		Short: "Write an empty CSV with the batch columns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create template: %w", err)
				}
				defer f.Close()
				out = f
			}
			w := csv.NewWriter(out)
			if err := w.Write(profile.FieldNames); err != nil {
				return err
			}
			w.Flush()
			return w.Error()
		},
	}
}
