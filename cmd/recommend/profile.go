package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pageza/nutriplan/backend/internal/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newProfileCmd(root *rootOptions) *cobra.Command {
	var (
		input  string
		save   string
		pretty bool
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Evaluate one JSON profile and print the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("failed to open input: %w", err)
			}
			raw, err := profile.DecodeJSON(f)
			f.Close()
			if err != nil {
				return err
			}

			ev, err := root.evaluator(cmd.Context())
			if err != nil {
				return err
			}
			result, err := ev.Evaluate(raw)
			if err != nil {
				return err
			}

			if err := writeJSON(cmd.OutOrStdout(), result, pretty); err != nil {
				return err
			}
			if save != "" {
				if err := os.MkdirAll(filepath.Dir(save), 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
				if err := writeJSONFile(save, result); err != nil {
					return err
				}
				log.Info().Str("path", save).Msg("saved output")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "path to the JSON profile")
	cmd.Flags().StringVar(&save, "save", "", "also write the plan to this file")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the printed JSON")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}
