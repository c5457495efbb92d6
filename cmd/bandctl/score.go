package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bandseeking/bandseeking-go/internal/domain"
	"github.com/bandseeking/bandseeking-go/internal/profile"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [file|-]",
	Short: "Score the completion of a profile JSON document",
	Long: `Read a profile (the JSON shape of the profiles table) from a file or stdin
and print its completion report. No database or network access is needed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScore,
}

var defaultProfileCmd = &cobra.Command{
	Use:   "default-profile",
	Short: "Print the placeholder profile assigned to new accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), profile.NewDefaultProfile(nil))
	},
}

func runScore(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read profile: %w", err)
	}

	var p domain.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parse profile: %w", err)
	}

	svc := profile.NewService(nil, nil, profile.NewEncourager(nil), newLogger())
	return writeJSON(cmd.OutOrStdout(), svc.Build(cmd.Context(), &p))
}
