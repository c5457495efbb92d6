// Command bandctl resolves postal codes and scores profiles from the shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/bandseeking/bandseeking-go/internal/util"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:           "bandctl",
	Short:         "BandSeeking location and profile tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(resolveCmd, scoreCmd, defaultProfileCmd)
}

func newLogger() *zap.Logger {
	logger, err := util.NewLogger(logLevel, "")
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
