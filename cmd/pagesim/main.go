// Command pagesim drives the dual demand-paging simulator from the
// command line: it owns the tick source and configuration surface
// that the core engine deliberately has no opinion about.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pagesim",
		Short: "Demand-paged virtual memory dual simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a simulator config file (yaml/json/env)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logrus level: trace, debug, info, warn, error")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newParseCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newServeCmd())
	return root
}
