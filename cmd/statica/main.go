package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "statica",
	Short:   "Static file server with a sandboxed root",
	Long: `Statica serves the files of one directory over HTTP.

Request paths are normalized and confined to the root directory,
responses carry ETag and Last-Modified validators, and file bodies
are streamed in fixed-size chunks.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable; later files win (default: ./statica.yaml)")
	rootCmd.PersistentFlags().String("root", "", "directory to serve (default: ./public, env: STATICA_STATIC_ROOT)")
	rootCmd.PersistentFlags().String("mount-prefix", "", "URL prefix the root is mounted at (default: /, env: STATICA_STATIC_MOUNT_PREFIX)")
	rootCmd.PersistentFlags().String("index-file", "", "file served for directory paths (default: index.html, env: STATICA_STATIC_INDEX_FILE)")
	rootCmd.PersistentFlags().String("mime-file", "", "JSON or YAML file with extension to content type overrides (env: STATICA_MIME_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default: info, env: STATICA_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
