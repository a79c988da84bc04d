package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sagarc03/statica"
	"github.com/sagarc03/statica/config"
)

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Validate the configuration and the root directory",
	Long: `Load and validate the configuration, verify that the root directory
exists, and report how each given request path would be answered.

Example:
  statica check --root ./public / /index.html /../etc/passwd`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	// The root is always verified eagerly here, whatever the config says.
	cfg.Static.CheckRoot = true

	files, err := newStaticFiles(cfg, slog.Default())
	if err != nil {
		return err
	}

	root := files.Root()
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "root %s ok (mount prefix %s, mode %s)\n", root.Root, root.Prefix(), root.EffectiveMode())

	return checkPaths(cmd.Context(), files, args, out)
}

// checkPaths prints the status and content type HEAD would get for each path.
func checkPaths(ctx context.Context, files *statica.StaticFiles, paths []string, out io.Writer) error {
	prefix := files.Root().Prefix()

	for _, p := range paths {
		suffix, ok := routeSuffix(prefix, p)
		if !ok {
			_, _ = fmt.Fprintf(out, "%s\t%d\toutside mount prefix\n", p, http.StatusNotFound)
			continue
		}

		resp := files.Serve(ctx, statica.Request{
			Method:      http.MethodHead,
			Path:        p,
			RouteSuffix: suffix,
		})
		contentType, _ := resp.Headers.Get(statica.HeaderContentType)
		if err := resp.Close(); err != nil {
			return fmt.Errorf("close response: %w", err)
		}

		_, _ = fmt.Fprintf(out, "%s\t%d\t%s\n", p, resp.Status, contentType)
	}

	return nil
}

// routeSuffix returns the part of p below the mount prefix, as a router would
// capture it.
func routeSuffix(prefix, p string) (string, bool) {
	base := strings.TrimSuffix(prefix, "/")
	if base == "" {
		return strings.TrimPrefix(p, "/"), true
	}
	if p == base {
		return "", true
	}
	return strings.CutPrefix(p, base+"/")
}
