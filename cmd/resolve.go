package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"biliredirect/internal/extract"
	"biliredirect/internal/media"
	"biliredirect/internal/provider"
	"biliredirect/internal/resolve"
)

var flagJSON bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <video URL or BVID>",
	Short: "Resolve one video link and print its CDN URL",
	Args:  cobra.ExactArgs(1),
	RunE:  resolveRun,
}

func init() {
	resolveCmd.Flags().BoolVarP(&flagJSON, "json", "j", false, "Output the resolution as JSON")
}

func resolveRun(cmd *cobra.Command, args []string) error {
	bvid, err := extract.BVID(args[0])
	if err != nil {
		return fmt.Errorf("could not find a valid BVID in %q", args[0])
	}
	log.Debug().Str("bvid", bvid).Msg("extracted")

	r := resolve.New(provider.NewBilibili(cfg.Upstream), log)
	res, err := r.Resolve(cmd.Context(), bvid)
	if err != nil {
		return err
	}

	return printResolution(cmd.OutOrStdout(), res, flagJSON)
}

func printResolution(w io.Writer, res *media.Resolution, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err := fmt.Fprintln(w, res.URL)
	return err
}
