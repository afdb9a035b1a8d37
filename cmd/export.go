package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/pable/tennisdash/internal/engine"
	"github.com/pable/tennisdash/internal/model"
)

var (
	exportOut      string
	exportSnapshot string
	exportMatches  bool
)

// dashboardExport is the export file schema: the dashboard plus, optionally,
// every normalized set in the snapshot.
type dashboardExport struct {
	model.Dashboard
	Matches []model.Match `json:"matches,omitempty"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard as JSON",
	Long: `Writes the leaderboard, head-to-head records, trends and recent sets of a
stored snapshot as JSON. A --out path ending in .zst is zstd-compressed.

Example:
  tennisdash export --out dashboard.json
  tennisdash export --snapshot 3f9a --matches --out archive.json.zst`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
	exportCmd.Flags().StringVar(&exportSnapshot, "snapshot", "", "snapshot ID prefix (default: newest)")
	exportCmd.Flags().BoolVar(&exportMatches, "matches", false, "include every normalized set")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	var eng *engine.Engine
	if exportSnapshot == "" {
		if eng, err = storedEngine(cmd.Context(), db); err != nil {
			return err
		}
	} else {
		snap, err := db.GetSnapshotByPrefix(cmd.Context(), exportSnapshot)
		if err != nil {
			return fmt.Errorf("query snapshot: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("no snapshot found with ID prefix %q", exportSnapshot)
		}
		eng = engine.New(db, engine.WithFormURL(cfg.Form()))
		eng.Seed(*snap)
	}

	doc := dashboardExport{Dashboard: eng.Dashboard()}
	if exportMatches {
		doc.Matches = eng.Matches()
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	if strings.HasSuffix(exportOut, ".zst") {
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		if err := writeJSON(enc, doc); err != nil {
			enc.Close()
			return err
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
	} else if err := writeJSON(w, doc); err != nil {
		return err
	}

	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s (snapshot %s, %d players)\n", exportOut, shortID(doc.SnapshotID), len(doc.Players))
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
