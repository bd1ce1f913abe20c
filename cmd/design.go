package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/designer"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/report"
	"github.com/alexiusacademia/gorcd/internal/version"
)

var (
	designOutputDir  string
	designWorkers    int
	designReportType string
	designTimeout    time.Duration
)

var designCmd = &cobra.Command{
	Use:   "design <beam-data-file>",
	Short: "Design all beams in a beam-data file",
	Long: `Run the flexural, shear and torsion engines over every beam in a
beam-data file (JSON or YAML) and write the results as JSON.

The file describes floors, beam groups and beams with their dimensions
and factored forces at the left, mid and right sections. Results are
written per engine:

  flexural_design.json
  shear_design.json
  torsion_design.json

An optional reinforcement schedule can be written alongside them.

Examples:
  gorcd design beams.json
  gorcd design beams.yaml --output results --report xlsx
  gorcd design beams.json --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runDesign,
}

func init() {
	rootCmd.AddCommand(designCmd)

	designCmd.Flags().StringVarP(&designOutputDir, "output", "o", ".", "Directory for result files")
	designCmd.Flags().IntVar(&designWorkers, "workers", 0, "Concurrent beam designs (0 = one per CPU)")
	designCmd.Flags().StringVar(&designReportType, "report", "", "Also write a reinforcement schedule (csv, xlsx or pdf)")
	designCmd.Flags().DurationVar(&designTimeout, "timeout", 0, "Abort the run after this duration (0 = no limit)")
}

// envelope wraps a result payload with run metadata.
type envelope struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	Tool        string `json:"tool"`
	Source      string `json:"source_file"`
	Payload     any    `json:"results"`
}

func runDesign(cmd *cobra.Command, args []string) error {
	source := args[0]

	doc, err := beamdata.Load(source)
	if err != nil {
		return err
	}

	cfg := config.New(doc, logger)
	runner := designer.NewRunner(cfg, logger, designWorkers)

	ctx := context.Background()
	if designTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, designTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := runner.Run(ctx, doc)
	if err != nil {
		return fmt.Errorf("design run: %w", err)
	}
	logger.Info("design run complete",
		"beams", res.Summary.TotalBeams,
		"sections", res.Summary.SectionsDesigned,
		"elapsed", time.Since(start).Round(time.Millisecond))

	if err := os.MkdirAll(designOutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	runID := uuid.NewString()
	stamp := time.Now().Format(time.RFC3339)
	files := []struct {
		name    string
		payload any
	}{
		{"flexural_design.json", res.Flexure},
		{"shear_design.json", res.Shear},
		{"torsion_design.json", res.Torsion},
	}
	for _, f := range files {
		path := filepath.Join(designOutputDir, f.name)
		if err := writeEnvelope(path, envelope{
			RunID:       runID,
			GeneratedAt: stamp,
			Tool:        "gorcd v" + version.Version,
			Source:      source,
			Payload:     f.payload,
		}); err != nil {
			return err
		}
		logger.Info("wrote result file", "path", path)
	}

	if designReportType != "" {
		if err := writeSchedule(res); err != nil {
			return err
		}
	}

	printRunSummary(res)
	return nil
}

func writeEnvelope(path string, env envelope) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func writeSchedule(res *designer.Results) error {
	rows := report.Rows(res)
	kind := strings.ToLower(designReportType)
	path := filepath.Join(designOutputDir, "reinforcement_schedule."+kind)

	switch kind {
	case "csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		if err := report.WriteCSV(f, rows); err != nil {
			return err
		}
	case "xlsx":
		if err := report.WriteXLSX(path, rows); err != nil {
			return err
		}
	case "pdf":
		if err := report.WritePDF(path, rows); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown report format %q (want csv, xlsx or pdf)", designReportType)
	}

	logger.Info("wrote reinforcement schedule", "path", path)
	return nil
}

func printRunSummary(res *designer.Results) {
	s := res.Summary
	lines := []string{
		fmt.Sprintf("Beams designed:       %d", s.TotalBeams),
		fmt.Sprintf("Sections designed:    %d", s.SectionsDesigned),
		fmt.Sprintf("Flexure PASS:         %d", s.FlexurePass),
		fmt.Sprintf("Flexure REVISE:       %d", s.FlexureRevise),
		fmt.Sprintf("Flexure ERROR:        %d", s.FlexureError),
		fmt.Sprintf("Shear reinforced:     %d", s.ShearReinforced),
	}
	if res.Torsion.Skipped {
		lines = append(lines, "Torsion:              skipped")
	} else {
		lines = append(lines,
			fmt.Sprintf("Torsion reinforced:   %d", s.TorsionReinforced),
			fmt.Sprintf("Side-face reinforced: %d", s.SideFace),
		)
	}
	fmt.Println()
	fmt.Print(diagram.DrawSummaryBox("DESIGN RUN SUMMARY", lines))
	fmt.Println()

	if len(res.Parameters.Warnings) > 0 {
		fmt.Println("  Configuration warnings:")
		for _, w := range res.Parameters.Warnings {
			fmt.Printf("    • %s\n", w)
		}
		fmt.Println()
	}
}
