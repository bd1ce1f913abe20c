package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/diagram"
	"github.com/alexiusacademia/gorcd/internal/flexure"
)

var (
	flexWidth     float64
	flexHeight    float64
	flexLength    float64
	flexGrade     string
	flexFy        float64
	flexCover     float64
	flexAggregate float64
	flexMu        float64
	flexLocation  string
	flexFrame     string
	flexBars      []float64

	flexShowDiagram bool
	flexExportFile  string
)

var flexureCmd = &cobra.Command{
	Use:   "flexure",
	Short: "Design flexural reinforcement for one beam section",
	Long: `Calculate the required tension reinforcement for a rectangular beam
section given the factored moment (Mu), then select bars and resolve
their arrangement across layers.

When the singly reinforced maximum is exceeded the design falls back to
a doubly reinforced section with compression steel.

The design follows NSCP 2015 provisions:
  - Section 409.3.2: Strength reduction factors
  - Section 409.6.1.2: Minimum reinforcement
  - Section 410.2.7.3: Equivalent rectangular stress block

Examples:
  # Design a 300x500mm section with Mu=250 kN-m
  gorcd flexure --width 300 --height 500 --mu 250

  # Top steel of a special moment frame, restricted bar sizes
  gorcd flexure -b 300 --height 500 -m 180 --location top --frame special --bars 20,25`,
	Run: runFlexure,
}

func init() {
	rootCmd.AddCommand(flexureCmd)

	flexureCmd.Flags().Float64VarP(&flexWidth, "width", "b", 0, "Beam width (mm) [required]")
	flexureCmd.Flags().Float64Var(&flexHeight, "height", 0, "Beam total depth (mm) [required]")
	flexureCmd.Flags().Float64Var(&flexLength, "length", 6000, "Beam span (mm)")
	flexureCmd.Flags().StringVar(&flexGrade, "grade", "C28", "Concrete grade, e.g. C21, C28, C35")
	flexureCmd.Flags().Float64Var(&flexFy, "fy", 415, "Main steel yield strength fy (MPa)")
	flexureCmd.Flags().Float64VarP(&flexCover, "cover", "c", 40, "Clear concrete cover (mm)")
	flexureCmd.Flags().Float64Var(&flexAggregate, "aggregate", 25, "Maximum aggregate size (mm)")
	flexureCmd.Flags().Float64VarP(&flexMu, "mu", "m", 0, "Factored moment Mu (kN-m) [required]")
	flexureCmd.Flags().StringVar(&flexLocation, "location", "bottom", "Steel location: top or bottom")
	flexureCmd.Flags().StringVar(&flexFrame, "frame", "ordinary", "Frame type: ordinary, intermediate or special")
	flexureCmd.Flags().Float64SliceVar(&flexBars, "bars", nil, "Candidate main bar diameters (mm), empty = all standard sizes")

	flexureCmd.MarkFlagRequired("width")
	flexureCmd.MarkFlagRequired("height")
	flexureCmd.MarkFlagRequired("mu")

	flexureCmd.Flags().BoolVar(&flexShowDiagram, "diagram", false, "Show ASCII section diagram")
	flexureCmd.Flags().StringVarP(&flexExportFile, "output", "o", "", "Export section diagram to file (png, svg, pdf)")
}

// flagDocument assembles a one-off document from calculator flags so the
// single-section commands share the batch configuration path.
func flagDocument(grade string, mainFy, cover, aggregate float64, frame string, mainBars []float64) *beamdata.Document {
	return &beamdata.Document{
		MaterialProperties: beamdata.MaterialProperties{
			ConcreteGrade:    grade,
			MainSteelFy:      mainFy,
			ShearSteelFy:     config.DefaultShearFy,
			ConcreteCover:    cover,
			MaxAggregateSize: aggregate,
		},
		DesignSettings: beamdata.DesignSettings{
			FrameType: frame,
		},
		ReinforcementParameters: beamdata.ReinforcementParameters{
			MainBarRange: mainBars,
		},
	}
}

func runFlexure(cmd *cobra.Command, args []string) {
	doc := flagDocument(flexGrade, flexFy, flexCover, flexAggregate, flexFrame, flexBars)
	cfg := config.New(doc, logger)

	dims := beamdata.Dimensions{Base: flexWidth, Height: flexHeight, Length: flexLength}
	forces := beamdata.SectionForces{MaxMomentBottom: flexMu}
	location := beamdata.LocationBottom
	if flexLocation == beamdata.LocationTop {
		forces = beamdata.SectionForces{MaxMomentTop: flexMu}
		location = beamdata.LocationTop
	}

	eng := flexure.New(cfg, logger)
	rec := eng.DesignSection(dims, forces, beamdata.SectionMid, location)
	if rec.Error != "" {
		fmt.Printf("Error: %s\n", rec.Error)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     FLEXURAL DESIGN - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam Width (b):\t%.0f mm\n", flexWidth)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.0f mm\n", flexHeight)
	fmt.Fprintf(w, "  Effective Depth (d):\t%.1f mm\n", rec.EffectiveDepth)
	fmt.Fprintf(w, "  Concrete Grade:\t%s (f'c = %.1f MPa)\n", cfg.ConcreteGrade, cfg.Fc)
	fmt.Fprintf(w, "  fy:\t%.1f MPa\n", cfg.MainFy)
	fmt.Fprintf(w, "  Factored Moment (Mu):\t%.2f kN-m (%s steel)\n", rec.MuKNm, location)
	fmt.Fprintf(w, "  Frame Type:\t%s\n", cfg.Frame)
	w.Flush()
	fmt.Println()

	fmt.Println("REINFORCEMENT RATIOS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ρ_min:\t%.6f\n", rec.RhoMin)
	fmt.Fprintf(w, "  ρ_max:\t%.6f\n", rec.RhoMax)
	fmt.Fprintf(w, "  ρ_bal:\t%.6f\n", rec.RhoBalanced)
	if rec.Singly != nil {
		fmt.Fprintf(w, "  ρ_required:\t%.6f\n", rec.Singly.Rho)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("STEEL AREA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  As,min:\t%.2f mm²\n", rec.MinArea)
	fmt.Fprintf(w, "  As,required:\t%.2f mm²\n", rec.RequiredArea)
	if rec.Kind == flexure.KindDoubly && rec.Doubly != nil {
		fmt.Fprintf(w, "  As1 (tension, balanced):\t%.2f mm²\n", rec.Doubly.As1)
		fmt.Fprintf(w, "  As2 (tension, couple):\t%.2f mm²\n", rec.Doubly.As2)
		fmt.Fprintf(w, "  A's (compression):\t%.2f mm²\n", rec.Doubly.AscProvided)
	}
	w.Flush()
	fmt.Println()

	printBarSelection(rec)
	printCapacityCheck(rec)

	if flexShowDiagram || flexExportFile != "" {
		data := diagram.FromRecord(dims, rec, cfg.Cover, cfg.StirrupDia())
		if flexShowDiagram {
			fmt.Println(diagram.DrawASCII(data))
		}
		if flexExportFile != "" {
			if err := diagram.ExportSection(data, flexExportFile); err != nil {
				fmt.Printf("Error exporting diagram: %v\n", err)
			} else {
				fmt.Printf("Diagram exported to: %s\n", flexExportFile)
			}
		}
	}
}

func printBarSelection(rec *flexure.Record) {
	fmt.Println("BAR SELECTION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	if rec.Bars == nil {
		fmt.Println("  No constructible bar combination found.")
		if rec.Arrangement != nil {
			for _, h := range rec.Arrangement.Hints {
				fmt.Printf("  Consider: %s\n", h)
			}
		}
		fmt.Println()
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Recommended:\t%s (%.2f mm²)\n", rec.Bars.Describe(), rec.Bars.TotalArea)
	fmt.Fprintf(w, "  Excess:\t%.1f%%\n", rec.Bars.ExcessPercent)
	if rec.Arrangement != nil {
		fmt.Fprintf(w, "  Arrangement:\t%s\n", rec.Arrangement.Describe())
		if rec.Arrangement.OK {
			fmt.Fprintf(w, "  Clear spacing:\t%.1f mm (min %.1f mm)\n",
				rec.Arrangement.ClearSpacing, rec.Arrangement.MinSpacing)
		}
	}
	w.Flush()

	if len(rec.Combinations) > 1 {
		fmt.Println()
		fmt.Println("  Alternatives:")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  Bars\tAs Provided\tExcess\n")
		fmt.Fprintf(w, "  ────\t───────────\t──────\n")
		for _, c := range rec.Combinations {
			fmt.Fprintf(w, "  %s\t%.2f mm²\t%.1f%%\n", c.Describe(), c.TotalArea, c.ExcessPercent)
		}
		w.Flush()
	}
	fmt.Println()
}

func printCapacityCheck(rec *flexure.Record) {
	fmt.Println("VERIFICATION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if rec.Capacity != nil {
		fmt.Fprintf(w, "  φMn:\t%.2f kN-m\n", rec.Capacity.PhiMnKNm)
		fmt.Fprintf(w, "  Capacity ratio:\t%.3f\n", rec.Capacity.Ratio)
	}
	if rec.Strain != nil {
		fmt.Fprintf(w, "  Stress block (a):\t%.2f mm\n", rec.Strain.StressBlock)
		fmt.Fprintf(w, "  Neutral axis (c):\t%.2f mm\n", rec.Strain.NeutralAxis)
		fmt.Fprintf(w, "  Steel strain (εs):\t%.6f (εy = %.6f)\n", rec.Strain.EpsilonS, rec.Strain.EpsilonY)
	}
	if rec.Ductility != nil {
		fmt.Fprintf(w, "  Ductility index:\t%.2f (min %.2f)\n", rec.Ductility.Index, rec.Ductility.MinIndex)
	}
	w.Flush()
	fmt.Println()

	switch rec.Status {
	case flexure.StatusPass:
		fmt.Println("  ╔═════════════════════════════════════════╗")
		fmt.Println("  ║  DESIGN OK                              ║")
		fmt.Println("  ╚═════════════════════════════════════════╝")
	default:
		fmt.Println("  ╔═════════════════════════════════════════╗")
		fmt.Println("  ║  REVISE SECTION                         ║")
		fmt.Println("  ╚═════════════════════════════════════════╝")
	}
	if rec.Note != "" {
		fmt.Printf("\n  Note: %s\n", rec.Note)
	}
	fmt.Println()
}
