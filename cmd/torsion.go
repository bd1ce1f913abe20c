package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/torsion"
)

var (
	torsWidth  float64
	torsHeight float64
	torsLength float64
	torsGrade  string
	torsFy     float64
	torsCover  float64
	torsTu     float64
)

var torsionCmd = &cobra.Command{
	Use:   "torsion",
	Short: "Check torsion reinforcement for one beam section",
	Long: `Check a rectangular beam section against a factored torsional moment
(Tu). When the factored concrete capacity φTc is exceeded, closed
stirrup area and spacing requirements are reported. Sections deeper
than 750 mm also get side-face reinforcement requirements.

Examples:
  # 300x500mm section with Tu=80 kN-m
  gorcd torsion --width 300 --height 500 --tu 80

  # Deep beam
  gorcd torsion -b 400 --height 800 --tu 200`,
	Run: runTorsion,
}

func init() {
	rootCmd.AddCommand(torsionCmd)

	torsionCmd.Flags().Float64VarP(&torsWidth, "width", "b", 0, "Beam width (mm) [required]")
	torsionCmd.Flags().Float64Var(&torsHeight, "height", 0, "Beam total depth (mm) [required]")
	torsionCmd.Flags().Float64Var(&torsLength, "length", 6000, "Beam span (mm)")
	torsionCmd.Flags().StringVar(&torsGrade, "grade", "C28", "Concrete grade, e.g. C21, C28, C35")
	torsionCmd.Flags().Float64Var(&torsFy, "fy", 415, "Main steel yield strength fy (MPa)")
	torsionCmd.Flags().Float64VarP(&torsCover, "cover", "c", 40, "Clear concrete cover (mm)")
	torsionCmd.Flags().Float64VarP(&torsTu, "tu", "t", 0, "Factored torsional moment Tu (kN-m) [required]")

	torsionCmd.MarkFlagRequired("width")
	torsionCmd.MarkFlagRequired("height")
	torsionCmd.MarkFlagRequired("tu")
}

func runTorsion(cmd *cobra.Command, args []string) {
	doc := flagDocument(torsGrade, torsFy, torsCover, config.DefaultAggregate, "ordinary", nil)
	cfg := config.New(doc, logger)

	dims := beamdata.Dimensions{Base: torsWidth, Height: torsHeight, Length: torsLength}
	forces := beamdata.SectionForces{MaxTorsion: torsTu}

	eng := torsion.New(cfg, logger)
	rec := eng.DesignSection(dims, forces, beamdata.SectionMid)
	if rec.Error != "" {
		fmt.Printf("Error: %s\n", rec.Error)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     TORSION DESIGN - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam Width (b):\t%.0f mm\n", rec.Width)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.0f mm\n", rec.Height)
	fmt.Fprintf(w, "  Concrete Grade:\t%s (f'c = %.1f MPa)\n", cfg.ConcreteGrade, cfg.Fc)
	fmt.Fprintf(w, "  Factored Torsion (Tu):\t%.2f kN-m\n", rec.TuKNm)
	w.Flush()
	fmt.Println()

	fmt.Println("CAPACITY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Concrete capacity (Tc):\t%.2f kN-m\n", rec.TcKNm)
	fmt.Fprintf(w, "  φTc:\t%.2f kN-m\n", rec.PhiTcKNm)
	fmt.Fprintf(w, "  Demand ratio (Tu/φTc):\t%.3f\n", rec.CapacityRatio)
	w.Flush()
	fmt.Println()

	fmt.Println("REINFORCEMENT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if rec.ReinforcementRequired {
		fmt.Fprintf(w, "  Torsion reinforcement:\tREQUIRED\n")
		fmt.Fprintf(w, "  Closed stirrups:\t#%.0f @ %.0f mm\n", rec.StirrupDia, rec.Spacing)
		fmt.Fprintf(w, "  Av/s:\t%.4f mm²/mm\n", rec.AreaPerLength)
		fmt.Fprintf(w, "  Area per spacing:\t%.2f mm²\n", rec.AreaRequired)
	} else {
		fmt.Fprintf(w, "  Torsion reinforcement:\tnot required\n")
	}
	w.Flush()
	fmt.Println()

	fmt.Println("SIDE-FACE REINFORCEMENT:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	sf := rec.SideFace
	if sf.Required {
		fmt.Fprintf(w, "  Required:\tyes (%s)\n", sf.Justification)
		fmt.Fprintf(w, "  Min area per face:\t%.2f mm²\n", sf.MinAreaPerFace)
		fmt.Fprintf(w, "  Max spacing:\t%.0f mm\n", sf.MaxSpacing)
	} else {
		fmt.Fprintf(w, "  Required:\tno (%s)\n", sf.Justification)
	}
	w.Flush()
	fmt.Println()
}
