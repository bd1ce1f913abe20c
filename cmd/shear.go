package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/shear"
)

var (
	shearWidth   float64
	shearHeight  float64
	shearLength  float64
	shearGrade   string
	shearFyv     float64
	shearCover   float64
	shearVu      float64
	shearMu      float64
	shearNu      float64
	shearMainBar float64
	shearAsTop   float64
	shearAsBot   float64
	shearStirrup float64
	shearFrame   string
)

var shearCmd = &cobra.Command{
	Use:   "shear",
	Short: "Design shear reinforcement for one beam section",
	Long: `Calculate the concrete shear capacity (Vc), the required steel shear
(Vs) and the stirrup spacing for a rectangular beam section under a
factored shear force (Vu).

Axial force raises or lowers the concrete capacity, and when a factored
moment is given the detailed Vc expression is checked as well. Spacing
is limited per NSCP 2015 and tightened for special moment frames.

Examples:
  # 300x500mm section with Vu=150 kN and Mu=200 kN-m
  gorcd shear --width 300 --height 500 --vu 150 --mu 200

  # Special moment frame with axial compression
  gorcd shear -b 300 --height 500 --vu 200 --nu 300 --frame special`,
	Run: runShear,
}

func init() {
	rootCmd.AddCommand(shearCmd)

	shearCmd.Flags().Float64VarP(&shearWidth, "width", "b", 0, "Beam width (mm) [required]")
	shearCmd.Flags().Float64Var(&shearHeight, "height", 0, "Beam total depth (mm) [required]")
	shearCmd.Flags().Float64Var(&shearLength, "length", 6000, "Beam span (mm)")
	shearCmd.Flags().StringVar(&shearGrade, "grade", "C28", "Concrete grade, e.g. C21, C28, C35")
	shearCmd.Flags().Float64Var(&shearFyv, "fyv", 275, "Stirrup steel yield strength fyv (MPa)")
	shearCmd.Flags().Float64VarP(&shearCover, "cover", "c", 40, "Clear concrete cover (mm)")
	shearCmd.Flags().Float64Var(&shearVu, "vu", 0, "Factored shear force Vu (kN) [required]")
	shearCmd.Flags().Float64VarP(&shearMu, "mu", "m", 0, "Concurrent factored moment Mu (kN-m)")
	shearCmd.Flags().Float64Var(&shearNu, "nu", 0, "Factored axial force Nu (kN, compression positive)")
	shearCmd.Flags().Float64Var(&shearMainBar, "main-bar", 20, "Main bar diameter (mm)")
	shearCmd.Flags().Float64Var(&shearAsTop, "as-top", 0, "Provided top steel area (mm²)")
	shearCmd.Flags().Float64Var(&shearAsBot, "as-bottom", 0, "Provided bottom steel area (mm²)")
	shearCmd.Flags().Float64Var(&shearStirrup, "stirrup", 10, "Stirrup bar diameter (mm)")
	shearCmd.Flags().StringVar(&shearFrame, "frame", "ordinary", "Frame type: ordinary, intermediate or special")

	shearCmd.MarkFlagRequired("width")
	shearCmd.MarkFlagRequired("height")
	shearCmd.MarkFlagRequired("vu")
}

func runShear(cmd *cobra.Command, args []string) {
	doc := flagDocument(shearGrade, config.DefaultMainFy, shearCover, config.DefaultAggregate, shearFrame, nil)
	doc.MaterialProperties.ShearSteelFy = shearFyv
	doc.ReinforcementParameters.StirrupBarRange = []float64{shearStirrup}
	cfg := config.New(doc, logger)

	dims := beamdata.Dimensions{Base: shearWidth, Height: shearHeight, Length: shearLength}
	forces := beamdata.SectionForces{
		MaxShear:        shearVu,
		MaxMomentBottom: shearMu,
		MaxAxial:        shearNu,
	}
	steel := shear.MainSteel{
		BarDiameter: shearMainBar,
		AreaTop:     shearAsTop,
		AreaBottom:  shearAsBot,
	}

	eng := shear.New(cfg, logger)
	rec := eng.DesignSection(dims, forces, beamdata.SectionMid, steel)
	if rec.Error != "" {
		fmt.Printf("Error: %s\n", rec.Error)
		return
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SHEAR DESIGN - NSCP 2015")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Beam Width (b):\t%.0f mm\n", rec.Width)
	fmt.Fprintf(w, "  Beam Depth (h):\t%.0f mm\n", rec.Height)
	fmt.Fprintf(w, "  Effective Depth (d):\t%.1f mm\n", rec.EffectiveDepth)
	fmt.Fprintf(w, "  Concrete Grade:\t%s (f'c = %.1f MPa)\n", cfg.ConcreteGrade, cfg.Fc)
	fmt.Fprintf(w, "  fyv:\t%.1f MPa\n", cfg.ShearFy)
	fmt.Fprintf(w, "  Factored Shear (Vu):\t%.2f kN\n", rec.VuKN)
	if rec.MuKNm != 0 {
		fmt.Fprintf(w, "  Concurrent Moment (Mu):\t%.2f kN-m\n", rec.MuKNm)
	}
	if rec.NuKN != 0 {
		fmt.Fprintf(w, "  Axial Force (Nu):\t%.2f kN\n", rec.NuKN)
	}
	fmt.Fprintf(w, "  Steel ratio (ρ):\t%.5f\n", rec.Rho)
	fmt.Fprintf(w, "  Frame Type:\t%s\n", cfg.Frame)
	w.Flush()
	fmt.Println()

	fmt.Println("CAPACITY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Concrete capacity (Vc):\t%.2f kN\n", rec.VcKN)
	fmt.Fprintf(w, "  φVc:\t%.2f kN\n", cfg.PhiShear*rec.VcKN)
	fmt.Fprintf(w, "  Required steel shear (Vs):\t%.2f kN\n", rec.VsKN)
	w.Flush()
	fmt.Println()

	fmt.Println("STIRRUPS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if rec.ReinforcementRequired {
		fmt.Fprintf(w, "  Provide:\t%s\n", rec.Describe())
		fmt.Fprintf(w, "  Spacing required:\t%.1f mm\n", rec.SpacingRequired)
	} else {
		fmt.Fprintf(w, "  Provide:\t%s (minimum reinforcement)\n", rec.Describe())
	}
	fmt.Fprintf(w, "  Spacing limits:\t%.0f - %.0f mm\n", rec.Limits.Min, rec.Limits.Max)
	w.Flush()
	if rec.Note != "" {
		fmt.Printf("\n  Note: %s\n", rec.Note)
	}
	fmt.Println()
}
