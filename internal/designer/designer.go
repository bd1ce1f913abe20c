// Package designer orchestrates a full design run: it walks the floor →
// beam-group → beam hierarchy, runs the flexural engine first, feeds its
// bar selection to the shear engine and runs the torsion engine
// independently, then rolls the three result hierarchies up with summary
// statistics.
//
// Beams are independent once the configuration is built, so the runner
// processes them on a bounded worker pool. The produced Results value is
// a pure function of the input document and configuration.
package designer

import (
	"context"
	"runtime"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/alexiusacademia/gorcd/internal/beamdata"
	"github.com/alexiusacademia/gorcd/internal/config"
	"github.com/alexiusacademia/gorcd/internal/flexure"
	"github.com/alexiusacademia/gorcd/internal/shear"
	"github.com/alexiusacademia/gorcd/internal/torsion"
)

// Parameters echoes the resolved configuration a run was made with.
type Parameters struct {
	FrameType       string   `json:"frame_type"`
	ConcreteGrade   string   `json:"concrete_grade"`
	Fc              float64  `json:"fc_prime"`
	MainSteelFy     float64  `json:"main_steel_fy"`
	ShearSteelFy    float64  `json:"shear_steel_fy"`
	ConcreteCover   float64  `json:"concrete_cover"`
	PhiFlexure      float64  `json:"reduction_factor_flexure"`
	PhiShear        float64  `json:"reduction_factor_shear"`
	PhiTorsion      float64  `json:"reduction_factor_torsion"`
	ConsiderTorsion bool     `json:"consider_torsion"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Summary carries run-level statistics.
type Summary struct {
	TotalBeams        int `json:"total_beams"`
	SectionsDesigned  int `json:"sections_designed"`
	FlexurePass       int `json:"flexure_pass"`
	FlexureRevise     int `json:"flexure_revise"`
	FlexureError      int `json:"flexure_error"`
	ShearReinforced   int `json:"beams_with_shear_reinforcement"`
	TorsionReinforced int `json:"beams_requiring_torsion_reinforcement"`
	SideFace          int `json:"beams_with_side_face_reinforcement"`
}

// FlexureBeams maps floor → group → beam to the flexural design.
type FlexureBeams map[string]map[string]map[string]*flexure.BeamDesign

// ShearBeams maps floor → group → beam to the shear design.
type ShearBeams map[string]map[string]map[string]*shear.BeamDesign

// TorsionBeams maps floor → group → beam to the torsion design.
type TorsionBeams map[string]map[string]map[string]*torsion.BeamDesign

// TorsionResults wraps the torsion hierarchy with the skip state driven
// by the consider_torsion_design setting.
type TorsionResults struct {
	Skipped    bool         `json:"skipped"`
	SkipReason string       `json:"skip_reason,omitempty"`
	Beams      TorsionBeams `json:"beams,omitempty"`
}

// Results is the complete output of a design run. It mirrors the input
// hierarchy three times, one per engine, each independently consumable.
type Results struct {
	Parameters Parameters     `json:"parameters"`
	Flexure    FlexureBeams   `json:"flexure"`
	Shear      ShearBeams     `json:"shear"`
	Torsion    TorsionResults `json:"torsion"`
	Summary    Summary        `json:"summary"`
}

// Runner executes design runs on a bounded worker pool.
type Runner struct {
	cfg     config.Config
	log     *log.Logger
	workers int
}

// NewRunner creates a runner. workers <= 0 selects one worker per CPU.
func NewRunner(cfg config.Config, logger *log.Logger, workers int) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Runner{cfg: cfg, log: logger, workers: workers}
}

type beamJob struct {
	floor, group, name string
	beam               beamdata.Beam
}

type beamResult struct {
	beamJob
	flexure *flexure.BeamDesign
	shear   *shear.BeamDesign
	torsion *torsion.BeamDesign
}

// Run designs every beam of the document. The context is observed
// between beams; a cancelled run returns the context error with partial
// results discarded.
func (r *Runner) Run(ctx context.Context, doc *beamdata.Document) (*Results, error) {
	res := &Results{
		Parameters: r.parameters(),
		Flexure:    make(FlexureBeams, len(doc.FloorGroups)),
		Shear:      make(ShearBeams, len(doc.FloorGroups)),
	}
	if r.cfg.ConsiderTorsion {
		res.Torsion.Beams = make(TorsionBeams, len(doc.FloorGroups))
	} else {
		res.Torsion.Skipped = true
		res.Torsion.SkipReason = "torsion design disabled in configuration"
		r.log.Info("torsion design skipped", "reason", res.Torsion.SkipReason)
	}

	jobs := collectJobs(doc)
	results := make([]beamResult, len(jobs))

	flexEng := flexure.New(r.cfg, r.log)
	shearEng := shear.New(r.cfg, r.log)
	torsionEng := torsion.New(r.cfg, r.log)

	var wg sync.WaitGroup
	sem := make(chan struct{}, r.workers)
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, job beamJob) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = r.designBeam(job, flexEng, shearEng, torsionEng)
		}(i, job)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, br := range results {
		r.place(res, br)
	}
	r.summarize(res)
	return res, nil
}

// designBeam runs the strict per-beam pipeline: flexure first, shear on
// its bar selection, torsion independently.
func (r *Runner) designBeam(job beamJob, flexEng *flexure.Engine, shearEng *shear.Engine, torsionEng *torsion.Engine) beamResult {
	br := beamResult{beamJob: job}

	br.flexure = flexEng.DesignBeam(job.beam)

	steel := make(map[string]shear.MainSteel, len(beamdata.Sections))
	for _, section := range beamdata.Sections {
		topDia, bottomDia := br.flexure.MainBarDia(section)
		topArea, bottomArea := br.flexure.SteelArea(section)
		steel[section] = shear.MainSteel{
			BarDiameter: governingBarDia(topDia, bottomDia),
			AreaTop:     topArea,
			AreaBottom:  bottomArea,
		}
	}
	br.shear = shearEng.DesignBeam(job.beam, steel)

	if r.cfg.ConsiderTorsion {
		br.torsion = torsionEng.DesignBeam(job.beam)
	}

	r.log.Debug("beam designed", "floor", job.floor, "group", job.group, "beam", job.name)
	return br
}

// governingBarDia returns the smaller of the two face diameters; a zero
// means that face had no selection and the other governs alone.
func governingBarDia(top, bottom float64) float64 {
	switch {
	case top <= 0:
		return bottom
	case bottom <= 0:
		return top
	case bottom < top:
		return bottom
	default:
		return top
	}
}

func collectJobs(doc *beamdata.Document) []beamJob {
	var jobs []beamJob
	for _, floor := range sortedKeys(doc.FloorGroups) {
		groups := doc.FloorGroups[floor]
		for _, group := range sortedKeys(groups) {
			beams := groups[group]
			for _, name := range sortedKeys(beams) {
				jobs = append(jobs, beamJob{floor: floor, group: group, name: name, beam: beams[name]})
			}
		}
	}
	return jobs
}

func (r *Runner) place(res *Results, br beamResult) {
	ensure(res.Flexure, br.floor, br.group)[br.name] = br.flexure
	ensure(res.Shear, br.floor, br.group)[br.name] = br.shear
	if br.torsion != nil {
		ensure(res.Torsion.Beams, br.floor, br.group)[br.name] = br.torsion
	}
}

func (r *Runner) parameters() Parameters {
	return Parameters{
		FrameType:       string(r.cfg.Frame),
		ConcreteGrade:   r.cfg.ConcreteGrade,
		Fc:              r.cfg.Fc,
		MainSteelFy:     r.cfg.MainFy,
		ShearSteelFy:    r.cfg.ShearFy,
		ConcreteCover:   r.cfg.Cover,
		PhiFlexure:      r.cfg.PhiFlexure,
		PhiShear:        r.cfg.PhiShear,
		PhiTorsion:      r.cfg.PhiTorsion,
		ConsiderTorsion: r.cfg.ConsiderTorsion,
		Warnings:        r.cfg.Warnings,
	}
}

func (r *Runner) summarize(res *Results) {
	var s Summary
	for _, groups := range res.Flexure {
		for _, beams := range groups {
			for _, bd := range beams {
				s.TotalBeams++
				for _, locs := range bd.Sections {
					for _, rec := range locs {
						s.SectionsDesigned++
						switch rec.Status {
						case flexure.StatusPass:
							s.FlexurePass++
						case flexure.StatusRevise:
							s.FlexureRevise++
						case flexure.StatusError:
							s.FlexureError++
						}
					}
				}
			}
		}
	}
	for _, groups := range res.Shear {
		for _, beams := range groups {
			for _, bd := range beams {
				for _, rec := range bd.Sections {
					if rec.ReinforcementRequired {
						s.ShearReinforced++
						break
					}
				}
			}
		}
	}
	for _, groups := range res.Torsion.Beams {
		for _, beams := range groups {
			for _, bd := range beams {
				if bd.TorsionRequired {
					s.TorsionReinforced++
				}
				if bd.SideFaceRequired {
					s.SideFace++
				}
			}
		}
	}
	res.Summary = s
}
