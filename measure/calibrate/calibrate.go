package calibrate

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/cwbudde/algo-iqcal/core"
)

// Errors returned by the imbalance search.
var (
	ErrNilPowerFunc = errors.New("calibrate: power function must not be nil")
	ErrGainLimit    = errors.New("calibrate: gain limit must be inside (0, 1)")
	ErrPhaseLimit   = errors.New("calibrate: phase limit must be inside (0, pi/4)")
	ErrGridPoints   = errors.New("calibrate: grid needs at least 2 points per axis")
)

const (
	defaultGainLimit      = 0.5
	defaultPhaseLimit     = math.Pi / 8
	defaultGridPoints     = 11
	defaultMaxEvaluations = 200
)

// PowerFunc measures the residual image (or carrier) power with the
// trial correction parameters applied. The calibration hardware loop
// (programming the correction, playing a tone, reading a spectrum
// analyzer) lives behind this function.
type PowerFunc func(gain, phase float64) float64

// Search configures the imbalance parameter search.
//
// The search scans a coarse grid over the bounded parameter box and then
// refines the best cell with Nelder-Mead. All candidates stay strictly
// inside the correction domain (|gain| < 1, |phase| < pi/4), so the
// winning parameters are always valid mixer.Correction inputs.
type Search struct {
	GainLimit      float64 // half-width of the gain search box; default 0.5
	PhaseLimit     float64 // half-width of the phase search box in radians; default pi/8
	GridPoints     int     // coarse grid points per axis; default 11
	MaxEvaluations int     // refinement budget; default 200
}

// Result holds the parameters found by the search.
type Result struct {
	Gain        float64
	Phase       float64
	Power       float64 // residual power at the minimum
	Evaluations int     // total PowerFunc calls
}

// Validate checks the explicitly set search parameters.
func (s *Search) Validate() error {
	if s.GainLimit < 0 || s.GainLimit >= 1 {
		return ErrGainLimit
	}

	if s.PhaseLimit < 0 || s.PhaseLimit >= math.Pi/4 {
		return ErrPhaseLimit
	}

	if s.GridPoints == 1 || s.GridPoints < 0 {
		return ErrGridPoints
	}

	return nil
}

func (s *Search) normalized() Search {
	out := *s
	if out.GainLimit == 0 {
		out.GainLimit = defaultGainLimit
	}
	if out.PhaseLimit == 0 {
		out.PhaseLimit = defaultPhaseLimit
	}
	if out.GridPoints == 0 {
		out.GridPoints = defaultGridPoints
	}
	if out.MaxEvaluations <= 0 {
		out.MaxEvaluations = defaultMaxEvaluations
	}
	return out
}

// Run performs the search and returns the minimizing parameters.
func (s *Search) Run(f PowerFunc) (Result, error) {
	if f == nil {
		return Result{}, ErrNilPowerFunc
	}

	if err := s.Validate(); err != nil {
		return Result{}, err
	}

	cfg := s.normalized()

	evaluations := 0
	probe := func(gain, phase float64) float64 {
		evaluations++
		return f(gain, phase)
	}

	best := Result{Power: math.Inf(1)}

	// Coarse scan over the parameter box.
	for gi := range cfg.GridPoints {
		gain := gridValue(gi, cfg.GridPoints, cfg.GainLimit)
		for pi := range cfg.GridPoints {
			phase := gridValue(pi, cfg.GridPoints, cfg.PhaseLimit)

			if p := probe(gain, phase); p < best.Power {
				best = Result{Gain: gain, Phase: phase, Power: p}
			}
		}
	}

	if best.Power == 0 {
		best.Evaluations = evaluations
		return best, nil
	}

	// Nelder-Mead refinement from the best grid cell; candidates are
	// clamped to the box so the objective stays inside the domain.
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			gain := core.Clamp(x[0], -cfg.GainLimit, cfg.GainLimit)
			phase := core.Clamp(x[1], -cfg.PhaseLimit, cfg.PhaseLimit)
			return probe(gain, phase)
		},
	}

	settings := &optimize.Settings{FuncEvaluations: cfg.MaxEvaluations}

	res, err := optimize.Minimize(problem, []float64{best.Gain, best.Phase}, settings, &optimize.NelderMead{})
	if err != nil && res == nil {
		return Result{}, fmt.Errorf("calibrate: %w", err)
	}

	// Hitting the evaluation budget still yields a usable minimizer;
	// keep whichever of grid and refinement measured lower.
	if res != nil && core.IsFinite(res.F) && res.F < best.Power {
		best = Result{
			Gain:  core.Clamp(res.X[0], -cfg.GainLimit, cfg.GainLimit),
			Phase: core.Clamp(res.X[1], -cfg.PhaseLimit, cfg.PhaseLimit),
			Power: res.F,
		}
	}

	best.Evaluations = evaluations

	return best, nil
}

// gridValue maps index i of n points onto [-limit, limit].
func gridValue(i, n int, limit float64) float64 {
	if n == 1 {
		return 0
	}

	return -limit + 2*limit*float64(i)/float64(n-1)
}
