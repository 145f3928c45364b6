// Package score aggregates classified evidence items into a team-size
// estimate with a human-readable evidence trail. Tier A (direct numeric
// mention) pre-empts Tier B (weighted heuristic signals).
package score

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Band maps a cumulative heuristic score to a conservative team size.
type Band struct {
	MinScore   int
	TeamSize   int
	Descriptor string
}

// Config holds the empirically tuned scoring weights and bands. They are
// constants in spirit but live in config so tests and future tuning can
// override them without code changes.
type Config struct {
	// Tier B weights.
	VacancyPoints3Plus int
	VacancyPoints2     int
	VacancyPoints1     int
	RolesPoints        int
	Points24x7         int
	PointsShift        int
	PointsTier         int
	PointsBothChannels int
	PointsOneChannel   int
	PointsLoad         int

	// Score-to-size bands, highest MinScore first.
	Bands []Band

	// MinTeamSize is the admission threshold for a direct mention and for
	// every downstream stage.
	MinTeamSize int

	// MaxDirectSize bounds Tier A captures on the site-analysis path, where
	// unrelated figures (revenue, client counts) are common. Zero disables
	// the upper bound.
	MaxDirectSize int
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		VacancyPoints3Plus: 20,
		VacancyPoints2:     10,
		VacancyPoints1:     5,
		RolesPoints:        15,
		Points24x7:         20,
		PointsShift:        15,
		PointsTier:         10,
		PointsBothChannels: 10,
		PointsOneChannel:   5,
		PointsLoad:         15,
		Bands: []Band{
			{MinScore: 30, TeamSize: 18, Descriptor: "several distinct roles and specializations"},
			{MinScore: 20, TeamSize: 15, Descriptor: "multiple roles and support channels"},
			{MinScore: 15, TeamSize: 12, Descriptor: "minimal team structure"},
			{MinScore: 10, TeamSize: 10, Descriptor: "conservative estimate from job signals"},
		},
		MinTeamSize:   10,
		MaxDirectSize: 500,
	}
}

// Validate checks that a Config is internally consistent.
func (c Config) Validate() error {
	var errs []string

	points := map[string]int{
		"vacancy_points_3plus": c.VacancyPoints3Plus,
		"vacancy_points_2":     c.VacancyPoints2,
		"vacancy_points_1":     c.VacancyPoints1,
		"roles_points":         c.RolesPoints,
		"points_24_7":          c.Points24x7,
		"points_shift":         c.PointsShift,
		"points_tier":          c.PointsTier,
		"points_both_channels": c.PointsBothChannels,
		"points_one_channel":   c.PointsOneChannel,
		"points_load":          c.PointsLoad,
	}
	for name, p := range points {
		if p < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if len(c.Bands) == 0 {
		errs = append(errs, "at least one score band is required")
	}
	for i := 1; i < len(c.Bands); i++ {
		if c.Bands[i].MinScore >= c.Bands[i-1].MinScore {
			errs = append(errs, "bands must be ordered by descending min_score")
			break
		}
	}

	if c.MinTeamSize < 0 {
		errs = append(errs, "min_team_size must be >= 0")
	}
	if c.MaxDirectSize > 0 && c.MaxDirectSize < c.MinTeamSize {
		errs = append(errs, "max_direct_size must be >= min_team_size")
	}

	if len(errs) > 0 {
		return eris.Errorf("score: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// teamSizeFor maps a cumulative score through the bands. Scores below every
// band map to zero, which is below the admission threshold.
func (c Config) teamSizeFor(score int) (int, string) {
	for _, b := range c.Bands {
		if score >= b.MinScore {
			return b.TeamSize, b.Descriptor
		}
	}
	return 0, ""
}
