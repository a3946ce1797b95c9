package draw

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
)

// ErrInvalidConfig is matched by every error Build returns.
var ErrInvalidConfig = errors.New("invalid draw configuration")

// ConfigError reports a pool that cannot be split into matchups of the configured size.
type ConfigError struct {
	TeamsPerMatchup int
	TeamCount       int
}

func (e *ConfigError) Error() string {
	if e.TeamsPerMatchup <= 0 {
		return fmt.Sprintf("teams per matchup must be positive, got %d", e.TeamsPerMatchup)
	}
	return fmt.Sprintf("number of teams must be a multiple of %d", e.TeamsPerMatchup)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

type Team struct {
	ID            int `json:"id"`
	TeamPoints    int `json:"team_points"`
	SpeakerPoints int `json:"speaker_points"`
}

type Pool struct {
	Teams []Team
}

type Config struct {
	TeamsPerMatchup int
}

// Bracket is the set of teams sharing one team points value.
type Bracket struct {
	TeamPoints int
	Teams      []Team
}

type Matchup []Team

type Draw struct {
	Matchups []Matchup
}

// Brackets groups the pool by team points in ascending order. Teams inside a
// bracket keep their pool order. The pool itself is left untouched.
func (p Pool) Brackets() []Bracket {
	teams := slices.Clone(p.Teams)
	slices.SortStableFunc(teams, func(a, b Team) int {
		return cmp.Compare(a.TeamPoints, b.TeamPoints)
	})

	brackets := make([]Bracket, 0)
	for _, team := range teams {
		n := len(brackets)
		if n == 0 || brackets[n-1].TeamPoints != team.TeamPoints {
			brackets = append(brackets, Bracket{TeamPoints: team.TeamPoints})
			n++
		}
		brackets[n-1].Teams = append(brackets[n-1].Teams, team)
	}
	return brackets
}

// Build splits the pool into matchups of cfg.TeamsPerMatchup teams.
//
// Teams are bracketed by team points, each bracket is shuffled with rng, and
// the brackets are laid out lowest first and cut into consecutive chunks. A
// bracket whose size is not a multiple of the matchup size has its last teams
// pulled up into a matchup with the head of the next bracket. A nil rng uses
// the global source.
func Build(pool Pool, cfg Config, rng *rand.Rand) (*Draw, error) {
	size := cfg.TeamsPerMatchup
	if size <= 0 || len(pool.Teams)%size != 0 {
		return nil, &ConfigError{TeamsPerMatchup: size, TeamCount: len(pool.Teams)}
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}

	lineup := make([]Team, 0, len(pool.Teams))
	for _, bracket := range pool.Brackets() {
		teams := bracket.Teams
		shuffle(len(teams), func(i, j int) {
			teams[i], teams[j] = teams[j], teams[i]
		})
		lineup = append(lineup, teams...)
	}

	matchups := make([]Matchup, 0, len(lineup)/size)
	for chunk := range slices.Chunk(lineup, size) {
		matchups = append(matchups, Matchup(chunk))
	}

	return &Draw{Matchups: matchups}, nil
}
