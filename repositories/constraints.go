package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var ErrConstraintViolation = errors.New("database constraint violated")

const (
	foreignKeyMessage = "Referenced resource does not exist"
	fallbackMessage   = "Database constraint violated"
)

// Unique constraints with a user-facing message, keyed by postgres
// constraint name.
var constraintMessages = map[string]string{
	"team_tournament_id_name_key":                    "A team with this name already exists in this tournament",
	"round_tournament_id_sequence_key":               "A round with this sequence already exists in this tournament",
	"ballot_speaker_points_ballot_id_speaker_id_key": "This speaker already has points recorded for this ballot",
	"ballot_team_score_ballot_id_team_id_key":        "This team already has a score recorded for this ballot",
}

// ConstraintError is a unique or foreign key violation. Message is safe to
// show to API clients.
type ConstraintError struct {
	Constraint string
	Message    string
	Err        error
}

func (e *ConstraintError) Error() string {
	return e.Message
}

func (e *ConstraintError) Unwrap() error {
	return e.Err
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

func newConstraintError(constraint string, foreignKey bool, err error) *ConstraintError {
	msg := fallbackMessage
	switch {
	case foreignKey:
		msg = foreignKeyMessage
	case constraintMessages[constraint] != "":
		msg = constraintMessages[constraint]
	}
	return &ConstraintError{Constraint: constraint, Message: msg, Err: err}
}

// translateError converts driver constraint violations into *ConstraintError
// and passes every other error through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return newConstraintError(pqErr.Constraint, false, err)
		case "23503":
			return newConstraintError(pqErr.Constraint, true, err)
		}
		if pqErr.Code.Class() == "23" {
			return newConstraintError(pqErr.Constraint, false, err)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		msg := liteErr.Error()
		switch {
		case liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY, strings.Contains(msg, "FOREIGN KEY constraint failed"):
			return newConstraintError("", true, err)
		case strings.Contains(msg, "UNIQUE constraint failed: "):
			return newConstraintError(sqliteConstraintName(msg), false, err)
		default:
			return newConstraintError("", false, err)
		}
	}

	return err
}

// sqliteConstraintName rebuilds the postgres default constraint name from a
// message like "UNIQUE constraint failed: team.tournament_id, team.name".
func sqliteConstraintName(msg string) string {
	_, cols, ok := strings.Cut(msg, "UNIQUE constraint failed: ")
	if !ok {
		return ""
	}
	if i := strings.Index(cols, " ("); i >= 0 {
		cols = cols[:i]
	}

	var table string
	names := make([]string, 0, 2)
	for _, col := range strings.Split(cols, ", ") {
		t, c, ok := strings.Cut(strings.TrimSpace(col), ".")
		if !ok {
			return ""
		}
		table = t
		names = append(names, c)
	}
	return fmt.Sprintf("%s_%s_key", table, strings.Join(names, "_"))
}
