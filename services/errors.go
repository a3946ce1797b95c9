package services

import (
	"errors"
	"sort"
	"strings"
)

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrConflict         = errors.New("conflict")

	ErrTournamentNotFound          = errors.New("tournament not found")
	ErrTeamNotFound                = errors.New("team not found")
	ErrSpeakerNotFound             = errors.New("speaker not found")
	ErrJudgeNotFound               = errors.New("judge not found")
	ErrRoundNotFound               = errors.New("round not found")
	ErrMotionNotFound              = errors.New("motion not found")
	ErrDebateNotFound              = errors.New("debate not found")
	ErrBallotNotFound              = errors.New("ballot not found")
	ErrBallotSpeakerPointsNotFound = errors.New("ballot speaker points not found")
	ErrBallotTeamScoreNotFound     = errors.New("ballot team score not found")
	ErrTagNotFound                 = errors.New("tag not found")
	ErrTagAssociationNotFound      = errors.New("tag association not found")

	ErrDrawAlreadyExists = errors.New("a draw already exists for this round")
	ErrInvalidDrawConfig = errors.New("invalid draw configuration")
)

// ValidationError collects per-field messages. It matches ErrValidationFailed.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// ConflictError carries a message that is shown to the client as is.
type ConflictError struct {
	Message string
	Err     error
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) Unwrap() error { return e.Err }

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// DrawConfigError reports a pool the draw generator rejected.
type DrawConfigError struct {
	Message string
	Err     error
}

func (e *DrawConfigError) Error() string { return e.Message }

func (e *DrawConfigError) Unwrap() error { return e.Err }

func (e *DrawConfigError) Is(target error) bool {
	return target == ErrInvalidDrawConfig
}
