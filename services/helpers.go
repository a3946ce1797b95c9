package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

const (
	DefaultOffset = 0
	DefaultLimit  = 100
)

var notFoundErrors = map[error]error{
	repositories.ErrTournamentNotFound:          ErrTournamentNotFound,
	repositories.ErrTeamNotFound:                ErrTeamNotFound,
	repositories.ErrSpeakerNotFound:             ErrSpeakerNotFound,
	repositories.ErrJudgeNotFound:               ErrJudgeNotFound,
	repositories.ErrRoundNotFound:               ErrRoundNotFound,
	repositories.ErrMotionNotFound:              ErrMotionNotFound,
	repositories.ErrDebateNotFound:              ErrDebateNotFound,
	repositories.ErrBallotNotFound:              ErrBallotNotFound,
	repositories.ErrBallotSpeakerPointsNotFound: ErrBallotSpeakerPointsNotFound,
	repositories.ErrBallotTeamScoreNotFound:     ErrBallotTeamScoreNotFound,
	repositories.ErrTagNotFound:                 ErrTagNotFound,
	repositories.ErrTagAssociationNotFound:      ErrTagAssociationNotFound,
}

// handleRepositoryError переводит ошибки репозитория в ошибки сервисного слоя.
func handleRepositoryError(err error, op string) error {
	if err == nil {
		return nil
	}
	for repoErr, svcErr := range notFoundErrors {
		if errors.Is(err, repoErr) {
			return svcErr
		}
	}
	var constraintErr *repositories.ConstraintError
	if errors.As(err, &constraintErr) {
		return &ConflictError{Message: constraintErr.Message, Err: err}
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

type validator struct {
	fields map[string]string
}

func (v *validator) fail(field, message string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = message
	}
}

func (v *validator) required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.fail(field, "must not be blank")
	}
}

func (v *validator) positive(field string, value int) {
	if value < 1 {
		v.fail(field, "must be at least 1")
	}
}

func (v *validator) nonNegative(field string, value int) {
	if value < 0 {
		v.fail(field, "must not be negative")
	}
}

func (v *validator) page(p repositories.Page) {
	v.nonNegative("offset", p.Offset)
	v.positive("limit", p.Limit)
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// DefaultPage is the window used when the client sends no offset or limit.
func DefaultPage() repositories.Page {
	return repositories.Page{Offset: DefaultOffset, Limit: DefaultLimit}
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

func patchRequiredString(v *validator, field string, opt models.Optional[string], dst *string) {
	if !opt.Set {
		return
	}
	if opt.Value == nil {
		v.fail(field, "must not be null")
		return
	}
	v.required(field, *opt.Value)
	*dst = strings.TrimSpace(*opt.Value)
}

func patchNullableString(opt models.Optional[string], dst **string) {
	if opt.Set {
		*dst = trimmedPtr(opt.Value)
	}
}

func patchPositiveInt(v *validator, field string, opt models.Optional[int], dst *int) {
	if !opt.Set {
		return
	}
	if opt.Value == nil {
		v.fail(field, "must not be null")
		return
	}
	v.positive(field, *opt.Value)
	*dst = *opt.Value
}
