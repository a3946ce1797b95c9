package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/Dosada05/tabbit/models"
	"github.com/Dosada05/tabbit/repositories"
)

type TagService interface {
	CreateTag(ctx context.Context, input CreateTagInput) (*models.Tag, error)
	GetTagByID(ctx context.Context, id int) (*models.Tag, error)
	ListTags(ctx context.Context, input ListTagsInput) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id int, input UpdateTagInput) (*models.Tag, error)
	DeleteTag(ctx context.Context, id int) error

	AddSpeakers(ctx context.Context, tagID int, input AddTagSpeakersInput) ([]models.Speaker, error)
	RemoveSpeaker(ctx context.Context, tagID, speakerID int) error
	ListSpeakers(ctx context.Context, tagID int) ([]models.Speaker, error)

	AddJudges(ctx context.Context, tagID int, input AddTagJudgesInput) ([]models.Judge, error)
	RemoveJudge(ctx context.Context, tagID, judgeID int) error
	ListJudges(ctx context.Context, tagID int) ([]models.Judge, error)
}

type CreateTagInput struct {
	TournamentID int    `json:"tournament_id"`
	Name         string `json:"name"`
}

type UpdateTagInput struct {
	Name models.Optional[string] `json:"name"`
}

type ListTagsInput struct {
	Name         *string
	TournamentID *int
	SpeakerID    *int
	JudgeID      *int
	Page         repositories.Page
}

type AddTagSpeakersInput struct {
	SpeakerIDs []int `json:"speaker_ids"`
}

type AddTagJudgesInput struct {
	JudgeIDs []int `json:"judge_ids"`
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) CreateTag(ctx context.Context, input CreateTagInput) (*models.Tag, error) {
	var v validator
	v.positive("tournament_id", input.TournamentID)
	v.required("name", input.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	tag := &models.Tag{TournamentID: input.TournamentID, Name: strings.TrimSpace(input.Name)}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		return nil, handleRepositoryError(err, "create tag")
	}
	return tag, nil
}

func (s *tagService) GetTagByID(ctx context.Context, id int) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tag")
	}
	return tag, nil
}

func (s *tagService) ListTags(ctx context.Context, input ListTagsInput) ([]models.Tag, error) {
	var v validator
	v.page(input.Page)
	if err := v.err(); err != nil {
		return nil, err
	}

	tags, err := s.tagRepo.List(ctx, repositories.ListTagsFilter{
		Name:         input.Name,
		TournamentID: input.TournamentID,
		SpeakerID:    input.SpeakerID,
		JudgeID:      input.JudgeID,
		Page:         input.Page,
	})
	if err != nil {
		return nil, handleRepositoryError(err, "list tags")
	}
	return tags, nil
}

func (s *tagService) UpdateTag(ctx context.Context, id int, input UpdateTagInput) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, "get tag")
	}

	var v validator
	patchRequiredString(&v, "name", input.Name, &tag.Name)
	if err := v.err(); err != nil {
		return nil, err
	}

	if err := s.tagRepo.Update(ctx, tag); err != nil {
		return nil, handleRepositoryError(err, "update tag")
	}
	return tag, nil
}

func (s *tagService) DeleteTag(ctx context.Context, id int) error {
	return handleRepositoryError(s.tagRepo.Delete(ctx, id), "delete tag")
}

func validateMembers(field string, ids []int) error {
	var v validator
	if len(ids) == 0 {
		v.fail(field, "must contain at least one id")
	}
	for i, id := range ids {
		v.positive(field+"["+strconv.Itoa(i)+"]", id)
	}
	return v.err()
}

func (s *tagService) AddSpeakers(ctx context.Context, tagID int, input AddTagSpeakersInput) ([]models.Speaker, error) {
	if err := validateMembers("speaker_ids", input.SpeakerIDs); err != nil {
		return nil, err
	}
	if err := s.tagRepo.AddSpeakers(ctx, tagID, input.SpeakerIDs); err != nil {
		return nil, handleRepositoryError(err, "add speakers to tag")
	}
	return s.ListSpeakers(ctx, tagID)
}

func (s *tagService) RemoveSpeaker(ctx context.Context, tagID, speakerID int) error {
	return handleRepositoryError(s.tagRepo.RemoveSpeaker(ctx, tagID, speakerID), "remove speaker from tag")
}

func (s *tagService) ListSpeakers(ctx context.Context, tagID int) ([]models.Speaker, error) {
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		return nil, handleRepositoryError(err, "get tag")
	}
	speakers, err := s.tagRepo.ListSpeakers(ctx, tagID)
	if err != nil {
		return nil, handleRepositoryError(err, "list tag speakers")
	}
	return speakers, nil
}

func (s *tagService) AddJudges(ctx context.Context, tagID int, input AddTagJudgesInput) ([]models.Judge, error) {
	if err := validateMembers("judge_ids", input.JudgeIDs); err != nil {
		return nil, err
	}
	if err := s.tagRepo.AddJudges(ctx, tagID, input.JudgeIDs); err != nil {
		return nil, handleRepositoryError(err, "add judges to tag")
	}
	return s.ListJudges(ctx, tagID)
}

func (s *tagService) RemoveJudge(ctx context.Context, tagID, judgeID int) error {
	return handleRepositoryError(s.tagRepo.RemoveJudge(ctx, tagID, judgeID), "remove judge from tag")
}

func (s *tagService) ListJudges(ctx context.Context, tagID int) ([]models.Judge, error) {
	if _, err := s.tagRepo.GetByID(ctx, tagID); err != nil {
		return nil, handleRepositoryError(err, "get tag")
	}
	judges, err := s.tagRepo.ListJudges(ctx, tagID)
	if err != nil {
		return nil, handleRepositoryError(err, "list tag judges")
	}
	return judges, nil
}
