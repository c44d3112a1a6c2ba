// Copyright (c) 2026 Biblion. All rights reserved.

package keyword

import (
	"context"
	"log/slog"

	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/internal/platform/validate"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListKeywords(context context.Context, filter Filter, limit, offset int) ([]*Keyword, int, error) {
	return service.repo.ListKeywords(context, filter, limit, offset)
}

func (service *Service) GetKeyword(context context.Context, id int) (*Keyword, error) {
	return service.repo.GetKeyword(context, id)
}

// AddKeyword stores a keyword, reusing the existing row when the
// (language, value) pair is already known. The returned id identifies the
// stored row in both cases.
func (service *Service) AddKeyword(context context.Context, keyword *Keyword) (int, error) {
	if keyword == nil {
		return 0, apperr.InvalidArgument("keyword is required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldLanguage, keyword.Language).Language(FieldLanguage, keyword.Language)
	validator.Required(FieldValue, keyword.Value).MaxLen(FieldValue, keyword.Value, 200)

	if err := validator.Err(); err != nil {
		return 0, err
	}

	if err := service.repo.UpsertKeyword(context, keyword); err != nil {
		return 0, err
	}

	service.logger.Info("keyword_saved",
		slog.Int("keyword_id", keyword.ID),
		slog.String("language", keyword.Language),
	)
	return keyword.ID, nil
}

func (service *Service) DeleteKeyword(context context.Context, id int) error {
	if err := service.repo.DeleteKeyword(context, id); err != nil {
		return err
	}

	service.logger.Warn("keyword_deleted", slog.Int("keyword_id", id))
	return nil
}

// PruneKeywords removes every keyword with zero remaining associations across
// both work and container link tables.
func (service *Service) PruneKeywords(context context.Context) (int, error) {
	pruned, err := service.repo.PruneKeywords(context)
	if err != nil {
		return 0, err
	}

	service.logger.Info("keywords_pruned", slog.Int("count", pruned))
	return pruned, nil
}
