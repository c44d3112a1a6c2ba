// Copyright (c) 2026 Biblion. All rights reserved.

package author

import (
	"context"
	"log/slog"

	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/internal/platform/validate"
	"github.com/tkempf/biblion/pkg/uuid"
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

func (service *Service) ListAuthors(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	return service.repo.ListAuthors(context, filter, limit, offset)
}

func (service *Service) GetAuthor(context context.Context, id string) (*Author, error) {
	return service.repo.GetAuthor(context, id)
}

// AddAuthor upserts an author record. A missing id means "create": a fresh
// identifier is generated. A supplied id updates that row in place.
func (service *Service) AddAuthor(context context.Context, author *Author) (string, error) {
	if author == nil {
		return "", apperr.InvalidArgument("author is required")
	}

	validator := &validate.Validator{}
	validator.Required(FieldLast, author.Last).MaxLen(FieldLast, author.Last, 200)
	validator.MaxLen(FieldFirst, author.First, 200)
	validator.MaxLen(FieldSuffix, author.Suffix, 50)

	if err := validator.Err(); err != nil {
		return "", err
	}

	if author.ID == "" {
		author.ID = uuid.New()
		if err := service.repo.CreateAuthor(context, author); err != nil {
			return "", err
		}
		service.logger.Info("author_created", slog.String("author_id", author.ID))
		return author.ID, nil
	}

	if err := service.repo.UpdateAuthor(context, author); err != nil {
		// An unknown id degrades to a create that keeps the caller's id.
		if !apperr.IsNotFound(err) {
			return "", err
		}
		if err := service.repo.CreateAuthor(context, author); err != nil {
			return "", err
		}
		service.logger.Info("author_created", slog.String("author_id", author.ID))
		return author.ID, nil
	}

	service.logger.Info("author_updated", slog.String("author_id", author.ID))
	return author.ID, nil
}

func (service *Service) DeleteAuthor(context context.Context, id string) error {
	if err := service.repo.DeleteAuthor(context, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.String("author_id", id))
	return nil
}

// PruneAuthors removes every author with zero remaining associations across
// both work and container link tables.
func (service *Service) PruneAuthors(context context.Context) (int, error) {
	pruned, err := service.repo.PruneAuthors(context)
	if err != nil {
		return 0, err
	}

	service.logger.Info("authors_pruned", slog.Int("count", pruned))
	return pruned, nil
}
