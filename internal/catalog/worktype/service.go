// Copyright (c) 2026 Biblion. All rights reserved.

package worktype

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

func (service *Service) ListWorkTypes(context context.Context) ([]*WorkType, error) {
	return service.repo.ListWorkTypes(context)
}

func (service *Service) GetWorkType(context context.Context, id string) (*WorkType, error) {
	return service.repo.GetWorkType(context, id)
}

// AddWorkType upserts a type by id. A missing id files the record under the
// placeholder, and a missing name defaults to the id.
func (service *Service) AddWorkType(context context.Context, workType *WorkType) (string, error) {
	if workType == nil {
		return "", apperr.InvalidArgument("work type is required")
	}

	workType.Canonicalize()

	validator := &validate.Validator{}
	validator.MaxLen(FieldID, workType.ID, 50)
	validator.MaxLen(FieldName, workType.Name, 200)

	if err := validator.Err(); err != nil {
		return "", err
	}

	if err := service.repo.UpsertWorkType(context, workType); err != nil {
		return "", err
	}

	service.logger.Info("worktype_saved", slog.String("worktype_id", workType.ID))
	return workType.ID, nil
}

func (service *Service) DeleteWorkType(context context.Context, id string) error {
	if err := service.repo.DeleteWorkType(context, id); err != nil {
		return err
	}

	service.logger.Warn("worktype_deleted", slog.String("worktype_id", id))
	return nil
}
