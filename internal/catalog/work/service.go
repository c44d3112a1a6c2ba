// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"
	"log/slog"

	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/internal/platform/validate"
	"github.com/tkempf/biblion/pkg/uuid"
)

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// AddWork saves a full work graph in one transaction and returns the work's
// id. A missing id creates a new work; a supplied id upserts, keeping the
// caller's id even when no such row exists yet. Saving the same graph twice
// converges to the same stored state.
func (service *Service) AddWork(context context.Context, work *Work) (string, error) {
	if work == nil {
		return "", apperr.InvalidArgument("work is required")
	}
	if err := validateRecord(&work.Record); err != nil {
		return "", err
	}
	if work.Container != nil {
		if err := validateRecord(&work.Container.Record); err != nil {
			return "", err
		}
	}

	tx, err := service.repo.Begin(context)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(context) }()

	insert := false
	oldKey := ""
	if work.ID == "" {
		work.ID = uuid.New()
		insert = true
	} else {
		var found bool
		oldKey, found, err = tx.RecordKey(context, OwnerWork, work.ID)
		if err != nil {
			return "", err
		}
		insert = !found
	}

	if err := resolveType(context, tx, work.Type); err != nil {
		return "", err
	}

	containerID := ""
	if work.Container != nil {
		if containerID, err = service.saveContainer(context, tx, work.Container); err != nil {
			return "", err
		}
	}

	if work.Authors, err = resolveAuthors(context, tx, work.Authors); err != nil {
		return "", err
	}

	keywordIDs, err := resolveKeywords(context, tx, work.Keywords)
	if err != nil {
		return "", err
	}

	if work.Key, err = finalKey(context, tx, OwnerWork, &work.Record, oldKey); err != nil {
		return "", err
	}

	if err := tx.UpsertWork(context, work, insert); err != nil {
		return "", err
	}
	if err := tx.ReplaceAuthorLinks(context, OwnerWork, work.ID, work.Authors); err != nil {
		return "", err
	}
	if err := tx.ReplaceKeywordLinks(context, OwnerWork, work.ID, keywordIDs); err != nil {
		return "", err
	}
	if err := tx.ReplaceExternalLinks(context, OwnerWork, work.ID, work.Links); err != nil {
		return "", err
	}

	if err := tx.Commit(context); err != nil {
		return "", err
	}

	service.cache.Invalidate(context, work.ID, containerID)
	service.logger.Info("work_saved",
		slog.String("work_id", work.ID),
		slog.String("key", work.Key),
		slog.Bool("created", insert),
	)
	return work.ID, nil
}

// AddContainer saves a container graph the same way AddWork saves a work.
func (service *Service) AddContainer(context context.Context, container *Container) (string, error) {
	if container == nil {
		return "", apperr.InvalidArgument("container is required")
	}
	if err := validateRecord(&container.Record); err != nil {
		return "", err
	}

	tx, err := service.repo.Begin(context)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(context) }()

	id, err := service.saveContainer(context, tx, container)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(context); err != nil {
		return "", err
	}

	service.cache.Invalidate(context, id)
	service.logger.Info("container_saved",
		slog.String("container_id", id),
		slog.String("key", container.Key),
	)
	return id, nil
}

// saveContainer runs the container reconciliation steps inside an already
// open transaction. AddWork reuses it for the nested container of a work.
func (service *Service) saveContainer(context context.Context, tx Tx, container *Container) (string, error) {
	insert := false
	oldKey := ""
	var err error

	if container.ID == "" {
		container.ID = uuid.New()
		insert = true
	} else {
		var found bool
		oldKey, found, err = tx.RecordKey(context, OwnerContainer, container.ID)
		if err != nil {
			return "", err
		}
		insert = !found
	}

	if err := resolveType(context, tx, container.Type); err != nil {
		return "", err
	}

	if container.Authors, err = resolveAuthors(context, tx, container.Authors); err != nil {
		return "", err
	}

	keywordIDs, err := resolveKeywords(context, tx, container.Keywords)
	if err != nil {
		return "", err
	}

	if container.Key, err = finalKey(context, tx, OwnerContainer, &container.Record, oldKey); err != nil {
		return "", err
	}

	if err := tx.UpsertContainer(context, container, insert); err != nil {
		return "", err
	}
	if err := tx.ReplaceAuthorLinks(context, OwnerContainer, container.ID, container.Authors); err != nil {
		return "", err
	}
	if err := tx.ReplaceKeywordLinks(context, OwnerContainer, container.ID, keywordIDs); err != nil {
		return "", err
	}
	if err := tx.ReplaceExternalLinks(context, OwnerContainer, container.ID, container.Links); err != nil {
		return "", err
	}

	return container.ID, nil
}

func (service *Service) GetWork(context context.Context, id string) (*Work, error) {
	if cached, ok := service.cache.GetWork(context, id); ok {
		if work, err := service.attachContainer(context, cached); err == nil {
			return work, nil
		}
		// Container re-read failed; fall through to a full store read.
	}

	work, err := service.repo.GetWork(context, id)
	if err != nil {
		return nil, err
	}

	service.cache.SetWork(context, detachContainer(work))
	return work, nil
}

// Cached work entries carry only their container's id. The container itself is
// read through its own cache entry, so editing a container never leaves a
// stale copy embedded in a cached work.
func detachContainer(work *Work) *Work {
	if work.Container == nil {
		return work
	}
	clone := *work
	clone.Container = &Container{Record: Record{ID: work.Container.ID}}
	return &clone
}

func (service *Service) attachContainer(context context.Context, work *Work) (*Work, error) {
	if work.Container == nil {
		return work, nil
	}

	container, err := service.GetContainer(context, work.Container.ID)
	if err != nil {
		if apperr.IsNotFound(err) {
			work.Container = nil
			return work, nil
		}
		return nil, err
	}

	work.Container = container
	return work, nil
}

func (service *Service) GetContainer(context context.Context, id string) (*Container, error) {
	if cached, ok := service.cache.GetContainer(context, id); ok {
		return cached, nil
	}

	container, err := service.repo.GetContainer(context, id)
	if err != nil {
		return nil, err
	}

	service.cache.SetContainer(context, container)
	return container, nil
}

// GetWorks lists works matching the filter. The filter is mandatory; pass a
// zero-valued one to list everything.
func (service *Service) GetWorks(context context.Context, filter *Filter, limit, offset int) ([]*Info, int, error) {
	if filter == nil {
		return nil, 0, apperr.InvalidArgument("filter is required")
	}
	return service.repo.ListWorks(context, *filter, limit, offset)
}

func (service *Service) GetContainers(context context.Context, filter *Filter, limit, offset int) ([]*Info, int, error) {
	if filter == nil {
		return nil, 0, apperr.InvalidArgument("filter is required")
	}
	return service.repo.ListContainers(context, *filter, limit, offset)
}

// DeleteWork removes a work and its association rows. Deleting an absent id
// is a silent no-op. Authors and keywords the work pointed at survive.
func (service *Service) DeleteWork(context context.Context, id string) error {
	if err := service.repo.DeleteWork(context, id); err != nil {
		return err
	}

	service.cache.Invalidate(context, id)
	service.logger.Warn("work_deleted", slog.String("work_id", id))
	return nil
}

func (service *Service) DeleteContainer(context context.Context, id string) error {
	if err := service.repo.DeleteContainer(context, id); err != nil {
		return err
	}

	service.cache.Invalidate(context, id)
	service.logger.Warn("container_deleted", slog.String("container_id", id))
	return nil
}

func validateRecord(record *Record) error {
	validator := &validate.Validator{}
	if record.Language != "" {
		validator.Language("language", record.Language)
	}
	validator.MaxLen("key", record.Key, 300)
	validator.MaxLen("number", record.Number, 100)
	return validator.Err()
}
