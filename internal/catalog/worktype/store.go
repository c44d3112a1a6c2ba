package worktype

import "context"

type Repository interface {
	ListWorkTypes(context context.Context) ([]*WorkType, error)
	GetWorkType(context context.Context, id string) (*WorkType, error)
	UpsertWorkType(context context.Context, t *WorkType) error
	DeleteWorkType(context context.Context, id string) error
}
