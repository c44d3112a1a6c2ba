package keyword

import "context"

type Repository interface {
	ListKeywords(context context.Context, f Filter, limit, offset int) ([]*Keyword, int, error)
	GetKeyword(context context.Context, id int) (*Keyword, error)
	// UpsertKeyword stores the (language, value) pair if new and fills k.ID
	// with the id of the stored row either way.
	UpsertKeyword(context context.Context, k *Keyword) error
	DeleteKeyword(context context.Context, id int) error
	PruneKeywords(context context.Context) (int, error)
}
