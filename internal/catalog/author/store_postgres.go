package author

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tkempf/biblion/internal/platform/database/schema"
	"github.com/tkempf/biblion/internal/platform/dberr"
	"github.com/tkempf/biblion/pkg/normtext"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListAuthors(context context.Context, f Filter, limit, offset int) ([]*Author, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
	`,
		schema.Author.ID, schema.Author.First, schema.Author.Last, schema.Author.Suffix,
		schema.Author.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.Author.Table)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + normtext.Normalize(f.Query, false) + "%"
		clause := fmt.Sprintf(` WHERE %s LIKE $1`, schema.Author.LastX)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.Author.LastX, schema.Author.First)
	if limit > 0 {
		query += ` LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
		args = append(args, limit, offset)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_authors")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_authors")
	}
	defer rows.Close()

	var authors []*Author
	for rows.Next() {
		a := &Author{}
		if err := rows.Scan(&a.ID, &a.First, &a.Last, &a.Suffix); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_author")
		}
		authors = append(authors, a)
	}

	return authors, total, nil
}

func (repository *PostgresRepository) GetAuthor(context context.Context, id string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Author.ID, schema.Author.First, schema.Author.Last, schema.Author.Suffix,
		schema.Author.Table, schema.Author.ID,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, id).Scan(&a.ID, &a.First, &a.Last, &a.Suffix)

	return a, dberr.Wrap(err, "get_author")
}

func (repository *PostgresRepository) CreateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.Author.Table, schema.Author.ID, schema.Author.First, schema.Author.Last,
		schema.Author.Suffix, schema.Author.LastX,
	)

	_, err := repository.db.Exec(context, query, a.ID, a.First, a.Last, a.Suffix, normtext.Normalize(a.Last, false))
	return dberr.Wrap(err, "create_author")
}

func (repository *PostgresRepository) UpdateAuthor(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1
	`,
		schema.Author.Table, schema.Author.First, schema.Author.Last, schema.Author.Suffix,
		schema.Author.LastX, schema.Author.ID,
	)

	cmd, err := repository.db.Exec(context, query, a.ID, a.First, a.Last, a.Suffix, normtext.Normalize(a.Last, false))
	if err != nil {
		return dberr.Wrap(err, "update_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) DeleteAuthor(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Author.Table, schema.Author.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_author")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// PruneAuthors deletes every author no work or container still points at.
func (repository *PostgresRepository) PruneAuthors(context context.Context) (int, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s a
		WHERE NOT EXISTS (SELECT 1 FROM %s wa WHERE wa.%s = a.%s)
		  AND NOT EXISTS (SELECT 1 FROM %s ca WHERE ca.%s = a.%s)
	`,
		schema.Author.Table,
		schema.WorkAuthor.Table, schema.WorkAuthor.AuthorID, schema.Author.ID,
		schema.ContainerAuthor.Table, schema.ContainerAuthor.AuthorID, schema.Author.ID,
	)

	cmd, err := repository.db.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "prune_authors")
	}

	return int(cmd.RowsAffected()), nil
}

func itos(i int) string {
	return strconv.Itoa(i)
}
