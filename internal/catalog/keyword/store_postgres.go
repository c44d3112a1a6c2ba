package keyword

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

func (repository *PostgresRepository) ListKeywords(context context.Context, f Filter, limit, offset int) ([]*Keyword, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE TRUE
	`,
		schema.Keyword.ID, schema.Keyword.Language, schema.Keyword.Value,
		schema.Keyword.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE TRUE`, schema.Keyword.Table)

	args := []any{}
	countArgs := []any{}

	if f.Language != "" {
		clause := fmt.Sprintf(` AND %s = $%d`, schema.Keyword.Language, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Language)
		countArgs = append(countArgs, f.Language)
	}

	if f.Query != "" {
		searchTerm := "%" + normtext.Normalize(f.Query, true) + "%"
		clause := fmt.Sprintf(` AND %s LIKE $%d`, schema.Keyword.ValueX, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC, %s ASC", schema.Keyword.Language, schema.Keyword.ValueX)
	if limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, limit, offset)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_keywords")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_keywords")
	}
	defer rows.Close()

	var keywords []*Keyword
	for rows.Next() {
		k := &Keyword{}
		if err := rows.Scan(&k.ID, &k.Language, &k.Value); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_keyword")
		}
		keywords = append(keywords, k)
	}

	return keywords, total, nil
}

func (repository *PostgresRepository) GetKeyword(context context.Context, id int) (*Keyword, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Keyword.ID, schema.Keyword.Language, schema.Keyword.Value,
		schema.Keyword.Table, schema.Keyword.ID,
	)
	k := &Keyword{}

	err := repository.db.QueryRow(context, query, id).Scan(&k.ID, &k.Language, &k.Value)

	return k, dberr.Wrap(err, "get_keyword")
}

func (repository *PostgresRepository) UpsertKeyword(context context.Context, k *Keyword) error {
	// The no-op DO UPDATE makes RETURNING yield the id on conflict too.
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.Keyword.Table, schema.Keyword.Language, schema.Keyword.Value, schema.Keyword.ValueX,
		schema.Keyword.Language, schema.Keyword.Value,
		schema.Keyword.Value, schema.Keyword.Value,
		schema.Keyword.ID,
	)

	err := repository.db.QueryRow(context, query, k.Language, k.Value, normtext.Normalize(k.Value, true)).Scan(&k.ID)
	return dberr.Wrap(err, "upsert_keyword")
}

func (repository *PostgresRepository) DeleteKeyword(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Keyword.Table, schema.Keyword.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_keyword")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// PruneKeywords deletes every keyword no work or container still points at.
func (repository *PostgresRepository) PruneKeywords(context context.Context) (int, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s k
		WHERE NOT EXISTS (SELECT 1 FROM %s wk WHERE wk.%s = k.%s)
		  AND NOT EXISTS (SELECT 1 FROM %s ck WHERE ck.%s = k.%s)
	`,
		schema.Keyword.Table,
		schema.WorkKeyword.Table, schema.WorkKeyword.KeywordID, schema.Keyword.ID,
		schema.ContainerKeyword.Table, schema.ContainerKeyword.KeywordID, schema.Keyword.ID,
	)

	cmd, err := repository.db.Exec(context, query)
	if err != nil {
		return 0, dberr.Wrap(err, "prune_keywords")
	}

	return int(cmd.RowsAffected()), nil
}
