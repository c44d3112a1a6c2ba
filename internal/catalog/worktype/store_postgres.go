package worktype

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tkempf/biblion/internal/platform/database/schema"
	"github.com/tkempf/biblion/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListWorkTypes(context context.Context) ([]*WorkType, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s ASC`,
		schema.WorkType.ID, schema.WorkType.Name, schema.WorkType.Table, schema.WorkType.ID,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_worktypes")
	}
	defer rows.Close()

	var types []*WorkType
	for rows.Next() {
		t := &WorkType{}
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, dberr.Wrap(err, "scan_worktype")
		}
		types = append(types, t)
	}

	return types, nil
}

func (repository *PostgresRepository) GetWorkType(context context.Context, id string) (*WorkType, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.WorkType.ID, schema.WorkType.Name, schema.WorkType.Table, schema.WorkType.ID,
	)
	t := &WorkType{}

	err := repository.db.QueryRow(context, query, id).Scan(&t.ID, &t.Name)

	return t, dberr.Wrap(err, "get_worktype")
}

func (repository *PostgresRepository) UpsertWorkType(context context.Context, t *WorkType) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
	`,
		schema.WorkType.Table, schema.WorkType.ID, schema.WorkType.Name,
		schema.WorkType.ID, schema.WorkType.Name, schema.WorkType.Name,
	)

	_, err := repository.db.Exec(context, query, t.ID, t.Name)
	return dberr.Wrap(err, "upsert_worktype")
}

func (repository *PostgresRepository) DeleteWorkType(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.WorkType.Table, schema.WorkType.ID)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_worktype")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
