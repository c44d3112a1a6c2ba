// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tkempf/biblion/internal/catalog/worktype"
	"github.com/tkempf/biblion/internal/platform/apperr"
	"github.com/tkempf/biblion/internal/platform/database/schema"
	"github.com/tkempf/biblion/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Begin(context context.Context) (Tx, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "begin_tx")
	}
	return &pgxTx{tx: tx}, nil
}

// Aggregate subqueries hydrating the association sets of one owner row as
// JSON arrays. The owner table is aliased "w".
const (
	workAuthorsJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'id', a.id, 'first', a.first, 'last', a.last, 'suffix', a.suffix,
			'role', j.role, 'ordinal', j.ordinal) ORDER BY j.ordinal)
		FROM catalog.workauthor j JOIN catalog.author a ON a.id = j.authorid
		WHERE j.workid = w.id), '[]'::json)`

	containerAuthorsJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'id', a.id, 'first', a.first, 'last', a.last, 'suffix', a.suffix,
			'role', j.role, 'ordinal', j.ordinal) ORDER BY j.ordinal)
		FROM catalog.containerauthor j JOIN catalog.author a ON a.id = j.authorid
		WHERE j.containerid = w.id), '[]'::json)`

	workKeywordsJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'id', k.id, 'language', k.language, 'value', k.value) ORDER BY k.id)
		FROM catalog.workkeyword j JOIN catalog.keyword k ON k.id = j.keywordid
		WHERE j.workid = w.id), '[]'::json)`

	containerKeywordsJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'id', k.id, 'language', k.language, 'value', k.value) ORDER BY k.id)
		FROM catalog.containerkeyword j JOIN catalog.keyword k ON k.id = j.keywordid
		WHERE j.containerid = w.id), '[]'::json)`

	workLinksJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'source_id', l.sourceid, 'scope', l.scope, 'value', l.value))
		FROM catalog.worklink l WHERE l.workid = w.id), '[]'::json)`

	containerLinksJSON = `COALESCE((
		SELECT json_agg(json_build_object(
			'source_id', l.sourceid, 'scope', l.scope, 'value', l.value))
		FROM catalog.containerlink l WHERE l.containerid = w.id), '[]'::json)`
)

// firstAuthorSort yields the normalized last name of the record's first
// credited author for ordering; authorless records sort last.
func firstAuthorSort(kind OwnerKind) (lastx, first string) {
	junction := schema.WorkAuthor.Table
	ownerCol := schema.WorkAuthor.WorkID
	if kind == OwnerContainer {
		junction = schema.ContainerAuthor.Table
		ownerCol = schema.ContainerAuthor.ContainerID
	}
	lastx = fmt.Sprintf(`(SELECT a.lastx FROM %s j JOIN %s a ON a.id = j.authorid
		WHERE j.%s = w.id ORDER BY j.ordinal LIMIT 1)`, junction, schema.Author.Table, ownerCol)
	first = fmt.Sprintf(`(SELECT a.first FROM %s j JOIN %s a ON a.id = j.authorid
		WHERE j.%s = w.id ORDER BY j.ordinal LIMIT 1)`, junction, schema.Author.Table, ownerCol)
	return lastx, first
}

func (repository *PostgresRepository) GetWork(context context.Context, id string) (*Work, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.key, w.typeid, t.name, w.containerid,
		       w.title, w.language, w.edition, w.publisher, w.number,
		       w.yearpub, w.yearpub2, w.placepub, w.location,
		       w.accessdate, w.note, w.datation, w.datationvalue,
		       w.firstpage, w.lastpage,
		       %s, %s, %s
		FROM %s w
		LEFT JOIN %s t ON t.id = w.typeid
		WHERE w.id = $1
	`, workAuthorsJSON, workKeywordsJSON, workLinksJSON, schema.Work.Table, schema.WorkType.Table)

	w := &Work{}
	var typeID, typeName, containerID *string
	var authorsRaw, keywordsRaw, linksRaw []byte

	err := repository.db.QueryRow(context, query, id).Scan(
		&w.ID, &w.Key, &typeID, &typeName, &containerID,
		&w.Title, &w.Language, &w.Edition, &w.Publisher, &w.Number,
		&w.YearPub, &w.YearPub2, &w.PlacePub, &w.Location,
		&w.AccessDate, &w.Note, &w.Datation, &w.DatationValue,
		&w.FirstPage, &w.LastPage,
		&authorsRaw, &keywordsRaw, &linksRaw,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_work")
	}

	if err := hydrateRecord(&w.Record, typeID, typeName, authorsRaw, keywordsRaw, linksRaw); err != nil {
		return nil, err
	}

	if containerID != nil {
		container, err := repository.GetContainer(context, *containerID)
		if err != nil {
			if !apperr.IsNotFound(err) {
				return nil, err
			}
		} else {
			w.Container = container
		}
	}

	return w, nil
}

func (repository *PostgresRepository) GetContainer(context context.Context, id string) (*Container, error) {
	query := fmt.Sprintf(`
		SELECT w.id, w.key, w.typeid, t.name,
		       w.title, w.language, w.edition, w.publisher, w.number,
		       w.yearpub, w.yearpub2, w.placepub, w.location,
		       w.accessdate, w.note, w.datation, w.datationvalue,
		       %s, %s, %s
		FROM %s w
		LEFT JOIN %s t ON t.id = w.typeid
		WHERE w.id = $1
	`, containerAuthorsJSON, containerKeywordsJSON, containerLinksJSON, schema.Container.Table, schema.WorkType.Table)

	c := &Container{}
	var typeID, typeName *string
	var authorsRaw, keywordsRaw, linksRaw []byte

	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Key, &typeID, &typeName,
		&c.Title, &c.Language, &c.Edition, &c.Publisher, &c.Number,
		&c.YearPub, &c.YearPub2, &c.PlacePub, &c.Location,
		&c.AccessDate, &c.Note, &c.Datation, &c.DatationValue,
		&authorsRaw, &keywordsRaw, &linksRaw,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_container")
	}

	if err := hydrateRecord(&c.Record, typeID, typeName, authorsRaw, keywordsRaw, linksRaw); err != nil {
		return nil, err
	}

	return c, nil
}

func (repository *PostgresRepository) ListWorks(context context.Context, f Filter, limit, offset int) ([]*Info, int, error) {
	where, args := f.whereSQL(OwnerWork)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s w`, schema.Work.Table) + where

	sortLastX, sortFirst := firstAuthorSort(OwnerWork)
	query := fmt.Sprintf(`
		SELECT w.id, w.key, COALESCE(w.typeid, ''), w.title, w.language, w.yearpub,
		       COALESCE(w.containerid::text, ''), COALESCE(c.key, ''), COALESCE(c.title, ''),
		       COALESCE(c.yearpub, 0), w.firstpage, w.lastpage, %s
		FROM %s w
		LEFT JOIN %s c ON c.id = w.containerid
	`, workAuthorsJSON, schema.Work.Table, schema.Container.Table) + where +
		fmt.Sprintf(" ORDER BY %s NULLS LAST, %s NULLS LAST, w.titlex ASC, w.key ASC", sortLastX, sortFirst)

	if limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_works")
	}

	if limit > 0 {
		args = append(args, limit, offset)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_works")
	}
	defer rows.Close()

	var infos []*Info
	for rows.Next() {
		info := &Info{}
		var containerID, containerKey, containerTitle string
		var containerYear int
		var authorsRaw []byte
		if err := rows.Scan(
			&info.ID, &info.Key, &info.Type, &info.Title, &info.Language, &info.YearPub,
			&containerID, &containerKey, &containerTitle, &containerYear,
			&info.FirstPage, &info.LastPage, &authorsRaw,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_work_info")
		}
		if err := json.Unmarshal(authorsRaw, &info.Authors); err != nil {
			return nil, 0, dberr.Wrap(err, "decode_work_authors")
		}
		if containerID != "" {
			info.Container = &Info{
				ID:      containerID,
				Key:     containerKey,
				Title:   containerTitle,
				YearPub: containerYear,
			}
		}
		infos = append(infos, info)
	}

	return infos, total, nil
}

func (repository *PostgresRepository) ListContainers(context context.Context, f Filter, limit, offset int) ([]*Info, int, error) {
	where, args := f.whereSQL(OwnerContainer)

	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s w`, schema.Container.Table) + where

	sortLastX, sortFirst := firstAuthorSort(OwnerContainer)
	query := fmt.Sprintf(`
		SELECT w.id, w.key, COALESCE(w.typeid, ''), w.title, w.language, w.yearpub, %s
		FROM %s w
	`, containerAuthorsJSON, schema.Container.Table) + where +
		fmt.Sprintf(" ORDER BY %s NULLS LAST, %s NULLS LAST, w.titlex ASC, w.key ASC", sortLastX, sortFirst)

	if limit > 0 {
		query += ` LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	}

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_containers")
	}

	if limit > 0 {
		args = append(args, limit, offset)
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_containers")
	}
	defer rows.Close()

	var infos []*Info
	for rows.Next() {
		info := &Info{}
		var authorsRaw []byte
		if err := rows.Scan(
			&info.ID, &info.Key, &info.Type, &info.Title, &info.Language, &info.YearPub, &authorsRaw,
		); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_container_info")
		}
		if err := json.Unmarshal(authorsRaw, &info.Authors); err != nil {
			return nil, 0, dberr.Wrap(err, "decode_container_authors")
		}
		infos = append(infos, info)
	}

	return infos, total, nil
}

func (repository *PostgresRepository) DeleteWork(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Work.Table, schema.Work.ID)

	// Association rows cascade with the owner. Zero rows affected means the
	// work was already gone, which is fine.
	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_work")
}

func (repository *PostgresRepository) DeleteContainer(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.Container.Table, schema.Container.ID)

	_, err := repository.db.Exec(context, query, id)
	return dberr.Wrap(err, "delete_container")
}

// hydrateRecord decodes the JSON aggregates and the joined type columns into
// the shared record fields.
func hydrateRecord(record *Record, typeID, typeName *string, authorsRaw, keywordsRaw, linksRaw []byte) error {
	if typeID != nil {
		name := ""
		if typeName != nil {
			name = *typeName
		}
		record.Type = &worktype.WorkType{ID: *typeID, Name: name}
	}

	if err := json.Unmarshal(authorsRaw, &record.Authors); err != nil {
		return dberr.Wrap(err, "decode_authors")
	}
	if err := json.Unmarshal(keywordsRaw, &record.Keywords); err != nil {
		return dberr.Wrap(err, "decode_keywords")
	}
	if err := json.Unmarshal(linksRaw, &record.Links); err != nil {
		return dberr.Wrap(err, "decode_links")
	}
	return nil
}
