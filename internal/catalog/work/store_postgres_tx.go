// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tkempf/biblion/internal/catalog/author"
	"github.com/tkempf/biblion/internal/catalog/keyword"
	"github.com/tkempf/biblion/internal/catalog/worktype"
	"github.com/tkempf/biblion/internal/platform/database/schema"
	"github.com/tkempf/biblion/internal/platform/dberr"
	"github.com/tkempf/biblion/pkg/normtext"
)

// pgxTx implements Tx on a pgx transaction.
type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Commit(context context.Context) error {
	return dberr.Wrap(t.tx.Commit(context), "commit_tx")
}

func (t *pgxTx) Rollback(context context.Context) error {
	err := t.tx.Rollback(context)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return dberr.Wrap(err, "rollback_tx")
	}
	return nil
}

func (t *pgxTx) RecordKey(context context.Context, kind OwnerKind, id string) (string, bool, error) {
	table := schema.Work.Table
	if kind == OwnerContainer {
		table = schema.Container.Table
	}

	var key string
	err := t.tx.QueryRow(context, fmt.Sprintf(`SELECT key FROM %s WHERE id = $1`, table), id).Scan(&key)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dberr.Wrap(err, "record_key")
	}
	return key, true, nil
}

func (t *pgxTx) UpsertWork(context context.Context, w *Work, insert bool) error {
	var typeID, containerID any
	containerX := ""
	if w.Type != nil {
		typeID = w.Type.ID
	}
	if w.Container != nil {
		containerID = w.Container.ID
		containerX = normtext.Normalize(w.Container.Title, true)
	}
	titleX := normtext.Normalize(w.Title, true)

	if insert {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, key, typeid, containerid, title, titlex, language,
				edition, publisher, number, yearpub, yearpub2, placepub, location,
				accessdate, note, datation, datationvalue, containerx, firstpage, lastpage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21)
		`, schema.Work.Table)

		_, err := t.tx.Exec(context, query,
			w.ID, w.Key, typeID, containerID, w.Title, titleX, w.Language,
			w.Edition, w.Publisher, w.Number, w.YearPub, w.YearPub2, w.PlacePub, w.Location,
			w.AccessDate, w.Note, w.Datation, w.DatationValue, containerX, w.FirstPage, w.LastPage,
		)
		return dberr.Wrap(err, "insert_work")
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET key = $2, typeid = $3, containerid = $4, title = $5, titlex = $6,
			language = $7, edition = $8, publisher = $9, number = $10,
			yearpub = $11, yearpub2 = $12, placepub = $13, location = $14,
			accessdate = $15, note = $16, datation = $17, datationvalue = $18,
			containerx = $19, firstpage = $20, lastpage = $21
		WHERE id = $1
	`, schema.Work.Table)

	_, err := t.tx.Exec(context, query,
		w.ID, w.Key, typeID, containerID, w.Title, titleX,
		w.Language, w.Edition, w.Publisher, w.Number,
		w.YearPub, w.YearPub2, w.PlacePub, w.Location,
		w.AccessDate, w.Note, w.Datation, w.DatationValue,
		containerX, w.FirstPage, w.LastPage,
	)
	return dberr.Wrap(err, "update_work")
}

func (t *pgxTx) UpsertContainer(context context.Context, c *Container, insert bool) error {
	var typeID any
	if c.Type != nil {
		typeID = c.Type.ID
	}
	titleX := normtext.Normalize(c.Title, true)

	if insert {
		query := fmt.Sprintf(`
			INSERT INTO %s (id, key, typeid, title, titlex, language, edition,
				publisher, number, yearpub, yearpub2, placepub, location,
				accessdate, note, datation, datationvalue)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		`, schema.Container.Table)

		_, err := t.tx.Exec(context, query,
			c.ID, c.Key, typeID, c.Title, titleX, c.Language, c.Edition,
			c.Publisher, c.Number, c.YearPub, c.YearPub2, c.PlacePub, c.Location,
			c.AccessDate, c.Note, c.Datation, c.DatationValue,
		)
		return dberr.Wrap(err, "insert_container")
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET key = $2, typeid = $3, title = $4, titlex = $5, language = $6,
			edition = $7, publisher = $8, number = $9, yearpub = $10,
			yearpub2 = $11, placepub = $12, location = $13, accessdate = $14,
			note = $15, datation = $16, datationvalue = $17
		WHERE id = $1
	`, schema.Container.Table)

	_, err := t.tx.Exec(context, query,
		c.ID, c.Key, typeID, c.Title, titleX, c.Language,
		c.Edition, c.Publisher, c.Number, c.YearPub,
		c.YearPub2, c.PlacePub, c.Location, c.AccessDate,
		c.Note, c.Datation, c.DatationValue,
	)
	return dberr.Wrap(err, "update_container")
}

// zeroUUID stands in for "exclude nothing" on the table the saved record does
// not live in.
const zeroUUID = "00000000-0000-0000-0000-000000000000"

func (t *pgxTx) KeyInUse(context context.Context, key string, kind OwnerKind, excludeID string) (bool, error) {
	excludeWork, excludeContainer := excludeID, zeroUUID
	if kind == OwnerContainer {
		excludeWork, excludeContainer = zeroUUID, excludeID
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE key = $1 AND id <> $2)
		    OR EXISTS (SELECT 1 FROM %s WHERE key = $1 AND id <> $3)
	`, schema.Work.Table, schema.Container.Table)

	var inUse bool
	err := t.tx.QueryRow(context, query, key, excludeWork, excludeContainer).Scan(&inUse)
	return inUse, dberr.Wrap(err, "key_in_use")
}

func (t *pgxTx) FindAuthor(context context.Context, id string) (*author.Author, bool, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE %s = $1`,
		schema.Author.ID, schema.Author.First, schema.Author.Last, schema.Author.Suffix,
		schema.Author.Table, schema.Author.ID,
	)

	a := &author.Author{}
	err := t.tx.QueryRow(context, query, id).Scan(&a.ID, &a.First, &a.Last, &a.Suffix)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, dberr.Wrap(err, "find_author")
	}
	return a, true, nil
}

func (t *pgxTx) SaveAuthor(context context.Context, a *author.Author, insert bool) error {
	if insert {
		query := fmt.Sprintf(`
			INSERT INTO %s (%s, %s, %s, %s, %s)
			VALUES ($1, $2, $3, $4, $5)
		`,
			schema.Author.Table, schema.Author.ID, schema.Author.First,
			schema.Author.Last, schema.Author.Suffix, schema.Author.LastX,
		)
		_, err := t.tx.Exec(context, query, a.ID, a.First, a.Last, a.Suffix, normtext.Normalize(a.Last, false))
		return dberr.Wrap(err, "insert_author")
	}

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1
	`,
		schema.Author.Table, schema.Author.First, schema.Author.Last,
		schema.Author.Suffix, schema.Author.LastX, schema.Author.ID,
	)
	_, err := t.tx.Exec(context, query, a.ID, a.First, a.Last, a.Suffix, normtext.Normalize(a.Last, false))
	return dberr.Wrap(err, "update_author")
}

func (t *pgxTx) EnsureKeyword(context context.Context, k *keyword.Keyword) error {
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

	err := t.tx.QueryRow(context, query, k.Language, k.Value, normtext.Normalize(k.Value, true)).Scan(&k.ID)
	return dberr.Wrap(err, "ensure_keyword")
}

func (t *pgxTx) UpsertWorkType(context context.Context, workType *worktype.WorkType) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
	`,
		schema.WorkType.Table, schema.WorkType.ID, schema.WorkType.Name,
		schema.WorkType.ID, schema.WorkType.Name, schema.WorkType.Name,
	)

	_, err := t.tx.Exec(context, query, workType.ID, workType.Name)
	return dberr.Wrap(err, "upsert_worktype")
}

func (t *pgxTx) ReplaceAuthorLinks(context context.Context, kind OwnerKind, ownerID string, links []Authorship) error {
	table := schema.WorkAuthor.Table
	ownerCol := schema.WorkAuthor.WorkID
	if kind == OwnerContainer {
		table = schema.ContainerAuthor.Table
		ownerCol = schema.ContainerAuthor.ContainerID
	}

	if _, err := t.tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, ownerCol), ownerID,
	); err != nil {
		return dberr.Wrap(err, "clear_author_links")
	}

	if len(links) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	insert := fmt.Sprintf(`INSERT INTO %s (%s, authorid, role, ordinal) VALUES ($1, $2, $3, $4)`, table, ownerCol)
	for _, link := range links {
		batch.Queue(insert, ownerID, link.ID, link.Role, link.Ordinal)
	}

	return dberr.Wrap(t.tx.SendBatch(context, batch).Close(), "write_author_links")
}

func (t *pgxTx) ReplaceKeywordLinks(context context.Context, kind OwnerKind, ownerID string, keywordIDs []int) error {
	table := schema.WorkKeyword.Table
	ownerCol := schema.WorkKeyword.WorkID
	if kind == OwnerContainer {
		table = schema.ContainerKeyword.Table
		ownerCol = schema.ContainerKeyword.ContainerID
	}

	if _, err := t.tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, ownerCol), ownerID,
	); err != nil {
		return dberr.Wrap(err, "clear_keyword_links")
	}

	if len(keywordIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	insert := fmt.Sprintf(`INSERT INTO %s (%s, keywordid) VALUES ($1, $2)`, table, ownerCol)
	for _, keywordID := range keywordIDs {
		batch.Queue(insert, ownerID, keywordID)
	}

	return dberr.Wrap(t.tx.SendBatch(context, batch).Close(), "write_keyword_links")
}

func (t *pgxTx) ReplaceExternalLinks(context context.Context, kind OwnerKind, ownerID string, links []ExternalID) error {
	table := schema.WorkLink.Table
	ownerCol := schema.WorkLink.WorkID
	if kind == OwnerContainer {
		table = schema.ContainerLink.Table
		ownerCol = schema.ContainerLink.ContainerID
	}

	if _, err := t.tx.Exec(context,
		fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, table, ownerCol), ownerID,
	); err != nil {
		return dberr.Wrap(err, "clear_external_links")
	}

	if len(links) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	insert := fmt.Sprintf(`INSERT INTO %s (%s, sourceid, scope, value) VALUES ($1, $2, $3, $4)`, table, ownerCol)
	for _, link := range links {
		batch.Queue(insert, ownerID, link.SourceID, link.Scope, link.Value)
	}

	return dberr.Wrap(t.tx.SendBatch(context, batch).Close(), "write_external_links")
}
