// Copyright (c) 2026 Biblion. All rights reserved.

package work

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tkempf/biblion/internal/catalog/author"
	"github.com/tkempf/biblion/internal/catalog/keyword"
	"github.com/tkempf/biblion/internal/catalog/worktype"
	"github.com/tkempf/biblion/internal/platform/dberr"
)

// memStore is an in-memory Repository/Tx pair backing the service tests. It
// mirrors the relational layout: owner rows, shared entity rows and
// association sets keyed by owner id.
type memStore struct {
	works      map[string]*Work
	containers map[string]*Container

	authors       map[string]author.Author
	keywordIDs    map[string]int // "language|value" -> id
	keywordRows   map[int]keyword.Keyword
	nextKeywordID int
	types         map[string]string // id -> name

	workAuthors       map[string][]Authorship
	containerAuthors  map[string][]Authorship
	workKeywords      map[string][]int
	containerKeywords map[string][]int
	workLinks         map[string][]ExternalID
	containerLinks    map[string][]ExternalID

	commits   int
	rollbacks int

	// keywordLinkErr, when set, is returned by ReplaceKeywordLinks to force a
	// failure partway through a save.
	keywordLinkErr error
}

func newMemStore() *memStore {
	return &memStore{
		works:             map[string]*Work{},
		containers:        map[string]*Container{},
		authors:           map[string]author.Author{},
		keywordIDs:        map[string]int{},
		keywordRows:       map[int]keyword.Keyword{},
		nextKeywordID:     1,
		types:             map[string]string{},
		workAuthors:       map[string][]Authorship{},
		containerAuthors:  map[string][]Authorship{},
		workKeywords:      map[string][]int{},
		containerKeywords: map[string][]int{},
		workLinks:         map[string][]ExternalID{},
		containerLinks:    map[string][]ExternalID{},
	}
}

func (s *memStore) Begin(context.Context) (Tx, error) { return &memTx{s: s}, nil }

func (s *memStore) GetWork(ctx context.Context, id string) (*Work, error) {
	w, ok := s.works[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *w
	clone.Authors = s.workAuthors[id]
	clone.Links = s.workLinks[id]
	for _, keywordID := range s.workKeywords[id] {
		clone.Keywords = append(clone.Keywords, s.keywordRows[keywordID])
	}
	if clone.Container != nil {
		container, err := s.GetContainer(ctx, clone.Container.ID)
		if err != nil {
			clone.Container = nil
		} else {
			clone.Container = container
		}
	}
	return &clone, nil
}

func (s *memStore) GetContainer(_ context.Context, id string) (*Container, error) {
	c, ok := s.containers[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *c
	clone.Authors = s.containerAuthors[id]
	clone.Links = s.containerLinks[id]
	for _, keywordID := range s.containerKeywords[id] {
		clone.Keywords = append(clone.Keywords, s.keywordRows[keywordID])
	}
	return &clone, nil
}

func (s *memStore) ListWorks(context.Context, Filter, int, int) ([]*Info, int, error) {
	return nil, len(s.works), nil
}

func (s *memStore) ListContainers(context.Context, Filter, int, int) ([]*Info, int, error) {
	return nil, len(s.containers), nil
}

func (s *memStore) DeleteWork(_ context.Context, id string) error {
	delete(s.works, id)
	delete(s.workAuthors, id)
	delete(s.workKeywords, id)
	delete(s.workLinks, id)
	return nil
}

func (s *memStore) DeleteContainer(_ context.Context, id string) error {
	delete(s.containers, id)
	delete(s.containerAuthors, id)
	delete(s.containerKeywords, id)
	delete(s.containerLinks, id)
	return nil
}

type memTx struct {
	s    *memStore
	done bool
}

func (t *memTx) Commit(context.Context) error {
	t.done = true
	t.s.commits++
	return nil
}

// Rollback after Commit is a no-op, as with a real transaction, so the
// rollbacks counter only records aborted saves.
func (t *memTx) Rollback(context.Context) error {
	if t.done {
		return nil
	}
	t.s.rollbacks++
	return nil
}

func (t *memTx) RecordKey(_ context.Context, kind OwnerKind, id string) (string, bool, error) {
	if kind == OwnerContainer {
		if c, ok := t.s.containers[id]; ok {
			return c.Key, true, nil
		}
		return "", false, nil
	}
	if w, ok := t.s.works[id]; ok {
		return w.Key, true, nil
	}
	return "", false, nil
}

func (t *memTx) UpsertWork(_ context.Context, w *Work, _ bool) error {
	clone := *w
	clone.Authors = nil
	clone.Keywords = nil
	clone.Links = nil
	if clone.Container != nil {
		// Like the relational row, only the container id is stored; GetWork
		// re-hydrates the container from its own row.
		clone.Container = &Container{Record: Record{ID: clone.Container.ID}}
	}
	t.s.works[w.ID] = &clone
	return nil
}

func (t *memTx) UpsertContainer(_ context.Context, c *Container, _ bool) error {
	clone := *c
	clone.Authors = nil
	clone.Keywords = nil
	clone.Links = nil
	t.s.containers[c.ID] = &clone
	return nil
}

func (t *memTx) KeyInUse(_ context.Context, key string, kind OwnerKind, excludeID string) (bool, error) {
	for id, w := range t.s.works {
		if w.Key == key && !(kind == OwnerWork && id == excludeID) {
			return true, nil
		}
	}
	for id, c := range t.s.containers {
		if c.Key == key && !(kind == OwnerContainer && id == excludeID) {
			return true, nil
		}
	}
	return false, nil
}

func (t *memTx) FindAuthor(_ context.Context, id string) (*author.Author, bool, error) {
	a, ok := t.s.authors[id]
	if !ok {
		return nil, false, nil
	}
	return &a, true, nil
}

func (t *memTx) SaveAuthor(_ context.Context, a *author.Author, _ bool) error {
	t.s.authors[a.ID] = *a
	return nil
}

func (t *memTx) EnsureKeyword(_ context.Context, k *keyword.Keyword) error {
	pair := fmt.Sprintf("%s|%s", k.Language, k.Value)
	if id, ok := t.s.keywordIDs[pair]; ok {
		k.ID = id
		return nil
	}
	k.ID = t.s.nextKeywordID
	t.s.nextKeywordID++
	t.s.keywordIDs[pair] = k.ID
	t.s.keywordRows[k.ID] = *k
	return nil
}

func (t *memTx) UpsertWorkType(_ context.Context, wt *worktype.WorkType) error {
	t.s.types[wt.ID] = wt.Name
	return nil
}

func (t *memTx) ReplaceAuthorLinks(_ context.Context, kind OwnerKind, ownerID string, links []Authorship) error {
	if kind == OwnerContainer {
		t.s.containerAuthors[ownerID] = links
		return nil
	}
	t.s.workAuthors[ownerID] = links
	return nil
}

func (t *memTx) ReplaceKeywordLinks(_ context.Context, kind OwnerKind, ownerID string, keywordIDs []int) error {
	if t.s.keywordLinkErr != nil {
		return t.s.keywordLinkErr
	}
	if kind == OwnerContainer {
		t.s.containerKeywords[ownerID] = keywordIDs
		return nil
	}
	t.s.workKeywords[ownerID] = keywordIDs
	return nil
}

func (t *memTx) ReplaceExternalLinks(_ context.Context, kind OwnerKind, ownerID string, links []ExternalID) error {
	if kind == OwnerContainer {
		t.s.containerLinks[ownerID] = links
		return nil
	}
	t.s.workLinks[ownerID] = links
	return nil
}

// memCache mirrors RedisCache's semantics: entries are serialized on write and
// Invalidate drops both namespaces for every id.
type memCache struct {
	works      map[string][]byte
	containers map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{
		works:      map[string][]byte{},
		containers: map[string][]byte{},
	}
}

func (c *memCache) GetWork(_ context.Context, id string) (*Work, bool) {
	raw, ok := c.works[id]
	if !ok {
		return nil, false
	}
	w := &Work{}
	if err := json.Unmarshal(raw, w); err != nil {
		return nil, false
	}
	return w, true
}

func (c *memCache) SetWork(_ context.Context, w *Work) {
	raw, err := json.Marshal(w)
	if err != nil {
		return
	}
	c.works[w.ID] = raw
}

func (c *memCache) GetContainer(_ context.Context, id string) (*Container, bool) {
	raw, ok := c.containers[id]
	if !ok {
		return nil, false
	}
	container := &Container{}
	if err := json.Unmarshal(raw, container); err != nil {
		return nil, false
	}
	return container, true
}

func (c *memCache) SetContainer(_ context.Context, container *Container) {
	raw, err := json.Marshal(container)
	if err != nil {
		return
	}
	c.containers[container.ID] = raw
}

func (c *memCache) Invalidate(_ context.Context, ids ...string) {
	for _, id := range ids {
		if id == "" {
			continue
		}
		delete(c.works, id)
		delete(c.containers, id)
	}
}
