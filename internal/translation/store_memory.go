// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
)

// # In-Memory Repository

// MemoryRepository is a process-local [Repository] used by STORE_DRIVER=memory
// and by tests. Entities are cloned on the way in and out so callers never
// share state with the store.
type MemoryRepository[C Details] struct {
	mu       sync.RWMutex
	resource Resource
	entities map[string]*Entity[C]
}

// NewMemoryRepository creates an empty repository for resource.
func NewMemoryRepository[C Details](resource Resource) *MemoryRepository[C] {
	return &MemoryRepository[C]{
		resource: resource,
		entities: make(map[string]*Entity[C]),
	}
}

// Find implements [Repository].
func (repository *MemoryRepository[C]) Find(_ context.Context, id string) (*Entity[C], error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	entity, ok := repository.entities[id]
	if !ok {
		return nil, apperr.NotFound(repository.resource.Name)
	}
	return entity.Clone(), nil
}

// Search implements [Repository].
func (repository *MemoryRepository[C]) Search(_ context.Context, criteria Criteria) ([]*Entity[C], error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matched := repository.match(criteria)
	slices.SortFunc(matched, func(a, b *Entity[C]) int {
		return compareEntities(a, b, criteria.Sort, criteria.SortLang)
	})

	skip := max(criteria.Page.Skip(), 0)
	if skip >= len(matched) {
		return []*Entity[C]{}, nil
	}
	end := min(skip+criteria.Page.Offset, len(matched))

	page := make([]*Entity[C], 0, end-skip)
	for _, entity := range matched[skip:end] {
		page = append(page, entity.Clone())
	}
	return page, nil
}

// Count implements [Repository].
func (repository *MemoryRepository[C]) Count(_ context.Context, criteria Criteria) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	return len(repository.match(criteria)), nil
}

// DistinctLanguages implements [Repository].
func (repository *MemoryRepository[C]) DistinctLanguages(_ context.Context) ([]Code, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	seen := make(map[Code]struct{})
	codes := []Code{}
	for _, entity := range repository.entities {
		if entity.Deleted() {
			continue
		}
		for _, code := range entity.Languages {
			if _, ok := seen[code]; !ok {
				seen[code] = struct{}{}
				codes = append(codes, code)
			}
		}
	}

	slices.Sort(codes)
	return codes, nil
}

// Create implements [Repository].
func (repository *MemoryRepository[C]) Create(_ context.Context, entity *Entity[C]) error {
	if err := checkPersistable(entity); err != nil {
		return err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.entities[entity.ID]; exists {
		return apperr.Conflict(repository.resource.Name + " already exists")
	}

	entity.Version = 1
	repository.entities[entity.ID] = entity.Clone()
	return nil
}

// Update implements [Repository].
func (repository *MemoryRepository[C]) Update(_ context.Context, entity *Entity[C]) error {
	if err := checkPersistable(entity); err != nil {
		return err
	}

	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.entities[entity.ID]
	if !ok {
		return apperr.NotFound(repository.resource.Name)
	}
	if stored.Version != entity.Version {
		return ErrConcurrentUpdate
	}

	entity.Version++
	repository.entities[entity.ID] = entity.Clone()
	return nil
}

// match returns the stored entities satisfying criteria. Callers hold the lock.
func (repository *MemoryRepository[C]) match(criteria Criteria) []*Entity[C] {
	matched := make([]*Entity[C], 0)
	for _, entity := range repository.entities {
		if Matches(entity, criteria) {
			matched = append(matched, entity)
		}
	}
	return matched
}

// compareEntities orders entities like the SQL ORDER BY of the Postgres
// repository: the sort field first, then ID descending.
func compareEntities[C Details](a, b *Entity[C], sort Sort, lang Code) int {
	var order int
	switch sort.Field {
	case SortTag:
		order = cmp.Compare(a.Tag, b.Tag)
	case SortName:
		order = strings.Compare(sortName(a, lang), sortName(b, lang))
	case SortCreatedAt:
		order = a.CreatedAt.Compare(b.CreatedAt)
	case SortUpdatedAt:
		order = a.UpdatedAt.Compare(b.UpdatedAt)
	}

	if sort.Descending {
		order = -order
	}
	if order != 0 {
		return order
	}
	return strings.Compare(b.ID, a.ID)
}

// sortName is the lowercased name in lang, or in the entity's first language.
func sortName[C Details](entity *Entity[C], lang Code) string {
	if lang == "" && len(entity.Languages) > 0 {
		lang = entity.Languages[0]
	}
	block, ok := entity.Translations.Get(lang)
	if !ok {
		return ""
	}
	return strings.ToLower(block.Name)
}
