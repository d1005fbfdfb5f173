// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"context"
	"fmt"
	"slices"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
)

// # Repository Contract

// Repository persists whole entity documents of one content family.
type Repository[C Details] interface {
	// Find returns the entity with the given ID, soft-deleted or not.
	// Returns NOT_FOUND when no such entity was ever stored.
	Find(ctx context.Context, id string) (*Entity[C], error)

	// Search returns one page of live entities matching criteria, sorted.
	// Translations are returned in full; projection happens in the service.
	Search(ctx context.Context, criteria Criteria) ([]*Entity[C], error)

	// Count returns the number of live entities matching criteria,
	// ignoring pagination.
	Count(ctx context.Context, criteria Criteria) (int, error)

	// DistinctLanguages returns every language code active on a live entity.
	DistinctLanguages(ctx context.Context) ([]Code, error)

	// Create stores a new entity at version 1.
	Create(ctx context.Context, entity *Entity[C]) error

	// Update replaces the stored document if its version still equals
	// entity.Version, then increments entity.Version. A stale version yields
	// CONFLICT and leaves the stored document untouched.
	Update(ctx context.Context, entity *Entity[C]) error
}

//go:generate mockgen -destination=mock/mock.go -package=mocktranslation github.com/taibuivan/grimoire/internal/translation LanguageCache

// LanguageCache caches the result of [Repository.DistinctLanguages].
//
// Every Invalidate bumps the generation of the resource. Set only stores a
// set read at the current generation, so a set computed before an
// invalidation can never overwrite it.
type LanguageCache interface {
	// Get returns the cached set; ok is false on a miss. Generation is
	// filled in either way and must be handed back to Set.
	Get(ctx context.Context, resource string) (set LanguageSet, ok bool, err error)
	Set(ctx context.Context, resource string, set LanguageSet) error
	Invalidate(ctx context.Context, resource string) error
}

// LanguageSet is the distinct language set of a collection as of Generation.
type LanguageSet struct {
	Codes      []Code
	Generation int64
}

// ErrConcurrentUpdate is returned by Update when the stored version moved on.
var ErrConcurrentUpdate = apperr.Conflict("Entity was modified concurrently, retry")

// checkPersistable refuses documents that break the translation invariants.
//
// Languages must list exactly the active translation keys, in order, and at
// least one must exist. A violation is a programming error, never user input.
func checkPersistable[C Details](entity *Entity[C]) error {
	active := entity.Translations.ActiveLanguages()

	if len(active) == 0 {
		return apperr.Internal(fmt.Errorf("translation: entity %s has no active translation", entity.ID))
	}

	if !slices.Equal(sortedCodes(active), sortedCodes(entity.Languages)) {
		return apperr.Internal(fmt.Errorf("translation: entity %s languages %v do not match active translations %v",
			entity.ID, entity.Languages, active))
	}

	return nil
}

func sortedCodes(codes []Code) []Code {
	sorted := slices.Clone(codes)
	slices.Sort(sorted)
	return sorted
}
