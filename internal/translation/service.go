// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/pkg/clock"
	"github.com/taibuivan/grimoire/pkg/pagination"
	"github.com/taibuivan/grimoire/pkg/uuid"
)

// # Service Layer

// Service orchestrates one content collection: it loads entities, applies
// the [Manager] and [Resolver] rules and persists the outcome.
type Service[C Details] struct {
	repo     Repository[C]
	cache    LanguageCache
	manager  Manager[C]
	resolver Resolver[C]
	resource Resource
	clock    clock.Clock
	logger   *slog.Logger
}

// Options configures a [Service].
type Options struct {
	// DefaultLanguage is rendered when a read names no language.
	DefaultLanguage Code

	// Clock stamps every mutation. Defaults to the system clock.
	Clock clock.Clock

	// Cache holds the distinct language set. Defaults to [NopLanguageCache].
	Cache LanguageCache
}

// NewService constructs a [Service] for resource.
func NewService[C Details](repo Repository[C], resource Resource, options Options, logger *slog.Logger) *Service[C] {
	if options.Clock == nil {
		options.Clock = clock.New()
	}
	if options.Cache == nil {
		options.Cache = NopLanguageCache{}
	}

	return &Service[C]{
		repo:     repo,
		cache:    options.Cache,
		manager:  NewManager[C](resource),
		resolver: NewResolver[C](resource, options.DefaultLanguage),
		resource: resource,
		clock:    options.Clock,
		logger:   logger.With(slog.String("resource", resource.Key)),
	}
}

// # Collection

/*
Search returns one page of live entities.

Parameters:
  - context: context.Context
  - request: SearchRequest (raw list query)

Returns:
  - []*Entity[C]: Hits, restricted to the translations worth showing
  - pagination.Meta: Page, page size and total matching entities
  - error: VALIDATION_ERROR for a malformed query
*/
func (service *Service[C]) Search(context context.Context, request SearchRequest) ([]*Entity[C], pagination.Meta, error) {
	var known []Code

	// Only a cross-language name search needs the language set
	if request.Lang == "" && strings.TrimSpace(request.Name) != "" {
		languages, err := service.knownLanguages(context)
		if err != nil {
			return nil, pagination.Meta{}, err
		}
		known = languages
	}

	criteria, err := BuildCriteria(request, known)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	entities, err := service.repo.Search(context, criteria)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	total, err := service.repo.Count(context, criteria)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	hits := make([]*Entity[C], 0, len(entities))
	for _, entity := range entities {
		if hit, ok := FilterMatches(entity, criteria); ok {
			hits = append(hits, hit)
		}
	}

	return hits, pagination.NewMeta(criteria.Page.Page, criteria.Page.Offset, total), nil
}

/*
Create stores a new homebrew entity with one translation.

Returns:
  - *Entity[C]: The persisted entity
  - error: VALIDATION_ERROR for a malformed language or payload
*/
func (service *Service[C]) Create(context context.Context, lang string, content Content[C]) (*Entity[C], error) {
	entity, err := service.manager.NewEntity(uuid.New(), lang, content, service.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, entity); err != nil {
		return nil, err
	}

	service.invalidateLanguages(context)

	service.logger.Info(service.resource.Key+"_created",
		slog.String("id", entity.ID),
		slog.String("lang", lang),
	)

	return entity, nil
}

// # Entity

/*
Get renders one entity in the best available language.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - lang: string (preferred language, may be empty)

Returns:
  - *Resolved[C]: The entity in the chosen language
  - error: NOT_FOUND if missing, GONE if soft-deleted
*/
func (service *Service[C]) Get(context context.Context, id, lang string) (*Resolved[C], error) {
	entity, err := service.find(context, id)
	if err != nil {
		return nil, err
	}
	return service.resolver.ResolveAndFetch(entity, lang)
}

/*
Delete soft-deletes an entity.

Returns:
  - error: NOT_FOUND, GONE if already deleted, FORBIDDEN if it holds SRD content
*/
func (service *Service[C]) Delete(context context.Context, id string) error {
	entity, err := service.find(context, id)
	if err != nil {
		return err
	}

	if err := service.manager.DeleteEntity(entity, service.clock.Now()); err != nil {
		return err
	}

	if err := service.repo.Update(context, entity); err != nil {
		return err
	}

	service.invalidateLanguages(context)

	service.logger.Info(service.resource.Key+"_deleted", slog.String("id", id))

	return nil
}

// # Translations

// ListTranslations summarises the active translations of an entity.
func (service *Service[C]) ListTranslations(context context.Context, id string) ([]Summary, error) {
	entity, err := service.find(context, id)
	if err != nil {
		return nil, err
	}
	return service.manager.ListTranslations(entity)
}

// GetTranslation returns one active translation, with no fallback.
func (service *Service[C]) GetTranslation(context context.Context, id, lang string) (*Block[C], error) {
	entity, err := service.find(context, id)
	if err != nil {
		return nil, err
	}
	return service.manager.GetTranslation(entity, lang)
}

/*
AddTranslation adds a language to an entity.

Returns:
  - *Entity[C]: The updated entity
  - string: Human-readable summary ("translation de added in 3ms")
  - error: GONE, VALIDATION_ERROR or CONFLICT
*/
func (service *Service[C]) AddTranslation(context context.Context, id, lang string, content Content[C]) (*Entity[C], string, error) {
	started := service.clock.Now()

	entity, err := service.find(context, id)
	if err != nil {
		return nil, "", err
	}

	code, err := service.manager.AddTranslation(entity, lang, content, started)
	if err != nil {
		return nil, "", err
	}

	if err := service.repo.Update(context, entity); err != nil {
		return nil, "", err
	}

	service.invalidateLanguages(context)

	elapsed := service.clock.Now().Sub(started)

	service.logger.Info("translation_added",
		slog.String("id", id),
		slog.String("lang", code.String()),
		slog.Duration("elapsed", elapsed),
	)

	return entity, fmt.Sprintf("translation %s added in %dms", code, elapsed.Milliseconds()), nil
}

/*
UpdateTranslation replaces the content of one translation.

Returns:
  - *Block[C]: The updated translation
  - error: NOT_FOUND, GONE, FORBIDDEN for SRD content or VALIDATION_ERROR
*/
func (service *Service[C]) UpdateTranslation(context context.Context, id, lang string, content Content[C]) (*Block[C], error) {
	entity, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	block, err := service.manager.UpdateTranslation(entity, lang, content, service.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, entity); err != nil {
		return nil, err
	}

	service.logger.Info("translation_updated",
		slog.String("id", id),
		slog.String("lang", lang),
	)

	return block, nil
}

/*
DeleteTranslation soft-deletes one translation.

Returns:
  - []Code: The remaining active languages
  - error: NOT_FOUND, GONE or FORBIDDEN
*/
func (service *Service[C]) DeleteTranslation(context context.Context, id, lang string) ([]Code, error) {
	entity, err := service.find(context, id)
	if err != nil {
		return nil, err
	}

	remaining, err := service.manager.DeleteTranslation(entity, lang, service.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, entity); err != nil {
		return nil, err
	}

	service.invalidateLanguages(context)

	service.logger.Info("translation_deleted",
		slog.String("id", id),
		slog.String("lang", lang),
	)

	return remaining, nil
}

// # Helpers

// find loads an entity. Anything that is not a UUID cannot exist.
func (service *Service[C]) find(context context.Context, id string) (*Entity[C], error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound(service.resource.Name)
	}
	return service.repo.Find(context, id)
}

// knownLanguages reads the distinct language set through the cache.
// Cache failures are logged and fall back to the repository.
func (service *Service[C]) knownLanguages(context context.Context) ([]Code, error) {
	cached, ok, readErr := service.cache.Get(context, service.resource.Key)
	if readErr != nil {
		service.logger.Warn("language_cache_read_failed", slog.Any("error", readErr))
	}
	if ok {
		return cached.Codes, nil
	}

	codes, err := service.repo.DistinctLanguages(context)
	if err != nil {
		return nil, err
	}

	// Without a generation the write could not be checked against invalidations
	if readErr != nil {
		return codes, nil
	}

	fresh := LanguageSet{Codes: codes, Generation: cached.Generation}
	if err := service.cache.Set(context, service.resource.Key, fresh); err != nil {
		service.logger.Warn("language_cache_write_failed", slog.Any("error", err))
	}

	return codes, nil
}

// invalidateLanguages drops the cached language set after a mutation that
// may change it. The TTL bounds staleness if the delete fails.
func (service *Service[C]) invalidateLanguages(context context.Context) {
	if err := service.cache.Invalidate(context, service.resource.Key); err != nil {
		service.logger.Warn("language_cache_invalidate_failed", slog.Any("error", err))
	}
}
