// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"github.com/taibuivan/grimoire/internal/platform/apperr"
)

// # Language Resolver

// Resolver picks the language an entity is rendered in when the caller only
// hints at one. Unlike [Manager.GetTranslation] it never fails because of a
// missing language: callers always get some content.
type Resolver[C Details] struct {
	resource        Resource
	defaultLanguage Code
}

// NewResolver builds a [Resolver] preferring defaultLanguage when the
// request names none. The default comes from configuration.
func NewResolver[C Details](resource Resource, defaultLanguage Code) Resolver[C] {
	return Resolver[C]{resource: resource, defaultLanguage: defaultLanguage}
}

/*
ResolveAndFetch renders entity in the best available language.

Description:
  - requested names an active translation: that translation.
  - requested is set but absent, deleted or malformed: the entity's first
    language.
  - requested is empty: the configured default when active, otherwise the
    entity's first language.

Returns:
  - *Resolved[C]: The entity in the chosen language
  - error: GONE if the entity is soft-deleted, NOT_FOUND only if it has no
    active translation at all
*/
func (resolver Resolver[C]) ResolveAndFetch(entity *Entity[C], requested string) (*Resolved[C], error) {
	if entity.Deleted() {
		return nil, apperr.Gone(resolver.resource.Name)
	}

	code, ok := resolver.pick(entity, requested)
	if !ok {
		return nil, apperr.NotFound(translationResource)
	}

	block, _ := entity.Translations.Get(code)

	return &Resolved[C]{
		ID:          entity.ID,
		Tag:         entity.Tag,
		Lang:        code,
		Languages:   append([]Code(nil), entity.Languages...),
		Translation: block.clone(),
		CreatedAt:   entity.CreatedAt,
		UpdatedAt:   entity.UpdatedAt,
	}, nil
}

// pick returns the code to render, or false when nothing is active.
func (resolver Resolver[C]) pick(entity *Entity[C], requested string) (Code, bool) {
	preferred := resolver.defaultLanguage
	if requested != "" {
		preferred = Code(requested)
	}

	// A malformed code is never a key, so it simply falls through.
	if isActive(entity, preferred) {
		return preferred, true
	}

	for _, code := range entity.Languages {
		if isActive(entity, code) {
			return code, true
		}
	}

	return "", false
}

func isActive[C Details](entity *Entity[C], code Code) bool {
	block, ok := entity.Translations.Get(code)
	return ok && block.Active()
}
