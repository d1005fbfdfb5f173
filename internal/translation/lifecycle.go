// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"fmt"
	"slices"
	"time"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/pkg/slice"
)

// translationResource is the display name used for block-level errors.
const translationResource = "Translation"

// # Lifecycle Manager

// Manager enforces the translation invariants on an in-memory [Entity].
//
// Every method runs all of its guards before touching the entity, so a
// failed call leaves the entity exactly as it was. Persisting the result is
// the caller's job.
type Manager[C Details] struct {
	resource Resource
}

// NewManager returns a [Manager] reporting errors for resource.
func NewManager[C Details](resource Resource) Manager[C] {
	return Manager[C]{resource: resource}
}

/*
NewEntity builds a homebrew entity with a single translation.

Parameters:
  - id: string (pre-generated UUIDv7)
  - lang: string (raw language code of the initial translation)
  - content: Content[C] (initial translation payload; SRD is ignored)
  - now: time.Time

Returns:
  - *Entity[C]: The new entity, not yet persisted
  - error: VALIDATION_ERROR listing every invalid field
*/
func (manager Manager[C]) NewEntity(id, lang string, content Content[C], now time.Time) (*Entity[C], error) {

	// Collect code and payload errors in one response
	validator := &validate.Validator{}
	validator.LanguageCode(FieldLang, lang)
	content.Validate(validator)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	code := Code(lang)
	entity := &Entity[C]{
		ID:        id,
		Tag:       TagHomebrew,
		Languages: []Code{code},
		CreatedAt: now,
		UpdatedAt: now,
	}
	entity.Translations.Set(code, newBlock(content, now))

	return entity, nil
}

/*
AddTranslation inserts a new language into the entity.

Description: The guards run in this order: entity soft-deleted (GONE),
malformed code (VALIDATION_ERROR), key already present even if soft-deleted
(CONFLICT), invalid payload (VALIDATION_ERROR). The new block is never SRD.

Returns:
  - Code: The parsed language code
  - error: One of the kinds above
*/
func (manager Manager[C]) AddTranslation(entity *Entity[C], lang string, content Content[C], now time.Time) (Code, error) {
	if entity.Deleted() {
		return "", apperr.Gone(manager.resource.Name)
	}

	code, err := ParseCode(lang)
	if err != nil {
		return "", err
	}

	// Re-adding a soft-deleted language is rejected as well
	if _, exists := entity.Translations.Get(code); exists {
		return "", apperr.Conflict(fmt.Sprintf("Translation %s already exists", code))
	}

	validator := &validate.Validator{}
	content.Validate(validator)
	if err := validator.Err(); err != nil {
		return "", err
	}

	entity.Translations.Set(code, newBlock(content, now))
	entity.Languages = append(entity.Languages, code)
	entity.UpdatedAt = now

	return code, nil
}

/*
GetTranslation returns a copy of one active translation.

Returns:
  - *Block[C]: The block for lang
  - error: GONE if the entity or the block is soft-deleted, NOT_FOUND if absent
*/
func (manager Manager[C]) GetTranslation(entity *Entity[C], lang string) (*Block[C], error) {
	_, block, err := manager.lookup(entity, lang)
	if err != nil {
		return nil, err
	}
	return block.clone(), nil
}

/*
ListTranslations summarises the active translations in language order.
*/
func (manager Manager[C]) ListTranslations(entity *Entity[C]) ([]Summary, error) {
	if entity.Deleted() {
		return nil, apperr.Gone(manager.resource.Name)
	}

	summaries := make([]Summary, 0, len(entity.Languages))
	for _, code := range entity.Languages {
		block, ok := entity.Translations.Get(code)
		if !ok || !block.Active() {
			continue
		}
		summaries = append(summaries, Summary{
			Lang:      code,
			SRD:       block.SRD,
			Name:      block.Name,
			CreatedAt: block.CreatedAt,
			UpdatedAt: block.UpdatedAt,
		})
	}

	return summaries, nil
}

/*
UpdateTranslation replaces the content of an active, non-SRD translation.

Description: Keeps the block's creation time and SRD flag; only name,
description, details and the update time change.

Returns:
  - *Block[C]: A copy of the updated block
  - error: GONE / NOT_FOUND as [Manager.GetTranslation], FORBIDDEN for SRD
    blocks, VALIDATION_ERROR for an invalid payload
*/
func (manager Manager[C]) UpdateTranslation(entity *Entity[C], lang string, content Content[C], now time.Time) (*Block[C], error) {
	_, block, err := manager.lookup(entity, lang)
	if err != nil {
		return nil, err
	}

	if block.SRD {
		return nil, apperr.Forbidden("SRD translations are protected")
	}

	validator := &validate.Validator{}
	content.Validate(validator)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	block.Name = content.Name
	block.Description = content.Description
	block.Details = content.Details
	block.UpdatedAt = now
	entity.UpdatedAt = now

	return block.clone(), nil
}

/*
DeleteTranslation soft-deletes one translation.

Description: Guards, in order: entity soft-deleted (GONE), key absent
(NOT_FOUND), block already deleted (GONE), SRD block (FORBIDDEN), last active
translation (FORBIDDEN). On success the block gets a deletion time and the
code leaves Languages.

Returns:
  - []Code: The remaining active languages
  - error: One of the kinds above
*/
func (manager Manager[C]) DeleteTranslation(entity *Entity[C], lang string, now time.Time) ([]Code, error) {
	code, block, err := manager.lookup(entity, lang)
	if err != nil {
		return nil, err
	}

	if block.SRD {
		return nil, apperr.Forbidden("SRD translations are protected")
	}

	if active := entity.Translations.ActiveLanguages(); len(active) == 1 && active[0] == code {
		return nil, apperr.Forbidden("Cannot delete the last active translation")
	}

	deletedAt := now
	block.DeletedAt = &deletedAt
	block.UpdatedAt = now
	entity.Languages = slice.Without(entity.Languages, code)
	entity.UpdatedAt = now

	return slices.Clone(entity.Languages), nil
}

/*
DeleteEntity soft-deletes the whole entity.

Description: An entity holding any SRD translation cannot be deleted, since
that would retire the SRD content with it. Translations are left untouched.
*/
func (manager Manager[C]) DeleteEntity(entity *Entity[C], now time.Time) error {
	if entity.Deleted() {
		return apperr.Gone(manager.resource.Name)
	}

	for _, code := range entity.Translations.Codes() {
		if block, _ := entity.Translations.Get(code); block.SRD {
			return apperr.Forbidden(fmt.Sprintf("%s holds SRD translations and is protected", manager.resource.Name))
		}
	}

	deletedAt := now
	entity.DeletedAt = &deletedAt
	entity.UpdatedAt = now

	return nil
}

// lookup resolves lang to an active block, with the shared error precedence:
// deleted entity, then absent key (malformed codes are never present), then
// deleted block.
func (manager Manager[C]) lookup(entity *Entity[C], lang string) (Code, *Block[C], error) {
	if entity.Deleted() {
		return "", nil, apperr.Gone(manager.resource.Name)
	}

	code, err := ParseCode(lang)
	if err != nil {
		return "", nil, apperr.NotFound(translationResource)
	}

	block, ok := entity.Translations.Get(code)
	if !ok {
		return "", nil, apperr.NotFound(translationResource)
	}

	if !block.Active() {
		return "", nil, apperr.Gone(translationResource)
	}

	return code, block, nil
}
