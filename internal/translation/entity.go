// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"slices"
	"time"
)

// Tag records the provenance of an entity.
type Tag int

const (
	// TagHomebrew marks user-authored content.
	TagHomebrew Tag = 0
	// TagCertified marks official content.
	TagCertified Tag = 1
)

// Entity is a content document (a spell, a monster) with its translations.
//
// Languages always lists the active keys of Translations in insertion order.
// Every persisted entity has at least one active translation.
type Entity[C Details] struct {
	ID           string     `json:"id"`
	Tag          Tag        `json:"tag"`
	Languages    []Code     `json:"languages"`
	Translations Map[C]     `json:"translations"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`

	// Version is the optimistic concurrency token checked by Repository.Update.
	Version int `json:"-"`
}

// Deleted reports whether the entity is soft-deleted.
func (e *Entity[C]) Deleted() bool {
	return e.DeletedAt != nil
}

// Clone returns a deep copy of the entity.
func (e *Entity[C]) Clone() *Entity[C] {
	copied := *e
	copied.Languages = slices.Clone(e.Languages)
	copied.Translations = e.Translations.Clone()
	if e.DeletedAt != nil {
		deletedAt := *e.DeletedAt
		copied.DeletedAt = &deletedAt
	}
	return &copied
}

// WithTranslations returns a shallow copy of the entity exposing only the
// given translations. It is used to render search hits.
func (e *Entity[C]) WithTranslations(translations Map[C]) *Entity[C] {
	copied := *e
	copied.Translations = translations
	return &copied
}

// Summary is the lightweight listing of one active translation.
type Summary struct {
	Lang      Code      `json:"lang"`
	SRD       bool      `json:"srd"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resolved is an entity rendered in a single language.
type Resolved[C Details] struct {
	ID          string    `json:"id"`
	Tag         Tag       `json:"tag"`
	Lang        Code      `json:"lang"`
	Languages   []Code    `json:"languages"`
	Translation *Block[C] `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Resource names a content family and where it is stored.
type Resource struct {
	// Name is the singular display name used in error messages ("Spell").
	Name string
	// Key is the lowercase identifier used in logs and cache keys ("spell").
	Key string
}
