// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package spell defines the spell content family.

A spell is a [translation.Entity] whose per-language blocks carry [Details].
Everything language related (lifecycle, fallback, search) is handled by the
translation package; this package only contributes the payload shape, its
validation rules and the storage binding.
*/
package spell

import (
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/grimoire/internal/platform/database/schema"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/internal/translation"
)

// # Domain Types

type (
	// Spell is a spell with all of its translations.
	Spell = translation.Entity[Details]

	// Service manages the spell collection.
	Service = translation.Service[Details]

	// Handler exposes the spell collection over REST.
	Handler = translation.Handler[Details]
)

// Resource identifies the spell collection in errors, logs and cache keys.
var Resource = translation.Resource{Name: "Spell", Key: "spell"}

// Details is the language-specific description of a spell's mechanics.
//
// Fields hold display text (for example casting_time "1 action") so each
// translation can phrase them in its own language.
type Details struct {
	Level         int      `json:"level"` // 0 = cantrip
	School        string   `json:"school"`
	CastingTime   string   `json:"casting_time"`
	Range         string   `json:"range"`
	Components    []string `json:"components"`
	Material      string   `json:"material,omitempty"`
	Duration      string   `json:"duration"`
	Concentration bool     `json:"concentration"`
	Ritual        bool     `json:"ritual"`
	HigherLevel   string   `json:"higher_level,omitempty"`
	Classes       []string `json:"classes,omitempty"`
}

// Field names for validation
const (
	FieldLevel       = "details.level"
	FieldSchool      = "details.school"
	FieldCastingTime = "details.casting_time"
	FieldRange       = "details.range"
	FieldComponents  = "details.components"
	FieldMaterial    = "details.material"
	FieldDuration    = "details.duration"
	FieldHigherLevel = "details.higher_level"
	FieldClasses     = "details.classes"
)

// Component codes
const (
	ComponentVerbal   = "V"
	ComponentSomatic  = "S"
	ComponentMaterial = "M"
)

// Schools lists the valid schools of magic.
var Schools = []string{
	"abjuration", "conjuration", "divination", "enchantment",
	"evocation", "illusion", "necromancy", "transmutation",
}

const (
	maxLevel       = 9
	maxShortText   = 100
	maxMaterialLen = 500
	maxHigherLevel = 5000
	maxClassLen    = 50
)

// # Validation

// Validate implements [translation.Details].
func (d Details) Validate(v *validate.Validator) {
	v.Range(FieldLevel, d.Level, 0, maxLevel)
	v.OneOf(FieldSchool, d.School, Schools...)

	v.Required(FieldCastingTime, d.CastingTime).MaxLen(FieldCastingTime, d.CastingTime, maxShortText)
	v.Required(FieldRange, d.Range).MaxLen(FieldRange, d.Range, maxShortText)
	v.Required(FieldDuration, d.Duration).MaxLen(FieldDuration, d.Duration, maxShortText)
	v.MaxLen(FieldHigherLevel, d.HigherLevel, maxHigherLevel)

	// Components: non-empty set of V, S, M
	v.Custom(FieldComponents, len(d.Components) == 0, "At least one component is required")
	validate.Each(v, FieldComponents, d.Components, func(v *validate.Validator, field, component string) {
		v.OneOf(field, component, ComponentVerbal, ComponentSomatic, ComponentMaterial)
	})
	v.Custom(FieldComponents, hasDuplicates(d.Components), "Components must not repeat")

	// Material text goes with the M component and only with it
	hasMaterial := slices.Contains(d.Components, ComponentMaterial)
	v.Custom(FieldMaterial, hasMaterial && d.Material == "", "Required when components include M")
	v.Custom(FieldMaterial, !hasMaterial && d.Material != "", "Only allowed when components include M")
	v.MaxLen(FieldMaterial, d.Material, maxMaterialLen)

	validate.Each(v, FieldClasses, d.Classes, func(v *validate.Validator, field, class string) {
		v.Required(field, class).MaxLen(field, class, maxClassLen)
	})
}

func hasDuplicates(values []string) bool {
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			return true
		}
		seen[value] = struct{}{}
	}
	return false
}

// # Wiring

// NewPostgresRepository stores spells in content.spell.
func NewPostgresRepository(pool *pgxpool.Pool) translation.Repository[Details] {
	return translation.NewPostgresRepository[Details](pool, schema.ContentSpell, Resource)
}

// NewMemoryRepository keeps spells in process memory.
func NewMemoryRepository() translation.Repository[Details] {
	return translation.NewMemoryRepository[Details](Resource)
}

// NewService builds the spell [Service].
func NewService(repo translation.Repository[Details], options translation.Options, logger *slog.Logger) *Service {
	return translation.NewService[Details](repo, Resource, options, logger)
}

// NewHandler builds the spell [Handler].
func NewHandler(service *Service) *Handler {
	return translation.NewHandler[Details](service)
}
