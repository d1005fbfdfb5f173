// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package monster defines the monster (stat block) content family.
package monster

import (
	"log/slog"
	"maps"
	"regexp"
	"slices"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/grimoire/internal/platform/database/schema"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/internal/translation"
)

// # Domain Types

type (
	// Monster is a monster with all of its translations.
	Monster = translation.Entity[Details]

	// Service manages the monster collection.
	Service = translation.Service[Details]

	// Handler exposes the monster collection over REST.
	Handler = translation.Handler[Details]
)

// Resource identifies the monster collection in errors, logs and cache keys.
var Resource = translation.Resource{Name: "Monster", Key: "monster"}

// Details is the language-specific stat block of a monster.
type Details struct {
	Size             string            `json:"size"`
	Type             string            `json:"type"`
	Alignment        string            `json:"alignment,omitempty"`
	ArmorClass       int               `json:"armor_class"`
	HitPoints        int               `json:"hit_points"`
	HitDice          string            `json:"hit_dice,omitempty"`
	Speed            map[string]string `json:"speed,omitempty"`
	Abilities        Abilities         `json:"abilities"`
	ChallengeRating  string            `json:"challenge_rating"`
	Senses           string            `json:"senses,omitempty"`
	Languages        string            `json:"languages,omitempty"`
	SpecialAbilities []Action          `json:"special_abilities,omitempty"`
	Actions          []Action          `json:"actions,omitempty"`
	LegendaryActions []Action          `json:"legendary_actions,omitempty"`
}

// Abilities are the six ability scores.
type Abilities struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Con int `json:"con"`
	Int int `json:"int"`
	Wis int `json:"wis"`
	Cha int `json:"cha"`
}

// Action is a named trait or action of a stat block.
type Action struct {
	Name string `json:"name"`
	Desc string `json:"desc"`
}

// Field names for validation
const (
	FieldSize             = "details.size"
	FieldType             = "details.type"
	FieldAlignment        = "details.alignment"
	FieldArmorClass       = "details.armor_class"
	FieldHitPoints        = "details.hit_points"
	FieldHitDice          = "details.hit_dice"
	FieldSpeed            = "details.speed"
	FieldAbilities        = "details.abilities"
	FieldChallengeRating  = "details.challenge_rating"
	FieldSpecialAbilities = "details.special_abilities"
	FieldActions          = "details.actions"
	FieldLegendaryActions = "details.legendary_actions"
)

// Sizes lists the valid creature sizes.
var Sizes = []string{"tiny", "small", "medium", "large", "huge", "gargantuan"}

// Movements lists the valid speed keys.
var Movements = []string{"walk", "burrow", "climb", "fly", "swim"}

// challengeRating accepts 0, 1/8, 1/4, 1/2 and whole ratings 1 to 30.
var challengeRating = regexp.MustCompile(`^(0|1/8|1/4|1/2|[1-9]|[12][0-9]|30)$`)

var hitDice = regexp.MustCompile(`^\d+d\d+( ?[+-] ?\d+)?$`)

const (
	minAbility   = 1
	maxAbility   = 30
	maxShortText = 100
	maxLongText  = 5000
)

// # Validation

// Validate implements [translation.Details].
func (d Details) Validate(v *validate.Validator) {
	v.OneOf(FieldSize, d.Size, Sizes...)
	v.Required(FieldType, d.Type).MaxLen(FieldType, d.Type, maxShortText)
	v.MaxLen(FieldAlignment, d.Alignment, maxShortText)

	v.Min(FieldArmorClass, d.ArmorClass, 0)
	v.Min(FieldHitPoints, d.HitPoints, 1)
	v.Custom(FieldHitDice, d.HitDice != "" && !hitDice.MatchString(d.HitDice), "Must look like 8d10+16")
	v.Custom(FieldChallengeRating, !challengeRating.MatchString(d.ChallengeRating), "Must be 0, 1/8, 1/4, 1/2 or a whole number up to 30")

	// Sorted keys keep the error order stable
	for _, movement := range slices.Sorted(maps.Keys(d.Speed)) {
		field := FieldSpeed + "." + movement
		v.OneOf(field, movement, Movements...)
		v.Required(field, d.Speed[movement])
	}

	d.Abilities.validate(v)

	validateActions(v, FieldSpecialAbilities, d.SpecialAbilities)
	validateActions(v, FieldActions, d.Actions)
	validateActions(v, FieldLegendaryActions, d.LegendaryActions)
}

func (a Abilities) validate(v *validate.Validator) {
	scores := []struct {
		name  string
		value int
	}{
		{"str", a.Str}, {"dex", a.Dex}, {"con", a.Con},
		{"int", a.Int}, {"wis", a.Wis}, {"cha", a.Cha},
	}
	for _, score := range scores {
		v.Range(FieldAbilities+"."+score.name, score.value, minAbility, maxAbility)
	}
}

func validateActions(v *validate.Validator, field string, actions []Action) {
	validate.Each(v, field, actions, func(v *validate.Validator, field string, action Action) {
		v.Required(field+".name", action.Name).MaxLen(field+".name", action.Name, maxShortText)
		v.Required(field+".desc", action.Desc).MaxLen(field+".desc", action.Desc, maxLongText)
	})
}

// # Wiring

// NewPostgresRepository stores monsters in content.monster.
func NewPostgresRepository(pool *pgxpool.Pool) translation.Repository[Details] {
	return translation.NewPostgresRepository[Details](pool, schema.ContentMonster, Resource)
}

// NewMemoryRepository keeps monsters in process memory.
func NewMemoryRepository() translation.Repository[Details] {
	return translation.NewMemoryRepository[Details](Resource)
}

// NewService builds the monster [Service].
func NewService(repo translation.Repository[Details], options translation.Options, logger *slog.Logger) *Service {
	return translation.NewService[Details](repo, Resource, options, logger)
}

// NewHandler builds the monster [Handler].
func NewHandler(service *Service) *Handler {
	return translation.NewHandler[Details](service)
}
