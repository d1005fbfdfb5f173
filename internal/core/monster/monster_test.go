// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package monster_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/core/monster"
	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/internal/translation"
)

func goblin() monster.Details {
	return monster.Details{
		Size:            "small",
		Type:            "humanoid (goblinoid)",
		Alignment:       "neutral evil",
		ArmorClass:      15,
		HitPoints:       7,
		HitDice:         "2d6",
		Speed:           map[string]string{"walk": "30 ft."},
		Abilities:       monster.Abilities{Str: 8, Dex: 14, Con: 10, Int: 10, Wis: 8, Cha: 8},
		ChallengeRating: "1/4",
		Senses:          "darkvision 60 ft., passive Perception 9",
		Languages:       "Common, Goblin",
		SpecialAbilities: []monster.Action{
			{Name: "Nimble Escape", Desc: "The goblin can take the Disengage or Hide action as a bonus action."},
		},
		Actions: []monster.Action{
			{Name: "Scimitar", Desc: "Melee Weapon Attack: +4 to hit, reach 5 ft., one target."},
		},
	}
}

func fieldsOf(details monster.Details) []string {
	v := &validate.Validator{}
	details.Validate(v)

	err := v.Err()
	if err == nil {
		return nil
	}

	fields := make([]string, 0)
	for _, detail := range apperr.As(err).Details {
		fields = append(fields, detail.Field)
	}
	return fields
}

/*
TestDetails_Validate accepts a complete stat block and pinpoints each broken field.
*/
func TestDetails_Validate(t *testing.T) {
	assert.Empty(t, fieldsOf(goblin()))

	tests := []struct {
		name   string
		mutate func(d *monster.Details)
		fields []string
	}{
		{"unknown_size", func(d *monster.Details) { d.Size = "colossal" }, []string{monster.FieldSize}},
		{"missing_type", func(d *monster.Details) { d.Type = "" }, []string{monster.FieldType}},
		{"negative_ac", func(d *monster.Details) { d.ArmorClass = -1 }, []string{monster.FieldArmorClass}},
		{"zero_hp", func(d *monster.Details) { d.HitPoints = 0 }, []string{monster.FieldHitPoints}},
		{"bad_hit_dice", func(d *monster.Details) { d.HitDice = "lots" }, []string{monster.FieldHitDice}},
		{"bad_cr", func(d *monster.Details) { d.ChallengeRating = "1/3" }, []string{monster.FieldChallengeRating}},
		{"cr_too_high", func(d *monster.Details) { d.ChallengeRating = "31" }, []string{monster.FieldChallengeRating}},
		{"unknown_movement", func(d *monster.Details) { d.Speed = map[string]string{"walk": "30 ft.", "teleport": "60 ft."} }, []string{"details.speed.teleport"}},
		{"blank_speed", func(d *monster.Details) { d.Speed = map[string]string{"fly": ""} }, []string{"details.speed.fly"}},
		{"ability_range", func(d *monster.Details) { d.Abilities.Str = 0; d.Abilities.Cha = 31 }, []string{"details.abilities.str", "details.abilities.cha"}},
		{"unnamed_action", func(d *monster.Details) { d.Actions = append(d.Actions, monster.Action{Desc: "Bite."}) }, []string{"details.actions[1].name"}},
		{"empty_legendary", func(d *monster.Details) { d.LegendaryActions = []monster.Action{{Name: "Detect"}} }, []string{"details.legendary_actions[0].desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := goblin()
			tt.mutate(&details)
			assert.Equal(t, tt.fields, fieldsOf(details))
		})
	}
}

/*
TestDetails_HitDiceFormats accepts modifiers with or without spaces.
*/
func TestDetails_HitDiceFormats(t *testing.T) {
	for _, dice := range []string{"2d6", "8d10+16", "8d10 + 16", "1d4-1"} {
		details := goblin()
		details.HitDice = dice
		assert.Empty(t, fieldsOf(details), dice)
	}
}

/*
TestService_MonsterLifecycle runs a monster through the generic service.
*/
func TestService_MonsterLifecycle(t *testing.T) {
	ctx := context.Background()
	service := monster.NewService(monster.NewMemoryRepository(), translation.Options{DefaultLanguage: "en"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	created, err := service.Create(ctx, "en", translation.Content[monster.Details]{Name: "Goblin", Details: goblin()})
	require.NoError(t, err)

	summaries, err := service.ListTranslations(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Goblin", summaries[0].Name)

	_, err = service.DeleteTranslation(ctx, created.ID, "en")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeForbidden, apperr.As(err).Code)
}
