// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package spell_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/core/spell"
	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/internal/translation"
)

func fireball() spell.Details {
	return spell.Details{
		Level:       3,
		School:      "evocation",
		CastingTime: "1 action",
		Range:       "150 feet",
		Components:  []string{"V", "S", "M"},
		Material:    "A tiny ball of bat guano and sulfur",
		Duration:    "Instantaneous",
		HigherLevel: "The damage increases by 1d6 for each slot level above 3rd.",
		Classes:     []string{"sorcerer", "wizard"},
	}
}

func fieldsOf(t *testing.T, details spell.Details) []string {
	t.Helper()
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
TestDetails_Validate accepts a complete spell and pinpoints each broken field.
*/
func TestDetails_Validate(t *testing.T) {
	assert.Empty(t, fieldsOf(t, fireball()))

	tests := []struct {
		name   string
		mutate func(d *spell.Details)
		field  string
	}{
		{"level_too_high", func(d *spell.Details) { d.Level = 10 }, spell.FieldLevel},
		{"negative_level", func(d *spell.Details) { d.Level = -1 }, spell.FieldLevel},
		{"unknown_school", func(d *spell.Details) { d.School = "pyromancy" }, spell.FieldSchool},
		{"missing_casting_time", func(d *spell.Details) { d.CastingTime = "" }, spell.FieldCastingTime},
		{"missing_range", func(d *spell.Details) { d.Range = "" }, spell.FieldRange},
		{"missing_duration", func(d *spell.Details) { d.Duration = "" }, spell.FieldDuration},
		{"no_components", func(d *spell.Details) { d.Components = nil; d.Material = "" }, spell.FieldComponents},
		{"unknown_component", func(d *spell.Details) { d.Components = []string{"V", "X", "M"} }, "details.components[1]"},
		{"repeated_component", func(d *spell.Details) { d.Components = []string{"V", "V", "M"} }, spell.FieldComponents},
		{"material_missing", func(d *spell.Details) { d.Material = "" }, spell.FieldMaterial},
		{"material_without_m", func(d *spell.Details) { d.Components = []string{"V", "S"} }, spell.FieldMaterial},
		{"blank_class", func(d *spell.Details) { d.Classes = []string{"wizard", ""} }, "details.classes[1]"},
		{"long_higher_level", func(d *spell.Details) { d.HigherLevel = strings.Repeat("x", 5001) }, spell.FieldHigherLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := fireball()
			tt.mutate(&details)
			assert.Equal(t, []string{tt.field}, fieldsOf(t, details))
		})
	}
}

/*
TestDetails_Cantrip accepts level 0 without material.
*/
func TestDetails_Cantrip(t *testing.T) {
	details := spell.Details{
		Level:       0,
		School:      "conjuration",
		CastingTime: "1 action",
		Range:       "30 feet",
		Components:  []string{"V", "S"},
		Duration:    "1 minute",
	}
	assert.Empty(t, fieldsOf(t, details))
}

/*
TestDetails_JSON uses snake_case keys.
*/
func TestDetails_JSON(t *testing.T) {
	data, err := json.Marshal(fireball())
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"level", "school", "casting_time", "range", "components", "material", "duration", "concentration", "ritual", "higher_level", "classes"} {
		assert.Contains(t, raw, key)
	}
}

/*
TestService_SpellLifecycle runs a spell through the generic service.
*/
func TestService_SpellLifecycle(t *testing.T) {
	ctx := context.Background()
	service := spell.NewService(spell.NewMemoryRepository(), translation.Options{DefaultLanguage: "en"},
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	created, err := service.Create(ctx, "en", translation.Content[spell.Details]{Name: "Fireball", Details: fireball()})
	require.NoError(t, err)

	german := fireball()
	german.CastingTime = "1 Aktion"
	_, _, err = service.AddTranslation(ctx, created.ID, "de", translation.Content[spell.Details]{Name: "Feuerball", Details: german})
	require.NoError(t, err)

	resolved, err := service.Get(ctx, created.ID, "de")
	require.NoError(t, err)
	assert.Equal(t, "Feuerball", resolved.Translation.Name)
	assert.Equal(t, "1 Aktion", resolved.Translation.Details.CastingTime)

	invalid := fireball()
	invalid.School = ""
	_, _, err = service.AddTranslation(ctx, created.ID, "fr", translation.Content[spell.Details]{Name: "Boule de feu", Details: invalid})
	require.Error(t, err)
	assert.Equal(t, spell.FieldSchool, apperr.As(err).Details[0].Field)
}
