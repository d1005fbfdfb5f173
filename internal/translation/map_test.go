// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/translation"
)

func block(name string, createdAt time.Time) *translation.Block[details] {
	return &translation.Block[details]{Name: name, CreatedAt: createdAt, UpdatedAt: createdAt}
}

/*
TestMap_SetKeepsInsertionOrder verifies new keys append and overwrites keep their slot.
*/
func TestMap_SetKeepsInsertionOrder(t *testing.T) {
	var m translation.Map[details]

	m.Set("fr", block("Boule de feu", baseTime))
	m.Set("en", block("Fireball", baseTime))
	m.Set("de", block("Feuerball", baseTime))
	m.Set("fr", block("Boule de Feu", baseTime))

	assert.Equal(t, []translation.Code{"fr", "en", "de"}, m.Codes())
	assert.Equal(t, 3, m.Len())

	got, ok := m.Get("fr")
	require.True(t, ok)
	assert.Equal(t, "Boule de Feu", got.Name)

	_, ok = m.Get("it")
	assert.False(t, ok)
}

/*
TestMap_ActiveLanguages skips soft-deleted blocks.
*/
func TestMap_ActiveLanguages(t *testing.T) {
	var m translation.Map[details]
	deleted := block("Feuerball", baseTime)
	deletedAt := baseTime.Add(time.Hour)
	deleted.DeletedAt = &deletedAt

	m.Set("en", block("Fireball", baseTime))
	m.Set("de", deleted)
	m.Set("fr", block("Boule de feu", baseTime))

	assert.Equal(t, []translation.Code{"en", "fr"}, m.ActiveLanguages())
	assert.Equal(t, []translation.Code{"en", "fr"}, m.Active().Codes())
	assert.Equal(t, 3, m.Len())
}

/*
TestMap_Project returns an independent copy in the requested order.
*/
func TestMap_Project(t *testing.T) {
	var m translation.Map[details]
	m.Set("en", block("Fireball", baseTime))
	m.Set("fr", block("Boule de feu", baseTime))

	projected := m.Project("fr", "it", "fr", "en")
	assert.Equal(t, []translation.Code{"fr", "en"}, projected.Codes())

	// Mutating the projection leaves the source untouched
	copied, _ := projected.Get("en")
	copied.Name = "changed"
	original, _ := m.Get("en")
	assert.Equal(t, "Fireball", original.Name)
}

/*
TestMap_JSON encodes a code-keyed object and restores creation order on decode.
*/
func TestMap_JSON(t *testing.T) {
	var m translation.Map[details]
	m.Set("fr", block("Boule de feu", baseTime.Add(2*time.Minute)))
	m.Set("en", block("Fireball", baseTime))
	m.Set("de", block("Feuerball", baseTime))

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw, 3)
	assert.Contains(t, raw, "fr")

	var decoded translation.Map[details]
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Oldest first, ties broken by code
	assert.Equal(t, []translation.Code{"de", "en", "fr"}, decoded.Codes())
	got, _ := decoded.Get("fr")
	assert.Equal(t, "Boule de feu", got.Name)
}

/*
TestMap_UnmarshalRejectsInvalidDocuments refuses malformed keys and null blocks.
*/
func TestMap_UnmarshalRejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"uppercase_key", `{"EN": {"name": "Fireball"}}`},
		{"long_key", `{"eng": {"name": "Fireball"}}`},
		{"null_block", `{"en": null}`},
		{"not_an_object", `["en"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m translation.Map[details]
			assert.Error(t, json.Unmarshal([]byte(tt.json), &m))
		})
	}
}

/*
TestMap_ZeroValue is usable without initialisation.
*/
func TestMap_ZeroValue(t *testing.T) {
	var m translation.Map[details]

	assert.Zero(t, m.Len())
	assert.Empty(t, m.ActiveLanguages())

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
