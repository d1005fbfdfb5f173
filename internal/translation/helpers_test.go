// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/internal/translation"
	"github.com/taibuivan/grimoire/pkg/uuid"
)

// details is a minimal payload used to exercise the generic core.
type details struct {
	Level int `json:"level"`
}

func (d details) Validate(v *validate.Validator) {
	v.Range("details.level", d.Level, 0, 9)
}

var (
	resource = translation.Resource{Name: "Spell", Key: "spell"}
	baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func content(name string) translation.Content[details] {
	return translation.Content[details]{Name: name, Details: details{Level: 3}}
}

// newEntity builds a live entity with one translation per lang, named
// "<name> (<lang>)", each created one minute after the previous one.
func newEntity(t *testing.T, name string, langs ...string) *translation.Entity[details] {
	t.Helper()
	require.NotEmpty(t, langs)

	manager := translation.NewManager[details](resource)

	entity, err := manager.NewEntity(uuid.New(), langs[0], content(name+" ("+langs[0]+")"), baseTime)
	require.NoError(t, err)

	for i, lang := range langs[1:] {
		_, err := manager.AddTranslation(entity, lang, content(name+" ("+lang+")"), baseTime.Add(time.Duration(i+1)*time.Minute))
		require.NoError(t, err)
	}

	return entity
}

// markSRD flags the given translations as SRD content.
func markSRD(t *testing.T, entity *translation.Entity[details], langs ...string) {
	t.Helper()
	for _, lang := range langs {
		block, ok := entity.Translations.Get(translation.Code(lang))
		require.True(t, ok, "missing %s", lang)
		block.SRD = true
	}
}

// requireCode asserts err is an AppError with the given code.
func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	appErr := apperr.As(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code, appErr.Message)
}
