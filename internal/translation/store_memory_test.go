// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/translation"
)

/*
TestMemoryRepository runs the shared repository contract in process.
*/
func TestMemoryRepository(t *testing.T) {
	testRepositoryContract(t, func(t *testing.T) translation.Repository[details] {
		return translation.NewMemoryRepository[details](resource)
	})
}

/*
TestMemoryRepository_Isolation verifies callers never share state with the store.
*/
func TestMemoryRepository_Isolation(t *testing.T) {
	ctx := context.Background()
	repository := translation.NewMemoryRepository[details](resource)

	entity := newEntity(t, "Fireball", "en")
	require.NoError(t, repository.Create(ctx, entity))

	// Mutating the caller's copy after Create
	block, _ := entity.Translations.Get("en")
	block.Name = "changed"

	found, err := repository.Find(ctx, entity.ID)
	require.NoError(t, err)
	stored, _ := found.Translations.Get("en")
	assert.Equal(t, "Fireball (en)", stored.Name)

	// Mutating a read copy
	stored.Name = "changed again"
	again, err := repository.Find(ctx, entity.ID)
	require.NoError(t, err)
	reread, _ := again.Translations.Get("en")
	assert.Equal(t, "Fireball (en)", reread.Name)
}
