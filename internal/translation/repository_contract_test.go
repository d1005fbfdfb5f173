// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/translation"
	"github.com/taibuivan/grimoire/pkg/pagination"
	"github.com/taibuivan/grimoire/pkg/uuid"
)

// repositoryFactory returns an empty repository.
type repositoryFactory func(t *testing.T) translation.Repository[details]

// seeded is the fixture collection shared by the search tests.
type seeded struct {
	fireball, firebolt, shield, percent, firestorm *translation.Entity[details]
}

func seed(t *testing.T, repository translation.Repository[details]) seeded {
	t.Helper()
	ctx := context.Background()

	fireball := newEntity(t, "Fireball", "en", "fr")
	fr, _ := fireball.Translations.Get("fr")
	fr.Name = "Boule de feu"
	fireball.Tag = translation.TagCertified

	firebolt := newEntity(t, "Firebolt", "en")
	firebolt.CreatedAt = baseTime.Add(time.Hour)

	shield := newEntity(t, "Shield", "en", "de")
	de, _ := shield.Translations.Get("de")
	de.Name = "Schild"
	shield.CreatedAt = baseTime.Add(2 * time.Hour)

	percent := newEntity(t, "Hundred%_fire", "en")
	en, _ := percent.Translations.Get("en")
	en.Name = "Hundred%_fire"
	percent.CreatedAt = baseTime.Add(3 * time.Hour)

	firestorm := newEntity(t, "Firestorm", "en", "it")
	firestorm.CreatedAt = baseTime.Add(4 * time.Hour)

	for _, entity := range []*translation.Entity[details]{fireball, firebolt, shield, percent, firestorm} {
		require.NoError(t, repository.Create(ctx, entity))
	}

	require.NoError(t, manager.DeleteEntity(firestorm, baseTime.Add(5*time.Hour)))
	require.NoError(t, repository.Update(ctx, firestorm))

	return seeded{fireball, firebolt, shield, percent, firestorm}
}

func ids(entities []*translation.Entity[details]) []string {
	result := make([]string, 0, len(entities))
	for _, entity := range entities {
		result = append(result, entity.ID)
	}
	return result
}

// testRepositoryContract runs the behaviour every Repository must share.
func testRepositoryContract(t *testing.T, newRepository repositoryFactory) {
	ctx := context.Background()

	t.Run("create_and_find", func(t *testing.T) {
		repository := newRepository(t)
		entity := newEntity(t, "Fireball", "en", "fr")

		require.NoError(t, repository.Create(ctx, entity))
		assert.Equal(t, 1, entity.Version)

		found, err := repository.Find(ctx, entity.ID)
		require.NoError(t, err)

		assert.Equal(t, entity.ID, found.ID)
		assert.Equal(t, entity.Tag, found.Tag)
		assert.Equal(t, entity.Languages, found.Languages)
		assert.Equal(t, entity.Translations.Codes(), found.Translations.Codes())
		assert.True(t, entity.CreatedAt.Equal(found.CreatedAt))
		assert.Equal(t, 1, found.Version)
		assert.Nil(t, found.DeletedAt)

		block, ok := found.Translations.Get("fr")
		require.True(t, ok)
		assert.Equal(t, "Fireball (fr)", block.Name)
		assert.Equal(t, details{Level: 3}, block.Details)
	})

	t.Run("find_missing", func(t *testing.T) {
		repository := newRepository(t)

		_, err := repository.Find(ctx, uuid.New())
		requireCode(t, err, apperr.CodeNotFound)

		_, err = repository.Find(ctx, "not-a-uuid")
		requireCode(t, err, apperr.CodeNotFound)
	})

	t.Run("create_duplicate", func(t *testing.T) {
		repository := newRepository(t)
		entity := newEntity(t, "Fireball", "en")
		require.NoError(t, repository.Create(ctx, entity))

		duplicate := newEntity(t, "Other", "fr")
		duplicate.ID = entity.ID
		err := repository.Create(ctx, duplicate)
		requireCode(t, err, apperr.CodeConflict)
	})

	t.Run("refuses_inconsistent_documents", func(t *testing.T) {
		repository := newRepository(t)

		mismatched := newEntity(t, "Fireball", "en", "fr")
		mismatched.Languages = []translation.Code{"en"}
		requireCode(t, repository.Create(ctx, mismatched), apperr.CodeInternal)

		empty := &translation.Entity[details]{ID: uuid.New(), CreatedAt: baseTime, UpdatedAt: baseTime}
		requireCode(t, repository.Create(ctx, empty), apperr.CodeInternal)
	})

	t.Run("update_checks_version", func(t *testing.T) {
		repository := newRepository(t)
		entity := newEntity(t, "Fireball", "en")
		require.NoError(t, repository.Create(ctx, entity))

		first, err := repository.Find(ctx, entity.ID)
		require.NoError(t, err)
		second, err := repository.Find(ctx, entity.ID)
		require.NoError(t, err)

		_, err = manager.AddTranslation(first, "de", content("Feuerball"), baseTime.Add(time.Hour))
		require.NoError(t, err)
		require.NoError(t, repository.Update(ctx, first))
		assert.Equal(t, 2, first.Version)

		// The second writer loaded version 1 and loses
		_, err = manager.AddTranslation(second, "fr", content("Boule de feu"), baseTime.Add(time.Hour))
		require.NoError(t, err)
		err = repository.Update(ctx, second)
		requireCode(t, err, apperr.CodeConflict)

		stored, err := repository.Find(ctx, entity.ID)
		require.NoError(t, err)
		assert.Equal(t, []translation.Code{"en", "de"}, stored.Languages)
		assert.Equal(t, 2, stored.Version)
	})

	t.Run("search", func(t *testing.T) {
		repository := newRepository(t)
		fixtures := seed(t, repository)

		known, err := repository.DistinctLanguages(ctx)
		require.NoError(t, err)
		assert.Equal(t, []translation.Code{"de", "en", "fr"}, known)

		tests := []struct {
			name    string
			request translation.SearchRequest
			want    []string
		}{
			{
				name:    "all_by_created_at",
				request: translation.SearchRequest{Sort: "created_at"},
				want:    []string{fixtures.fireball.ID, fixtures.firebolt.ID, fixtures.shield.ID, fixtures.percent.ID},
			},
			{
				name:    "default_sort_certified_first",
				request: translation.SearchRequest{Sort: "-tag", Lang: "en", Name: "fireball"},
				want:    []string{fixtures.fireball.ID},
			},
			{
				name:    "name_across_languages",
				request: translation.SearchRequest{Name: "FIRE", Sort: "created_at"},
				want:    []string{fixtures.fireball.ID, fixtures.firebolt.ID, fixtures.percent.ID},
			},
			{
				name:    "name_in_other_language",
				request: translation.SearchRequest{Name: "schild"},
				want:    []string{fixtures.shield.ID},
			},
			{
				name:    "name_in_wrong_language",
				request: translation.SearchRequest{Name: "schild", Lang: "en"},
				want:    []string{},
			},
			{
				name:    "lang_only",
				request: translation.SearchRequest{Lang: "fr"},
				want:    []string{fixtures.fireball.ID},
			},
			{
				name:    "like_wildcards_are_literal",
				request: translation.SearchRequest{Name: "%_"},
				want:    []string{fixtures.percent.ID},
			},
			{
				name:    "sort_by_name",
				request: translation.SearchRequest{Lang: "en", Sort: "-name"},
				want:    []string{fixtures.shield.ID, fixtures.percent.ID, fixtures.firebolt.ID, fixtures.fireball.ID},
			},
			{
				name:    "deleted_never_match",
				request: translation.SearchRequest{Name: "firestorm"},
				want:    []string{},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				criteria, err := translation.BuildCriteria(tt.request, known)
				require.NoError(t, err)

				found, err := repository.Search(ctx, criteria)
				require.NoError(t, err)
				assert.Equal(t, tt.want, ids(found))

				total, err := repository.Count(ctx, criteria)
				require.NoError(t, err)
				assert.Equal(t, len(tt.want), total)
			})
		}
	})

	t.Run("pagination", func(t *testing.T) {
		repository := newRepository(t)
		fixtures := seed(t, repository)

		first, err := translation.BuildCriteria(translation.SearchRequest{Sort: "created_at", Offset: 3}, nil)
		require.NoError(t, err)
		page, err := repository.Search(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, []string{fixtures.fireball.ID, fixtures.firebolt.ID, fixtures.shield.ID}, ids(page))

		second, err := translation.BuildCriteria(translation.SearchRequest{Sort: "created_at", Offset: 3, Page: 1}, nil)
		require.NoError(t, err)
		page, err = repository.Search(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, []string{fixtures.percent.ID}, ids(page))

		beyond, err := translation.BuildCriteria(translation.SearchRequest{Offset: 3, Page: 5}, nil)
		require.NoError(t, err)
		page, err = repository.Search(ctx, beyond)
		require.NoError(t, err)
		assert.Empty(t, page)

		total, err := repository.Count(ctx, beyond)
		require.NoError(t, err)
		assert.Equal(t, 4, total)

		last, err := translation.BuildCriteria(translation.SearchRequest{Offset: pagination.MaxOffset, Page: pagination.MaxPage}, nil)
		require.NoError(t, err)
		page, err = repository.Search(ctx, last)
		require.NoError(t, err)
		assert.Empty(t, page)

		// Criteria built by hand can carry a page whose skip would overflow
		overflowing := translation.Criteria{Sort: translation.DefaultSort, Page: pagination.Params{Page: math.MaxInt, Offset: 20}}
		page, err = repository.Search(ctx, overflowing)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("distinct_languages_empty", func(t *testing.T) {
		repository := newRepository(t)

		known, err := repository.DistinctLanguages(ctx)
		require.NoError(t, err)
		assert.Empty(t, known)
	})
}
