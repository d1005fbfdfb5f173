// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/platform/database/schema"
	"github.com/taibuivan/grimoire/internal/platform/testdb"
	"github.com/taibuivan/grimoire/internal/translation"
)

/*
TestPostgresRepository runs the shared repository contract against a real
PostgreSQL started with testcontainers. Needs Docker; skipped under -short.
*/
func TestPostgresRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("postgres container tests are skipped in short mode")
	}

	ctx := context.Background()
	database, closer, err := testdb.StartPostgres(ctx, testdb.PostgresStartRequest{
		User:     "grimoire",
		Password: "grimoire",
		DB:       "grimoire_test",
	})
	require.NoError(t, err)
	t.Cleanup(closer)

	testRepositoryContract(t, func(t *testing.T) translation.Repository[details] {
		testdb.RunMigrations(t, database.DSN)
		return translation.NewPostgresRepository[details](database.Pool, schema.ContentSpell, resource)
	})
}
