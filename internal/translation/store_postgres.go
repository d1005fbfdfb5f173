// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/database/schema"
	"github.com/taibuivan/grimoire/internal/platform/dberr"
	"github.com/taibuivan/grimoire/pkg/slice"
)

// # Postgres Repository

// PostgresRepository stores one entity per row: scalar columns for the
// fields queries filter and sort on, and the translation map as JSONB.
type PostgresRepository[C Details] struct {
	pool     *pgxpool.Pool
	table    schema.ContentTable
	resource Resource
}

// NewPostgresRepository constructs a repository over table.
func NewPostgresRepository[C Details](pool *pgxpool.Pool, table schema.ContentTable, resource Resource) *PostgresRepository[C] {
	return &PostgresRepository[C]{pool: pool, table: table, resource: resource}
}

/*
Find retrieves one document by primary key, soft-deleted rows included.

Returns:
  - *Entity[C]: The hydrated entity
  - error: NOT_FOUND if no row exists (or the ID is not a UUID)
*/
func (repository *PostgresRepository[C]) Find(ctx context.Context, id string) (*Entity[C], error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
	`,
		repository.selectColumns(),
		repository.table.Table,
		repository.table.ID,
	)

	entity, err := repository.scan(repository.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource.Name, "find_"+repository.resource.Key)
	}
	return entity, nil
}

/*
Search returns one page of live documents matching criteria.

Description: Each clause becomes `(lang = ANY(languages) AND
translations -> lang ->> 'name' ILIKE pattern)`, OR-ed together. LIKE
metacharacters in the needle are escaped so names match literally.
*/
func (repository *PostgresRepository[C]) Search(ctx context.Context, criteria Criteria) ([]*Entity[C], error) {
	where, args := repository.where(criteria)

	// Sorting expression (name sort reads the JSONB document)
	orderBy, args := repository.orderBy(criteria, args)

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		%s
		ORDER BY %s, %s DESC
		LIMIT $%d OFFSET $%d
	`,
		repository.selectColumns(),
		repository.table.Table,
		where,
		orderBy, repository.table.ID,
		len(args)+1, len(args)+2,
	)
	args = append(args, criteria.Page.Offset, criteria.Page.Skip())

	rows, err := repository.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource.Name, "search_"+repository.resource.Key)
	}
	defer rows.Close()

	entities := make([]*Entity[C], 0, criteria.Page.Offset)
	for rows.Next() {
		entity, err := repository.scan(rows)
		if err != nil {
			return nil, dberr.Wrap(err, repository.resource.Name, "scan_"+repository.resource.Key)
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, repository.resource.Name, "search_"+repository.resource.Key)
	}

	return entities, nil
}

// Count returns the number of live documents matching criteria.
func (repository *PostgresRepository[C]) Count(ctx context.Context, criteria Criteria) (int, error) {
	where, args := repository.where(criteria)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s %s`, repository.table.Table, where)

	var total int
	if err := repository.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, dberr.Wrap(err, repository.resource.Name, "count_"+repository.resource.Key)
	}
	return total, nil
}

// DistinctLanguages lists every language active on a live document.
func (repository *PostgresRepository[C]) DistinctLanguages(ctx context.Context) ([]Code, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT unnest(%s) AS code
		FROM %s
		WHERE %s IS NULL
		ORDER BY code
	`,
		repository.table.Languages,
		repository.table.Table,
		repository.table.DeletedAt,
	)

	rows, err := repository.pool.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource.Name, "distinct_languages")
	}

	codes, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, repository.resource.Name, "distinct_languages")
	}

	return slice.Map(codes, func(code string) Code { return Code(code) }), nil
}

/*
Create inserts a new document at version 1.

Returns:
  - error: CONFLICT if the ID is taken, INTERNAL_ERROR if the entity breaks
    the translation invariants
*/
func (repository *PostgresRepository[C]) Create(ctx context.Context, entity *Entity[C]) error {
	if err := checkPersistable(entity); err != nil {
		return err
	}

	translations, err := json.Marshal(entity.Translations)
	if err != nil {
		return apperr.Internal(fmt.Errorf("encode translations: %w", err))
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, 1, $5, $6, $7)
	`,
		repository.table.Table,
		repository.table.ID,
		repository.table.Tag,
		repository.table.Languages,
		repository.table.Translations,
		repository.table.Version,
		repository.table.CreatedAt,
		repository.table.UpdatedAt,
		repository.table.DeletedAt,
	)

	_, err = repository.pool.Exec(ctx, query,
		entity.ID,
		int16(entity.Tag),
		codesToStrings(entity.Languages),
		translations,
		entity.CreatedAt,
		entity.UpdatedAt,
		entity.DeletedAt,
	)
	if err != nil {
		return dberr.Wrap(err, repository.resource.Name, "create_"+repository.resource.Key)
	}

	entity.Version = 1
	return nil
}

/*
Update replaces a document under optimistic concurrency control.

Description: The write only applies when the stored version still equals
entity.Version; the version is bumped in the same statement. Zero affected
rows means another request won the race.

Returns:
  - error: CONFLICT on a stale version
*/
func (repository *PostgresRepository[C]) Update(ctx context.Context, entity *Entity[C]) error {
	if err := checkPersistable(entity); err != nil {
		return err
	}

	translations, err := json.Marshal(entity.Translations)
	if err != nil {
		return apperr.Internal(fmt.Errorf("encode translations: %w", err))
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = %s + 1
		WHERE %s = $1 AND %s = $2
	`,
		repository.table.Table,
		repository.table.Tag,
		repository.table.Languages,
		repository.table.Translations,
		repository.table.UpdatedAt,
		repository.table.DeletedAt,
		repository.table.Version, repository.table.Version,
		repository.table.ID,
		repository.table.Version,
	)

	tag, err := repository.pool.Exec(ctx, query,
		entity.ID,
		entity.Version,
		int16(entity.Tag),
		codesToStrings(entity.Languages),
		translations,
		entity.UpdatedAt,
		entity.DeletedAt,
	)
	if err != nil {
		return dberr.Wrap(err, repository.resource.Name, "update_"+repository.resource.Key)
	}

	if tag.RowsAffected() == 0 {
		return ErrConcurrentUpdate
	}

	entity.Version++
	return nil
}

// # Query Helpers

func (repository *PostgresRepository[C]) selectColumns() string {
	return fmt.Sprintf("%s::text, %s, %s, %s, %s, %s, %s, %s",
		repository.table.ID,
		repository.table.Tag,
		repository.table.Languages,
		repository.table.Translations,
		repository.table.Version,
		repository.table.CreatedAt,
		repository.table.UpdatedAt,
		repository.table.DeletedAt,
	)
}

// where builds the WHERE clause shared by Search and Count.
func (repository *PostgresRepository[C]) where(criteria Criteria) (string, []any) {
	var builder strings.Builder
	var args []any

	builder.WriteString(fmt.Sprintf("WHERE %s IS NULL", repository.table.DeletedAt))

	if criteria.MatchNone {
		builder.WriteString(" AND FALSE")
		return builder.String(), args
	}

	if len(criteria.Clauses) == 0 {
		return builder.String(), args
	}

	clauses := make([]string, 0, len(criteria.Clauses))
	for _, clause := range criteria.Clauses {
		args = append(args, string(clause.Lang))
		langArg := len(args)

		condition := fmt.Sprintf("$%d::text = ANY(%s)", langArg, repository.table.Languages)
		if clause.Name != "" {
			args = append(args, "%"+escapeLike(clause.Name)+"%")
			condition += fmt.Sprintf(" AND %s -> $%d::text ->> 'name' ILIKE $%d",
				repository.table.Translations, langArg, len(args))
		}

		clauses = append(clauses, "("+condition+")")
	}

	builder.WriteString(" AND (" + strings.Join(clauses, " OR ") + ")")
	return builder.String(), args
}

// orderBy renders the sort expression, appending any argument it needs.
func (repository *PostgresRepository[C]) orderBy(criteria Criteria, args []any) (string, []any) {
	direction := "ASC"
	if criteria.Sort.Descending {
		direction = "DESC"
	}

	var expression string
	switch criteria.Sort.Field {
	case SortName:
		if criteria.SortLang != "" {
			args = append(args, string(criteria.SortLang))
			expression = fmt.Sprintf("lower(%s -> $%d::text ->> 'name')", repository.table.Translations, len(args))
		} else {
			expression = fmt.Sprintf("lower(%s -> (%s[1]) ->> 'name')", repository.table.Translations, repository.table.Languages)
		}
	case SortCreatedAt:
		expression = repository.table.CreatedAt
	case SortUpdatedAt:
		expression = repository.table.UpdatedAt
	default:
		expression = repository.table.Tag
	}

	return expression + " " + direction, args
}

// scan hydrates an entity from one row of selectColumns.
func (repository *PostgresRepository[C]) scan(row pgx.Row) (*Entity[C], error) {
	var (
		entity       Entity[C]
		tag          int16
		languages    []string
		translations []byte
		deletedAt    *time.Time
	)

	err := row.Scan(
		&entity.ID,
		&tag,
		&languages,
		&translations,
		&entity.Version,
		&entity.CreatedAt,
		&entity.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(translations, &entity.Translations); err != nil {
		return nil, fmt.Errorf("decode translations of %s: %w", entity.ID, err)
	}

	entity.Tag = Tag(tag)
	entity.Languages = slice.Map(languages, func(code string) Code { return Code(code) })
	entity.CreatedAt = entity.CreatedAt.UTC()
	entity.UpdatedAt = entity.UpdatedAt.UTC()
	if deletedAt != nil {
		utc := deletedAt.UTC()
		entity.DeletedAt = &utc
	}

	return &entity, nil
}

// escapeLike neutralises LIKE metacharacters (default escape is backslash).
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(value)
}

func codesToStrings(codes []Code) []string {
	return slice.Map(codes, func(code Code) string { return string(code) })
}
