// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/grimoire/internal/platform/validate"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

// # Search Request

// SearchRequest is the raw list query of a content collection.
type SearchRequest struct {
	Name   string
	Lang   string
	Sort   string
	Page   int
	Offset int
}

// SortField is a sortable attribute of an entity.
type SortField string

const (
	SortTag       SortField = "tag"
	SortName      SortField = "name"
	SortCreatedAt SortField = "created_at"
	SortUpdatedAt SortField = "updated_at"
)

// Sort is a parsed sort expression.
type Sort struct {
	Field      SortField
	Descending bool
}

const (
	fieldSort   = "sort"
	sortMessage = "Must be one of: tag, name, created_at, updated_at (prefix with - for descending)"
)

// DefaultSort lists certified content first.
var DefaultSort = Sort{Field: SortTag, Descending: true}

// ParseSort parses "field" or "-field". The empty string yields [DefaultSort].
func ParseSort(raw string) (Sort, error) {
	if raw == "" {
		return DefaultSort, nil
	}

	sort := Sort{Field: SortField(strings.TrimPrefix(raw, "-"))}
	sort.Descending = strings.HasPrefix(raw, "-")

	switch sort.Field {
	case SortTag, SortName, SortCreatedAt, SortUpdatedAt:
		return sort, nil
	}

	return Sort{}, validate.RequiredError(fieldSort, sortMessage)
}

// # Criteria

// Clause matches entities whose translation Lang is active and, when Name is
// set, whose name in that language contains Name (case-insensitive).
type Clause struct {
	Lang Code
	Name string
}

// Criteria is the storage-independent form of a [SearchRequest].
//
// Clauses are OR-ed; an empty list places no constraint. Soft-deleted
// entities never match.
type Criteria struct {
	Clauses []Clause

	// MatchNone short-circuits a name search over a collection without any
	// known language.
	MatchNone bool

	// Name is the trimmed name needle, empty when the search is not by name.
	Name string

	// Projection restricts the rendered translations. Nil means every active
	// translation, or every matching one when Name is set.
	Projection []Code

	Sort Sort

	// SortLang selects the translation whose name is used by SortName.
	// Empty means each entity's first language.
	SortLang Code

	Page pagination.Params
}

/*
BuildCriteria turns a search request into storage criteria.

Description: known is the set of language codes present in the collection.
It is only consulted for a name search without a language, which has to look
at every language an entity might be written in.

  - lang and name: one clause on that language's name; projection [lang].
  - lang only: one clause requiring lang to be active; projection [lang].
  - name only: one clause per known language; hits are trimmed to the
    translations whose name matched (see [FilterMatches]).
  - neither: no constraint; every active translation is rendered.

Returns:
  - Criteria: Ready for [Repository.Search] and [Repository.Count]
  - error: VALIDATION_ERROR for a malformed lang, sort, page or offset
*/
func BuildCriteria(request SearchRequest, known []Code) (Criteria, error) {
	validator := &validate.Validator{}

	name := strings.TrimSpace(request.Name)
	validator.MaxLen(FieldName, name, maxNameLen)

	if request.Lang != "" {
		validator.LanguageCode(FieldLang, request.Lang)
	}

	sort, err := ParseSort(request.Sort)
	validator.Custom(fieldSort, err != nil, sortMessage)

	offset := request.Offset
	if offset == 0 {
		offset = pagination.DefaultOffset
	}
	validator.Range("page", request.Page, 0, pagination.MaxPage)
	validator.Range("offset", offset, 1, pagination.MaxOffset)

	if err := validator.Err(); err != nil {
		return Criteria{}, err
	}

	criteria := Criteria{
		Name: name,
		Sort: sort,
		Page: pagination.Params{Page: request.Page, Offset: offset},
	}

	switch {
	case request.Lang != "":
		lang := Code(request.Lang)
		criteria.Clauses = []Clause{{Lang: lang, Name: name}}
		criteria.Projection = []Code{lang}
		criteria.SortLang = lang

	case name != "":
		for _, code := range known {
			criteria.Clauses = append(criteria.Clauses, Clause{Lang: code, Name: name})
		}
		criteria.MatchNone = len(criteria.Clauses) == 0
	}

	return criteria, nil
}

// # Matching

// Matches reports whether entity satisfies criteria, evaluated in process.
func Matches[C Details](entity *Entity[C], criteria Criteria) bool {
	if entity.Deleted() || criteria.MatchNone {
		return false
	}
	if len(criteria.Clauses) == 0 {
		return true
	}

	for _, clause := range criteria.Clauses {
		block, ok := entity.Translations.Get(clause.Lang)
		if !ok || !block.Active() || !isLanguageListed(entity, clause.Lang) {
			continue
		}
		if clause.Name == "" || ContainsFold(block.Name, clause.Name) {
			return true
		}
	}
	return false
}

/*
FilterMatches returns entity restricted to the translations the response
should show.

Description: With a name needle only the translations whose name contains it
are kept (an entity matching in "en" but not "fr" shows only "en"). Without
one, the projection or every active translation is kept. The boolean is false
when nothing is left, which happens when the store's matching was looser than
Unicode case folding.
*/
func FilterMatches[C Details](entity *Entity[C], criteria Criteria) (*Entity[C], bool) {
	candidates := criteria.Projection
	if candidates == nil {
		candidates = entity.Translations.ActiveLanguages()
	}

	kept := make([]Code, 0, len(candidates))
	for _, code := range candidates {
		block, ok := entity.Translations.Get(code)
		if !ok || !block.Active() {
			continue
		}
		if criteria.Name != "" && !ContainsFold(block.Name, criteria.Name) {
			continue
		}
		kept = append(kept, code)
	}

	if len(kept) == 0 {
		return nil, false
	}

	return entity.WithTranslations(entity.Translations.Project(kept...)), true
}

// ContainsFold reports whether needle occurs in haystack under Unicode case
// folding, so "Fireball" contains "FIRE" and "STRASSE" contains "straße".
func ContainsFold(haystack, needle string) bool {
	// A Caser is stateful; one per call keeps this safe for concurrent use.
	folder := cases.Fold()
	return strings.Contains(folder.String(haystack), folder.String(needle))
}

// isLanguageListed mirrors the store's "lang = ANY(languages)" check.
func isLanguageListed[C Details](entity *Entity[C], code Code) bool {
	for _, listed := range entity.Languages {
		if listed == code {
			return true
		}
	}
	return false
}
