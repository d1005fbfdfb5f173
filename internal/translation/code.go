// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package translation implements the multilingual document model shared by every
content family (spells, monsters).

An [Entity] owns a [Map] of per-language content blocks keyed by a validated
[Code]. On top of that model the package provides:

  - Lifecycle rules ([Manager]): add, read, update and soft-delete translations
    while protecting SRD content and the last active translation.
  - Fallback resolution ([Resolver]): pick a sensible language when the
    requested one is missing.
  - Search criteria ([BuildCriteria]): turn a {name, lang} query into
    storage-level clauses plus an in-process projection.
  - Persistence ([Repository]) and the HTTP surface ([Handler]).

The package is generic over the details payload so that each content family
only declares its own fields and validation rules.
*/
package translation

import (
	"regexp"

	"github.com/taibuivan/grimoire/internal/platform/validate"
)

// FieldLang is the request field carrying a language code.
const FieldLang = "lang"

var codeRegex = regexp.MustCompile(`^[a-z]{2}$`)

// Code is a 2-letter lowercase language code (ISO 639-1 shaped).
//
// Values are only produced by [ParseCode] or by decoding persisted documents,
// which both enforce the format.
type Code string

// ParseCode validates raw and returns it as a [Code].
//
// Returns a VALIDATION_ERROR on the "lang" field when raw is not two
// lowercase ASCII letters.
func ParseCode(raw string) (Code, error) {
	if !codeRegex.MatchString(raw) {
		return "", validate.RequiredError(FieldLang, "Must be a 2-letter lowercase language code")
	}
	return Code(raw), nil
}

// MustCode is [ParseCode] for literals known to be valid. It panics otherwise.
func MustCode(raw string) Code {
	code, err := ParseCode(raw)
	if err != nil {
		panic("translation: invalid language code " + raw)
	}
	return code
}

// String implements fmt.Stringer.
func (c Code) String() string { return string(c) }
