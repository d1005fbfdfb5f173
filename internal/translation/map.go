// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/taibuivan/grimoire/pkg/slice"
)

// Map is an insertion-ordered mapping from [Code] to [Block].
//
// The zero value is an empty map ready to use. Map enforces key validity only;
// SRD protection and the "last active translation" rule belong to [Manager].
//
// On the wire and in the database a Map is a JSON object keyed by language
// code. Decoding restores a deterministic order (creation time, then code).
type Map[C Details] struct {
	order  []Code
	blocks map[Code]*Block[C]
}

// Get returns the block stored under code, deleted or not.
func (m Map[C]) Get(code Code) (*Block[C], bool) {
	block, ok := m.blocks[code]
	return block, ok
}

// Set inserts or overwrites the block under code. New codes are appended to
// the iteration order; overwriting keeps the existing position.
func (m *Map[C]) Set(code Code, block *Block[C]) {
	if m.blocks == nil {
		m.blocks = make(map[Code]*Block[C])
	}
	if _, exists := m.blocks[code]; !exists {
		m.order = append(m.order, code)
	}
	m.blocks[code] = block
}

// Len returns the number of keys, deleted blocks included.
func (m Map[C]) Len() int {
	return len(m.order)
}

// Codes returns every key in iteration order, deleted blocks included.
func (m Map[C]) Codes() []Code {
	return slices.Clone(m.order)
}

// ActiveLanguages returns the codes of non-deleted blocks in iteration order.
func (m Map[C]) ActiveLanguages() []Code {
	return slice.Filter(m.order, func(code Code) bool { return m.blocks[code].Active() })
}

// Project returns a copy restricted to codes, in the order given.
// Unknown and repeated codes are skipped.
func (m Map[C]) Project(codes ...Code) Map[C] {
	var projected Map[C]
	for _, code := range codes {
		block, ok := m.blocks[code]
		if !ok {
			continue
		}
		if _, seen := projected.blocks[code]; seen {
			continue
		}
		projected.Set(code, block.clone())
	}
	return projected
}

// Active returns a copy holding only the non-deleted blocks.
func (m Map[C]) Active() Map[C] {
	return m.Project(m.ActiveLanguages()...)
}

// Clone returns a deep copy of the map.
func (m Map[C]) Clone() Map[C] {
	return m.Project(m.order...)
}

// MarshalJSON encodes the map as a JSON object in iteration order.
func (m Map[C]) MarshalJSON() ([]byte, error) {
	var buffer bytes.Buffer
	buffer.WriteByte('{')

	for i, code := range m.order {
		if i > 0 {
			buffer.WriteByte(',')
		}

		key, err := json.Marshal(string(code))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(m.blocks[code])
		if err != nil {
			return nil, fmt.Errorf("translation: encode %s: %w", code, err)
		}

		buffer.Write(key)
		buffer.WriteByte(':')
		buffer.Write(value)
	}

	buffer.WriteByte('}')
	return buffer.Bytes(), nil
}

// UnmarshalJSON decodes a code-keyed JSON object.
//
// Malformed keys and null blocks are rejected so that an invalid document can
// never enter the domain.
func (m *Map[C]) UnmarshalJSON(data []byte) error {
	var raw map[string]*Block[C]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	codes := make([]Code, 0, len(raw))
	for key, block := range raw {
		code, err := ParseCode(key)
		if err != nil {
			return fmt.Errorf("translation: invalid language key %q", key)
		}
		if block == nil {
			return fmt.Errorf("translation: null block for language %q", key)
		}
		codes = append(codes, code)
	}

	slices.SortFunc(codes, func(a, b Code) int {
		if c := raw[string(a)].CreatedAt.Compare(raw[string(b)].CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	*m = Map[C]{}
	for _, code := range codes {
		m.Set(code, raw[string(code)])
	}
	return nil
}
