// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"time"

	"github.com/taibuivan/grimoire/internal/platform/validate"
)

// Field names and limits of a content block.
const (
	FieldName        = "name"
	FieldDescription = "description"

	maxNameLen        = 200
	maxDescriptionLen = 20000
)

// Details is the resource-specific part of a content block (spell level,
// monster stats, ...). Implementations report field errors on v using
// "details." prefixed field names.
type Details interface {
	Validate(v *validate.Validator)
}

// Block is the content of one entity in one language.
//
// SRD blocks come from the official reference document: they can never be
// modified or deleted. A block with a non-nil DeletedAt is soft-deleted.
type Block[C Details] struct {
	SRD         bool       `json:"srd"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Details     C          `json:"details"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// Active reports whether the block is not soft-deleted.
func (b *Block[C]) Active() bool {
	return b.DeletedAt == nil
}

// clone returns a copy that shares no timestamps with b.
//
// Details is copied by value; details types keep slices and maps read-only
// once a block is built, so the shallow copy is enough.
func (b *Block[C]) clone() *Block[C] {
	copied := *b
	if b.DeletedAt != nil {
		deletedAt := *b.DeletedAt
		copied.DeletedAt = &deletedAt
	}
	return &copied
}

// Content is the client-supplied part of a block.
//
// SRD is accepted on input so that payloads copied from an SRD block decode
// cleanly, but it is always ignored: only imports can create SRD content.
type Content[C Details] struct {
	SRD         bool   `json:"srd,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Details     C      `json:"details"`
}

// Validate checks the shared block fields and delegates to the details type.
func (c Content[C]) Validate(v *validate.Validator) {
	v.Required(FieldName, c.Name).MaxLen(FieldName, c.Name, maxNameLen)
	v.MaxLen(FieldDescription, c.Description, maxDescriptionLen)
	c.Details.Validate(v)
}

// newBlock builds a fresh, non-SRD block from content.
func newBlock[C Details](content Content[C], now time.Time) *Block[C] {
	return &Block[C]{
		SRD:         false,
		Name:        content.Name,
		Description: content.Description,
		Details:     content.Details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
