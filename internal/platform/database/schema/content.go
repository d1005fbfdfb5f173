// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds the table and column identifiers of the database so
// that SQL is assembled from one source of truth.
package schema

// ContentTable represents a content document table in the 'content' schema.
// Spells and monsters share the same layout and differ only by table name.
type ContentTable struct {
	Table        string
	ID           string
	Tag          string
	Languages    string
	Translations string
	Version      string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

func newContentTable(table string) ContentTable {
	return ContentTable{
		Table:        table,
		ID:           "id",
		Tag:          "tag",
		Languages:    "languages",
		Translations: "translations",
		Version:      "version",
		CreatedAt:    "createdat",
		UpdatedAt:    "updatedat",
		DeletedAt:    "deletedat",
	}
}

// ContentSpell is the schema definition for content.spell
var ContentSpell = newContentTable("content.spell")

// ContentMonster is the schema definition for content.monster
var ContentMonster = newContentTable("content.monster")
