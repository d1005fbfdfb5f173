// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/dberr"
)

/*
TestWrap classifies driver errors into application error codes.
*/
func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
	}{
		{"no_rows", pgx.ErrNoRows, apperr.CodeNotFound},
		{"unique_violation", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, apperr.CodeConflict},
		{"bad_uuid_literal", &pgconn.PgError{Code: pgerrcode.InvalidTextRepresentation}, apperr.CodeNotFound},
		{"other_sqlstate", &pgconn.PgError{Code: pgerrcode.DeadlockDetected}, apperr.CodeInternal},
		{"plain", errors.New("conn closed"), apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, apperr.HasCode(dberr.Wrap(tt.err, "Spell", "find_spell"), tt.code))
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "Spell", "find_spell"))
}

func TestWrap_InternalKeepsCause(t *testing.T) {
	cause := errors.New("conn closed")

	err := dberr.Wrap(cause, "Spell", "update_spell")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, apperr.As(err).Cause.Error(), "update_spell")
}
