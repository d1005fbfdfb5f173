// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/respond"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

/*
TestError_AppError renders the code, message and field details of an AppError.
*/
func TestError_AppError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, apperr.ValidationError("Validation failed",
		apperr.FieldError{Field: "lang", Message: "Must be a 2-letter lowercase language code"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body respond.ErrorEnvelope
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, apperr.CodeValidation, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "lang", body.Details[0].Field)
}

/*
TestError_PlainError hides unexpected errors behind a generic 500.
*/
func TestError_PlainError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "connection reset")
	assert.Contains(t, recorder.Body.String(), apperr.CodeInternal)
}

/*
TestCreatedWithMessage includes the message next to the data.
*/
func TestCreatedWithMessage(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.CreatedWithMessage(recorder, map[string]string{"id": "x"}, "translation de added in 3ms")

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.JSONEq(t, `{"data":{"id":"x"},"message":"translation de added in 3ms"}`, recorder.Body.String())
}

/*
TestPaginated writes the list metadata block.
*/
func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.Paginated(recorder, []int{1, 2}, pagination.NewMeta(0, 20, 2))

	assert.JSONEq(t, `{"data":[1,2],"meta":{"page":0,"offset":20,"total_items":2}}`, recorder.Body.String())
}
