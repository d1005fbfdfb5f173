// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package translation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/middleware"
	requestutil "github.com/taibuivan/grimoire/internal/platform/request"
	"github.com/taibuivan/grimoire/internal/platform/respond"
	"github.com/taibuivan/grimoire/internal/platform/sec"
	"github.com/taibuivan/grimoire/pkg/pagination"
)

// # Handler Implementation

// Handler exposes one content collection over REST.
type Handler[C Details] struct {
	service *Service[C]
}

// NewHandler constructs a [Handler] over service.
func NewHandler[C Details](service *Service[C]) *Handler[C] {
	return &Handler[C]{service: service}
}

// Routes returns a [chi.Router] with the collection and translation endpoints.
func (handler *Handler[C]) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reads
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)
	router.Get("/{id}/translations", handler.listTranslations)
	router.Get("/{id}/translations/{lang}", handler.getTranslation)

	// ## Editorial (editor or admin)
	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/", handler.create)
		editor.Delete("/{id}", handler.delete)
		editor.Post("/{id}/translations/{lang}", handler.addTranslation)
		editor.Put("/{id}/translations/{lang}", handler.updateTranslation)
		editor.Delete("/{id}/translations/{lang}", handler.deleteTranslation)
	})

	return router
}

// createRequest is the POST body of a new entity.
type createRequest[C Details] struct {
	Lang string `json:"lang"`
	Content[C]
}

// remainingLanguages is the body returned after a translation delete.
type remainingLanguages struct {
	Languages []Code `json:"languages"`
}

// # Collection Endpoints

/*
GET /api/v1/{resource}.

Request:
  - name: string (case-insensitive substring of the translated name)
  - lang: string (restrict to one language)
  - sort: string (tag, name, created_at, updated_at; "-" for descending)
  - page: int (zero-based)
  - offset: int (page size, max 100)

Response:
  - 200: []Entity: Paginated list
  - 400: VALIDATION_ERROR
*/
func (handler *Handler[C]) list(writer http.ResponseWriter, request *http.Request) {
	params, err := pagination.FromRequest(request)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError(err.Error()))
		return
	}

	entities, meta, err := handler.service.Search(request.Context(), SearchRequest{
		Name:   requestutil.Query(request, "name"),
		Lang:   requestutil.Query(request, FieldLang),
		Sort:   requestutil.Query(request, "sort"),
		Page:   params.Page,
		Offset: params.Offset,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, entities, meta)
}

/*
POST /api/v1/{resource}.

Request (Body):
  - lang, name, description, details

Response:
  - 201: Entity: Created homebrew entity
  - 400: VALIDATION_ERROR
*/
func (handler *Handler[C]) create(writer http.ResponseWriter, request *http.Request) {
	var body createRequest[C]
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, err := handler.service.Create(request.Context(), body.Lang, body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, entity)
}

// # Entity Endpoints

/*
GET /api/v1/{resource}/{id}.

Description: Renders the entity in the requested language, falling back to
the default language and then to the entity's first language.

Response:
  - 200: Resolved: Success
  - 404: NOT_FOUND
  - 410: GONE
*/
func (handler *Handler[C]) get(writer http.ResponseWriter, request *http.Request) {
	resolved, err := handler.service.Get(request.Context(), requestutil.ID(request, "id"), requestutil.Query(request, FieldLang))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}

/*
DELETE /api/v1/{resource}/{id}.

Response:
  - 204: Soft-deleted
  - 403: FORBIDDEN (holds SRD content)
  - 404: NOT_FOUND
  - 410: GONE
*/
func (handler *Handler[C]) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Translation Endpoints

// GET /api/v1/{resource}/{id}/translations.
func (handler *Handler[C]) listTranslations(writer http.ResponseWriter, request *http.Request) {
	summaries, err := handler.service.ListTranslations(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summaries)
}

// GET /api/v1/{resource}/{id}/translations/{lang}. No language fallback.
func (handler *Handler[C]) getTranslation(writer http.ResponseWriter, request *http.Request) {
	block, err := handler.service.GetTranslation(request.Context(), requestutil.ID(request, "id"), requestutil.Param(request, FieldLang))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, block)
}

/*
POST /api/v1/{resource}/{id}/translations/{lang}.

Request (Body):
  - name, description, details

Response:
  - 201: Entity: Updated entity (active translations only)
  - 400: VALIDATION_ERROR
  - 404: NOT_FOUND
  - 409: CONFLICT (language already present, even if deleted)
  - 410: GONE
*/
func (handler *Handler[C]) addTranslation(writer http.ResponseWriter, request *http.Request) {
	var content Content[C]
	if err := requestutil.DecodeJSON(request, &content); err != nil {
		respond.Error(writer, request, err)
		return
	}

	entity, message, err := handler.service.AddTranslation(request.Context(),
		requestutil.ID(request, "id"), requestutil.Param(request, FieldLang), content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.CreatedWithMessage(writer, entity.WithTranslations(entity.Translations.Active()), message)
}

/*
PUT /api/v1/{resource}/{id}/translations/{lang}.

Response:
  - 200: Block: Updated translation
  - 403: FORBIDDEN (SRD)
  - 404: NOT_FOUND
  - 410: GONE
*/
func (handler *Handler[C]) updateTranslation(writer http.ResponseWriter, request *http.Request) {
	var content Content[C]
	if err := requestutil.DecodeJSON(request, &content); err != nil {
		respond.Error(writer, request, err)
		return
	}

	block, err := handler.service.UpdateTranslation(request.Context(),
		requestutil.ID(request, "id"), requestutil.Param(request, FieldLang), content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, block)
}

/*
DELETE /api/v1/{resource}/{id}/translations/{lang}.

Response:
  - 200: {languages}: Remaining active languages
  - 403: FORBIDDEN (SRD or last translation)
  - 404: NOT_FOUND
  - 410: GONE
*/
func (handler *Handler[C]) deleteTranslation(writer http.ResponseWriter, request *http.Request) {
	remaining, err := handler.service.DeleteTranslation(request.Context(),
		requestutil.ID(request, "id"), requestutil.Param(request, FieldLang))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, remainingLanguages{Languages: remaining})
}
