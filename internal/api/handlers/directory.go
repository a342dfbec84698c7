// directory.go — обработчики /api/v1/directory endpoints.
// Каталог пользователей: агрегированное представление, CRUD категорий
// и ключевых слов.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/ukozi/raspyman/internal/api/errors"
)

// createCategoryRequest — тело POST /api/v1/directory/categories.
type createCategoryRequest struct {
	Name string `json:"name"`
}

// createKeywordRequest — тело POST /api/v1/directory/keywords.
type createKeywordRequest struct {
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
}

// GetDirectory — GET /api/v1/directory.
// Полное представление каталога: категории с их ключевыми словами.
func (h *APIHandler) GetDirectory(w http.ResponseWriter, r *http.Request) {
	view, err := h.directory.View(r.Context())
	if err != nil {
		h.writeServiceError(w, "GetDirectory", err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// ListCategories — GET /api/v1/directory/categories.
func (h *APIHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.directory.ListCategories(r.Context())
	if err != nil {
		h.writeServiceError(w, "ListCategories", err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// CreateCategory — POST /api/v1/directory/categories.
func (h *APIHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.directory.CreateCategory(r.Context(), req.Name); err != nil {
		h.writeServiceError(w, "CreateCategory", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteCategory — DELETE /api/v1/directory/categories/{id}.
func (h *APIHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.ValidationError(w, "Некорректный ID категории")
		return
	}

	if err := h.directory.DeleteCategory(r.Context(), id); err != nil {
		h.writeServiceError(w, "DeleteCategory", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategoryKeywords — GET /api/v1/directory/categories/{id}/keywords.
func (h *APIHandler) ListCategoryKeywords(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.ValidationError(w, "Некорректный ID категории")
		return
	}

	keywords, err := h.directory.ListKeywords(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, "ListCategoryKeywords", err)
		return
	}

	writeJSON(w, http.StatusOK, keywords)
}

// CreateKeyword — POST /api/v1/directory/keywords.
func (h *APIHandler) CreateKeyword(w http.ResponseWriter, r *http.Request) {
	var req createKeywordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierrors.ValidationError(w, "Некорректный JSON: "+err.Error())
		return
	}

	if err := h.directory.CreateKeyword(r.Context(), req.Name, req.CategoryID); err != nil {
		h.writeServiceError(w, "CreateKeyword", err)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// DeleteKeyword — DELETE /api/v1/directory/keywords/{id}.
func (h *APIHandler) DeleteKeyword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		apierrors.ValidationError(w, "Некорректный ID ключевого слова")
		return
	}

	if err := h.directory.DeleteKeyword(r.Context(), id); err != nil {
		h.writeServiceError(w, "DeleteKeyword", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
