// directory.go — операции над каталогом пользователей RAS.
// Категории: GET/POST /directory/category, DELETE /directory/category/{id}.
// Ключевые слова: GET /directory/category/{id}/keyword (id 0 — все),
// POST /directory/keyword, DELETE /directory/keyword/{id}.
package rasclient

import (
	"context"
	"fmt"
	"net/http"
)

// AllCategories — специальный ID категории для запроса всех ключевых слов.
const AllCategories = 0

// createCategoryRequest — тело POST /directory/category.
type createCategoryRequest struct {
	Name string `json:"name"`
}

// createKeywordRequest — тело POST /directory/keyword.
type createKeywordRequest struct {
	Name       string `json:"name"`
	CategoryID int    `json:"category_id"`
}

// ListCategories возвращает все категории каталога.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, "ListCategories", http.MethodGet, "/directory/category", nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []Category{}
	}
	return categories, nil
}

// CreateCategory создаёт категорию каталога.
func (c *Client) CreateCategory(ctx context.Context, name string) error {
	body := createCategoryRequest{Name: name}
	return c.do(ctx, "CreateCategory", http.MethodPost, "/directory/category", body, nil)
}

// DeleteCategory удаляет категорию каталога по ID.
// RAS отклоняет удаление категории с ключевыми словами (KindValidation).
func (c *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	path := fmt.Sprintf("/directory/category/%d", categoryID)
	return c.do(ctx, "DeleteCategory", http.MethodDelete, path, nil, nil)
}

// ListKeywords возвращает ключевые слова категории.
// categoryID = AllCategories — ключевые слова всех категорий.
// RAS не всегда включает category_id в ответ, поэтому для конкретной
// категории он проставляется принудительно.
func (c *Client) ListKeywords(ctx context.Context, categoryID int) ([]Keyword, error) {
	var keywords []Keyword
	path := fmt.Sprintf("/directory/category/%d/keyword", categoryID)
	if err := c.do(ctx, "ListKeywords", http.MethodGet, path, nil, &keywords); err != nil {
		return nil, err
	}
	if keywords == nil {
		keywords = []Keyword{}
	}
	if categoryID != AllCategories {
		for i := range keywords {
			keywords[i].CategoryID = categoryID
		}
	}
	return keywords, nil
}

// CreateKeyword создаёт ключевое слово в указанной категории.
func (c *Client) CreateKeyword(ctx context.Context, name string, categoryID int) error {
	body := createKeywordRequest{Name: name, CategoryID: categoryID}
	return c.do(ctx, "CreateKeyword", http.MethodPost, "/directory/keyword", body, nil)
}

// DeleteKeyword удаляет ключевое слово по ID.
func (c *Client) DeleteKeyword(ctx context.Context, keywordID int) error {
	path := fmt.Sprintf("/directory/keyword/%d", keywordID)
	return c.do(ctx, "DeleteKeyword", http.MethodDelete, path, nil, nil)
}
