// directory.go — сервис каталога пользователей RAS.
// Помимо проброса CRUD-операций собирает агрегированное представление:
// категории вместе с их ключевыми словами для страницы каталога.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukozi/raspyman/internal/rasclient"
)

// DirectoryClient — операции RAS-клиента, нужные сервису каталога.
type DirectoryClient interface {
	ListCategories(ctx context.Context) ([]rasclient.Category, error)
	CreateCategory(ctx context.Context, name string) error
	DeleteCategory(ctx context.Context, categoryID int) error
	ListKeywords(ctx context.Context, categoryID int) ([]rasclient.Keyword, error)
	CreateKeyword(ctx context.Context, name string, categoryID int) error
	DeleteKeyword(ctx context.Context, keywordID int) error
}

// CategoryView — категория с её ключевыми словами.
type CategoryView struct {
	rasclient.Category
	Keywords []rasclient.Keyword `json:"keywords"`
}

// DirectoryView — агрегированное представление каталога.
// Uncategorized — ключевые слова без категории (category_id 0).
type DirectoryView struct {
	Categories    []CategoryView      `json:"categories"`
	Uncategorized []rasclient.Keyword `json:"uncategorized"`
}

// DirectoryService — сервис каталога пользователей.
type DirectoryService struct {
	ras    DirectoryClient
	logger *slog.Logger
}

// NewDirectoryService создаёт сервис каталога.
func NewDirectoryService(ras DirectoryClient, logger *slog.Logger) *DirectoryService {
	return &DirectoryService{
		ras:    ras,
		logger: logger.With(slog.String("component", "directory_service")),
	}
}

// View собирает полное представление каталога: категории и их
// ключевые слова. Сначала запрашивается сводный endpoint всех ключевых
// слов; если он недоступен, слова добираются по каждой категории
// отдельно (у старых версий RAS сводного endpoint'а нет).
func (s *DirectoryService) View(ctx context.Context) (*DirectoryView, error) {
	categories, err := s.ras.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	keywords, err := s.ras.ListKeywords(ctx, rasclient.AllCategories)
	if err != nil {
		s.logger.Warn("Сводный список ключевых слов недоступен, обход по категориям",
			slog.String("error", err.Error()),
		)
		keywords, err = s.keywordsByCategory(ctx, categories)
		if err != nil {
			return nil, err
		}
	}

	view := &DirectoryView{
		Categories:    make([]CategoryView, len(categories)),
		Uncategorized: []rasclient.Keyword{},
	}

	byCategory := make(map[int][]rasclient.Keyword)
	for _, kw := range keywords {
		byCategory[kw.CategoryID] = append(byCategory[kw.CategoryID], kw)
	}

	for i, cat := range categories {
		kws := byCategory[cat.ID]
		if kws == nil {
			kws = []rasclient.Keyword{}
		}
		view.Categories[i] = CategoryView{Category: cat, Keywords: kws}
		delete(byCategory, cat.ID)
	}

	// Ключевые слова, не привязанные ни к одной известной категории
	for _, kws := range byCategory {
		view.Uncategorized = append(view.Uncategorized, kws...)
	}

	return view, nil
}

// keywordsByCategory собирает ключевые слова обходом всех категорий.
// Ошибка отдельной категории не прерывает обход.
func (s *DirectoryService) keywordsByCategory(ctx context.Context, categories []rasclient.Category) ([]rasclient.Keyword, error) {
	var all []rasclient.Keyword
	for _, cat := range categories {
		kws, err := s.ras.ListKeywords(ctx, cat.ID)
		if err != nil {
			s.logger.Warn("Ошибка получения ключевых слов категории",
				slog.Int("category_id", cat.ID),
				slog.String("error", err.Error()),
			)
			continue
		}
		all = append(all, kws...)
	}
	return all, nil
}

// ListCategories возвращает все категории каталога.
func (s *DirectoryService) ListCategories(ctx context.Context) ([]rasclient.Category, error) {
	return s.ras.ListCategories(ctx)
}

// CreateCategory создаёт категорию каталога.
func (s *DirectoryService) CreateCategory(ctx context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: пустое имя категории", ErrValidation)
	}

	if err := s.ras.CreateCategory(ctx, trimmed); err != nil {
		return err
	}

	s.logger.Info("Категория каталога создана", slog.String("name", trimmed))
	return nil
}

// DeleteCategory удаляет категорию каталога.
func (s *DirectoryService) DeleteCategory(ctx context.Context, categoryID int) error {
	if categoryID <= 0 {
		return fmt.Errorf("%w: некорректный ID категории %d", ErrValidation, categoryID)
	}

	if err := s.ras.DeleteCategory(ctx, categoryID); err != nil {
		return err
	}

	s.logger.Info("Категория каталога удалена", slog.Int("category_id", categoryID))
	return nil
}

// ListKeywords возвращает ключевые слова категории.
func (s *DirectoryService) ListKeywords(ctx context.Context, categoryID int) ([]rasclient.Keyword, error) {
	if categoryID < 0 {
		return nil, fmt.Errorf("%w: некорректный ID категории %d", ErrValidation, categoryID)
	}
	return s.ras.ListKeywords(ctx, categoryID)
}

// CreateKeyword создаёт ключевое слово в категории.
func (s *DirectoryService) CreateKeyword(ctx context.Context, name string, categoryID int) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("%w: пустое имя ключевого слова", ErrValidation)
	}
	// categoryID 0 — ключевое слово без категории
	if categoryID < 0 {
		return fmt.Errorf("%w: некорректный ID категории %d", ErrValidation, categoryID)
	}

	if err := s.ras.CreateKeyword(ctx, trimmed, categoryID); err != nil {
		return err
	}

	s.logger.Info("Ключевое слово создано",
		slog.String("name", trimmed),
		slog.Int("category_id", categoryID),
	)
	return nil
}

// DeleteKeyword удаляет ключевое слово.
func (s *DirectoryService) DeleteKeyword(ctx context.Context, keywordID int) error {
	if keywordID <= 0 {
		return fmt.Errorf("%w: некорректный ID ключевого слова %d", ErrValidation, keywordID)
	}

	if err := s.ras.DeleteKeyword(ctx, keywordID); err != nil {
		return err
	}

	s.logger.Info("Ключевое слово удалено", slog.Int("keyword_id", keywordID))
	return nil
}
