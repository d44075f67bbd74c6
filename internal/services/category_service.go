package services

import (
	"context"
	"strconv"

	"storefront/internal/caching"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

type CategoryService interface {
	TopLevel(ctx context.Context) ([]*models.Category, error)
	Children(ctx context.Context, parentID int) ([]*models.Category, error)
	Sections(ctx context.Context) ([]models.CategorySection, error)
	Breadcrumb(ctx context.Context, path string) ([]models.Breadcrumb, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	local        *caching.LocalCache
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, local *caching.LocalCache) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, local: local}
}

// Tree-shape lookups sit in the process-local tier: they change rarely, are
// read on every page, and a bounded staleness window is fine.

func (s *categoryService) TopLevel(ctx context.Context) ([]*models.Category, error) {
	if cached, ok := s.local.GetCategoryList("top-level"); ok {
		return cached, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	categories, err := s.categoryRepo.TopLevel(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.local.SetCategoryList("top-level", categories)
	return categories, nil
}

func (s *categoryService) Children(ctx context.Context, parentID int) ([]*models.Category, error) {
	key := "children:" + strconv.Itoa(parentID)
	if cached, ok := s.local.GetCategoryList(key); ok {
		return cached, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	children, err := s.categoryRepo.Children(ctx, parentID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.local.SetCategoryList(key, children)
	return children, nil
}

// Sections assembles the full navigation tree: each top-level category with
// its second-level headers and their children.
func (s *categoryService) Sections(ctx context.Context) ([]models.CategorySection, error) {
	if cached, ok := s.local.GetSections("sections"); ok {
		return cached, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	topLevel, err := s.categoryRepo.TopLevel(ctx)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	sections := make([]models.CategorySection, 0, len(topLevel))
	for _, top := range topLevel {
		descendants, err := s.categoryRepo.Descendants(ctx, top.Path)
		if err != nil {
			return nil, mapStoreErr(err)
		}

		section := models.CategorySection{TopLevel: *top}
		headerIdx := make(map[int]int)
		for _, node := range descendants {
			switch node.Depth {
			case top.Depth + 1:
				headerIdx[node.ID] = len(section.Groups)
				section.Groups = append(section.Groups, models.CategoryGroup{Header: *node})
			case top.Depth + 2:
				if node.ParentID == nil {
					continue
				}
				if i, ok := headerIdx[*node.ParentID]; ok {
					section.Groups[i].Items = append(section.Groups[i].Items, *node)
				}
			}
		}
		sections = append(sections, section)
	}

	s.local.SetSections("sections", sections)
	return sections, nil
}

func (s *categoryService) Breadcrumb(ctx context.Context, path string) ([]models.Breadcrumb, error) {
	key := "breadcrumb:" + path
	if cached, ok := s.local.GetBreadcrumb(key); ok {
		return cached, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	trail, err := s.categoryRepo.Breadcrumb(ctx, path)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.local.SetBreadcrumb(key, trail)
	return trail, nil
}

func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	key := "slug:" + slug
	if cached, ok := s.local.GetCategory(key); ok {
		return cached, nil
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	s.local.SetCategory(key, category)
	return category, nil
}
