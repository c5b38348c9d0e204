package service

import (
	"context"
	"fmt"

	"github.com/topicosweb/backend/internal/core/domain"
	"github.com/topicosweb/backend/internal/core/ports"
)

type productService struct {
	crud[domain.Product]
}

func NewProductService(store ports.DocumentStore[domain.Product]) ports.ProductService {
	return &productService{crud: newCrud(store)}
}

func productQuery(f ports.ProductFilter) ports.Query {
	q := ports.Query{}
	if f.Category != "" {
		q = q.Where("category", ports.OpContains, f.Category)
	}
	if f.Name != "" {
		q = q.Where("name", ports.OpContains, f.Name)
	}
	return q
}

func (s *productService) List(ctx context.Context, f ports.ProductFilter, p ports.Page) (*ports.ListResult[domain.Product], error) {
	res, err := s.list(ctx, productQuery(f), p)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return res, nil
}

// Search returns every product matching f, unpaginated.
func (s *productService) Search(ctx context.Context, f ports.ProductFilter) ([]domain.Product, error) {
	if f.Category == "" && f.Name == "" {
		return nil, domain.NewValidationError("category or name is required")
	}
	items, err := s.store.Find(ctx, productQuery(f).Newest())
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

func (s *productService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.FindByID(ctx, id)
}

func (s *productService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	if blank(in.Name) || blank(in.Category) || in.Price == nil || in.Stock == nil {
		return nil, required("name", "category", "price", "stock")
	}
	now := s.now()
	return s.store.Insert(ctx, &domain.Product{
		Name:      *in.Name,
		Category:  *in.Category,
		Price:     *in.Price,
		Stock:     *in.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *productService) Update(ctx context.Context, id string, in ports.ProductInput) (*domain.Product, error) {
	set := setter{}
	set.str("name", in.Name)
	set.str("category", in.Category)
	set.val("price", deref(in.Price), in.Price != nil)
	set.val("stock", deref(in.Stock), in.Stock != nil)
	if err := set.stamp(s.now()); err != nil {
		return nil, err
	}
	return s.store.UpdateByID(ctx, id, set)
}

func (s *productService) Delete(ctx context.Context, id string) (*domain.Product, error) {
	return s.store.DeleteByID(ctx, id)
}
