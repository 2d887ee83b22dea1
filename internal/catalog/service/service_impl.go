package service

import (
	"github.com/railzwaylabs/swagshop/internal/catalog/domain"
)

// defaultProducts is the fixed catalog. The shop is a demo storefront; the
// list is deliberately small and defined at startup.
var defaultProducts = []domain.Product{
	{ID: "tshirt", Name: "Worldpay T-Shirt", UnitAmount: 2000},
	{ID: "cup", Name: "Worldpay Cup", UnitAmount: 1000},
}

type Service struct {
	products []domain.Product
}

func New() domain.Service {
	return &Service{products: defaultProducts}
}

// NewWithProducts builds a catalog from an explicit product list. Used by
// tests and by deployments that override the default catalog.
func NewWithProducts(products []domain.Product) domain.Service {
	return &Service{products: products}
}

func (s *Service) Find(id string) (*domain.Product, error) {
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (s *Service) List() []domain.Product {
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}
