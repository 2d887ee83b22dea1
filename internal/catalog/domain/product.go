package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. UnitAmount is in minor units (cents) so money
// math stays integral.
type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UnitAmount int64  `json:"unit_amount"`
}

type Service interface {
	Find(id string) (*Product, error)
	List() []Product
}
