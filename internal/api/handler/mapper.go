package handler

import (
	"encoding/json"
	"strconv"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

func (r createSweetRequest) toDraft() domain.SweetDraft {
	return domain.SweetDraft{
		Name:        r.Name,
		Category:    domain.Category(r.Category),
		Price:       r.Price,
		Quantity:    r.Quantity,
		Description: r.Description,
	}
}

func (r updateSweetRequest) toPatch() domain.SweetPatch {
	p := domain.SweetPatch{
		Name:        r.Name,
		Price:       r.Price,
		Quantity:    r.Quantity,
		Description: r.Description,
	}
	if r.Category != nil {
		cat := domain.Category(*r.Category)
		p.Category = &cat
	}
	return p
}

// toFilter assumes the query already passed validation, so the price
// bounds are known to parse.
func (q searchQuery) toFilter() domain.SweetFilter {
	f := domain.SweetFilter{
		Name:     q.Name,
		Category: domain.Category(q.Category),
	}
	if v, err := strconv.ParseFloat(q.MinPrice, 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(q.MaxPrice, 64); err == nil {
		f.MaxPrice = &v
	}
	return f
}

// parseQuantity accepts only a JSON integer greater than zero.
func parseQuantity(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, domain.ErrInvalidQuantity
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil || n <= 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return n, nil
}
