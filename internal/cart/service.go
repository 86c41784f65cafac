package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/wichananm65/mill-store-backend/internal/pricing"
	"github.com/wichananm65/mill-store-backend/internal/product"
)

type ProductLookup interface {
	GetByID(ctx context.Context, id int) (product.Product, error)
	GetByIDs(ctx context.Context, ids []int) (map[int]product.Product, error)
}

// Service orchestrates cart operations and prices the cart with current
// product prices.
type Service struct {
	repo     Repository
	products ProductLookup
	coupons  *pricing.Catalog
	delivery decimal.Decimal
}

func NewService(repo Repository, products ProductLookup, coupons *pricing.Catalog, delivery decimal.Decimal) *Service {
	return &Service{repo: repo, products: products, coupons: coupons, delivery: delivery}
}

// Selection is a priced basket together with the lines it was built from.
type Selection struct {
	Basket *pricing.Basket
	Lines  []Line
}

// SelectedLines returns the lines the basket has selected, in cart order.
func (s Selection) SelectedLines() []Line {
	out := make([]Line, 0, len(s.Lines))
	for _, l := range s.Lines {
		if s.Basket.IsSelected(l.ID) {
			out = append(out, l)
		}
	}
	return out
}

func (s *Service) lines(ctx context.Context, userID int) ([]Line, error) {
	items, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, it := range items {
		p, ok := products[it.ProductID]
		if !ok {
			// product was removed from the catalogue
			continue
		}
		lines = append(lines, Line{
			ID:        it.ID,
			Product:   p,
			Quantity:  it.Quantity,
			LineTotal: p.SellingPrice.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return lines, nil
}

func (s *Service) View(ctx context.Context, userID int) (View, error) {
	lines, err := s.lines(ctx, userID)
	if err != nil {
		return View{}, err
	}
	v := View{Items: lines, Subtotal: decimal.Zero}
	for _, l := range lines {
		v.Subtotal = v.Subtotal.Add(l.LineTotal)
		v.ItemCount += l.Quantity
	}
	return v, nil
}

// Add puts qty units of a product in the cart; qty 0 means one.
func (s *Service) Add(ctx context.Context, userID, productID, qty int) (View, error) {
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return View{}, ErrInvalidQuantity
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return View{}, err
	}
	if _, err := s.repo.Add(ctx, userID, productID, qty); err != nil {
		return View{}, err
	}
	return s.View(ctx, userID)
}

func (s *Service) SetQuantity(ctx context.Context, userID, id, qty int) (View, error) {
	if qty < 1 {
		return View{}, ErrInvalidQuantity
	}
	if _, err := s.repo.SetQuantity(ctx, userID, id, qty); err != nil {
		return View{}, err
	}
	return s.View(ctx, userID)
}

// Step moves a line one unit up or down. Going down stops at one; removing a
// line is a separate call.
func (s *Service) Step(ctx context.Context, userID, id int, up bool) (View, error) {
	sel, err := s.Select(ctx, userID, nil)
	if err != nil {
		return View{}, err
	}
	if up {
		sel.Basket.Increase(id)
	} else {
		sel.Basket.Decrease(id)
	}
	for _, l := range sel.Basket.Lines() {
		if l.ID == id {
			return s.SetQuantity(ctx, userID, id, l.Quantity)
		}
	}
	return View{}, ErrNotFound
}

func (s *Service) Remove(ctx context.Context, userID, id int) (View, error) {
	if err := s.repo.Remove(ctx, userID, id); err != nil {
		return View{}, err
	}
	return s.View(ctx, userID)
}

// RemoveLines drops the given lines, typically after they were ordered.
func (s *Service) RemoveLines(ctx context.Context, userID int, ids []int) error {
	return s.repo.RemoveMany(ctx, userID, ids)
}

func (s *Service) Clear(ctx context.Context, userID int) error {
	return s.repo.Clear(ctx, userID)
}

// Select builds a basket from the stored cart. A nil selected slice selects
// every line.
func (s *Service) Select(ctx context.Context, userID int, selected []int) (Selection, error) {
	lines, err := s.lines(ctx, userID)
	if err != nil {
		return Selection{}, err
	}
	priced := make([]pricing.Line, 0, len(lines))
	for _, l := range lines {
		priced = append(priced, pricing.Line{
			ID:        l.ID,
			ProductID: l.Product.ID,
			UnitPrice: l.Product.SellingPrice,
			Quantity:  l.Quantity,
		})
	}
	b := pricing.NewBasket(priced)
	if selected != nil {
		b.SelectOnly(selected)
	}
	return Selection{Basket: b, Lines: lines}, nil
}

// Quote prices the selected lines with an optional coupon code.
func (s *Service) Quote(ctx context.Context, userID int, selected []int, code string) (pricing.Quote, error) {
	sel, err := s.Select(ctx, userID, selected)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.coupons.Quote(ctx, sel.Basket, code, s.delivery)
}
