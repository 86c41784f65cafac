package pricing

import "github.com/shopspring/decimal"

// Line is one priced cart row.
type Line struct {
	ID        int
	ProductID int
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Basket holds cart lines plus the set of lines selected for checkout.
// Quantities never drop below one and the selection only ever refers to
// lines that exist. The cart service builds one per request and uses
// SelectOnly, Increase and Decrease; Select, Deselect, Toggle and Remove model
// the checkbox cart screen for callers that keep a basket across edits.
type Basket struct {
	lines    []Line
	selected map[int]bool
}

// NewBasket selects every line. Quantities below one are raised to one.
func NewBasket(lines []Line) *Basket {
	b := &Basket{
		lines:    make([]Line, len(lines)),
		selected: make(map[int]bool, len(lines)),
	}
	copy(b.lines, lines)
	for i := range b.lines {
		if b.lines[i].Quantity < 1 {
			b.lines[i].Quantity = 1
		}
		b.selected[b.lines[i].ID] = true
	}
	return b
}

func (b *Basket) index(id int) int {
	for i := range b.lines {
		if b.lines[i].ID == id {
			return i
		}
	}
	return -1
}

// SelectOnly replaces the selection; ids that are not in the basket are
// ignored.
func (b *Basket) SelectOnly(ids []int) {
	b.selected = make(map[int]bool, len(ids))
	for _, id := range ids {
		if b.index(id) >= 0 {
			b.selected[id] = true
		}
	}
}

func (b *Basket) Select(id int) {
	if b.index(id) >= 0 {
		b.selected[id] = true
	}
}

func (b *Basket) Deselect(id int) {
	delete(b.selected, id)
}

func (b *Basket) Toggle(id int) {
	if b.selected[id] {
		b.Deselect(id)
		return
	}
	b.Select(id)
}

func (b *Basket) IsSelected(id int) bool {
	return b.selected[id]
}

func (b *Basket) Increase(id int) {
	if i := b.index(id); i >= 0 {
		b.lines[i].Quantity++
	}
}

// Decrease lowers the quantity by one, stopping at one.
func (b *Basket) Decrease(id int) {
	if i := b.index(id); i >= 0 && b.lines[i].Quantity > 1 {
		b.lines[i].Quantity--
	}
}

// Remove drops the line and its selection.
func (b *Basket) Remove(id int) {
	if i := b.index(id); i >= 0 {
		b.lines = append(b.lines[:i], b.lines[i+1:]...)
	}
	delete(b.selected, id)
}

func (b *Basket) Lines() []Line {
	out := make([]Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Selected returns the selected lines in basket order.
func (b *Basket) Selected() []Line {
	out := make([]Line, 0, len(b.selected))
	for _, l := range b.lines {
		if b.selected[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// Subtotal sums unit price times quantity over the selected lines.
func (b *Basket) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range b.Selected() {
		total = total.Add(l.Total())
	}
	return total
}

// ItemCount is the number of selected units.
func (b *Basket) ItemCount() int {
	n := 0
	for _, l := range b.Selected() {
		n += l.Quantity
	}
	return n
}
