package models

import "github.com/shopspring/decimal"

// MaxCartUnits caps the cakes a cart may hold, keeping a checkout within one INSERT statement
const MaxCartUnits = 100

// CartItem is one line of a session cart
type CartItem struct {
	CakeID   int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Quantity int             `json:"qty"`
}

// Subtotal is price multiplied by quantity
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the list of lines awaiting checkout.
// Adding the same cake twice produces two lines.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add appends a new line with quantity 1 for the cake
func (c *Cart) Add(cake *Cake) CartItem {
	item := CartItem{
		CakeID:   cake.ID,
		Name:     cake.Name,
		Price:    cake.Price,
		Image:    cake.Image,
		Quantity: 1,
	}
	c.Items = append(c.Items, item)
	return item
}

// RemoveAt removes the line at index i. Out-of-range indices are ignored.
func (c *Cart) RemoveAt(i int) bool {
	if i < 0 || i >= len(c.Items) {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.Items = nil
}

// Len returns the number of lines
func (c *Cart) Len() int {
	return len(c.Items)
}

// Units returns the number of cakes across all lines
func (c *Cart) Units() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Full reports whether the cart has reached MaxCartUnits
func (c *Cart) Full() bool {
	return c.Units() >= MaxCartUnits
}

// Total sums line subtotals
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// CakeNames returns one name per unit, in cart order
func (c *Cart) CakeNames() []string {
	names := make([]string, 0, c.Units())
	for _, item := range c.Items {
		for q := 0; q < item.Quantity; q++ {
			names = append(names, item.Name)
		}
	}
	return names
}
