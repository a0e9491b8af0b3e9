package domain

// ProductRef is a catalog product as handed to the cart, without a quantity.
type ProductRef struct {
	ID       string
	Title    string
	ImageURL string
	Price    Money
}

type CartItem struct {
	ID       string
	Title    string
	ImageURL string
	Price    Money

	// Quantity is always >= 1, an item that would drop to 0 is removed.
	Quantity int
}

// Cart is an ordered list of items with at most one item per ID.
// Operations return a new Cart and never modify the receiver.
type Cart struct {
	Items []CartItem
}

func (c Cart) Len() int {
	return len(c.Items)
}

// Index returns the position of the item with the given ID or -1.
func (c Cart) Index(id string) int {
	for i, item := range c.Items {
		if item.ID == id {
			return i
		}
	}

	return -1
}

func (c Cart) Clone() Cart {
	if c.Items == nil {
		return Cart{}
	}

	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)

	return Cart{Items: items}
}

func (c Cart) AddItem(p ProductRef) Cart {
	next := c.Clone()

	if i := next.Index(p.ID); i > -1 {
		next.Items[i].Quantity++
		return next
	}

	next.Items = append(next.Items, CartItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	})

	return next
}

func (c Cart) Increment(id string) Cart {
	next := c.Clone()

	if i := next.Index(id); i > -1 {
		next.Items[i].Quantity++
	}

	return next
}

func (c Cart) Decrement(id string) Cart {
	next := c.Clone()

	i := next.Index(id)
	if i < 0 {
		return next
	}

	if next.Items[i].Quantity-1 == 0 {
		next.Items = append(next.Items[:i], next.Items[i+1:]...)
		return next
	}

	next.Items[i].Quantity--

	return next
}
