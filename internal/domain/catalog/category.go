package catalog

// Category is a product category with its products embedded, matching the
// nested shape returned by the commerce API's category listing endpoint.
type Category struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Products []Product `json:"products"`
}

// ProductByID finds a product inside the category, or nil when absent
func (c *Category) ProductByID(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}
