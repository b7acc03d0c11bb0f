package session

import "github.com/example/hamper-shop/internal/domain/cart"

// ConfigureHamper runs the whole configurator in one go. Occasion goes
// through preselection, so catalog ids, names and free text all work.
type ConfigureHamper struct {
	Occasion  string   `yaml:"occasion" json:"occasion"`
	Vibe      string   `yaml:"vibe" json:"vibe"`
	Packaging string   `yaml:"packaging" json:"packaging"`
	Contents  []string `yaml:"contents" json:"contents"`
	Quantity  int      `yaml:"quantity" json:"quantity"`
}

type AddPrebuilt struct {
	ProductID string `yaml:"product" json:"product_id"`
	Quantity  int    `yaml:"quantity" json:"quantity"`
}

type UpdateQuantity struct {
	ItemID   string `yaml:"item" json:"item_id"`
	Quantity int    `yaml:"quantity" json:"quantity"`
}

type RemoveItem struct {
	ItemID string `yaml:"item" json:"item_id"`
}

// UpdateCustomer sets only the fields that are present.
type UpdateCustomer struct {
	Name    *string `yaml:"name" json:"name"`
	Phone   *string `yaml:"phone" json:"phone"`
	Email   *string `yaml:"email" json:"email"`
	Address *string `yaml:"address" json:"address"`
}

func (c UpdateCustomer) patch() cart.DetailsPatch {
	return cart.DetailsPatch{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
	}
}
