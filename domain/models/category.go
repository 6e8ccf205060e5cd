package models

import "time"

// PortionsCategoryName is the only category whose items can be ordered as half portions
const PortionsCategoryName = "Porções"

type Category struct {
	ID        string
	Name      string
	Slug      string
	Image     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *Category) IsPortions() bool {
	return c != nil && c.Name == PortionsCategoryName
}
