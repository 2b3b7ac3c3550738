package models

import "time"

type MenuItem struct {
	ID          int64     `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Type        string    `json:"type" yaml:"type"` // starter, main, dessert
	Description string    `json:"description" yaml:"description"`
	Price       float64   `json:"price" yaml:"price"`
	Surcharge   float64   `json:"surcharge" yaml:"surcharge"`
	Subcategory string    `json:"subcategory,omitempty" yaml:"subcategory"`
	Available   bool      `json:"available" yaml:"available"`
	CreatedAt   time.Time `json:"created_at" yaml:"-"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"-"`
}

// GroupedMenu is the customer-facing menu shape, one bucket per course.
type GroupedMenu struct {
	Starter []MenuItem `json:"starter"`
	Main    []MenuItem `json:"main"`
	Dessert []MenuItem `json:"dessert"`
}

func GroupMenu(items []MenuItem) *GroupedMenu {
	menu := &GroupedMenu{
		Starter: []MenuItem{},
		Main:    []MenuItem{},
		Dessert: []MenuItem{},
	}
	for _, item := range items {
		switch item.Type {
		case MenuTypeStarter:
			menu.Starter = append(menu.Starter, item)
		case MenuTypeMain:
			menu.Main = append(menu.Main, item)
		case MenuTypeDessert:
			menu.Dessert = append(menu.Dessert, item)
		}
	}
	return menu
}
