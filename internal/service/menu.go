package service

import (
	"sort"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"restaurant/internal/model"
)

// AllCategories selects every category in a menu filter.
const AllCategories = ""

type MenuFilter struct {
	Category      string
	Search        string
	AvailableOnly bool
}

func (f MenuFilter) match(it model.MenuItem) bool {
	if f.AvailableOnly && !it.Available {
		return false
	}
	if f.Category != AllCategories && it.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Description), q)
}

// Menu is the item and category catalog.
type Menu struct {
	mu         sync.RWMutex
	items      []model.MenuItem
	categories []model.MenuCategory
}

func NewMenu(items []model.MenuItem, categories []model.MenuCategory) *Menu {
	m := &Menu{
		items:      append([]model.MenuItem(nil), items...),
		categories: append([]model.MenuCategory(nil), categories...),
	}
	sort.SliceStable(m.categories, func(i, j int) bool {
		return m.categories[i].Order < m.categories[j].Order
	})
	return m
}

func NewDemoMenu() *Menu {
	return NewMenu(demoItems(), demoCategories())
}

// Items returns the items matching f in catalog order.
func (m *Menu) Items(f MenuFilter) []model.MenuItem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.MenuItem, 0, len(m.items))
	for _, it := range m.items {
		if f.match(it) {
			out = append(out, cloneItem(it))
		}
	}
	return out
}

func (m *Menu) Item(id string) (model.MenuItem, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, it := range m.items {
		if it.ID == id {
			return cloneItem(it), true
		}
	}
	return model.MenuItem{}, false
}

// Categories returns categories by ascending display order.
func (m *Menu) Categories(activeOnly bool) []model.MenuCategory {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.MenuCategory, 0, len(m.categories))
	for _, c := range m.categories {
		if activeOnly && !c.Active {
			continue
		}
		out = append(out, c)
	}
	return out
}

type MenuSection struct {
	Category model.MenuCategory `json:"category"`
	Items    []model.MenuItem   `json:"items"`
}

// Browse is the customer view: active categories that still have items
// left after f, each with its items. When f names a category only that
// section is returned, even if empty.
func (m *Menu) Browse(f MenuFilter) []MenuSection {
	f.AvailableOnly = true
	items := m.Items(f)

	sections := make([]MenuSection, 0)
	for _, c := range m.Categories(true) {
		if f.Category != AllCategories && c.Name != f.Category {
			continue
		}
		sec := MenuSection{Category: c, Items: make([]model.MenuItem, 0)}
		for _, it := range items {
			if it.Category == c.Name {
				sec.Items = append(sec.Items, it)
			}
		}
		if f.Category == AllCategories && len(sec.Items) == 0 {
			continue
		}
		sections = append(sections, sec)
	}
	return sections
}

// ToggleAvailability flips the available flag of item id.
func (m *Menu) ToggleAvailability(id string) (model.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.items {
		if m.items[i].ID == id {
			m.items[i].Available = !m.items[i].Available
			return cloneItem(m.items[i]), nil
		}
	}
	return model.MenuItem{}, ErrItemNotFound
}

func (m *Menu) ToggleCategory(id string) (model.MenuCategory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.categories {
		if m.categories[i].ID == id {
			m.categories[i].Active = !m.categories[i].Active
			return m.categories[i], nil
		}
	}
	return model.MenuCategory{}, ErrCategoryNotFound
}

// LineFor builds a cart line for quantity units of item id.
func (m *Menu) LineFor(itemID string, quantity int, note string) (model.CartLine, error) {
	it, ok := m.Item(itemID)
	if !ok {
		return model.CartLine{}, ErrItemNotFound
	}
	if !it.Available {
		return model.CartLine{}, ErrItemUnavailable
	}
	return model.CartLine{
		ItemID:   it.ID,
		Name:     it.Name,
		Price:    it.Price,
		Quantity: quantity,
		Note:     note,
		Category: it.Category,
		Image:    it.Image,
	}, nil
}

func cloneItem(it model.MenuItem) model.MenuItem {
	it.Ingredients = append([]string(nil), it.Ingredients...)
	return it
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
