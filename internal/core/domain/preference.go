package domain

import "slices"

// Category is one of the three preference families.
type Category string

const (
	CategoryFood  Category = "food"
	CategoryHobby Category = "hobby"
	CategoryMusic Category = "music"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryFood, CategoryHobby, CategoryMusic}

// ParseCategory maps a route segment onto a Category.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if slices.Contains(Categories, c) {
		return c, true
	}
	return "", false
}

// Option is a selectable preference as defined by the backend.
type Option struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Catalog lists the available options per category.
type Catalog struct {
	Food  []Option `json:"food"`
	Hobby []Option `json:"hobby"`
	Music []Option `json:"music"`
}

// Options returns the options of category c.
func (c Catalog) Options(cat Category) []Option {
	switch cat {
	case CategoryFood:
		return c.Food
	case CategoryHobby:
		return c.Hobby
	case CategoryMusic:
		return c.Music
	}
	return nil
}

// Has reports whether code is offered in category cat.
func (c Catalog) Has(cat Category, code string) bool {
	for _, o := range c.Options(cat) {
		if o.Code == code {
			return true
		}
	}
	return false
}

// Selection holds the codes a user has checked, per category.
type Selection struct {
	Food  []string `json:"food"`
	Hobby []string `json:"hobby"`
	Music []string `json:"music"`
}

// Codes returns the selected codes of category cat.
func (s Selection) Codes(cat Category) []string {
	switch cat {
	case CategoryFood:
		return s.Food
	case CategoryHobby:
		return s.Hobby
	case CategoryMusic:
		return s.Music
	}
	return nil
}

// Has reports whether code is selected in category cat.
func (s Selection) Has(cat Category, code string) bool {
	return slices.Contains(s.Codes(cat), code)
}

// With returns a copy of s where code is selected (checked) or not.
func (s Selection) With(cat Category, code string, checked bool) Selection {
	codes := slices.Clone(s.Codes(cat))
	idx := slices.Index(codes, code)
	switch {
	case checked && idx < 0:
		codes = append(codes, code)
	case !checked && idx >= 0:
		codes = slices.Delete(codes, idx, idx+1)
	}
	switch cat {
	case CategoryFood:
		s.Food = codes
	case CategoryHobby:
		s.Hobby = codes
	case CategoryMusic:
		s.Music = codes
	}
	return s
}

// PreferenceToggle is the body of a single checkbox write. IsUnchecked is the
// inverse of the checkbox's new state.
type PreferenceToggle struct {
	Code        string `json:"code"`
	IsUnchecked bool   `json:"isUnchecked"`
}
