package core

// Category is the closed set of expense categories. Stored labels that do
// not match any known category resolve to CategoryOther.
type Category int

const (
	CategoryFood Category = iota
	CategoryTransport
	CategoryBills
	CategoryEntertainment
	CategoryShopping
	CategoryHealthcare
	CategoryOther
)

// CategoryMeta carries the presentation metadata associated with a category.
type CategoryMeta struct {
	Label string
	Icon  string
	Color string
}

var categoryMeta = [...]CategoryMeta{
	CategoryFood:          {Label: "Food", Icon: "utensils", Color: "orange"},
	CategoryTransport:     {Label: "Transport", Icon: "car", Color: "blue"},
	CategoryBills:         {Label: "Bills", Icon: "file-text", Color: "red"},
	CategoryEntertainment: {Label: "Entertainment", Icon: "tv", Color: "purple"},
	CategoryShopping:      {Label: "Shopping", Icon: "shopping-bag", Color: "green"},
	CategoryHealthcare:    {Label: "Healthcare", Icon: "heart-pulse", Color: "pink"},
	CategoryOther:         {Label: "Other", Icon: "circle-help", Color: "gray"},
}

// Categories returns all categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryBills,
		CategoryEntertainment,
		CategoryShopping,
		CategoryHealthcare,
		CategoryOther,
	}
}

// Meta returns the presentation metadata for the category.
func (c Category) Meta() CategoryMeta {
	if c < 0 || int(c) >= len(categoryMeta) {
		return categoryMeta[CategoryOther]
	}
	return categoryMeta[c]
}

// Label returns the display label, which is also the stored representation.
func (c Category) Label() string { return c.Meta().Label }

// Icon returns the icon name for the category.
func (c Category) Icon() string { return c.Meta().Icon }

// Color returns the color name for the category.
func (c Category) Color() string { return c.Meta().Color }

func (c Category) String() string { return c.Label() }

// ParseCategory resolves a stored label to its category. Unknown or empty
// labels map to CategoryOther.
func ParseCategory(label string) Category {
	for _, c := range Categories() {
		if c.Label() == label {
			return c
		}
	}
	return CategoryOther
}
