package domain

// DefaultSelectorKey names the selector set used by sources without their own.
const DefaultSelectorKey = "default"

// FieldSelectors locates one sub-game's fields in a source document.
type FieldSelectors struct {
	// Numbers is a CSS selector; every match contributes one number.
	Numbers string `toml:"numbers" yaml:"numbers"`

	// Date is a CSS selector for the draw date; the first match is used.
	Date string `toml:"date" yaml:"date"`

	// DateAttr reads the date from this attribute instead of the element text.
	DateAttr string `toml:"date_attr,omitempty" yaml:"date_attr,omitempty"`
}

// SelectorTable maps a source ID (or DefaultSelectorKey) to its sub-games.
type SelectorTable map[string]map[string]FieldSelectors

