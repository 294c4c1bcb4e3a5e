package entities

import "strings"

// ItemCode identifies a material across the requisition and stock sheets
type ItemCode string

// itemCodeWidth is the number of leading characters of a combined material
// cell that carry the item code
const itemCodeWidth = 8

// materialSeparator splits "<code> - <description>" material cells
const materialSeparator = " - "

// SplitMaterial separates a combined material cell into item code and description.
// The code is the first eight characters, trimmed. The description is the text
// after the first " - " separator, or whatever follows the code when the
// separator is absent.
func SplitMaterial(material string) (ItemCode, string) {
	runes := []rune(material)
	width := itemCodeWidth
	if len(runes) < width {
		width = len(runes)
	}
	code := strings.TrimSpace(string(runes[:width]))

	if idx := strings.Index(material, materialSeparator); idx >= 0 {
		return ItemCode(code), strings.TrimSpace(material[idx+len(materialSeparator):])
	}
	return ItemCode(code), strings.TrimSpace(string(runes[width:]))
}

func (c ItemCode) String() string {
	return string(c)
}

// IsBlank reports whether the code is empty after trimming
func (c ItemCode) IsBlank() bool {
	return strings.TrimSpace(string(c)) == ""
}
