package utils

import (
	"fmt"
	"strings"
)

// BuildCustomSKU builds the SKU printed on custom garment blueprints:
// CSM-<COLOR>-<SIZE>-<designID>, e.g. CSM-1A1A1A-M-42.
// The CSM prefix marks the garment as custom throughout the back office.
func BuildCustomSKU(baseColor, size string, designID int64) string {
	colorPart := strings.ToUpper(strings.TrimPrefix(strings.TrimSpace(baseColor), "#"))
	if colorPart == "" {
		colorPart = "NONE"
	}
	sizePart := strings.ToUpper(strings.TrimSpace(size))
	if sizePart == "" {
		sizePart = "NA"
	}
	return fmt.Sprintf("CSM-%s-%s-%d", colorPart, sizePart, designID)
}

// IsCustomSKU reports whether a SKU belongs to a custom garment
func IsCustomSKU(sku string) bool {
	return strings.HasPrefix(strings.ToUpper(sku), "CSM-")
}
