package models

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Side identifies which garment face an element is drawn on
type Side string

const (
	SideFront Side = "front"
	SideBack  Side = "back"
)

// ElementKind identifies the variant of a design element
type ElementKind string

const (
	KindImage ElementKind = "image"
	KindText  ElementKind = "text"
)

// Element defaults and limits
const (
	MaxImageBytes = 2 * 1024 * 1024 // 2MB per uploaded file

	MinScale  = 0.3
	MaxScale  = 3.0
	ScaleStep = 0.1

	RotateStep = 15.0 // degrees per rotate action

	DefaultTextContent = "Your text"
	DefaultFontFamily  = "sans"
	DefaultTextColor   = "#FFFFFF"
)

// allowedImageMimeTypes are the raster formats accepted for image layers
var allowedImageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// DesignElement represents one placed layer (image or text) on one side of a garment.
// Positions are percentages (0-100) of the composition surface and refer to the
// element's center, so the same element reproduces identically at any render size.
//
// For Type "image", Content is a data URI while the design is being edited and a
// hosted URL after finalization. For Type "text", Content is the literal string
// and FontFamily/Color are set.
//
// Example (text element):
//
//	{
//	  "id": "e3b6...",
//	  "type": "text",
//	  "content": "STAY LOUD",
//	  "x": 50, "y": 34.2,
//	  "scale": 1.2, "rotate": 345,
//	  "side": "front",
//	  "fontFamily": "bold",
//	  "color": "#FFDD00"
//	}
type DesignElement struct {
	ID         string      `json:"id"`
	Type       ElementKind `json:"type"`
	Content    string      `json:"content"`
	X          float64     `json:"x"`
	Y          float64     `json:"y"`
	Scale      float64     `json:"scale"`
	Rotate     float64     `json:"rotate"`
	Side       Side        `json:"side"`
	FontFamily string      `json:"fontFamily,omitempty"`
	Color      string      `json:"color,omitempty"`
}

// DesignState is the full custom-garment design: an ordered list of elements
// (insertion order = z-order, later elements render on top) plus the base
// garment attributes chosen by the customer.
type DesignState struct {
	Elements  []DesignElement `json:"elements"`
	BaseColor string          `json:"baseColor"`
	Size      string          `json:"size"`
	Notes     string          `json:"notes,omitempty"`
}

// Clone returns a deep copy of the design state. Cart packaging and
// finalization operate on copies so later edits in a reopened studio never
// retroactively alter an already-added cart item.
func (d *DesignState) Clone() *DesignState {
	out := &DesignState{
		BaseColor: d.BaseColor,
		Size:      d.Size,
		Notes:     d.Notes,
	}
	if len(d.Elements) > 0 {
		out.Elements = make([]DesignElement, len(d.Elements))
		copy(out.Elements, d.Elements)
	}
	return out
}

// ElementsOnSide returns the elements belonging to one garment face, in stored
// order (z-order preserved).
func (d *DesignState) ElementsOnSide(side Side) []DesignElement {
	var out []DesignElement
	for _, el := range d.Elements {
		if el.Side == side {
			out = append(out, el)
		}
	}
	return out
}

// HasElementsOnSide reports whether any element is placed on the given side
func (d *DesignState) HasElementsOnSide(side Side) bool {
	for _, el := range d.Elements {
		if el.Side == side {
			return true
		}
	}
	return false
}

// NewImageElement builds an image layer from uploaded raster data.
// Validates the MIME type (jpeg/png/webp) and the 2MB size limit; a rejected
// file returns a ValidationError and no element is created. The new element
// starts centered at (50,50) with scale 1 and no rotation, and carries the
// raster inline as a data URI until finalization replaces it with a hosted URL.
func NewImageElement(name string, rasterData []byte, side Side) (*DesignElement, error) {
	if len(rasterData) == 0 {
		return nil, &ValidationError{Field: name, Reason: "file is empty"}
	}
	if len(rasterData) > MaxImageBytes {
		return nil, &ValidationError{Field: name, Reason: fmt.Sprintf("file too large: %d bytes (max %d)", len(rasterData), MaxImageBytes)}
	}

	mimeType := http.DetectContentType(rasterData)
	if !allowedImageMimeTypes[mimeType] {
		return nil, &ValidationError{Field: name, Reason: fmt.Sprintf("type not supported: %s (allowed: jpeg, png, webp)", mimeType)}
	}

	content := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(rasterData))

	return &DesignElement{
		ID:      uuid.NewString(),
		Type:    KindImage,
		Content: content,
		X:       50,
		Y:       50,
		Scale:   1,
		Rotate:  0,
		Side:    side,
	}, nil
}

// NewTextElement builds a text layer with placeholder content, the default
// font and the default color, centered on the given side.
func NewTextElement(side Side) *DesignElement {
	return &DesignElement{
		ID:         uuid.NewString(),
		Type:       KindText,
		Content:    DefaultTextContent,
		X:          50,
		Y:          50,
		Scale:      1,
		Rotate:     0,
		Side:       side,
		FontFamily: DefaultFontFamily,
		Color:      DefaultTextColor,
	}
}

// IsInline reports whether an image element still carries inline-encoded
// raster data (a data URI) rather than a hosted URL.
func (e *DesignElement) IsInline() bool {
	return e.Type == KindImage && strings.HasPrefix(e.Content, "data:")
}

// InlineData decodes the raster bytes of an inline-encoded image element
func (e *DesignElement) InlineData() ([]byte, error) {
	if !e.IsInline() {
		return nil, fmt.Errorf("element %s does not carry inline data", e.ID)
	}
	idx := strings.Index(e.Content, ";base64,")
	if idx < 0 {
		return nil, fmt.Errorf("element %s: malformed data URI", e.ID)
	}
	data, err := base64.StdEncoding.DecodeString(e.Content[idx+len(";base64,"):])
	if err != nil {
		return nil, fmt.Errorf("element %s: failed to decode inline data: %w", e.ID, err)
	}
	return data, nil
}
