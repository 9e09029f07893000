package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"net/http"
	"strings"
	"time"

	"hypewear-studio/canvas"
	"hypewear-studio/models"
	"hypewear-studio/utils"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	// Decoders for the accepted artwork formats
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

const (
	// Image layers fit within this fraction of the surface at scale 1.
	// Text height is this fraction of the surface dimension at scale 1, so
	// text scales with the container, not with absolute pixels.
	artworkFraction = 0.4
	textFraction    = 0.08

	// Padding around rendered text to keep glyph edges off the layer border
	textPaddingPx = 4

	defaultBaseColor = "#1A1A1A"
)

// DesignRenderer draws a design state onto a square surface of arbitrary
// pixel size. It is a pure function of (design, side): positions and scale
// are stored as percentages, so the same stored model renders identically in
// a product grid thumbnail, a cart row, the checkout summary, an admin
// gallery tile and the print blueprint. There is no separate
// thumbnail-resolution data path.
//
// Render never mutates its input and is safe to call concurrently for
// multiple surfaces.
type DesignRenderer struct {
	httpClient *http.Client
	fonts      map[string]*opentype.Font
}

// Ensure DesignRenderer implements DesignRendererInterface
var _ DesignRendererInterface = (*DesignRenderer)(nil)

// NewDesignRenderer creates a DesignRenderer with the built-in font set.
// Font family tokens on text elements map to the Go font faces: "sans"
// (default), "bold", "italic", "mono".
func NewDesignRenderer() (*DesignRenderer, error) {
	fonts := make(map[string]*opentype.Font, 4)
	for token, data := range map[string][]byte{
		"sans":   goregular.TTF,
		"bold":   gobold.TTF,
		"italic": goitalic.TTF,
		"mono":   gomono.TTF,
	} {
		fnt, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse font %s: %w", token, err)
		}
		fonts[token] = fnt
	}

	return &DesignRenderer{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		fonts:      fonts,
	}, nil
}

// Render draws the elements of one garment face over the base color at the
// given square surface size. Elements draw in stored order: z-order is array
// order, later elements on top, regardless of selection state.
func (r *DesignRenderer) Render(state *models.DesignState, showBack bool, sizePx int) (image.Image, error) {
	if sizePx <= 0 {
		return nil, fmt.Errorf("invalid surface size: %d", sizePx)
	}

	side := models.SideFront
	if showBack {
		side = models.SideBack
	}

	baseColor := state.BaseColor
	if baseColor == "" {
		baseColor = defaultBaseColor
	}
	bg, err := utils.ParseHexColor(baseColor)
	if err != nil {
		return nil, fmt.Errorf("invalid base color: %w", err)
	}

	surface := canvas.Surface{Width: float64(sizePx), Height: float64(sizePx)}
	dst := imaging.New(sizePx, sizePx, bg)

	for _, el := range state.ElementsOnSide(side) {
		layer, err := r.renderElement(el, sizePx)
		if err != nil {
			return nil, fmt.Errorf("failed to render element %s: %w", el.ID, err)
		}

		// translate(x%,y%) · scale · rotate: the layer is already scaled and
		// rotated around its own center, so pasting it centered at the
		// percentage position completes the composite transform.
		cx, cy := canvas.PercentToPixel(el.X, el.Y, surface)
		bounds := layer.Bounds()
		at := image.Pt(int(cx)-bounds.Dx()/2, int(cy)-bounds.Dy()/2)
		dst = imaging.Overlay(dst, layer, at, 1.0)
	}

	return dst, nil
}

// RenderPNG renders one side and encodes it as PNG
func (r *DesignRenderer) RenderPNG(state *models.DesignState, showBack bool, sizePx int) ([]byte, error) {
	img, err := r.Render(state, showBack, sizePx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// renderElement produces one scaled and rotated layer image
func (r *DesignRenderer) renderElement(el models.DesignElement, sizePx int) (image.Image, error) {
	switch el.Type {
	case models.KindImage:
		return r.renderImageLayer(el, sizePx)
	case models.KindText:
		return r.renderTextLayer(el, sizePx)
	default:
		return nil, fmt.Errorf("unknown element type: %s", el.Type)
	}
}

// renderImageLayer decodes the element's raster content (inline data URI or
// hosted URL), fits it within the artwork fraction of the surface scaled by
// the element's scale, and rotates it around its center.
func (r *DesignRenderer) renderImageLayer(el models.DesignElement, sizePx int) (image.Image, error) {
	data, err := r.rasterData(el)
	if err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode raster content: %w", err)
	}

	maxDim := int(float64(sizePx) * artworkFraction * el.Scale)
	if maxDim < 1 {
		maxDim = 1
	}
	fitted := imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	// Stored rotation is clockwise degrees; imaging.Rotate is counter-clockwise
	return imaging.Rotate(fitted, -el.Rotate, color.Transparent), nil
}

// renderTextLayer draws the element's text with the stored font family token
// and color at a size relative to the surface dimension, then rotates it.
func (r *DesignRenderer) renderTextLayer(el models.DesignElement, sizePx int) (image.Image, error) {
	fnt, ok := r.fonts[el.FontFamily]
	if !ok {
		fnt = r.fonts[models.DefaultFontFamily]
	}

	textColor, err := utils.ParseHexColor(el.Color)
	if err != nil {
		textColor, _ = utils.ParseHexColor(models.DefaultTextColor)
	}

	fontSize := float64(sizePx) * textFraction * el.Scale
	if fontSize < 1 {
		fontSize = 1
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	defer face.Close()

	content := el.Content
	if content == "" {
		content = " "
	}

	metrics := face.Metrics()
	width := font.MeasureString(face, content).Ceil() + 2*textPaddingPx
	height := metrics.Height.Ceil() + 2*textPaddingPx

	layer := image.NewNRGBA(image.Rect(0, 0, width, height))
	drawer := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(textPaddingPx, textPaddingPx+metrics.Ascent.Ceil()),
	}
	drawer.DrawString(content)

	return imaging.Rotate(layer, -el.Rotate, color.Transparent), nil
}

// rasterData resolves an image element's content to raw bytes
func (r *DesignRenderer) rasterData(el models.DesignElement) ([]byte, error) {
	if el.IsInline() {
		return el.InlineData()
	}

	if !strings.HasPrefix(el.Content, "http://") && !strings.HasPrefix(el.Content, "https://") {
		return nil, fmt.Errorf("unsupported raster content reference")
	}

	resp, err := r.httpClient.Get(el.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hosted raster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hosted raster returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
