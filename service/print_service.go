package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"hypewear-studio/models"
	"hypewear-studio/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// blueprintRenderSize is the surface size used for the large print-view
// renders embedded in the blueprint
const blueprintRenderSize = 1200

// PrintService produces the print-formatted blueprint for a finalized design:
// large front/back renders plus the per-layer transform table the print shop
// works from. HTML is rendered with html/template and converted to PDF by
// headless Chrome.
type PrintService struct {
	renderer DesignRendererInterface
	baseURL  string // Base URL for the blueprint render endpoint
}

// NewPrintService creates a new PrintService
func NewPrintService(renderer DesignRendererInterface, baseURL string) *PrintService {
	return &PrintService{
		renderer: renderer,
		baseURL:  baseURL,
	}
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// blueprintLayer is one row of the blueprint's transform table
type blueprintLayer struct {
	Index      int
	Kind       string
	Side       string
	Content    string
	X          string
	Y          string
	Scale      string
	Rotate     string
	FontFamily string
	Color      string
}

// RenderBlueprintHTML renders the blueprint page for one design. Renders of
// both sides come from the same stored percentage model as every other
// surface, so what the print shop sees matches the customer's preview.
func (s *PrintService) RenderBlueprintHTML(design *models.CustomDesign) (string, error) {
	state := design.DesignState()

	frontPNG, err := s.renderer.RenderPNG(state, false, blueprintRenderSize)
	if err != nil {
		return "", fmt.Errorf("failed to render front view: %w", err)
	}

	var backURI string
	if state.HasElementsOnSide(models.SideBack) {
		backPNG, err := s.renderer.RenderPNG(state, true, blueprintRenderSize)
		if err != nil {
			return "", fmt.Errorf("failed to render back view: %w", err)
		}
		backURI = "data:image/png;base64," + base64.StdEncoding.EncodeToString(backPNG)
	}

	layers := make([]blueprintLayer, 0, len(design.Elements))
	for i, el := range design.Elements {
		layer := blueprintLayer{
			Index:  i + 1,
			Kind:   string(el.Type),
			Side:   string(el.Side),
			X:      fmt.Sprintf("%.1f%%", el.X),
			Y:      fmt.Sprintf("%.1f%%", el.Y),
			Scale:  fmt.Sprintf("%.1f", el.Scale),
			Rotate: fmt.Sprintf("%.0f°", el.Rotate),
		}
		if el.Type == models.KindText {
			layer.Content = el.Content
			layer.FontFamily = el.FontFamily
			layer.Color = el.Color
		} else {
			layer.Content = el.Content // hosted URL after finalization
		}
		layers = append(layers, layer)
	}

	templateData := struct {
		DesignID  int64
		OrderID   int64
		BaseColor string
		Size      string
		SKU       string
		Notes     string
		FrontURI  string
		BackURI   string
		Layers    []blueprintLayer
	}{
		DesignID:  design.ID,
		OrderID:   design.OrderID,
		BaseColor: design.BaseColor,
		Size:      design.Size,
		SKU:       utils.BuildCustomSKU(design.BaseColor, design.Size, design.ID),
		Notes:     design.Notes,
		FrontURI:  "data:image/png;base64," + base64.StdEncoding.EncodeToString(frontPNG),
		BackURI:   backURI,
		Layers:    layers,
	}

	templatePath := filepath.Join("templates", "blueprint.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// GeneratePDF generates the blueprint PDF for a design using chromedp
func (s *PrintService) GeneratePDF(ctx context.Context, designID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	var allocCtx context.Context
	var allocCancel context.CancelFunc

	if chromePath != "" {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.ExecPath(chromePath),
			chromedp.NoSandbox, // Required for running in Docker/containers
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	} else {
		// Let chromedp auto-detect (may fail in containers)
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.NoSandbox,
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(ctx, opts...)
		defer allocCancel()
	}

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/admin/designs/%d/print/render", s.baseURL, designID)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500*time.Millisecond), // Wait for embedded renders to paint
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
