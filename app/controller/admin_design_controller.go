package controller

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"hypewear-studio/models"
	"hypewear-studio/pricing"
	"hypewear-studio/repository"
	"hypewear-studio/service"
)

// AdminDesignController handles the back-office views over finalized designs:
// gallery list, detail, server-rendered images, print blueprint and export
type AdminDesignController struct {
	designs  repository.DesignRepositoryInterface
	renderer service.DesignRendererInterface
	printer  *service.PrintService
	exporter *service.ExportService
}

// NewAdminDesignController creates a new AdminDesignController
func NewAdminDesignController(
	designs repository.DesignRepositoryInterface,
	renderer service.DesignRendererInterface,
	printer *service.PrintService,
	exporter *service.ExportService,
) *AdminDesignController {
	return &AdminDesignController{
		designs:  designs,
		renderer: renderer,
		printer:  printer,
		exporter: exporter,
	}
}

// ListDesigns handles GET /admin/designs
func (c *AdminDesignController) ListDesigns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	designs, err := c.designs.List(context.Background())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.DesignListResponse{Designs: designs})
}

// GetDesign handles GET /admin/designs/{id}
// Returns the full persisted design including its element list
func (c *AdminDesignController) GetDesign(w http.ResponseWriter, r *http.Request, designID int64) {
	design, err := c.designs.GetByID(context.Background(), designID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// GetDesignImage handles GET /admin/designs/{id}/image?side=back&size=300
// Renders the stored model at the requested surface size. Gallery tiles and
// the detail view share this endpoint, differing only in size.
func (c *AdminDesignController) GetDesignImage(w http.ResponseWriter, r *http.Request, designID int64) {
	design, err := c.designs.GetByID(context.Background(), designID)
	if err != nil {
		writeError(w, err)
		return
	}

	showBack := strings.EqualFold(r.URL.Query().Get("side"), string(models.SideBack))

	size := 300
	if s := r.URL.Query().Get("size"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed <= 0 || parsed > 4096 {
			http.Error(w, "Invalid size parameter", http.StatusBadRequest)
			return
		}
		size = parsed
	}

	png, err := c.renderer.RenderPNG(design.DesignState(), showBack, size)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// RenderPrintBlueprint handles GET /admin/designs/{id}/print/render
// Serves the blueprint HTML that headless Chrome converts to PDF
func (c *AdminDesignController) RenderPrintBlueprint(w http.ResponseWriter, r *http.Request, designID int64) {
	design, err := c.designs.GetByID(context.Background(), designID)
	if err != nil {
		writeError(w, err)
		return
	}

	html, err := c.printer.RenderBlueprintHTML(design)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

// PrintDesign handles GET /admin/designs/{id}/print
// Returns the print-formatted blueprint as a PDF download
func (c *AdminDesignController) PrintDesign(w http.ResponseWriter, r *http.Request, designID int64) {
	// Verify the design exists before spinning up Chrome
	if _, err := c.designs.GetByID(context.Background(), designID); err != nil {
		writeError(w, err)
		return
	}

	pdf, err := c.printer.GeneratePDF(r.Context(), designID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=design-blueprint.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// QuoteDesign handles GET /admin/designs/{id}/quote
// Returns the suggested quotation for manual pricing of the custom garment
func (c *AdminDesignController) QuoteDesign(w http.ResponseWriter, r *http.Request, designID int64) {
	design, err := c.designs.GetByID(context.Background(), designID)
	if err != nil {
		writeError(w, err)
		return
	}

	engine := pricing.GetEngine()
	if engine == nil {
		http.Error(w, "Quotation engine not configured", http.StatusServiceUnavailable)
		return
	}

	quote, err := engine.QuoteDesign(design.DesignState())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// ExportDesign handles POST /admin/designs/{id}/export
// Writes the design's rasters to the local export directory for the print shop
func (c *AdminDesignController) ExportDesign(w http.ResponseWriter, r *http.Request, designID int64) {
	design, err := c.designs.GetByID(context.Background(), designID)
	if err != nil {
		writeError(w, err)
		return
	}

	total, exported, skipped, exportErrors, err := c.exporter.ExportDesign(design)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Total    int      `json:"total"`
		Exported int      `json:"exported"`
		Skipped  int      `json:"skipped"`
		Errors   []string `json:"errors,omitempty"`
	}{Total: total, Exported: exported, Skipped: skipped, Errors: exportErrors})
}
