package service

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hypewear-studio/models"
)

// ExportService writes a finalized design's rasters to local disk for the
// print shop: the large front/back renders plus every hosted layer image.
type ExportService struct {
	renderer   DesignRendererInterface
	httpClient *http.Client
}

// NewExportService creates a new ExportService instance
func NewExportService(renderer DesignRendererInterface) *ExportService {
	return &ExportService{
		renderer:   renderer,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// getExportDir returns the export directory path outside the project
func getExportDir(designID int64) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads", "hypewear-exports", fmt.Sprintf("design_%d", designID)), nil
}

// ExportDesign writes all assets of one design to the export directory.
// Returns total assets considered, exported count, skipped count (already on
// disk), and a list of per-asset errors. Per-asset failures do not abort the
// rest of the export.
func (s *ExportService) ExportDesign(design *models.CustomDesign) (int, int, int, []string, error) {
	log.Printf("📥 ExportDesign: exporting design %d", design.ID)

	exportDir, err := getExportDir(design.ID)
	if err != nil {
		return 0, 0, 0, nil, err
	}
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return 0, 0, 0, nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	state := design.DesignState()

	type asset struct {
		name string
		load func() ([]byte, error)
	}

	assets := []asset{
		{name: "front.png", load: func() ([]byte, error) { return s.renderer.RenderPNG(state, false, blueprintRenderSize) }},
	}
	if state.HasElementsOnSide(models.SideBack) {
		assets = append(assets, asset{
			name: "back.png",
			load: func() ([]byte, error) { return s.renderer.RenderPNG(state, true, blueprintRenderSize) },
		})
	}
	for i, el := range design.Elements {
		if el.Type != models.KindImage {
			continue
		}
		el := el
		name := fmt.Sprintf("layer_%02d%s", i+1, urlExt(el.Content))
		assets = append(assets, asset{name: name, load: func() ([]byte, error) { return s.fetch(el.Content) }})
	}

	total := len(assets)
	exported := 0
	skipped := 0
	var errors []string

	for _, a := range assets {
		filePath := filepath.Join(exportDir, a.name)

		if _, err := os.Stat(filePath); err == nil {
			log.Printf("⏭️  Skipping %s (already exists on disk)", a.name)
			skipped++
			continue
		}

		data, err := a.load()
		if err != nil {
			errorMsg := fmt.Sprintf("Failed to load %s: %v", a.name, err)
			log.Printf("❌ %s", errorMsg)
			errors = append(errors, errorMsg)
			continue
		}

		if err := os.WriteFile(filePath, data, 0644); err != nil {
			errorMsg := fmt.Sprintf("Failed to write %s: %v", a.name, err)
			log.Printf("❌ %s", errorMsg)
			errors = append(errors, errorMsg)
			continue
		}

		exported++
	}

	log.Printf("✅ ExportDesign: design %d -> %s (exported=%d skipped=%d errors=%d)",
		design.ID, exportDir, exported, skipped, len(errors))
	return total, exported, skipped, errors, nil
}

// fetch downloads a hosted raster
func (s *ExportService) fetch(url string) ([]byte, error) {
	resp, err := s.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// urlExt guesses a file extension from a hosted URL, defaulting to .png
func urlExt(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.HasSuffix(lower, ".jpg"), strings.HasSuffix(lower, ".jpeg"):
		return ".jpg"
	case strings.HasSuffix(lower, ".webp"):
		return ".webp"
	default:
		return ".png"
	}
}
