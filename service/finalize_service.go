package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"hypewear-studio/canvas"
	"hypewear-studio/models"

	"golang.org/x/sync/errgroup"
)

// FinalizeService runs the order-submission step that replaces inline-encoded
// raster data with hosted storage URLs: every image element still carrying a
// data URI is uploaded, as are the two preview snapshots. All-or-nothing per
// design: if any upload fails the whole finalization fails and nothing is
// persisted. Uploads run concurrently; upload order does not matter.
type FinalizeService struct {
	storage StorageServiceInterface
}

// NewFinalizeService creates a new FinalizeService
func NewFinalizeService(storage StorageServiceInterface) *FinalizeService {
	return &FinalizeService{storage: storage}
}

// Ensure FinalizeService implements FinalizeServiceInterface
var _ FinalizeServiceInterface = (*FinalizeService)(nil)

// FinalizeDesign uploads all inline assets of a packaged design and returns
// the persisted form with hosted URLs. The input snapshot is not mutated.
func (s *FinalizeService) FinalizeDesign(ctx context.Context, snapshot *models.CartCustomDesign) (*models.CustomDesign, error) {
	design := snapshot.Design.Clone()
	canvas.Repair(design.Elements)

	log.Printf("📦 FinalizeDesign: finalizing design with %d element(s)", len(design.Elements))

	g, gctx := errgroup.WithContext(ctx)

	// Element uploads write to distinct indices, preview uploads to distinct
	// variables, so the goroutines share nothing but the errgroup.
	for i := range design.Elements {
		if !design.Elements[i].IsInline() {
			continue
		}
		i := i
		g.Go(func() error {
			el := &design.Elements[i]
			data, err := el.InlineData()
			if err != nil {
				return &models.UploadError{Name: el.ID, Err: err}
			}
			name := fmt.Sprintf("design-layer-%s%s", el.ID, rasterExt(el.Content))
			url, err := s.storage.Upload(gctx, data, name)
			if err != nil {
				return err
			}
			el.Content = url
			return nil
		})
	}

	var frontURL, backURL string
	g.Go(func() error {
		data, err := decodeDataURI(snapshot.FrontPreview)
		if err != nil {
			return &models.UploadError{Name: "front preview", Err: err}
		}
		url, err := s.storage.Upload(gctx, data, "design-front.png")
		if err != nil {
			return err
		}
		frontURL = url
		return nil
	})
	if snapshot.BackPreview != "" {
		g.Go(func() error {
			data, err := decodeDataURI(snapshot.BackPreview)
			if err != nil {
				return &models.UploadError{Name: "back preview", Err: err}
			}
			url, err := s.storage.Upload(gctx, data, "design-back.png")
			if err != nil {
				return err
			}
			backURL = url
			return nil
		})
	}

	// Join semantics: the enclosing order submission waits for every upload
	if err := g.Wait(); err != nil {
		log.Printf("❌ FinalizeDesign: aborting, upload failed: %v", err)
		return nil, err
	}

	log.Printf("✅ FinalizeDesign: all uploads complete")
	return &models.CustomDesign{
		FrontImageURL: frontURL,
		BackImageURL:  backURL,
		BaseColor:     design.BaseColor,
		Size:          design.Size,
		Notes:         design.Notes,
		Elements:      design.Elements,
	}, nil
}

// rasterExt picks a file extension from a data URI's MIME prefix
func rasterExt(content string) string {
	switch {
	case strings.HasPrefix(content, "data:image/jpeg"):
		return ".jpg"
	case strings.HasPrefix(content, "data:image/webp"):
		return ".webp"
	default:
		return ".png"
	}
}

// decodeDataURI decodes the base64 payload of a data URI
func decodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ";base64,")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	return base64.StdEncoding.DecodeString(uri[idx+len(";base64,"):])
}
