package service

import (
	"image"

	"hypewear-studio/models"
)

// DesignRendererInterface defines the contract for reproducible design rendering
type DesignRendererInterface interface {
	Render(state *models.DesignState, showBack bool, sizePx int) (image.Image, error)
	RenderPNG(state *models.DesignState, showBack bool, sizePx int) ([]byte, error)
}
