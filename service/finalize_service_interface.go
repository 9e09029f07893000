package service

import (
	"context"

	"hypewear-studio/models"
)

// FinalizeServiceInterface defines the contract for design finalization
type FinalizeServiceInterface interface {
	FinalizeDesign(ctx context.Context, snapshot *models.CartCustomDesign) (*models.CustomDesign, error)
}
