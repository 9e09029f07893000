// Package pricing implements the quotation engine for custom garments.
// Custom cart lines stay at price 0 until manual quotation; this engine only
// produces the admin's suggested quote from a JSON configuration file.
package pricing

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"hypewear-studio/models"
	"hypewear-studio/utils"
)

// Config represents the quotation configuration structure
type Config struct {
	Currency      string           `json:"currency"`
	BaseBySize    map[string]int64 `json:"baseBySize"`    // garment base price per size token
	ImageLayerFee int64            `json:"imageLayerFee"` // per image layer
	TextLayerFee  int64            `json:"textLayerFee"`  // per text layer
	SideFee       int64            `json:"sideFee"`       // per printed side
}

// defaultConfig is used when no configuration file is provided.
// Amounts are atomic currency units.
func defaultConfig() *Config {
	return &Config{
		Currency: "USD",
		BaseBySize: map[string]int64{
			"XS": 2200, "S": 2200, "M": 2500, "L": 2500, "XL": 2800, "XXL": 3000,
		},
		ImageLayerFee: 800,
		TextLayerFee:  400,
		SideFee:       600,
	}
}

// QuoteLine is one component of a quotation breakdown
type QuoteLine struct {
	Label   string `json:"label"`
	Qty     int    `json:"qty"`
	Amount  int64  `json:"amount"`
	Display string `json:"display"`
}

// Quote is the complete quotation for one custom design
// Example:
//
//	{
//	  "currency": "USD",
//	  "lines": [
//	    {"label": "Base garment (M)", "qty": 1, "amount": 2500, "display": "$25.00"},
//	    {"label": "Image layers", "qty": 2, "amount": 1600, "display": "$16.00"}
//	  ],
//	  "total": 4100,
//	  "display": "$41.00"
//	}
type Quote struct {
	Currency string      `json:"currency"`
	Lines    []QuoteLine `json:"lines"`
	Total    int64       `json:"total"`
	Display  string      `json:"display"`
}

// Engine computes quotations based on the loaded configuration
type Engine struct {
	config *Config
}

var globalEngine *Engine

// Init loads the quotation configuration and sets the global engine.
// A missing or unreadable file falls back to the built-in defaults.
func Init(configPath string) {
	cfg := defaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			log.Printf("⚠️  pricing: could not read config %s, using defaults: %v", configPath, err)
		} else if err := json.Unmarshal(data, cfg); err != nil {
			log.Printf("⚠️  pricing: could not parse config %s, using defaults: %v", configPath, err)
			cfg = defaultConfig()
		} else {
			log.Printf("✅ pricing: loaded quotation config from %s", configPath)
		}
	}

	globalEngine = &Engine{config: cfg}
}

// GetEngine returns the global quotation engine (nil until Init is called)
func GetEngine() *Engine {
	return globalEngine
}

// NewEngine creates an engine with an explicit configuration
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = defaultConfig()
	}
	return &Engine{config: cfg}
}

// QuoteDesign computes the suggested quotation for a design: base garment by
// size, per-layer surcharges, and a print fee per side that carries elements.
func (e *Engine) QuoteDesign(state *models.DesignState) (*Quote, error) {
	base, ok := e.config.BaseBySize[state.Size]
	if !ok {
		return nil, &models.ValidationError{Field: "size", Reason: fmt.Sprintf("no base price for size %q", state.Size)}
	}

	quote := &Quote{Currency: e.config.Currency}
	addLine := func(label string, qty int, unit int64) {
		if qty == 0 {
			return
		}
		amount := int64(qty) * unit
		quote.Lines = append(quote.Lines, QuoteLine{
			Label:   label,
			Qty:     qty,
			Amount:  amount,
			Display: utils.FormatAmount(amount),
		})
		quote.Total += amount
	}

	addLine(fmt.Sprintf("Base garment (%s)", state.Size), 1, base)

	images, texts := 0, 0
	for _, el := range state.Elements {
		switch el.Type {
		case models.KindImage:
			images++
		case models.KindText:
			texts++
		}
	}
	addLine("Image layers", images, e.config.ImageLayerFee)
	addLine("Text layers", texts, e.config.TextLayerFee)

	sides := 0
	if state.HasElementsOnSide(models.SideFront) {
		sides++
	}
	if state.HasElementsOnSide(models.SideBack) {
		sides++
	}
	addLine("Printed sides", sides, e.config.SideFee)

	quote.Display = utils.FormatAmount(quote.Total)
	return quote, nil
}
