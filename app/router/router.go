package router

import (
	"net/http"
	"strconv"
	"strings"

	"hypewear-studio/app/controller"
)

type Controllers struct {
	Studio  *controller.StudioController
	Catalog *controller.CatalogController
	Cart    *controller.CartController
	Admin   *controller.AdminDesignController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(controllers *Controllers) {
	// Ping endpoint
	http.HandleFunc("/ping", pingHandler)

	// Product catalog routes
	http.HandleFunc("/products", controllers.Catalog.ListProducts)
	http.HandleFunc("/products/", controllers.Catalog.GetProduct)

	// Studio session routes
	http.HandleFunc("/studio/sessions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Studio.CreateSession(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	http.HandleFunc("/studio/sessions/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/studio/sessions/")
		parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
		if len(parts) == 0 || parts[0] == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		sessionID := parts[0]

		// GET/DELETE /studio/sessions/{id}
		if len(parts) == 1 {
			switch r.Method {
			case http.MethodGet:
				controllers.Studio.GetSession(w, r, sessionID)
			case http.MethodDelete:
				controllers.Studio.CloseSession(w, r, sessionID)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch parts[1] {
		case "elements":
			// POST /studio/sessions/{id}/elements/images
			if len(parts) == 3 && parts[2] == "images" && r.Method == http.MethodPost {
				controllers.Studio.AddImages(w, r, sessionID)
				return
			}
			// POST /studio/sessions/{id}/elements/text
			if len(parts) == 3 && parts[2] == "text" && r.Method == http.MethodPost {
				controllers.Studio.AddText(w, r, sessionID)
				return
			}
			// PATCH/DELETE /studio/sessions/{id}/elements/{elementId}
			if len(parts) == 3 {
				switch r.Method {
				case http.MethodPatch:
					controllers.Studio.UpdateElement(w, r, sessionID, parts[2])
				case http.MethodDelete:
					controllers.Studio.RemoveElement(w, r, sessionID, parts[2])
				default:
					http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
				}
				return
			}
			// POST /studio/sessions/{id}/elements/{elementId}/scale|rotate
			if len(parts) == 4 && r.Method == http.MethodPost {
				switch parts[3] {
				case "scale":
					controllers.Studio.ScaleElement(w, r, sessionID, parts[2])
					return
				case "rotate":
					controllers.Studio.RotateElement(w, r, sessionID, parts[2])
					return
				}
			}
		case "drag":
			// POST /studio/sessions/{id}/drag/start|move|end
			if len(parts) == 3 && r.Method == http.MethodPost {
				switch parts[2] {
				case "start":
					controllers.Studio.DragStart(w, r, sessionID)
					return
				case "move":
					controllers.Studio.DragMove(w, r, sessionID)
					return
				case "end":
					controllers.Studio.DragEnd(w, r, sessionID)
					return
				}
			}
		case "select":
			if r.Method == http.MethodPost {
				controllers.Studio.Select(w, r, sessionID)
				return
			}
		case "side":
			if r.Method == http.MethodPost {
				controllers.Studio.SwitchSide(w, r, sessionID)
				return
			}
		case "clear":
			if r.Method == http.MethodPost {
				controllers.Studio.Clear(w, r, sessionID)
				return
			}
		case "preview":
			if r.Method == http.MethodGet {
				controllers.Studio.Preview(w, r, sessionID)
				return
			}
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Cart routes
	http.HandleFunc("/carts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			controllers.Cart.CreateCart(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	http.HandleFunc("/carts/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/carts/")
		parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
		if len(parts) == 0 || parts[0] == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		cartID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.Error(w, "Invalid cart id", http.StatusBadRequest)
			return
		}

		// GET/DELETE /carts/{id}
		if len(parts) == 1 {
			switch r.Method {
			case http.MethodGet:
				controllers.Cart.GetCart(w, r, cartID)
			case http.MethodDelete:
				controllers.Cart.ClearCart(w, r, cartID)
			default:
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch parts[1] {
		case "items":
			// POST /carts/{id}/items
			if len(parts) == 2 && r.Method == http.MethodPost {
				controllers.Cart.AddItem(w, r, cartID)
				return
			}
			// DELETE /carts/{id}/items/{lineId}
			if len(parts) == 3 && r.Method == http.MethodDelete {
				lineID, err := strconv.ParseInt(parts[2], 10, 64)
				if err != nil {
					http.Error(w, "Invalid line id", http.StatusBadRequest)
					return
				}
				controllers.Cart.RemoveItem(w, r, cartID, lineID)
				return
			}
		case "custom":
			if r.Method == http.MethodPost {
				controllers.Cart.AddCustomDesign(w, r, cartID)
				return
			}
		case "checkout":
			if r.Method == http.MethodPost {
				controllers.Cart.Checkout(w, r, cartID)
				return
			}
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Admin design routes
	http.HandleFunc("/admin/designs", func(w http.ResponseWriter, r *http.Request) {
		controllers.Admin.ListDesigns(w, r)
	})

	http.HandleFunc("/admin/designs/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/admin/designs/")
		parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
		if len(parts) == 0 || parts[0] == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		designID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil {
			http.Error(w, "Invalid design id", http.StatusBadRequest)
			return
		}

		// GET /admin/designs/{id}
		if len(parts) == 1 {
			if r.Method == http.MethodGet {
				controllers.Admin.GetDesign(w, r, designID)
			} else {
				http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			}
			return
		}

		switch parts[1] {
		case "image":
			if r.Method == http.MethodGet {
				controllers.Admin.GetDesignImage(w, r, designID)
				return
			}
		case "print":
			// GET /admin/designs/{id}/print/render (blueprint HTML for Chrome)
			if len(parts) == 3 && parts[2] == "render" && r.Method == http.MethodGet {
				controllers.Admin.RenderPrintBlueprint(w, r, designID)
				return
			}
			if len(parts) == 2 && r.Method == http.MethodGet {
				controllers.Admin.PrintDesign(w, r, designID)
				return
			}
		case "quote":
			if r.Method == http.MethodGet {
				controllers.Admin.QuoteDesign(w, r, designID)
				return
			}
		case "export":
			if r.Method == http.MethodPost {
				controllers.Admin.ExportDesign(w, r, designID)
				return
			}
		}

		http.Error(w, "Not found", http.StatusNotFound)
	})
}
