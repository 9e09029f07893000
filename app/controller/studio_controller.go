package controller

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"hypewear-studio/canvas"
	"hypewear-studio/models"
	"hypewear-studio/service"
)

// StudioController handles HTTP requests for interactive composition sessions
type StudioController struct {
	studio   *service.StudioService
	renderer service.DesignRendererInterface
}

// NewStudioController creates a new StudioController
func NewStudioController(studio *service.StudioService, renderer service.DesignRendererInterface) *StudioController {
	return &StudioController{
		studio:   studio,
		renderer: renderer,
	}
}

// sessionResponse is the session state returned to the studio frontend
type sessionResponse struct {
	SessionID         string                 `json:"sessionId"`
	Mode              canvas.Mode            `json:"mode"`
	ActiveSide        models.Side            `json:"activeSide"`
	SelectedElementID string                 `json:"selectedElementId,omitempty"`
	Elements          []models.DesignElement `json:"elements"`
	VisibleElements   []models.DesignElement `json:"visibleElements"`
}

func (c *StudioController) sessionState(id string) (*sessionResponse, error) {
	var resp *sessionResponse
	err := c.studio.With(id, func(s *canvas.Session) {
		resp = &sessionResponse{
			SessionID:         id,
			Mode:              s.Mode(),
			ActiveSide:        s.ActiveSide(),
			SelectedElementID: s.SelectedID(),
			Elements:          s.Elements(),
			VisibleElements:   s.VisibleElements(),
		}
	})
	return resp, err
}

// respondSession writes the current session state (the frontend re-renders
// from this after every action)
func (c *StudioController) respondSession(w http.ResponseWriter, id string, status int) {
	resp, err := c.sessionState(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, resp)
}

// CreateSession handles POST /studio/sessions
func (c *StudioController) CreateSession(w http.ResponseWriter, r *http.Request) {
	id := c.studio.Open()
	c.respondSession(w, id, http.StatusCreated)
}

// GetSession handles GET /studio/sessions/{id}
func (c *StudioController) GetSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	c.respondSession(w, sessionID, http.StatusOK)
}

// CloseSession handles DELETE /studio/sessions/{id}
func (c *StudioController) CloseSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	c.studio.Close(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// AddImages handles POST /studio/sessions/{id}/elements/images
// Accepts multiple files in one multipart request; each valid file becomes
// one element on the active side and the last-added becomes selected.
// Invalid files are reported individually, not all-or-nothing.
func (c *StudioController) AddImages(w http.ResponseWriter, r *http.Request, sessionID string) {
	// 32MB in-memory cap for the whole multipart form
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	var files []canvas.UploadedFile
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to read file %s", header.Filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to read file %s", header.Filename), http.StatusBadRequest)
			return
		}
		files = append(files, canvas.UploadedFile{Name: header.Filename, Data: data})
	}

	if len(files) == 0 {
		http.Error(w, "No files provided", http.StatusBadRequest)
		return
	}

	var added []models.DesignElement
	var fileErrors []canvas.FileError
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		added, fileErrors = s.AddImages(files)
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// Every file invalid -> the whole batch failed
	status := http.StatusCreated
	if len(added) == 0 {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, struct {
		Added  []models.DesignElement `json:"added"`
		Errors []canvas.FileError     `json:"errors,omitempty"`
	}{Added: added, Errors: fileErrors})
}

// AddText handles POST /studio/sessions/{id}/elements/text
func (c *StudioController) AddText(w http.ResponseWriter, r *http.Request, sessionID string) {
	var el models.DesignElement
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		el = s.AddText()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, el)
}

// UpdateElement handles PATCH /studio/sessions/{id}/elements/{elementId}
// Merges partial text fields; unknown element ids are a no-op because the
// session may race with a deletion.
func (c *StudioController) UpdateElement(w http.ResponseWriter, r *http.Request, sessionID, elementID string) {
	var patch canvas.TextPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.UpdateText(elementID, patch)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// RemoveElement handles DELETE /studio/sessions/{id}/elements/{elementId}
func (c *StudioController) RemoveElement(w http.ResponseWriter, r *http.Request, sessionID, elementID string) {
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.Remove(elementID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// ScaleElement handles POST /studio/sessions/{id}/elements/{elementId}/scale
// Body: {"direction": 1} or {"direction": -1}
func (c *StudioController) ScaleElement(w http.ResponseWriter, r *http.Request, sessionID, elementID string) {
	var req struct {
		Direction int `json:"direction"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.StepScale(elementID, req.Direction)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// RotateElement handles POST /studio/sessions/{id}/elements/{elementId}/rotate
func (c *StudioController) RotateElement(w http.ResponseWriter, r *http.Request, sessionID, elementID string) {
	var req struct {
		Direction int `json:"direction"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.StepRotate(elementID, req.Direction)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// Select handles POST /studio/sessions/{id}/select
// Body: {"elementId": "..."}; empty id deselects (empty canvas click)
func (c *StudioController) Select(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		ElementID string `json:"elementId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.Select(req.ElementID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// SwitchSide handles POST /studio/sessions/{id}/side
// Body: {"side": "front"|"back"}; always deselects
func (c *StudioController) SwitchSide(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		Side models.Side `json:"side"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.SwitchSide(req.Side)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// Clear handles POST /studio/sessions/{id}/clear
func (c *StudioController) Clear(w http.ResponseWriter, r *http.Request, sessionID string) {
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.Clear()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// DragStart handles POST /studio/sessions/{id}/drag/start
// Body: {"elementId": "...", "pointerX": 412, "pointerY": 233}
func (c *StudioController) DragStart(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		ElementID string  `json:"elementId"`
		PointerX  float64 `json:"pointerX"`
		PointerY  float64 `json:"pointerY"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.StartDrag(req.ElementID, req.PointerX, req.PointerY)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// DragMove handles POST /studio/sessions/{id}/drag/move
// The surface size rides along on every move so container resizes mid-drag
// never desynchronize the cursor from the element.
// Body: {"pointerX": 420, "pointerY": 240, "surfaceWidth": 480, "surfaceHeight": 480}
func (c *StudioController) DragMove(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req struct {
		PointerX      float64 `json:"pointerX"`
		PointerY      float64 `json:"pointerY"`
		SurfaceWidth  float64 `json:"surfaceWidth"`
		SurfaceHeight float64 `json:"surfaceHeight"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.DragMove(req.PointerX, req.PointerY, canvas.Surface{Width: req.SurfaceWidth, Height: req.SurfaceHeight})
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// DragEnd handles POST /studio/sessions/{id}/drag/end
func (c *StudioController) DragEnd(w http.ResponseWriter, r *http.Request, sessionID string) {
	err := c.studio.With(sessionID, func(s *canvas.Session) {
		s.EndDrag()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	c.respondSession(w, sessionID, http.StatusOK)
}

// Preview handles GET /studio/sessions/{id}/preview?side=back&size=300
// Renders the live design at any requested surface size from the same stored
// model the cart and admin views use.
func (c *StudioController) Preview(w http.ResponseWriter, r *http.Request, sessionID string) {
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

	snapshot, err := c.studio.Snapshot(sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if snapshot.BaseColor == "" {
		snapshot.BaseColor = r.URL.Query().Get("baseColor")
	}

	png, err := c.renderer.RenderPNG(snapshot, showBack, size)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
