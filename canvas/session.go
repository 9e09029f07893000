package canvas

import (
	"log"

	"hypewear-studio/models"
)

// Mode is the interaction state of a composition session
type Mode string

const (
	ModeIdle     Mode = "idle"     // no element selected
	ModeSelected Mode = "selected" // exactly one element selected
	ModeDragging Mode = "dragging" // selected element actively being moved
)

// UploadedFile is one raster file submitted to the studio in a batch upload
type UploadedFile struct {
	Name string
	Data []byte
}

// FileError reports a single rejected file from a batch upload. A batch is
// not all-or-nothing: valid files still become elements.
type FileError struct {
	Name string `json:"name"`
	Err  string `json:"error"`
}

// TextPatch carries partial updates for a text element; nil fields are left
// unchanged. Changing font or color only affects the one patched element.
type TextPatch struct {
	Content    *string `json:"content,omitempty"`
	FontFamily *string `json:"fontFamily,omitempty"`
	Color      *string `json:"color,omitempty"`
}

// Session is one interactive editing session: a design state plus interaction
// bookkeeping. At most one element is selected and at most one is being
// dragged at any time; both are session-scoped invariants enforced here, not
// by locks, since exactly one user drives one session. Sessions are ephemeral and
// never persisted; the design state is snapshotted (copied) at cart packaging.
type Session struct {
	state      models.DesignState
	activeSide models.Side
	selectedID string
	drag       *Drag
}

// NewSession opens an empty session on the front side
func NewSession() *Session {
	return &Session{activeSide: models.SideFront}
}

// Mode returns the current interaction state
func (s *Session) Mode() Mode {
	switch {
	case s.drag != nil:
		return ModeDragging
	case s.selectedID != "":
		return ModeSelected
	default:
		return ModeIdle
	}
}

// ActiveSide returns the garment face currently being edited
func (s *Session) ActiveSide() models.Side { return s.activeSide }

// SelectedID returns the id of the selected element, or "" when idle
func (s *Session) SelectedID() string { return s.selectedID }

// Elements returns all elements across both sides, in z-order
func (s *Session) Elements() []models.DesignElement {
	out := make([]models.DesignElement, len(s.state.Elements))
	copy(out, s.state.Elements)
	return out
}

// VisibleElements returns the elements on the active side, in z-order.
// Elements on the inactive side remain in the model, simply not rendered.
func (s *Session) VisibleElements() []models.DesignElement {
	return s.state.ElementsOnSide(s.activeSide)
}

// SetGarment records the base garment attributes chosen by the customer
func (s *Session) SetGarment(baseColor, size, notes string) {
	s.state.BaseColor = baseColor
	s.state.Size = size
	s.state.Notes = notes
}

// Snapshot returns an immutable copy of the design state for cart packaging.
// Later edits in the session do not retroactively alter the snapshot.
func (s *Session) Snapshot() *models.DesignState {
	return s.state.Clone()
}

// AddImages validates and appends one image element per valid file to the
// active side. Invalid files (wrong type or >2MB) are skipped individually
// with a reported error per offending file. The last-added element becomes
// selected. Decodes may run concurrently upstream; elements land here in
// submission order.
func (s *Session) AddImages(files []UploadedFile) ([]models.DesignElement, []FileError) {
	var added []models.DesignElement
	var fileErrors []FileError

	for _, f := range files {
		el, err := models.NewImageElement(f.Name, f.Data, s.activeSide)
		if err != nil {
			log.Printf("❌ AddImages: rejected %s: %v", f.Name, err)
			fileErrors = append(fileErrors, FileError{Name: f.Name, Err: err.Error()})
			continue
		}
		s.state.Elements = append(s.state.Elements, *el)
		s.selectedID = el.ID
		added = append(added, *el)
	}

	if len(added) > 0 {
		Repair(s.state.Elements)
		log.Printf("✅ AddImages: added %d element(s), rejected %d", len(added), len(fileErrors))
	}
	return added, fileErrors
}

// AddText appends a placeholder text element to the active side and selects it
func (s *Session) AddText() models.DesignElement {
	el := models.NewTextElement(s.activeSide)
	s.state.Elements = append(s.state.Elements, *el)
	s.selectedID = el.ID
	Repair(s.state.Elements)
	return *el
}

// find returns the index of an element by id, or -1
func (s *Session) find(id string) int {
	for i := range s.state.Elements {
		if s.state.Elements[i].ID == id {
			return i
		}
	}
	return -1
}

// Element returns an element by id
func (s *Session) Element(id string) (models.DesignElement, bool) {
	if i := s.find(id); i >= 0 {
		return s.state.Elements[i], true
	}
	return models.DesignElement{}, false
}

// Select marks one element as selected. Selecting "" (empty canvas click)
// deselects. Unknown ids are a no-op: the session may race with a deletion.
func (s *Session) Select(id string) {
	if id == "" {
		s.Deselect()
		return
	}
	if i := s.find(id); i >= 0 && s.state.Elements[i].Side == s.activeSide {
		s.selectedID = id
	}
}

// Deselect returns the session to idle; an in-flight drag is discarded
func (s *Session) Deselect() {
	s.selectedID = ""
	s.drag = nil
}

// SwitchSide changes the garment face being edited. Always deselects; the
// visible element list is filtered to the new side.
func (s *Session) SwitchSide(side models.Side) {
	if side != models.SideFront && side != models.SideBack {
		return
	}
	s.activeSide = side
	s.Deselect()
}

// UpdateText merges partial text fields into the element by id. Unknown ids
// and non-text elements are a no-op (not an error).
func (s *Session) UpdateText(id string, patch TextPatch) {
	i := s.find(id)
	if i < 0 || s.state.Elements[i].Type != models.KindText {
		return
	}
	if patch.Content != nil {
		s.state.Elements[i].Content = *patch.Content
	}
	if patch.FontFamily != nil {
		s.state.Elements[i].FontFamily = *patch.FontFamily
	}
	if patch.Color != nil {
		s.state.Elements[i].Color = *patch.Color
	}
}

// Remove deletes an element by id. Clears selection (and any drag) if the
// removed element was selected. Unknown ids are a no-op.
func (s *Session) Remove(id string) {
	i := s.find(id)
	if i < 0 {
		return
	}
	s.state.Elements = append(s.state.Elements[:i], s.state.Elements[i+1:]...)
	if s.selectedID == id {
		s.Deselect()
	}
	Repair(s.state.Elements)
}

// Clear removes every element across both sides and resets selection
func (s *Session) Clear() {
	s.state.Elements = nil
	s.Deselect()
	Repair(s.state.Elements)
}

// StartDrag begins a drag on an element: records the pointer's screen
// coordinates and the element's current position as the drag origin, and
// selects the element. Unknown ids and elements on the inactive side no-op.
func (s *Session) StartDrag(id string, pointerX, pointerY float64) {
	i := s.find(id)
	if i < 0 || s.state.Elements[i].Side != s.activeSide {
		return
	}
	s.selectedID = id
	s.drag = &Drag{
		ElementID: id,
		StartX:    pointerX,
		StartY:    pointerY,
		OriginX:   s.state.Elements[i].X,
		OriginY:   s.state.Elements[i].Y,
	}
}

// DragMove updates the dragged element's position from the current pointer
// location and the live surface geometry. Only the one dragged element is
// touched. Position is clamped to [0,100] on every intermediate step, never
// momentarily out of bounds in stored state. No-op when not dragging.
func (s *Session) DragMove(pointerX, pointerY float64, surface Surface) {
	if s.drag == nil {
		return
	}
	i := s.find(s.drag.ElementID)
	if i < 0 {
		// element deleted mid-drag; terminate the drag
		s.drag = nil
		return
	}
	x, y := s.drag.Move(pointerX, pointerY, surface)
	s.state.Elements[i].X = x
	s.state.Elements[i].Y = y
}

// EndDrag terminates the drag session; the element stays selected.
// No momentum or inertia.
func (s *Session) EndDrag() {
	s.drag = nil
}

// StepScale applies one scale action (±0.1, clamped to [0.3, 3.0]) to the
// element by id. Unknown ids are a no-op.
func (s *Session) StepScale(id string, direction int) {
	if i := s.find(id); i >= 0 {
		s.state.Elements[i].Scale = StepScale(s.state.Elements[i].Scale, direction)
	}
}

// StepRotate applies one rotate action (±15°, unbounded) to the element by id
func (s *Session) StepRotate(id string, direction int) {
	if i := s.find(id); i >= 0 {
		s.state.Elements[i].Rotate = StepRotate(s.state.Elements[i].Rotate, direction)
	}
}
