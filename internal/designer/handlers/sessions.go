package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"flashing-designer/internal/designer/canvas"
	"flashing-designer/internal/designer/editor"
	"flashing-designer/internal/designer/geometry"
	"flashing-designer/internal/designer/gesture"
	"flashing-designer/internal/designer/models"
	"flashing-designer/internal/designer/parser"
	"flashing-designer/internal/designer/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// Session Handler
// ============================================================

type SessionHandler struct {
	sessions *service.SessionManager
}

func NewSessionHandler(sessions *service.SessionManager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type pointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type touchRequest struct {
	Kind    string          `json:"kind"`
	Touches []gesture.Touch `json:"touches"`
	// T is the event time in Unix milliseconds; zero means now.
	T int64 `json:"t"`
}

type valueRequest struct {
	Index int    `json:"index"`
	Value string `json:"value"`
}

type rotateRequest struct {
	Phase   string  `json:"phase"`
	DX      float64 `json:"dx"`
	Degrees float64 `json:"degrees"`
}

type metaRequest struct {
	Material  string            `json:"material"`
	Thickness float64           `json:"thickness"`
	Quantity  int               `json:"quantity"`
	LengthMm  float64           `json:"lengthMm"`
	ColorSide *models.ColorSide `json:"colorSide"`
	StartFold *models.EndFold   `json:"startFold"`
	EndFold   *models.EndFold   `json:"endFold"`
}

type commentRequest struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type importRequest struct {
	Data string `json:"data"`
}

type inputResponse struct {
	Result canvas.Result `json:"result"`
	State  service.State `json:"state"`
}

// Open starts a session on the draft order.
func (h *SessionHandler) Open(c fiber.Ctx) error {
	token, ws, err := h.sessions.Issue(c.Context())
	if err != nil {
		log.Errorf("[DESIGNER] open session: %v", err)
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": "failed to open draft order"})
	}
	c.Locals("session", token)
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"token": token,
		"state": ws.State(),
	})
}

func (h *SessionHandler) Close(c fiber.Ctx) error {
	if !h.sessions.Close(c.Params("token")) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown session"})
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *SessionHandler) State(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	return c.JSON(ws.State())
}

// Refresh reloads the profile list from the store.
func (h *SessionHandler) Refresh(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	_ = ws.Load(c.Context())
	return c.JSON(ws.State())
}

func (h *SessionHandler) Frame(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	return c.JSON(ws.State().Frame)
}

// ============================================================
// Input
// ============================================================

func (h *SessionHandler) Click(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	var req pointRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badJSON(c)
	}

	var res canvas.Result
	err := ws.WithCanvas(func(cv *canvas.Canvas) error {
		var err error
		res, err = cv.Click(geometry.Point{X: req.X, Y: req.Y})
		return err
	})
	if err != nil {
		return editFailure(c, ws, err)
	}
	return c.JSON(inputResponse{Result: res, State: ws.State()})
}

func (h *SessionHandler) Touch(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	var req touchRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badJSON(c)
	}
	kind, ok := touchKinds[req.Kind]
	if !ok {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "unknown touch kind"})
	}
	at := time.Now()
	if req.T > 0 {
		at = time.UnixMilli(req.T)
	}

	var res canvas.Result
	err := ws.WithCanvas(func(cv *canvas.Canvas) error {
		var err error
		res, err = cv.HandleTouch(gesture.Event{Kind: kind, Touches: req.Touches, At: at})
		return err
	})
	if err != nil {
		return editFailure(c, ws, err)
	}
	return c.JSON(inputResponse{Result: res, State: ws.State()})
}

var touchKinds = map[string]gesture.EventKind{
	"start":  gesture.TouchStart,
	"move":   gesture.TouchMove,
	"end":    gesture.TouchEnd,
	"cancel": gesture.TouchCancel,
}

// ============================================================
// Edits
// ============================================================

// Dimension applies the edit-dimension dialog. The value is the raw text.
func (h *SessionHandler) Dimension(c fiber.Ctx) error {
	var req valueRequest
	return h.edit(c, &req, func(cv *canvas.Canvas) error {
		return cv.Editor().EditDimensionText(req.Index, req.Value)
	})
}

func (h *SessionHandler) Angle(c fiber.Ctx) error {
	var req valueRequest
	return h.edit(c, &req, func(cv *canvas.Canvas) error {
		return cv.Editor().EditAngleText(req.Index, req.Value)
	})
}

// Rotate drives the rotation gesture (phase begin/update/end/cancel with dx
// in pixels) or, without a phase, turns the profile by degrees.
func (h *SessionHandler) Rotate(c fiber.Ctx) error {
	var req rotateRequest
	return h.edit(c, &req, func(cv *canvas.Canvas) error {
		ed := cv.Editor()
		switch req.Phase {
		case "":
			ed.RotateBy(req.Degrees)
		case "begin":
			ed.BeginRotation()
		case "update":
			return ed.UpdateRotation(req.DX)
		case "end":
			_, err := ed.EndRotation()
			return err
		case "cancel":
			return ed.CancelRotation()
		default:
			return errUnknownPhase
		}
		return nil
	})
}

func (h *SessionHandler) Undo(c fiber.Ctx) error {
	return h.edit(c, nil, func(cv *canvas.Canvas) error {
		cv.Editor().Undo()
		return nil
	})
}

func (h *SessionHandler) Clear(c fiber.Ctx) error {
	return h.edit(c, nil, func(cv *canvas.Canvas) error {
		cv.Editor().Clear()
		return nil
	})
}

func (h *SessionHandler) Meta(c fiber.Ctx) error {
	var req metaRequest
	return h.edit(c, &req, func(cv *canvas.Canvas) error {
		ed := cv.Editor()
		ed.SetMeta(req.Material, req.Thickness, req.Quantity, req.LengthMm)
		if req.ColorSide != nil && ed.Profile().ColorSide != *req.ColorSide {
			ed.ToggleColorSide(*req.ColorSide)
		}
		if req.StartFold != nil {
			ed.SetFold(true, *req.StartFold)
		}
		if req.EndFold != nil {
			ed.SetFold(false, *req.EndFold)
		}
		return nil
	})
}

func (h *SessionHandler) Comment(c fiber.Ctx) error {
	var req commentRequest
	return h.edit(c, &req, func(cv *canvas.Canvas) error {
		cv.Editor().AddComment(req.Text, geometry.Point{X: req.X, Y: req.Y})
		return nil
	})
}

// Import replaces the slot's points with the first shape of an SVG document
// or path string.
func (h *SessionHandler) Import(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	var req importRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return badJSON(c)
	}
	shapes, err := parser.Import(req.Data)
	if err != nil {
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	}
	ws.Import(shapes[0].Points)
	return c.JSON(ws.State())
}

// ============================================================
// Profile list
// ============================================================

func (h *SessionHandler) Done(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	saved, err := ws.Done(c.Context())
	if err != nil {
		return editFailure(c, ws, err)
	}
	return c.JSON(fiber.Map{"saved": saved, "state": ws.State()})
}

func (h *SessionHandler) EditProfile(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	if err := ws.Edit(c.Params("pid")); err != nil {
		return editFailure(c, ws, err)
	}
	return c.JSON(ws.State())
}

// NewProfile discards the slot.
func (h *SessionHandler) NewProfile(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	ws.New()
	return c.JSON(ws.State())
}

func (h *SessionHandler) DeleteProfile(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	if err := ws.Delete(c.Context(), c.Params("pid")); err != nil {
		return editFailure(c, ws, err)
	}
	return c.JSON(ws.State())
}

func (h *SessionHandler) Cutlist(c fiber.Ctx) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	return c.JSON(ws.Cutlist())
}

// ============================================================
// Helpers
// ============================================================

var errUnknownPhase = errors.New("unknown rotation phase")

func (h *SessionHandler) workspace(c fiber.Ctx) (*service.Workspace, bool) {
	token := c.Params("token")
	c.Locals("session", token)
	return h.sessions.Resolve(token)
}

// edit decodes req (when non-nil), runs fn on the slot and answers with the
// new state.
func (h *SessionHandler) edit(c fiber.Ctx, req any, fn func(cv *canvas.Canvas) error) error {
	ws, ok := h.workspace(c)
	if !ok {
		return unknownSession(c)
	}
	if req != nil {
		if err := json.Unmarshal(c.Body(), req); err != nil {
			return badJSON(c)
		}
	}
	if err := ws.WithCanvas(fn); err != nil {
		return editFailure(c, ws, err)
	}
	return c.JSON(ws.State())
}

// editFailure maps domain errors onto HTTP. Degenerate geometry is a silent
// no-op and answers with the unchanged state.
func editFailure(c fiber.Ctx, ws *service.Workspace, err error) error {
	switch {
	case errors.Is(err, editor.ErrDegenerateSegment), errors.Is(err, editor.ErrDuplicatePoint):
		return c.JSON(ws.State())
	case errors.Is(err, editor.ErrInvalidDimension),
		errors.Is(err, editor.ErrInvalidAngle),
		errors.Is(err, editor.ErrNotNumeric),
		errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, editor.ErrRotationInactive),
		errors.Is(err, service.ErrIncompleteProfile),
		errors.Is(err, errUnknownPhase):
		return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProfileNotFound):
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrSaveFailed), errors.Is(err, service.ErrDeleteFailed):
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{"error": err.Error(), "state": ws.State()})
	}
	log.Errorf("[DESIGNER] unexpected error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
}

func unknownSession(c fiber.Ctx) error {
	return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "unknown session"})
}

func badJSON(c fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid json"})
}
