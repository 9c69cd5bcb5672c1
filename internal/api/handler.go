package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/export"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/service"
)

// Handler contains all HTTP handlers for the API.
//
// Design: single-user, single-session. One loaded project is shared by all
// requests; `mpcproject serve` is a local tool, not a multi-tenant server.
// All connected clients (browser tabs) see the same project.
type Handler struct {
	svc *service.ProjectService
}

// NewHandler creates a new handler around a loaded project service.
func NewHandler(svc *service.ProjectService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes sets up all API routes on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/project", h.GetProject)
	mux.HandleFunc("POST /api/v1/project/cards", h.AddCards)
	mux.HandleFunc("POST /api/v1/project/refresh", h.Refresh)
	mux.HandleFunc("PUT /api/v1/project/cardback", h.SetCardback)

	mux.HandleFunc("PATCH /api/v1/project/slots/{ref}/query", h.SetSlotQuery)
	mux.HandleFunc("PATCH /api/v1/project/slots/{ref}/image", h.SetSlotImage)
	mux.HandleFunc("POST /api/v1/project/slots/{ref}/toggle", h.ToggleSlot)
	mux.HandleFunc("DELETE /api/v1/project/slots/{ref}", h.DeleteSlot)

	mux.HandleFunc("POST /api/v1/project/import/csv", h.ImportCSV)
	mux.HandleFunc("POST /api/v1/project/import/xml", h.ImportXML)
	mux.HandleFunc("GET /api/v1/project/export/xml", h.ExportXML)
	mux.HandleFunc("GET /api/v1/project/export/decklist", h.ExportDecklist)

	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("PUT /api/v1/settings", h.UpdateSettings)

	mux.HandleFunc("GET /api/v1/diagnostics", h.GetDiagnostics)
}

// --- Project ---

// MemberResponse is one slot-face in API responses.
type MemberResponse struct {
	Query    string `json:"query,omitempty"`
	Image    string `json:"image,omitempty"`
	Selected bool   `json:"selected,omitempty"`
}

// SlotResponse is one slot in API responses.
type SlotResponse struct {
	Front *MemberResponse `json:"front,omitempty"`
	Back  *MemberResponse `json:"back,omitempty"`
}

// ProjectResponse is the JSON response for the full project state.
type ProjectResponse struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Size     int            `json:"size"`
	Bracket  int            `json:"bracket"`
	Cardback string         `json:"cardback,omitempty"`
	Slots    []SlotResponse `json:"slots"`
}

func toMemberResponse(m *model.ProjectMember) *MemberResponse {
	if m == nil {
		return nil
	}
	resp := &MemberResponse{Image: m.SelectedImage, Selected: m.Selected}
	if m.Query != nil {
		resp.Query = m.Query.Type.Prefix() + m.Query.Text
	}
	return resp
}

// GetProject returns the full project state.
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	proj := h.svc.Project()
	file := h.svc.File()

	slots := make([]SlotResponse, 0, proj.Size())
	for _, slot := range proj.Slots() {
		slots = append(slots, SlotResponse{
			Front: toMemberResponse(slot.Front),
			Back:  toMemberResponse(slot.Back),
		})
	}

	JSON(w, http.StatusOK, ProjectResponse{
		ID:       file.ID,
		Name:     file.Name,
		Size:     proj.Size(),
		Bracket:  export.BracketFor(proj.Size()),
		Cardback: proj.Cardback(),
		Slots:    slots,
	})
}

// AddCardsRequest is the body for adding cards from decklist text.
type AddCardsRequest struct {
	Text string `json:"text"`
}

// AddResponse reports how many slots an add or import produced.
type AddResponse struct {
	Added   int `json:"added"`
	Dropped int `json:"dropped,omitempty"`
}

// AddCards parses decklist text and appends the resulting slots.
func (h *Handler) AddCards(w http.ResponseWriter, r *http.Request) {
	var req AddCardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.Text == "" {
		BadRequest(w, "text is required")
		return
	}

	added, err := h.svc.AddFromText(r.Context(), req.Text)
	h.writeAddResult(w, added, err)
}

// writeAddResult renders an add/import outcome. Hitting the size cap is
// not a failure: the slots that fit were added and persisted, so report
// the drop count instead of an error.
func (h *Handler) writeAddResult(w http.ResponseWriter, added int, err error) {
	if err != nil {
		var capacity *apperr.CapacityExceededError
		if !errors.As(err, &capacity) {
			Error(w, err)
			return
		}
		JSON(w, http.StatusOK, AddResponse{Added: added, Dropped: capacity.Dropped})
		return
	}
	JSON(w, http.StatusOK, AddResponse{Added: added})
}

// Refresh refetches all search results and revalidates selections.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Refresh(r.Context()); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetCardbackRequest is the body for changing the project cardback.
type SetCardbackRequest struct {
	Identifier string `json:"identifier"`
}

// SetCardback changes the project-wide cardback.
func (h *Handler) SetCardback(w http.ResponseWriter, r *http.Request) {
	var req SetCardbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if req.Identifier == "" {
		BadRequest(w, "identifier is required")
		return
	}
	if err := h.svc.SetCardback(req.Identifier); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"cardback": req.Identifier})
}

// --- Slots ---

// SetSlotQueryRequest is the body for changing a member's query.
type SetSlotQueryRequest struct {
	Query string `json:"query"`
}

// SetSlotQuery replaces the query of the referenced member.
func (h *Handler) SetSlotQuery(w http.ResponseWriter, r *http.Request) {
	var req SetSlotQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if err := h.svc.SetQuery(r.Context(), r.PathValue("ref"), req.Query); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// SetSlotImageRequest is the body for pinning a member's image.
type SetSlotImageRequest struct {
	Identifier string `json:"identifier"`
}

// SetSlotImage pins an exact image on the referenced member.
func (h *Handler) SetSlotImage(w http.ResponseWriter, r *http.Request) {
	var req SetSlotImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if err := h.svc.SetImage(r.PathValue("ref"), req.Identifier); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ToggleSlot flips the multi-select flag of the referenced member.
func (h *Handler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ToggleSelection(r.PathValue("ref")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteSlot removes the referenced slot.
func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSlot(r.PathValue("ref")); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- Import / export ---

// ImportCSV appends slots parsed from a CSV decklist body.
func (h *Handler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		BadRequest(w, "failed to read request body")
		return
	}
	added, err := h.svc.ImportCSV(r.Context(), data)
	h.writeAddResult(w, added, err)
}

// ImportXML appends slots parsed from an XML order document body.
func (h *Handler) ImportXML(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		BadRequest(w, "failed to read request body")
		return
	}
	added, err := h.svc.ImportXML(r.Context(), data)
	h.writeAddResult(w, added, err)
}

// ExportXML renders the project as an XML order document.
func (h *Handler) ExportXML(w http.ResponseWriter, r *http.Request) {
	details := export.OrderDetails{
		Stock: r.URL.Query().Get("stock"),
		Foil:  r.URL.Query().Get("foil") == "true",
	}
	out, err := h.svc.ExportXML(r.Context(), details)
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Write(out)
}

// ExportDecklist renders the project as decklist text.
func (h *Handler) ExportDecklist(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ExportDecklist(r.Context())
	if err != nil {
		Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, out)
}

// --- Settings ---

// GetSettings returns the active search settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.svc.Settings())
}

// UpdateSettings swaps in new search settings. Results are refetched and
// every selection revalidated before anything is persisted.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings model.SearchSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		BadRequest(w, "invalid request body")
		return
	}
	if err := h.svc.UpdateSettings(r.Context(), settings); err != nil {
		Error(w, err)
		return
	}
	JSON(w, http.StatusOK, h.svc.Settings())
}

// --- Diagnostics ---

// DiagnosticsResponse reports invalidated selections.
type DiagnosticsResponse struct {
	InvalidIdentifiers []model.InvalidIdentifierRecord `json:"invalid_identifiers"`
}

// GetDiagnostics returns the records of selections invalidated by repair.
func (h *Handler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	records := h.svc.Reconciler().InvalidIdentifiers()
	if records == nil {
		records = []model.InvalidIdentifierRecord{}
	}
	JSON(w, http.StatusOK, DiagnosticsResponse{InvalidIdentifiers: records})
}
