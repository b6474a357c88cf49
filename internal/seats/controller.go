package seats

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"seatboard/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	store  Store
	editor *Editor
}

func NewController(store Store, editor *Editor) *Controller {
	return &Controller{store: store, editor: editor}
}

// GRID / RECORDS

func (c *Controller) GetGrid(ctx *gin.Context) {
	// "today" moves, so the grid is derived fresh on every request.
	grid := c.store.Grid(ctx.Request.Context(), time.Now())
	response.RespondJSON(ctx, "success", http.StatusOK, "Grid retrieved successfully", grid, nil)
}

func (c *Controller) ListSeats(ctx *gin.Context) {
	seats := c.store.GetAll(ctx.Request.Context())
	response.RespondJSON(ctx, "success", http.StatusOK, "Seats retrieved successfully", seats, nil)
}

func (c *Controller) GetSeat(ctx *gin.Context) {
	seatID, ok := seatIDParam(ctx)
	if !ok {
		return
	}

	seat, err := c.store.Get(ctx.Request.Context(), seatID)
	if err != nil {
		respondStoreError(ctx, "Failed to get seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat retrieved successfully", seat, nil)
}

// SaveSeat is the direct full-form save: every editable field is
// overwritten with the request body, unset fields included.
func (c *Controller) SaveSeat(ctx *gin.Context) {
	seatID, ok := seatIDParam(ctx)
	if !ok {
		return
	}

	var req SaveSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.store.Upsert(ctx.Request.Context(), seatID, Fields{
		Name:            &req.Name,
		Affiliation:     &req.Affiliation,
		EntryDate:       &req.EntryDate,
		ExitDate:        &req.ExitDate,
		Contact:         &req.Contact,
		GuardianContact: &req.GuardianContact,
	})
	if err != nil {
		respondStoreError(ctx, "Failed to save seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat saved successfully", seat, nil)
}

// ChangeStatus toggles the occupancy status, independent of any open
// edit session.
func (c *Controller) ChangeStatus(ctx *gin.Context) {
	seatID, ok := seatIDParam(ctx)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	seat, err := c.store.SetStatus(ctx.Request.Context(), seatID, *req.Status)
	if err != nil {
		respondStoreError(ctx, "Failed to change status", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Status changed successfully", seat, nil)
}

// EDIT SESSION

func (c *Controller) SelectSeat(ctx *gin.Context) {
	seatID, ok := seatIDParam(ctx)
	if !ok {
		return
	}

	form, err := c.editor.Select(ctx.Request.Context(), seatID)
	if err != nil {
		respondStoreError(ctx, "Failed to select seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat selected for editing",
		EditorStateResponse{SeatID: seatID, Form: form}, nil)
}

func (c *Controller) GetEditor(ctx *gin.Context) {
	seatID, form, active := c.editor.Current()
	if !active {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "No seat is being edited", nil, ErrNotEditing.Error())
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Edit session retrieved",
		EditorStateResponse{SeatID: seatID, Form: form}, nil)
}

func (c *Controller) EditField(ctx *gin.Context) {
	var req EditFieldRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request data", nil, err.Error())
		return
	}

	if err := c.editor.EditField(req.Field, req.Value); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, ErrNotEditing) {
			status = http.StatusConflict
		}
		response.RespondJSON(ctx, "error", status, "Failed to edit field", nil, err.Error())
		return
	}

	seatID, form, _ := c.editor.Current()
	response.RespondJSON(ctx, "success", http.StatusOK, "Field updated",
		EditorStateResponse{SeatID: seatID, Form: form}, nil)
}

func (c *Controller) SaveEditor(ctx *gin.Context) {
	seat, err := c.editor.Save(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotEditing) {
			response.RespondJSON(ctx, "error", http.StatusConflict, "No seat is being edited", nil, err.Error())
			return
		}
		// The session stays open so the form can be re-shown.
		respondStoreError(ctx, "Failed to save seat", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Seat saved successfully", seat, nil)
}

func (c *Controller) CancelEditor(ctx *gin.Context) {
	if !c.editor.Cancel() {
		response.RespondJSON(ctx, "error", http.StatusConflict, "No seat is being edited", nil, ErrNotEditing.Error())
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Edit cancelled", nil, nil)
}

// helpers

func seatIDParam(ctx *gin.Context) (int, bool) {
	seatID, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Seat ID must be a number", nil, err.Error())
		return 0, false
	}
	return seatID, true
}

func respondStoreError(ctx *gin.Context, message string, err error) {
	status := http.StatusBadGateway // persistence failure
	switch {
	case errors.Is(err, ErrSeatNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrBadStatus):
		status = http.StatusBadRequest
	}
	response.RespondJSON(ctx, "error", status, message, nil, err.Error())
}
