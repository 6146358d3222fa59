package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/services"
)

type KnockoutStageHandler struct {
	stageService services.KnockoutStageService
}

func NewKnockoutStageHandler(ks services.KnockoutStageService) *KnockoutStageHandler {
	return &KnockoutStageHandler{stageService: ks}
}

// readOptionalStage accepts an empty body as well as a stage object.
func readOptionalStage(w http.ResponseWriter, r *http.Request) (*knockoutStageRequest, error) {
	var req knockoutStageRequest
	if r.Body == nil || r.ContentLength == 0 {
		return &req, nil
	}
	if err := readJSON(w, r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		return nil, err
	}
	return &req, nil
}

// ListHandler handles GET /tournaments/{tournamentID}/events/{eventID}/knockoutStage.
func (h *KnockoutStageHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stages, err := h.stageService.ListKnockoutStages(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"knockout_stages": toKnockoutStageResponses(stages)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler handles POST /tournaments/{tournamentID}/events/{eventID}/knockoutStage.
func (h *KnockoutStageHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	req, err := readOptionalStage(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.EventID != 0 && req.EventID != eventID {
		mapServiceErrorToHTTP(w, r, services.ErrStageEventMismatch)
		return
	}

	stage, err := h.stageService.AddKnockoutStage(r.Context(), eventID, nil)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"knockout_stage": toKnockoutStageResponse(stage)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /tournaments/{tournamentID}/events/{eventID}/knockoutStage/{stageID}.
func (h *KnockoutStageHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "eventID", "stageID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stage, err := h.stageService.GetKnockoutStage(r.Context(), ids[1])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if stage.EventID != ids[0] {
		notFoundResponse(w, r, services.ErrKnockoutStageNotFound)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"knockout_stage": toKnockoutStageResponse(stage)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /tournaments/{tournamentID}/events/{eventID}/knockoutStage/{stageID}.
func (h *KnockoutStageHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "eventID", "stageID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	req, err := readOptionalStage(w, r)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	stage, err := h.stageService.UpdateKnockoutStage(r.Context(), ids[0], ids[1], &models.KnockoutStage{EventID: req.EventID})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"knockout_stage": toKnockoutStageResponse(stage)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}/events/{eventID}/knockoutStage/{stageID}.
func (h *KnockoutStageHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "eventID", "stageID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.stageService.DeleteKnockoutStage(r.Context(), ids[0], ids[1]); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
