package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/fencing-tournament/services"
)

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(es services.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

// ListHandler handles GET /tournaments/{tournamentID}/events.
func (h *EventHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	events, err := h.eventService.GetAllEventsByTournamentID(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": toEventResponses(events)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateHandler handles POST /tournaments/{tournamentID}/events.
func (h *EventHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req eventRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.AddEvent(r.Context(), tournamentID, req.toModel(tournamentID))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": toEventResponse(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetByIDHandler handles GET /tournaments/{tournamentID}/events/{eventID}.
func (h *EventHandler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), ids[1])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if event.TournamentID != ids[0] {
		notFoundResponse(w, r, services.ErrEventNotFound)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": toEventResponse(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateHandler handles PUT /tournaments/{tournamentID}/events/{eventID}.
//
// @Summary      Update an event (ADMIN)
// @Description  The start date must fall on a UTC calendar day after the current UTC day.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        body body eventRequest true "Event"
// @Success      200 {object} map[string]eventResponse
// @Failure      400,404 {object} map[string]string
// @Router       /tournaments/{tournamentID}/events/{eventID} [put]
func (h *EventHandler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req eventRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.UpdateEvent(r.Context(), ids[0], ids[1], req.toModel(ids[0]))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": toEventResponse(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteHandler handles DELETE /tournaments/{tournamentID}/events/{eventID}.
func (h *EventHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "tournamentID", "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), ids[0], ids[1]); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RankingsHandler handles GET /tournaments/{tournamentID}/events/{eventID}/rankings.
func (h *EventHandler) RankingsHandler(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rankings, err := h.eventService.ListRankings(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"rankings": toRankingResponses(rankings)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// AddPlayerHandler handles POST /tournaments/{tournamentID}/events/{eventID}/players/{playerID}.
func (h *EventHandler) AddPlayerHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "eventID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.AddPlayerToEvent(r.Context(), ids[0], ids[1])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": toEventResponse(event)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateScoreHandler handles PUT /tournaments/{tournamentID}/events/{eventID}/players/{playerID}.
func (h *EventHandler) UpdateScoreHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "eventID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req scoreRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if req.Score == nil {
		badRequestResponse(w, r, errors.New("score is required"))
		return
	}

	rank, err := h.eventService.UpdatePlayerScore(r.Context(), ids[0], ids[1], *req.Score)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	resp := rankingResponse{PlayerID: rank.PlayerID, Score: rank.Score}
	if rank.Player != nil {
		resp.Username = rank.Player.Username
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ranking": resp}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RemovePlayerHandler handles DELETE /tournaments/{tournamentID}/events/{eventID}/players/{playerID}.
func (h *EventHandler) RemovePlayerHandler(w http.ResponseWriter, r *http.Request) {
	ids, err := getIDsFromURL(r, "eventID", "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.eventService.RemovePlayerFromEvent(r.Context(), ids[0], ids[1]); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
