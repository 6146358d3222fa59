package handlers

import (
	"net/http"

	"github.com/Dosada05/fencing-tournament/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(us services.UserService) *UserHandler {
	return &UserHandler{userService: us}
}

// ListHandler handles GET /users.
func (h *UserHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"users": toUserResponses(users)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ChangeRoleHandler handles PUT /users/{userID}/role.
func (h *UserHandler) ChangeRoleHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var req roleRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	actor := currentUser(r)
	if actor == nil {
		unauthorizedResponse(w, r, "authentication required")
		return
	}

	user, err := h.userService.ChangeUserRole(r.Context(), actor, userID, req.Role)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"user": toUserResponse(user)}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
