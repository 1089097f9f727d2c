package httpd

import (
	"net/http"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), mustCaller(r), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, user)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	user, err := h.userService.GetUser(r.Context(), mustCaller(r), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, user)
}
