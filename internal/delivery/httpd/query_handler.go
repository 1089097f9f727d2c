package httpd

import (
	"net/http"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func (h *Handler) CreateQuery(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQueryRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	query, err := h.queryService.CreateQuery(r.Context(), mustCaller(r), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, query)
}

func (h *Handler) ListQueriesByClass(w http.ResponseWriter, r *http.Request) {
	classGrade, err := pathClassGrade(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	queries, err := h.queryService.ListQueriesByClass(r.Context(), mustCaller(r), classGrade)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, queries)
}

func (h *Handler) DeleteQuery(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.queryService.DeleteQuery(r.Context(), mustCaller(r), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{"message": "query deleted"})
}
