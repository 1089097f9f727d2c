package httpd

import (
	"net/http"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAssignmentRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(r.Context(), mustCaller(r), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, assignment)
}

func (h *Handler) ListAssignmentsByClass(w http.ResponseWriter, r *http.Request) {
	classGrade, err := pathClassGrade(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	assignments, err := h.assignmentService.ListAssignmentsByClass(r.Context(), mustCaller(r), classGrade)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, assignments)
}

func (h *Handler) ListAllAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.ListAllAssignments(r.Context(), mustCaller(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	assignment, err := h.assignmentService.GetAssignment(r.Context(), mustCaller(r), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, assignment)
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.assignmentService.DeleteAssignment(r.Context(), mustCaller(r), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, map[string]string{"message": "assignment deleted"})
}
