package httpd

import (
	"net/http"

	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func (h *Handler) SubmitAssignment(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitAssignmentRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	submission, err := h.submissionService.SubmitAssignment(r.Context(), mustCaller(r), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, submission)
}

func (h *Handler) GradeSubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req models.GradeSubmissionRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	submission, err := h.submissionService.GradeSubmission(r.Context(), mustCaller(r), id, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, submission)
}

func (h *Handler) ListSubmissionsByAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	submissions, err := h.submissionService.ListSubmissionsByAssignment(r.Context(), mustCaller(r), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, submissions)
}

func (h *Handler) GetMySubmission(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	submission, err := h.submissionService.GetMySubmission(r.Context(), mustCaller(r), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, submission)
}

func (h *Handler) ListMySubmissions(w http.ResponseWriter, r *http.Request) {
	submissions, err := h.submissionService.ListMySubmissions(r.Context(), mustCaller(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, submissions)
}
