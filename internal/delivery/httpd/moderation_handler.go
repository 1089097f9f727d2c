package httpd

import (
	"net/http"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func (h *Handler) BlockStudent(w http.ResponseWriter, r *http.Request) {
	var req models.BlockStudentRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	blocked, err := h.moderationService.BlockStudent(r.Context(), mustCaller(r), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, blocked)
}

func (h *Handler) UnblockStudent(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "studentId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	if err := h.moderationService.UnblockStudent(r.Context(), mustCaller(r), studentID); err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, models.BlockStatusResponse{StudentID: studentID, Blocked: false})
}

// GetBlockStatus lets teachers check any student and students check themselves.
func (h *Handler) GetBlockStatus(w http.ResponseWriter, r *http.Request) {
	studentID, err := pathID(r, "studentId")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	caller := mustCaller(r)
	if !caller.IsTeacher() && caller.UserID != studentID {
		h.handleError(w, r, errs.PermissionDenied("students can only check their own status"))
		return
	}

	blocked, err := h.moderationService.IsBlocked(r.Context(), studentID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, models.BlockStatusResponse{StudentID: studentID, Blocked: blocked})
}
