package httpd

import (
	"net/http"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
)

func (h *Handler) CreateLateRequest(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLateRequestRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	request, err := h.lateRequestService.CreateLateRequest(r.Context(), mustCaller(r), &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, request)
}

func (h *Handler) RespondLateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req models.RespondLateRequestRequest
	if err := h.decode(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	request, err := h.lateRequestService.RespondLateRequest(r.Context(), mustCaller(r), id, &req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, request)
}

// IsLateApproved answers for the calling student.
func (h *Handler) IsLateApproved(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	caller := mustCaller(r)
	if !caller.IsStudent() {
		h.handleError(w, r, errs.PermissionDenied("only students have late approvals"))
		return
	}

	approved, err := h.lateRequestService.IsLateApproved(r.Context(), id, caller.UserID)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, models.LateApprovalResponse{AssignmentID: id, Approved: approved})
}

func (h *Handler) ListPendingLateRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.lateRequestService.ListPendingRequests(r.Context(), mustCaller(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, requests)
}

func (h *Handler) ListAllLateRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.lateRequestService.ListAllRequests(r.Context(), mustCaller(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, requests)
}

func (h *Handler) GetMyLateRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	request, err := h.lateRequestService.GetMyRequest(r.Context(), mustCaller(r), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, request)
}
