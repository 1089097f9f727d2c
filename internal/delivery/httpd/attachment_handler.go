package httpd

import (
	"net/http"
	"strings"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/service"
)

func (h *Handler) UploadAttachment(w http.ResponseWriter, r *http.Request) {
	if h.attachmentService == nil {
		writeError(w, http.StatusServiceUnavailable, "unavailable", "attachment storage is not configured")
		return
	}

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.handleError(w, r, errs.InvalidArgument("Content-Type must be multipart/form-data"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, errs.KindInvalidArgument, "file is too large or the form is malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.handleError(w, r, errs.InvalidArgument("file is required"))
		return
	}
	defer file.Close()

	resp, err := h.attachmentService.UploadAttachment(r.Context(), mustCaller(r), &service.UploadAttachmentRequest{
		Folder:      r.FormValue("folder"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        file,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeSuccess(w, resp)
}
