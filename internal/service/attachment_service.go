package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/models"
	"github.com/RubachokBoss/tutoring-center/internal/service/storage"
)

const (
	FolderAssignments = "assignments"
	FolderSubmissions = "submissions"
)

type UploadAttachmentRequest struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Data        io.Reader
}

type AttachmentService interface {
	UploadAttachment(ctx context.Context, caller models.Caller, req *UploadAttachmentRequest) (*models.UploadAttachmentResponse, error)
}

type attachmentService struct {
	storage storage.Storage
	logger  zerolog.Logger
}

func NewAttachmentService(storage storage.Storage, logger zerolog.Logger) AttachmentService {
	return &attachmentService{
		storage: storage,
		logger:  logger,
	}
}

// UploadAttachment stores a file under <folder>/<uuid><ext>. Teachers upload
// to assignments, students to submissions.
func (s *attachmentService) UploadAttachment(ctx context.Context, caller models.Caller, req *UploadAttachmentRequest) (*models.UploadAttachmentResponse, error) {
	switch {
	case caller.IsTeacher() && req.Folder == FolderAssignments:
	case caller.IsStudent() && req.Folder == FolderSubmissions:
	default:
		return nil, errs.Newf(errs.KindInvalidArgument, "folder %q is not allowed for role %s", req.Folder, caller.Role)
	}
	if req.Size <= 0 {
		return nil, errs.InvalidArgument("file is empty")
	}

	ext := strings.ToLower(filepath.Ext(req.Filename))
	key := req.Folder + "/" + uuid.New().String() + ext

	if err := s.storage.Upload(ctx, key, req.Data, req.Size, req.ContentType); err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	s.logger.Info().
		Str("key", key).
		Int64("size", req.Size).
		Int64("user_id", caller.UserID).
		Msg("Attachment uploaded")

	return &models.UploadAttachmentResponse{
		URL:      s.storage.URL(key),
		Filename: req.Filename,
	}, nil
}
