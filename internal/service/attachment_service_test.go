package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RubachokBoss/tutoring-center/internal/errs"
	"github.com/RubachokBoss/tutoring-center/internal/service"
)

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{objects: make(map[string][]byte)}
}

func (s *memoryStorage) Upload(_ context.Context, key string, data io.Reader, _ int64, _ string) error {
	body, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = body
	return nil
}

func (s *memoryStorage) URL(key string) string {
	return "http://files.local/bucket/" + key
}

func TestUploadAttachment(t *testing.T) {
	store := newMemoryStorage()
	svc := service.NewAttachmentService(store, zerolog.Nop())
	ctx := context.Background()

	upload := func(folder string) *service.UploadAttachmentRequest {
		return &service.UploadAttachmentRequest{
			Folder:   folder,
			Filename: "Homework.PDF",
			Size:     5,
			Data:     bytes.NewReader([]byte("hello")),
		}
	}

	resp, err := svc.UploadAttachment(ctx, teacher, upload(service.FolderAssignments))
	require.NoError(t, err)
	assert.Equal(t, "Homework.PDF", resp.Filename)
	assert.True(t, strings.HasPrefix(resp.URL, "http://files.local/bucket/assignments/"))
	assert.True(t, strings.HasSuffix(resp.URL, ".pdf"))

	_, err = svc.UploadAttachment(ctx, student, upload(service.FolderSubmissions))
	require.NoError(t, err)
	assert.Len(t, store.objects, 2)

	_, err = svc.UploadAttachment(ctx, student, upload(service.FolderAssignments))
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	_, err = svc.UploadAttachment(ctx, teacher, upload("../etc"))
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))

	empty := upload(service.FolderSubmissions)
	empty.Size = 0
	_, err = svc.UploadAttachment(ctx, student, empty)
	assert.Equal(t, errs.KindInvalidArgument, errs.KindOf(err))
}
