package services

import (
	"context"

	pbstore "github.com/pocketbase/pocketbase/tools/store"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/monitoring"
	"tickethub/notify"
	"tickethub/utils"
)

// MaxUploadSize caps staged files at 5 MiB.
const MaxUploadSize = 5 << 20

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// UploadService stages at most one file draft for the next listing. The
// bytes live in a process-scoped registry and are never persisted; only
// the metadata plus an opaque handle cross into the domain.
type UploadService struct {
	app   *App
	blobs *pbstore.Store[string, []byte]
}

func NewUploadService(app *App) *UploadService {
	return &UploadService{
		app:   app,
		blobs: pbstore.New[string, []byte](nil),
	}
}

// Stage validates and stages a file, replacing (and releasing) any draft
// staged earlier. On rejection the existing draft is left untouched.
func (s *UploadService) Stage(ctx context.Context, name, mimeType string, lastModified int64, data []byte) (draft *models.FileAttachment, err error) {
	defer func() { monitoring.RecordOperation("stage_upload", err) }()

	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	if int64(len(data)) > MaxUploadSize {
		s.app.notifier.Notify(ctx, notify.LevelError, "File size must be less than 5MB")
		return nil, status.ErrFileTooLarge
	}
	if !allowedUploadTypes[mimeType] {
		s.app.notifier.Notify(ctx, notify.LevelError, "Invalid file type. Please upload PDF, JPG, PNG, or DOC files.")
		return nil, status.ErrUnsupportedType
	}

	if cur := s.app.State.UploadDraft; cur != nil {
		s.blobs.Remove(cur.BlobHandle)
	}

	handle := utils.NewID("blob")
	s.blobs.Set(handle, data)

	draft = &models.FileAttachment{
		Name:         name,
		Size:         int64(len(data)),
		Type:         mimeType,
		LastModified: lastModified,
		BlobHandle:   handle,
	}
	s.app.State.UploadDraft = draft
	s.app.notifier.Notify(ctx, notify.LevelSuccess, "File uploaded successfully!")
	return draft, nil
}

// Cancel discards the pending draft, if any.
func (s *UploadService) Cancel(ctx context.Context) {
	s.app.mu.Lock()
	defer s.app.mu.Unlock()

	if cur := s.app.State.UploadDraft; cur != nil {
		s.blobs.Remove(cur.BlobHandle)
		s.app.State.UploadDraft = nil
	}
}

// Resolve returns the staged bytes behind a handle. The presentation layer
// calls this to show or download an attachment; the domain never does.
func (s *UploadService) Resolve(handle string) ([]byte, bool) {
	if !s.blobs.Has(handle) {
		return nil, false
	}
	return s.blobs.Get(handle), true
}

// release frees a blob once its owning ticket is gone.
func (s *UploadService) release(handle string) {
	s.blobs.Remove(handle)
}
