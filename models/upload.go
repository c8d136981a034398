package models

// FileAttachment describes a staged or attached document. BlobHandle is an
// opaque key into the process-scoped blob registry; the domain layer never
// dereferences the bytes itself.
type FileAttachment struct {
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	Type         string `json:"type"`
	LastModified int64  `json:"last_modified"`
	BlobHandle   string `json:"blob_handle"`
}
