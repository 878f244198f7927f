package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type UploadStatus string

const (
	UploadStatusPending  UploadStatus = "pending"
	UploadStatusApproved UploadStatus = "approved"
	UploadStatusRejected UploadStatus = "rejected"
)

// MaxUploadBytes caps curator image submissions at 10 MiB.
const MaxUploadBytes = 10 << 20

// AllowedUploadMimeTypes maps the accepted image mime types to the
// extension used for the server-generated stored filename.
var AllowedUploadMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload is a curator-submitted custom print image awaiting admin review.
// StoredFilename is server-generated; the original filename is kept for
// display only and never used as a storage path component.
type Upload struct {
	ID               uuid.UUID
	ProductID        string
	OriginalFilename string
	StoredFilename   string
	ImagePath        string
	MimeType         string
	FileSize         int64
	SubmittedBy      uuid.UUID
	Status           UploadStatus
	ReviewedBy       sql.NullString
	ReviewNote       sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
