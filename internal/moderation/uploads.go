package moderation

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"canvas-art-backend/internal/auth"
	"canvas-art-backend/internal/models"
)

// UploadFilter narrows upload listings. SubmittedBy is set by the service
// when the caller is below admin; the repository applies it in the query
// itself, so scoping is a storage-layer guarantee rather than caller-side
// filtering.
type UploadFilter struct {
	Status      models.UploadStatus
	SubmittedBy *uuid.UUID
}

// UploadRepository is the persistence contract for custom-print
// submissions. Implementations return models.ErrNotFound for a missing id.
type UploadRepository interface {
	InsertUpload(upload *models.Upload) error
	GetUpload(uploadID uuid.UUID) (*models.Upload, error)
	ListUploads(filter UploadFilter) ([]models.Upload, error)
	UpdateUploadReview(upload *models.Upload) error
}

// ImageStore writes upload bytes to object storage under a
// server-generated name and returns the stored object path.
type ImageStore interface {
	StoreImage(storedFilename string, data []byte, contentType string) (string, error)
}

// UploadSubmission carries a curator's custom print image into Create.
type UploadSubmission struct {
	ProductID        string
	OriginalFilename string
	MimeType         string
	Data             []byte
}

// UploadService is the custom-print review ledger: curators submit images,
// admins approve or reject them. Approved and rejected are terminal.
type UploadService struct {
	repo    UploadRepository
	objects ImageStore
}

func NewUploadService(repo UploadRepository, objects ImageStore) *UploadService {
	return &UploadService{repo: repo, objects: objects}
}

// Create validates and stores a submission with status pending. The stored
// filename is a fresh UUID plus a mime-derived extension; the original
// filename is untrusted input and is never used as a path component.
func (s *UploadService) Create(submittedBy uuid.UUID, role auth.Role, sub UploadSubmission) (*models.Upload, error) {
	if !auth.HasAccess(role, auth.RoleCurator) {
		return nil, fmt.Errorf("%w: submitting uploads requires curator", models.ErrForbidden)
	}
	ext, ok := models.AllowedUploadMimeTypes[sub.MimeType]
	if !ok {
		return nil, fmt.Errorf("%w: mime type %q is not allowed", models.ErrValidation, sub.MimeType)
	}
	if int64(len(sub.Data)) > models.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", models.ErrValidation, int64(models.MaxUploadBytes))
	}
	if len(sub.Data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", models.ErrValidation)
	}
	if sub.ProductID == "" {
		return nil, fmt.Errorf("%w: product id is required", models.ErrValidation)
	}

	storedFilename := uuid.New().String() + ext
	imagePath, err := s.objects.StoreImage(storedFilename, sub.Data, sub.MimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	now := time.Now().UTC()
	upload := &models.Upload{
		ID:               uuid.New(),
		ProductID:        sub.ProductID,
		OriginalFilename: sub.OriginalFilename,
		StoredFilename:   storedFilename,
		ImagePath:        imagePath,
		MimeType:         sub.MimeType,
		FileSize:         int64(len(sub.Data)),
		SubmittedBy:      submittedBy,
		Status:           models.UploadStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.repo.InsertUpload(upload); err != nil {
		return nil, fmt.Errorf("failed to insert upload: %w", err)
	}
	return upload, nil
}

// Review moves a pending upload to approved or rejected. Admin or above
// only; there is no edge back to pending and no edge out of a reviewed
// state.
func (s *UploadService) Review(uploadID uuid.UUID, status models.UploadStatus, reviewNote string, byID uuid.UUID, byRole auth.Role) (*models.Upload, error) {
	if !auth.HasAccess(byRole, auth.RoleAdmin) {
		return nil, fmt.Errorf("%w: reviewing uploads requires admin", models.ErrForbidden)
	}
	if status != models.UploadStatusApproved && status != models.UploadStatusRejected {
		return nil, fmt.Errorf("%w: review status must be approved or rejected", models.ErrValidation)
	}

	upload, err := s.repo.GetUpload(uploadID)
	if err != nil {
		return nil, err
	}
	if upload.Status != models.UploadStatusPending {
		return nil, fmt.Errorf("%w: upload already %s", models.ErrValidation, upload.Status)
	}

	upload.Status = status
	upload.ReviewedBy = sql.NullString{String: byID.String(), Valid: true}
	if reviewNote != "" {
		upload.ReviewNote = sql.NullString{String: reviewNote, Valid: true}
	}
	upload.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateUploadReview(upload); err != nil {
		return nil, fmt.Errorf("failed to update upload: %w", err)
	}
	return upload, nil
}

// List returns uploads visible to the caller. Curators see only their own
// submissions; admin and above see everything. The scoping is pushed into
// the repository filter because it is a confidentiality boundary, not a
// display convenience.
func (s *UploadService) List(byID uuid.UUID, byRole auth.Role, status models.UploadStatus) ([]models.Upload, error) {
	if !auth.HasAccess(byRole, auth.RoleCurator) {
		return nil, fmt.Errorf("%w: listing uploads requires curator", models.ErrForbidden)
	}
	filter := UploadFilter{Status: status}
	if !auth.HasAccess(byRole, auth.RoleAdmin) {
		filter.SubmittedBy = &byID
	}
	return s.repo.ListUploads(filter)
}
