package moderation_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"canvas-art-backend/internal/auth"
	"canvas-art-backend/internal/models"
	"canvas-art-backend/internal/moderation"
)

type fakeUploadRepo struct {
	uploads    map[uuid.UUID]*models.Upload
	lastFilter moderation.UploadFilter
}

func newFakeUploadRepo() *fakeUploadRepo {
	return &fakeUploadRepo{uploads: map[uuid.UUID]*models.Upload{}}
}

func (f *fakeUploadRepo) InsertUpload(upload *models.Upload) error {
	stored := *upload
	f.uploads[upload.ID] = &stored
	return nil
}

func (f *fakeUploadRepo) GetUpload(uploadID uuid.UUID) (*models.Upload, error) {
	upload, ok := f.uploads[uploadID]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *upload
	return &copied, nil
}

func (f *fakeUploadRepo) ListUploads(filter moderation.UploadFilter) ([]models.Upload, error) {
	f.lastFilter = filter
	var out []models.Upload
	for _, upload := range f.uploads {
		if filter.Status != "" && upload.Status != filter.Status {
			continue
		}
		if filter.SubmittedBy != nil && upload.SubmittedBy != *filter.SubmittedBy {
			continue
		}
		out = append(out, *upload)
	}
	return out, nil
}

func (f *fakeUploadRepo) UpdateUploadReview(upload *models.Upload) error {
	if _, ok := f.uploads[upload.ID]; !ok {
		return models.ErrNotFound
	}
	stored := *upload
	f.uploads[upload.ID] = &stored
	return nil
}

type fakeImageStore struct {
	stored map[string][]byte
	calls  int
}

func newFakeImageStore() *fakeImageStore {
	return &fakeImageStore{stored: map[string][]byte{}}
}

func (f *fakeImageStore) StoreImage(storedFilename string, data []byte, contentType string) (string, error) {
	f.calls++
	f.stored[storedFilename] = data
	return "uploads/" + storedFilename, nil
}

func submission() moderation.UploadSubmission {
	return moderation.UploadSubmission{
		ProductID:        "7",
		OriginalFilename: "my vacation photo.png",
		MimeType:         "image/png",
		Data:             []byte("not really a png but close enough"),
	}
}

func TestCreateUpload(t *testing.T) {
	repo := newFakeUploadRepo()
	objects := newFakeImageStore()
	svc := moderation.NewUploadService(repo, objects)

	curator := uuid.New()
	upload, err := svc.Create(curator, auth.RoleCurator, submission())
	assert.NoError(t, err)

	assert.Equal(t, models.UploadStatusPending, upload.Status)
	assert.Equal(t, curator, upload.SubmittedBy)
	assert.Equal(t, "my vacation photo.png", upload.OriginalFilename)
	assert.Equal(t, 1, objects.calls)
	assert.Len(t, repo.uploads, 1)

	// Stored name is server-generated: uuid + mime-derived extension,
	// never the untrusted original filename.
	assert.True(t, strings.HasSuffix(upload.StoredFilename, ".png"))
	assert.NotContains(t, upload.StoredFilename, "vacation")
	assert.Equal(t, "uploads/"+upload.StoredFilename, upload.ImagePath)
}

func TestCreateUpload_StoredNamesAreUnique(t *testing.T) {
	svc := moderation.NewUploadService(newFakeUploadRepo(), newFakeImageStore())

	a, err := svc.Create(uuid.New(), auth.RoleCurator, submission())
	assert.NoError(t, err)
	b, err := svc.Create(uuid.New(), auth.RoleCurator, submission())
	assert.NoError(t, err)

	assert.NotEqual(t, a.StoredFilename, b.StoredFilename)
}

func TestCreateUpload_RequiresCurator(t *testing.T) {
	repo := newFakeUploadRepo()
	objects := newFakeImageStore()
	svc := moderation.NewUploadService(repo, objects)

	_, err := svc.Create(uuid.New(), auth.RoleUser, submission())
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Empty(t, repo.uploads)
	assert.Equal(t, 0, objects.calls)
}

func TestCreateUpload_OversizedFileRejected(t *testing.T) {
	repo := newFakeUploadRepo()
	objects := newFakeImageStore()
	svc := moderation.NewUploadService(repo, objects)

	sub := submission()
	sub.Data = make([]byte, 11_000_000)

	_, err := svc.Create(uuid.New(), auth.RoleCurator, sub)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, repo.uploads)
	assert.Equal(t, 0, objects.calls)
}

func TestCreateUpload_ExactlyTenMiBAccepted(t *testing.T) {
	svc := moderation.NewUploadService(newFakeUploadRepo(), newFakeImageStore())

	sub := submission()
	sub.Data = make([]byte, models.MaxUploadBytes)

	_, err := svc.Create(uuid.New(), auth.RoleCurator, sub)
	assert.NoError(t, err)
}

func TestCreateUpload_DisallowedMimeRejected(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	for _, mime := range []string{"image/gif", "image/svg+xml", "application/pdf", ""} {
		sub := submission()
		sub.MimeType = mime
		_, err := svc.Create(uuid.New(), auth.RoleCurator, sub)
		assert.ErrorIs(t, err, models.ErrValidation, "mime %q", mime)
	}
	assert.Empty(t, repo.uploads)
}

func TestReviewUpload(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	upload, _ := svc.Create(uuid.New(), auth.RoleCurator, submission())

	reviewer := uuid.New()
	reviewed, err := svc.Review(upload.ID, models.UploadStatusApproved, "looks great", reviewer, auth.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, models.UploadStatusApproved, reviewed.Status)
	assert.Equal(t, reviewer.String(), reviewed.ReviewedBy.String)
	assert.Equal(t, "looks great", reviewed.ReviewNote.String)
}

func TestReviewUpload_RequiresAdmin(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	upload, _ := svc.Create(uuid.New(), auth.RoleCurator, submission())

	_, err := svc.Review(upload.ID, models.UploadStatusApproved, "", uuid.New(), auth.RoleCurator)
	assert.ErrorIs(t, err, models.ErrForbidden)
	assert.Equal(t, models.UploadStatusPending, repo.uploads[upload.ID].Status)
}

func TestReviewUpload_PendingIsNotAReviewTarget(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	upload, _ := svc.Create(uuid.New(), auth.RoleCurator, submission())

	_, err := svc.Review(upload.ID, models.UploadStatusPending, "", uuid.New(), auth.RoleAdmin)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestReviewUpload_ReviewedStatesAreTerminal(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	upload, _ := svc.Create(uuid.New(), auth.RoleCurator, submission())
	_, err := svc.Review(upload.ID, models.UploadStatusRejected, "blurry", uuid.New(), auth.RoleAdmin)
	assert.NoError(t, err)

	_, err = svc.Review(upload.ID, models.UploadStatusApproved, "", uuid.New(), auth.RoleSuperAdmin)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestReviewUpload_MissingUpload(t *testing.T) {
	svc := moderation.NewUploadService(newFakeUploadRepo(), newFakeImageStore())

	_, err := svc.Review(uuid.New(), models.UploadStatusApproved, "", uuid.New(), auth.RoleAdmin)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListUploads_CuratorScopedToOwnSubmissions(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	mine := uuid.New()
	theirs := uuid.New()
	_, err := svc.Create(mine, auth.RoleCurator, submission())
	assert.NoError(t, err)
	_, err = svc.Create(theirs, auth.RoleCurator, submission())
	assert.NoError(t, err)

	listed, err := svc.List(mine, auth.RoleCurator, "")
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, mine, listed[0].SubmittedBy)

	// The scoping travels in the filter, so the repository query enforces
	// it rather than the caller.
	assert.NotNil(t, repo.lastFilter.SubmittedBy)
	assert.Equal(t, mine, *repo.lastFilter.SubmittedBy)
}

func TestListUploads_AdminSeesAll(t *testing.T) {
	repo := newFakeUploadRepo()
	svc := moderation.NewUploadService(repo, newFakeImageStore())

	_, err := svc.Create(uuid.New(), auth.RoleCurator, submission())
	assert.NoError(t, err)
	_, err = svc.Create(uuid.New(), auth.RoleCurator, submission())
	assert.NoError(t, err)

	listed, err := svc.List(uuid.New(), auth.RoleAdmin, "")
	assert.NoError(t, err)
	assert.Len(t, listed, 2)
	assert.Nil(t, repo.lastFilter.SubmittedBy)
}

func TestListUploads_RequiresCurator(t *testing.T) {
	svc := moderation.NewUploadService(newFakeUploadRepo(), newFakeImageStore())

	_, err := svc.List(uuid.New(), auth.RoleUser, "")
	assert.ErrorIs(t, err, models.ErrForbidden)
}
