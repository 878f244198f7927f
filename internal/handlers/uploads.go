package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"canvas-art-backend/internal/models"
	"canvas-art-backend/internal/moderation"
)

type UploadsHandler struct {
	uploads *moderation.UploadService
}

func NewUploadsHandler(uploads *moderation.UploadService) *UploadsHandler {
	return &UploadsHandler{uploads: uploads}
}

// CreateUpload godoc
// @Summary     Submit a custom print image
// @Description Accepts a multipart image for a product. Allowed types: jpeg, png, webp; max 10 MiB. The stored filename is server-generated; the original filename is display-only.
// @Tags        uploads
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       product_id formData string true "Product the image is for"
// @Param       image formData file true "Image file"
// @Success     201 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /uploads [post]
func (h *UploadsHandler) CreateUpload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no image uploaded",
			Message: "provide the file under the \"image\" form field",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read file data",
			Message: err.Error(),
		})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeFromExtension(header.Filename)
	}

	upload, err := h.uploads.Create(userID, callerRole(c), moderation.UploadSubmission{
		ProductID:        c.PostForm("product_id"),
		OriginalFilename: header.Filename,
		MimeType:         mimeType,
		Data:             data,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.NewUploadResponse(upload))
}

// ListUploads godoc
// @Summary     List upload submissions
// @Description Curators see only their own submissions; admin and above see all. The scoping happens in the query, not client-side.
// @Tags        uploads
// @Produce     json
// @Security    Bearer
// @Param       status query string false "Filter by status (pending, approved, rejected)"
// @Success     200 {object} models.UploadListResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /uploads [get]
func (h *UploadsHandler) ListUploads(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	uploads, err := h.uploads.List(userID, callerRole(c), models.UploadStatus(c.Query("status")))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	resp := models.UploadListResponse{Uploads: make([]models.UploadResponse, len(uploads))}
	for i := range uploads {
		resp.Uploads[i] = models.NewUploadResponse(&uploads[i])
	}
	c.JSON(http.StatusOK, resp)
}

// ReviewUpload godoc
// @Summary     Approve or reject an upload
// @Description Admin or above only. Pending is the only reviewable state; approved and rejected are terminal.
// @Tags        uploads
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       upload_id path string true "Upload ID (UUID)"
// @Param       request body models.ReviewUploadRequest true "Review decision"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /uploads/{upload_id}/review [patch]
func (h *UploadsHandler) ReviewUpload(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	uploadID, err := uuid.Parse(c.Param("upload_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid upload id"})
		return
	}

	var req models.ReviewUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request body",
			Message: err.Error(),
		})
		return
	}

	upload, err := h.uploads.Review(uploadID, req.Status, req.ReviewNote, userID, callerRole(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUploadResponse(upload))
}

func mimeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return ""
	}
}
