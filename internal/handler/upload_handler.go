package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quocanhngo/travelmate/internal/apperror"
	"github.com/quocanhngo/travelmate/internal/model"
	"github.com/quocanhngo/travelmate/pkg/storage"
)

const maxFilesPerUpload = 10

// multipart framing overhead allowed on top of the file bytes
const formOverhead = 1 << 20

// Allowed MIME types
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/heic": true,
}

// UploadHandler handles image upload endpoints
type UploadHandler struct {
	storage  Uploader
	maxBytes int64
}

// NewUploadHandler creates an upload handler accepting files up to
// maxBytes each.
func NewUploadHandler(storage Uploader, maxBytes int64) *UploadHandler {
	return &UploadHandler{storage: storage, maxBytes: maxBytes}
}

// UploadImage godoc
// @Summary Upload an image
// @Description Stores one image (jpg, png, gif, webp, heic) and returns its public URL.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image to upload"
// @Success 200 {object} model.UploadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 413 {object} model.ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) UploadImage(c *gin.Context) {
	h.single(c, "images")
}

// UploadProfileImage godoc
// @Summary Upload a profile image
// @Description Same as /upload but stored under profiles/. Save the URL with PUT /users/{userId}/profile-image.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image to upload"
// @Success 200 {object} model.UploadResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 413 {object} model.ErrorResponse
// @Router /upload/profile [post]
func (h *UploadHandler) UploadProfileImage(c *gin.Context) {
	h.single(c, "profiles")
}

func (h *UploadHandler) single(c *gin.Context, folder string) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+formOverhead)

	_, header, err := c.Request.FormFile("file")
	if err != nil {
		fail(c, h.formError(err, "file is required"))
		return
	}
	if err := h.check(header); err != nil {
		fail(c, err)
		return
	}

	res, err := h.store(c, header, folder)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// UploadMultiple godoc
// @Summary Upload several images
// @Description Up to 10 images at once. Nothing is stored if any file is rejected.
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param files formData file true "Images to upload (max 10)"
// @Success 200 {object} model.UploadMultipleResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 413 {object} model.ErrorResponse
// @Router /upload/multiple [post]
func (h *UploadHandler) UploadMultiple(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFilesPerUpload*h.maxBytes+formOverhead)

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, h.formError(err, "invalid form data"))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		fail(c, apperror.Validation("no files provided"))
		return
	}
	if len(files) > maxFilesPerUpload {
		fail(c, apperror.Validation(fmt.Sprintf("maximum %d files allowed", maxFilesPerUpload)))
		return
	}
	for _, header := range files {
		if err := h.check(header); err != nil {
			fail(c, err)
			return
		}
	}

	results := make([]model.UploadResponse, 0, len(files))
	for _, header := range files {
		res, err := h.store(c, header, "images")
		if err != nil {
			fail(c, err)
			return
		}
		results = append(results, *res)
	}
	c.JSON(http.StatusOK, model.UploadMultipleResponse{Files: results})
}

func (h *UploadHandler) check(header *multipart.FileHeader) error {
	if header.Size > h.maxBytes {
		return apperror.TooLarge(fmt.Sprintf("%s is too large (max %d bytes)", header.Filename, h.maxBytes))
	}
	if !allowedImageTypes[contentTypeOf(header)] {
		return apperror.Validation(fmt.Sprintf("%s: unsupported file type, allowed: jpg, png, gif, webp, heic", header.Filename))
	}
	return nil
}

func (h *UploadHandler) store(c *gin.Context, header *multipart.FileHeader, folder string) (*model.UploadResponse, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	result, err := h.storage.Upload(c.Request.Context(), storage.Object{
		Body:        file,
		Size:        header.Size,
		FileName:    header.Filename,
		ContentType: contentTypeOf(header),
		Folder:      folder,
	})
	if err != nil {
		return nil, err
	}
	return &model.UploadResponse{
		URL:      result.URL,
		FileName: result.FileName,
		FileSize: result.FileSize,
		MimeType: result.MimeType,
	}, nil
}

func (h *UploadHandler) formError(err error, msg string) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
		return apperror.TooLarge(fmt.Sprintf("upload too large (max %d bytes per file)", h.maxBytes))
	}
	return apperror.Validation(msg).WithCause(err)
}

// contentTypeOf uses the part's declared type, falling back to the
// file extension.
func contentTypeOf(header *multipart.FileHeader) string {
	ct := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if ct == "" || ct == "application/octet-stream" {
		return storage.DetectContentType(header.Filename)
	}
	return ct
}
