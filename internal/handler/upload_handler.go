package handler

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"dufaa.com/communitybackend/pkg/apperror"
	"dufaa.com/communitybackend/pkg/response"
	"dufaa.com/communitybackend/pkg/storage"
	"github.com/gin-gonic/gin"
)

// uploadRule is the per-endpoint ceiling: accepted extensions, max size
// per file and max file count per request.
type uploadRule struct {
	folder     string
	extensions map[string]bool
	maxBytes   int64
	maxFiles   int
}

var (
	imageExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}
	mediaExtensions = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".mp4": true, ".webm": true, ".mov": true}
	fileExtensions  = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true, ".pdf": true, ".mp4": true, ".webm": true}
)

var uploadRules = map[string]uploadRule{
	"avatar":     {folder: "avatars", extensions: imageExtensions, maxBytes: 5 << 20, maxFiles: 1},
	"cover":      {folder: "covers", extensions: imageExtensions, maxBytes: 8 << 20, maxFiles: 1},
	"post":       {folder: "posts", extensions: mediaExtensions, maxBytes: 50 << 20, maxFiles: 4},
	"submission": {folder: "submissions", extensions: imageExtensions, maxBytes: 8 << 20, maxFiles: 12},
	"generic":    {folder: "attachments", extensions: fileExtensions, maxBytes: 20 << 20, maxFiles: 1},
}

type UploadHandler struct {
	storage storage.MediaStorage
}

func NewUploadHandler(storage storage.MediaStorage) *UploadHandler {
	return &UploadHandler{storage: storage}
}

// Upload handles POST /api/uploads/:kind for the named upload endpoints.
// It returns the public URLs; the caller persists them through the
// corresponding mutation.
func (h *UploadHandler) Upload(c *gin.Context) {
	rule, ok := uploadRules[c.Param("kind")]
	if !ok {
		response.ResponseError(c, apperror.NotFound("نوع الرفع غير معروف"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "صيغة الطلب غير صالحة", apperror.ErrInvalidInput))
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "لم يتم إرفاق أي ملف", apperror.ErrInvalidInput))
		return
	}
	if len(files) > rule.maxFiles {
		response.ResponseError(c, apperror.New(http.StatusBadRequest, "عدد الملفات يتجاوز الحد المسموح", apperror.ErrInvalidInput))
		return
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		if err := validateFile(file, rule); err != nil {
			response.ResponseError(c, err)
			return
		}

		src, err := file.Open()
		if err != nil {
			response.ResponseError(c, err)
			return
		}

		url, err := h.storage.Upload(c.Request.Context(), src, rule.folder, filepath.Base(file.Filename))
		src.Close()
		if err != nil {
			response.ResponseError(c, err)
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusCreated, gin.H{"urls": urls})
}

func validateFile(file *multipart.FileHeader, rule uploadRule) error {
	if file.Size > rule.maxBytes {
		return apperror.New(http.StatusBadRequest, "حجم الملف يتجاوز الحد المسموح", apperror.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !rule.extensions[ext] {
		return apperror.New(http.StatusBadRequest, "نوع الملف غير مسموح", apperror.ErrInvalidInput)
	}
	return nil
}
