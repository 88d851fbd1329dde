package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"landingpress/internal/imaging"
	"landingpress/internal/middleware"
	"landingpress/internal/models"
	"landingpress/internal/storage"
	"landingpress/internal/store"
)

const (
	// maxUploadSize is the maximum allowed file upload size (50 MB).
	maxUploadSize = 50 << 20

	// thumbMaxWidth is the maximum thumbnail width in pixels.
	thumbMaxWidth = 400

	// thumbQuality is the JPEG quality for generated thumbnails.
	thumbQuality = 80
)

// allowedMediaTypes defines MIME types accepted for upload. Videos are
// allowed because hero slides support video backgrounds.
var allowedMediaTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
	"video/mp4":     true,
	"video/webm":    true,
}

// thumbableTypes are image types that support thumbnail generation.
// GIF is excluded to preserve animation; SVG is vector.
var thumbableTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Media groups the admin JSON API endpoints for the media library.
type Media struct {
	mediaStore    *store.MediaStore
	storageClient *storage.Client
}

// NewMedia creates a new Media handler group. storageClient may be nil
// when S3 is not configured; uploads then return 503.
func NewMedia(mediaStore *store.MediaStore, storageClient *storage.Client) *Media {
	return &Media{
		mediaStore:    mediaStore,
		storageClient: storageClient,
	}
}

// Upload handles multipart file upload to S3 and records metadata.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storageClient == nil {
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
		return
	}

	sess := middleware.SessionFromCtx(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum size is 50 MB")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}
	defer file.Close()

	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large: maximum size is 50 MB")
		return
	}

	// Detect content type by sniffing the first 512 bytes.
	sniffBuf := make([]byte, 512)
	n, err := file.Read(sniffBuf)
	if err != nil && err != io.EOF {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	contentType := http.DetectContentType(sniffBuf[:n])

	// SVG detection: DetectContentType returns text/xml or application/xml for SVGs.
	if strings.HasSuffix(strings.ToLower(header.Filename), ".svg") &&
		(strings.Contains(contentType, "xml") || strings.Contains(contentType, "text/plain")) {
		contentType = "image/svg+xml"
	}

	if !allowedMediaTypes[contentType] {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("file type %q is not allowed", contentType))
		return
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to process file")
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = extensionFromType(contentType)
	}
	filename := uuid.New().String() + ext
	s3Key := storage.MediaKey(sess.TenantID, filename)
	bucket := h.storageClient.PublicBucket()

	// Read the entire file into memory for upload and thumbnail generation.
	fileBytes, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	ctx := r.Context()
	if err := h.storageClient.Upload(ctx, bucket, s3Key, contentType, bytes.NewReader(fileBytes), int64(len(fileBytes))); err != nil {
		slog.Error("s3 upload failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	// Generate and upload a thumbnail for supported image types.
	var thumbKey *string
	if thumbableTypes[contentType] {
		thumb, err := imaging.Thumbnail(fileBytes, thumbMaxWidth, thumbQuality)
		if err != nil {
			slog.Warn("thumbnail generation failed", "error", err, "key", s3Key)
		} else if thumb != nil {
			tk := storage.ThumbKey(sess.TenantID, strings.TrimSuffix(filename, ext)+".jpg")
			if err := h.storageClient.Upload(ctx, bucket, tk, thumb.ContentType, bytes.NewReader(thumb.Data), int64(len(thumb.Data))); err != nil {
				slog.Warn("thumbnail upload failed", "error", err, "key", tk)
			} else {
				thumbKey = &tk
			}
		}
	}

	created, err := h.mediaStore.Create(&models.Media{
		TenantID:     sess.TenantID,
		Filename:     filename,
		OriginalName: header.Filename,
		ContentType:  contentType,
		SizeBytes:    int64(len(fileBytes)),
		Bucket:       bucket,
		S3Key:        s3Key,
		ThumbS3Key:   thumbKey,
		UploaderID:   sess.UserID,
	})
	if err != nil {
		slog.Error("media db insert failed", "error", err, "key", s3Key)
		writeError(w, http.StatusInternalServerError, "failed to save file metadata")
		return
	}

	var thumbURL string
	if created.ThumbS3Key != nil {
		thumbURL = h.storageClient.FileURL(*created.ThumbS3Key)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":        created.ID,
		"url":       h.storageClient.FileURL(created.S3Key),
		"thumb_url": thumbURL,
		"filename":  created.OriginalName,
		"size":      created.HumanSize(),
		"type":      created.ContentType,
	})
}

// List returns the tenant's media library.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	items, err := h.mediaStore.ListByTenant(sess.TenantID, 100, 0)
	if err != nil {
		slog.Error("list media failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}

	type mediaView struct {
		models.Media
		URL      string `json:"url"`
		ThumbURL string `json:"thumb_url,omitempty"`
	}
	views := make([]mediaView, 0, len(items))
	for _, m := range items {
		mv := mediaView{Media: m}
		if h.storageClient != nil {
			mv.URL = h.storageClient.FileURL(m.S3Key)
			if m.ThumbS3Key != nil {
				mv.ThumbURL = h.storageClient.FileURL(*m.ThumbS3Key)
			}
		}
		views = append(views, mv)
	}
	writeJSON(w, http.StatusOK, views)
}

// Delete removes a media item from both the database and S3.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	existing, err := h.mediaStore.FindByID(id)
	if err != nil {
		slog.Error("media lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	if existing == nil || existing.TenantID != sess.TenantID {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	deleted, err := h.mediaStore.Delete(id)
	if err != nil {
		slog.Error("media db delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	// Clean up S3 objects best-effort.
	if h.storageClient != nil && deleted != nil {
		ctx := r.Context()
		if err := h.storageClient.Delete(ctx, deleted.Bucket, deleted.S3Key); err != nil {
			slog.Warn("s3 original delete failed", "error", err, "key", deleted.S3Key)
		}
		if deleted.ThumbS3Key != nil {
			if err := h.storageClient.Delete(ctx, deleted.Bucket, *deleted.ThumbS3Key); err != nil {
				slog.Warn("s3 thumbnail delete failed", "error", err, "key", *deleted.ThumbS3Key)
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// extensionFromType maps a MIME type to a file extension for uploads
// whose original filename has none.
func extensionFromType(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	case "video/mp4":
		return ".mp4"
	case "video/webm":
		return ".webm"
	default:
		return ""
	}
}
