package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/carena-app/backend/internal/storage"
)

const maxUploadFiles = 10

// UploadHandler handles multipart image uploads to object storage
type UploadHandler struct {
	storage *storage.S3Storage
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(s3 *storage.S3Storage) *UploadHandler {
	return &UploadHandler{storage: s3}
}

// RegisterUploadRoutes registers upload-related routes
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/uploads/images", h.UploadImages)
}

// UploadImages stores the multipart "images" files concurrently and
// returns their public URLs in submission order
func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "No images provided")
	}
	if len(files) > maxUploadFiles {
		return echo.NewHTTPError(http.StatusBadRequest, "Too many files")
	}

	urls := make([]string, len(files))
	g, ctx := errgroup.WithContext(c.Request().Context())
	for i, file := range files {
		g.Go(func() error {
			src, err := file.Open()
			if err != nil {
				return err
			}
			defer src.Close()

			key := h.storage.ObjectKey("images", file.Filename)
			url, err := h.storage.Upload(ctx, key, file.Header.Get("Content-Type"), src)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"urls": urls})
}
