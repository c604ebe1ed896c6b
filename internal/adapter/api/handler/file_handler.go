package handler

import (
	"nyayapath/internal/infrastructure/storage"
	"nyayapath/pkg/errors"
	"nyayapath/pkg/response"

	"github.com/labstack/echo/v4"
)

// FileHandler uploads app assets: figure portraits, case evidence
// images, player avatars.
type FileHandler struct {
	storageClient *storage.CloudStorageClient
}

var fileHandler *FileHandler

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
	}
}

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

var allowedFolders = map[string]bool{
	"portraits": true,
	"evidence":  true,
	"avatars":   true,
}

func (h *FileHandler) Upload(c echo.Context) error {
	folder := c.FormValue("folder")
	if !allowedFolders[folder] {
		return response.Error(c, errors.BadRequest("Unknown upload folder", nil))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read upload", err))
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.storageClient.UploadFile(c.Request().Context(), file, contentType, folder)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to store file", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}

func (h *FileHandler) Delete(c echo.Context) error {
	var req struct {
		URL string `json:"url" validate:"required,url"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.storageClient.DeleteFile(c.Request().Context(), req.URL); err != nil {
		return response.Error(c, errors.Internal("Failed to delete file", err))
	}

	return response.Success(c, map[string]string{
		"message": "File deleted",
	})
}
