package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/supabase"
)

// UploadsHandler covers project file attachments: uploads into the
// attachments bucket and public-URL resolution at read time.
type UploadsHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewUploadsHandler(dbClient *supabase.DatabaseClient, attachments *supabase.StorageClient) *UploadsHandler {
	return &UploadsHandler{
		dbClient:      dbClient,
		storageClient: attachments,
	}
}

// Upload godoc
// @Summary     Attach files to a project
// @Description Stores the uploaded files in the attachments bucket under timestamp-prefixed sanitized names. Customer uploads land in the customer list, admin uploads in the independent admin list.
// @Tags        uploads
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       files formData file true "Attachment files"
// @Success     200 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/attachments [post]
func (h *UploadsHandler) Upload(c *gin.Context) {
	projectsHandler := &ProjectsHandler{dbClient: h.dbClient}
	project, ok := projectsHandler.loadVisibleProject(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid multipart form", Message: err.Error()})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "no files provided"})
		return
	}

	admin := isAdmin(c)
	prefix := "upload"
	if admin {
		prefix = "solution"
	}

	var paths, urls []string
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
			return
		}

		objectName := supabase.ObjectName(prefix, fileHeader.Filename)
		path, url, err := h.storageClient.UploadFile(objectName, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to upload file",
				Message: err.Error(),
			})
			return
		}
		paths = append(paths, path)
		urls = append(urls, url)
	}

	if _, err := h.dbClient.AppendProjectFiles(project.ID, paths, admin); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save attachments",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.UploadResponse{Paths: paths, URLs: urls})
}

// GetFiles godoc
// @Summary     List a project's files
// @Description Returns both attachment lists with storage paths resolved to public URLs.
// @Tags        uploads
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ProjectFilesResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/files [get]
func (h *UploadsHandler) GetFiles(c *gin.Context) {
	projectsHandler := &ProjectsHandler{dbClient: h.dbClient}
	project, ok := projectsHandler.loadVisibleProject(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.ProjectFilesResponse{
		Attachments: h.resolveFiles(project.Attachments),
		AdminFiles:  h.resolveFiles(project.AdminFiles),
	})
}

func (h *UploadsHandler) resolveFiles(paths []string) []models.FileResponse {
	files := make([]models.FileResponse, len(paths))
	for i, path := range paths {
		files[i] = models.FileResponse{
			Path: path,
			URL:  h.storageClient.PublicURL(path),
		}
	}
	return files
}
