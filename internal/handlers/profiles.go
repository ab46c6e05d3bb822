package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"nexus-portal-backend/internal/middleware"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/supabase"
)

type ProfilesHandler struct {
	dbClient      *supabase.DatabaseClient
	storageClient *supabase.StorageClient
}

func NewProfilesHandler(dbClient *supabase.DatabaseClient, brandAssets *supabase.StorageClient) *ProfilesHandler {
	return &ProfilesHandler{
		dbClient:      dbClient,
		storageClient: brandAssets,
	}
}

// currentProfile pulls the profile resolved by the profile middleware.
func currentProfile(c *gin.Context) (*models.Profile, bool) {
	value, exists := c.Get(middleware.ProfileKey)
	if !exists {
		return nil, false
	}
	profile, ok := value.(*models.Profile)
	return profile, ok
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, err := uuid.Parse(value.(string))
	if err != nil {
		return uuid.Nil, false
	}
	return userID, true
}

func isAdmin(c *gin.Context) bool {
	role, _ := c.Get(middleware.RoleKey)
	return role == models.RoleAdmin
}

// GetMe godoc
// @Summary     Get own profile
// @Tags        profiles
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /profiles/me [get]
func (h *ProfilesHandler) GetMe(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profileResponse(profile))
}

// UpdateMe godoc
// @Summary     Update own brand metadata
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.UpdateProfileRequest true "Brand metadata"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /profiles/me [put]
func (h *ProfilesHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	profile, err := h.dbClient.UpdateProfileBrand(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update profile",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// UploadBrandAssets godoc
// @Summary     Upload brand assets
// @Description Stores the uploaded files in the brand-assets bucket and appends their paths to the profile.
// @Tags        profiles
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       files formData file true "Asset files"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /profiles/me/brand-assets [post]
func (h *ProfilesHandler) UploadBrandAssets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
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

	var paths []string
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

		objectName := supabase.ObjectName("brand", fileHeader.Filename)
		path, _, err := h.storageClient.UploadFile(objectName, fileHeader.Header.Get("Content-Type"), data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "failed to upload asset",
				Message: err.Error(),
			})
			return
		}
		paths = append(paths, path)
	}

	profile, err := h.dbClient.AppendBrandAssets(userID, paths)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to save brand assets",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// RemoveBrandAsset godoc
// @Summary     Remove a brand asset path from the profile
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.RemoveAssetRequest true "Asset path"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /profiles/me/brand-assets [delete]
func (h *ProfilesHandler) RemoveBrandAsset(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.RemoveAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	profile, err := h.dbClient.RemoveBrandAsset(userID, req.Path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to remove brand asset",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}

// ListProfiles godoc
// @Summary     List all profiles (admin)
// @Tags        profiles
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.ProfileListResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /profiles [get]
func (h *ProfilesHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.dbClient.ListProfiles()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list profiles",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *profileResponse(&profiles[i])
	}

	c.JSON(http.StatusOK, models.ProfileListResponse{Profiles: responses})
}

// UpdateRole godoc
// @Summary     Set a profile's role (admin)
// @Tags        profiles
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       profile_id path string true "Profile ID (UUID)"
// @Param       request body models.UpdateRoleRequest true "New role"
// @Success     200 {object} models.ProfileResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Router      /profiles/{profile_id}/role [post]
func (h *ProfilesHandler) UpdateRole(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid profile id"})
		return
	}

	var req models.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleCustomer {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "role must be admin or customer"})
		return
	}

	profile, err := h.dbClient.UpdateProfileRole(profileID, req.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update role",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, profileResponse(profile))
}
