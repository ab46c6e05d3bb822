package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/services"
	"nexus-portal-backend/internal/supabase"
)

type ProjectsHandler struct {
	dbClient       *supabase.DatabaseClient
	realtimeClient *supabase.RealtimeClient
	notifier       *services.Notifier
}

func NewProjectsHandler(dbClient *supabase.DatabaseClient, realtimeClient *supabase.RealtimeClient, notifier *services.Notifier) *ProjectsHandler {
	return &ProjectsHandler{
		dbClient:       dbClient,
		realtimeClient: realtimeClient,
		notifier:       notifier,
	}
}

// CreateProject godoc
// @Summary     Submit a new project
// @Description Creates a project with status Pending and bill amount 0. The operator is notified by mail after the record commits; a notification failure never rolls the project back.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateProjectRequest true "Project intake"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /projects [post]
func (h *ProjectsHandler) CreateProject(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "profile not found"})
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown category"})
		return
	}

	project, err := h.dbClient.CreateProject(profile.ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to create project",
			Message: err.Error(),
		})
		return
	}

	// The record is committed; everything after this is best effort.
	h.realtimeClient.PublishProjectEvent(project.ID, "project_created",
		supabase.ProjectCreatedPayload(project.ID, project.ProjectNumber))
	h.notifier.ProjectCreated(project, profile.Email)

	c.JSON(http.StatusOK, projectResponse(project))
}

// ListProjects godoc
// @Summary     List projects
// @Description Customers see their own projects; admins see every project joined with its owner profile. Optional category and active filters.
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       category query string false "Filter by category"
// @Param       active query bool false "Exclude Completed and Paid projects"
// @Success     200 {object} models.ProjectListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /projects [get]
func (h *ProjectsHandler) ListProjects(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !models.ValidCategory(category) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown category"})
		return
	}
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active", "false"))

	var (
		projects []models.Project
		err      error
	)
	if isAdmin(c) {
		projects, err = h.dbClient.ListAllProjects(category, activeOnly)
	} else {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
			return
		}
		projects, err = h.dbClient.ListProjects(userID, category, activeOnly)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to list projects",
			Message: err.Error(),
		})
		return
	}

	responses := make([]models.ProjectResponse, len(projects))
	for i := range projects {
		responses[i] = projectResponse(&projects[i])
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{Projects: responses})
}

// GetProject godoc
// @Summary     Get one project
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.ProjectResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id} [get]
func (h *ProjectsHandler) GetProject(c *gin.Context) {
	project, ok := h.loadVisibleProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, projectResponse(project))
}

// GetStatus godoc
// @Summary     Get a project's status
// @Tags        projects
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Success     200 {object} models.StatusResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /projects/{project_id}/status [get]
func (h *ProjectsHandler) GetStatus(c *gin.Context) {
	project, ok := h.loadVisibleProject(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.StatusResponse{
		ProjectID: project.ID.String(),
		Status:    project.Status,
		UpdatedAt: project.UpdatedAt,
	})
}

// SubmitResponse godoc
// @Summary     Dispatch the admin solution (admin)
// @Description Records the response text, invoice amount and solution files, moves the project to Customer Review and clears any outstanding rework feedback. The customer is mailed after the write commits.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.AdminResponseRequest true "Solution"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /projects/{project_id}/response [post]
func (h *ProjectsHandler) SubmitResponse(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return
	}

	var req models.AdminResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.BillAmount < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "bill amount cannot be negative"})
		return
	}

	project, err := h.dbClient.SubmitAdminResponse(projectID, &req)
	if err == supabase.ErrInvalidTransition {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "status transition not allowed",
			Message: "project is not awaiting an admin response",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to submit response",
			Message: err.Error(),
		})
		return
	}

	h.realtimeClient.PublishProjectEvent(project.ID, "status_changed",
		supabase.StatusChangedPayload(project.ID, project.Status))

	if owner, err := h.dbClient.GetProfile(project.CustomerID); err == nil {
		h.notifier.SolutionDispatched(project, owner)
	}

	c.JSON(http.StatusOK, projectResponse(project))
}

// UpdateStatus godoc
// @Summary     Move a project through its lifecycle
// @Description Checked against the allowed-transition table. Customers reviewing a dispatch may accept it or request rework with feedback; admins may start work on a pending project.
// @Tags        projects
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       project_id path string true "Project ID (UUID)"
// @Param       request body models.UpdateStatusRequest true "Target status"
// @Success     200 {object} models.ProjectResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /projects/{project_id}/status [post]
func (h *ProjectsHandler) UpdateStatus(c *gin.Context) {
	profile, ok := currentProfile(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "profile not found"})
		return
	}

	project, ok := h.loadVisibleProject(c)
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "unknown status"})
		return
	}
	if req.Status == models.StatusReworkRequested && req.ReworkFeedback == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "rework feedback is required"})
		return
	}

	// Customers only decide on a delivered review; other moves are the
	// admin's (dispatch goes through the response endpoint, settlement
	// through payment verification).
	if !isAdmin(c) {
		if req.Status != models.StatusAccepted && req.Status != models.StatusReworkRequested {
			c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "customers may only accept or request rework"})
			return
		}
	}
	if !models.CanTransition(project.Status, req.Status) {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "status transition not allowed",
			Message: project.Status + " -> " + req.Status,
		})
		return
	}

	updated, err := h.dbClient.UpdateProjectStatus(project.ID, project.Status, req.Status, req.ReworkFeedback)
	if err == supabase.ErrInvalidTransition {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "status transition not allowed",
			Message: "project moved since it was read",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to update status",
			Message: err.Error(),
		})
		return
	}

	h.realtimeClient.PublishProjectEvent(updated.ID, "status_changed",
		supabase.StatusChangedPayload(updated.ID, updated.Status))
	h.notifier.StatusChanged(updated, profile.Email)

	c.JSON(http.StatusOK, projectResponse(updated))
}

// loadVisibleProject fetches the project from the path parameter and
// enforces row visibility: owners and admins only.
func (h *ProjectsHandler) loadVisibleProject(c *gin.Context) (*models.Project, bool) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid project id"})
		return nil, false
	}

	project, err := h.dbClient.GetProject(projectID)
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "project not found",
			Message: err.Error(),
		})
		return nil, false
	}

	if !isAdmin(c) {
		userID, ok := currentUserID(c)
		if !ok || project.CustomerID != userID {
			// Not found rather than forbidden: don't leak other
			// customers' project ids.
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "project not found"})
			return nil, false
		}
	}

	return project, true
}
