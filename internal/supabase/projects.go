package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"nexus-portal-backend/internal/models"
)

const projectColumns = `id, project_number, customer_id, category, status, project_name, description,
	spec_style_number, spec_colors, spec_sizes, spec_apparel_type, spec_gender, spec_age_group,
	wants_new_style, wants_tag_creation, wants_color_variations, wants_style_variations, wants_marketing_poster,
	admin_response, rework_feedback, bill_amount, attachments, admin_attachments, created_at, updated_at`

func scanProject(row interface{ Scan(...interface{}) error }) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID, &project.ProjectNumber, &project.CustomerID,
		&project.Category, &project.Status, &project.ProjectName,
		&project.Description,
		&project.SpecStyleNumber, &project.SpecColors, &project.SpecSizes,
		&project.SpecApparelType, &project.SpecGender, &project.SpecAgeGroup,
		&project.WantsNewStyle, &project.WantsTagCreation,
		&project.WantsColorVariations, &project.WantsStyleVariations,
		&project.WantsMarketingPoster,
		&project.AdminResponse, &project.ReworkFeedback,
		&project.BillAmount,
		pq.Array(&project.Attachments), pq.Array(&project.AdminFiles),
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (d *DatabaseClient) CreateProject(customerID uuid.UUID, req *models.CreateProjectRequest) (*models.Project, error) {
	attachments := req.Attachments
	if attachments == nil {
		attachments = []string{}
	}

	project, err := scanProject(d.db.QueryRow(`
		INSERT INTO projects (id, customer_id, category, status, project_name, description,
			spec_style_number, spec_colors, spec_sizes, spec_apparel_type, spec_gender, spec_age_group,
			wants_new_style, wants_tag_creation, wants_color_variations, wants_style_variations, wants_marketing_poster,
			attachments)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6,
			NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''), NULLIF($12, ''),
			$13, $14, $15, $16, $17,
			$18)
		RETURNING `+projectColumns,
		uuid.New(), customerID, req.Category, models.StatusPending,
		req.ProjectName, req.Description,
		req.SpecStyleNumber, req.SpecColors, req.SpecSizes,
		req.SpecApparelType, req.SpecGender, req.SpecAgeGroup,
		req.WantsNewStyle, req.WantsTagCreation, req.WantsColorVariations,
		req.WantsStyleVariations, req.WantsMarketingPoster,
		pq.Array(attachments)))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

func (d *DatabaseClient) GetProject(projectID uuid.UUID) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1`, projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// ListProjects returns the projects visible to one customer, newest first.
func (d *DatabaseClient) ListProjects(customerID uuid.UUID, category string, activeOnly bool) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE customer_id = $1
		  AND ($2 = '' OR category = $2)
		  AND (NOT $3 OR status <> ALL($4::text[]))
		ORDER BY created_at DESC`,
		customerID, category, activeOnly, pq.Array(models.SettledStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	return collectProjects(rows)
}

// ListAllProjects is the admin view: every project joined with its owner
// profile.
func (d *DatabaseClient) ListAllProjects(category string, activeOnly bool) ([]models.Project, error) {
	rows, err := d.db.Query(`
		SELECT p.id, p.project_number, p.customer_id, p.category, p.status,
		       p.project_name, p.description,
		       p.spec_style_number, p.spec_colors, p.spec_sizes,
		       p.spec_apparel_type, p.spec_gender, p.spec_age_group,
		       p.wants_new_style, p.wants_tag_creation, p.wants_color_variations,
		       p.wants_style_variations, p.wants_marketing_poster,
		       p.admin_response, p.rework_feedback,
		       p.bill_amount, p.attachments, p.admin_attachments, p.created_at, p.updated_at,
		       pr.id, pr.email, pr.role, pr.brand_name, pr.tagline, pr.description,
		       pr.contact_email, pr.phone_number, pr.brand_assets, pr.created_at, pr.updated_at
		FROM projects p
		JOIN profiles pr ON pr.id = p.customer_id
		WHERE ($1 = '' OR p.category = $1)
		  AND (NOT $2 OR p.status <> ALL($3::text[]))
		ORDER BY p.created_at DESC`,
		category, activeOnly, pq.Array(models.SettledStatuses))
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		var owner models.Profile
		err := rows.Scan(
			&project.ID, &project.ProjectNumber, &project.CustomerID,
			&project.Category, &project.Status, &project.ProjectName,
			&project.Description,
			&project.SpecStyleNumber, &project.SpecColors, &project.SpecSizes,
			&project.SpecApparelType, &project.SpecGender, &project.SpecAgeGroup,
			&project.WantsNewStyle, &project.WantsTagCreation,
			&project.WantsColorVariations, &project.WantsStyleVariations,
			&project.WantsMarketingPoster,
			&project.AdminResponse, &project.ReworkFeedback,
			&project.BillAmount,
			pq.Array(&project.Attachments), pq.Array(&project.AdminFiles),
			&project.CreatedAt, &project.UpdatedAt,
			&owner.ID, &owner.Email, &owner.Role, &owner.BrandName,
			&owner.Tagline, &owner.Description, &owner.ContactEmail,
			&owner.PhoneNumber, pq.Array(&owner.BrandAssets),
			&owner.CreatedAt, &owner.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		project.Owner = &owner
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

// SubmitAdminResponse records the admin's dispatch: response text, invoice
// amount, appended solution files, status to Customer Review, and the
// outstanding rework feedback cleared. The status guard keeps the write
// inside the allowed-transition table.
func (d *DatabaseClient) SubmitAdminResponse(projectID uuid.UUID, req *models.AdminResponseRequest) (*models.Project, error) {
	adminFiles := req.AdminAttachments
	if adminFiles == nil {
		adminFiles = []string{}
	}

	project, err := scanProject(d.db.QueryRow(`
		UPDATE projects
		SET admin_response = $1, bill_amount = $2,
		    admin_attachments = admin_attachments || $3,
		    status = $4, rework_feedback = NULL, updated_at = NOW()
		WHERE id = $5 AND status IN ('Pending', 'In Progress', 'Rework Requested')
		RETURNING `+projectColumns,
		req.AdminResponse, req.BillAmount, pq.Array(adminFiles),
		models.StatusCustomerReview, projectID))
	if err == sql.ErrNoRows {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to submit admin response: %w", err)
	}
	return project, nil
}

// UpdateProjectStatus performs a guarded status write: the row only moves if
// it is still in fromStatus, so stale writers lose.
func (d *DatabaseClient) UpdateProjectStatus(projectID uuid.UUID, fromStatus, toStatus, reworkFeedback string) (*models.Project, error) {
	project, err := scanProject(d.db.QueryRow(`
		UPDATE projects
		SET status = $1,
		    rework_feedback = NULLIF($2, ''),
		    updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING `+projectColumns,
		toStatus, reworkFeedback, projectID, fromStatus))
	if err == sql.ErrNoRows {
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	return project, nil
}

// AppendProjectFiles appends storage paths to one of the two independent
// attachment lists.
func (d *DatabaseClient) AppendProjectFiles(projectID uuid.UUID, paths []string, adminList bool) (*models.Project, error) {
	column := "attachments"
	if adminList {
		column = "admin_attachments"
	}

	project, err := scanProject(d.db.QueryRow(`
		UPDATE projects
		SET `+column+` = `+column+` || $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+projectColumns, pq.Array(paths), projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to append project files: %w", err)
	}
	return project, nil
}

// CountProjectsOwnedBy reports how many of the given projects belong to the
// customer. Used to validate payment submissions.
func (d *DatabaseClient) CountProjectsOwnedBy(projectIDs []uuid.UUID, customerID uuid.UUID) (int, error) {
	ids := make([]string, len(projectIDs))
	for i, id := range projectIDs {
		ids[i] = id.String()
	}

	var count int
	err := d.db.QueryRow(`
		SELECT COUNT(*)
		FROM projects
		WHERE id = ANY($1::uuid[]) AND customer_id = $2`,
		pq.Array(ids), customerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count projects: %w", err)
	}
	return count, nil
}

func collectProjects(rows *sql.Rows) ([]models.Project, error) {
	var projects []models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}
