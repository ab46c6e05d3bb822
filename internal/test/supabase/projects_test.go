package supabase_test

import (
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nexus-portal-backend/internal/models"
	"nexus-portal-backend/internal/supabase"
)

var projectTestColumns = []string{
	"id", "project_number", "customer_id", "category", "status",
	"project_name", "description",
	"spec_style_number", "spec_colors", "spec_sizes",
	"spec_apparel_type", "spec_gender", "spec_age_group",
	"wants_new_style", "wants_tag_creation", "wants_color_variations",
	"wants_style_variations", "wants_marketing_poster",
	"admin_response", "rework_feedback", "bill_amount",
	"attachments", "admin_attachments", "created_at", "updated_at",
}

func TestCreateProject_PersistsSpecFieldsAndWantsFlags(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromConn(db)

	customerID := uuid.New()
	projectID := uuid.New()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO projects").
		WithArgs(
			sqlmock.AnyArg(), customerID, models.CategoryAIServices, models.StatusPending,
			"Summer Drop", "Two colorway tees",
			"STY-104", "Black, Sand", "S-XL", "T-Shirt", "Unisex", "Adult",
			true, false, true, false, true,
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows(projectTestColumns).AddRow(
			projectID.String(), int64(12), customerID.String(),
			models.CategoryAIServices, models.StatusPending,
			"Summer Drop", "Two colorway tees",
			"STY-104", "Black, Sand", "S-XL", "T-Shirt", "Unisex", "Adult",
			true, false, true, false, true,
			nil, nil, 0.0,
			[]byte("{}"), []byte("{}"), now, now,
		))

	project, err := client.CreateProject(customerID, &models.CreateProjectRequest{
		Category:    models.CategoryAIServices,
		ProjectName: "Summer Drop",
		Description: "Two colorway tees",

		SpecStyleNumber: "STY-104",
		SpecColors:      "Black, Sand",
		SpecSizes:       "S-XL",
		SpecApparelType: "T-Shirt",
		SpecGender:      "Unisex",
		SpecAgeGroup:    "Adult",

		WantsNewStyle:        true,
		WantsColorVariations: true,
		WantsMarketingPoster: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "STY-104", project.SpecStyleNumber.String)
	assert.Equal(t, "T-Shirt", project.SpecApparelType.String)
	assert.Equal(t, "Adult", project.SpecAgeGroup.String)
	assert.True(t, project.WantsNewStyle)
	assert.False(t, project.WantsTagCreation)
	assert.True(t, project.WantsColorVariations)
	assert.True(t, project.WantsMarketingPoster)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProjects_ActiveFilterUsesSettledSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	client := supabase.NewDatabaseClientFromConn(db)

	customerID := uuid.New()

	mock.ExpectQuery("FROM projects").
		WithArgs(customerID, "", true, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(projectTestColumns))

	projects, err := client.ListProjects(customerID, "", true)
	require.NoError(t, err)
	assert.Empty(t, projects)

	assert.NoError(t, mock.ExpectationsWereMet())
}
