package models

type CreateProjectRequest struct {
	Category    string `json:"category" binding:"required" example:"AI Services"`
	ProjectName string `json:"project_name,omitempty" example:"Summer Collection 2025"`
	Description string `json:"description" binding:"required"`

	// Category-specific spec fields, all optional.
	SpecStyleNumber string `json:"spec_style_number,omitempty"`
	SpecColors      string `json:"spec_colors,omitempty"`
	SpecSizes       string `json:"spec_sizes,omitempty"`
	SpecApparelType string `json:"spec_apparel_type,omitempty"`
	SpecGender      string `json:"spec_gender,omitempty"`
	SpecAgeGroup    string `json:"spec_age_group,omitempty"`

	// Requested deliverable flags.
	WantsNewStyle        bool `json:"wants_new_style"`
	WantsTagCreation     bool `json:"wants_tag_creation"`
	WantsColorVariations bool `json:"wants_color_variations"`
	WantsStyleVariations bool `json:"wants_style_variations"`
	WantsMarketingPoster bool `json:"wants_marketing_poster"`

	// Storage paths already uploaded via the attachments endpoint.
	Attachments []string `json:"attachments,omitempty"`
}

type AdminResponseRequest struct {
	AdminResponse string  `json:"admin_response" binding:"required"`
	BillAmount    float64 `json:"bill_amount"`
	// Solution files to append to the admin attachment list.
	AdminAttachments []string `json:"admin_attachments,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"Accepted"`
	// Required when requesting rework.
	ReworkFeedback string `json:"rework_feedback,omitempty"`
}

type UpdateProfileRequest struct {
	BrandName    string `json:"brand_name"`
	Tagline      string `json:"tagline"`
	Description  string `json:"description"`
	ContactEmail string `json:"contact_email"`
	PhoneNumber  string `json:"phone_number"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required" example:"admin"`
}

type RemoveAssetRequest struct {
	Path string `json:"path" binding:"required"`
}

type NotifyRequest struct {
	// To is either the literal token "admin" or an email address.
	To      string `json:"to" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}
