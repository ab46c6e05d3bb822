package models

import "time"

type ProfileResponse struct {
	ID           string   `json:"id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	BrandName    string   `json:"brand_name,omitempty"`
	Tagline      string   `json:"tagline,omitempty"`
	Description  string   `json:"description,omitempty"`
	ContactEmail string   `json:"contact_email,omitempty"`
	PhoneNumber  string   `json:"phone_number,omitempty"`
	BrandAssets  []string `json:"brand_assets"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
}

type ProjectResponse struct {
	ID             string           `json:"id"`
	ProjectNumber  int64            `json:"project_number"`
	CustomerID     string           `json:"customer_id"`
	Category       string           `json:"category"`
	Status         string           `json:"status"`
	ProjectName    string           `json:"project_name,omitempty"`
	Description    string           `json:"description"`

	SpecStyleNumber string `json:"spec_style_number,omitempty"`
	SpecColors      string `json:"spec_colors,omitempty"`
	SpecSizes       string `json:"spec_sizes,omitempty"`
	SpecApparelType string `json:"spec_apparel_type,omitempty"`
	SpecGender      string `json:"spec_gender,omitempty"`
	SpecAgeGroup    string `json:"spec_age_group,omitempty"`

	WantsNewStyle        bool `json:"wants_new_style"`
	WantsTagCreation     bool `json:"wants_tag_creation"`
	WantsColorVariations bool `json:"wants_color_variations"`
	WantsStyleVariations bool `json:"wants_style_variations"`
	WantsMarketingPoster bool `json:"wants_marketing_poster"`

	AdminResponse  string           `json:"admin_response,omitempty"`
	ReworkFeedback string           `json:"rework_feedback,omitempty"`
	BillAmount     float64          `json:"bill_amount"`
	Attachments    []string         `json:"attachments"`
	AdminFiles     []string         `json:"admin_attachments"`
	Owner          *ProfileResponse `json:"profile,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

type ProjectListResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

type StatusResponse struct {
	ProjectID string    `json:"project_id"`
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PaymentResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProjectIDs []string  `json:"project_ids"`
	Amount     float64   `json:"amount"`
	ProofURL   string    `json:"proof_url,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

type UploadResponse struct {
	Paths []string `json:"paths"`
	// Public URLs for the uploaded paths, same order.
	URLs []string `json:"urls"`
}

type FileResponse struct {
	Path string `json:"path"`
	URL  string `json:"url"`
}

type ProjectFilesResponse struct {
	Attachments []FileResponse `json:"attachments"`
	AdminFiles  []FileResponse `json:"admin_attachments"`
}

type NotifyResponse struct {
	Success   bool   `json:"success"`
	Recipient string `json:"recipient"`
	MessageID string `json:"messageId"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
