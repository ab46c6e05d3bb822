package handlers

import (
	"nexus-portal-backend/internal/models"
)

func profileResponse(p *models.Profile) *models.ProfileResponse {
	assets := p.BrandAssets
	if assets == nil {
		assets = []string{}
	}
	return &models.ProfileResponse{
		ID:           p.ID.String(),
		Email:        p.Email,
		Role:         p.Role,
		BrandName:    p.BrandName.String,
		Tagline:      p.Tagline.String,
		Description:  p.Description.String,
		ContactEmail: p.ContactEmail.String,
		PhoneNumber:  p.PhoneNumber.String,
		BrandAssets:  assets,
	}
}

func projectResponse(p *models.Project) models.ProjectResponse {
	attachments := p.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	adminFiles := p.AdminFiles
	if adminFiles == nil {
		adminFiles = []string{}
	}

	resp := models.ProjectResponse{
		ID:             p.ID.String(),
		ProjectNumber:  p.ProjectNumber,
		CustomerID:     p.CustomerID.String(),
		Category:       p.Category,
		Status:         p.Status,
		ProjectName:    p.ProjectName.String,
		Description:    p.Description,

		SpecStyleNumber: p.SpecStyleNumber.String,
		SpecColors:      p.SpecColors.String,
		SpecSizes:       p.SpecSizes.String,
		SpecApparelType: p.SpecApparelType.String,
		SpecGender:      p.SpecGender.String,
		SpecAgeGroup:    p.SpecAgeGroup.String,

		WantsNewStyle:        p.WantsNewStyle,
		WantsTagCreation:     p.WantsTagCreation,
		WantsColorVariations: p.WantsColorVariations,
		WantsStyleVariations: p.WantsStyleVariations,
		WantsMarketingPoster: p.WantsMarketingPoster,

		AdminResponse:  p.AdminResponse.String,
		ReworkFeedback: p.ReworkFeedback.String,
		BillAmount:     p.BillAmount,
		Attachments:    attachments,
		AdminFiles:     adminFiles,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
	if p.Owner != nil {
		resp.Owner = profileResponse(p.Owner)
	}
	return resp
}

func paymentResponse(p *models.Payment) models.PaymentResponse {
	ids := make([]string, len(p.ProjectIDs))
	for i, id := range p.ProjectIDs {
		ids[i] = id.String()
	}
	return models.PaymentResponse{
		ID:         p.ID.String(),
		CustomerID: p.CustomerID.String(),
		ProjectIDs: ids,
		Amount:     p.Amount,
		ProofURL:   p.ProofURL.String,
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
	}
}
