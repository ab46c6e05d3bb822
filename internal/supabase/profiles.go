package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"nexus-portal-backend/internal/models"
)

const profileColumns = `id, email, role, brand_name, tagline, description, contact_email, phone_number, brand_assets, created_at, updated_at`

func scanProfile(row interface{ Scan(...interface{}) error }) (*models.Profile, error) {
	var profile models.Profile
	err := row.Scan(
		&profile.ID, &profile.Email, &profile.Role,
		&profile.BrandName, &profile.Tagline, &profile.Description,
		&profile.ContactEmail, &profile.PhoneNumber,
		pq.Array(&profile.BrandAssets),
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EnsureProfile fetches the caller's profile row, creating it on first
// authenticated touch. The auth uid is the primary key, so retries are
// harmless.
func (d *DatabaseClient) EnsureProfile(userID uuid.UUID, email string) (*models.Profile, error) {
	profile, err := scanProfile(d.db.QueryRow(`
		INSERT INTO profiles (id, email)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email
		RETURNING `+profileColumns, userID, email))
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}
	return profile, nil
}

func (d *DatabaseClient) GetProfile(userID uuid.UUID) (*models.Profile, error) {
	profile, err := scanProfile(d.db.QueryRow(`
		SELECT `+profileColumns+`
		FROM profiles
		WHERE id = $1`, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

func (d *DatabaseClient) ListProfiles() ([]models.Profile, error) {
	rows, err := d.db.Query(`
		SELECT ` + profileColumns + `
		FROM profiles
		ORDER BY email ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

func (d *DatabaseClient) UpdateProfileBrand(userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Profile, error) {
	profile, err := scanProfile(d.db.QueryRow(`
		UPDATE profiles
		SET brand_name = $1, tagline = $2, description = $3,
		    contact_email = $4, phone_number = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+profileColumns,
		req.BrandName, req.Tagline, req.Description,
		req.ContactEmail, req.PhoneNumber, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profile, nil
}

func (d *DatabaseClient) UpdateProfileRole(userID uuid.UUID, role string) (*models.Profile, error) {
	profile, err := scanProfile(d.db.QueryRow(`
		UPDATE profiles
		SET role = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+profileColumns, role, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	return profile, nil
}

func (d *DatabaseClient) AppendBrandAssets(userID uuid.UUID, paths []string) (*models.Profile, error) {
	profile, err := scanProfile(d.db.QueryRow(`
		UPDATE profiles
		SET brand_assets = brand_assets || $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+profileColumns, pq.Array(paths), userID))
	if err != nil {
		return nil, fmt.Errorf("failed to append brand assets: %w", err)
	}
	return profile, nil
}

func (d *DatabaseClient) RemoveBrandAsset(userID uuid.UUID, path string) (*models.Profile, error) {
	profile, err := scanProfile(d.db.QueryRow(`
		UPDATE profiles
		SET brand_assets = array_remove(brand_assets, $1), updated_at = NOW()
		WHERE id = $2
		RETURNING `+profileColumns, path, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to remove brand asset: %w", err)
	}
	return profile, nil
}

// AdminEmail returns the address of the longest-standing admin profile, or
// sql.ErrNoRows when no admin exists yet.
func (d *DatabaseClient) AdminEmail() (string, error) {
	var email string
	err := d.db.QueryRow(`
		SELECT email
		FROM profiles
		WHERE role = 'admin'
		ORDER BY created_at ASC
		LIMIT 1`).Scan(&email)
	if err == sql.ErrNoRows {
		return "", err
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up admin email: %w", err)
	}
	return email, nil
}
