package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/spotifyle/internal/models"
	"github.com/desertthunder/spotifyle/internal/shared"
)

// AssetRepository implements models.Repository[*models.Asset] for harvested Spotify assets.
//
// Assets are upserted by URI during harvest; the observer relation records
// which users' listening data surfaced each asset.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the given database connection
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = "id, sequence, uri, kind, name, image, preview, created_at, updated_at, deleted_at"

// Create inserts a new [models.Asset] into the database with generated ID and sequence
func (r *AssetRepository) Create(asset *models.Asset) error {
	sequence, err := NextSequence(r.db, "assets")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	asset.SetID(id)
	asset.SetSequence(sequence)

	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO assets (id, sequence, uri, kind, name, image, preview, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		asset.URI(),
		string(asset.Kind()),
		asset.Name(),
		asset.Image(),
		asset.Preview(),
		asset.CreatedAt(),
		asset.UpdatedAt(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("asset uri already exists: %s", asset.URI())
		}
		return fmt.Errorf("failed to insert asset: %w", err)
	}

	return nil
}

// Get retrieves an asset by ID, excluding soft-deleted assets
func (r *AssetRepository) Get(id string) (*models.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM assets WHERE id = ? AND deleted_at IS NULL", assetColumns)
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByURI retrieves an asset by its Spotify URI
func (r *AssetRepository) GetByURI(uri string) (*models.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM assets WHERE uri = ? AND deleted_at IS NULL", assetColumns)
	return r.scanOne(r.db.QueryRow(query, uri))
}

// Observe links an asset to an observing user. Re-observing is a no-op.
func (r *AssetRepository) Observe(assetID, userID string) error {
	query := `
		INSERT OR IGNORE INTO asset_observers (asset_id, user_id, created_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.Exec(query, assetID, userID, time.Now()); err != nil {
		return fmt.Errorf("failed to record observer: %w", err)
	}
	return nil
}

// ListByKind retrieves the assets of a kind observed by observerID, optionally
// requiring image and preview references. This is the eligibility query the
// stage generators run against.
func (r *AssetRepository) ListByKind(kind models.AssetKind, observerID string, needImage, needPreview bool) ([]*models.Asset, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM assets a
		JOIN asset_observers o ON o.asset_id = a.id
		WHERE a.kind = ? AND o.user_id = ? AND a.deleted_at IS NULL
	`, prefixColumns("a", assetColumns))

	if needImage {
		query += " AND a.image IS NOT NULL AND a.image != ''"
	}
	if needPreview {
		query += " AND a.preview IS NOT NULL AND a.preview != ''"
	}

	query += " ORDER BY a.sequence ASC"

	rows, err := r.db.Query(query, string(kind), observerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// Update modifies an existing asset in the database
func (r *AssetRepository) Update(asset *models.Asset) error {
	if err := asset.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	asset.SetUpdatedAt(now)

	query := `
		UPDATE assets
		SET name = ?, image = ?, preview = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, asset.Name(), asset.Image(), asset.Preview(), now, asset.ID())
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}

	return requireAffected(result, "asset", asset.ID())
}

// Delete soft-deletes an asset by ID
func (r *AssetRepository) Delete(id string) error {
	query := `
		UPDATE assets
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}

	return requireAffected(result, "asset", id)
}

// List retrieves all assets matching the given criteria, excluding soft-deleted assets
func (r *AssetRepository) List(criteria map[string]any) ([]*models.Asset, error) {
	query := fmt.Sprintf("SELECT %s FROM assets WHERE deleted_at IS NULL", assetColumns)

	args := []any{}

	if kind, ok := criteria["kind"].(string); ok && kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	return r.collect(rows)
}

// collect scans all rows into assets.
func (r *AssetRepository) collect(rows *sql.Rows) ([]*models.Asset, error) {
	var assets []*models.Asset
	for rows.Next() {
		asset, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return assets, nil
}

// scanOne scans a single [sql.Row] into a [models.Asset]
func (r *AssetRepository) scanOne(row *sql.Row) (*models.Asset, error) {
	asset, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return nil, shared.ErrAssetNotFound
	}
	return asset, err
}

// scanAsset scans asset columns via the given scan function.
func scanAsset(scan func(...any) error) (*models.Asset, error) {
	var (
		id        string
		sequence  int
		uri       string
		kind      string
		name      string
		image     sql.NullString
		preview   sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := scan(&id, &sequence, &uri, &kind, &name, &image, &preview, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan asset: %w", err)
	}

	asset := models.NewAsset(models.AssetKind(kind), uri, name, nullable(image), nullable(preview))
	asset.SetID(id)
	asset.SetSequence(sequence)
	asset.SetCreatedAt(createdAt)
	asset.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		asset.SetDeletedAt(&deletedAt.Time)
	}

	return asset, nil
}

// nullable converts a NullString into a *string.
func nullable(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	cols := strings.Split(columns, ", ")
	for i, col := range cols {
		cols[i] = alias + "." + col
	}
	return strings.Join(cols, ", ")
}

// requireAffected fails when an UPDATE touched no rows.
func requireAffected(result sql.Result, entity, id string) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%s not found or already deleted: %s", entity, id)
	}
	return nil
}
