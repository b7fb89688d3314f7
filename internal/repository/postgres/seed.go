package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

type seedVenue struct {
	name, description, address, imageURL string
	placeType                            string
}

var seedVenues = []seedVenue{
	{
		name:        "Kanzie Coffee Lab",
		description: "Sakin bir çalışma ortamı ve harika 3. dalga kahveler.",
		address:     "Moda, İstanbul",
		imageURL:    "https://images.unsplash.com/photo-1509042239860-f550ce710b93",
		placeType:   "cafe",
	},
	{
		name:        "Antigravity Pub",
		description: "Draft biralar ve canlı müzik için en iyi adres.",
		address:     "Beşiktaş, İstanbul",
		imageURL:    "https://images.unsplash.com/photo-1514933651103-005eec06c04b",
		placeType:   "bar",
	},
	{
		name:        "VR Escape",
		description: "Arkadaş grubunla unutulmaz bir VR deneyimi yaşa.",
		address:     "Kadıköy, İstanbul",
		imageURL:    "https://images.unsplash.com/photo-1622979135225-d2ba269cf1ac",
		placeType:   "amusement_center",
	},
}

// SeedIfEmpty inserts the starter venues when the venues table is empty.
// Categories come from migrations. It reports whether anything was written.
func SeedIfEmpty(ctx context.Context, db *sql.DB) (bool, error) {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count); err != nil {
		return false, fmt.Errorf("count venues: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	for _, v := range seedVenues {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO venues (name, description, address, image_url, category_id)
			 SELECT $1, $2, $3, $4, id FROM categories WHERE place_type = $5`,
			v.name, v.description, v.address, v.imageURL, v.placeType,
		)
		if err != nil {
			return false, fmt.Errorf("insert venue %s: %w", v.name, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return false, fmt.Errorf("insert venue %s: category %s missing", v.name, v.placeType)
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
