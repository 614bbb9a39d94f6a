package chromium

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hversten/bookmirror/internal/domain"
	"github.com/hversten/bookmirror/internal/utils"
)

// Chromium stores visit times as microseconds since 1601-01-01 UTC.
// This is the offset of the Unix epoch in that scale, in milliseconds.
const chromeEpochOffsetMs = 11644473600000

// History reads visit records from a Chromium History database.
type History struct {
	db *sql.DB
}

// OpenHistory opens the History database at path read-only. Point it
// at a copy when the browser is running; Chromium holds a lock on the
// live file.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		utils.Close(db)
		return nil, fmt.Errorf("failed to configure history database: %w", err)
	}
	return &History{db: db}, nil
}

// Close closes the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Visits returns the visit records for a URL in chronological order,
// converted to milliseconds since the Unix epoch.
func (h *History) Visits(ctx context.Context, url string) ([]domain.Visit, error) {
	rows, err := h.db.QueryContext(ctx, `
		SELECT visits.visit_time
		FROM visits
		JOIN urls ON urls.id = visits.url
		WHERE urls.url = ?
		ORDER BY visits.visit_time ASC`, url)
	if err != nil {
		return nil, fmt.Errorf("failed to query visits: %w", err)
	}
	defer utils.Close(rows)

	var visits []domain.Visit
	for rows.Next() {
		var chromeTime int64
		if err := rows.Scan(&chromeTime); err != nil {
			return nil, fmt.Errorf("failed to scan visit row: %w", err)
		}
		visits = append(visits, domain.Visit{
			VisitTime: chromeTime/1000 - chromeEpochOffsetMs,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read visit rows: %w", err)
	}
	return visits, nil
}
