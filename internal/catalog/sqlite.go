package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"
)

// loadFeedsSQLite reads the feed table from a SQLite database. The database is
// opened read-only for the duration of the load; the catalog keeps no
// connection afterwards.
func loadFeedsSQLite(path string) ([]Feed, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("feed database %s not found", path)
		}
		return nil, fmt.Errorf("stat feed database: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open feed database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec("PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("apply read-only pragma: %w", err)
	}

	rows, err := db.Query(`SELECT feed_id, theater, res_w, res_h, frrate, codec FROM feeds ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query feeds: %w", err)
	}
	defer rows.Close()

	var feeds []Feed
	for rows.Next() {
		var (
			id      sql.NullString
			theater sql.NullString
			width   sql.NullInt64
			height  sql.NullInt64
			frrate  sql.NullFloat64
			codec   sql.NullString
		)
		if err := rows.Scan(&id, &theater, &width, &height, &frrate, &codec); err != nil {
			return nil, fmt.Errorf("scan feed row: %w", err)
		}
		feed := Feed{
			ID:      id.String,
			Theater: theater.String,
			Codec:   codec.String,
		}
		if width.Valid && width.Int64 >= 0 {
			v := int(width.Int64)
			feed.Width = &v
		}
		if height.Valid && height.Int64 >= 0 {
			v := int(height.Int64)
			feed.Height = &v
		}
		if frrate.Valid && frrate.Float64 >= 0 {
			v := frrate.Float64
			feed.FrameRate = &v
		}
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate feeds: %w", err)
	}
	return feeds, nil
}
