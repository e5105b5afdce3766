package targets

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// LoadSQLite reads the address column of the wallets table of a SQLite
// database. Addresses stored as 20-byte blobs are returned hex encoded,
// anything else as text.
func LoadSQLite(path string) ([]string, error) {
	// sqlite3 would silently create a missing file
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open targets: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open targets: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT address FROM wallets")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", path, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if len(raw) == 20 {
			out = append(out, hex.EncodeToString(raw))
			continue
		}
		out = append(out, string(raw))
	}
	return out, rows.Err()
}
