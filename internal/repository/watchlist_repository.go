package repository

import (
	"database/sql"
	"time"
)

// WatchlistRepository is the narrow persistence collaborator: it owns
// per-user watchlist symbols and nothing else. Fetched articles are
// never persisted.
type WatchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) GetSymbols(userID string) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT symbol FROM watchlist
		WHERE user_id = $1
		ORDER BY added_at ASC
	`, userID)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return symbols, nil
}

// Add inserts a symbol for the user. Returns false when the symbol was
// already on the watchlist.
func (r *WatchlistRepository) Add(userID, symbol, company string) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO watchlist(user_id, symbol, company, added_at)
		VALUES($1, $2, $3, $4)
		ON CONFLICT (user_id, symbol) DO NOTHING
		RETURNING id
	`, userID, symbol, company, time.Now().UTC()).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}

// Remove deletes a symbol for the user. Returns false when the symbol
// was not on the watchlist.
func (r *WatchlistRepository) Remove(userID, symbol string) (bool, error) {
	res, err := r.db.Exec(`
		DELETE FROM watchlist WHERE user_id = $1 AND symbol = $2
	`, userID, symbol)

	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
