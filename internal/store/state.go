package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// ErrStateNotFound is returned for app_state keys that were never set.
var ErrStateNotFound = errors.New("state key not found")

// GetState reads one app_state value.
func (s *Store) GetState(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%w: %s", ErrStateNotFound, key)
		}
		return "", err
	}
	return value, nil
}

// SetState upserts one app_state value.
func (s *Store) SetState(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, key, value, value)
	return err
}

func (s *Store) getStateInt(key string) (int, error) {
	value, err := s.GetState(key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(value)
}

// GetCurrentYearMonth returns the persisted last selection.
func (s *Store) GetCurrentYearMonth() (year, month int, err error) {
	year, err = s.getStateInt("current_year")
	if err != nil {
		return 0, 0, err
	}
	month, err = s.getStateInt("current_month")
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// SetCurrentYearMonth persists the selection so a restart reopens the same
// view.
func (s *Store) SetCurrentYearMonth(year, month int) error {
	if err := s.SetState("current_year", strconv.Itoa(year)); err != nil {
		return err
	}
	return s.SetState("current_month", strconv.Itoa(month))
}
