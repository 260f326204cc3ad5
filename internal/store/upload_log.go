package store

import (
	"fmt"
	"time"
)

// UploadLog is one audit entry for an upload attempt.
type UploadLog struct {
	ID            int64     `json:"id"`
	UploadID      string    `json:"uploadId"`
	Filename      string    `json:"filename"`
	FileSize      int64     `json:"fileSize"`
	FileHash      string    `json:"fileHash"`
	TotalRows     int       `json:"totalRows"`
	ImportedRows  int       `json:"importedRows"`
	SkippedRows   int       `json:"skippedRows"`
	CancelledRows int       `json:"cancelledRows"`
	Status        string    `json:"status"`
	ErrorMessage  string    `json:"errorMessage"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InsertUploadLog records one upload attempt, successful or not.
func (s *Store) InsertUploadLog(entry *UploadLog) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs
			(upload_id, filename, file_size, file_hash,
			 total_rows, imported_rows, skipped_rows, cancelled_rows,
			 status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.UploadID, entry.Filename, entry.FileSize, entry.FileHash,
		entry.TotalRows, entry.ImportedRows, entry.SkippedRows, entry.CancelledRows,
		entry.Status, entry.ErrorMessage)
	if err != nil {
		return 0, fmt.Errorf("failed to insert upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// ListUploadLogs returns the most recent audit entries, newest first.
func (s *Store) ListUploadLogs(limit int) ([]*UploadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, upload_id, filename, file_size, file_hash,
		       total_rows, imported_rows, skipped_rows, cancelled_rows,
		       status, error_message, created_at
		FROM upload_logs
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query upload logs: %w", err)
	}
	defer rows.Close()

	var out []*UploadLog
	for rows.Next() {
		var it UploadLog
		if err := rows.Scan(&it.ID, &it.UploadID, &it.Filename, &it.FileSize, &it.FileHash,
			&it.TotalRows, &it.ImportedRows, &it.SkippedRows, &it.CancelledRows,
			&it.Status, &it.ErrorMessage, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan upload log: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}
