package store

import (
	"errors"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := New(filepath.Join(t.TempDir(), "calenpag.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestUploadLogRoundTrip(t *testing.T) {
	st := newTestStore(t)

	id, err := st.InsertUploadLog(&UploadLog{
		UploadID:      "u-1",
		Filename:      "contas.csv",
		FileSize:      1024,
		FileHash:      "abc",
		TotalRows:     10,
		ImportedRows:  7,
		SkippedRows:   2,
		CancelledRows: 1,
		Status:        "ok",
	})
	if err != nil {
		t.Fatalf("InsertUploadLog: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero id")
	}

	if _, err := st.InsertUploadLog(&UploadLog{
		UploadID: "u-2", Filename: "ruim.csv", Status: "rejected",
		ErrorMessage: "missing required columns",
	}); err != nil {
		t.Fatalf("InsertUploadLog rejected: %v", err)
	}

	logs, err := st.ListUploadLogs(10)
	if err != nil {
		t.Fatalf("ListUploadLogs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	// Newest first.
	if logs[0].Filename != "ruim.csv" || logs[0].Status != "rejected" {
		t.Errorf("newest log = %+v", logs[0])
	}
	if logs[1].ImportedRows != 7 || logs[1].SkippedRows != 2 || logs[1].CancelledRows != 1 {
		t.Errorf("log counts = %+v", logs[1])
	}
	if logs[1].CreatedAt.IsZero() {
		t.Error("created_at should be populated")
	}
}

func TestCurrentYearMonthPersistence(t *testing.T) {
	st := newTestStore(t)

	if _, _, err := st.GetCurrentYearMonth(); !errors.Is(err, ErrStateNotFound) {
		t.Errorf("empty store err = %v, want ErrStateNotFound", err)
	}

	if err := st.SetCurrentYearMonth(2024, 3); err != nil {
		t.Fatalf("SetCurrentYearMonth: %v", err)
	}
	year, month, err := st.GetCurrentYearMonth()
	if err != nil {
		t.Fatalf("GetCurrentYearMonth: %v", err)
	}
	if year != 2024 || month != 3 {
		t.Errorf("got %d-%d, want 2024-3", year, month)
	}

	// Upsert overwrites.
	if err := st.SetCurrentYearMonth(2025, 12); err != nil {
		t.Fatalf("SetCurrentYearMonth again: %v", err)
	}
	year, month, _ = st.GetCurrentYearMonth()
	if year != 2025 || month != 12 {
		t.Errorf("after upsert got %d-%d", year, month)
	}
}
