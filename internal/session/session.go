// Package session owns the per-viewer state: the uploaded ledgers and the
// current selection (year, month, optional day). The computation core never
// sees this store; handlers read the state out and pass plain values down.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fante86/calenpag/internal/model"
)

// ErrNoUpload is returned before any ledger has been uploaded.
var ErrNoUpload = errors.New("no ledger uploaded")

// Upload is one normalized ledger kept in memory. A new upload fully
// replaces the working set; earlier uploads stay addressable by ID until the
// process exits.
type Upload struct {
	ID         string
	Filename   string
	Records    []*model.PaymentRecord
	Skipped    int
	Cancelled  int
	UploadedAt time.Time
}

// Selection is the UI state: chosen year/month and the drilldown day
// (0 = none selected).
type Selection struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Store is a mutex-guarded in-memory session store.
type Store struct {
	mu        sync.RWMutex
	uploads   map[string]*Upload
	currentID string
	selection Selection
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{uploads: make(map[string]*Upload)}
}

// NewUpload registers a normalized ledger and makes it current. The
// selection resets to the most recent year with data and the current month.
func (s *Store) NewUpload(filename string, records []*model.PaymentRecord, skipped, cancelled int, now time.Time) *Upload {
	up := &Upload{
		ID:         uuid.New().String(),
		Filename:   filename,
		Records:    records,
		Skipped:    skipped,
		Cancelled:  cancelled,
		UploadedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[up.ID] = up
	s.currentID = up.ID
	s.selection = Selection{Year: latestYear(records, now), Month: int(now.Month())}
	return up
}

func latestYear(records []*model.PaymentRecord, now time.Time) int {
	year := 0
	for _, r := range records {
		if y := r.DueDate.Year(); y > year {
			year = y
		}
	}
	if year == 0 {
		year = now.Year()
	}
	return year
}

// Current returns the active upload.
func (s *Store) Current() (*Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	up, ok := s.uploads[s.currentID]
	if !ok {
		return nil, ErrNoUpload
	}
	return up, nil
}

// Get returns an upload by ID.
func (s *Store) Get(id string) (*Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	up, ok := s.uploads[id]
	if !ok {
		return nil, ErrNoUpload
	}
	return up, nil
}

// Selection returns the current selection state.
func (s *Store) Selection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SelectMonth sets year/month and clears any selected day.
func (s *Store) SelectMonth(year, month int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = Selection{Year: year, Month: month}
}

// SelectDay sets the drilldown day within the current month.
func (s *Store) SelectDay(day int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Day = day
}

// ClearDay closes the drilldown.
func (s *Store) ClearDay() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Day = 0
}
