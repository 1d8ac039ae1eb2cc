// Package baselinestore keeps the CCS811 baseline across power cycles in a gob file.
//
// The CCS811 application note asks to read the baseline only after the sensor
// has been on for at least MinimumUptime, and to write it back after warm-up.
// The store records when and after how much uptime a value was captured, so the
// caller can apply that policy.
package baselinestore

import (
	"bytes"
	"encoding/gob"
	"errors"
	"io/ioutil"
	"os"
	"sync"
	"time"
)

const (
	// MinimumUptime is the running time after which the baseline is worth saving.
	MinimumUptime = 20 * time.Minute
	// RetrySaveInterval is the delay between save attempts if the previous one failed.
	RetrySaveInterval = 2 * time.Second
)

var (
	// ErrorNoFilename is returned when trying to load without specifying a file
	ErrorNoFilename = errors.New("Filename not specified")
	// ErrorNoRecord is returned when saving before any record was set
	ErrorNoRecord = errors.New("No baseline recorded")
)

// Record is one captured baseline.
type Record struct {
	Baseline uint16
	Captured time.Time
	Uptime   time.Duration
	Firmware uint16
}

// Store persists the latest Record to Filename.
type Store struct {
	sync.Mutex

	// Filename is the file the record is written to. Without it the store only lives in memory.
	Filename string
	// SaveInterval is the minimum interval between conditional saves.
	SaveInterval time.Duration

	record   Record
	valid    bool
	modified bool

	buffer   bytes.Buffer
	nextSave time.Time
}

// Load restores the record from Filename.
func (s *Store) Load() (Record, error) {
	s.Lock()
	defer s.Unlock()

	if s.Filename == "" {
		return Record{}, ErrorNoFilename
	}

	s.buffer.Reset()
	file, err := os.Open(s.Filename)
	if err != nil {
		return Record{}, err
	}
	defer file.Close()

	var r Record
	_, err = s.buffer.ReadFrom(file)
	if err == nil {
		err = gob.NewDecoder(&s.buffer).Decode(&r)
	}
	if err != nil {
		return Record{}, err
	}

	s.record = r
	s.valid = true
	s.modified = false

	return r, nil
}

// Record returns the current record and whether there is one.
func (s *Store) Record() (Record, bool) {
	s.Lock()
	defer s.Unlock()

	return s.record, s.valid
}

// Update replaces the record. It is written by the next Save or SaveConditional.
func (s *Store) Update(r Record) {
	s.Lock()
	defer s.Unlock()

	s.record = r
	s.valid = true
	s.modified = true
}

func (s *Store) save() error {
	if s.Filename == "" {
		return nil
	}
	if !s.valid {
		return ErrorNoRecord
	}

	tmpName := s.Filename + ".tmp"

	s.buffer.Reset()
	err := gob.NewEncoder(&s.buffer).Encode(&s.record)
	if err != nil {
		goto done
	}

	err = ioutil.WriteFile(tmpName, s.buffer.Bytes(), 0600)
	if err != nil {
		goto done
	}

	err = os.Rename(tmpName, s.Filename)

done:
	if err == nil {
		s.modified = false
		s.nextSave = time.Now().Add(s.SaveInterval)
	} else {
		s.nextSave = time.Now().Add(RetrySaveInterval)
	}

	return err
}

// Save writes the record, regardless if it changed or how long ago the previous save was.
func (s *Store) Save() error {
	s.Lock()
	defer s.Unlock()

	return s.save()
}

// SaveConditional saves if the record was updated and SaveInterval has passed since the last save.
func (s *Store) SaveConditional() error {
	s.Lock()
	defer s.Unlock()

	if s.Filename == "" || !s.modified || time.Now().Before(s.nextSave) {
		return nil
	}

	return s.save()
}
