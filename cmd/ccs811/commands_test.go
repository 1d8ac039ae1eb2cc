package main

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/BertoldVdb/go-ccs811/ccs811"
)

func TestProgressLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	const total = 200
	progress := progressLogger(logrus.NewEntry(logger), 100)

	progress(ccs811.Progress{Phase: ccs811.PhaseErase, Total: total})
	for written := ccs811.FlashChunkSize; written <= total; written += ccs811.FlashChunkSize {
		progress(ccs811.Progress{Phase: ccs811.PhaseWrite, Written: written, Total: total})
	}
	progress(ccs811.Progress{Phase: ccs811.PhaseVerify, Written: total, Total: total})

	var logged []int
	for _, e := range hook.AllEntries() {
		if e.Data["phase"] == ccs811.PhaseWrite {
			logged = append(logged, e.Data["written"].(int))
		}
	}

	want := []int{8, 108, 200}
	if len(logged) != len(want) {
		t.Fatal("Unexpected progress entries", logged)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Error("Unexpected progress entries", logged)
		}
	}
	if len(hook.AllEntries()) != 5 {
		t.Error("Phase changes not logged", len(hook.AllEntries()))
	}
}
