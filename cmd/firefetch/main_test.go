package main

import (
	"errors"
	"testing"

	"github.com/emberlab/firefetch/internal/model"
)

func TestSummarize(t *testing.T) {
	results := []model.DownloadResult{
		{Status: model.StatusOK, FilePath: "out/a.png"},
		{Status: model.StatusOK, FilePath: "out/b.png"},
		{Status: model.StatusSkipped, Reason: "no imagery in window"},
		{Status: model.StatusFailed, Err: errors.New("status 500")},
	}

	ok, skipped, failed := summarize(results)
	if ok != 2 || skipped != 1 || failed != 1 {
		t.Fatalf("summarize() = (%d, %d, %d), want (2, 1, 1)", ok, skipped, failed)
	}
}

func TestSummarize_Empty(t *testing.T) {
	ok, skipped, failed := summarize(nil)
	if ok != 0 || skipped != 0 || failed != 0 {
		t.Fatalf("summarize(nil) = (%d, %d, %d), want zeros", ok, skipped, failed)
	}
}
