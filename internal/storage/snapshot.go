package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhle/fnb-optimizer/internal/domain"
)

const snapshotPrefix = "reports/"

// SnapshotStore archives generated reports as JSON objects so runs can be
// compared after the fact.
type SnapshotStore struct {
	storage ObjectStorage
}

func NewSnapshotStore(storage ObjectStorage) *SnapshotStore {
	return &SnapshotStore{storage: storage}
}

// SaveReport uploads the report and returns the object key it was stored under.
func (s *SnapshotStore) SaveReport(ctx context.Context, report *domain.OptimizationReport) (string, error) {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report snapshot: %w", err)
	}

	key := fmt.Sprintf("%s%s.json", snapshotPrefix, report.Summary.GeneratedAt.UTC().Format("20060102T150405Z"))
	if err := s.storage.UploadObject(ctx, key, payload); err != nil {
		return "", err
	}
	return key, nil
}

// ListReports returns the keys of all archived reports, newest not guaranteed
// first; callers sort if they care.
func (s *SnapshotStore) ListReports(ctx context.Context) ([]ObjectInfo, error) {
	return s.storage.ListObjects(ctx, snapshotPrefix)
}

// LatestKey picks the lexicographically greatest key, which is the newest
// snapshot given the timestamp naming scheme.
func LatestKey(objects []ObjectInfo) (string, bool) {
	var latest string
	for _, obj := range objects {
		if obj.Key > latest {
			latest = obj.Key
		}
	}
	return latest, latest != ""
}
