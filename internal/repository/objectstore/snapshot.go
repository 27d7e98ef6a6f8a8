// Package objectstore keeps the Published Snapshot documents in S3-compatible object storage.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/RushikJoshi/GT-HRMS-sub000/internal/model"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/repository"
	"github.com/RushikJoshi/GT-HRMS-sub000/internal/storage"
)

// KeyPrefix is the object key prefix of every snapshot.
const KeyPrefix = "published"

// SnapshotStore implements repository.SnapshotRepository with one JSON object per
// (tenant, company). Each Upsert overwrites the object wholesale.
type SnapshotStore struct {
	store storage.Storage
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(s storage.Storage) *SnapshotStore {
	return &SnapshotStore{store: s}
}

var _ repository.SnapshotRepository = (*SnapshotStore)(nil)

// ErrInvalidKey is returned for ids that cannot form a snapshot key.
var ErrInvalidKey = errors.New("invalid snapshot key")

// Key returns the object key of a snapshot. Each id must be a single path
// segment, so a key never leaves published/<tenant>/.
func Key(tenantID, companyID string) (string, error) {
	for _, id := range []string{tenantID, companyID} {
		if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, id)
		}
	}
	return path.Join(KeyPrefix, tenantID, companyID+".json"), nil
}

// Upsert writes the snapshot document.
func (s *SnapshotStore) Upsert(ctx context.Context, page *model.PublishedPage) error {
	key, err := Key(page.TenantID, page.CompanyID)
	if err != nil {
		return err
	}
	b, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.store.Put(ctx, key, bytes.NewReader(b), storage.PutObjectOptions{
		Size:         int64(len(b)),
		ContentType:  "application/json",
		CacheControl: "no-cache",
		Metadata:     map[string]string{"version": fmt.Sprint(page.Version)},
	})
	if err != nil {
		return fmt.Errorf("put snapshot: %w", err)
	}
	return nil
}

// Find reads the snapshot document.
func (s *SnapshotStore) Find(ctx context.Context, tenantID, companyID string) (*model.PublishedPage, error) {
	key, err := Key(tenantID, companyID)
	if err != nil {
		// no snapshot can exist under an unusable id
		return nil, repository.ErrNotFound
	}
	rc, _, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	defer rc.Close()

	var page model.PublishedPage
	if err := json.NewDecoder(rc).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &page, nil
}
