package persistence

import (
	"context"
	"fmt"

	"github.com/hupe1980/xmeans/blobstore"
	"github.com/hupe1980/xmeans/model"
	"github.com/hupe1980/xmeans/resource"
)

// CurrentKey is the blob name holding the published snapshot pointer.
const CurrentKey = "CURRENT"

// Manager saves and loads clustering snapshots through a blob store and
// maintains the CURRENT pointer naming the published snapshot.
type Manager struct {
	store       blobstore.Store
	controller  *resource.Controller
	compression Compression
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCompression sets the payload codec for saved snapshots.
// Loading auto-detects the codec from the snapshot header.
func WithCompression(c Compression) ManagerOption {
	return func(m *Manager) {
		m.compression = c
	}
}

// WithController attaches a resource controller limiting snapshot
// concurrency and IO throughput. Pass nil to disable limiting.
func WithController(c *resource.Controller) ManagerOption {
	return func(m *Manager) {
		m.controller = c
	}
}

// NewManager creates a Manager writing to the given store.
func NewManager(store blobstore.Store, optFns ...ManagerOption) *Manager {
	m := &Manager{
		store:       store,
		compression: CompressionZstd,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(m)
		}
	}
	return m
}

// Save encodes the clustering and writes it under name.
func (m *Manager) Save(ctx context.Context, name string, c *model.Clustering) error {
	if err := m.controller.AcquireSnapshot(ctx); err != nil {
		return err
	}
	defer m.controller.ReleaseSnapshot()

	data, err := Encode(c, m.compression)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", name, err)
	}

	if err := m.controller.AcquireIO(ctx, len(data)); err != nil {
		return err
	}
	if err := m.store.Put(ctx, name, data); err != nil {
		return fmt.Errorf("put snapshot %q: %w", name, err)
	}

	return nil
}

// Load reads and decodes the snapshot stored under name.
func (m *Manager) Load(ctx context.Context, name string) (*model.Clustering, error) {
	if err := m.controller.AcquireSnapshot(ctx); err != nil {
		return nil, err
	}
	defer m.controller.ReleaseSnapshot()

	blob, err := m.store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %q: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	if err := m.controller.AcquireIO(ctx, int(blob.Size())); err != nil {
		return nil, err
	}
	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %q: %w", name, err)
	}

	c, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", name, err)
	}
	return c, nil
}

// Publish points CURRENT at the named snapshot. With a plain store this is
// a blind overwrite; commit stores (blobstore/s3.CommitStore) make it an
// atomic compare-and-swap.
func (m *Manager) Publish(ctx context.Context, name string) error {
	return m.store.Put(ctx, CurrentKey, []byte(name))
}

// Current returns the name of the published snapshot.
func (m *Manager) Current(ctx context.Context) (string, error) {
	blob, err := m.store.Open(ctx, CurrentKey)
	if err != nil {
		return "", err
	}
	defer func() { _ = blob.Close() }()

	data, err := blobstore.ReadAll(ctx, blob)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadCurrent loads the published snapshot.
func (m *Manager) LoadCurrent(ctx context.Context) (*model.Clustering, error) {
	name, err := m.Current(ctx)
	if err != nil {
		return nil, err
	}
	return m.Load(ctx, name)
}
