package scanner

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seopilot/internal/domain"
)

type fakeConns struct {
	known map[string]domain.Connection
}

func (f *fakeConns) List(ctx context.Context) ([]domain.Connection, error) { return nil, nil }
func (f *fakeConns) Get(ctx context.Context, id string) (domain.Connection, bool, error) {
	c, ok := f.known[id]
	return c, ok, nil
}
func (f *fakeConns) Delete(ctx context.Context, ids []string) (int64, error) { return 0, nil }
func (f *fakeConns) TouchLastSync(ctx context.Context, id string) error      { return nil }

type fakeScans struct {
	created []string
}

func (f *fakeScans) CreateScan(ctx context.Context, connectionID string) (string, error) {
	f.created = append(f.created, connectionID)
	return fmt.Sprintf("scan-%d", len(f.created)), nil
}
func (f *fakeScans) ScanStatus(ctx context.Context, scanID string) (string, float64, error) {
	return "queued", 0, nil
}

func TestEnqueue_UnknownConnection(t *testing.T) {
	svc := New(&fakeConns{known: map[string]domain.Connection{}}, &fakeScans{})

	_, err := svc.Enqueue(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUnknownConnection)
}

func TestEnqueueAll_StopsOnFirstError(t *testing.T) {
	conns := &fakeConns{known: map[string]domain.Connection{
		"c1": {ID: "c1"},
		"c3": {ID: "c3"},
	}}
	scans := &fakeScans{}
	svc := New(conns, scans)

	ids, err := svc.EnqueueAll(context.Background(), []string{"c1", "c2", "c3"})
	require.Error(t, err)
	assert.Equal(t, []string{"scan-1"}, ids)
	assert.Equal(t, []string{"c1"}, scans.created)
}

func TestEnqueueAll_AllKnown(t *testing.T) {
	conns := &fakeConns{known: map[string]domain.Connection{
		"c1": {ID: "c1"},
		"c2": {ID: "c2"},
	}}
	svc := New(conns, &fakeScans{})

	ids, err := svc.EnqueueAll(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestNormalizeStoreURL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"full url", "https://shop.acme-outdoors.com/admin", "acme-outdoors.com", false},
		{"bare hostname", "bluebikes.example", "bluebikes.example", false},
		{"scheme added", "www.Legacy-Shop.net", "legacy-shop.net", false},
		{"whitespace trimmed", "  https://fixer-upper.io  ", "fixer-upper.io", false},
		{"empty", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeStoreURL(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
