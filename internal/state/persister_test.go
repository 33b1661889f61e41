package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-storefront/internal/mock"
	"github.com/MKhiriev/go-storefront/internal/store"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStateRepository()
	p := NewPersister[sample](repo, "sample")

	_, ok, err := p.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Save(ctx, sample{Name: "x", Count: 2}))

	raw, err := repo.Load(ctx, "sample")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"state":{"name":"x","count":2}}`, string(raw))

	got, ok, err := p.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, sample{Name: "x", Count: 2}, got)

	require.NoError(t, p.Clear(ctx))
	_, ok, err = p.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPersister_Errors(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		stored  string
		repoErr error
		wantErr error
	}{
		{name: "unsupported version", stored: `{"version":2,"state":{}}`, wantErr: ErrUnsupportedVersion},
		{name: "repository failure", repoErr: store.ErrExecutingQuery, wantErr: store.ErrExecutingQuery},
		{name: "corrupt payload", stored: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock.NewMockStateRepository(ctrl)
			repo.EXPECT().Load(gomock.Any(), "sample").Return([]byte(tt.stored), tt.repoErr)

			_, ok, err := NewPersister[sample](repo, "sample").Load(ctx)
			require.Error(t, err)
			assert.False(t, ok)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestPersister_NilRepository(t *testing.T) {
	ctx := context.Background()
	p := NewPersister[sample](nil, "sample")

	assert.NoError(t, p.Save(ctx, sample{}))
	assert.NoError(t, p.Clear(ctx))
	_, ok, err := p.Load(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPersister_MirrorDropsStaleWrites(t *testing.T) {
	ctx := context.Background()
	repo := store.NewMemoryStateRepository()
	p := NewPersister[sample](repo, "sample")

	require.NoError(t, p.Mirror(ctx, 2, sample{Name: "newer"}))
	require.NoError(t, p.Mirror(ctx, 1, sample{Name: "older"}))

	got, ok, err := p.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "newer", got.Name)

	require.NoError(t, p.MirrorClear(ctx, 3))
	require.NoError(t, p.Mirror(ctx, 3, sample{Name: "same seq"}))

	_, ok, err = p.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, NewPersister[sample](nil, "sample").Mirror(ctx, 1, sample{}))
}
