package catalog

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockServiceContainer implements mono.ServiceContainer for testing.
// Request-reply handlers run in process and their errors come back as plain
// text, the same way they arrive from a service behind the event bus.
type mockServiceContainer struct {
	mono.ServiceContainer
	handlers map[string]types.RequestReplyHandler
}

func newMockServiceContainer() *mockServiceContainer {
	return &mockServiceContainer{handlers: make(map[string]types.RequestReplyHandler)}
}

func (c *mockServiceContainer) RegisterRequestReplyService(name string, handler types.RequestReplyHandler) error {
	if _, exists := c.handlers[name]; exists {
		return fmt.Errorf("service %q already registered", name)
	}
	c.handlers[name] = handler
	return nil
}

func (c *mockServiceContainer) GetRequestReplyService(name string) (types.RequestReplyServiceClient, error) {
	handler, ok := c.handlers[name]
	if !ok {
		return nil, fmt.Errorf("service %q not found", name)
	}
	return &mockRequestReplyClient{name: name, handler: handler}, nil
}

type mockRequestReplyClient struct {
	name    string
	handler types.RequestReplyHandler
}

func (c *mockRequestReplyClient) Call(ctx context.Context, data []byte) (*types.Msg, error) {
	return c.CallMsg(ctx, &types.Msg{Data: data})
}

func (c *mockRequestReplyClient) CallMsg(ctx context.Context, msg *types.Msg) (*types.Msg, error) {
	data, err := c.handler(ctx, &types.Msg{Subject: c.name, Data: msg.Data, Header: msg.Header})
	if err != nil {
		return nil, fmt.Errorf("remote error from service %s: %s", c.name, err.Error())
	}
	return &types.Msg{Subject: c.name, Data: data}, nil
}

// newTestAdapter starts a catalog module on a temporary database and an
// in-memory image store, registers its services and returns an adapter over them.
func newTestAdapter(t *testing.T) (*CatalogAdapter, *memoryImageStore) {
	t.Helper()

	images := newMemoryImageStore()
	module := NewModule(Config{
		DBPath:       filepath.Join(t.TempDir(), "shoes.db"),
		MaxImageSize: 1024,
	}, &mockLogger{})
	module.images = images

	require.NoError(t, module.Start(context.Background()))
	t.Cleanup(func() {
		_ = module.Stop(context.Background())
	})

	container := newMockServiceContainer()
	require.NoError(t, module.RegisterServices(container))
	return NewCatalogAdapter(container), images
}

func TestCatalogAdapter_ShoeLifecycle(t *testing.T) {
	adapter, images := newTestAdapter(t)
	ctx := context.Background()

	in := validInput()
	in.Image = &ImageUpload{
		Filename:    "air-max.png",
		ContentType: "image/png",
		Data:        []byte("\x89PNG\r\n\x1a\n"),
	}

	created, err := adapter.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Air Max 90", created.Name)
	assert.Equal(t, []float64{40, 41.5, 42}, created.Sizes)
	assert.Equal(t, 1250000.0, created.Price)
	assert.Equal(t, 5, created.Stock)
	require.NotEmpty(t, created.Image)
	assert.Equal(t, 1, images.count())

	data, contentType, err := adapter.GetImage(ctx, created.Image)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)
	assert.True(t, bytes.Equal(in.Image.Data, data))

	list, err := adapter.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	got, err := adapter.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Image, got.Image)

	deleted, err := adapter.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, 0, images.count())

	_, err = adapter.Get(ctx, created.ID)
	assert.ErrorIs(t, err, ErrShoeNotFound)

	_, err = adapter.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrShoeNotFound)

	_, _, err = adapter.GetImage(ctx, created.Image)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestCatalogAdapter_EmptyList(t *testing.T) {
	adapter, _ := newTestAdapter(t)

	list, err := adapter.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCatalogAdapter_RestoresErrors(t *testing.T) {
	adapter, _ := newTestAdapter(t)
	ctx := context.Background()

	withPrice := func(price string) CreateShoeInput {
		in := validInput()
		in.Price = price
		return in
	}
	withImage := func(img *ImageUpload) CreateShoeInput {
		in := validInput()
		in.Image = img
		return in
	}

	tests := []struct {
		name string
		in   CreateShoeInput
		want error
	}{
		{name: "missing name", in: CreateShoeInput{Price: "100"}, want: ErrInvalidShoe},
		{name: "price not finite", in: withPrice("NaN"), want: ErrInvalidShoe},
		{
			name: "image too large",
			in:   withImage(&ImageUpload{Filename: "big.png", ContentType: "image/png", Data: make([]byte, 2048)}),
			want: ErrImageTooLarge,
		},
		{
			name: "not an image",
			in:   withImage(&ImageUpload{Filename: "notes.txt", ContentType: "text/plain", Data: []byte("hello")}),
			want: ErrUnsupportedImage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := adapter.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrShoeNotFound)

	_, _, err = adapter.GetImage(ctx, "../shoes.db")
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestCatalogAdapter_ServiceNotRegistered(t *testing.T) {
	adapter := NewCatalogAdapter(newMockServiceContainer())

	_, err := adapter.List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrShoeNotFound)
	assert.Contains(t, err.Error(), "list-shoes request failed")
}
