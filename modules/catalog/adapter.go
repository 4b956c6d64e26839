package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	domain "github.com/Lekhangit/server-side/domain/shoe"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogPort defines the catalog operations other modules may use.
type CatalogPort interface {
	Create(ctx context.Context, in CreateShoeInput) (*domain.Shoe, error)
	List(ctx context.Context) ([]*domain.Shoe, error)
	Get(ctx context.Context, id string) (*domain.Shoe, error)
	Delete(ctx context.Context, id string) (*domain.Shoe, error)
	GetImage(ctx context.Context, name string) ([]byte, string, error)
}

// Compile-time interface checks.
var _ CatalogPort = (*Service)(nil)
var _ CatalogPort = (*CatalogAdapter)(nil)

// CatalogAdapter implements CatalogPort using the service container.
type CatalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new CatalogAdapter.
func NewCatalogAdapter(container mono.ServiceContainer) *CatalogAdapter {
	return &CatalogAdapter{
		container: container,
	}
}

// Create adds a shoe via the create-shoe service.
func (a *CatalogAdapter) Create(ctx context.Context, in CreateShoeInput) (*domain.Shoe, error) {
	req := CreateShoeRequest{
		Name:  in.Name,
		Type:  in.Type,
		Sizes: in.Sizes,
		Color: in.Color,
		Price: in.Price,
		Stock: in.Stock,
	}
	if in.Image != nil {
		req.ImageName = in.Image.Filename
		req.ImageContentType = in.Image.ContentType
		req.ImageData = in.Image.Data
	}
	var resp ShoeResponse

	if err := callService(ctx, a.container, "create-shoe", &req, &resp); err != nil {
		return nil, err
	}
	return fromShoeResponse(resp), nil
}

// List returns all shoes via the list-shoes service.
func (a *CatalogAdapter) List(ctx context.Context) ([]*domain.Shoe, error) {
	req := ListShoesRequest{}
	var resp ListShoesResponse

	if err := callService(ctx, a.container, "list-shoes", &req, &resp); err != nil {
		return nil, err
	}

	shoes := make([]*domain.Shoe, 0, len(resp.Shoes))
	for _, s := range resp.Shoes {
		shoes = append(shoes, fromShoeResponse(s))
	}
	return shoes, nil
}

// Get returns one shoe via the get-shoe service.
func (a *CatalogAdapter) Get(ctx context.Context, id string) (*domain.Shoe, error) {
	req := GetShoeRequest{ID: id}
	var resp ShoeResponse

	if err := callService(ctx, a.container, "get-shoe", &req, &resp); err != nil {
		return nil, err
	}
	return fromShoeResponse(resp), nil
}

// Delete removes a shoe via the delete-shoe service.
func (a *CatalogAdapter) Delete(ctx context.Context, id string) (*domain.Shoe, error) {
	req := DeleteShoeRequest{ID: id}
	var resp ShoeResponse

	if err := callService(ctx, a.container, "delete-shoe", &req, &resp); err != nil {
		return nil, err
	}
	return fromShoeResponse(resp), nil
}

// GetImage fetches a stored image via the get-image service.
func (a *CatalogAdapter) GetImage(ctx context.Context, name string) ([]byte, string, error) {
	req := GetImageRequest{Name: name}
	var resp GetImageResponse

	if err := callService(ctx, a.container, "get-image", &req, &resp); err != nil {
		return nil, "", err
	}
	return resp.Data, resp.ContentType, nil
}

// callService sends req to the named request-reply service and decodes the
// reply into resp. Errors are restored to package sentinels where possible.
func callService[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s request failed: %w", service, RestoreError(err))
	}
	return nil
}

var knownErrors = []error{
	ErrShoeNotFound,
	ErrInvalidShoe,
	ErrImageNotFound,
	ErrImageTooLarge,
	ErrUnsupportedImage,
}

// RestoreError maps an error that crossed the service container as text back
// to the catalog sentinel it was created from. Unknown errors are returned as is.
func RestoreError(err error) error {
	if err == nil {
		return nil
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%w (%s)", known, msg)
		}
	}
	return err
}
