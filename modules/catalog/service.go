package catalog

import (
	"context"
	"fmt"
	"strings"

	domain "github.com/Lekhangit/server-side/domain/shoe"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// DefaultMaxImageSize keeps an image, base64-encoded inside a JSON request,
// under the embedded NATS server's 1 MiB payload limit.
const DefaultMaxImageSize = 512 * 1024

// ImageUpload is an image attached to a new shoe.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateShoeInput holds the raw form values for a new shoe.
type CreateShoeInput struct {
	Name  string
	Type  string
	Sizes string
	Color string
	Price string
	Stock string
	Image *ImageUpload
}

// Service implements the shoe catalog.
type Service struct {
	repo         *Repository
	images       ImageStore
	maxImageSize int64
	logger       types.Logger
}

// NewService creates a new catalog service.
func NewService(repo *Repository, images ImageStore, maxImageSize int64, logger types.Logger) *Service {
	if maxImageSize <= 0 {
		maxImageSize = DefaultMaxImageSize
	}
	return &Service{
		repo:         repo,
		images:       images,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// Create validates the input, stores the optional image and saves the shoe.
func (s *Service) Create(ctx context.Context, in CreateShoeInput) (*domain.Shoe, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidShoe)
	}

	sizes, err := ParseSizes(in.Sizes)
	if err != nil {
		return nil, err
	}
	price, err := ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}
	stock, err := ParseStock(in.Stock)
	if err != nil {
		return nil, err
	}

	shoe := &domain.Shoe{
		ID:    uuid.New().String(),
		Name:  name,
		Type:  strings.TrimSpace(in.Type),
		Sizes: sizes,
		Color: strings.TrimSpace(in.Color),
		Price: price,
		Stock: stock,
	}

	if in.Image != nil && len(in.Image.Data) > 0 {
		imageName, err := s.storeImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		shoe.Image = imageName
	}

	if err := s.repo.Create(ctx, shoe); err != nil {
		if shoe.Image != "" {
			s.removeImage(ctx, shoe.Image)
		}
		return nil, err
	}

	return shoe, nil
}

// List returns all shoes.
func (s *Service) List(ctx context.Context) ([]*domain.Shoe, error) {
	return s.repo.FindAll(ctx)
}

// Get returns one shoe.
func (s *Service) Get(ctx context.Context, id string) (*domain.Shoe, error) {
	if id == "" {
		return nil, ErrShoeNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Delete removes a shoe and returns it. Its image is removed best-effort.
func (s *Service) Delete(ctx context.Context, id string) (*domain.Shoe, error) {
	shoe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}

	if shoe.Image != "" {
		s.removeImage(ctx, shoe.Image)
	}
	return shoe, nil
}

// GetImage returns a stored image and its content type.
func (s *Service) GetImage(ctx context.Context, name string) ([]byte, string, error) {
	if !validImageName(name) {
		return nil, "", ErrImageNotFound
	}
	return s.images.Get(ctx, name)
}

func (s *Service) storeImage(ctx context.Context, img *ImageUpload) (string, error) {
	if int64(len(img.Data)) > s.maxImageSize {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrImageTooLarge, len(img.Data), s.maxImageSize)
	}
	if !strings.HasPrefix(img.ContentType, "image/") {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImage, img.ContentType)
	}

	name := newImageName(img.Filename)
	if err := s.images.Put(ctx, name, img.Data, img.ContentType); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Service) removeImage(ctx context.Context, name string) {
	if err := s.images.Delete(ctx, name); err != nil {
		s.logger.Warn("Failed to remove shoe image", "image", name, "error", err)
	}
}
