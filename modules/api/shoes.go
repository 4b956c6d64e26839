package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	domain "github.com/Lekhangit/server-side/domain/shoe"
	"github.com/Lekhangit/server-side/modules/catalog"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
)

// ShoeHandlers contains the HTTP handlers for the shoe catalog.
type ShoeHandlers struct {
	catalog      catalog.CatalogPort
	maxImageSize int64
	logger       types.Logger
}

// NewShoeHandlers creates a new ShoeHandlers instance.
func NewShoeHandlers(catalogAdapter catalog.CatalogPort, maxImageSize int64, logger types.Logger) *ShoeHandlers {
	if maxImageSize <= 0 {
		maxImageSize = catalog.DefaultMaxImageSize
	}
	return &ShoeHandlers{
		catalog:      catalogAdapter,
		maxImageSize: maxImageSize,
		logger:       logger,
	}
}

// Create adds a shoe from a multipart form with an optional "image" file.
func (h *ShoeHandlers) Create(c *fiber.Ctx) error {
	// Collect form fields
	in := catalog.CreateShoeInput{
		Name:  c.FormValue("name"),
		Type:  c.FormValue("type"),
		Sizes: c.FormValue("sizes"),
		Color: c.FormValue("color"),
		Price: c.FormValue("price"),
		Stock: c.FormValue("stock"),
	}

	// Attach image if one was uploaded
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["image"]; len(files) > 0 {
			image, err := h.readImage(files[0])
			if err != nil {
				return writeError(c, h.logger, err, "Failed to add shoe.")
			}
			in.Image = image
		}
	}

	// Call catalog service
	shoe, err := h.catalog.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.logger, err, "Failed to add shoe.")
	}

	return c.Status(fiber.StatusCreated).JSON(ShoeMessageResponse{
		Message: "Shoe added successfully!",
		Shoe:    shoe,
	})
}

// List returns every shoe, newest first.
func (h *ShoeHandlers) List(c *fiber.Ctx) error {
	shoes, err := h.catalog.List(c.UserContext())
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch shoes.")
	}
	if shoes == nil {
		shoes = []*domain.Shoe{}
	}
	return c.JSON(shoes)
}

// Get returns a single shoe.
func (h *ShoeHandlers) Get(c *fiber.Ctx) error {
	shoe, err := h.catalog.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch shoe.")
	}
	return c.JSON(shoe)
}

// Delete removes a shoe and echoes it back.
func (h *ShoeHandlers) Delete(c *fiber.Ctx) error {
	shoe, err := h.catalog.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to delete shoe.")
	}

	return c.JSON(ShoeMessageResponse{
		Message: "Shoe deleted successfully!",
		Shoe:    shoe,
	})
}

// Image serves a stored shoe image.
func (h *ShoeHandlers) Image(c *fiber.Ctx) error {
	data, contentType, err := h.catalog.GetImage(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, h.logger, err, "Failed to fetch image.")
	}

	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}

func (h *ShoeHandlers) readImage(fh *multipart.FileHeader) (*catalog.ImageUpload, error) {
	if fh.Size > h.maxImageSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", catalog.ErrImageTooLarge, fh.Size, h.maxImageSize)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > h.maxImageSize {
		return nil, fmt.Errorf("%w: upload exceeds %d bytes", catalog.ErrImageTooLarge, h.maxImageSize)
	}

	// Sniff the type when the client did not send a useful one
	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &catalog.ImageUpload{
		Filename:    fh.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}
