package catalog

import (
	"time"

	domain "github.com/Lekhangit/server-side/domain/shoe"
)

// CreateShoeRequest carries the raw form fields of a new shoe.
type CreateShoeRequest struct {
	Name             string `json:"name"`
	Type             string `json:"type"`
	Sizes            string `json:"sizes"`
	Color            string `json:"color"`
	Price            string `json:"price"`
	Stock            string `json:"stock"`
	ImageName        string `json:"image_name,omitempty"`
	ImageContentType string `json:"image_content_type,omitempty"`
	ImageData        []byte `json:"image_data,omitempty"`
}

// ShoeResponse is the wire form of a shoe.
type ShoeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Sizes     []float64 `json:"sizes"`
	Color     string    `json:"color"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListShoesRequest represents a list shoes request.
type ListShoesRequest struct{}

// ListShoesResponse represents a list shoes response.
type ListShoesResponse struct {
	Shoes []ShoeResponse `json:"shoes"`
}

// GetShoeRequest identifies a single shoe.
type GetShoeRequest struct {
	ID string `json:"id"`
}

// DeleteShoeRequest identifies the shoe to delete.
type DeleteShoeRequest struct {
	ID string `json:"id"`
}

// GetImageRequest identifies a stored image.
type GetImageRequest struct {
	Name string `json:"name"`
}

// GetImageResponse carries image bytes and their content type.
type GetImageResponse struct {
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

func toShoeResponse(s *domain.Shoe) ShoeResponse {
	sizes := s.Sizes
	if sizes == nil {
		sizes = []float64{}
	}
	return ShoeResponse{
		ID:        s.ID,
		Name:      s.Name,
		Type:      s.Type,
		Sizes:     sizes,
		Color:     s.Color,
		Price:     s.Price,
		Stock:     s.Stock,
		Image:     s.Image,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fromShoeResponse(r ShoeResponse) *domain.Shoe {
	return &domain.Shoe{
		ID:        r.ID,
		Name:      r.Name,
		Type:      r.Type,
		Sizes:     r.Sizes,
		Color:     r.Color,
		Price:     r.Price,
		Stock:     r.Stock,
		Image:     r.Image,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toCreateShoeInput(req CreateShoeRequest) CreateShoeInput {
	in := CreateShoeInput{
		Name:  req.Name,
		Type:  req.Type,
		Sizes: req.Sizes,
		Color: req.Color,
		Price: req.Price,
		Stock: req.Stock,
	}
	if len(req.ImageData) > 0 {
		in.Image = &ImageUpload{
			Filename:    req.ImageName,
			ContentType: req.ImageContentType,
			Data:        req.ImageData,
		}
	}
	return in
}
