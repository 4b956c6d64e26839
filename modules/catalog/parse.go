package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseSizes parses a comma-separated list of sizes such as "38,39,40.5".
// A blank input yields an empty list.
func ParseSizes(raw string) ([]float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []float64{}, nil
	}

	parts := strings.Split(raw, ",")
	sizes := make([]float64, 0, len(parts))
	for _, part := range parts {
		size, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || !isFinite(size) || size <= 0 {
			return nil, fmt.Errorf("%w: size %q is not a positive number", ErrInvalidShoe, part)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// ParsePrice parses a price written with dots as thousands separators,
// e.g. "1.250.000" is 1250000.
func ParsePrice(raw string) (float64, error) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ".", "")
	if raw == "" {
		return 0, fmt.Errorf("%w: price is required", ErrInvalidShoe)
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(price) {
		return 0, fmt.Errorf("%w: price %q is not a number", ErrInvalidShoe, raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must be non-negative", ErrInvalidShoe)
	}
	return price, nil
}

// ParseStock parses a base-10 stock count. A blank input means zero.
func ParseStock(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	stock, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: stock %q is not an integer", ErrInvalidShoe, raw)
	}
	if stock < 0 {
		return 0, fmt.Errorf("%w: stock must be non-negative", ErrInvalidShoe)
	}
	return stock, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
