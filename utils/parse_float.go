package utils

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ParsePrice converts a form value into a non-negative per-person price
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("price is required")
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, errors.New("price must be a number")
	}
	if value < 0 {
		return 0, errors.New("price must not be negative")
	}

	return value, nil
}
