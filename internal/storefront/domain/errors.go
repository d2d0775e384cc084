package domain

import (
	"errors"

	"github.com/tair/lightspace/internal/analyzer"
	catalog "github.com/tair/lightspace/internal/catalog/domain"
)

var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExists       = errors.New("session already exists")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrUnknownView         = errors.New("unknown view")
	ErrUnknownAction       = errors.New("unknown navigation action")
	ErrInvalidCustomerInfo = errors.New("invalid customer info")
	ErrInvalidImage        = errors.New("invalid room image")

	ErrProductNotFound = catalog.ErrProductNotFound
	ErrNoRoomImage     = analyzer.ErrNoImage
)

// IsValidation reports whether err was caused by bad client input
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidQuantity,
		ErrUnknownView,
		ErrUnknownAction,
		ErrInvalidCustomerInfo,
		ErrInvalidImage,
		ErrNoRoomImage,
		catalog.ErrInvalidPriceRange,
		catalog.ErrInvalidSortOption,
		catalog.ErrInvalidFilter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err refers to a missing session or product
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrProductNotFound)
}
