package domain

import (
	"fmt"
	"strings"
)

// CustomerInfo is the shipping form captured at checkout
type CustomerInfo struct {
	FullName string `json:"full_name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Country  string `json:"country"`
	ZipCode  string `json:"zip_code"`
}

// Normalize trims surrounding whitespace from every field
func (c CustomerInfo) Normalize() CustomerInfo {
	return CustomerInfo{
		FullName: strings.TrimSpace(c.FullName),
		Address:  strings.TrimSpace(c.Address),
		City:     strings.TrimSpace(c.City),
		State:    strings.TrimSpace(c.State),
		Country:  strings.TrimSpace(c.Country),
		ZipCode:  strings.TrimSpace(c.ZipCode),
	}
}

// Validate requires every field
func (c CustomerInfo) Validate() error {
	var missing []string
	fields := []struct {
		name, value string
	}{
		{"full_name", c.FullName},
		{"address", c.Address},
		{"city", c.City},
		{"state", c.State},
		{"country", c.Country},
		{"zip_code", c.ZipCode},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidCustomerInfo, strings.Join(missing, ", "))
	}
	return nil
}
