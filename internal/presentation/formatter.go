package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatRegistry formats the registry listing as JSON
func (f *Formatter) FormatRegistry(dto RegistryDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dto)
}

// FormatLookup formats a lookup result as JSON
func (f *Formatter) FormatLookup(dto LookupResultDTO) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dto)
}

// FormatValues formats a generic result list as JSON
func (f *Formatter) FormatValues(values any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(values)
}
