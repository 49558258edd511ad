// Package model contains domain models passed between layers.
package model

// Provider identifies the backing data source for a category's word list.
type Provider string

// Known search providers.
const (
	ProviderPetScan   Provider = "petscan"
	ProviderOffline   Provider = "offline"
	ProviderWikipedia Provider = "wikipedia"
)

// Category is a themed word group players guess terms from.
// Categories are immutable reference data loaded once per process.
type Category struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	SearchWord     string   `json:"searchWord"` // query key passed to the verification service
	Key            string   `json:"key"`
	SearchProvider Provider `json:"searchProvider"`
	AdditionalData []string `json:"additionalData,omitempty"` // extra valid terms merged into candidates
	Letter         string   `json:"letter,omitempty"`
}
