// Package dataset loads the category reference data and the offline
// answers index, from embedded defaults or external files.
package dataset

import (
	"embed"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/okian/riddlerush/internal/domain/model"
)

//go:embed data/*.json
var dataFS embed.FS

// Embedded file paths.
const (
	embeddedCategories = "data/categories.json"
	embeddedAnswers    = "data/offline_answers.json"
)

// OfflineAnswers maps a category search word to its per-letter terms.
// Letters are lowercase single characters.
type OfflineAnswers map[string]map[string][]string

// LoadCategories reads the category dataset. An empty path loads the
// embedded default.
func LoadCategories(path string) ([]model.Category, error) {
	raw, err := readFile(path, embeddedCategories)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("parse categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrEmptyDataset
	}
	return categories, nil
}

// LoadOfflineAnswers reads the offline answers index. An empty path
// loads the embedded default.
func LoadOfflineAnswers(path string) (OfflineAnswers, error) {
	raw, err := readFile(path, embeddedAnswers)
	if err != nil {
		return nil, err
	}
	var answers OfflineAnswers
	if err := json.Unmarshal(raw, &answers); err != nil {
		return nil, fmt.Errorf("parse offline answers: %w", err)
	}
	return answers, nil
}

func readFile(path, embedded string) ([]byte, error) {
	if path == "" {
		return dataFS.ReadFile(embedded)
	}
	return os.ReadFile(path)
}

// FindBySearchWord looks a category up by its search word.
func FindBySearchWord(categories []model.Category, searchWord string) (model.Category, error) {
	for _, c := range categories {
		if c.SearchWord == searchWord {
			return c, nil
		}
	}
	return model.Category{}, ErrCategoryNotFound
}

// Random draws one category uniformly.
func Random(categories []model.Category, rng *rand.Rand) (model.Category, error) {
	if len(categories) == 0 {
		return model.Category{}, ErrEmptyDataset
	}
	return categories[rng.Intn(len(categories))], nil
}
