package recipe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/epistep/internal/errors"
)

// RecipeRepository loads and saves recipe files
type RecipeRepository interface {
	// Load reads a Recipe from a file
	Load(path string) (Recipe, error)

	// Save writes a Recipe to a file
	Save(r Recipe, path string) error
}

// FileRecipeRepository implements RecipeRepository for YAML and CSV files
type FileRecipeRepository struct {
	schema Schema
}

// NewFileRecipeRepository creates a repository that types columns through schema
func NewFileRecipeRepository(schema Schema) *FileRecipeRepository {
	return &FileRecipeRepository{schema: schema}
}

// Load reads a recipe, choosing the codec from the file extension
func (repo *FileRecipeRepository) Load(path string) (Recipe, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return Recipe{}, errors.NewRecipeFormatError(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Recipe{}, errors.NewRecipeNotFoundError(path)
		}
		return Recipe{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read recipe: %s", path), err)
	}

	var r Recipe
	switch format {
	case FormatCSV:
		r, err = DecodeCSV(bytes.NewReader(data), repo.schema)
	default:
		r, err = DecodeYAML(bytes.NewReader(data), repo.schema)
	}
	if err != nil {
		return Recipe{}, errors.NewRecipeUnmarshalError(path, string(format), err)
	}
	return r, nil
}

// Save writes a recipe, choosing the codec from the file extension
func (repo *FileRecipeRepository) Save(r Recipe, path string) error {
	format, err := FormatForPath(path)
	if err != nil {
		return errors.NewRecipeFormatError(path)
	}

	var buf bytes.Buffer
	switch format {
	case FormatCSV:
		err = EncodeCSV(&buf, r, repo.schema)
	default:
		err = EncodeYAML(&buf, r, repo.schema)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeRecipeMarshal, "failed to encode recipe", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("create directory: %s", dir), err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return errors.NewFileWriteError(path, err)
	}
	return nil
}
