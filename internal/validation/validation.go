package validation

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"shivansh.dev/internal/models"
)

//go:embed *.json
var schemaFS embed.FS

// CatalogSchema is the embedded schema for data/projects.json
const CatalogSchema = "projects.schema.json"

// ValidationError represents a schema validation error
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation failed: %s", e.Errors[0])
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ValidateJSON validates raw JSON against an embedded schema
func ValidateJSON(schemaName string, raw []byte) error {
	schemaData, err := schemaFS.ReadFile(schemaName)
	if err != nil {
		return fmt.Errorf("failed to load schema %s: %w", schemaName, err)
	}

	schema, err := jsonschema.CompileString(schemaName, string(schemaData))
	if err != nil {
		return fmt.Errorf("failed to compile schema %s: %w", schemaName, err)
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return ValidationError{Errors: []string{err.Error()}}
		}
		return ValidationError{Errors: leafMessages(verr)}
	}
	return nil
}

// leafMessages flattens the cause tree, keeping the innermost failures
func leafMessages(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		return []string{fmt.Sprintf("%s: %s", location(verr.InstanceLocation), verr.Message)}
	}
	var msgs []string
	for _, c := range verr.Causes {
		msgs = append(msgs, leafMessages(c)...)
	}
	return msgs
}

func location(loc string) string {
	if loc == "" {
		return "/"
	}
	return loc
}

// ValidateCatalog checks a projects.json document against the catalog schema
func ValidateCatalog(raw []byte) error {
	return ValidateJSON(CatalogSchema, raw)
}

// MissingAssets lists media paths that do not resolve to a file under
// staticDir, including derived video posters. Remote URLs are not checked.
func MissingAssets(list *models.ProjectList, staticDir string) []string {
	var missing []string
	check := func(src string) {
		if src == "" || strings.Contains(src, "://") {
			return
		}
		path := filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(src, "/")))
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, src)
		}
	}

	for _, p := range list.Projects {
		for _, m := range p.Media {
			check(m.Src)
			check(m.PosterOrDefault())
		}
	}
	return missing
}
