// Package yamlfile serves the bookmark API from a hand-maintained YAML
// seed file. It is the source of choice for development setups and for
// machines without a browser profile to mirror.
package yamlfile

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the seed YAML file.
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the seed file.
func (l *Loader) Load() (Config, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read seed file: %w", err)
	}

	// Strip template variables ({{VAR_...}}) so shared seed files with
	// environment placeholders still parse.
	data = stripTemplateVariables(data)

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	return config, nil
}

// stripTemplateVariables replaces {{...}} placeholders with empty
// strings.
func stripTemplateVariables(data []byte) []byte {
	re := regexp.MustCompile(`\{\{[^}]+\}\}`)
	return re.ReplaceAll(data, []byte(`""`))
}
