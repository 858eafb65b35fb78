package scaffold

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/curator-labs/curator/internal/errdefs"
	"github.com/curator-labs/curator/internal/taxonomy"
	"github.com/curator-labs/curator/internal/unit"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/config.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Config is a creation request for one content unit.
type Config struct {
	Kind        unit.Kind `yaml:"kind" json:"kind"`
	Name        string    `yaml:"name" json:"name"`
	Category    string    `yaml:"category" json:"category"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Tier        string    `yaml:"tier,omitempty" json:"tier,omitempty"`
	Author      string    `yaml:"author,omitempty" json:"author,omitempty"`

	// Package-only fields.
	Tools      []string `yaml:"tools,omitempty" json:"tools,omitempty"`
	References []string `yaml:"references,omitempty" json:"references,omitempty"`
}

// LoadConfigFile reads a declarative creation request from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.IO(fmt.Sprintf("reading config file %s", path), err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errdefs.Format("config file %s is not valid YAML: %v", path, err)
	}
	return &cfg, nil
}

// ApplyDefaults fills optional fields the way the CLI would: a derived
// description and the default tier.
func (c *Config) ApplyDefaults(defaultTier string) {
	if c.Tier == "" {
		c.Tier = defaultTier
	}
	if c.Tier == "" {
		c.Tier = "experimental"
	}
	if c.Description == "" {
		c.Description = fmt.Sprintf("Curator %s: %s", c.Kind, c.Name)
	}
}

// Validate checks the config fully in memory: JSON Schema shape first, then
// the grammar and prefix rules the schema cannot express. Returns a
// FormatError naming every violation; no filesystem access.
func (c *Config) Validate() error {
	issues, err := schemaIssues(c)
	if err != nil {
		return err
	}

	if c.Name != "" {
		if nameErr := taxonomy.ValidateName(c.Name); nameErr != nil {
			issues = append(issues, nameErr.Error())
		} else {
			hasPrefix := strings.HasPrefix(c.Name, unit.DefinitionPrefix)
			if c.Kind == unit.KindDefinition && !hasPrefix {
				issues = append(issues, fmt.Sprintf("definition name %q must carry the %q prefix", c.Name, unit.DefinitionPrefix))
			}
			if c.Kind == unit.KindPackage && hasPrefix {
				issues = append(issues, fmt.Sprintf("package name %q must not carry the reserved %q prefix", c.Name, unit.DefinitionPrefix))
			}
		}
	}
	if c.Category != "" {
		if catErr := taxonomy.ValidateName(c.Category); catErr != nil {
			issues = append(issues, fmt.Sprintf("category: %v", catErr))
		}
	}

	if len(issues) > 0 {
		return errdefs.Format("invalid creation config: %s", strings.Join(issues, "; "))
	}
	return nil
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("config.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("config.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// schemaIssues validates the config against the embedded schema and returns
// human-readable issue strings.
func schemaIssues(c *Config) ([]string, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading config schema: %w", err)
	}

	jsonData, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("converting config to JSON: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing config for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	var issues []string
	collectIssues(validationErr, &issues)
	if len(issues) == 0 {
		issues = []string{validationErr.Error()}
	}
	return dedupe(issues), nil
}

// collectIssues recursively walks the error tree to find leaf errors with
// specific property information, skipping uninformative container keywords.
func collectIssues(ve *jsonschema.ValidationError, issues *[]string) {
	if len(ve.Causes) == 0 {
		if ve.ErrorKind == nil {
			return
		}
		kwPath := ve.ErrorKind.KeywordPath()
		keyword := ""
		if len(kwPath) > 0 {
			keyword = kwPath[len(kwPath)-1]
		}
		if keyword == "oneOf" || keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		msg := ve.ErrorKind.LocalizedString(printer)
		if len(ve.InstanceLocation) > 0 {
			msg = "/" + strings.Join(ve.InstanceLocation, "/") + ": " + msg
		}
		*issues = append(*issues, msg)
		return
	}
	for _, cause := range ve.Causes {
		collectIssues(cause, issues)
	}
}

func dedupe(issues []string) []string {
	seen := make(map[string]bool, len(issues))
	var result []string
	for _, issue := range issues {
		if !seen[issue] {
			seen[issue] = true
			result = append(result, issue)
		}
	}
	return result
}
