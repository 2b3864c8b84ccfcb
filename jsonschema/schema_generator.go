//go:build generate

// Command schema_generator writes the config JSON schema, an example YAML config and an
// example env file from the config.Config defaults.
//
//	go run -tags generate ./jsonschema
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	iyaml "github.com/invopop/yaml"
	"github.com/mcuadros/go-defaults"
	"github.com/theopenlane/utils/envparse"

	"github.com/zary0/domainscout/config"
)

const (
	modulePath   = "github.com/zary0/domainscout/"
	fieldTag     = "koanf"
	skipValue    = "-"
	defaultTag   = "default"
	sensitiveTag = "sensitive"
	// envPrefix matches config.EnvPrefix without the trailing separator
	envPrefix = "DOMAINSCOUT"

	schemaPath = "./jsonschema/domainscout.config.json"
	yamlPath   = "./config/config.example.yaml"
	envPath    = "./config/.env.example"

	filePerm = 0o600
)

var durationType = reflect.TypeFor[time.Duration]()

func main() {
	cfg := &config.Config{}
	defaults.SetDefaults(cfg)

	steps := []struct {
		path  string
		build func(*config.Config) ([]byte, error)
	}{
		{schemaPath, schemaJSON},
		{yamlPath, exampleYAML},
		{envPath, exampleEnv},
	}

	for _, step := range steps {
		data, err := step.build(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generating %s: %v\n", step.path, err)
			os.Exit(1)
		}

		if err := os.WriteFile(step.path, data, filePerm); err != nil {
			fmt.Fprintf(os.Stderr, "writing %s: %v\n", step.path, err)
			os.Exit(1)
		}

		fmt.Printf("wrote %s\n", step.path)
	}
}

// schemaJSON reflects the config struct, using its doc comments as descriptions
func schemaJSON(cfg *config.Config) ([]byte, error) {
	r := &jsonschema.Reflector{
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               fieldTag,
	}

	if err := r.AddGoComments(modulePath, "./config"); err != nil {
		return nil, fmt.Errorf("reading config comments: %w", err)
	}

	return json.MarshalIndent(r.Reflect(cfg), "", "  ")
}

// exampleYAML renders the defaults keyed by koanf tag, durations as strings
func exampleYAML(cfg *config.Config) ([]byte, error) {
	return iyaml.Marshal(sectionValues(reflect.ValueOf(cfg).Elem()))
}

// sectionValues maps each koanf-tagged field to its value; config sections nest one level
func sectionValues(v reflect.Value) map[string]any {
	out := make(map[string]any, v.NumField())

	for i := range v.NumField() {
		field := v.Type().Field(i)

		key := field.Tag.Get(fieldTag)
		if key == "" || key == skipValue {
			continue
		}

		value := v.Field(i)

		switch {
		case value.Type() == durationType:
			out[key] = time.Duration(value.Int()).String()
		case value.Kind() == reflect.Struct:
			out[key] = sectionValues(value)
		default:
			out[key] = value.Interface()
		}
	}

	return out
}

// exampleEnv lists every variable with its default; sensitive values are left blank
func exampleEnv(cfg *config.Config) ([]byte, error) {
	parser := envparse.Config{
		FieldTagName: fieldTag,
		Skipper:      skipValue,
	}

	vars, err := parser.GatherEnvInfo(envPrefix, cfg)
	if err != nil {
		return nil, fmt.Errorf("gathering env vars: %w", err)
	}

	var b strings.Builder

	for _, v := range vars {
		if v.Tags.Get(sensitiveTag) == "true" {
			fmt.Fprintf(&b, "# %s is sensitive and should be set securely\n%s=\"\"\n", v.Key, v.Key)
			continue
		}

		value := v.Tags.Get(defaultTag)
		if d, err := time.ParseDuration(value); err == nil && v.Type == durationType {
			value = d.String()
		}

		fmt.Fprintf(&b, "%s=%q\n", v.Key, value)
	}

	return []byte(b.String()), nil
}
