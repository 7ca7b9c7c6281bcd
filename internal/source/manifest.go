package source

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DefaultIndexFile is the manifest file name inside the posts directory.
const DefaultIndexFile = "index.json"

// Manifest is the index document listing post files.
type Manifest struct {
	Posts []string `json:"posts"`
}

const manifestSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "posts": {
      "type": ["array", "null"],
      "items": {"type": "string"}
    }
  }
}`

var manifestSchema = mustCompileManifestSchema()

func mustCompileManifestSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("manifest.json", strings.NewReader(manifestSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("manifest.json")
}

// DecodeManifest validates data against the manifest schema and returns the
// listed files. A missing or null "posts" key is an empty list.
func DecodeManifest(data []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var raw any
	if err := decoder.Decode(&raw); err != nil {
		return nil, manifestInvalid(err)
	}
	if err := manifestSchema.Validate(raw); err != nil {
		return nil, manifestInvalid(err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, manifestInvalid(err)
	}
	if manifest.Posts == nil {
		return []string{}, nil
	}
	return manifest.Posts, nil
}

// EncodeManifest renders files as an indented manifest document, sorted.
func EncodeManifest(files []string) ([]byte, error) {
	sorted := append([]string{}, files...)
	sort.Strings(sorted)
	data, err := json.MarshalIndent(Manifest{Posts: sorted}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func manifestInvalid(cause error) error {
	return goerrors.Wrap(cause, goerrors.CategoryBadInput, "invalid post manifest").
		WithTextCode(TextCodeManifestInvalid)
}
