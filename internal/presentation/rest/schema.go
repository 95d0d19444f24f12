package rest

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFiles embed.FS

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

// bodySchemas are compiled once at startup; a broken embedded schema is a
// programming error.
var bodySchemas = mustLoadSchemas("prequalify", "schedule", "profile", "application", "intent")

func mustLoadSchemas(names ...string) map[string]*gojsonschema.Schema {
	out := make(map[string]*gojsonschema.Schema, len(names))
	for _, name := range names {
		raw, err := schemaFiles.ReadFile("schemas/" + name + ".json")
		if err != nil {
			panic(fmt.Sprintf("read schema %s: %v", name, err))
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("compile schema %s: %v", name, err))
		}
		out[name] = schema
	}
	return out
}

// decodeBody checks the request body against the named schema and decodes it
// into T. Errors wrap errBadRequest.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, schemaName string) (T, error) {
	var out T

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return out, fmt.Errorf("%w: read body: %v", errBadRequest, err)
	}
	if len(raw) == 0 {
		return out, fmt.Errorf("%w: request body is required", errBadRequest)
	}

	result, err := bodySchemas[schemaName].Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return out, fmt.Errorf("%w: malformed JSON", errBadRequest)
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return out, fmt.Errorf("%w: %s", errBadRequest, strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return out, nil
}
