package catalog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"

	"feedscope/internal/logging"
)

// paramSchema is the declared shape of a parameter record: required keys plus
// primitive types per property. This is the subset of JSON Schema the original
// data files actually use.
type paramSchema struct {
	Required   []string                 `json:"required"`
	Properties map[string]paramProperty `json:"properties"`
}

type paramProperty struct {
	Type string `json:"type"`
}

// loadParams reads a parameter JSON file and validates it against its declared
// schema. Validation problems are logged as warnings; the raw record is
// returned regardless so a drifted schema never blocks startup.
func loadParams(paramsPath, schemaPath, name string, log *slog.Logger) (map[string]any, error) {
	data, err := os.ReadFile(paramsPath)
	if err != nil {
		return nil, fmt.Errorf("read %s params: %w", name, err)
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse %s params: %w", name, err)
	}

	schema, err := loadParamSchema(schemaPath)
	if err != nil {
		log.Warn("schema unavailable, skipping validation",
			logging.String("params", name),
			logging.Error(err),
		)
		return params, nil
	}
	for _, problem := range validateParams(params, schema) {
		log.Warn("params failed schema validation",
			logging.String("params", name),
			logging.String("problem", problem),
		)
	}
	return params, nil
}

func loadParamSchema(path string) (paramSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return paramSchema{}, fmt.Errorf("read schema: %w", err)
	}
	var schema paramSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return paramSchema{}, fmt.Errorf("parse schema: %w", err)
	}
	return schema, nil
}

// validateParams returns a human-readable problem per violated declaration.
func validateParams(params map[string]any, schema paramSchema) []string {
	var problems []string
	for _, key := range schema.Required {
		if _, ok := params[key]; !ok {
			problems = append(problems, fmt.Sprintf("missing required key %q", key))
		}
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		prop, declared := schema.Properties[key]
		if !declared || params[key] == nil {
			continue
		}
		if !typeMatches(params[key], prop.Type) {
			problems = append(problems, fmt.Sprintf("key %q: expected %s, got %T", key, prop.Type, params[key]))
		}
	}
	return problems
}

func typeMatches(value any, declared string) bool {
	switch declared {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "integer":
		f, ok := value.(float64)
		return ok && f == math.Trunc(f)
	case "boolean":
		_, ok := value.(bool)
		return ok
	default:
		// Unknown declarations are not enforced.
		return true
	}
}

// decodeDecoderParams builds the typed decoder record from the raw map.
// Coercion is tolerant: fields with unexpected types are left unset, matching
// the warn-and-continue handling of schema drift.
func decodeDecoderParams(raw map[string]any) DecoderParams {
	return DecoderParams{
		MaxThreads:    intValue(raw, "max_threads"),
		DPBSize:       intValue(raw, "dpb_size"),
		ReorderFrames: boolValue(raw, "reorder_frames"),
		JitterBufMs:   intValue(raw, "jitter_buf_ms"),
		AVSync:        stringValue(raw, "av_sync"),
		OutputFormat:  stringValue(raw, "output_format"),
		Deinterlace:   stringValue(raw, "deinterlace"),
		CapMaxResW:    intValue(raw, "cap_max_res_w"),
		CapMaxResH:    intValue(raw, "cap_max_res_h"),
		ColorSpace:    stringValue(raw, "color_space"),
		ChromaFormat:  stringValue(raw, "chroma_format"),
		SkipNonref:    boolValue(raw, "skip_nonref"),
		Deblock:       boolValue(raw, "deblock"),
		SAO:           boolValue(raw, "sao"),
	}
}

func intValue(raw map[string]any, key string) *int {
	f, ok := raw[key].(float64)
	if !ok || f != math.Trunc(f) {
		return nil
	}
	v := int(f)
	return &v
}

func boolValue(raw map[string]any, key string) *bool {
	b, ok := raw[key].(bool)
	if !ok {
		return nil
	}
	return &b
}

func stringValue(raw map[string]any, key string) *string {
	s, ok := raw[key].(string)
	if !ok {
		return nil
	}
	return &s
}
