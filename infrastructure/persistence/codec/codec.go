// Package codec converts models to and from their JSON and YAML documents.
// Decoding always passes through schema evolution, so documents written by
// older releases load without manual conversion.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"gopkg.in/yaml.v3"

	"sketchddd/domain/core/aggregates"
	"sketchddd/infrastructure/persistence/schema"
	pkgerrors "sketchddd/pkg/errors"
	"sketchddd/pkg/utils"
)

// Format is a document encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a format name or file extension
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", pkgerrors.NewUnsupportedFormatError(s)
	}
}

// Codec encodes and decodes model documents
type Codec struct {
	evolution *schema.SchemaEvolution
}

// NewCodec creates a codec with the built-in schema migrations
func NewCodec() *Codec {
	return &Codec{evolution: schema.NewSchemaEvolution()}
}

// Encode serializes a model in the requested format
func (c *Codec) Encode(model *aggregates.Model, format Format) ([]byte, error) {
	return c.EncodeDocument(FromModel(model), format)
}

// EncodeDocument serializes a document in the requested format
func (c *Codec) EncodeDocument(doc *ModelDocument, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, pkgerrors.NewUnsupportedFormatError(string(format))
	}
}

// Decode parses and upgrades a document, then rebuilds the model
func (c *Codec) Decode(data []byte, format Format) (*aggregates.Model, error) {
	doc, err := c.DecodeDocument(data, format)
	if err != nil {
		return nil, err
	}
	model, err := doc.ToModel()
	if err != nil {
		return nil, pkgerrors.NewInvalidDocumentError("cannot rebuild model", err)
	}
	return model, nil
}

// DecodeDocument parses a document, migrates it to the current schema
// version and validates its structure
func (c *Codec) DecodeDocument(data []byte, format Format) (*ModelDocument, error) {
	raw := schema.Document{}
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, pkgerrors.NewInvalidDocumentError("malformed JSON", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, pkgerrors.NewInvalidDocumentError("malformed YAML", err)
		}
	default:
		return nil, pkgerrors.NewUnsupportedFormatError(string(format))
	}

	if _, err := c.evolution.Upgrade(raw); err != nil {
		var domainErr *pkgerrors.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, pkgerrors.NewInvalidDocumentError("schema upgrade failed", err)
	}

	// The upgraded tree is normalized through JSON so both formats share one
	// decoding path into the typed document.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, pkgerrors.NewInvalidDocumentError("cannot normalize document", err)
	}
	var doc ModelDocument
	if err := json.Unmarshal(normalized, &doc); err != nil {
		return nil, pkgerrors.NewInvalidDocumentError("unexpected document shape", err)
	}
	if err := utils.ValidateStruct(&doc); err != nil {
		return nil, pkgerrors.NewInvalidDocumentError(err.Error(), err)
	}
	return &doc, nil
}

// SniffFormat guesses the format of raw bytes: JSON documents start with
// an opening brace, anything else is treated as YAML
func SniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}
