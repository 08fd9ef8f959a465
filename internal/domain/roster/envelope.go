package roster

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed envelope.schema.json
var envelopeSchemaJSON []byte

var (
	envelopeSchemaOnce sync.Once
	envelopeSchema     *gojsonschema.Schema
	envelopeSchemaErr  error
)

// envelope is the persisted cache shape.
type envelope struct {
	Version   string    `json:"version"`
	Timestamp int64     `json:"timestamp"`
	Pokemon   []Species `json:"pokemon"`
}

func loadEnvelopeSchema() (*gojsonschema.Schema, error) {
	envelopeSchemaOnce.Do(func() {
		envelopeSchema, envelopeSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(envelopeSchemaJSON))
	})
	return envelopeSchema, envelopeSchemaErr
}

func encodeEnvelope(version string, timestamp int64, list []Species) ([]byte, error) {
	if list == nil {
		list = []Species{}
	}
	return json.Marshal(envelope{Version: version, Timestamp: timestamp, Pokemon: list})
}

// decodeEnvelope validates payload against the envelope schema and decodes it.
func decodeEnvelope(payload []byte) (envelope, error) {
	schema, err := loadEnvelopeSchema()
	if err != nil {
		return envelope{}, fmt.Errorf("load envelope schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return envelope{}, fmt.Errorf("parse envelope: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			msgs = append(msgs, field+": "+desc.Description())
		}
		return envelope{}, fmt.Errorf("invalid envelope: %s", strings.Join(msgs, "; "))
	}

	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return envelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}
