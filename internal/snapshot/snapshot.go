// Package snapshot defines the persisted form of a session and its codec.
//
// A snapshot is JSON, validated against an embedded JSON Schema on the way
// in, and stored zstd-compressed.
package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Version is the snapshot format written by Encode.
const Version = 1

// ErrInvalid is wrapped by Decode when a snapshot fails schema validation.
var ErrInvalid = errors.New("snapshot: invalid")

//go:embed snapshot.schema.json
var schemaJSON []byte

const schemaURL = "snapshot.schema.json"

// Data is the persisted session.
type Data struct {
	Version       int        `json:"version"`
	Timestamp     int64      `json:"timestamp"` // unix milliseconds
	Player        Player     `json:"player"`
	PurchaseCount int        `json:"purchaseCount"`
	Supplies      []Supply   `json:"supplies"`
	CashItems     []Cash     `json:"cashItems"`
	Police        []Police   `json:"police"`
	Buildings     []Building `json:"buildings"`
	Streets       []Street   `json:"streets"`
}

type Player struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Money float64 `json:"money"`
	Buzz  float64 `json:"buzz"`
}

type Supply struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
	Cost float64 `json:"cost"`
}

type Cash struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Size  float64 `json:"size"`
	Value float64 `json:"value"`
}

type Police struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Size        float64 `json:"size"`
	Speed       float64 `json:"speed"`
	AlertRadius float64 `json:"alertRadius"`
}

type Building struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  string  `json:"style"`
	Shade  int     `json:"shade"`
}

type Street struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// normalize replaces nil slices so they encode as [] rather than null.
func (d Data) normalize() Data {
	if d.Supplies == nil {
		d.Supplies = []Supply{}
	}
	if d.CashItems == nil {
		d.CashItems = []Cash{}
	}
	if d.Police == nil {
		d.Police = []Police{}
	}
	if d.Buildings == nil {
		d.Buildings = []Building{}
	}
	if d.Streets == nil {
		d.Streets = []Street{}
	}
	if d.Version == 0 {
		d.Version = Version
	}
	return d
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

// Validate checks raw JSON against the snapshot schema.
func Validate(raw []byte) error {
	s, err := compileSchema()
	if err != nil {
		return fmt.Errorf("snapshot: compile schema: %w", err)
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Marshal encodes d as plain JSON.
func Marshal(d Data) ([]byte, error) {
	raw, err := json.Marshal(d.normalize())
	if err != nil {
		return nil, fmt.Errorf("snapshot: json encode: %w", err)
	}
	return raw, nil
}

// Unmarshal validates and decodes plain JSON.
func Unmarshal(raw []byte) (Data, error) {
	var d Data
	if err := Validate(raw); err != nil {
		return d, err
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		return d, fmt.Errorf("snapshot: json decode: %w", err)
	}
	return d, nil
}

// Encode returns d as zstd-compressed JSON.
func Encode(d Data) ([]byte, error) {
	raw, err := Marshal(d)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("snapshot: zstd writer: %w", err)
	}
	if _, err := enc.Write(raw); err != nil {
		enc.Close()
		return nil, fmt.Errorf("snapshot: compress: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("snapshot: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode decompresses, validates and decodes a blob written by Encode.
func Decode(blob []byte) (Data, error) {
	dec, err := zstd.NewReader(bytes.NewReader(blob))
	if err != nil {
		return Data{}, fmt.Errorf("snapshot: zstd reader: %w", err)
	}
	defer dec.Close()

	raw, err := io.ReadAll(dec)
	if err != nil {
		return Data{}, fmt.Errorf("snapshot: decompress: %w", err)
	}
	return Unmarshal(raw)
}
