// Package envelope wraps JSON payloads as gzip-compressed, base64-encoded text.
package envelope

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

const Encoding = "gzip+base64"

// Encode marshals v to JSON, gzips it and returns standard base64 text
func Encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("envelope: marshal: %w", err)
	}
	return EncodeBytes(raw)
}

func EncodeBytes(raw []byte) (string, error) {
	compressed, err := Compress(raw)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(compressed), nil
}

// Compress gzips raw without the base64 step, for binary sinks such as object storage
func Compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("envelope: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("envelope: compress: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode into v
func Decode(data string, v any) error {
	raw, err := DecodeBytes(data)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("envelope: unmarshal: %w", err)
	}
	return nil
}

func DecodeBytes(data string) ([]byte, error) {
	compressed, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("envelope: base64: %w", err)
	}
	return Decompress(compressed)
}

func Decompress(compressed []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("envelope: gzip: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("envelope: gzip: %w", err)
	}
	return raw, nil
}
