package storage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Decode reads key and unmarshals its JSON content. Absent or blank content
// yields ErrNotFound; content that does not parse yields ErrMalformed. Both
// come wrapped in a *StorageError.
func Decode[T any](s Store, key string) (T, error) {
	var v T

	raw, ok := s.Read(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return v, &StorageError{Op: "decode", Key: key, Err: ErrNotFound}
	}

	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		var zero T
		return zero, &StorageError{Op: "decode", Key: key, Err: fmt.Errorf("%w: %v", ErrMalformed, err)}
	}
	return v, nil
}

// Encode marshals v as JSON and overwrites key with it.
func Encode(s Store, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &StorageError{Op: "encode", Key: key, Err: err}
	}
	s.Write(key, string(b))
	return nil
}
