package req

import (
	"encoding/json"
	"io"
)

// Decode reads one JSON value of type T, rejecting unknown fields
func Decode[T any](body io.Reader) (T, error) {
	var v T
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}
