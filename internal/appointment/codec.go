package appointment

import (
	"encoding/json"
	"errors"
)

// EncodeCollection marshals records as a JSON array. A nil slice encodes as
// an empty array.
func EncodeCollection[T any](records []T) ([]byte, error) {
	if records == nil {
		records = []T{}
	}
	return json.Marshal(records)
}

// DecodeCollection parses a JSON array of records. A JSON null is treated as
// corrupt; an empty array is a valid, empty collection.
func DecodeCollection[T any](data []byte, collection string) ([]T, error) {
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, Corrupt(collection, err)
	}
	if out == nil {
		return nil, Corrupt(collection, errors.New("not a list"))
	}
	return out, nil
}
