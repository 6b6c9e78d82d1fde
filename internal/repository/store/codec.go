package store

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// MaxRecordSize bounds the encoded size of any stored record.
const MaxRecordSize = 512

// ErrRecordTooLarge is returned when a record encodes beyond MaxRecordSize.
// Nothing is written when it occurs.
var ErrRecordTooLarge = errors.New("record exceeds storage size bound")

// Encode serialises a record as a BSON document and enforces MaxRecordSize.
func Encode(record any) ([]byte, error) {
	data, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if len(data) > MaxRecordSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrRecordTooLarge, len(data), MaxRecordSize)
	}
	return data, nil
}

// Decode restores a record previously produced by Encode.
func Decode[T any](data []byte) (T, error) {
	var record T
	if err := bson.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}
