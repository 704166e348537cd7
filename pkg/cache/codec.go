package cache

import "github.com/vmihailenco/msgpack/v5"

// Encode serializes v for storage in a [Store].
func Encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Decode deserializes data produced by [Encode] into v, which must be a pointer.
func Decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}
