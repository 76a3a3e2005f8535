package gltf

import (
	"encoding/base64"
	"slices"
)

// DataURIPrefix precedes the base64 payload of every embedded buffer.
const DataURIPrefix = "data:application/octet-stream;base64,"

// EncodeDataURI returns data as an embedded buffer URI.
func EncodeDataURI(data []byte) string {
	return string(appendDataURI(nil, data))
}

// appendDataURI appends the prefix and the padded base64 text of data to dst,
// growing dst at most once.
func appendDataURI(dst, data []byte) []byte {
	dst = slices.Grow(dst, len(DataURIPrefix)+base64.StdEncoding.EncodedLen(len(data)))
	dst = append(dst, DataURIPrefix...)
	n := len(dst)
	dst = dst[:n+base64.StdEncoding.EncodedLen(len(data))]
	base64.StdEncoding.Encode(dst[n:], data)
	return dst
}

// dataURI marshals a buffer payload straight into a quoted JSON string.
// The prefix and the base64 alphabet never need escaping.
type dataURI []byte

func (d dataURI) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, len(DataURIPrefix)+base64.StdEncoding.EncodedLen(len(d))+2)
	out = append(out, '"')
	out = appendDataURI(out, d)
	return append(out, '"'), nil
}
