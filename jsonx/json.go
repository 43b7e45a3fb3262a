package jsonx

import (
	"bytes"
	"io"

	jsoniter "github.com/json-iterator/go"
)

// Map keys are emitted in sorted order, which makes Marshal usable for digests.
var jsonx = jsoniter.ConfigCompatibleWithStandardLibrary

func Marshal(v interface{}) ([]byte, error) {
	return jsonx.Marshal(v)
}

func Unmarshal(data []byte, v interface{}) error {
	return jsonx.Unmarshal(data, v)
}

// UnmarshalUseNumber decodes numbers into json.Number so amounts keep their exact text.
func UnmarshalUseNumber(data []byte, v interface{}) error {
	dec := jsonx.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func NewDecoder(r io.Reader) *jsoniter.Decoder {
	return jsonx.NewDecoder(r)
}

func NewEncoder(w io.Writer) *jsoniter.Encoder {
	return jsonx.NewEncoder(w)
}
