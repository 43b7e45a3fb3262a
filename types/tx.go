package types

import "github.com/mezonai/coins/jsonx"

const (
	FieldType      = "type"
	FieldAmount    = "amount"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldSignature = "signature"
)

// Line is one input or output of a transaction. Only "type" and "amount" have meaning to the
// engine; every other field belongs to the handler for that type.
type Line map[string]interface{}

// Type returns the line's type, or "" if it is missing or not a string.
func (l Line) Type() string {
	s, _ := l[FieldType].(string)
	return s
}

// Amount returns the raw amount value, unvalidated.
func (l Line) Amount() interface{} {
	return l[FieldAmount]
}

// String returns the field as a string, reporting whether it was present and a string.
func (l Line) String(field string) (string, bool) {
	s, ok := l[field].(string)
	return s, ok
}

// Transaction is a transaction as submitted by the host: an open record whose "from" and "to"
// hold either a single line or a sequence of lines.
type Transaction map[string]interface{}

// NewTransaction builds a transaction from explicit input and output sequences.
func NewTransaction(from, to []Line) Transaction {
	fromList := make([]interface{}, len(from))
	for i, l := range from {
		fromList[i] = l
	}
	toList := make([]interface{}, len(to))
	for i, l := range to {
		toList[i] = l
	}
	return Transaction{FieldFrom: fromList, FieldTo: toList}
}

// ParseTransaction decodes JSON, keeping numbers as json.Number.
func ParseTransaction(data []byte) (Transaction, error) {
	var tx Transaction
	if err := jsonx.UnmarshalUseNumber(data, &tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Inputs returns "from" normalized to a sequence. ok is false when "from" is absent or is
// neither a line nor a sequence.
func (tx Transaction) Inputs() ([]Line, bool) {
	return normalizeLines(tx[FieldFrom])
}

// Outputs returns "to" normalized to a sequence.
func (tx Transaction) Outputs() ([]Line, bool) {
	return normalizeLines(tx[FieldTo])
}

func normalizeLines(v interface{}) ([]Line, bool) {
	switch lines := v.(type) {
	case nil:
		return nil, false
	case Line:
		return []Line{lines}, true
	case map[string]interface{}:
		return []Line{Line(lines)}, true
	case []Line:
		return lines, true
	case []map[string]interface{}:
		out := make([]Line, len(lines))
		for i, l := range lines {
			out[i] = Line(l)
		}
		return out, true
	case []interface{}:
		out := make([]Line, len(lines))
		for i, item := range lines {
			out[i] = asLine(item)
		}
		return out, true
	default:
		return nil, false
	}
}

// asLine converts a sequence element to a Line. Elements that are not records become empty
// lines, which then fail amount validation.
func asLine(v interface{}) Line {
	switch l := v.(type) {
	case Line:
		return l
	case map[string]interface{}:
		return Line(l)
	default:
		return Line{}
	}
}
