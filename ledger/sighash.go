package ledger

import (
	"crypto/sha256"

	"github.com/mezonai/coins/errors"
	"github.com/mezonai/coins/jsonx"
	"github.com/mezonai/coins/types"
)

// SigHash is the digest signers sign: sha256 of the transaction's canonical JSON (sorted keys)
// with every line's signature removed, so adding signatures does not change it.
func SigHash(tx types.Transaction) ([]byte, error) {
	unsigned := make(map[string]interface{}, len(tx))
	for k, v := range tx {
		switch k {
		case types.FieldSignature, "signatures":
			continue
		case types.FieldFrom, types.FieldTo:
			unsigned[k] = stripSignatures(v)
		default:
			unsigned[k] = v
		}
	}
	data, err := jsonx.Marshal(unsigned)
	if err != nil {
		return nil, errors.NewErrorf(errors.ErrCodeMalformedTransaction, "Cannot encode transaction: %v", err)
	}
	sum := sha256.Sum256(data)
	return sum[:], nil
}

func stripSignatures(v interface{}) interface{} {
	switch lines := v.(type) {
	case types.Line:
		return stripLine(lines)
	case map[string]interface{}:
		return stripLine(lines)
	case []types.Line:
		out := make([]interface{}, len(lines))
		for i, l := range lines {
			out[i] = stripLine(l)
		}
		return out
	case []map[string]interface{}:
		out := make([]interface{}, len(lines))
		for i, l := range lines {
			out[i] = stripLine(l)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(lines))
		for i, item := range lines {
			out[i] = stripSignatures(item)
		}
		return out
	default:
		return v
	}
}

func stripLine(l map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(l))
	for k, v := range l {
		if k == types.FieldSignature {
			continue
		}
		out[k] = v
	}
	return out
}
