package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSingleLine(t *testing.T) {
	line := Line{"type": "foo", "amount": 100}
	tx := Transaction{"from": line, "to": map[string]interface{}{"type": "foo", "amount": 100}}

	inputs, ok := tx.Inputs()
	require.True(t, ok)
	require.Len(t, inputs, 1)
	assert.Equal(t, "foo", inputs[0].Type())
	assert.Equal(t, 100, inputs[0].Amount())

	outputs, ok := tx.Outputs()
	require.True(t, ok)
	require.Len(t, outputs, 1)
}

func TestNormalizeMissingOrInvalid(t *testing.T) {
	_, ok := Transaction{}.Inputs()
	assert.False(t, ok)

	_, ok = Transaction{"from": "alice"}.Inputs()
	assert.False(t, ok)

	lines, ok := Transaction{"from": []interface{}{}}.Inputs()
	assert.True(t, ok)
	assert.Empty(t, lines)

	lines, ok = Transaction{"from": []interface{}{5}}.Inputs()
	require.True(t, ok)
	assert.Equal(t, Line{}, lines[0])
}

func TestParseTransaction(t *testing.T) {
	tx, err := ParseTransaction([]byte(`{"from": {"type": "foo", "amount": 100}, "to": [{"type": "foo", "amount": 100}]}`))
	require.NoError(t, err)

	inputs, ok := tx.Inputs()
	require.True(t, ok)
	assert.Equal(t, json.Number("100"), inputs[0].Amount())

	outputs, ok := tx.Outputs()
	require.True(t, ok)
	assert.Equal(t, "foo", outputs[0].Type())
}

func TestNewTransaction(t *testing.T) {
	tx := NewTransaction([]Line{{"type": "foo", "amount": 1}}, nil)
	inputs, ok := tx.Inputs()
	require.True(t, ok)
	assert.Len(t, inputs, 1)
	outputs, ok := tx.Outputs()
	require.True(t, ok)
	assert.Empty(t, outputs)
}

func TestLineAccessors(t *testing.T) {
	l := Line{"type": 5, "address": "abc"}
	assert.Equal(t, "", l.Type())
	addr, ok := l.String("address")
	assert.True(t, ok)
	assert.Equal(t, "abc", addr)
	_, ok = l.String("missing")
	assert.False(t, ok)
}
