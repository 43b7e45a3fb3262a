package cmd

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mezonai/coins/app"
	"github.com/mezonai/coins/common"
	"github.com/mezonai/coins/handlers/accounts"
	"github.com/mezonai/coins/jsonx"
	"github.com/mezonai/coins/ledger"
	"github.com/mezonai/coins/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, name string, v interface{}) string {
	t.Helper()
	data, err := jsonx.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func signedTransfer(t *testing.T, priv ed25519.PrivateKey, sequence uint64, to string, amt uint64) types.Transaction {
	t.Helper()
	input := types.Line{
		"type":     accounts.TypeName,
		"amount":   amt,
		"pubkey":   common.EncodeBytesToBase58(priv.Public().(ed25519.PublicKey)),
		"sequence": sequence,
	}
	tx := types.Transaction{
		"from": []interface{}{input},
		"to":   []interface{}{types.Line{"type": accounts.TypeName, "amount": amt, "address": to}},
	}
	sigHash, err := ledger.SigHash(tx)
	require.NoError(t, err)
	input["signature"] = common.EncodeBytesToBase58(ed25519.Sign(priv, sigHash))
	return tx
}

func TestReplayBlocksFile(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	alice := common.EncodeBytesToBase58(pub)
	bobPub, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	bob := common.EncodeBytesToBase58(bobPub)

	first := signedTransfer(t, priv, 0, bob, 40)
	path := writeJSON(t, "blocks.json", [][]types.Transaction{
		{first, first},
		{signedTransfer(t, priv, 1, bob, 10)},
	})

	blocks, err := loadBlocks(path)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	coins, err := ledger.New(ledger.Config{
		InitialBalances: map[string]uint64{alice: 100},
		Handlers:        map[string]ledger.Handler{accounts.TypeName: accounts.NewHandler(accounts.Ed25519Verifier{})},
	})
	require.NoError(t, err)
	host := app.New(coins, app.Options{Atomic: true})

	summary, err := replay(host, app.NewBatchChecker(host), blocks)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Blocks)
	assert.Equal(t, 2, summary.Committed)
	assert.Equal(t, 1, summary.Rejected)
	assert.Len(t, summary.BankHash, 64)

	state := host.State()
	assert.Equal(t, &types.Account{Sequence: 2, Balance: 50}, state.Accounts[alice])
	assert.Equal(t, &types.Account{Sequence: 0, Balance: 50}, state.Accounts[bob])
}

func TestWriteResult(t *testing.T) {
	state := types.NewState()
	state.Accounts["alice"] = &types.Account{Sequence: 1, Balance: 7}
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, state, &ApplySummary{Blocks: 2, Committed: 3, BankHash: "ab"}))

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	var decoded types.State
	require.NoError(t, jsonx.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, state.Accounts, decoded.Accounts)
	assert.Equal(t, `{"blocks":2,"committed":3,"rejected":0,"bank_hash":"ab"}`, lines[1])
}

func TestLoadBlocksErrors(t *testing.T) {
	_, err := loadBlocks(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "blocks.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"blocks"}`), 0o600))
	_, err = loadBlocks(path)
	assert.Error(t, err)
}

func TestSigHashFile(t *testing.T) {
	tx := types.Transaction{
		"from": types.Line{"type": "coin", "amount": 5, "signature": "sig"},
		"to":   types.Line{"type": "coin", "amount": 5},
	}
	want, err := ledger.SigHash(tx)
	require.NoError(t, err)

	got, err := sigHashFile(writeJSON(t, "tx.json", tx))
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(want), got)

	_, err = sigHashFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestVerifierByName(t *testing.T) {
	v, err := verifierByName("ed25519")
	require.NoError(t, err)
	assert.IsType(t, accounts.Ed25519Verifier{}, v)

	v, err = verifierByName("secp256k1")
	require.NoError(t, err)
	assert.IsType(t, accounts.Secp256k1Verifier{}, v)

	_, err = verifierByName("rsa")
	assert.Error(t, err)
}
