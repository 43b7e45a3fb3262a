package types

// Account is the balance record kept per address. Sequence starts at 0 and is advanced by
// whoever enforces replay protection; the engine itself never touches it.
type Account struct {
	Sequence uint64 `json:"sequence"`
	Balance  uint64 `json:"balance"`
}
