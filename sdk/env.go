package sdk

// Env is the execution environment snapshot the host exposes for the
// currently running transaction.
type Env struct {
	ContractId  string   `json:"contract.id"`
	TxId        string   `json:"tx.id"`
	Index       int64    `json:"tx.index"`
	OpIndex     int64    `json:"tx.op_index"`
	BlockId     string   `json:"block.id"`
	BlockHeight uint64   `json:"block.height"`
	Timestamp   string   `json:"block.timestamp"`
	Sender      Sender   `json:"sender"`
	Caller      Caller   `json:"caller"`
	Payer       string   `json:"payer"`
	Intents     []Intent `json:"intents"`
}

// Caller identifies the direct caller, which differs from Sender when the
// call came through another contract.
type Caller struct {
	Address Address `json:"id"`
}
