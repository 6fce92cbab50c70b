package btcsign

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// SigningInput is a request to spend a set of UTXOs to a set of recipients.
type SigningInput struct {
	// Version is the transaction version.
	Version int32

	// LockTime is the transaction lock time. A nil LockTime is the same as
	// LockTimeNone.
	LockTime LockTime

	// PrivateKey is the 32-byte secp256k1 key used by Sign. It is not
	// needed for PreImageHashes or Compile.
	PrivateKey []byte

	// InputSelector decides which inputs fund the outputs.
	InputSelector SelectorType

	Inputs  []Input
	Outputs []Output
}

// Input is a UTXO being spent.
type Input struct {
	// TxID is the hash of the transaction holding the UTXO, in wire byte
	// order.
	TxID chainhash.Hash

	// Vout is the index of the UTXO within that transaction.
	Vout uint32

	// Amount is the value of the UTXO in satoshis.
	Amount uint64

	// OnePrevout makes a taproot input commit to its own prevout only
	// (SIGHASH_ANYONECANPAY) instead of to every prevout of the transaction.
	OnePrevout bool

	// Variant describes the spending condition of the UTXO.
	Variant InputVariant
}

// LockTime is one of LockTimeNone, LockTimeBlocks or LockTimeSeconds.
type LockTime interface {
	isLockTime()
}

// LockTimeNone leaves the transaction lock time at zero.
type LockTimeNone struct{}

// LockTimeBlocks locks the transaction until the given block height.
type LockTimeBlocks uint32

// LockTimeSeconds locks the transaction until the given unix time.
type LockTimeSeconds uint32

func (LockTimeNone) isLockTime()    {}
func (LockTimeBlocks) isLockTime()  {}
func (LockTimeSeconds) isLockTime() {}

// PubKeyOrHash identifies a key either by its SEC encoded public key or by
// the HASH160 of it.
type PubKeyOrHash interface {
	isPubKeyOrHash()
}

// PubKey is a 33-byte compressed or 65-byte uncompressed public key.
type PubKey []byte

// PubKeyHash is a precomputed 20-byte HASH160 of a public key.
type PubKeyHash []byte

func (PubKey) isPubKeyOrHash()     {}
func (PubKeyHash) isPubKeyOrHash() {}

// InputVariant is the spending condition of an Input. It is implemented by
// P2PKH, P2WPKH, P2TRKeyPath, P2TRScriptPath, P2SH, P2WSH and CustomInput.
type InputVariant interface {
	isInputVariant()
}

// P2PKH is a pay-to-public-key-hash spending condition.
type P2PKH struct {
	Key PubKeyOrHash
}

// P2WPKH is a pay-to-witness-public-key-hash spending condition.
type P2WPKH struct {
	Key PubKeyOrHash
}

// P2TRKeyPath is a taproot output spent or paid through its key path. The
// key is the untweaked internal key, either x-only (32 bytes) or SEC
// encoded.
type P2TRKeyPath struct {
	PubKey []byte
}

// P2TRScriptPath spends a taproot output through one of its leaf scripts.
type P2TRScriptPath struct {
	// Payload is the leaf script being executed.
	Payload []byte

	// ControlBlock proves Payload is committed to by the output key.
	ControlBlock []byte
}

// P2SH is a pay-to-script-hash spending condition. Not supported yet.
type P2SH struct {
	RedeemScript []byte
}

// P2WSH is a pay-to-witness-script-hash spending condition. Not supported
// yet.
type P2WSH struct {
	WitnessScript []byte
}

// CustomInput is an input whose locking script and unlocking data are
// provided by the caller. The unlocking data is used verbatim, so any
// signatures must already be embedded in it.
type CustomInput struct {
	// ScriptPubKey is the locking script of the UTXO. Segwit inputs use it
	// as the BIP-143 script code unless it is a P2WPKH program.
	ScriptPubKey []byte

	// SighashMethod is the sighash algorithm the input commits to.
	SighashMethod SighashMethod

	// TapLeafScript is the leaf script executed by a taproot script-path
	// spend. Its tapleaf hash is committed to by the sighash.
	TapLeafScript []byte

	ScriptSig    []byte
	WitnessItems [][]byte
}

func (P2PKH) isInputVariant()          {}
func (P2WPKH) isInputVariant()         {}
func (P2TRKeyPath) isInputVariant()    {}
func (P2TRScriptPath) isInputVariant() {}
func (P2SH) isInputVariant()           {}
func (P2WSH) isInputVariant()          {}
func (CustomInput) isInputVariant()    {}
