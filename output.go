package btcsign

// Output is a payment to a recipient.
type Output struct {
	// Amount is the value paid in satoshis.
	Amount uint64

	// Recipient describes the locking script of the output.
	Recipient Recipient
}

// Recipient is implemented by P2PKH, P2WPKH, P2TRKeyPath, P2TRScriptTree,
// P2SH, P2WSH, ScriptOutput and AddressOutput.
type Recipient interface {
	isRecipient()
}

// P2TRScriptTree pays to a taproot output key committing to a script tree.
type P2TRScriptTree struct {
	// InternalKey is the untweaked internal key, x-only or SEC encoded.
	InternalKey []byte

	// NodeHash is the 32-byte merkle root of the script tree.
	NodeHash []byte
}

// ScriptOutput pays to a raw locking script.
type ScriptOutput struct {
	ScriptPubKey []byte
}

// AddressOutput pays to an encoded address. Address decoding is left to the
// caller, so this recipient is always rejected as unsupported.
type AddressOutput struct {
	Address string
}

func (P2PKH) isRecipient()          {}
func (P2WPKH) isRecipient()         {}
func (P2TRKeyPath) isRecipient()    {}
func (P2TRScriptTree) isRecipient() {}
func (P2SH) isRecipient()           {}
func (P2WSH) isRecipient()          {}
func (ScriptOutput) isRecipient()   {}
func (AddressOutput) isRecipient()  {}
