package btcsign

import (
	"errors"
)

// Entry turns signing requests into sighashes and signed transactions. It
// holds no per-request state and is safe for concurrent use.
type Entry struct {
	auxRand AuxRandSource
}

// Option configures an Entry.
type Option func(*Entry)

// WithAuxRandSource sets the source of BIP-340 auxiliary randomness.
func WithAuxRandSource(src AuxRandSource) Option {
	return func(e *Entry) {
		e.auxRand = src
	}
}

// WithDeterministicSigning disables Schnorr auxiliary randomness so that
// signing the same request always yields the same bytes. For tests only.
func WithDeterministicSigning() Option {
	return WithAuxRandSource(ZeroAuxRand{})
}

// NewEntry creates an Entry. Schnorr signatures use CryptoAuxRand unless an
// option says otherwise.
func NewEntry(opts ...Option) *Entry {
	e := &Entry{
		auxRand: CryptoAuxRand{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PreSigningOutput lists the sighashes to sign, parallel to the selected
// inputs.
type PreSigningOutput struct {
	Sighashes   []Sighash
	UtxoInputs  []UtxoInput
	UtxoOutputs []UtxoOutput

	Error        ErrorCode
	ErrorMessage string
}

// Err returns the failure recorded in the output, or nil.
func (o *PreSigningOutput) Err() error {
	return outputErr(o.Error, o.ErrorMessage)
}

// SigningOutput is a signed transaction ready for broadcast. On failure
// only Error and ErrorMessage are set.
type SigningOutput struct {
	Transaction *Transaction

	// Encoded is the consensus serialization of the transaction.
	Encoded []byte

	// TransactionID is the double-SHA256 of the serialization without
	// witnesses, in wire byte order.
	TransactionID []byte

	// Fee is the selected input total minus the output total.
	Fee uint64

	Weight int64
	VSize  int64

	Error        ErrorCode
	ErrorMessage string
}

// Err returns the failure recorded in the output, or nil.
func (o *SigningOutput) Err() error {
	return outputErr(o.Error, o.ErrorMessage)
}

func outputErr(code ErrorCode, msg string) error {
	if code == ErrorCodeOK {
		return nil
	}
	return &Error{Code: code, Err: errors.New(msg)}
}

// PreImageHashes classifies the inputs, selects the ones that fund the
// outputs and returns the sighash each of them has to be signed over.
func (e *Entry) PreImageHashes(input *SigningInput) *PreSigningOutput {
	b, err := plan(input)
	if err != nil {
		return preSigningFailure(err)
	}

	hashes, err := b.preimages()
	if err != nil {
		return preSigningFailure(err)
	}

	return &PreSigningOutput{
		Sighashes:   hashes,
		UtxoInputs:  b.inputs,
		UtxoOutputs: b.outputs,
	}
}

// Sign signs every selected input with the request's private key and
// returns the serialized transaction.
func (e *Entry) Sign(input *SigningInput) *SigningOutput {
	if input == nil {
		return signingFailure(newError(ErrorCodeMissingField,
			"missing signing input"))
	}

	privKey, err := parsePrivateKey(input.PrivateKey)
	if err != nil {
		return signingFailure(err)
	}
	signer := &keySigner{privKey: privKey, auxRand: e.auxRand}
	defer signer.zero()

	b, err := plan(input)
	if err != nil {
		return signingFailure(err)
	}

	hashes, err := b.preimages()
	if err != nil {
		return signingFailure(err)
	}

	sigs, err := signer.sign(hashes)
	if err != nil {
		return signingFailure(err)
	}

	return compile(b, sigs)
}

// Compile assembles the transaction from signatures produced elsewhere.
// signatures must be parallel to the inputs selected by PreImageHashes for
// the same request.
func (e *Entry) Compile(input *SigningInput,
	signatures [][]byte) *SigningOutput {

	b, err := plan(input)
	if err != nil {
		return signingFailure(err)
	}
	return compile(b, signatures)
}

// plan classifies the request and selects its inputs.
func plan(input *SigningInput) (*txBuilder, error) {
	if input == nil {
		return nil, newError(ErrorCodeMissingField, "missing signing input")
	}

	outputs, err := classifyOutputs(input.Outputs)
	if err != nil {
		return nil, err
	}
	utxos, err := classifyInputs(input.Inputs)
	if err != nil {
		return nil, err
	}

	target := sumOutputs(outputs)
	selected, err := selectInputs(utxos, target, input.InputSelector)
	if err != nil {
		return nil, err
	}

	log.Debugf("Selected %d of %d inputs with %v for %d sats",
		len(selected), len(utxos), input.InputSelector, target)

	return newTxBuilder(input.Version, input.LockTime, selected, outputs)
}

func compile(b *txBuilder, sigs [][]byte) *SigningOutput {
	claims, err := buildClaims(b.inputs, sigs)
	if err != nil {
		return signingFailure(err)
	}

	signed, err := b.finalize(claims)
	if err != nil {
		return signingFailure(err)
	}

	return &SigningOutput{
		Transaction:   signed.summary,
		Encoded:       signed.encoded,
		TransactionID: signed.txHash.CloneBytes(),
		Fee:           signed.fee,
		Weight:        signed.weight,
		VSize:         signed.vsize,
	}
}

func preSigningFailure(err error) *PreSigningOutput {
	log.Debugf("Preimage hashing failed: %v", err)
	return &PreSigningOutput{
		Error:        CodeOf(err),
		ErrorMessage: err.Error(),
	}
}

func signingFailure(err error) *SigningOutput {
	log.Debugf("Signing failed: %v", err)
	return &SigningOutput{
		Error:        CodeOf(err),
		ErrorMessage: err.Error(),
	}
}
