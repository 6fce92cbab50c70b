package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	btcsign "btcsign-sdk"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type requestArgs struct {
	Request string `positional-arg-name:"request" description:"JSON request file, - for stdin"`
}

type signCommand struct {
	Args requestArgs `positional-args:"yes" required:"yes"`
}

type sighashCommand struct {
	Args requestArgs `positional-args:"yes" required:"yes"`
}

type compileCommand struct {
	Signatures []string    `long:"sig" description:"Hex signature of a selected input, repeated in input order" required:"yes"`
	Args       requestArgs `positional-args:"yes" required:"yes"`
}

type addressCommand struct{}

type signResult struct {
	Hex    string `json:"hex"`
	TxID   string `json:"txid"`
	Fee    uint64 `json:"fee"`
	Weight int64  `json:"weight"`
	VSize  int64  `json:"vsize"`
}

type sighashResult struct {
	Outpoint    string   `json:"outpoint"`
	Sighash     hexBytes `json:"sighash"`
	Method      string   `json:"method"`
	SighashType uint32   `json:"sighash_type"`
	LeafHash    hexBytes `json:"leaf_hash,omitempty"`
}

func (c *signCommand) Execute(_ []string) error {
	net, in, err := loadRequest(c.Args.Request)
	if err != nil {
		return err
	}
	in.PrivateKey, err = signingKey(&cfg, net)
	if err != nil {
		return err
	}

	out := newEntry().Sign(in)
	zero(in.PrivateKey)
	if err := out.Err(); err != nil {
		return err
	}
	return printJSON(newSignResult(out))
}

func (c *sighashCommand) Execute(_ []string) error {
	_, in, err := loadRequest(c.Args.Request)
	if err != nil {
		return err
	}

	out := newEntry().PreImageHashes(in)
	if err := out.Err(); err != nil {
		return err
	}

	results := make([]sighashResult, 0, len(out.Sighashes))
	for i, hash := range out.Sighashes {
		utxo := out.UtxoInputs[i]
		results = append(results, sighashResult{
			Outpoint:    fmt.Sprintf("%v:%d", utxo.TxID, utxo.Vout),
			Sighash:     hash.Sighash,
			Method:      hash.SigningMethod.String(),
			SighashType: uint32(hash.SighashType),
			LeafHash:    hash.LeafHash,
		})
	}
	return printJSON(results)
}

func (c *compileCommand) Execute(_ []string) error {
	_, in, err := loadRequest(c.Args.Request)
	if err != nil {
		return err
	}

	sigs := make([][]byte, 0, len(c.Signatures))
	for i, s := range c.Signatures {
		sig, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("signature %d: %w", i, err)
		}
		sigs = append(sigs, sig)
	}

	out := newEntry().Compile(in, sigs)
	if err := out.Err(); err != nil {
		return err
	}
	return printJSON(newSignResult(out))
}

func (c *addressCommand) Execute(_ []string) error {
	net, err := netParams(cfg.Network)
	if err != nil {
		return err
	}
	key, err := signingKey(&cfg, net)
	if err != nil {
		return err
	}
	defer zero(key)

	addrs, err := addressesOf(key, net)
	if err != nil {
		return err
	}
	return printJSON(addrs)
}

func loadRequest(path string) (*chaincfg.Params, *btcsign.SigningInput, error) {
	net, err := netParams(cfg.Network)
	if err != nil {
		return nil, nil, err
	}
	req, err := readRequest(path)
	if err != nil {
		return nil, nil, err
	}
	in, err := req.signingInput(net)
	if err != nil {
		return nil, nil, err
	}
	return net, in, nil
}

func newSignResult(out *btcsign.SigningOutput) *signResult {
	// TransactionID is in wire order, display order is reversed.
	txid, _ := chainhash.NewHash(out.TransactionID)
	return &signResult{
		Hex:    hex.EncodeToString(out.Encoded),
		TxID:   txid.String(),
		Fee:    out.Fee,
		Weight: out.Weight,
		VSize:  out.VSize,
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
