package main

import (
	"errors"
	"fmt"
	"os"

	btcsign "btcsign-sdk"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btclog"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Network       string `long:"network" description:"Network the keys and addresses belong to" default:"mainnet" choice:"mainnet" choice:"testnet3" choice:"signet" choice:"regtest"`
	DebugLevel    string `long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical, off}" default:"info"`
	Deterministic bool   `long:"deterministic" description:"Use zero auxiliary randomness for Schnorr signatures (testing only)"`
	PrivKey       string `long:"privkey" env:"BTCSIGN_PRIVKEY" description:"Signing key as 32 hex bytes or WIF"`
	Mnemonic      string `long:"mnemonic" env:"BTCSIGN_MNEMONIC" description:"BIP-39 mnemonic to derive the signing key from"`
	PathAccount   uint32 `long:"path-account" description:"Account index of the m/84'/coin'/account'/0/0 derivation path" default:"0"`
}

var cfg options

func main() {
	parser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if err := setupLogging(cfg.DebugLevel); err != nil {
			return err
		}
		return cmd.Execute(args)
	}

	commands := []struct {
		name, short, long string
		data              interface{}
	}{
		{"sign", "Sign a request",
			"Sign every selected input of a JSON request and print the transaction.",
			&signCommand{}},
		{"sighash", "Print sighashes",
			"Print the sighash of every selected input of a JSON request.",
			&sighashCommand{}},
		{"compile", "Assemble externally signed transaction",
			"Assemble a JSON request with signatures produced elsewhere.",
			&compileCommand{}},
		{"address", "Print addresses of the signing key",
			"Print the P2PKH, P2WPKH and P2TR addresses of the signing key.",
			&addressCommand{}},
	}
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.data); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, err)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		return fmt.Errorf("invalid debug level %q", level)
	}
	logger := btclog.NewBackend(os.Stderr).Logger("SIGN")
	logger.SetLevel(lvl)
	btcsign.UseLogger(logger)
	return nil
}

func netParams(name string) (*chaincfg.Params, error) {
	switch name {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

func newEntry() *btcsign.Entry {
	if cfg.Deterministic {
		return btcsign.NewEntry(btcsign.WithDeterministicSigning())
	}
	return btcsign.NewEntry()
}
