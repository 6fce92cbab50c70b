package btcsign

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// SighashMethod is the signature hash algorithm an input commits to.
type SighashMethod int

const (
	// Legacy is the pre-segwit sighash.
	Legacy SighashMethod = 1

	// Segwit is the BIP-143 witness v0 sighash.
	Segwit SighashMethod = 2

	// Taproot is the BIP-341 witness v1 sighash.
	Taproot SighashMethod = 3
)

func (m SighashMethod) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case Segwit:
		return "segwit"
	case Taproot:
		return "taproot"
	default:
		return "unknown"
	}
}

// SelectorType is the policy used to pick the inputs that fund the outputs.
type SelectorType int

const (
	// UseAll spends every input in declared order.
	UseAll SelectorType = 0

	// AutomaticAscending spends the smallest inputs first and stops as soon
	// as the outputs are covered.
	AutomaticAscending SelectorType = 1
)

func (s SelectorType) String() string {
	switch s {
	case UseAll:
		return "use_all"
	case AutomaticAscending:
		return "automatic_ascending"
	default:
		return "unknown"
	}
}

const (
	// DefaultSequence is the sequence number given to every input.
	DefaultSequence uint32 = wire.MaxTxInSequenceNum

	// LockTimeThreshold is the consensus boundary between block heights and
	// unix timestamps in nLockTime.
	LockTimeThreshold uint32 = 500_000_000

	// MaxAmount is the largest amount in satoshis an input or output may
	// carry.
	MaxAmount = uint64(btcutil.MaxSatoshi)
)
