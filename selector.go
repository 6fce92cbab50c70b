package btcsign

import "sort"

// selectInputs picks the inputs that fund target according to policy. The
// result is a new slice; utxos is left untouched.
func selectInputs(utxos []UtxoInput, target uint64,
	policy SelectorType) ([]UtxoInput, error) {

	if policy != UseAll && policy != AutomaticAscending {
		return nil, newError(ErrorCodeUnsupportedVariant,
			"unknown input selector %d", policy)
	}

	var total uint64
	for _, utxo := range utxos {
		total = addAmount(total, utxo.Amount)
	}
	if total < target {
		return nil, newError(ErrorCodeInsufficientFunds,
			"inputs total %d, outputs total %d", total, target)
	}

	if policy == UseAll {
		selected := make([]UtxoInput, len(utxos))
		copy(selected, utxos)
		return selected, nil
	}

	sorted := make([]UtxoInput, len(utxos))
	copy(sorted, utxos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})

	// A transaction needs at least one input, so the prefix is never empty
	// even when the outputs are all zero.
	var sum uint64
	for i, utxo := range sorted {
		sum = addAmount(sum, utxo.Amount)
		if sum >= target {
			return sorted[:i+1], nil
		}
	}

	// Unreachable: total >= target was checked above.
	panic("btcsign: ascending selection did not reach target")
}

// sumOutputs returns the total value paid by outputs.
func sumOutputs(outputs []UtxoOutput) uint64 {
	var total uint64
	for _, out := range outputs {
		total = addAmount(total, out.Amount)
	}
	return total
}

// addAmount adds two amounts that have already been bounded by MaxAmount.
func addAmount(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		panic("btcsign: amount overflow")
	}
	return sum
}
