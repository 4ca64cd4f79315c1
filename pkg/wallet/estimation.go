package wallet

const (
	// base fields: version + locktime + input/output counts
	txBaseSize = 10
	// outpoint (34) + sequence (4) + sig script with DER sig and pubkey (108)
	txInputSize = 146
	// value (8) + PKH script (26)
	txOutputSize = 34
)

// EstimateTxSize returns the size in bytes of a transaction spending
// numInputs notes towards numOutputs PKH outputs. Inputs dominate, which is
// why the exact fee of a send can only be known after coin selection.
func EstimateTxSize(numInputs, numOutputs int) int {
	return txBaseSize +
		varIntSerializeSize(uint64(numInputs)) +
		varIntSerializeSize(uint64(numOutputs)) +
		numInputs*txInputSize +
		numOutputs*txOutputSize
}

// EstimateFee returns the fee in nicks for a transaction of the given shape
// at the given fee rate
func EstimateFee(numInputs, numOutputs int, nicksPerByte uint64) uint64 {
	return uint64(EstimateTxSize(numInputs, numOutputs)) * nicksPerByte
}

func varIntSerializeSize(val uint64) int {
	if val < 0xfd {
		return 1
	}
	if val <= 0xffff {
		return 3
	}
	if val <= 0xffffffff {
		return 5
	}
	return 9
}
