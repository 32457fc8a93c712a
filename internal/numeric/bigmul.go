package numeric

import (
	"math/big"

	"github.com/remyoudompheng/bigfft"
)

// fftMulThresholdBits is the operand bit length above which bigfft's
// Schönhage-Strassen multiplication outperforms math/big's default
// multiplication; below it the overhead of the FFT isn't worth paying.
const fftMulThresholdBits = 1 << 13

// bigMul multiplies two arbitrary-precision integers, routing through
// bigfft once either operand is large enough for its asymptotically
// faster multiply to pay for its own overhead. Its caller is Mul on
// ExtInt operands.
func bigMul(x, y *big.Int) *big.Int {
	if x.BitLen() > fftMulThresholdBits || y.BitLen() > fftMulThresholdBits {
		return bigfft.Mul(x, y)
	}
	return new(big.Int).Mul(x, y)
}
