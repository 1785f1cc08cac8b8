package fsusage

import (
	"fmt"
	"math/big"
	"strconv"
)

const sizeSuffixes = "KMGTPEZY"

// FormatSize renders count*unitSize bytes with binary prefixes and two
// fractional digits, e.g. 6815744 -> "6.50M". Values below 1024 are printed
// as plain integers and zero is "0". The product is not limited to 64 bits.
func FormatSize(count, unitSize uint64) string {
	size := new(big.Int).Mul(new(big.Int).SetUint64(count), new(big.Int).SetUint64(unitSize))
	if size.IsUint64() && size.Uint64() < 1024 {
		return size.String()
	}

	// size >= 1024^(o+1) exactly when it needs more than 10*(o+1) bits.
	o := 1
	for o < len(sizeSuffixes) && size.BitLen() > 10*(o+1) {
		o++
	}

	scaled := new(big.Int).Mul(size, big.NewInt(100))
	for {
		shift := 10 * o
		hundredths := new(big.Int).Rsh(scaled, uint(shift))
		// Half up: the dropped remainder is at least half of 1024^o.
		if scaled.Bit(shift-1) == 1 {
			hundredths.Add(hundredths, big.NewInt(1))
		}

		if hundredths.Cmp(big.NewInt(1024*100)) < 0 || o == len(sizeSuffixes) {
			whole, frac := new(big.Int).QuoRem(hundredths, big.NewInt(100), new(big.Int))
			return fmt.Sprintf("%s.%02d%c", whole.String(), frac.Int64(), sizeSuffixes[o-1])
		}

		// Rounded up to 1024.00 of this unit, use the next one.
		o++
	}
}

// FormatPercent returns 100*used/total with two decimals, without the
// percent sign. total must not be zero.
func FormatPercent(used, total uint64) string {
	percent := float64(used) / float64(total) * 100.0
	return strconv.FormatFloat(percent, 'f', 2, 64)
}
