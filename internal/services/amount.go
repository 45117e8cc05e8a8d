package services

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// pebDecimals is the number of decimal places of the chain-native token:
// 1 KAIA = 10^18 peb.
const pebDecimals = 18

var pebPerKAIA = new(big.Int).Exp(big.NewInt(10), big.NewInt(pebDecimals), nil)

// AmountToPeb converts a decimal KAIA amount entered by the user to an
// integer peb value. The conversion is exact decimal-string arithmetic;
// fractional digits beyond the 18th are truncated (floored). Anything that
// is not a plain non-negative decimal number is rejected as user input.
func AmountToPeb(amount string) (*big.Int, error) {
	s := strings.TrimSpace(amount)
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return nil, ErrInvalidAmount
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, ErrInvalidAmount
		}
	}
	if intPart == "" && fracPart == "" {
		return nil, ErrInvalidAmount
	}
	if !digitsOnly(intPart) || !digitsOnly(fracPart) {
		return nil, ErrInvalidAmount
	}

	// Truncate fractional digits below one peb, pad the rest to 18 places.
	if len(fracPart) > pebDecimals {
		fracPart = fracPart[:pebDecimals]
	}
	fracPart += strings.Repeat("0", pebDecimals-len(fracPart))

	value := new(big.Int)
	if intPart != "" {
		if _, ok := value.SetString(intPart, 10); !ok {
			return nil, ErrInvalidAmount
		}
	}
	value.Mul(value, pebPerKAIA)

	frac := new(big.Int)
	if _, ok := frac.SetString(fracPart, 10); !ok {
		return nil, ErrInvalidAmount
	}

	return value.Add(value, frac), nil
}

// AmountToHex converts a decimal KAIA amount to the hex-quantity string
// used on the wire.
func AmountToHex(amount string) (string, error) {
	peb, err := AmountToPeb(amount)
	if err != nil {
		return "", err
	}
	return hexutil.EncodeBig(peb), nil
}

// FormatPeb renders a peb value as a decimal KAIA string with trailing
// zeros trimmed, for display only.
func FormatPeb(peb *big.Int) string {
	if peb == nil {
		return "0"
	}
	quo := new(big.Int)
	rem := new(big.Int)
	quo.QuoRem(peb, pebPerKAIA, rem)

	if rem.Sign() == 0 {
		return quo.String()
	}

	frac := rem.String()
	frac = strings.Repeat("0", pebDecimals-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")
	return quo.String() + "." + frac
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
