package model

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Web3BigInt is a token amount in base units, scaled by Decimal.
type Web3BigInt struct {
	Value   string `json:"value"`
	Decimal int    `json:"decimal"`
}

func NewWeb3BigInt(value string, decimal int) *Web3BigInt {
	return &Web3BigInt{Value: value, Decimal: decimal}
}

// FromDecimalString converts a human-readable decimal string to base units
// using exact integer arithmetic. It fails if the fractional part carries
// more digits than the token's decimal count.
func FromDecimalString(s string, decimal int) (*Web3BigInt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty amount")
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}
	if len(fracPart) > decimal {
		return nil, fmt.Errorf("amount %q has more than %d fractional digits", s, decimal)
	}

	fracPart += strings.Repeat("0", decimal-len(fracPart))

	value, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	if neg {
		value.Neg(value)
	}

	return &Web3BigInt{Value: value.String(), Decimal: decimal}, nil
}

// ToDecimalString renders base units as a human-readable decimal string
// using exact integer arithmetic, trimming trailing fractional zeros.
func (w *Web3BigInt) ToDecimalString() string {
	value, ok := new(big.Int).SetString(w.Value, 10)
	if !ok {
		return "0"
	}

	neg := value.Sign() < 0
	if neg {
		value.Neg(value)
	}

	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(w.Decimal)), nil)
	intPart, fracPart := new(big.Int).QuoRem(value, scale, new(big.Int))

	out := intPart.String()
	if fracPart.Sign() != 0 {
		frac := fmt.Sprintf("%0*s", w.Decimal, fracPart.String())
		frac = strings.TrimRight(frac, "0")
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

func (w *Web3BigInt) BigInt() *big.Int {
	value, ok := new(big.Int).SetString(w.Value, 10)
	if !ok {
		return big.NewInt(0)
	}
	return value
}

func (w *Web3BigInt) Int64() (int64, bool) {
	amt, ok := new(big.Int).SetString(w.Value, 10)
	if !ok {
		return 0, false
	}
	return amt.Int64(), true
}

// ToFloat is display-only; base-unit legs must stay on integer arithmetic.
func (w *Web3BigInt) ToFloat() float64 {
	num := new(big.Int)
	num.SetString(w.Value, 10)

	floatNum := new(big.Float).SetInt(num)
	divisor := new(big.Float).SetFloat64(math.Pow(10, float64(w.Decimal)))
	floatNum.Quo(floatNum, divisor)

	result, _ := floatNum.Float64()
	return result
}

func (w *Web3BigInt) Add(number *Web3BigInt) *Web3BigInt {
	result := new(big.Int).Add(w.BigInt(), number.BigInt())
	return &Web3BigInt{Value: result.String(), Decimal: w.Decimal}
}

func (w *Web3BigInt) Sub(number *Web3BigInt) *Web3BigInt {
	result := new(big.Int).Sub(w.BigInt(), number.BigInt())
	return &Web3BigInt{Value: result.String(), Decimal: w.Decimal}
}

// Cmp compares base-unit values: -1 if w < other, 0 if equal, 1 if w > other.
func (w *Web3BigInt) Cmp(other *Web3BigInt) int {
	return w.BigInt().Cmp(other.BigInt())
}

// Rescale converts the amount to a different decimal count with exact
// integer arithmetic. Scaling down truncates toward zero.
func (w *Web3BigInt) Rescale(decimal int) *Web3BigInt {
	value := w.BigInt()
	if decimal > w.Decimal {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimal-w.Decimal)), nil)
		value.Mul(value, scale)
	} else if decimal < w.Decimal {
		scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(w.Decimal-decimal)), nil)
		value.Quo(value, scale)
	}
	return &Web3BigInt{Value: value.String(), Decimal: decimal}
}
