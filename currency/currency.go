// Copyright (c) 2022 - for information on the respective copyright owner
// see the NOTICE file and/or the repository at
// https://github.com/daltonclaybrook/GuessingGame
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package currency

import (
	"math/big"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/daltonclaybrook/GuessingGame"
)

// Units of ethereum's native currency that can be used in amounts given by the user.
const (
	ETH  = "ETH"
	GWEI = "GWEI"
	WEI  = "WEI"

	placesToRound = 6
)

var units map[string]guessinggame.Currency

func init() {
	units = map[string]guessinggame.Currency{
		ETH:  unitParser{exponent: 18, placesToRound: placesToRound},
		GWEI: unitParser{exponent: 9, placesToRound: placesToRound},
		WEI:  unitParser{exponent: 0, placesToRound: 0},
	}
}

// IsSupported checks if there is parser registered for the unit
// represented by the given string. Unit names are case insensitive.
func IsSupported(unit string) bool {
	p, ok := units[strings.ToUpper(unit)]
	return ok && p != nil
}

// NewParser returns the parser for the unit. It returns nil if unsupported unit is used.
// so check if exists before usage.
func NewParser(unit string) guessinggame.Currency {
	return units[strings.ToUpper(unit)]
}

// ParseAmount parses an amount of the form "<value> <unit>" (eg: "1 ETH", "20 gwei") and returns the
// value in wei. When the unit is omitted, the value is interpreted in ETH.
func ParseAmount(input string) (*big.Int, error) {
	fields := strings.Fields(input)
	switch len(fields) {
	case 1:
		return NewParser(ETH).Parse(fields[0])
	case 2:
		p := NewParser(fields[1])
		if p == nil {
			return nil, errors.Errorf("unsupported unit %s", fields[1])
		}
		return p.Parse(fields[0])
	default:
		return nil, errors.Errorf("invalid amount %q, should be of the form <value> [unit]", input)
	}
}

type unitParser struct {
	exponent      int32
	placesToRound int32
}

// Parse parses the given amount string in the unit, converts it to Wei and returns a
// big.Int representation of the value.
// Zero is allowed. It rejects negative values and values with a fractional part smaller than
// one wei, as these cannot be represented without loss of accuracy.
func (p unitParser) Parse(input string) (*big.Int, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return nil, errors.Wrap(err, "invalid decimal string")
	}
	if amount.IsNegative() {
		return nil, errors.New("amount should not be negative")
	}

	amountBaseUnit := amount.Shift(p.exponent)
	if !amountBaseUnit.Equal(amountBaseUnit.Truncate(0)) {
		return nil, errors.New("amount is too precise, smallest unit is 1 wei")
	}
	return amountBaseUnit.BigInt(), nil
}

// Print converts the input in Wei to the unit and returns a string representation of it.
// The returned string is rounded off to 6 decimal places for visual representation.
func (p unitParser) Print(input *big.Int) string {
	if input == nil {
		input = new(big.Int)
	}
	amount := decimal.NewFromBigInt(input, -p.exponent)
	return amount.StringFixedBank(p.placesToRound)
}
