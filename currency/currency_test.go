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

package currency_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daltonclaybrook/GuessingGame/currency"
)

func Test_IsSupported_NewParser(t *testing.T) {
	for _, unit := range []string{currency.ETH, currency.GWEI, currency.WEI, "eth", "Gwei"} {
		assert.True(t, currency.IsSupported(unit), unit)
		assert.NotNil(t, currency.NewParser(unit), unit)
	}
	assert.False(t, currency.IsSupported("BTC"))
	assert.Nil(t, currency.NewParser("BTC"))
}

func Test_unitParser_Parse_ETH(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  *big.Int
		wantErr bool
	}{
		{"happy_1", "0.5", big.NewInt(5e17), false},
		{"happy_2", "0.000000000000000005", big.NewInt(5), false},
		{"happy_3_exp_form", "5e-18", big.NewInt(5), false},
		{"happy_3_exp_form_upper_case", "5E-18", big.NewInt(5), false},
		{"happy_whole", "1", big.NewInt(1e18), false},
		{"happy_zero", "0", big.NewInt(0), false},

		{"err_too_small_exp_form", "5e-19", nil, true},
		{"err_too_small_exp_form_upper_case", "5E-19", nil, true},
		{"err_too_small", "0.0000000000000000005", nil, true},
		{"err_negative", "-1", nil, true},
		{"invalid_string", "invalid-currency-string", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := currency.NewParser(currency.ETH)
			got, err := p.Parse(tt.input)
			if err != nil {
				t.Log(err)
			}
			require.Equal(t, tt.wantErr, err != nil)
			if tt.output == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, 0, tt.output.Cmp(got), "want %v, got %v", tt.output, got)
		})
	}
}

func Test_unitParser_Print_ETH(t *testing.T) {
	tests := []struct {
		name   string
		input  *big.Int
		output string
	}{
		{"happy_1_whole_number", big.NewInt(5e18), "5.000000"},
		{"happy_1_decimal", big.NewInt(5e17), "0.500000"},
		{"happy_round_up", big.NewInt(12345678e10), "0.123457"},
		{"happy_round_down", big.NewInt(87654321e10), "0.876543"},
		{"happy_to_zero", big.NewInt(5), "0.000000"},
		{"happy_nil", nil, "0.000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := currency.NewParser(currency.ETH)
			got := p.Print(tt.input)
			assert.Equal(t, tt.output, got)
		})
	}
}

func Test_ParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		output  *big.Int
		wantErr bool
	}{
		{"happy_default_unit", "1", big.NewInt(1e18), false},
		{"happy_eth", "1 ETH", big.NewInt(1e18), false},
		{"happy_gwei", "20 gwei", big.NewInt(20e9), false},
		{"happy_wei", "7 wei", big.NewInt(7), false},

		{"err_unit", "1 btc", nil, true},
		{"err_fractional_wei", "0.5 wei", nil, true},
		{"err_form", "1 eth extra", nil, true},
		{"err_empty", "", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := currency.ParseAmount(tt.input)
			require.Equal(t, tt.wantErr, err != nil, "err: %v", err)
			if tt.output != nil {
				assert.Equal(t, 0, tt.output.Cmp(got), "want %v, got %v", tt.output, got)
			}
		})
	}
}
