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

package artifact

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// ConstructorArgs converts the arguments to the go types required by the
// constructor parameters of the contract.
//
// Addresses can be given as common.Address or hex strings. Integers can be
// given as any go integer type, *big.Int, decimal strings or durations (in
// whole seconds).
func (a *Artifact) ConstructorArgs(args ...interface{}) ([]interface{}, error) {
	converted, err := ConvertArgs(a.abi.Constructor.Inputs, args)
	return converted, errors.WithMessagef(err, "constructor of %s", a.name)
}

// PackConstructor returns the ABI encoding of the constructor arguments, as
// appended to the creation code of the contract.
func (a *Artifact) PackConstructor(args ...interface{}) ([]byte, error) {
	converted, err := a.ConstructorArgs(args...)
	if err != nil {
		return nil, err
	}
	packed, err := a.abi.Constructor.Inputs.Pack(converted...)
	return packed, errors.Wrapf(err, "packing constructor arguments of %s", a.name)
}

// ConvertArgs converts each of the args to the go type used by go-ethereum for
// the corresponding parameter.
func ConvertArgs(params abi.Arguments, args []interface{}) ([]interface{}, error) {
	if len(params) != len(args) {
		return nil, errors.Errorf("expected %d arguments, got %d", len(params), len(args))
	}
	converted := make([]interface{}, len(args))
	for i := range params {
		v, err := convertArg(params[i].Type, args[i])
		if err != nil {
			return nil, errors.WithMessagef(err, "argument %d (%s %s)", i, params[i].Type.String(), params[i].Name)
		}
		converted[i] = v
	}
	return converted, nil
}

func convertArg(t abi.Type, arg interface{}) (interface{}, error) {
	switch t.T {
	case abi.AddressTy:
		return toAddress(arg)
	case abi.UintTy, abi.IntTy:
		n, err := toBigInt(arg)
		if err != nil {
			return nil, err
		}
		return fitInteger(t, n)
	case abi.BoolTy:
		b, ok := arg.(bool)
		if !ok {
			return nil, errors.Errorf("expected bool, got %T", arg)
		}
		return b, nil
	case abi.StringTy:
		s, ok := arg.(string)
		if !ok {
			return nil, errors.Errorf("expected string, got %T", arg)
		}
		return s, nil
	default:
		// Leave remaining types to the abi encoder, it reports mismatches.
		return arg, nil
	}
}

func toAddress(arg interface{}) (common.Address, error) {
	switch v := arg.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		if v == nil {
			return common.Address{}, errors.New("nil address")
		}
		return *v, nil
	case string:
		if !common.IsHexAddress(v) {
			return common.Address{}, errors.Errorf("invalid address %q", v)
		}
		return common.HexToAddress(v), nil
	default:
		return common.Address{}, errors.Errorf("expected address, got %T", arg)
	}
}

func toBigInt(arg interface{}) (*big.Int, error) {
	switch v := arg.(type) {
	case *big.Int:
		if v == nil {
			return nil, errors.New("nil integer")
		}
		return new(big.Int).Set(v), nil
	case time.Duration:
		if v%time.Second != 0 {
			return nil, errors.Errorf("duration %v is not a whole number of seconds", v)
		}
		return big.NewInt(int64(v / time.Second)), nil
	case string:
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
		if !ok {
			return nil, errors.Errorf("invalid integer %q", v)
		}
		return n, nil
	}

	rv := reflect.ValueOf(arg)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return new(big.Int).SetUint64(rv.Uint()), nil
	default:
		return nil, errors.Errorf("expected integer, got %T", arg)
	}
}

// fitInteger checks that n is within the range of t and returns it as the go
// type go-ethereum expects: fixed size types for 8 to 64 bits, *big.Int otherwise.
func fitInteger(t abi.Type, n *big.Int) (interface{}, error) {
	if t.T == abi.UintTy {
		if n.Sign() < 0 {
			return nil, errors.Errorf("negative value %v for %s", n, t.String())
		}
		if n.BitLen() > t.Size {
			return nil, errors.Errorf("value %v overflows %s", n, t.String())
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(t.Size-1))
		if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
			return nil, errors.Errorf("value %v overflows %s", n, t.String())
		}
	}

	switch t.Size {
	case 8, 16, 32, 64:
		return sized(t.T == abi.UintTy, t.Size, n), nil
	default:
		return n, nil
	}
}

func sized(unsigned bool, size int, n *big.Int) interface{} {
	if unsigned {
		u := n.Uint64()
		switch size {
		case 8:
			return uint8(u)
		case 16:
			return uint16(u)
		case 32:
			return uint32(u)
		default:
			return u
		}
	}
	i := n.Int64()
	switch size {
	case 8:
		return int8(i)
	case 16:
		return int16(i)
	case 32:
		return int32(i)
	default:
		return i
	}
}

// FormatArgs returns a human readable representation of the arguments for logging.
func FormatArgs(args []interface{}) string {
	parts := make([]string, len(args))
	for i := range args {
		switch v := args[i].(type) {
		case common.Address:
			parts[i] = v.Hex()
		default:
			parts[i] = fmt.Sprint(v)
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
