package abi

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Encoder packs textual argument lists against artifact ABIs
type Encoder struct{}

// NewEncoder creates a new ABI encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// EncodeConstructorArgs packs args against the artifact's constructor inputs
func (e *Encoder) EncodeConstructorArgs(artifact *models.Artifact, args models.ConstructorArgs) ([]byte, error) {
	parsed, err := ParseABI(artifact)
	if err != nil {
		return nil, err
	}

	inputs := parsed.Constructor.Inputs
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("%w: constructor of %s expects %d args, got %d",
			domain.ErrArgumentMismatch, artifact.ContractName, len(inputs), len(args))
	}

	values, err := ConvertArgs(inputs, args)
	if err != nil {
		return nil, fmt.Errorf("constructor of %s: %w", artifact.ContractName, err)
	}

	return inputs.Pack(values...)
}

// EncodeCall packs a method call (selector + args) for the named method.
// Overloads are disambiguated by argument count.
func (e *Encoder) EncodeCall(artifact *models.Artifact, method string, args models.ConstructorArgs) ([]byte, error) {
	parsed, err := ParseABI(artifact)
	if err != nil {
		return nil, err
	}

	m, err := findMethod(parsed, method, len(args))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", artifact.ContractName, err)
	}

	values, err := ConvertArgs(m.Inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", artifact.ContractName, method, err)
	}

	packed, err := m.Inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", m.Sig, err)
	}

	return append(append([]byte{}, m.ID...), packed...), nil
}

// ParseABI parses the JSON ABI carried by an artifact
func ParseABI(artifact *models.Artifact) (*abi.ABI, error) {
	if artifact == nil {
		return nil, fmt.Errorf("nil artifact")
	}
	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI of %s: %w", artifact.ContractName, err)
	}
	return &parsed, nil
}

// findMethod looks up a method by its raw (non-overloaded) name and arity
func findMethod(parsed *abi.ABI, name string, argc int) (*abi.Method, error) {
	var candidates []abi.Method
	for _, m := range parsed.Methods {
		if m.RawName == name {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("method %s not found in ABI", name)
	}

	for i := range candidates {
		if len(candidates[i].Inputs) == argc {
			return &candidates[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s expects %d args, got %d",
		domain.ErrArgumentMismatch, candidates[0].Sig, len(candidates[0].Inputs), argc)
}

// ConvertArgs converts textual values into the Go types go-ethereum packs for each input
func ConvertArgs(inputs abi.Arguments, args models.ConstructorArgs) ([]interface{}, error) {
	if len(inputs) != len(args) {
		return nil, fmt.Errorf("%w: expected %d args, got %d", domain.ErrArgumentMismatch, len(inputs), len(args))
	}

	values := make([]interface{}, len(args))
	for i, input := range inputs {
		v, err := convertValue(input.Type, args[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("arg %s (%s): %w", name, input.Type.String(), err)
		}
		values[i] = v
	}
	return values, nil
}

func convertValue(t abi.Type, raw string) (interface{}, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		return strconv.ParseBool(raw)

	case abi.StringTy:
		return raw, nil

	case abi.BytesTy:
		if raw == "" {
			return []byte{}, nil
		}
		return hexutil.Decode(raw)

	case abi.FixedBytesTy:
		data, err := hexutil.Decode(raw)
		if err != nil {
			return nil, err
		}
		if len(data) > t.Size {
			return nil, fmt.Errorf("value is %d bytes, type holds %d", len(data), t.Size)
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(data))
		return arr.Interface(), nil

	case abi.IntTy, abi.UintTy:
		n, ok := new(big.Int).SetString(raw, 0)
		if !ok {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		if t.T == abi.UintTy && n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %q for unsigned type", raw)
		}
		if !fitsBits(n, t.Size, t.T == abi.IntTy) {
			return nil, fmt.Errorf("value %q overflows %s", raw, t.String())
		}
		// go-ethereum only uses native kinds for 8, 16, 32 and 64 bit widths
		if t.GetType().Kind() == reflect.Ptr {
			return n, nil
		}
		v := reflect.New(t.GetType()).Elem()
		if t.T == abi.UintTy {
			v.SetUint(n.Uint64())
		} else {
			v.SetInt(n.Int64())
		}
		return v.Interface(), nil

	default:
		return nil, fmt.Errorf("unsupported argument type %s", t.String())
	}
}

// fitsBits reports whether n is representable in a (signed) integer of the given width
func fitsBits(n *big.Int, bits int, signed bool) bool {
	if !signed {
		return n.BitLen() <= bits
	}
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if n.Sign() < 0 {
		return n.Cmp(new(big.Int).Neg(limit)) >= 0
	}
	return n.Cmp(limit) < 0
}

var _ usecase.ABIEncoder = (*Encoder)(nil)
