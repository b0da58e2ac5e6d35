package abi

import (
	"math/big"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const requestABI = `[
	{"type":"constructor","inputs":[
		{"name":"proof","type":"address"},
		{"name":"timeout","type":"uint64"},
		{"name":"salt","type":"bytes32"}
	]},
	{"type":"function","name":"init","stateMutability":"nonpayable","inputs":[
		{"name":"proof","type":"address"}
	],"outputs":[]},
	{"type":"function","name":"init","stateMutability":"nonpayable","inputs":[
		{"name":"proof","type":"address"},
		{"name":"operator","type":"address"},
		{"name":"feeRecipient","type":"address"}
	],"outputs":[]},
	{"type":"function","name":"setLimits","stateMutability":"nonpayable","inputs":[
		{"name":"small","type":"uint8"},
		{"name":"big","type":"uint256"},
		{"name":"enabled","type":"bool"},
		{"name":"tag","type":"bytes4"},
		{"name":"data","type":"bytes"}
	],"outputs":[]}
]`

const (
	proofAddr    = "0x1111111111111111111111111111111111111111"
	operatorAddr = "0x2222222222222222222222222222222222222222"
	feeAddr      = "0x3333333333333333333333333333333333333333"
)

func testArtifact() *models.Artifact {
	return &models.Artifact{
		ContractName: "BrevisRequest",
		SourceName:   "contracts/BrevisRequest.sol",
		ABI:          []byte(requestABI),
	}
}

func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

func TestEncodeConstructorArgs(t *testing.T) {
	enc := NewEncoder()

	t.Run("packs every argument", func(t *testing.T) {
		data, err := enc.EncodeConstructorArgs(testArtifact(), models.ConstructorArgs{
			proofAddr, "600", "0x01",
		})
		require.NoError(t, err)
		require.Len(t, data, 96)

		assert.Equal(t, common.HexToAddress(proofAddr).Bytes(), data[12:32])
		assert.Equal(t, big.NewInt(600), new(big.Int).SetBytes(data[32:64]))
		assert.Equal(t, byte(0x01), data[64])
	})

	t.Run("argument count mismatch", func(t *testing.T) {
		_, err := enc.EncodeConstructorArgs(testArtifact(), models.ConstructorArgs{proofAddr})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArgumentMismatch)
	})

	t.Run("invalid address", func(t *testing.T) {
		_, err := enc.EncodeConstructorArgs(testArtifact(), models.ConstructorArgs{"0xnope", "1", "0x00"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidAddress)
		assert.Contains(t, err.Error(), "arg proof")
	})

	t.Run("no constructor inputs", func(t *testing.T) {
		artifact := &models.Artifact{ContractName: "Empty", ABI: []byte(`[]`)}
		data, err := enc.EncodeConstructorArgs(artifact, nil)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("broken ABI", func(t *testing.T) {
		artifact := &models.Artifact{ContractName: "Broken", ABI: []byte(`{`)}
		_, err := enc.EncodeConstructorArgs(artifact, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse ABI of Broken")
	})
}

func TestEncodeCall(t *testing.T) {
	enc := NewEncoder()

	t.Run("single address overload", func(t *testing.T) {
		data, err := enc.EncodeCall(testArtifact(), "init", models.ConstructorArgs{proofAddr})
		require.NoError(t, err)
		require.Len(t, data, 4+32)
		assert.Equal(t, selector("init(address)"), data[:4])
		assert.Equal(t, common.HexToAddress(proofAddr).Bytes(), data[16:36])
	})

	t.Run("three address overload", func(t *testing.T) {
		data, err := enc.EncodeCall(testArtifact(), "init", models.ConstructorArgs{proofAddr, operatorAddr, feeAddr})
		require.NoError(t, err)
		require.Len(t, data, 4+96)
		assert.Equal(t, selector("init(address,address,address)"), data[:4])
		assert.Equal(t, common.HexToAddress(feeAddr).Bytes(), data[4+64+12:])
	})

	t.Run("no overload with that arity", func(t *testing.T) {
		_, err := enc.EncodeCall(testArtifact(), "init", models.ConstructorArgs{proofAddr, operatorAddr})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrArgumentMismatch)
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := enc.EncodeCall(testArtifact(), "upgradeTo", models.ConstructorArgs{proofAddr})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "method upgradeTo not found")
	})
}

func TestConvertValues(t *testing.T) {
	enc := NewEncoder()

	tests := []struct {
		name    string
		args    models.ConstructorArgs
		wantErr string
	}{
		{
			name: "valid values",
			args: models.ConstructorArgs{"255", "0x10000000000000000", "true", "0xdeadbeef", "0x"},
		},
		{
			name: "empty bytes",
			args: models.ConstructorArgs{"0", "1", "false", "0x00", ""},
		},
		{
			name:    "uint8 overflow",
			args:    models.ConstructorArgs{"256", "1", "true", "0x00", "0x"},
			wantErr: "overflows uint8",
		},
		{
			name:    "negative unsigned",
			args:    models.ConstructorArgs{"1", "-5", "true", "0x00", "0x"},
			wantErr: "negative value",
		},
		{
			name:    "not an integer",
			args:    models.ConstructorArgs{"ten", "1", "true", "0x00", "0x"},
			wantErr: "invalid integer",
		},
		{
			name:    "bad bool",
			args:    models.ConstructorArgs{"1", "1", "maybe", "0x00", "0x"},
			wantErr: "arg enabled",
		},
		{
			name:    "fixed bytes too long",
			args:    models.ConstructorArgs{"1", "1", "true", "0x0102030405", "0x"},
			wantErr: "type holds 4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := enc.EncodeCall(testArtifact(), "setLimits", tt.args)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, selector("setLimits(uint8,uint256,bool,bytes4,bytes)"), data[:4])
		})
	}
}

func TestConvertArgsBigInt(t *testing.T) {
	parsed, err := ParseABI(testArtifact())
	require.NoError(t, err)

	m, err := findMethod(parsed, "setLimits", 5)
	require.NoError(t, err)

	values, err := ConvertArgs(m.Inputs, models.ConstructorArgs{"7", "1000000000000000000000", "true", "0xaabbccdd", "0x0102"})
	require.NoError(t, err)

	assert.Equal(t, uint8(7), values[0])
	want, _ := new(big.Int).SetString("1000000000000000000000", 10)
	assert.Equal(t, want, values[1])
	assert.Equal(t, true, values[2])
	assert.Equal(t, [4]byte{0xaa, 0xbb, 0xcc, 0xdd}, values[3])
	assert.Equal(t, []byte{0x01, 0x02}, values[4])
}

func TestEncodeNonNativeIntWidths(t *testing.T) {
	enc := NewEncoder()
	artifact := &models.Artifact{
		ContractName: "FeeTier",
		ABI: []byte(`[{"type":"constructor","inputs":[
			{"name":"fee","type":"uint24"},
			{"name":"tick","type":"int24"}
		]}]`),
	}

	tests := []struct {
		name     string
		args     models.ConstructorArgs
		wantFee  int64
		wantTick int64
		wantErr  string
	}{
		{name: "in range", args: models.ConstructorArgs{"3000", "-887272"}, wantFee: 3000, wantTick: -887272},
		{name: "uint24 max", args: models.ConstructorArgs{"16777215", "0"}, wantFee: 16777215},
		{name: "int24 bounds", args: models.ConstructorArgs{"0", "8388607"}, wantTick: 8388607},
		{name: "int24 min", args: models.ConstructorArgs{"0", "-8388608"}, wantTick: -8388608},
		{name: "uint24 overflow", args: models.ConstructorArgs{"16777216", "0"}, wantErr: "overflows uint24"},
		{name: "int24 overflow", args: models.ConstructorArgs{"0", "8388608"}, wantErr: "overflows int24"},
		{name: "int24 underflow", args: models.ConstructorArgs{"0", "-8388609"}, wantErr: "overflows int24"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				data []byte
				err  error
			)
			require.NotPanics(t, func() {
				data, err = enc.EncodeConstructorArgs(artifact, tt.args)
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, data, 64)

			assert.Equal(t, tt.wantFee, new(big.Int).SetBytes(data[:32]).Int64())

			tick := new(big.Int).SetBytes(data[32:64])
			if tt.wantTick < 0 {
				tick.Sub(tick, new(big.Int).Lsh(big.NewInt(1), 256))
			}
			assert.Equal(t, tt.wantTick, tick.Int64())
		})
	}
}
