package storagetx_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Golem-Base/golembase-sdk-go/entity"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

func TestStorageTransactionMarshalling(t *testing.T) {
	t.Run("FullyPopulatedTransaction", func(t *testing.T) {
		// Create a sample transaction with all fields populated
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "type", Value: "test"},
						{Key: "name", Value: "example"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "version", Value: 1},
						{Key: "size", Value: 1024},
					},
				},
			},
			Update: []storagetx.Update{
				{
					EntityKey: common.HexToHash("0x1234567890"),
					BTL:       200,
					Payload:   []byte("updated payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "status", Value: "updated"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "timestamp", Value: 1678901234},
					},
				},
			},
			Delete: []common.Hash{
				common.HexToHash("0xdeadbeef"),
				common.HexToHash("0xbeefdead"),
			},
		}

		// Test marshalling
		encoded, err := tx.Encode()
		require.NoError(t, err)
		require.NotEmpty(t, encoded)

		// Test unmarshalling
		decoded, err := storagetx.DecodeTransaction(encoded)
		require.NoError(t, err)

		// Verify all fields match
		assert.Equal(t, tx.Create[0].BTL, decoded.Create[0].BTL)
		assert.Equal(t, tx.Create[0].Payload, decoded.Create[0].Payload)
		assert.Equal(t, tx.Create[0].StringAnnotations, decoded.Create[0].StringAnnotations)
		assert.Equal(t, tx.Create[0].NumericAnnotations, decoded.Create[0].NumericAnnotations)

		assert.Equal(t, tx.Update[0].EntityKey, decoded.Update[0].EntityKey)
		assert.Equal(t, tx.Update[0].BTL, decoded.Update[0].BTL)
		assert.Equal(t, tx.Update[0].Payload, decoded.Update[0].Payload)
		assert.Equal(t, tx.Update[0].StringAnnotations, decoded.Update[0].StringAnnotations)
		assert.Equal(t, tx.Update[0].NumericAnnotations, decoded.Update[0].NumericAnnotations)

		assert.Equal(t, tx.Delete, decoded.Delete)
	})

	t.Run("EmptyTransaction", func(t *testing.T) {
		// An empty batch still encodes as the four operation lists.
		emptyTx := &storagetx.StorageTransaction{}
		encoded, err := emptyTx.Encode()
		require.NoError(t, err)
		assert.Equal(t, common.Hex2Bytes("c4c0c0c0c0"), encoded)

		decodedEmpty, err := storagetx.DecodeTransaction(encoded)
		require.NoError(t, err)

		assert.Empty(t, decodedEmpty.Create)
		assert.Empty(t, decodedEmpty.Update)
		assert.Empty(t, decodedEmpty.Delete)
		assert.Empty(t, decodedEmpty.Extend)
	})

	t.Run("TransactionWithExtendBTL", func(t *testing.T) {
		// Test transaction with ExtendBTL operations
		tx := &storagetx.StorageTransaction{
			Extend: []storagetx.ExtendBTL{
				{
					EntityKey:      common.HexToHash("0x1234567890abcdef"),
					NumberOfBlocks: 500,
				},
				{
					EntityKey:      common.HexToHash("0xabcdef1234567890"),
					NumberOfBlocks: 1000,
				},
			},
		}

		// Test marshalling
		encoded, err := tx.Encode()
		require.NoError(t, err)
		require.NotEmpty(t, encoded)

		// Test unmarshalling
		decoded, err := storagetx.DecodeTransaction(encoded)
		require.NoError(t, err)

		// Verify ExtendBTL fields match
		require.Len(t, decoded.Extend, 2)
		assert.Equal(t, tx.Extend[0].EntityKey, decoded.Extend[0].EntityKey)
		assert.Equal(t, tx.Extend[0].NumberOfBlocks, decoded.Extend[0].NumberOfBlocks)
		assert.Equal(t, tx.Extend[1].EntityKey, decoded.Extend[1].EntityKey)
		assert.Equal(t, tx.Extend[1].NumberOfBlocks, decoded.Extend[1].NumberOfBlocks)
	})

	t.Run("WireFormat", func(t *testing.T) {
		// The payload is a four-element RLP list with integers in minimal
		// big-endian form, so a one-block BTL occupies a single byte.
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     1,
					Payload: []byte{0xAB},
				},
			},
		}

		encoded, err := tx.Encode()
		require.NoError(t, err)
		assert.Equal(t, common.Hex2Bytes("cac6c50181abc0c0c0c0c0"), encoded)

		content, rest, err := rlp.SplitList(encoded)
		require.NoError(t, err)
		assert.Empty(t, rest)

		count, err := rlp.CountValues(content)
		require.NoError(t, err)
		assert.Equal(t, 4, count)
	})

	t.Run("GarbageInput", func(t *testing.T) {
		_, err := storagetx.DecodeTransaction([]byte{0x01, 0x02, 0x03})
		assert.Error(t, err)
	})
}

func TestConvertToArkiv(t *testing.T) {
	tx := &storagetx.StorageTransaction{
		Create: []storagetx.Create{
			{
				BTL:     42,
				Payload: []byte("payload"),
				StringAnnotations: []entity.StringAnnotation{
					{Key: "type", Value: "test"},
				},
			},
		},
		Update: []storagetx.Update{
			{
				EntityKey: common.HexToHash("0x01"),
				BTL:       7,
				Payload:   []byte("updated"),
			},
		},
		Delete: []common.Hash{common.HexToHash("0x02")},
		Extend: []storagetx.ExtendBTL{
			{EntityKey: common.HexToHash("0x03"), NumberOfBlocks: 5},
		},
	}

	atx := tx.ConvertToArkiv()

	require.Len(t, atx.Create, 1)
	assert.Equal(t, storagetx.DefaultContentType, atx.Create[0].ContentType)
	assert.Equal(t, tx.Create[0].BTL, atx.Create[0].BTL)
	assert.Equal(t, tx.Create[0].Payload, atx.Create[0].Payload)
	assert.Equal(t, tx.Create[0].StringAnnotations, atx.Create[0].StringAnnotations)

	require.Len(t, atx.Update, 1)
	assert.Equal(t, storagetx.DefaultContentType, atx.Update[0].ContentType)
	assert.Equal(t, tx.Update[0].EntityKey, atx.Update[0].EntityKey)
	assert.Equal(t, tx.Update[0].BTL, atx.Update[0].BTL)

	assert.Equal(t, tx.Delete, atx.Delete)
	assert.Equal(t, tx.Extend, atx.Extend)
	assert.Empty(t, atx.ChangeOwner)
}

func TestStorageTransactionValidation(t *testing.T) {
	t.Run("ValidTransaction", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "type", Value: "test"},
						{Key: "name_with_underscore", Value: "example"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "version", Value: 1},
						{Key: "size_bytes", Value: 1024},
					},
				},
			},
			Update: []storagetx.Update{
				{
					EntityKey: common.HexToHash("0x1234567890"),
					BTL:       200,
					Payload:   []byte("updated payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "status", Value: "updated"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "timestamp", Value: 1678901234},
					},
				},
			},
			Extend: []storagetx.ExtendBTL{
				{
					EntityKey:      common.HexToHash("0xabcdef"),
					NumberOfBlocks: 500,
				},
			},
		}

		err := tx.Validate()
		assert.NoError(t, err)
	})

	t.Run("CreateWithZeroBTL", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     0, // Invalid: BTL cannot be 0
					Payload: []byte("test payload"),
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create BTL is 0")
	})

	t.Run("UpdateWithZeroBTL", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Update: []storagetx.Update{
				{
					EntityKey: common.HexToHash("0x1234567890"),
					BTL:       0, // Invalid: BTL cannot be 0
					Payload:   []byte("updated payload"),
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "update[0] BTL is 0")
	})

	t.Run("ExtendWithZeroBlocks", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Extend: []storagetx.ExtendBTL{
				{
					EntityKey:      common.HexToHash("0x1234567890"),
					NumberOfBlocks: 0, // Invalid: NumberOfBlocks cannot be 0
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "extend[0] number of blocks is 0")
	})

	t.Run("InvalidAnnotationKey", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "$invalid", Value: "test"}, // Invalid: starts with $
					},
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid annotation identifier")
	})

	t.Run("DuplicateStringAnnotationKey", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "type", Value: "test1"},
						{Key: "type", Value: "test2"}, // Invalid: duplicate key
					},
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "string annotation key type is duplicated")
	})

	t.Run("DuplicateNumericAnnotationKey", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "version", Value: 1},
						{Key: "version", Value: 2}, // Invalid: duplicate key
					},
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "numeric annotation key version is duplicated")
	})

	t.Run("UpdateWithDuplicateAnnotations", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Update: []storagetx.Update{
				{
					EntityKey: common.HexToHash("0x1234567890"),
					BTL:       200,
					Payload:   []byte("updated payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "status", Value: "active"},
						{Key: "status", Value: "inactive"}, // Invalid: duplicate key
					},
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "update[0] string annotation key status is duplicated")
	})

	t.Run("ValidAnnotationKeys", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "type", Value: "test"},
						{Key: "name_with_underscore", Value: "example"},
						{Key: "αβγ", Value: "unicode"}, // Unicode letters should be valid
						{Key: "_starts_with_underscore", Value: "valid"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "version123", Value: 1},
						{Key: "size_bytes", Value: 1024},
					},
				},
			},
		}

		err := tx.Validate()
		assert.NoError(t, err)
	})

	t.Run("EmptyTransactionIsValid", func(t *testing.T) {
		tx := &storagetx.StorageTransaction{}
		err := tx.Validate()
		assert.NoError(t, err)
	})

	t.Run("SameKeyInBothAnnotationTypes", func(t *testing.T) {
		// A key may carry one string and one numeric value at the same time.
		tx := &storagetx.StorageTransaction{
			Create: []storagetx.Create{
				{
					BTL:     100,
					Payload: []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "version", Value: "v1"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "version", Value: 1},
					},
				},
			},
		}

		err := tx.Validate()
		assert.NoError(t, err)
	})
}
