package storagetx_test

import (
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Golem-Base/golembase-sdk-go/entity"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

func TestArkivTransactionPackUnpack(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{
			Create: []storagetx.ArkivCreate{
				{
					BTL:         100,
					ContentType: "text/plain",
					Payload:     []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "type", Value: "test"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "version", Value: 1},
					},
				},
			},
			Update: []storagetx.ArkivUpdate{
				{
					EntityKey:   common.HexToHash("0x1234567890"),
					ContentType: "application/json",
					BTL:         200,
					Payload:     []byte(`{"updated":true}`),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "status", Value: "updated"},
					},
					NumericAnnotations: []entity.NumericAnnotation{
						{Key: "timestamp", Value: 1678901234},
					},
				},
			},
			Delete: []common.Hash{common.HexToHash("0xdeadbeef")},
			Extend: []storagetx.ExtendBTL{
				{EntityKey: common.HexToHash("0xabcdef"), NumberOfBlocks: 500},
			},
			ChangeOwner: []storagetx.ArkivChangeOwner{
				{
					EntityKey: common.HexToHash("0x42"),
					NewOwner:  common.HexToAddress("0x00000000000000000000000000000000deadbeef"),
				},
			},
		}

		packed, err := tx.Pack()
		require.NoError(t, err)
		require.NotEmpty(t, packed)

		decoded, err := storagetx.UnpackArkivTransaction(packed)
		require.NoError(t, err)

		assert.Equal(t, tx.Create, decoded.Create)
		assert.Equal(t, tx.Update, decoded.Update)
		assert.Equal(t, tx.Delete, decoded.Delete)
		assert.Equal(t, tx.Extend, decoded.Extend)
		assert.Equal(t, tx.ChangeOwner, decoded.ChangeOwner)
	})

	t.Run("EmptyTransaction", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{}

		packed, err := tx.Pack()
		require.NoError(t, err)

		decoded, err := storagetx.UnpackArkivTransaction(packed)
		require.NoError(t, err)

		assert.Empty(t, decoded.Create)
		assert.Empty(t, decoded.Update)
		assert.Empty(t, decoded.Delete)
		assert.Empty(t, decoded.Extend)
		assert.Empty(t, decoded.ChangeOwner)
	})

	t.Run("GarbageInput", func(t *testing.T) {
		_, err := storagetx.UnpackArkivTransaction([]byte("not a brotli stream"))
		assert.Error(t, err)
	})
}

func TestArkivTransactionValidation(t *testing.T) {
	t.Run("ValidTransaction", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{
			Create: []storagetx.ArkivCreate{
				{
					BTL:         100,
					ContentType: "text/plain",
					Payload:     []byte("test payload"),
					StringAnnotations: []entity.StringAnnotation{
						{Key: "type", Value: "test"},
					},
				},
			},
			ChangeOwner: []storagetx.ArkivChangeOwner{
				{
					EntityKey: common.HexToHash("0x42"),
					NewOwner:  common.HexToAddress("0x00000000000000000000000000000000deadbeef"),
				},
			},
		}

		err := tx.Validate()
		assert.NoError(t, err)
	})

	t.Run("CreateWithEmptyContentType", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{
			Create: []storagetx.ArkivCreate{
				{
					BTL:     100,
					Payload: []byte("test payload"),
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create[0] contentType is empty")
	})

	t.Run("CreateWithTooLongContentType", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{
			Create: []storagetx.ArkivCreate{
				{
					BTL:         100,
					ContentType: "text/" + strings.Repeat("x", 124),
					Payload:     []byte("test payload"),
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "create[0] contentType is too long")
	})

	t.Run("UpdateWithEmptyContentType", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{
			Update: []storagetx.ArkivUpdate{
				{
					EntityKey: common.HexToHash("0x1234567890"),
					BTL:       200,
					Payload:   []byte("updated payload"),
				},
			},
		}

		err := tx.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "update[0] contentType is empty")
	})

	t.Run("ContentTypeAtLimit", func(t *testing.T) {
		tx := &storagetx.ArkivTransaction{
			Create: []storagetx.ArkivCreate{
				{
					BTL:         100,
					ContentType: "text/" + strings.Repeat("x", 123),
					Payload:     []byte("test payload"),
				},
			},
		}

		err := tx.Validate()
		assert.NoError(t, err)
	})
}
