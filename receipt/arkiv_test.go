package receipt_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Golem-Base/golembase-sdk-go/logs"
	"github.com/Golem-Base/golembase-sdk-go/receipt"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

func ownerTopic(a common.Address) common.Hash {
	h := common.Hash{}
	copy(h[12:], a[:])
	return h
}

func arkivLog(sig, key common.Hash, owner common.Address, data []byte) *types.Log {
	return &types.Log{
		Topics: []common.Hash{sig, key, ownerTopic(owner)},
		Data:   data,
	}
}

func TestDecodeArkivLogs(t *testing.T) {
	key := common.HexToHash("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	owner := common.HexToAddress("0x00000000000000000000000000000000deadbeef")

	t.Run("Created", func(t *testing.T) {
		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			arkivLog(logs.ArkivEntityCreated, key, owner, words(100, 42)),
		})
		require.NoError(t, err)

		require.Len(t, receipts.Creates, 1)
		assert.Equal(t, key, receipts.Creates[0].EntityKey)
		assert.Equal(t, owner, receipts.Creates[0].Owner)
		assert.Equal(t, uint64(100), receipts.Creates[0].ExpirationBlock)
		assert.Equal(t, uint256.NewInt(42), receipts.Creates[0].Cost)
	})

	t.Run("UpdatedAndExtended", func(t *testing.T) {
		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			arkivLog(logs.ArkivEntityUpdated, key, owner, words(100, 200, 7)),
			arkivLog(logs.ArkivEntityBTLExtended, key, owner, words(200, 500, 9)),
		})
		require.NoError(t, err)

		require.Len(t, receipts.Updates, 1)
		assert.Equal(t, uint64(100), receipts.Updates[0].OldExpirationBlock)
		assert.Equal(t, uint64(200), receipts.Updates[0].NewExpirationBlock)
		assert.Equal(t, uint256.NewInt(7), receipts.Updates[0].Cost)

		require.Len(t, receipts.Extends, 1)
		assert.Equal(t, uint64(200), receipts.Extends[0].OldExpirationBlock)
		assert.Equal(t, uint64(500), receipts.Extends[0].NewExpirationBlock)
		assert.Equal(t, uint256.NewInt(9), receipts.Extends[0].Cost)
	})

	t.Run("DeletedAndExpired", func(t *testing.T) {
		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			arkivLog(logs.ArkivEntityDeleted, key, owner, []byte{}),
			arkivLog(logs.ArkivEntityExpired, key, owner, []byte{}),
		})
		require.NoError(t, err)

		require.Len(t, receipts.Deletes, 1)
		assert.Equal(t, key, receipts.Deletes[0].EntityKey)
		assert.Equal(t, owner, receipts.Deletes[0].Owner)

		require.Len(t, receipts.Expires, 1)
		assert.Equal(t, key, receipts.Expires[0].EntityKey)
		assert.Equal(t, owner, receipts.Expires[0].Owner)
	})

	t.Run("OwnerChanged", func(t *testing.T) {
		newOwner := common.HexToAddress("0x000000000000000000000000000000000000beef")

		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			{
				Topics: []common.Hash{
					logs.ArkivEntityOwnerChanged,
					key,
					ownerTopic(owner),
					ownerTopic(newOwner),
				},
				Data: []byte{},
			},
		})
		require.NoError(t, err)

		require.Len(t, receipts.OwnerChanges, 1)
		assert.Equal(t, key, receipts.OwnerChanges[0].EntityKey)
		assert.Equal(t, owner, receipts.OwnerChanges[0].OldOwner)
		assert.Equal(t, newOwner, receipts.OwnerChanges[0].NewOwner)
	})

	t.Run("CostBeyondUint64", func(t *testing.T) {
		// Costs are wei amounts and may exceed a machine word; only the
		// expiration blocks are bounded.
		data := words(100, 0)
		data[33] = 0x01 // cost = 2^240

		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			arkivLog(logs.ArkivEntityCreated, key, owner, data),
		})
		require.NoError(t, err)

		require.Len(t, receipts.Creates, 1)
		expectedCost := new(uint256.Int).Lsh(uint256.NewInt(1), 240)
		assert.Equal(t, expectedCost, receipts.Creates[0].Cost)
	})

	t.Run("MissingCostWordIsMalformed", func(t *testing.T) {
		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			arkivLog(logs.ArkivEntityUpdated, key, owner, words(100, 200)),
			arkivLog(logs.ArkivEntityDeleted, key, owner, []byte{}),
		})

		assert.ErrorIs(t, err, receipt.ErrMalformedLog)
		require.Len(t, receipts.Deletes, 1)
		assert.Empty(t, receipts.Updates)
	})

	t.Run("MissingOwnerTopic", func(t *testing.T) {
		receipts, err := receipt.DecodeArkivLogs([]*types.Log{
			{
				Topics: []common.Hash{logs.ArkivEntityCreated, key},
				Data:   words(100, 42),
			},
		})

		assert.ErrorIs(t, err, receipt.ErrMalformedLog)
		assert.Empty(t, receipts.Creates)
	})

	t.Run("FlavorsStaySeparate", func(t *testing.T) {
		// The chain logs every operation through both processors. Decoding
		// a full receipt with both decoders must yield one receipt per
		// flavor, not two.
		batch := []*types.Log{
			storageLog(storagetx.GolemBaseStorageEntityCreated, key, words(100)),
			arkivLog(logs.ArkivEntityCreated, key, owner, words(100, 42)),
		}

		golemReceipts, err := receipt.DecodeLogs(batch)
		require.NoError(t, err)
		assert.Len(t, golemReceipts.Creates, 1)

		arkivReceipts, err := receipt.DecodeArkivLogs(batch)
		require.NoError(t, err)
		assert.Len(t, arkivReceipts.Creates, 1)
	})
}
