package receipt

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"

	"github.com/Golem-Base/golembase-sdk-go/logs"
)

// ArkivCreateReceipt describes one entity created through the Arkiv
// processor. Cost is the wei amount charged for the storage.
type ArkivCreateReceipt struct {
	EntityKey       common.Hash    `json:"entityKey"`
	Owner           common.Address `json:"owner"`
	ExpirationBlock uint64         `json:"expirationBlock"`
	Cost            *uint256.Int   `json:"cost"`
}

// ArkivUpdateReceipt describes one entity replaced through the Arkiv
// processor.
type ArkivUpdateReceipt struct {
	EntityKey          common.Hash    `json:"entityKey"`
	Owner              common.Address `json:"owner"`
	OldExpirationBlock uint64         `json:"oldExpirationBlock"`
	NewExpirationBlock uint64         `json:"newExpirationBlock"`
	Cost               *uint256.Int   `json:"cost"`
}

// ArkivDeleteReceipt describes one entity removed through the Arkiv
// processor.
type ArkivDeleteReceipt struct {
	EntityKey common.Hash    `json:"entityKey"`
	Owner     common.Address `json:"owner"`
}

// ArkivExpireReceipt describes one entity dropped by block housekeeping
// after its expiration block passed.
type ArkivExpireReceipt struct {
	EntityKey common.Hash    `json:"entityKey"`
	Owner     common.Address `json:"owner"`
}

// ArkivExtendReceipt describes one entity whose expiration was pushed out
// through the Arkiv processor.
type ArkivExtendReceipt struct {
	EntityKey          common.Hash    `json:"entityKey"`
	Owner              common.Address `json:"owner"`
	OldExpirationBlock uint64         `json:"oldExpirationBlock"`
	NewExpirationBlock uint64         `json:"newExpirationBlock"`
	Cost               *uint256.Int   `json:"cost"`
}

// ArkivOwnerChangeReceipt describes one entity handed to a new owner.
type ArkivOwnerChangeReceipt struct {
	EntityKey common.Hash    `json:"entityKey"`
	OldOwner  common.Address `json:"oldOwner"`
	NewOwner  common.Address `json:"newOwner"`
}

// ArkivReceipts groups the decoded Arkiv-flavor receipts of one transaction
// by operation kind, preserving log order within each kind.
type ArkivReceipts struct {
	Creates      []ArkivCreateReceipt      `json:"creates"`
	Updates      []ArkivUpdateReceipt      `json:"updates"`
	Deletes      []ArkivDeleteReceipt      `json:"deletes"`
	Expires      []ArkivExpireReceipt      `json:"expires"`
	Extends      []ArkivExtendReceipt      `json:"extends"`
	OwnerChanges []ArkivOwnerChangeReceipt `json:"ownerChanges"`
}

// arkivDecodeRules is the Arkiv counterpart of decodeRules. The chain emits
// one GolemBase log and one Arkiv log for every operation, so the two tables
// must stay separate or a single operation would produce two receipts.
var arkivDecodeRules = map[common.Hash]func(*ArkivReceipts, *types.Log) error{
	logs.ArkivEntityCreated:      decodeArkivCreated,
	logs.ArkivEntityUpdated:      decodeArkivUpdated,
	logs.ArkivEntityDeleted:      decodeArkivDeleted,
	logs.ArkivEntityExpired:      decodeArkivExpired,
	logs.ArkivEntityBTLExtended:  decodeArkivExtended,
	logs.ArkivEntityOwnerChanged: decodeArkivOwnerChanged,
}

// DecodeArkivLogs decodes the Arkiv-flavor logs of a transaction receipt.
// Unknown signatures are skipped and per-entry failures are joined, exactly
// as in DecodeLogs.
func DecodeArkivLogs(txLogs []*types.Log) (*ArkivReceipts, error) {
	receipts := &ArkivReceipts{}

	var errs []error
	for i, l := range txLogs {
		if len(l.Topics) == 0 {
			continue
		}
		decode, known := arkivDecodeRules[l.Topics[0]]
		if !known {
			continue
		}
		err := decode(receipts, l)
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to decode log %d: %w", i, err))
		}
	}

	return receipts, errors.Join(errs...)
}

// entityKeyAndOwnerTopics reads the two indexed arguments every Arkiv entity
// event carries: the entity key and the owner address, left-padded to a
// 32-byte topic.
func entityKeyAndOwnerTopics(l *types.Log) (common.Hash, common.Address, error) {
	if len(l.Topics) < 3 {
		return common.Hash{}, common.Address{}, fmt.Errorf("%w: missing entity key or owner topic", ErrMalformedLog)
	}
	return l.Topics[1], common.BytesToAddress(l.Topics[2].Bytes()), nil
}

func uint64Word(word []byte) (uint64, error) {
	v := new(uint256.Int).SetBytes(word)
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: expiration block does not fit in uint64", ErrMalformedLog)
	}
	return v.Uint64(), nil
}

func decodeArkivCreated(r *ArkivReceipts, l *types.Log) error {
	key, owner, err := entityKeyAndOwnerTopics(l)
	if err != nil {
		return err
	}
	d := normalizeLogData(l.Data)
	if len(d) != 64 {
		return fmt.Errorf("%w: expected expiration block and cost words, got %d bytes", ErrMalformedLog, len(l.Data))
	}
	expiresAt, err := uint64Word(d[:32])
	if err != nil {
		return err
	}
	r.Creates = append(r.Creates, ArkivCreateReceipt{
		EntityKey:       key,
		Owner:           owner,
		ExpirationBlock: expiresAt,
		Cost:            new(uint256.Int).SetBytes(d[32:64]),
	})
	return nil
}

func decodeArkivUpdated(r *ArkivReceipts, l *types.Log) error {
	key, owner, err := entityKeyAndOwnerTopics(l)
	if err != nil {
		return err
	}
	oldBlock, newBlock, cost, err := expirationPairAndCost(l.Data)
	if err != nil {
		return err
	}
	r.Updates = append(r.Updates, ArkivUpdateReceipt{
		EntityKey:          key,
		Owner:              owner,
		OldExpirationBlock: oldBlock,
		NewExpirationBlock: newBlock,
		Cost:               cost,
	})
	return nil
}

func decodeArkivDeleted(r *ArkivReceipts, l *types.Log) error {
	key, owner, err := entityKeyAndOwnerTopics(l)
	if err != nil {
		return err
	}
	if len(normalizeLogData(l.Data)) != 0 {
		return fmt.Errorf("%w: delete log carries %d bytes of data", ErrMalformedLog, len(l.Data))
	}
	r.Deletes = append(r.Deletes, ArkivDeleteReceipt{EntityKey: key, Owner: owner})
	return nil
}

func decodeArkivExpired(r *ArkivReceipts, l *types.Log) error {
	key, owner, err := entityKeyAndOwnerTopics(l)
	if err != nil {
		return err
	}
	if len(normalizeLogData(l.Data)) != 0 {
		return fmt.Errorf("%w: expire log carries %d bytes of data", ErrMalformedLog, len(l.Data))
	}
	r.Expires = append(r.Expires, ArkivExpireReceipt{EntityKey: key, Owner: owner})
	return nil
}

func decodeArkivExtended(r *ArkivReceipts, l *types.Log) error {
	key, owner, err := entityKeyAndOwnerTopics(l)
	if err != nil {
		return err
	}
	oldBlock, newBlock, cost, err := expirationPairAndCost(l.Data)
	if err != nil {
		return err
	}
	r.Extends = append(r.Extends, ArkivExtendReceipt{
		EntityKey:          key,
		Owner:              owner,
		OldExpirationBlock: oldBlock,
		NewExpirationBlock: newBlock,
		Cost:               cost,
	})
	return nil
}

func decodeArkivOwnerChanged(r *ArkivReceipts, l *types.Log) error {
	if len(l.Topics) < 4 {
		return fmt.Errorf("%w: missing entity key or owner topics", ErrMalformedLog)
	}
	if len(normalizeLogData(l.Data)) != 0 {
		return fmt.Errorf("%w: owner change log carries %d bytes of data", ErrMalformedLog, len(l.Data))
	}
	r.OwnerChanges = append(r.OwnerChanges, ArkivOwnerChangeReceipt{
		EntityKey: l.Topics[1],
		OldOwner:  common.BytesToAddress(l.Topics[2].Bytes()),
		NewOwner:  common.BytesToAddress(l.Topics[3].Bytes()),
	})
	return nil
}

// expirationPairAndCost reads the common three-word layout of the update and
// extend events: old expiration block, new expiration block, cost.
func expirationPairAndCost(data []byte) (uint64, uint64, *uint256.Int, error) {
	d := normalizeLogData(data)
	if len(d) != 96 {
		return 0, 0, nil, fmt.Errorf("%w: expected expiration pair and cost words, got %d bytes", ErrMalformedLog, len(data))
	}
	oldBlock, err := uint64Word(d[:32])
	if err != nil {
		return 0, 0, nil, err
	}
	newBlock, err := uint64Word(d[32:64])
	if err != nil {
		return 0, 0, nil, err
	}
	return oldBlock, newBlock, new(uint256.Int).SetBytes(d[64:96]), nil
}
