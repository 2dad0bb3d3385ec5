// Package receipt turns raw transaction logs emitted by the storage
// processors back into typed per-operation receipts.
package receipt

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"

	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

// GolemBaseStorageEntityTTLExtended is the extend event signature emitted by
// chains that predate the TTL to BTL rename. Its data is not word-aligned:
// the two expiration blocks are packed into a single 512-bit integer.
var GolemBaseStorageEntityTTLExtended = crypto.Keccak256Hash([]byte("GolemBaseStorageEntityTTLExtended(uint256,uint256,uint256)"))

// GolemBaseStorageEntityTTLExtendedLegacy is the earliest extend event
// signature, declared with the packed value pair as a single argument. Same
// data packing as GolemBaseStorageEntityTTLExtended.
var GolemBaseStorageEntityTTLExtendedLegacy = crypto.Keccak256Hash([]byte("GolemBaseStorageEntityTTLExtended(uint256,uint256)"))

// ErrMalformedLog marks a log entry whose topics matched a known event
// signature but whose shape does not fit that event's layout. DecodeLogs
// reports it per entry; the remaining entries still decode.
var ErrMalformedLog = errors.New("malformed log")

// CreateReceipt describes one entity created by a transaction.
type CreateReceipt struct {
	EntityKey       common.Hash `json:"entityKey"`
	ExpirationBlock uint64      `json:"expirationBlock"`
}

// UpdateReceipt describes one entity replaced by a transaction.
type UpdateReceipt struct {
	EntityKey       common.Hash `json:"entityKey"`
	ExpirationBlock uint64      `json:"expirationBlock"`
}

// DeleteReceipt describes one entity removed by a transaction.
type DeleteReceipt struct {
	EntityKey common.Hash `json:"entityKey"`
}

// ExtendReceipt describes one entity whose expiration was pushed out by a
// transaction.
type ExtendReceipt struct {
	EntityKey          common.Hash `json:"entityKey"`
	OldExpirationBlock uint64      `json:"oldExpirationBlock"`
	NewExpirationBlock uint64      `json:"newExpirationBlock"`
}

// Receipts groups the decoded receipts of one transaction by operation kind.
// Within each kind the order of the underlying logs is preserved.
type Receipts struct {
	Creates []CreateReceipt `json:"creates"`
	Updates []UpdateReceipt `json:"updates"`
	Deletes []DeleteReceipt `json:"deletes"`
	Extends []ExtendReceipt `json:"extends"`
}

// decodeRules maps each known GolemBase event signature to its decode rule.
// Built once at startup, read-only afterwards. Arkiv signatures are kept in
// their own table: the chain emits both flavors for every operation, and
// decoding both here would double-count.
var decodeRules = map[common.Hash]func(*Receipts, *types.Log) error{
	storagetx.GolemBaseStorageEntityCreated:     decodeCreated,
	storagetx.GolemBaseStorageEntityUpdated:     decodeUpdated,
	storagetx.GolemBaseStorageEntityDeleted:     decodeDeleted,
	storagetx.GolemBaseStorageEntityBTLExtended: decodeBTLExtended,
	GolemBaseStorageEntityTTLExtended:           decodePackedExtended,
	GolemBaseStorageEntityTTLExtendedLegacy:     decodePackedExtended,
}

// DecodeLogs decodes the logs of a storage transaction receipt into typed
// receipts. Logs whose first topic is not a known GolemBase event signature
// are skipped, so receipts of unrelated contracts (and future event kinds)
// pass through harmlessly. A log that matches a known signature but does not
// fit its layout contributes an ErrMalformedLog-wrapping error; such errors
// are joined and returned together with the receipts decoded from the
// remaining entries.
func DecodeLogs(logs []*types.Log) (*Receipts, error) {
	receipts := &Receipts{}

	var errs []error
	for i, l := range logs {
		if len(l.Topics) == 0 {
			continue
		}
		decode, known := decodeRules[l.Topics[0]]
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

// normalizeLogData compensates for execution environments that strip leading
// zero bytes from log data instead of returning fixed-width 32-byte words.
// The thresholds are a pure byte-length heuristic, applied the same way for
// every event kind, and applying it twice yields the same result as once.
func normalizeLogData(data []byte) []byte {
	switch l := len(data); {
	case 2 < l && l < 34:
		return common.LeftPadBytes(data, 32)
	case 34 < l && l < 66:
		return common.LeftPadBytes(data, 64)
	default:
		return data
	}
}

func entityKeyTopic(l *types.Log) (common.Hash, error) {
	if len(l.Topics) < 2 {
		return common.Hash{}, fmt.Errorf("%w: missing entity key topic", ErrMalformedLog)
	}
	return l.Topics[1], nil
}

// expirationWord reads a single normalized 32-byte word as a block number.
func expirationWord(data []byte) (uint64, error) {
	d := normalizeLogData(data)
	if len(d) != 32 {
		return 0, fmt.Errorf("%w: expected a 32-byte expiration block, got %d bytes", ErrMalformedLog, len(data))
	}
	v := new(uint256.Int).SetBytes(d)
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: expiration block does not fit in uint64", ErrMalformedLog)
	}
	return v.Uint64(), nil
}

func decodeCreated(r *Receipts, l *types.Log) error {
	key, err := entityKeyTopic(l)
	if err != nil {
		return err
	}
	expiresAt, err := expirationWord(l.Data)
	if err != nil {
		return err
	}
	r.Creates = append(r.Creates, CreateReceipt{
		EntityKey:       key,
		ExpirationBlock: expiresAt,
	})
	return nil
}

func decodeUpdated(r *Receipts, l *types.Log) error {
	key, err := entityKeyTopic(l)
	if err != nil {
		return err
	}
	expiresAt, err := expirationWord(l.Data)
	if err != nil {
		return err
	}
	r.Updates = append(r.Updates, UpdateReceipt{
		EntityKey:       key,
		ExpirationBlock: expiresAt,
	})
	return nil
}

func decodeDeleted(r *Receipts, l *types.Log) error {
	key, err := entityKeyTopic(l)
	if err != nil {
		return err
	}
	if len(normalizeLogData(l.Data)) != 0 {
		return fmt.Errorf("%w: delete log carries %d bytes of data", ErrMalformedLog, len(l.Data))
	}
	r.Deletes = append(r.Deletes, DeleteReceipt{EntityKey: key})
	return nil
}

// btlExtendedArguments mirrors the non-indexed arguments of the current
// extend event, so the two expiration blocks come out by name.
var btlExtendedArguments = abi.Arguments{
	{Name: "oldExpirationBlock", Type: mustNewType("uint256")},
	{Name: "newExpirationBlock", Type: mustNewType("uint256")},
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(fmt.Errorf("failed to create abi type %s: %w", t, err))
	}
	return typ
}

func decodeBTLExtended(r *Receipts, l *types.Log) error {
	key, err := entityKeyTopic(l)
	if err != nil {
		return err
	}
	d := normalizeLogData(l.Data)
	if len(d) != 64 {
		return fmt.Errorf("%w: expected two 32-byte expiration blocks, got %d bytes", ErrMalformedLog, len(l.Data))
	}

	values, err := btlExtendedArguments.Unpack(d)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedLog, err)
	}
	oldBlock, okOld := values[0].(*big.Int)
	newBlock, okNew := values[1].(*big.Int)
	if !okOld || !okNew {
		return fmt.Errorf("%w: unexpected abi decoding result", ErrMalformedLog)
	}
	if !oldBlock.IsUint64() || !newBlock.IsUint64() {
		return fmt.Errorf("%w: expiration block does not fit in uint64", ErrMalformedLog)
	}

	r.Extends = append(r.Extends, ExtendReceipt{
		EntityKey:          key,
		OldExpirationBlock: oldBlock.Uint64(),
		NewExpirationBlock: newBlock.Uint64(),
	})
	return nil
}

var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// decodePackedExtended handles the historical extend events, which packed
// both expiration blocks into one 512-bit big-endian integer: the high 256
// bits are the old block, the low 256 bits the new one. The values are not
// individually word-aligned, so this rule shares nothing with the ABI-word
// decoding of the current event.
func decodePackedExtended(r *Receipts, l *types.Log) error {
	key, err := entityKeyTopic(l)
	if err != nil {
		return err
	}
	d := normalizeLogData(l.Data)
	if len(d) != 64 {
		return fmt.Errorf("%w: expected a 64-byte packed expiration pair, got %d bytes", ErrMalformedLog, len(l.Data))
	}

	packed := new(big.Int).SetBytes(d)
	oldBlock := new(big.Int).Rsh(packed, 256)
	newBlock := new(big.Int).And(packed, maxUint256)
	if !oldBlock.IsUint64() || !newBlock.IsUint64() {
		return fmt.Errorf("%w: expiration block does not fit in uint64", ErrMalformedLog)
	}

	r.Extends = append(r.Extends, ExtendReceipt{
		EntityKey:          key,
		OldExpirationBlock: oldBlock.Uint64(),
		NewExpirationBlock: newBlock.Uint64(),
	})
	return nil
}
