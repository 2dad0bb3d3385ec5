package storagetx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Golem-Base/golembase-sdk-go/entity"
)

// GolemBaseStorageEntityCreated is the event signature for entity creation logs.
var GolemBaseStorageEntityCreated = crypto.Keccak256Hash([]byte("GolemBaseStorageEntityCreated(uint256,uint256)"))

// GolemBaseStorageEntityDeleted is the event signature for entity deletion logs.
var GolemBaseStorageEntityDeleted = crypto.Keccak256Hash([]byte("GolemBaseStorageEntityDeleted(uint256)"))

// GolemBaseStorageEntityUpdated is the event signature for entity update logs.
var GolemBaseStorageEntityUpdated = crypto.Keccak256Hash([]byte("GolemBaseStorageEntityUpdated(uint256,uint256)"))

// GolemBaseStorageEntityBTLExtended is the event signature for extending BTL of an entity.
var GolemBaseStorageEntityBTLExtended = crypto.Keccak256Hash([]byte("GolemBaseStorageEntityBTLExtended(uint256,uint256,uint256)"))

// StorageTransaction is a batch of operations against the storage layer,
// submitted as the call data of a transaction to the GolemBase storage
// processor address. The payload is the RLP encoding of this struct: a
// four-element list [creates, updates, deletes, extensions] whose slots are
// always present, empty or not.
//
// Semantics of the transaction operations are as follows:
//   - Create: adds new entities to the storage layer. Each entity has a BTL (number of blocks), a payload and a list of annotations. The key of the entity is assigned by the chain, derived from the payload content, the transaction hash and the index of the create operation in the transaction.
//   - Update: replaces existing entities. Each entity has a key, a BTL, a payload and a list of annotations. Annotations and payload are not merged with the previous version.
//   - Delete: removes entities from the storage layer.
//   - Extend: adds a number of blocks to the expiry of existing entities.
//
// The transaction is atomic, meaning that all operations are applied or none are.
//
// Annotations are key-value pairs where the key is a string and the value is
// either a string or a number. The key-value pairs are used to build indexes
// and to query the storage layer. The same key can have both a string and a
// numeric annotation, but not multiple values of the same type.
type StorageTransaction struct {
	Create []Create      `json:"create"`
	Update []Update      `json:"update"`
	Delete []common.Hash `json:"delete"`
	Extend []ExtendBTL   `json:"extend"`
}

type Create struct {
	BTL                uint64                     `json:"btl"`
	Payload            []byte                     `json:"payload"`
	StringAnnotations  []entity.StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []entity.NumericAnnotation `json:"numericAnnotations"`
}

type Update struct {
	EntityKey          common.Hash                `json:"entityKey"`
	BTL                uint64                     `json:"btl"`
	Payload            []byte                     `json:"payload"`
	StringAnnotations  []entity.StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []entity.NumericAnnotation `json:"numericAnnotations"`
}

type ExtendBTL struct {
	EntityKey      common.Hash `json:"entityKey"`
	NumberOfBlocks uint64      `json:"numberOfBlocks"`
}

// Encode produces the transaction call data for the GolemBase storage
// processor. Encoding is total for any batch, including entirely empty ones
// and operations with empty payloads or zero integers.
func (tx *StorageTransaction) Encode() ([]byte, error) {
	d, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage transaction: %w", err)
	}
	return d, nil
}

// DecodeTransaction is the inverse of Encode. The chain performs this decode
// on submitted call data; the client side uses it for round-trip checks and
// for inspecting pending transactions.
func DecodeTransaction(d []byte) (*StorageTransaction, error) {
	tx := &StorageTransaction{}
	if err := rlp.DecodeBytes(d, tx); err != nil {
		return nil, fmt.Errorf("failed to decode storage transaction: %w", err)
	}
	return tx, nil
}

// ConvertToArkiv rewrites the batch in the Arkiv transaction format, filling
// in the default content type.
func (tx *StorageTransaction) ConvertToArkiv() *ArkivTransaction {
	atx := ArkivTransaction{}
	for _, create := range tx.Create {
		atx.Create = append(atx.Create, ArkivCreate{
			BTL:                create.BTL,
			ContentType:        DefaultContentType,
			Payload:            create.Payload,
			StringAnnotations:  create.StringAnnotations,
			NumericAnnotations: create.NumericAnnotations,
		})
	}
	for _, update := range tx.Update {
		atx.Update = append(atx.Update, ArkivUpdate{
			EntityKey:          update.EntityKey,
			BTL:                update.BTL,
			ContentType:        DefaultContentType,
			Payload:            update.Payload,
			StringAnnotations:  update.StringAnnotations,
			NumericAnnotations: update.NumericAnnotations,
		})
	}
	atx.Delete = tx.Delete
	atx.Extend = tx.Extend

	return &atx
}

// Validate checks the batch against the rules the storage processor enforces
// on-chain: non-zero BTL and block counts, well-formed annotation keys, no
// duplicate annotation keys of the same type. Encoding does not call this;
// a batch that fails validation still encodes, and fails on-chain instead.
func (tx *StorageTransaction) Validate() error {
	return tx.ConvertToArkiv().Validate()
}
