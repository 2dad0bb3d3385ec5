package entity

import (
	"github.com/ethereum/go-ethereum/common"
)

// EntityMetaData describes an entity that is currently active in the storage
// layer, as reported by the read API. The entity key is not part of the
// metadata; it is the handle under which the metadata was looked up.
//
// ExpiresAtBlock is an absolute block number computed by the chain from the
// BTL supplied at create/update time.
type EntityMetaData struct {
	ExpiresAtBlock      uint64              `json:"expiresAtBlock"`
	StringAnnotations   []StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations  []NumericAnnotation `json:"numericAnnotations"`
	Owner               common.Address      `json:"owner"`
	CreatedAtBlock      uint64              `json:"createdAtBlock"`
	LastModifiedAtBlock uint64              `json:"lastModifiedAtBlock"`
	TransactionIndex    uint64              `json:"transactionIndex"`
	OperationIndex      uint64              `json:"operationIndex"`
}

// StringAnnotation is a searchable key/value pair with a string value.
// Field order is part of the wire contract: an annotation is RLP-encoded
// as the two-element list [key, value].
type StringAnnotation struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// NumericAnnotation is a searchable key/value pair with an unsigned integer
// value. The value is RLP-encoded with the minimal-integer convention
// (big-endian, no leading zero bytes, zero encodes to the empty string).
type NumericAnnotation struct {
	Key   string `json:"key"`
	Value uint64 `json:"value"`
}
