package storagetx

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Golem-Base/golembase-sdk-go/compression"
	"github.com/Golem-Base/golembase-sdk-go/entity"
)

// DefaultContentType is assumed for entities created without an explicit
// content type.
const DefaultContentType = "application/octet-stream"

// maxCompressedSize caps decompression of a packed Arkiv transaction.
const maxCompressedSize = 1024 * 1024 * 20 // 20MB

// ArkivTransaction is the newer wire format for storage batches, submitted
// brotli-compressed to the Arkiv processor address. Compared to
// StorageTransaction it carries a content type per create/update and supports
// owner changes. The two formats are accepted by different processor
// addresses and are never mixed in one transaction.
type ArkivTransaction struct {
	Create      []ArkivCreate      `json:"create"`
	Update      []ArkivUpdate      `json:"update"`
	Delete      []common.Hash      `json:"delete"`
	Extend      []ExtendBTL        `json:"extend"`
	ChangeOwner []ArkivChangeOwner `json:"changeOwner"`
}

type ArkivCreate struct {
	BTL                uint64                     `json:"btl"`
	ContentType        string                     `json:"contentType"`
	Payload            []byte                     `json:"payload"`
	StringAnnotations  []entity.StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []entity.NumericAnnotation `json:"numericAnnotations"`
}

type ArkivUpdate struct {
	EntityKey          common.Hash                `json:"entityKey"`
	ContentType        string                     `json:"contentType"`
	BTL                uint64                     `json:"btl"`
	Payload            []byte                     `json:"payload"`
	StringAnnotations  []entity.StringAnnotation  `json:"stringAnnotations"`
	NumericAnnotations []entity.NumericAnnotation `json:"numericAnnotations"`
}

type ArkivChangeOwner struct {
	EntityKey common.Hash    `json:"entityKey"`
	NewOwner  common.Address `json:"newOwner"`
}

// Validate checks the batch against the rules the Arkiv processor enforces
// on-chain. The error messages match the processor's, so a rejection seen
// locally reads the same as one coming back from the node.
func (tx *ArkivTransaction) Validate() error {
	for i, create := range tx.Create {
		if create.BTL == 0 {
			return fmt.Errorf("create BTL is 0")
		}
		if create.ContentType == "" {
			return fmt.Errorf("create[%d] contentType is empty", i)
		}
		if len(create.ContentType) > 128 {
			return fmt.Errorf("create[%d] contentType is too long", i)
		}
		err := validateAnnotations(fmt.Sprintf("create[%d]", i), create.StringAnnotations, create.NumericAnnotations)
		if err != nil {
			return err
		}
	}

	for i, update := range tx.Update {
		if update.BTL == 0 {
			return fmt.Errorf("update[%d] BTL is 0", i)
		}
		if update.ContentType == "" {
			return fmt.Errorf("update[%d] contentType is empty", i)
		}
		if len(update.ContentType) > 128 {
			return fmt.Errorf("update[%d] contentType is too long", i)
		}
		err := validateAnnotations(fmt.Sprintf("update[%d]", i), update.StringAnnotations, update.NumericAnnotations)
		if err != nil {
			return err
		}
	}

	for i, extend := range tx.Extend {
		if extend.NumberOfBlocks == 0 {
			return fmt.Errorf("extend[%d] number of blocks is 0", i)
		}
	}

	return nil
}

func validateAnnotations(op string, strs []entity.StringAnnotation, nums []entity.NumericAnnotation) error {
	seenStringAnnotations := make(map[string]bool)
	seenNumericAnnotations := make(map[string]bool)

	for _, annotation := range strs {
		if !entity.AnnotationIdentRegexCompiled.MatchString(annotation.Key) {
			return fmt.Errorf("invalid annotation identifier (must match `%s`): %s",
				entity.AnnotationIdentRegexCompiled.String(),
				annotation.Key,
			)
		}
		if seenStringAnnotations[annotation.Key] {
			return fmt.Errorf("%s string annotation key %s is duplicated", op, annotation.Key)
		}
		seenStringAnnotations[annotation.Key] = true
	}
	for _, annotation := range nums {
		if !entity.AnnotationIdentRegexCompiled.MatchString(annotation.Key) {
			return fmt.Errorf("invalid annotation identifier (must match `%s`): %s",
				entity.AnnotationIdentRegexCompiled.String(),
				annotation.Key,
			)
		}
		if seenNumericAnnotations[annotation.Key] {
			return fmt.Errorf("%s numeric annotation key %s is duplicated", op, annotation.Key)
		}
		seenNumericAnnotations[annotation.Key] = true
	}

	return nil
}

// Pack produces the call data for the Arkiv processor: the RLP encoding of
// the batch, brotli-compressed.
func (tx *ArkivTransaction) Pack() ([]byte, error) {
	d, err := rlp.EncodeToBytes(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to encode arkiv transaction: %w", err)
	}

	compressed, err := compression.BrotliCompress(d)
	if err != nil {
		return nil, fmt.Errorf("failed to compress arkiv transaction: %w", err)
	}

	return compressed, nil
}

// UnpackArkivTransaction decompresses and decodes a packed Arkiv transaction.
// Decompression is capped at maxCompressedSize.
func UnpackArkivTransaction(compressed []byte) (*ArkivTransaction, error) {
	reader := brotli.NewReader(bytes.NewReader(compressed))
	lr := io.LimitReader(reader, maxCompressedSize)

	d, err := io.ReadAll(lr)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed storage transaction: %w", err)
	}

	tx := &ArkivTransaction{}
	err = rlp.DecodeBytes(d, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to decode storage transaction: %w", err)
	}

	return tx, nil
}
