package client

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/Golem-Base/golembase-sdk-go/entity"
	"github.com/Golem-Base/golembase-sdk-go/receipt"
	"github.com/Golem-Base/golembase-sdk-go/storagetx"
)

// CreateOp describes one entity to create. Annotations may mix string and
// numeric values; they are split into the typed wire lists when the batch is
// built.
type CreateOp struct {
	BTL         uint64
	Payload     []byte
	Annotations []entity.Annotation
}

// UpdateOp describes one entity to replace. The previous payload and
// annotations are discarded, not merged.
type UpdateOp struct {
	EntityKey   common.Hash
	BTL         uint64
	Payload     []byte
	Annotations []entity.Annotation
}

// BuildStorageTransaction assembles a storage transaction from the given
// operations. It splits mixed annotations into the typed lists but performs no
// further validation; SendStorageTransaction validates before submitting.
func BuildStorageTransaction(
	creates []CreateOp,
	updates []UpdateOp,
	deletes []common.Hash,
	extensions []storagetx.ExtendBTL,
) (*storagetx.StorageTransaction, error) {
	tx := &storagetx.StorageTransaction{
		Delete: deletes,
		Extend: extensions,
	}

	for i, op := range creates {
		strs, nums, err := entity.SplitAnnotations(op.Annotations)
		if err != nil {
			return nil, fmt.Errorf("create[%d]: %w", i, err)
		}
		tx.Create = append(tx.Create, storagetx.Create{
			BTL:                op.BTL,
			Payload:            op.Payload,
			StringAnnotations:  strs,
			NumericAnnotations: nums,
		})
	}

	for i, op := range updates {
		strs, nums, err := entity.SplitAnnotations(op.Annotations)
		if err != nil {
			return nil, fmt.Errorf("update[%d]: %w", i, err)
		}
		tx.Update = append(tx.Update, storagetx.Update{
			EntityKey:          op.EntityKey,
			BTL:                op.BTL,
			Payload:            op.Payload,
			StringAnnotations:  strs,
			NumericAnnotations: nums,
		})
	}

	return tx, nil
}

// SendStorageTransaction validates the batch, submits it to the GolemBase
// storage processor and decodes the emitted logs into receipts. The returned
// receipts preserve the node's emission order within each operation kind.
func (c *Client) SendStorageTransaction(ctx context.Context, tx *storagetx.StorageTransaction) (*receipt.Receipts, error) {
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage transaction: %w", err)
	}

	txData, err := tx.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode storage tx: %w", err)
	}

	ethReceipt, err := c.submit(ctx, c.processor, txData)
	if err != nil {
		return nil, err
	}

	receipts, err := receipt.DecodeLogs(ethReceipt.Logs)
	if err != nil {
		return receipts, fmt.Errorf("failed to decode receipt logs: %w", err)
	}
	return receipts, nil
}

// SendArkivTransaction validates the batch, submits it to the Arkiv storage
// processor and decodes the emitted logs into receipts.
func (c *Client) SendArkivTransaction(ctx context.Context, tx *storagetx.ArkivTransaction) (*receipt.ArkivReceipts, error) {
	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage transaction: %w", err)
	}

	txData, err := tx.Pack()
	if err != nil {
		return nil, fmt.Errorf("failed to pack storage tx: %w", err)
	}

	ethReceipt, err := c.submit(ctx, c.arkivProcessor, txData)
	if err != nil {
		return nil, err
	}

	receipts, err := receipt.DecodeArkivLogs(ethReceipt.Logs)
	if err != nil {
		return receipts, fmt.Errorf("failed to decode receipt logs: %w", err)
	}
	return receipts, nil
}

// CreateEntities submits a batch of creates and returns one receipt per
// created entity, in creation order.
func (c *Client) CreateEntities(ctx context.Context, ops ...CreateOp) ([]receipt.CreateReceipt, error) {
	tx, err := BuildStorageTransaction(ops, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	receipts, err := c.SendStorageTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	return receipts.Creates, nil
}

// UpdateEntities submits a batch of updates.
func (c *Client) UpdateEntities(ctx context.Context, ops ...UpdateOp) ([]receipt.UpdateReceipt, error) {
	tx, err := BuildStorageTransaction(nil, ops, nil, nil)
	if err != nil {
		return nil, err
	}
	receipts, err := c.SendStorageTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	return receipts.Updates, nil
}

// DeleteEntities submits a batch of deletes.
func (c *Client) DeleteEntities(ctx context.Context, keys ...common.Hash) ([]receipt.DeleteReceipt, error) {
	tx, err := BuildStorageTransaction(nil, nil, keys, nil)
	if err != nil {
		return nil, err
	}
	receipts, err := c.SendStorageTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	return receipts.Deletes, nil
}

// ExtendEntities submits a batch of BTL extensions.
func (c *Client) ExtendEntities(ctx context.Context, extensions ...storagetx.ExtendBTL) ([]receipt.ExtendReceipt, error) {
	tx, err := BuildStorageTransaction(nil, nil, nil, extensions)
	if err != nil {
		return nil, err
	}
	receipts, err := c.SendStorageTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	return receipts.Extends, nil
}

// submit signs the payload as a dynamic fee transaction to the given
// processor address, sends it and waits for it to be mined.
func (c *Client) submit(ctx context.Context, to common.Address, txData []byte) (*types.Receipt, error) {
	if c.key == nil {
		return nil, ErrNoPrivateKey
	}

	chainID, err := c.eth.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.sender)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	msg := ethereum.CallMsg{
		From: c.sender,
		To:   &to,
		Data: txData,
	}

	gasLimit, err := c.eth.EstimateGas(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	gasTipCap := c.gasTipCap
	if gasTipCap == nil {
		gasTipCap, err = c.eth.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas tip cap: %w", err)
		}
	}

	gasFeeCap := c.gasFeeCap
	if gasFeeCap == nil {
		gasFeeCap, err = c.eth.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas fee cap: %w", err)
		}
	}

	tx := &types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		Gas:       gasLimit,
		Data:      txData,
		To:        &to,
		GasTipCap: gasTipCap,
		GasFeeCap: gasFeeCap,
	}

	// Dynamic fee transactions need the London signer.
	signer := types.LatestSignerForChainID(chainID)

	signedTx, err := types.SignNewTx(c.key, signer, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	txHash := signedTx.Hash()

	c.logger.Debug("submitting storage transaction", "to", to, "tx", txHash, "nonce", nonce, "gas", gasLimit)

	err = c.eth.SendTransaction(ctx, signedTx)
	if err != nil {
		return nil, fmt.Errorf("failed to send tx: %w", err)
	}

	ethReceipt, err := bind.WaitMinedHash(ctx, c.eth, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to wait for tx: %w", err)
	}

	if ethReceipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("tx %s failed", txHash)
	}

	return ethReceipt, nil
}
