// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/nearsdk/chain"
	"github.com/ava-labs/nearsdk/crypto/ed25519"
)

// VerifyBatch checks the signatures of [stxs] using at most [parallelism]
// goroutines. A non-positive [parallelism] uses one goroutine per CPU.
// When several transactions fail, the error names the one with the
// lowest index.
func VerifyBatch(ctx context.Context, stxs []*chain.SignedTransaction, parallelism int) error {
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	chunk := (len(stxs) + parallelism - 1) / parallelism
	if chunk < ed25519.MinBatchSize {
		chunk = ed25519.MinBatchSize
	}

	var (
		g    errgroup.Group
		errs = make([]error, (len(stxs)+chunk-1)/chunk)
	)
	g.SetLimit(parallelism)
	for i := range errs {
		i, start := i, i*chunk
		end := min(start+chunk, len(stxs))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			errs[i] = verifyChunk(stxs[start:end], start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// verifyChunk checks [stxs] as one batch and falls back to checking each
// transaction on its own to find the one that failed.
func verifyChunk(stxs []*chain.SignedTransaction, offset int) error {
	batch := ed25519.NewBatch(len(stxs))
	for i, stx := range stxs {
		if err := checkKeyTypes(stx); err != nil {
			return fmt.Errorf("transaction %d: %w", offset+i, err)
		}
		hash, err := stx.Transaction.Hash()
		if err != nil {
			return fmt.Errorf("transaction %d: %w", offset+i, err)
		}
		batch.Add(hash[:], stx.Transaction.PublicKey.Data, stx.Signature.Data)
	}
	if batch.Verify() {
		return nil
	}
	for i, stx := range stxs {
		if err := VerifySignedTransaction(stx); err != nil {
			return fmt.Errorf("transaction %d: %w", offset+i, err)
		}
	}
	return nil
}
