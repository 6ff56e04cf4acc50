package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linlinbupt123-crypto/crypto_core/chain"
	"github.com/linlinbupt123-crypto/crypto_core/domain"
	"github.com/linlinbupt123-crypto/crypto_core/entity"
	wrapErrors "github.com/linlinbupt123-crypto/crypto_core/errors"
)

// VerifyItem is one entry of a batch. Fields stay in text form so a
// malformed entry fails on its own instead of failing the batch.
type VerifyItem struct {
	Network   string
	PublicKey string
	Signature string
	Message   []byte
}

// VerifyBatch checks items concurrently and returns one result per item in
// input order. It fails as a whole only when ctx is done or the batch is
// larger than the configured limit.
func (s *CryptoService) VerifyBatch(ctx context.Context, items []VerifyItem) ([]entity.VerifyResult, error) {
	if len(items) > s.batchLimit {
		return nil, wrapErrors.Newf(wrapErrors.BatchTooLarge, "verify batch", "%d items exceeds limit %d", len(items), s.batchLimit)
	}

	results := make([]entity.VerifyResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchWorkers)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.verifyItem(i, item)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the last item may have finished after cancellation
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	valid := 0
	for _, r := range results {
		if r.Valid {
			valid++
		}
	}
	s.logger.Info("batch verified", zap.Int("items", len(items)), zap.Int("valid", valid))
	return results, nil
}

func (s *CryptoService) verifyItem(index int, item VerifyItem) entity.VerifyResult {
	result := entity.VerifyResult{Index: index}
	err := func() error {
		network, err := chain.ParseNetwork(item.Network)
		if err != nil {
			return err
		}
		pub, err := domain.PublicKeyFromHex(item.PublicKey)
		if err != nil {
			return err
		}
		sig, err := domain.ParseSignatureHex(item.Signature)
		if err != nil {
			return err
		}
		return s.Verify(pub, item.Message, sig, network)
	}()
	if err != nil {
		result.Code = string(wrapErrors.CodeOf(err))
		result.Error = err.Error()
		return result
	}
	result.Valid = true
	return result
}
