// Package feewatcher verifies the fee-payment proofs attached to pending
// withdrawal requests against an external explorer API. Verification is
// advisory: it flags requests for the admin console and never transitions
// request status by itself.
package feewatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/adwallet/adwallet/internal/config"
	"github.com/adwallet/adwallet/internal/domain"
	"github.com/adwallet/adwallet/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
)

var processingRequests sync.Map

type Response struct {
	TxID      string `json:"txId"`
	Confirmed bool   `json:"confirmed"`
}

type WithdrawalRepo interface {
	ListUnverifiedPending(ctx context.Context, limit uint32) ([]domain.WithdrawalRequest, error)
	MarkFeeVerified(ctx context.Context, requestID int) error
}

type Service struct {
	url            string
	withdrawalRepo WithdrawalRepo
	client         clients.HTTPClientI
	limit          uint32
	workerPool     WorkerPoolI
	updateInterval time.Duration
}

func New(cfg *config.Config, withdrawalRepo WithdrawalRepo, client clients.HTTPClientI) *Service {
	return &Service{
		url:            cfg.ExplorerAddress,
		withdrawalRepo: withdrawalRepo,
		client:         client,
		limit:          1000,
		workerPool:     NewWorkerPool(10),
		updateInterval: time.Second * 30,
	}
}

// Enabled reports whether an explorer endpoint is configured.
func (s *Service) Enabled() bool {
	return s.url != ""
}

func (s *Service) Start(ctx context.Context) {
	if !s.Enabled() {
		zap.L().Info("Fee watcher disabled, no explorer address configured")
		return
	}
	zap.L().Info("Fee watcher started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping fee watcher")
			return
		case <-ticker.C:
			s.processRequests(ctx)
		}
	}
}

func (s *Service) processRequests(ctx context.Context) {
	requests, err := s.withdrawalRepo.ListUnverifiedPending(ctx, atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch withdrawal requests for verification", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, request := range requests {
		request := request

		if _, loaded := processingRequests.LoadOrStore(request.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer processingRequests.Delete(request.ID)
				return s.verifyRequest(ctx, request)
			})
			if err != nil {
				processingRequests.Delete(request.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error verifying withdrawal requests", zap.Error(err))
	}
}

func (s *Service) verifyRequest(ctx context.Context, request domain.WithdrawalRequest) error {
	url := s.url + "/api/tx/" + request.FeeTxID

	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		statusCode, respBody, respHeaders, err := s.client.Get(url, nil)
		if err != nil {
			if attempt < maxRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
				continue
			}
			return fmt.Errorf("failed to verify fee tx %s after %d retries: %w", request.FeeTxID, maxRetries, err)
		}

		switch statusCode {
		case http.StatusTooManyRequests:
			wait := retryAfter(respHeaders, attempt)
			zap.L().Warn("Explorer rate limit hit",
				zap.String("feeTxID", request.FeeTxID),
				zap.Duration("retryAfter", wait))
			if attempt < maxRetries {
				time.Sleep(wait)
				continue
			}
			return fmt.Errorf("explorer rate limit not lifted for fee tx %s", request.FeeTxID)
		case http.StatusNotFound:
			// proof not on chain (yet); picked up again on the next tick
			zap.L().Info("Fee tx not found in explorer", zap.String("feeTxID", request.FeeTxID))
			return nil
		case http.StatusOK:
			var resp Response
			if err := json.Unmarshal(respBody, &resp); err != nil {
				return fmt.Errorf("can't decode explorer response for fee tx %s: %w", request.FeeTxID, err)
			}
			if !resp.Confirmed {
				zap.L().Info("Fee tx not confirmed yet", zap.String("feeTxID", request.FeeTxID))
				return nil
			}
			if err := s.withdrawalRepo.MarkFeeVerified(ctx, request.ID); err != nil {
				return err
			}
			zap.L().Info("Fee payment verified",
				zap.Int("requestID", request.ID),
				zap.String("feeTxID", request.FeeTxID))
			return nil
		default:
			return fmt.Errorf("unexpected explorer status %d for fee tx %s", statusCode, request.FeeTxID)
		}
	}

	return nil
}

func retryAfter(headers http.Header, attempt int) time.Duration {
	if headers != nil {
		if v := headers.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil {
				return time.Duration(secs) * time.Second
			}
		}
	}
	return retryInterval * time.Duration(attempt)
}
