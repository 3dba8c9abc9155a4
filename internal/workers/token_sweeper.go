// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package workers

import (
	"context"
	"time"

	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/internal/store"
	"github.com/trailbook/trailbook/models"
)

// TokenSweeper periodically clears expired password-reset token pairs
// from user documents. Expired tokens are already rejected at validation
// time; the sweeper only keeps stale digests from accumulating in the
// store.
type TokenSweeper struct {
	store    store.DocumentStore
	interval time.Duration
	logger   *logger.Logger

	// now is the clock source, replaceable in tests.
	now func() time.Time
}

// NewTokenSweeper constructs a sweeper ticking at the given interval.
func NewTokenSweeper(s store.DocumentStore, interval time.Duration, log *logger.Logger) *TokenSweeper {
	return &TokenSweeper{
		store:    s,
		interval: interval,
		logger:   log,
		now:      time.Now,
	}
}

// Run implements [Worker]. It sweeps once per interval until ctx is
// cancelled.
func (t *TokenSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info().Dur("interval", t.interval).Msg("reset-token sweeper started")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("reset-token sweeper stopped")
			return
		case <-ticker.C:
			t.Sweep(ctx)
		}
	}
}

// Sweep clears the reset pair of every user whose token expiry lies in the
// past. Each failure is logged and skipped; the next tick retries.
func (t *TokenSweeper) Sweep(ctx context.Context) {
	cutoff := t.now().UTC().Format(time.RFC3339Nano)

	expired, err := t.store.Find(ctx, models.CollectionUsers, query.Descriptor{
		Filter: query.Filter{
			models.FieldResetTokenExpiresAt: {{Op: query.OpLessThan, Value: cutoff}},
		},
		Projection: query.Projection{Include: []string{"id"}},
	})
	if err != nil {
		t.logger.Err(err).Msg("error scanning for expired reset tokens")
		return
	}

	for _, doc := range expired {
		_, err := t.store.UpdateByID(ctx, models.CollectionUsers, doc.ID(), models.Document{
			models.FieldResetTokenHash:      nil,
			models.FieldResetTokenExpiresAt: nil,
		})
		if err != nil {
			t.logger.Err(err).Str("user_id", doc.ID()).Msg("error clearing expired reset token")
			continue
		}
	}

	if len(expired) > 0 {
		t.logger.Info().Int("cleared", len(expired)).Msg("expired reset tokens cleared")
	}
}
