// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package http

import (
	"github.com/trailbook/trailbook/internal/logger"
	"github.com/trailbook/trailbook/internal/service"
)

// Handler owns the REST surface of the application: routing, middleware,
// and the translation between HTTP requests and service calls.
type Handler struct {
	services *service.Services

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		logger:   logger,
	}
}
