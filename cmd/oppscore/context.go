package main

import (
	"context"

	"github.com/johnwards/oppscore/internal/config"
)

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, cfg)
}

func configFrom(ctx context.Context) config.Config {
	cfg, _ := ctx.Value(contextKey{}).(config.Config)
	return cfg
}
