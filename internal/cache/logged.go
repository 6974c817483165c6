package cache

import (
	"context"

	"go.uber.org/zap"
)

// Logged registra no zap as falhas do cache e repassa o erro.
// Invalidação perdida deixa o catálogo antigo visível até o TTL e sai em
// nível error.
type Logged struct {
	next Catalog
	log  *zap.Logger
}

func NewLogged(next Catalog, log *zap.Logger) *Logged {
	return &Logged{next: next, log: log}
}

func (l *Logged) Get(ctx context.Context, key string, dst any) (bool, error) {
	ok, err := l.next.Get(ctx, key, dst)
	if err != nil {
		l.log.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	return ok, err
}

func (l *Logged) Set(ctx context.Context, key string, value any) error {
	err := l.next.Set(ctx, key, value)
	if err != nil {
		l.log.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

func (l *Logged) Invalidate(ctx context.Context) error {
	err := l.next.Invalidate(ctx)
	if err != nil {
		l.log.Error("catalog cache invalidation failed", zap.Error(err))
	}
	return err
}
