package domain

import "context"

// SyncRepository tracks the last successful chain sync per account address.
type SyncRepository interface {
	GetLastSync(ctx context.Context, addr string) (int64, error)
	SetLastSync(ctx context.Context, addr string, timestamp int64) error
	Reset(ctx context.Context) error
}
