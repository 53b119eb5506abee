package lock

import (
	"context"
	"sync"
)

// Locker 串行化对同一结果文件的追加
type Locker interface {
	Lock(ctx context.Context) (unlock func(), err error)
}

// LocalLocker 单进程内的互斥锁, 等待时响应 ctx 取消
type LocalLocker struct {
	ch chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{ch: make(chan struct{}, 1)}
}

func (l *LocalLocker) Lock(ctx context.Context) (func(), error) {
	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-l.ch })
	}, nil
}
