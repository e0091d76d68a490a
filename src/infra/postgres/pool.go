package postgres

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"

	"colaboradores/src/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConnectionPool é o handle injetado nos repositórios. Ele não tenta de novo:
// uma falha em Acquire volta direto para quem chamou.
type ConnectionPool struct {
	pool   *pgxpool.Pool
	closed atomic.Bool
}

func NewConnectionPool(pool *pgxpool.Pool) *ConnectionPool {
	return &ConnectionPool{pool: pool}
}

// Acquire returns an active connection. Errors wrap domain.ErrConnection;
// after Shutdown they also wrap domain.ErrPoolClosed.
func (cp *ConnectionPool) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	if cp.closed.Load() {
		return nil, fmt.Errorf("ConnectionPool.Acquire - %w: %w", domain.ErrConnection, domain.ErrPoolClosed)
	}

	conn, err := cp.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("ConnectionPool.Acquire - %w: %w", domain.ErrConnection, err)
	}

	return conn, nil
}

// Release devolve a conexão ao pool para reuso.
func (cp *ConnectionPool) Release(conn *pgxpool.Conn) {
	if conn == nil {
		return
	}
	conn.Release()
}

// Shutdown fecha todas as conexões. Chamadas repetidas são ignoradas.
func (cp *ConnectionPool) Shutdown() {
	if !cp.closed.CompareAndSwap(false, true) {
		return
	}

	log.Println("Closing postgres connection pool...")
	cp.pool.Close()
}

// Ping is the startup connection test.
func (cp *ConnectionPool) Ping(ctx context.Context) error {
	conn, err := cp.Acquire(ctx)
	if err != nil {
		return err
	}
	defer cp.Release(conn)

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ConnectionPool.Ping - %w: %w", domain.ErrConnection, err)
	}

	return nil
}

func (cp *ConnectionPool) IsClosed() bool {
	return cp.closed.Load()
}
