package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"colaboradores/src/domain/entities"
)

const ColaboradoresListCacheKey = "colaboradores:list"

// ListCache é o subconjunto do redis.RedisClient usado pelo decorator.
type ListCache interface {
	GetKey(ctx context.Context, key string) (string, bool, error)
	SetKey(ctx context.Context, key string, value string) error
	InvalidateKeys(ctx context.Context, keys ...string) error
}

// CachedColaboradorRepository guarda a listagem completa no redis. Falhas do
// cache só são logadas: a leitura cai no repositório de origem.
//
// generation conta as escritas que invalidaram o cache. Uma leitura só grava
// no cache se nenhuma escrita terminou enquanto ela lia a origem.
type CachedColaboradorRepository struct {
	origin ColaboradorStore
	cache  ListCache

	mu         sync.Mutex
	generation uint64
}

func NewCachedColaboradorRepository(origin ColaboradorStore, cache ListCache) *CachedColaboradorRepository {
	return &CachedColaboradorRepository{
		origin: origin,
		cache:  cache,
	}
}

func (r *CachedColaboradorRepository) ListAll(ctx context.Context) ([]entities.Colaborador, error) {
	if r.cache == nil {
		return r.origin.ListAll(ctx)
	}

	cached, found, err := r.getFromCache(ctx)
	if found && err == nil {
		log.Printf("Cache HIT for key: %s", ColaboradoresListCacheKey)
		return cached, nil
	}

	if err != nil {
		log.Printf("Cache error for key %s: %v", ColaboradoresListCacheKey, err)
	}

	log.Printf("Cache MISS for key: %s", ColaboradoresListCacheKey)

	readGeneration := r.currentGeneration()

	colaboradores, err := r.origin.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	// Timeout curto, o cache não pode segurar a resposta
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.generation != readGeneration {
		log.Printf("Cache SKIP for key %s: list changed during read", ColaboradoresListCacheKey)
		return colaboradores, nil
	}
	r.setInCache(ctxWithTimeout, colaboradores)

	return colaboradores, nil
}

func (r *CachedColaboradorRepository) Create(ctx context.Context, colaborador entities.Colaborador) (int64, error) {
	id, err := r.origin.Create(ctx, colaborador)
	if err != nil {
		return 0, err
	}

	r.invalidate(ctx)
	return id, nil
}

func (r *CachedColaboradorRepository) Update(ctx context.Context, id int64, colaborador entities.Colaborador) (int64, error) {
	affected, err := r.origin.Update(ctx, id, colaborador)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		r.invalidate(ctx)
	}
	return affected, nil
}

func (r *CachedColaboradorRepository) Delete(ctx context.Context, id int64) (int64, error) {
	affected, err := r.origin.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if affected > 0 {
		r.invalidate(ctx)
	}
	return affected, nil
}

func (r *CachedColaboradorRepository) ImportMany(ctx context.Context, colaboradores []entities.Colaborador) (int64, error) {
	imported, err := r.origin.ImportMany(ctx, colaboradores)
	if err != nil {
		return 0, err
	}

	if imported > 0 {
		r.invalidate(ctx)
	}
	return imported, nil
}

func (r *CachedColaboradorRepository) getFromCache(ctx context.Context) ([]entities.Colaborador, bool, error) {
	cachedJSON, found, err := r.cache.GetKey(ctx, ColaboradoresListCacheKey)
	if !found || err != nil {
		return nil, found, err
	}

	var result []entities.Colaborador
	if err := json.Unmarshal([]byte(cachedJSON), &result); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached data: %w", err)
	}

	if result == nil {
		result = make([]entities.Colaborador, 0)
	}

	return result, true, nil
}

func (r *CachedColaboradorRepository) setInCache(ctx context.Context, colaboradores []entities.Colaborador) {
	dataJSON, err := json.Marshal(colaboradores)
	if err != nil {
		log.Printf("Failed to marshal cache data for key %s: %v", ColaboradoresListCacheKey, err)
		return
	}

	if err := r.cache.SetKey(ctx, ColaboradoresListCacheKey, string(dataJSON)); err != nil {
		log.Printf("Failed to set cache for key %s: %v", ColaboradoresListCacheKey, err)
		return
	}

	log.Printf("Cache SET for key: %s (%d colaboradores)", ColaboradoresListCacheKey, len(colaboradores))
}

func (r *CachedColaboradorRepository) currentGeneration() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

func (r *CachedColaboradorRepository) invalidate(ctx context.Context) {
	if r.cache == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.generation++

	if err := r.cache.InvalidateKeys(ctx, ColaboradoresListCacheKey); err != nil {
		log.Printf("Failed to invalidate cache key %s: %v", ColaboradoresListCacheKey, err)
	}
}
