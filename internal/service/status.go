package service

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/goccy/go-json"

	"spikeboard/conf"
	"spikeboard/internal/backend"
	"spikeboard/internal/consts"
	"spikeboard/internal/model"
	"spikeboard/pkg/cache"
	"spikeboard/pkg/logger"
)

// 状态数据是全局的，不分用户，短TTL缓存防止前端轮询打爆后端

type StatusService interface {
	ExchangesStatus(ctx context.Context) (model.ExchangesStatusRes, error)
	SpikeStats(ctx context.Context) (model.SpikeStatsRes, error)
}

type statusService struct {
	bc *backend.Client
	rc *redis.Client
}

func NewStatusService(bc *backend.Client) *statusService {
	return &statusService{
		bc: bc,
		rc: cache.GetRedisClient(),
	}
}

func statusCacheTtl() time.Duration {
	sec := conf.AppConfig.CacheTTL.Status
	if sec <= 0 {
		sec = 5
	}
	return time.Duration(sec) * time.Second
}

func (s *statusService) ExchangesStatus(ctx context.Context) (res model.ExchangesStatusRes, err error) {
	key := consts.StatusCachePrefix + "exchanges"
	if data, cerr := s.rc.Get(ctx, key).Result(); cerr == nil {
		if err := json.Unmarshal([]byte(data), &res.Exchanges); err == nil {
			res.Cached = true
			return res, nil
		}
	} else if cerr != redis.Nil {
		logger.Warnf("redis读取状态缓存失败: %v", cerr)
	}

	res.Exchanges, err = s.bc.ExchangesStatus(ctx)
	if err != nil {
		return res, err
	}
	if data, merr := json.Marshal(res.Exchanges); merr == nil {
		if cerr := s.rc.Set(ctx, key, data, statusCacheTtl()).Err(); cerr != nil {
			logger.Warnf("redis写入状态缓存失败: %v", cerr)
		}
	}
	return res, nil
}

func (s *statusService) SpikeStats(ctx context.Context) (res model.SpikeStatsRes, err error) {
	if data, cerr := s.rc.Get(ctx, consts.SpikeStatsCacheKey).Result(); cerr == nil {
		var stats backend.SpikeStats
		if err := json.Unmarshal([]byte(data), &stats); err == nil {
			res.Stats = &stats
			res.Cached = true
			return res, nil
		}
	} else if cerr != redis.Nil {
		logger.Warnf("redis读取统计缓存失败: %v", cerr)
	}

	res.Stats, err = s.bc.SpikesStats(ctx)
	if err != nil {
		return res, err
	}
	if data, merr := json.Marshal(res.Stats); merr == nil {
		if cerr := s.rc.Set(ctx, consts.SpikeStatsCacheKey, data, statusCacheTtl()).Err(); cerr != nil {
			logger.Warnf("redis写入统计缓存失败: %v", cerr)
		}
	}
	return res, nil
}
