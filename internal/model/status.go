package model

import "spikeboard/internal/backend"

// ExchangesStatusRes 各交易所采集器状态，后端数据原样透传加缓存标记
type ExchangesStatusRes struct {
	Exchanges []backend.ExchangeStatus `json:"exchanges"`
	Cached    bool                     `json:"cached"`
}

type SpikeStatsRes struct {
	Stats  *backend.SpikeStats `json:"stats"`
	Cached bool                `json:"cached"`
}
