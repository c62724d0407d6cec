package status

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"spikeboard/internal/model"
	"spikeboard/internal/service"
)

// 状态页的推送通道。所有连接收到同一份数据，
// 没有按用户区分的订阅，所以比行情订阅那套简单得多。

type statusPush struct {
	Exchanges model.ExchangesStatusRes `json:"exchanges"`
	Spikes    model.SpikeStatsRes      `json:"spikes"`
	PushedAt  int64                    `json:"pushed_at"`
}

type ClientConn struct {
	Conn *websocket.Conn
	Send chan []byte // 异步发送通道
}

type WsHandler struct {
	service  service.StatusService
	mu       sync.RWMutex
	clients  map[*ClientConn]struct{}
	upgrader websocket.Upgrader
	interval time.Duration
}

func NewWsHandler(s service.StatusService, interval time.Duration) *WsHandler {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &WsHandler{
		service: s,
		clients: make(map[*ClientConn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // 允许跨域
		},
		interval: interval,
	}
}

// ServeWS 升级连接并挂到广播列表
func (h *WsHandler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("upgrade error:", err)
		return
	}
	client := &ClientConn{
		Conn: conn,
		Send: make(chan []byte, 16),
	}
	h.mu.Lock()
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, client)
		h.mu.Unlock()
		close(client.Send)
		conn.Close()
	}()

	go client.writePump()
	// 读循环只用来感知断开，客户端不需要发业务消息
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastStatus 周期拉取状态并推给所有连接，go起一个常驻协程
func (h *WsHandler) BroadcastStatus(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		n := len(h.clients)
		h.mu.RUnlock()
		if n == 0 {
			continue
		}

		push := statusPush{PushedAt: time.Now().Unix()}
		var err error
		if push.Exchanges, err = h.service.ExchangesStatus(ctx); err != nil {
			log.Println("ExchangesStatus error:", err)
			continue
		}
		if push.Spikes, err = h.service.SpikeStats(ctx); err != nil {
			log.Println("SpikeStats error:", err)
			continue
		}
		data, _ := json.Marshal(push)

		h.mu.RLock()
		for client := range h.clients {
			select {
			case client.Send <- data:
			default:
				// 队列满就丢掉这一帧
			}
		}
		h.mu.RUnlock()
	}
}

func (c *ClientConn) writePump() {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Println("write error:", err)
			break
		}
	}
}
