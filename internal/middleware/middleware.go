package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 全局中间件作为一个Router挂载，和业务路由走同一个加载入口

type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(NoCache())
	g.Use(Options())
	g.Use(Secure())
	g.Use(RequestId())
	g.Use(Logger)

	// 健康检查，启动自检也打这个接口
	g.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
}
