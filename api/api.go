package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/allanboury/ao-trading-dasboard/internal/domain"
	"github.com/allanboury/ao-trading-dasboard/internal/logger"
	"github.com/allanboury/ao-trading-dasboard/internal/repository"
	"github.com/allanboury/ao-trading-dasboard/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type ApiHandler struct {
	SessionRepository repository.SessionRepository
	DashboardService  service.DashboardService
	ExportService     service.ExportService

	AccessCode       string
	JwtSigningSecret string
}

func (m *ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to aodash"})
	})
	router.POST("/login", m.login)

	authorized := router.Group("/", m.sessionMiddleware)
	authorized.POST("/importTrades", m.importTrades)
	authorized.POST("/dashboard", m.dashboard)
	authorized.POST("/exportCsv", m.exportCsv)

	return router
}

func (m *ApiHandler) StartApi(port int) error {
	return m.InitializeRouterEngine().Run(fmt.Sprintf(":%d", port))
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, 500)
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	logger.Error(err)
	c.AbortWithStatusJSON(code, gin.H{
		"error": err.Error(),
	})
}

func logRequestMiddleware(ctx *gin.Context) {
	start := time.Now()
	ctx.Next()
	logger.Info(
		"%s %s -> %d (%d bytes, %dms)",
		ctx.Request.Method,
		ctx.Request.URL.Path,
		ctx.Writer.Status(),
		ctx.Writer.Size(),
		time.Since(start).Milliseconds(),
	)
}

const sessionContextKey = "TRADE_SESSION"

// sessionMiddleware resolves the bearer token into the live session and
// parks it on the gin context for the resolvers. A token whose session has
// expired out of the repository is as unauthorized as no token at all.
func (m *ApiHandler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
	if tokenStr == "" {
		returnErrorJsonCode(fmt.Errorf("missing authorization token"), c, 401)
		return
	}

	sessionID, err := parseSessionToken(tokenStr, m.JwtSigningSecret)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}
	session, err := m.SessionRepository.Get(sessionID)
	if err != nil {
		returnErrorJsonCode(err, c, 401)
		return
	}

	c.Set(sessionContextKey, session)
	c.Next()
}

func sessionFromContext(c *gin.Context) (*domain.Session, error) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, fmt.Errorf("no session on request context")
	}
	session, ok := v.(*domain.Session)
	if !ok {
		return nil, fmt.Errorf("unexpected session type on request context")
	}
	return session, nil
}

func logProfile(name string, profile *domain.Profile) {
	spans, err := profile.ToJsonBytes()
	if err != nil {
		logger.Error(err)
		return
	}
	logger.Debug("%s profile: %s", name, string(spans))
}
