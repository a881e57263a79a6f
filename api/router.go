// Package api contains all endpoints available
package api

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"enigme/event-site/db"
	"enigme/event-site/internal/service"
	"enigme/event-site/internal/session"
	"enigme/event-site/internal/store"
	"enigme/event-site/middleware"
	"enigme/event-site/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

//go:embed templates/*.html
var tmplFS embed.FS

//go:embed static
var staticFS embed.FS

var pageCache = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Store  *store.EntryStore
	Argon  *security.ArgonHash
	Posts  *service.PostLimiter

	adminHash    string
	blockedWords []string
	siteTitle    string
	accountText  string
}

func NewRouter() (*API, error) {
	a := &API{
		Argon:        security.New(),
		blockedWords: viper.GetStringSlice("guestbook.blocked_words"),
		siteTitle:    viper.GetString("site.title"),
		accountText:  viper.GetString("site.account_text"),
	}

	conn, err := db.New(viper.GetString("database.dsn"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = conn
	a.Store = store.NewEntryStore(conn)

	a.Posts = service.NewPostLimiter(
		viper.GetInt("guestbook.post_limit"),
		time.Duration(viper.GetInt("guestbook.post_window_seconds"))*time.Second,
	)

	// The admin password is only ever compared through this hash
	a.adminHash, err = a.Argon.GenerateFromPassword(viper.GetString("admin.password"))
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password, %w", err)
	}

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
			RequestsPerSecond: viper.GetInt("ratelimit.rps"),
			Burst:             viper.GetInt("ratelimit.burst"),
		}),
		sessions.Sessions(session.Name, cookie.NewStore([]byte(viper.GetString("session.secret")))),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				return fields
			},
		}),
	)

	router.SetHTMLTemplate(template.Must(template.New("").ParseFS(tmplFS, "templates/*.html")))

	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to mount static assets, %w", err)
	}
	router.StaticFS("/static", http.FS(staticSub))

	// GET / 			-> Clue page
	router.GET("/", cacheFor(60), a.Clue)

	// GET /final 			-> Finale page with the timer and morse text
	router.GET("/final", cacheFor(60), a.Finale)

	// GET /tromperie		-> Guestbook, deceptive framing
	router.GET("/tromperie", a.Tromperie)

	// GET /verite			-> Guestbook, true framing
	router.GET("/verite", a.Verite)

	// POST /sign			-> Submits a new guestbook entry
	router.POST("/sign", a.Sign)

	admin := router.Group("/admin")
	{
		// GET /admin			-> Login form
		admin.GET("", a.AdminLoginPage)

		// POST /admin/login		-> Checks the password and opens an admin session
		admin.POST("/login", a.AdminLogin)

		// GET /admin/logout		-> Clears the session
		admin.GET("/logout", a.AdminLogout)

		// GET /admin/panel		-> Lists every entry
		admin.GET("/panel", a.RequireAdmin, a.AdminPanel)

		// POST /admin/delete		-> Deletes an entry by id
		admin.POST("/delete", a.RequireAdmin, a.AdminDelete)
	}

	router.HandleMethodNotAllowed = true
	router.NoRoute(a.NotFound)
	router.NoMethod(func(c *gin.Context) {
		c.String(http.StatusMethodNotAllowed, "Method not allowed")
	})

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(pageCache, time.Second*time.Duration(sec))
}
