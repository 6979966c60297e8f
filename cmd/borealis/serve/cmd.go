package serve

import (
	"github.com/askele/borealis/aurora"
	"github.com/askele/borealis/feed"
	"github.com/askele/borealis/internal/config"
	"github.com/askele/borealis/internal/httpserver"
	"github.com/askele/borealis/internal/logutil"
	"github.com/askele/borealis/internal/sqlitedb"
	"github.com/askele/borealis/session"
	"github.com/askele/borealis/userstore"
	"github.com/askele/borealis/webapp"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var bind string
	var dataDir string
	var sessionBackend string
	var redisAddr string
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the borealis web application",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "bind",
				Usage:       "Address to bind the HTTP server to (overrides BOREALIS_BIND)",
				Destination: &bind,
			},
			&cli.StringFlag{
				Name:        "data",
				Aliases:     []string{"d"},
				Usage:       "Directory holding the sqlite database (overrides BOREALIS_DATA)",
				Destination: &dataDir,
			},
			&cli.StringFlag{
				Name:        "session-backend",
				Usage:       "Where sessions live: memory or redis (overrides BOREALIS_SESSION_BACKEND)",
				Destination: &sessionBackend,
			},
			&cli.StringFlag{
				Name:        "redis-addr",
				Usage:       "Redis address for the redis session backend (overrides BOREALIS_REDIS_ADDR)",
				Destination: &redisAddr,
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Bind = bind
			}
			if dataDir != "" {
				cfg.DataDir = dataDir
			}
			if sessionBackend != "" {
				cfg.SessionBackend = sessionBackend
			}
			if redisAddr != "" {
				cfg.RedisAddr = redisAddr
			}

			log := logutil.New(cfg.Debug)
			rctx := logutil.WithLogger(ctx.Context, log)

			db, err := sqlitedb.Open(rctx, cfg.DataDir, "borealis.db")
			if err != nil {
				return err
			}
			defer db.Close()
			users, err := userstore.New(rctx, db)
			if err != nil {
				return err
			}
			posts, err := feed.New(rctx, db)
			if err != nil {
				return err
			}

			var sessions session.Store
			switch cfg.SessionBackend {
			case config.SessionBackendRedis:
				rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
				defer rdb.Close()
				sessions = session.NewRedisStore(rdb, cfg.SessionTTL)
			default:
				sessions, err = session.NewMemoryStore(cfg.SessionTTL)
				if err != nil {
					return err
				}
			}

			app, err := webapp.New(users, posts, sessions, aurora.NewClient(cfg.AuroraBaseURL), cfg.SessionTTL)
			if err != nil {
				return err
			}
			log.Info().
				Str("bind", cfg.Bind).
				Str("sessions", cfg.SessionBackend).
				Msg("Starting borealis")
			return httpserver.Serve(rctx, cfg.Bind, app.Handler())
		},
	}
}
