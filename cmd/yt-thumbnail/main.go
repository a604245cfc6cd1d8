package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alanbriolat/yt-thumbnail"
	"github.com/alanbriolat/yt-thumbnail/async"
	"github.com/alanbriolat/yt-thumbnail/database"
	"github.com/alanbriolat/yt-thumbnail/internal/boltdb"
	"github.com/alanbriolat/yt-thumbnail/internal/prefs"
	"github.com/alanbriolat/yt-thumbnail/internal/session"
	"github.com/alanbriolat/yt-thumbnail/metadata"
)

const appName = "yt-thumbnail"

const (
	storeBolt   = "bolt"
	storeSQLite = "sqlite"
	storeMemory = "memory"
)

func main() {
	// Missing .env is normal
	_ = godotenv.Load()

	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.Level.SetLevel(zap.InfoLevel)
	logger, err := config.Build()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logger.Sync()
	zap.RedirectStdLog(logger)
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = yt_thumbnail.WithLogger(ctx, logger)

	app := newApp(ctx, config.Level)
	result := async.Run(func() error { return app.Run(os.Args) })

	select {
	case err = <-result:
		if err != nil {
			logger.Fatal(err.Error())
		}
	case <-ctx.Done():
		stop()
		err = <-result
		if err != nil {
			logger.Fatal(err.Error())
		}
	}
}

type application struct {
	ctx     context.Context
	level   zap.AtomicLevel
	session *session.Session
	closer  func() error
}

func newApp(ctx context.Context, level zap.AtomicLevel) *cli.App {
	a := &application{ctx: ctx, level: level}
	return &cli.App{
		Name:  appName,
		Usage: "extract YouTube video IDs and fetch their thumbnails",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   defaultConfigDir(),
				Usage:   "keep preferences in `DIR`",
				EnvVars: []string{"YT_THUMBNAIL_CONFIG_DIR"},
			},
			&cli.StringFlag{
				Name:    "store",
				Value:   storeBolt,
				Usage:   "preference store: bolt, sqlite or memory",
				EnvVars: []string{"YT_THUMBNAIL_STORE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "minimum `LEVEL` of log messages",
				EnvVars: []string{"YT_THUMBNAIL_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "title-source",
				Value:   metadata.SourceOEmbed,
				Usage:   "look up video titles with oembed, youtube or none",
				EnvVars: []string{"YT_THUMBNAIL_TITLE_SOURCE"},
			},
			&cli.StringFlag{
				Name:    "thumbnail-base-url",
				Value:   yt_thumbnail.DefaultThumbnailBaseURL,
				Usage:   "fetch thumbnails from `URL`/<id>/<tier>.jpg",
				EnvVars: []string{"YT_THUMBNAIL_BASE_URL"},
			},
		},
		Before:          a.before,
		After:           a.after,
		Commands:        a.commands(),
		HideHelpCommand: true,
	}
}

func (a *application) before(c *cli.Context) error {
	if err := a.level.UnmarshalText([]byte(c.String("log-level"))); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	titles, err := metadata.New(c.String("title-source"))
	if err != nil {
		return err
	}
	kind := c.String("store")
	switch kind {
	case storeBolt, storeSQLite, storeMemory:
	default:
		return fmt.Errorf("unknown store %q", kind)
	}
	db, closer, err := openStore(kind, c.String("config-dir"))
	if err != nil {
		zap.S().Warnf("preferences will not be saved: %v", err)
		db, closer = &prefs.MemoryDatabase{}, nil
	}
	a.closer = closer

	cfg := session.DefaultConfig()
	cfg.Preferences = prefs.New(db)
	cfg.Titles = titles
	cfg.Thumbnails = yt_thumbnail.NewThumbnailConfig()
	cfg.Thumbnails.BaseURL = c.String("thumbnail-base-url")
	a.session = session.New(cfg)
	return nil
}

func (a *application) after(*cli.Context) error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}

func defaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appName)
}

// openStore opens the named preference store under dir, returning a function to close it (nil if there is nothing
// to close).
func openStore(kind string, dir string) (prefs.Database, func() error, error) {
	if kind == storeMemory {
		return &prefs.MemoryDatabase{}, nil, nil
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, nil, err
	}
	switch kind {
	case storeBolt:
		db, err := boltdb.New(filepath.Join(dir, "preferences.db"))
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case storeSQLite:
		db, err := database.Open(filepath.Join(dir, "preferences.sqlite3"), zap.L())
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store %q", kind)
	}
}
