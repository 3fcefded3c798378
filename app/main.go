package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/fileutils"
	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/hashicorp/go-multierror"
	"github.com/jessevdk/go-flags"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ashu-suve/chat/app/chat"
	"github.com/ashu-suve/chat/app/storage"
	"github.com/ashu-suve/chat/app/storage/engine"
	"github.com/ashu-suve/chat/app/webapi"
	"github.com/ashu-suve/chat/lib/spamcheck"
	"github.com/ashu-suve/chat/lib/spamscore"
)

type options struct {
	DB         string  `long:"db" env:"DB" default:"spam-chat.db" description:"database url, sqlite file or postgres://"`
	GID        string  `long:"gid" env:"GID" default:"default" description:"chat group id, isolates records in a shared database"`
	Listen     string  `long:"listen" env:"LISTEN" default:":8080" description:"listen address"`
	AuthPasswd string  `long:"auth-passwd" env:"AUTH_PASSWD" default:"" description:"basic auth password for user \"chat\", no auth if empty"`
	RateLimit  float64 `long:"rate-limit" env:"RATE_LIMIT" default:"50" description:"max requests per second from a single ip"`
	NoWelcome  bool    `long:"no-welcome" env:"NO_WELCOME" description:"do not seed the welcome message into empty history"`

	Classifier struct {
		Config   string `long:"config" env:"CONFIG" default:"" description:"classifier yaml config, built-in defaults if not set"`
		Keywords string `long:"keywords" env:"KEYWORDS" default:"" description:"spam keywords file, one phrase per line"`
		Domains  string `long:"domains" env:"DOMAINS" default:"" description:"suspicious domains file, one per line"`
	} `group:"classifier" namespace:"classifier" env-namespace:"CLASSIFIER"`

	Cache struct {
		Size int           `long:"size" env:"SIZE" default:"1000" description:"max number of memoized previews"`
		TTL  time.Duration `long:"ttl" env:"TTL" default:"10m" description:"ttl of memoized previews"`
	} `group:"cache" namespace:"cache" env-namespace:"CACHE"`

	Logger struct {
		Enabled    bool   `long:"enabled" env:"ENABLED" description:"enable spam rotated logs"`
		FileName   string `long:"file" env:"FILE"  default:"spam-chat.log" description:"location of spam log"`
		MaxSize    string `long:"max-size" env:"MAX_SIZE" default:"100M" description:"maximum size before it gets rotated"`
		MaxBackups int    `long:"max-backups" env:"MAX_BACKUPS" default:"10" description:"maximum number of old log files to retain"`
	} `group:"logger" namespace:"logger" env-namespace:"LOGGER"`

	Dbg bool `long:"dbg" env:"DEBUG" description:"debug mode"`
}

var revision = "local"

const (
	dbConnectAttempts = 5
	dbConnectDelay    = time.Second
)

func main() {
	fmt.Printf("spam-chat %s\n", revision)
	var opts options
	p := flags.NewParser(&opts, flags.PrintErrors|flags.PassDoubleDash|flags.HelpFlag)
	if _, err := p.Parse(); err != nil {
		var flagsErr *flags.Error
		if !errors.As(err, &flagsErr) || flagsErr.Type != flags.ErrHelp {
			log.Printf("[ERROR] cli error: %v", err)
		}
		os.Exit(2)
	}

	setupLog(opts.Dbg, opts.AuthPasswd)
	log.Printf("[DEBUG] options: %+v", opts)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		// catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Printf("[WARN] interrupt signal")
		cancel()
	}()

	if err := execute(ctx, opts); err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func execute(ctx context.Context, opts options) (err error) {
	scorer, err := makeScorer(opts)
	if err != nil {
		return fmt.Errorf("can't make scorer, %w", err)
	}

	db, err := makeDB(ctx, opts)
	if err != nil {
		return fmt.Errorf("can't make db, %w", err)
	}

	loggerWr, err := makeSpamLogWriter(opts)
	if err != nil {
		return multierror.Append(fmt.Errorf("can't make spam log writer, %w", err), db.Close())
	}

	defer func() {
		// close resources, keep all errors
		errs := new(multierror.Error)
		if err != nil {
			errs = multierror.Append(errs, err)
		}
		if cerr := loggerWr.Close(); cerr != nil {
			errs = multierror.Append(errs, fmt.Errorf("can't close spam log, %w", cerr))
		}
		if cerr := db.Close(); cerr != nil {
			errs = multierror.Append(errs, fmt.Errorf("can't close db, %w", cerr))
		}
		err = errs.ErrorOrNil()
	}()

	svc, err := makeChat(ctx, opts, db, scorer, makeSpamLogger(loggerWr))
	if err != nil {
		return fmt.Errorf("can't make chat service, %w", err)
	}

	if !opts.NoWelcome {
		if err := svc.SeedWelcome(ctx); err != nil {
			log.Printf("[WARN] can't seed welcome message, %v", err)
		}
	}

	srv := webapi.NewServer(webapi.Config{
		Version:    revision,
		ListenAddr: opts.Listen,
		Chat:       svc,
		AuthPasswd: opts.AuthPasswd,
		RateLimit:  opts.RateLimit,
		Dbg:        opts.Dbg,
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("web server failed, %w", err)
	}
	return nil
}

// makeScorer makes an immutable scorer from the built-in defaults, optional yaml config and optional phrase files
func makeScorer(opts options) (*spamscore.Scorer, error) {
	cfg := spamscore.DefaultConfig()
	if opts.Classifier.Config != "" {
		if !fileutils.IsFile(opts.Classifier.Config) {
			return nil, fmt.Errorf("classifier config %s not found", opts.Classifier.Config)
		}
		fh, err := os.Open(opts.Classifier.Config)
		if err != nil {
			return nil, fmt.Errorf("can't open classifier config: %w", err)
		}
		defer fh.Close()
		if cfg, err = spamscore.LoadConfig(fh); err != nil {
			return nil, err
		}
	}

	var err error
	if cfg.Keywords, err = loadPhrasesFile(opts.Classifier.Keywords, cfg.Keywords); err != nil {
		return nil, fmt.Errorf("can't load keywords: %w", err)
	}
	if cfg.SuspiciousDomains, err = loadPhrasesFile(opts.Classifier.Domains, cfg.SuspiciousDomains); err != nil {
		return nil, fmt.Errorf("can't load suspicious domains: %w", err)
	}

	scorer := spamscore.NewScorer(cfg)
	log.Printf("[INFO] classifier config: %s", scorer.Config())
	return scorer, nil
}

// loadPhrasesFile returns phrases from the file, or defaults if the file name is empty
func loadPhrasesFile(fileName string, defaults []string) ([]string, error) {
	if fileName == "" {
		return defaults, nil
	}
	if !fileutils.IsFile(fileName) {
		return nil, fmt.Errorf("file %s not found", fileName)
	}
	fh, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("can't open %s: %w", fileName, err)
	}
	defer fh.Close()
	res, err := spamscore.LoadPhrases(fh)
	if err != nil {
		return nil, err
	}
	log.Printf("[DEBUG] loaded %d phrases from %s", len(res), fileName)
	return res, nil
}

// makeDB connects to the database, retrying a few times for a database starting alongside the service
func makeDB(ctx context.Context, opts options) (*engine.SQL, error) {
	if opts.GID == "" {
		return nil, errors.New("empty gid")
	}
	var db *engine.SQL
	err := repeater.NewDefault(dbConnectAttempts, dbConnectDelay).Do(ctx, func() error {
		var err error
		if db, err = engine.New(ctx, opts.DB, opts.GID); err != nil {
			log.Printf("[WARN] can't connect to db, %v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("can't connect to %s, %w", opts.DB, err)
	}
	if db == nil {
		return nil, fmt.Errorf("can't connect to %s, no attempts made", opts.DB)
	}
	log.Printf("[INFO] db %s connected, type %s, gid %s", opts.DB, db.Type(), db.GID())
	return db, nil
}

func makeChat(ctx context.Context, opts options, db *engine.SQL, scorer chat.Scorer, spamLogger chat.SpamLogger) (*chat.Service, error) {
	messages, err := storage.NewMessages(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("can't make messages store, %w", err)
	}
	state, err := storage.NewState(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("can't make state store, %w", err)
	}
	spam, err := storage.NewDetectedSpam(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("can't make detected spam store, %w", err)
	}
	return chat.New(chat.Opts{
		Scorer:     scorer,
		Messages:   messages,
		State:      state,
		Spam:       spam,
		SpamLogger: spamLogger,
		CacheSize:  opts.Cache.Size,
		CacheTTL:   opts.Cache.TTL,
	})
}

// makeSpamLogger creates spam logger to keep reports about rejected messages
// it writes json lines to the provided writer
func makeSpamLogger(wr io.Writer) chat.SpamLogger {
	return chat.SpamLoggerFunc(func(text string, res spamcheck.Result) {
		text = strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
		log.Printf("[DEBUG] spam message: %s", text)
		m := struct {
			TimeStamp string   `json:"ts"`
			Text      string   `json:"text"`
			Score     int      `json:"score"`
			Reasons   []string `json:"reasons"`
		}{
			TimeStamp: time.Now().In(time.Local).Format(time.RFC3339),
			Text:      text,
			Score:     res.Score,
			Reasons:   res.Reasons,
		}
		line, err := json.Marshal(&m)
		if err != nil {
			log.Printf("[WARN] can't marshal json, %v", err)
			return
		}
		if _, err := wr.Write(append(line, '\n')); err != nil {
			log.Printf("[WARN] can't write to log, %v", err)
		}
	})
}

// makeSpamLogWriter creates spam log writer to keep reports about rejected messages
// it parses options and makes lumberjack logger with rotation
func makeSpamLogWriter(opts options) (accessLog io.WriteCloser, err error) {
	if !opts.Logger.Enabled {
		return nopWriteCloser{io.Discard}, nil
	}

	maxSize, perr := parseSize(opts.Logger.MaxSize)
	if perr != nil {
		return nil, fmt.Errorf("can't parse logger MaxSize: %w", perr)
	}

	maxSize /= 1048576

	log.Printf("[INFO] logger enabled for %s, max size %dM", opts.Logger.FileName, maxSize)
	return &lumberjack.Logger{
		Filename:   opts.Logger.FileName,
		MaxSize:    int(maxSize), // in MB
		MaxBackups: opts.Logger.MaxBackups,
		Compress:   true,
		LocalTime:  true,
	}, nil
}

// parseSize parses size with optional k/m/g/t suffix, case-insensitive
func parseSize(inp string) (uint64, error) {
	if inp == "" {
		return 0, errors.New("empty value")
	}
	for i, sfx := range []string{"k", "m", "g", "t"} {
		if strings.HasSuffix(strings.ToLower(inp), sfx) {
			val, err := strconv.Atoi(inp[:len(inp)-1])
			if err != nil {
				return 0, fmt.Errorf("can't parse %s: %w", inp, err)
			}
			return uint64(float64(val) * math.Pow(float64(1024), float64(i+1))), nil
		}
	}
	return strconv.ParseUint(inp, 10, 64)
}

type nopWriteCloser struct{ io.Writer }

func (n nopWriteCloser) Close() error { return nil }

func setupLog(dbg bool, secrets ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	nonEmpty := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) > 0 {
		logOpts = append(logOpts, lgr.Secret(nonEmpty...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
