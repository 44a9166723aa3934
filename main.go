// KeyBuddy is a desktop app for configuring keyboards.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"fyne.io/fyne/v2/app"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ErikKalkoken/keybuddy/internal/app/appearance"
	"github.com/ErikKalkoken/keybuddy/internal/app/localizer"
	"github.com/ErikKalkoken/keybuddy/internal/app/preferences"
	"github.com/ErikKalkoken/keybuddy/internal/app/settings"
	"github.com/ErikKalkoken/keybuddy/internal/app/storage"
	"github.com/ErikKalkoken/keybuddy/internal/app/ui"
	"github.com/ErikKalkoken/keybuddy/internal/config"
)

const (
	appID        = "io.github.erikkalkoken.keybuddy"
	mutexName    = "keybuddy"
	mutexTimeout = 250 * time.Millisecond
)

// defined flags
var (
	levelFlag     logLevelFlag
	logFileFlag   = flag.Bool("logfile", true, "Write logs to a file instead of the console")
	uninstallFlag = flag.Bool("uninstall", false, "Uninstalls the app by deleting all user files")
	showDirsFlag  = flag.Bool("show-dirs", false, "Show directories where user data is stored")
)

func init() {
	levelFlag.value = slog.LevelWarn
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()
	slog.SetLogLoggerLevel(levelFlag.value)
	fyneApp := app.NewWithID(appID)
	ad := newAppDirs(fyneApp)
	if *showDirsFlag {
		for _, s := range ad.describe() {
			fmt.Println(s)
		}
		return
	}
	if *uninstallFlag {
		fmt.Print("Are you sure you want to uninstall this app and delete all user files (y/N)?")
		var input string
		fmt.Scanln(&input)
		if strings.ToLower(input) == "y" {
			if err := ad.deleteAll(); err != nil {
				log.Fatal(err)
			}
			fmt.Println("App uninstalled")
		} else {
			fmt.Println("Aborted")
		}
		return
	}
	if *logFileFlag {
		fn, err := ad.initLogFile()
		if err != nil {
			log.Fatal(err)
		}
		log.SetOutput(&lumberjack.Logger{
			Filename:   fn,
			MaxSize:    50, // megabytes
			MaxBackups: 3,
		})
	}
	r, err := acquireSingleInstance(mutexName, mutexTimeout)
	if err != nil {
		log.Fatalf("Failed to start: %s", err)
	}
	defer r.Release()
	cfg, err := config.Load(ad.settings)
	if err != nil {
		log.Fatal(err)
	}

	var store settings.Store
	switch cfg.Store {
	case config.StoreSQLite:
		dsn, err := ad.initDSN()
		if err != nil {
			log.Fatal(err)
		}
		db, err := storage.InitDB(dsn)
		if err != nil {
			log.Fatalf("Failed to initialize database %s: %s", dsn, err)
		}
		defer db.Close()
		store = settings.NewDBStore(storage.New(db))
	default:
		store = settings.NewFyneStore(fyneApp.Preferences())
	}
	policy := settings.FireAndForget
	if cfg.StrictWrites {
		policy = settings.Strict
	}
	s := settings.NewWithPolicy(store, policy)
	setLogLevel(s, cfg)
	slog.Info("Starting app", "store", cfg.Store, "writePolicy", s.Policy())

	systemLocale := localizer.SystemLocale()
	loc, err := localizer.NewDefault(systemLocale)
	if err != nil {
		log.Fatalf("Failed to initialize translations: %s", err)
	}
	as := appearance.NewState(false)
	preferences.Restore(s, loc, as, systemLocale)
	appearance.NewTheme(as).Apply(fyneApp)

	panel := preferences.New(s, loc, as)
	mw := ui.NewMainWindow(fyneApp, panel, loc, as)
	mw.ShowAndRun()
}

// setLogLevel sets the log level from the first source defined:
// the command line flag, the config or the user settings.
func setLogLevel(s *settings.Settings, cfg config.Config) {
	if levelFlag.isSet {
		return
	}
	if cfg.LogLevel != "" {
		if err := levelFlag.Set(cfg.LogLevel); err != nil {
			slog.Warn("Ignoring invalid log level from config", "level", cfg.LogLevel)
		} else {
			slog.SetLogLoggerLevel(levelFlag.value)
			return
		}
	}
	slog.SetLogLoggerLevel(s.LogLevelSlog())
}
