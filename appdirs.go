package main

import (
	"fmt"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	xappdirs "github.com/chasinglogic/appdirs"

	"github.com/ErikKalkoken/keybuddy/internal/config"
)

const (
	appName     = "keybuddy"
	logFileName = "keybuddy.log"
	dbFileName  = "settings.sqlite"
)

// appDirs are the local directories of the app.
//
// The Fyne preferences and the optional config file live in the settings directory.
// The settings database lives in the data directory and the rotated log files in the log directory.
type appDirs struct {
	data     string
	log      string
	settings string
}

func newAppDirs(fyneApp fyne.App) appDirs {
	ad := xappdirs.New(appName)
	return appDirs{
		data:     ad.UserData(),
		log:      ad.UserLog(),
		settings: fyneApp.Storage().RootURI().Path(),
	}
}

func (ad appDirs) configFile() string {
	return config.FilePath(ad.settings)
}

func (ad appDirs) dbFile() string {
	return filepath.Join(ad.data, dbFileName)
}

func (ad appDirs) logFile() string {
	return filepath.Join(ad.log, logFileName)
}

// describe returns the locations of the app's files for showing them to the user.
func (ad appDirs) describe() []string {
	return []string{
		"Settings: " + ad.settings,
		"Config file: " + ad.configFile(),
		"Settings database: " + ad.dbFile(),
		"Logs: " + ad.log,
	}
}

// deleteAll removes all directories of the app including their files.
func (ad appDirs) deleteAll() error {
	for _, p := range []string{ad.log, ad.data, ad.settings} {
		if p == "" {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", p)
	}
	return nil
}

// initLogFile creates the log directory and returns the path of the log file.
func (ad appDirs) initLogFile() (string, error) {
	if err := os.MkdirAll(ad.log, os.ModePerm); err != nil {
		return "", err
	}
	return ad.logFile(), nil
}

// initDSN creates the data directory and returns the DSN of the settings database.
func (ad appDirs) initDSN() (string, error) {
	if err := os.MkdirAll(ad.data, os.ModePerm); err != nil {
		return "", err
	}
	return "file:" + ad.dbFile(), nil
}
