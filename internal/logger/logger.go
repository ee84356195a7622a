// Package logger holds the process-wide zap logger. Development config
// (console encoding, debug level) is the default; set APP_ENV=production
// for JSON output at info level.
package logger

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger

func InitLogger() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("Failed to init logger: " + err.Error())
	}
}

func SyncLogger() {
	_ = Log.Sync()
}
