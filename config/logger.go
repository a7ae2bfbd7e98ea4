package config

import (
	"github.com/MonkyMars/gecho"
)

var logger gecho.Logger

func InitializeLogger() *gecho.Logger {
	logLevel := gecho.ParseLogLevel(GetLogLevel())
	logger = *gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(true), gecho.WithLogLevel(logLevel)))
	return &logger
}

func GetLogger() *gecho.Logger {
	return &logger
}
