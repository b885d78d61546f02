package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/km-arc/go-ioc/framework/console"
)

func main() {
	if err := console.New().Exec(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
