package main

import (
	"github.com/baepo-cloud/baepo-wsmaster/internal/ctlcmd"
	_ "github.com/joho/godotenv/autoload"
	"os"
)

func main() {
	if err := ctlcmd.Execute(); err != nil {
		os.Exit(1)
	}
}
