package main

import (
	"log"
	"os"

	"github.com/Rohan-debug788/SkillSwap/internal/cli"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
