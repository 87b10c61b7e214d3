package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDSN     string
	LogFile   string
	AMQPURL   string
	AMQPQueue string
}

func Load() Config {
	// .env is optional; a real environment variable always wins.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "storefront.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./storefront.log"
	}
	queue := os.Getenv("AMQP_QUEUE")
	if queue == "" {
		queue = "order_events"
	}

	cfg := Config{
		Port:      port,
		DBDSN:     dsn,
		LogFile:   logFile,
		AMQPURL:   os.Getenv("AMQP_URL"), // empty disables event publishing
		AMQPQueue: queue,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s AMQP_QUEUE=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AMQPQueue)
	return cfg
}
