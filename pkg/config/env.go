package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Env holds infrastructure settings taken from the process environment.
type Env struct {
	DatabaseURL string // DATABASE_URL, enables the invoice ledger
	S3Bucket    string // S3_BUCKET, enables publishing rendered PDFs
	S3Prefix    string // S3_PREFIX
	AWSRegion   string // AWS_REGION
	ListenAddr  string // LISTEN_ADDR
	LogLevel    string // LOG_LEVEL
}

// LoadEnv reads the given .env files into the environment (missing files are ignored,
// variables already set win) and returns the resulting settings.
func LoadEnv(files ...string) (Env, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Env{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Env{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Prefix:    env("S3_PREFIX", "invoices"),
		AWSRegion:   env("AWS_REGION", "eu-central-1"),
		ListenAddr:  env("LISTEN_ADDR", ":8080"),
		LogLevel:    env("LOG_LEVEL", "info"),
	}, nil
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
