package config

import (
	"crypto/rsa"
	"encoding/base64"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"github.com/hosterlink/hosterlink-api/internal/utils"
)

const AppName = "hosterlink-api"

// Token issuance constants. The TTL is fixed: there is no refresh flow
// and no revocation list, so a token stays valid for the full window.
const (
	TokenIssuer   = "HosterLink"
	TokenAudience = "hosterlink-api"
	TokenTTL      = 180 * time.Minute
)

// Config holds all application configuration.
type Config struct {
	AppPort       string
	AppURL        string
	MongoURI      string
	MongoDatabase string
	TokenTTL      time.Duration
	RSAPrivateKey *rsa.PrivateKey
	RSAPublicKey  *rsa.PublicKey
}

// LoadConfig reads configuration from the environment (a local .env is
// honored when present) and parses the RSA signing keypair.
func LoadConfig() *Config {
	if err := godotenv.Load(); err == nil {
		utils.Logger.Debug("Loaded environment from .env")
	}

	appPort := os.Getenv("APP_PORT")
	if appPort == "" {
		utils.Logger.Fatal("APP_PORT env var is missing")
	}
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		utils.Logger.Fatal("APP_URL env var is missing")
	}
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		utils.Logger.Fatal("MONGO_URI env var is missing")
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		utils.Logger.Fatal("MONGO_DB env var is missing")
	}

	privateKeyPEM := decodeBase64Env("RSA_PRIVATE_KEY_BASE64")
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA private key")
	}

	publicKeyPEM := decodeBase64Env("RSA_PUBLIC_KEY_BASE64")
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to parse RSA public key")
	}

	return &Config{
		AppPort:       appPort,
		AppURL:        appURL,
		MongoURI:      mongoURI,
		MongoDatabase: mongoDB,
		TokenTTL:      TokenTTL,
		RSAPrivateKey: privateKey,
		RSAPublicKey:  publicKey,
	}
}

func decodeBase64Env(name string) []byte {
	val := os.Getenv(name)
	if val == "" {
		utils.Logger.Fatalf("%s env var is missing", name)
	}
	decoded, err := base64.StdEncoding.DecodeString(val)
	if err != nil {
		utils.Logger.WithError(err).Fatalf("Failed to decode %s", name)
	}
	return decoded
}
