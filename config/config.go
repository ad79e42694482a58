package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	SecretKey   []byte
	Port        string
	CORSOrigin  string
	UPIAddress  string
	UPIMerchant string
)

func Init() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		log.Fatal("JWT secret key not set")
	}
	SecretKey = []byte(secret)

	Port = getEnv("PORT", ":8000")
	CORSOrigin = getEnv("CORS_ORIGIN", "http://localhost:5173")
	UPIAddress = getEnv("UPI_VPA", "merchant@upi")
	UPIMerchant = getEnv("UPI_MERCHANT_NAME", "Restaurant")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
