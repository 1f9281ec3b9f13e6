// config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	LogLevel    string
	MongoURI    string
	MongoDBName string
	AuthURL     string
	RabbitURL   string
	Port        string
}

// Load lee la configuración del entorno. Si existe un archivo .env se carga
// primero; las variables ya definidas en el entorno tienen prioridad.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		MongoURI:    getEnv("MONGO_URI", "mongodb://host.docker.internal:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "fulfillment_db"),
		AuthURL:     getEnv("AUTH_SERVICE_URL", "http://host.docker.internal:3000"),
		RabbitURL:   getEnv("RABBIT_URL", "amqp://host.docker.internal"),
		Port:        getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
