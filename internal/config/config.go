package config

import "os"

// Config holds environment-driven configuration.
type Config struct {
	Addr             string
	DatabaseURL      string
	JWTSecret        string
	WhatsAppPhone    string
	AMQPURL          string
	OrderQueue       string
	FulfillmentQueue string
}

// Load reads configuration from environment variables.
func Load() Config {
	addr := os.Getenv("SHOP_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	phone := os.Getenv("WHATSAPP_PHONE")
	if phone == "" {
		phone = "12033900003"
	}

	orderQueue := os.Getenv("ORDER_QUEUE")
	if orderQueue == "" {
		orderQueue = "order_created"
	}

	queue := os.Getenv("FULFILLMENT_QUEUE")
	if queue == "" {
		queue = "fulfillment_events"
	}

	return Config{
		Addr:             addr,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		WhatsAppPhone:    phone,
		AMQPURL:          os.Getenv("AMQP_URL"),
		OrderQueue:       orderQueue,
		FulfillmentQueue: queue,
	}
}
