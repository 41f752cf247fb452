package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lumibelle/beauty-shop-backend/internal/cart"
	"github.com/lumibelle/beauty-shop-backend/internal/category"
	"github.com/lumibelle/beauty-shop-backend/internal/config"
	"github.com/lumibelle/beauty-shop-backend/internal/fulfillment"
	"github.com/lumibelle/beauty-shop-backend/internal/lead"
	"github.com/lumibelle/beauty-shop-backend/internal/order"
	"github.com/lumibelle/beauty-shop-backend/internal/product"
	"github.com/lumibelle/beauty-shop-backend/internal/user"
	"github.com/lumibelle/beauty-shop-backend/internal/wishlist"
	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(checkMiddleware)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	migrate(db)

	// user service is shared with the protected middleware below
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	productHandler := product.NewHandler(product.NewService(product.NewPostgresRepository(db)))
	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))
	leadHandler := lead.NewHandler(lead.NewService(lead.NewPostgresRepository(db)))

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo)
	cartHandler := cart.NewHandler(cartService)

	// optional fulfillment pipeline; the shop runs fine without a broker
	var notifier order.Notifier
	var amqpConn *amqp.Connection
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			fmt.Printf("warning: fulfillment broker unavailable: %v\n", err)
		} else {
			amqpConn = conn
			pub, err := fulfillment.NewPublisher(conn, cfg.OrderQueue)
			if err != nil {
				fmt.Printf("warning: fulfillment publisher not started: %v\n", err)
			} else {
				notifier = pub
			}
		}
	}
	if amqpConn != nil {
		defer amqpConn.Close()
	}

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cartService, notifier, cfg.WhatsAppPhone)
	orderHandler := order.NewHandler(orderService)

	if amqpConn != nil {
		consumer, err := fulfillment.NewConsumer(amqpConn, cfg.FulfillmentQueue, orderService)
		if err != nil {
			fmt.Printf("warning: fulfillment consumer not started: %v\n", err)
		} else if err := consumer.Start(); err != nil {
			fmt.Printf("warning: fulfillment consumer not started: %v\n", err)
		}
	}

	wishlistService := wishlist.NewService(wishlist.NewPostgresRepository(db))
	wishlistHandler := wishlist.NewHandler(wishlistService, cartService)

	// public surface
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	leadHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// websocket clients cannot set headers from the browser; accept the
		// token from the query string on upgrade requests
		TokenLookup: "header:Authorization,query:token",
		AuthScheme:  "Bearer",
	}))

	// protected surface
	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	wishlistHandler.RegisterProtectedRoutes(app)

	app.Listen(cfg.Addr)
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		panic("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func migrate(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
        "userId" SERIAL PRIMARY KEY,
        email TEXT UNIQUE NOT NULL,
        "displayName" TEXT NOT NULL DEFAULT '',
        phone TEXT NOT NULL DEFAULT '',
        "avatarPic" TEXT,
        "createdAt" TEXT,
        "updatedAt" TEXT
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS credentials (
        "userId" INT PRIMARY KEY,
        email TEXT UNIQUE NOT NULL,
        password TEXT NOT NULL
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cart_items (
        "userId" INT NOT NULL,
        "itemId" TEXT NOT NULL,
        title TEXT NOT NULL DEFAULT '',
        price numeric NOT NULL DEFAULT 0,
        image TEXT NOT NULL DEFAULT '',
        quantity INT NOT NULL DEFAULT 1,
        "productId" TEXT NOT NULL DEFAULT '',
        PRIMARY KEY ("userId", "itemId")
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS orders (
        "orderId" TEXT PRIMARY KEY,
        "userId" INT NOT NULL,
        items jsonb NOT NULL DEFAULT '[]',
        subtotal numeric NOT NULL DEFAULT 0,
        "shippingFee" numeric NOT NULL DEFAULT 0,
        total numeric NOT NULL DEFAULT 0,
        status TEXT NOT NULL DEFAULT 'pending',
        progress INT NOT NULL DEFAULT 0,
        "createdAt" TEXT,
        "estimatedDelivery" TEXT,
        "deliveryDate" TEXT,
        "trackingNumber" TEXT NOT NULL DEFAULT ''
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS wishlist_items (
        "userId" INT NOT NULL,
        "itemId" TEXT NOT NULL,
        title TEXT NOT NULL DEFAULT '',
        price numeric NOT NULL DEFAULT 0,
        images text[] NOT NULL DEFAULT '{}',
        "addedAt" TEXT,
        PRIMARY KEY ("userId", "itemId")
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS products (
        "productId" TEXT PRIMARY KEY,
        title TEXT NOT NULL DEFAULT '',
        price numeric NOT NULL DEFAULT 0,
        images text[] NOT NULL DEFAULT '{}',
        category TEXT NOT NULL DEFAULT '',
        description TEXT NOT NULL DEFAULT ''
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS categories (
        "categoryId" TEXT PRIMARY KEY,
        name TEXT NOT NULL DEFAULT '',
        image TEXT NOT NULL DEFAULT ''
    )`); err != nil {
		panic(err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS leads (
        "leadId" TEXT PRIMARY KEY,
        kind TEXT NOT NULL,
        name TEXT NOT NULL DEFAULT '',
        email TEXT NOT NULL DEFAULT '',
        phone TEXT NOT NULL DEFAULT '',
        message TEXT NOT NULL DEFAULT '',
        details jsonb NOT NULL DEFAULT '{}',
        "createdAt" TEXT
    )`); err != nil {
		panic(err)
	}
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
