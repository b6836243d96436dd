package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"boardrent-backend/internal/catalog"
	"boardrent-backend/internal/config"
	"boardrent-backend/internal/domain"
	"boardrent-backend/internal/logger"
	"boardrent-backend/internal/security"
	"boardrent-backend/internal/service"
	"boardrent-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting board game rental storefront...", "storage", cfg.Storage.Type, "log_level", cfg.Log.Level)

	gateway, err := openGateway(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer gateway.Close()

	ctx := context.Background()

	catalogSvc := catalog.NewService(cfg.Catalog.Seed)
	logger.Info("Mock catalog loaded", "games", len(catalogSvc.Games()))

	cartSvc := service.NewCartService(ctx, gateway)
	orderSvc := service.NewOrderService(ctx, gateway)
	notifier := service.NewIdentityNotifier(cartSvc, orderSvc)
	checkoutSvc := service.NewCheckoutService(cartSvc, orderSvc)

	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, sessionExpiry(cfg))
	authSvc := service.NewAuthService(ctx, gateway, tokens, notifier, cfg.Auth.TestEmail, cfg.Auth.TestCode)

	runDemoSession(ctx, cfg, catalogSvc, cartSvc, orderSvc, checkoutSvc, authSvc)
}

// runDemoSession walks one scripted customer session end to end:
// login, browse, fill the cart, check out, pay.
func runDemoSession(
	ctx context.Context,
	cfg *config.Config,
	catalogSvc *catalog.Service,
	cartSvc service.CartService,
	orderSvc service.OrderService,
	checkoutSvc service.CheckoutService,
	authSvc service.AuthService,
) {
	user, _, err := authSvc.Login(ctx, cfg.Auth.TestEmail, cfg.Auth.TestCode)
	if err != nil {
		logger.Error("Demo login failed", "error", err)
		return
	}
	logger.Info("Logged in", "email", user.Email)

	games := catalogSvc.Games()
	if len(games) < 2 {
		logger.Error("Catalog too small for demo")
		return
	}

	_ = cartSvc.AddToCart(ctx, games[0], domain.DurationWeek)
	_ = cartSvc.AddToCart(ctx, games[0], domain.DurationWeek)
	_ = cartSvc.AddToCart(ctx, games[1], domain.DurationMonth)
	logger.Info("Cart filled",
		"lines", len(cartSvc.Lines()),
		"total_amount", cartSvc.TotalAmount(),
		"total_count", cartSvc.TotalCount())

	var lineIDs []uuid.UUID
	for _, line := range cartSvc.Lines() {
		lineIDs = append(lineIDs, line.ID)
	}

	order, err := checkoutSvc.Checkout(ctx, lineIDs)
	if err != nil {
		logger.Error("Checkout failed", "error", err)
		return
	}
	logger.Info("Checked out",
		"order_number", order.OrderNumber,
		"total_price", order.TotalPrice(),
		"cart_lines_left", len(cartSvc.Lines()))

	paid := orderSvc.PayOrders(ctx, []uuid.UUID{order.ID})
	logger.Info("Payment simulated", "orders_paid", paid)

	for _, o := range orderSvc.Orders() {
		logger.Info("Order on file", "order_number", o.OrderNumber, "status", string(o.Status), "total", o.TotalPrice())
	}
}

func sessionExpiry(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Auth.SessionExpiryMinute) * time.Minute
}

// openGateway builds the persistence gateway selected by configuration
func openGateway(cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Storage.Type {
	case "memory":
		return storage.NewMemoryGateway(), nil
	case "sqlite":
		return storage.NewSQLiteGateway(cfg.Storage.Path)
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}
		g := storage.NewPostgresGateway(db)
		if err := g.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
		return g, nil
	default:
		return storage.NewFileGateway(cfg.Storage.Dir)
	}
}
