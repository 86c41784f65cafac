package main

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/wichananm65/mill-store-backend/internal/address"
	"github.com/wichananm65/mill-store-backend/internal/auth"
	"github.com/wichananm65/mill-store-backend/internal/banner"
	"github.com/wichananm65/mill-store-backend/internal/booking"
	"github.com/wichananm65/mill-store-backend/internal/cart"
	"github.com/wichananm65/mill-store-backend/internal/category"
	"github.com/wichananm65/mill-store-backend/internal/config"
	"github.com/wichananm65/mill-store-backend/internal/contact"
	"github.com/wichananm65/mill-store-backend/internal/database"
	"github.com/wichananm65/mill-store-backend/internal/httpx"
	"github.com/wichananm65/mill-store-backend/internal/logging"
	"github.com/wichananm65/mill-store-backend/internal/order"
	"github.com/wichananm65/mill-store-backend/internal/otp"
	"github.com/wichananm65/mill-store-backend/internal/pricing"
	"github.com/wichananm65/mill-store-backend/internal/product"
	"github.com/wichananm65/mill-store-backend/internal/recommended"
	"github.com/wichananm65/mill-store-backend/internal/review"
	"github.com/wichananm65/mill-store-backend/internal/user"
	"github.com/wichananm65/mill-store-backend/internal/wallet"
	"github.com/wichananm65/mill-store-backend/internal/wishlist"
)

// repositories is the storage backing every service. orders and ranking are
// nil for in-memory storage, where they are built on top of other services.
type repositories struct {
	db         *sql.DB
	users      user.Repository
	addresses  address.Repository
	otps       otp.Store
	categories category.Repository
	products   product.Repository
	ranking    recommended.Repository
	banners    banner.Repository
	carts      cart.Repository
	coupons    pricing.Source
	orders     order.Repository
	reviews    review.Repository
	bookings   booking.Repository
	wishlist   wishlist.Repository
	wallet     wallet.Repository
	contact    contact.Repository
}

func newRepositories(db *sql.DB) repositories {
	if db != nil {
		return repositories{
			db:         db,
			users:      user.NewPostgresRepository(db),
			addresses:  address.NewPostgresRepository(db),
			otps:       otp.NewPostgresStore(db),
			categories: category.NewPostgresRepository(db),
			products:   product.NewPostgresRepository(db),
			ranking:    recommended.NewPostgresRepository(db),
			banners:    banner.NewPostgresRepository(db),
			carts:      cart.NewPostgresRepository(db),
			coupons:    pricing.NewPostgresSource(db),
			orders:     order.NewPostgresRepository(db),
			reviews:    review.NewPostgresRepository(db),
			bookings:   booking.NewPostgresRepository(db),
			wishlist:   wishlist.NewPostgresRepository(db),
			wallet:     wallet.NewPostgresRepository(db),
			contact:    contact.NewPostgresRepository(db),
		}
	}

	cats, products := database.SeedCatalog()
	users := user.NewInMemoryRepository(nil)
	return repositories{
		users:      users,
		addresses:  address.NewInMemoryRepository(nil),
		otps:       otp.NewInMemoryStore(),
		categories: category.NewInMemoryRepository(cats),
		products:   product.NewInMemoryRepository(products),
		banners:    banner.NewInMemoryRepository(database.SeedBanners()),
		carts:      cart.NewInMemoryRepository(nil),
		reviews:    review.NewInMemoryRepository(),
		bookings:   booking.NewInMemoryRepository(nil),
		wishlist:   wishlist.NewInMemoryRepository(),
		wallet:     wallet.NewInMemoryRepository(users),
		contact:    contact.NewInMemoryRepository(),
	}
}

func newApp(cfg config.Config, log *logrus.Logger, repos repositories) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: httpx.ErrorHandler})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(logging.Middleware(log))

	addressService := address.NewService(repos.addresses)
	userService := user.NewService(repos.users, addressService)
	productService := product.NewService(repos.products)
	coupons := pricing.NewCatalog(repos.coupons)
	cartService := cart.NewService(repos.carts, productService, coupons, cfg.DeliveryCharge)
	walletService := wallet.NewService(repos.wallet)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	orderRepo := repos.orders
	if orderRepo == nil {
		orderRepo = order.NewInMemoryRepository(cartService)
	}
	orderService := order.NewService(orderRepo, cartService, coupons, addressService, walletService, order.Options{
		TaxRate:     cfg.TaxRate,
		Delivery:    cfg.DeliveryCharge,
		RewardCoins: cfg.OrderRewardCoins,
	}, log)

	otpHandler := otp.NewHandler(otp.NewService(userService, addressService, repos.otps, tokens, otp.Options{
		TTL:         cfg.OTPTTL,
		Length:      cfg.OTPLength,
		MaxAttempts: cfg.OTPMaxAttempts,
		Expose:      cfg.ExposeOTP,
	}))
	ranking := repos.ranking
	if ranking == nil {
		ranking = recommended.NewInMemoryRepository(productService)
	}

	reviewHandler := review.NewHandler(review.NewService(repos.reviews, productService, userService))

	app.Get("/health", func(c *fiber.Ctx) error {
		if repos.db != nil {
			if err := repos.db.PingContext(c.UserContext()); err != nil {
				logging.FromCtx(c).WithError(err).Error("health check failed")
				return httpx.Fail(c, fiber.StatusServiceUnavailable, "database unavailable")
			}
		}
		return httpx.OK(c, fiber.Map{"status": "ok"})
	})
	app.Static("/uploads", cfg.UploadDir)

	otpHandler.RegisterPublicRoutes(app)
	recommended.NewHandler(recommended.NewService(ranking, productService)).RegisterPublicRoutes(app)
	product.NewHandler(productService).RegisterPublicRoutes(app)
	banner.NewHandler(banner.NewService(repos.banners)).RegisterPublicRoutes(app)
	category.NewHandler(category.NewService(repos.categories)).RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	contact.NewHandler(contact.NewService(repos.contact)).RegisterPublicRoutes(app)

	app.Use(auth.Middleware(cfg.JWTSecret))

	user.NewHandler(userService, cfg.UploadDir).RegisterProtectedRoutes(app)
	address.NewHandler(addressService).RegisterProtectedRoutes(app)
	cart.NewHandler(cartService).RegisterProtectedRoutes(app)
	order.NewHandler(orderService).RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)
	booking.NewHandler(booking.NewService(repos.bookings)).RegisterProtectedRoutes(app)
	wishlist.NewHandler(wishlist.NewService(repos.wishlist, productService)).RegisterProtectedRoutes(app)
	wallet.NewHandler(walletService).RegisterProtectedRoutes(app)

	return app
}
