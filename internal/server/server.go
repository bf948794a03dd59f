// Package server wires the HTTP surface: routing, middleware, auth, and the
// request handlers.
package server

import (
	"strconv"
	"strings"
	"time"

	"devconnect/internal/cache"
	"devconnect/internal/config"
	"devconnect/internal/middleware"
	"devconnect/internal/models"
	"devconnect/internal/repository"
	"devconnect/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	tokenIssuer   = "devconnect-api"
	tokenAudience = "devconnect-client"
)

// Server bundles the Fiber app with its dependencies.
type Server struct {
	App        *fiber.App
	Config     *config.Config
	DB         *gorm.DB
	prometheus *fiberprometheus.FiberPrometheus

	users    repository.UserRepository
	profiles *service.ProfileService
	posts    *service.PostService
}

// NewServer builds a fully wired server including the Prometheus HTTP
// collector. Production entry point.
func NewServer(cfg *config.Config, db *gorm.DB) *Server {
	s := NewServerWithDeps(cfg, db)
	s.prometheus = middleware.InitMetrics("devconnect")
	return s
}

// NewServerWithDeps builds the server without registering Prometheus
// collectors, so multiple instances can coexist in one process. Used by
// tests.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "devconnect",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)

	return &Server{
		App:      app,
		Config:   cfg,
		DB:       db,
		users:    userRepo,
		profiles: service.NewProfileService(profileRepo, userRepo),
		posts:    service.NewPostService(postRepo),
	}
}

// SetupMiddleware installs the global middleware chain. Order matters:
// request id and context propagation run before logging so every log line
// carries them.
func (s *Server) SetupMiddleware() {
	s.App.Use(recover.New())
	s.App.Use(requestid.New())
	s.App.Use(middleware.ContextMiddleware())

	if s.prometheus != nil {
		s.prometheus.RegisterAt(s.App, "/metrics")
		s.App.Use(middleware.MetricsMiddleware(s.prometheus))
	}

	s.App.Use(helmet.New())
	s.App.Use(middleware.TracingMiddleware())
	s.App.Use(middleware.StructuredLogger())

	s.App.Use(cors.New(cors.Config{
		AllowOrigins: s.Config.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Coarse in-process limiter on top of the Redis-backed per-route limits.
	s.App.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
	}))
}

// SetupRoutes registers the API routes. Specific paths are registered before
// parameterized ones so /posts/like/:id never matches /posts/:id.
func (s *Server) SetupRoutes() {
	s.App.Get("/health/live", s.LivenessCheck)
	s.App.Get("/health/ready", s.ReadinessCheck)

	api := s.App.Group("/api")
	rdb := cache.GetClient()

	users := api.Group("/users")
	users.Post("/register", middleware.RateLimit(rdb, 10, time.Minute, "register"), s.Register)
	users.Post("/login", middleware.RateLimit(rdb, 20, time.Minute, "login"), s.Login)
	users.Get("/current", s.AuthRequired(), s.CurrentUser)

	profile := api.Group("/profile")
	profile.Get("/all", s.ListProfiles)
	profile.Get("/handle/:handle", s.GetProfileByHandle)
	profile.Get("/user/:user_id", s.GetProfileByUser)
	profile.Post("/experience", s.AuthRequired(), s.AddExperience)
	profile.Delete("/experience/:exp_id", s.AuthRequired(), s.DeleteExperience)
	profile.Post("/education", s.AuthRequired(), s.AddEducation)
	profile.Delete("/education/:edu_id", s.AuthRequired(), s.DeleteEducation)
	profile.Get("/", s.AuthRequired(), s.GetOwnProfile)
	profile.Post("/", s.AuthRequired(), s.UpsertProfile)
	profile.Delete("/", s.AuthRequired(), s.DeleteAccount)

	posts := api.Group("/posts")
	posts.Post("/like/:id", s.AuthRequired(), s.LikePost)
	posts.Post("/unlike/:id", s.AuthRequired(), s.UnlikePost)
	posts.Post("/comment/:id", s.AuthRequired(), s.AddComment)
	posts.Delete("/comment/:id/:comment_id", s.AuthRequired(), s.DeleteComment)
	posts.Get("/", s.ListPosts)
	posts.Post("/", s.AuthRequired(), middleware.RateLimit(rdb, 30, time.Minute, "create_post"), s.CreatePost)
	posts.Get("/:id", s.GetPost)
	posts.Delete("/:id", s.AuthRequired(), s.DeletePost)
}

// AuthRequired validates the Bearer token and stores the caller's user id in
// c.Locals("userID").
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User not authorized"))
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.Config.JWTSecret), nil
		},
			jwt.WithIssuer(tokenIssuer),
			jwt.WithAudience(tokenAudience),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User not authorized"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User not authorized"))
		}
		sub, err := claims.GetSubject()
		if err != nil || sub == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User not authorized"))
		}
		id, err := strconv.ParseUint(sub, 10, 64)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("User not authorized"))
		}

		c.Locals("userID", uint(id))
		return c.Next()
	}
}

// LivenessCheck reports that the process is up.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ReadinessCheck reports whether the database is reachable.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	sqlDB, err := s.DB.DB()
	if err != nil || sqlDB.PingContext(c.UserContext()) != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

// Start listens on the configured port.
func (s *Server) Start() error {
	return s.App.Listen(":" + s.Config.Port)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.App.ShutdownWithTimeout(10 * time.Second)
}
