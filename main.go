package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"admin-service/internal/authz"
	"admin-service/internal/config"
	"admin-service/internal/db"
	"admin-service/internal/handlers"
	"admin-service/internal/hooks"
	"admin-service/internal/identity"
	"admin-service/internal/middleware"
	"admin-service/internal/observability"
	"admin-service/internal/rabbitmq"
	"admin-service/internal/repositories"
	"admin-service/internal/telemetry"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if len(cfg.AdminEmails) == 0 {
		log.Fatalf("ADMIN_EMAILS is empty, no caller could ever be authorized")
	}

	shutdownTracing, err := observability.InitTracing(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.Environment)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownTracing(shutdownCtx)
		}()
	}

	database, err := db.Connect(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}

	directory, err := identity.NewFirebaseDirectory(ctx)
	if err != nil {
		log.Fatalf("failed to init identity directory: %v", err)
	}

	publisher := rabbitmq.NewPublisher(cfg.AMQPURL, cfg.AuditExchange)
	defer publisher.Close()
	log.Printf("audit publisher mode=%s", rabbitmq.PublisherMode(publisher))

	audit := telemetry.NewAuditEmitter(publisher, "audit.admin", cfg.ServiceName, cfg.Environment)

	userRepo := repositories.NewUserRepo(database)
	postRepo := repositories.NewPostRepo(database)
	vocabRepo := repositories.NewVocabularyRepo(database)
	convRepo := repositories.NewConversationRepo(database)
	banRepo := repositories.NewBanRepo(database)

	hook := hooks.NewAccountCreatedHook(userRepo)
	if cfg.AMQPURL != "" {
		consumer, err := rabbitmq.NewConsumer(cfg.AMQPURL, cfg.IdentityExchange, "admin-service.account-created", "account.created")
		if err != nil {
			log.Printf("account hook disabled: %v", err)
		} else {
			defer consumer.Close()
			go func() {
				if err := consumer.Consume(ctx, hook.Handle); err != nil {
					log.Printf("account hook consumer stopped: %v", err)
				}
			}()
		}
	} else {
		log.Printf("account hook disabled: empty amqp url")
	}

	adminHandler := handlers.NewAdminHandler(userRepo, postRepo, vocabRepo, convRepo, banRepo, directory, audit)
	policy := authz.NewAllowList(cfg.AdminEmails)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminAuth := middleware.AdminAuth(directory, policy)
	admin := router.Group("/admin", adminAuth)
	admin.DELETE("/users/:user_id", adminHandler.DeleteUserCompletely)
	admin.POST("/users/:user_id/ban", adminHandler.BanUser)
	admin.POST("/users/:user_id/unban", adminHandler.UnbanUser)
	admin.GET("/stats", adminHandler.GetAdminStats)
	admin.POST("/migrations/auth-users", adminHandler.MigrateAuthUsers)

	handlers.RegisterDebugRoutes(router, audit, cfg.DebugEndpoints)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
