package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/duwuzhou/article-cms/config"
	"github.com/duwuzhou/article-cms/handlers"
	"github.com/duwuzhou/article-cms/helper"
	"github.com/duwuzhou/article-cms/middleware"
	"github.com/duwuzhou/article-cms/repositories"
	"github.com/duwuzhou/article-cms/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	tagRepo := repositories.NewTagRepository(db)
	articleRepo := repositories.NewArticleRepository(db, tagRepo)

	// Initialize services
	articleService := services.NewArticleService(articleRepo)
	tagService := services.NewTagService(tagRepo)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	articleHandler := handlers.NewArticleHandler(articleService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	authHandler := handlers.NewAuthHandler(httpHelper)

	// Rate limiter for gated routes
	limiter := middleware.NewRateLimiter(
		envFloatOr("RATE_LIMIT_RPS", 5),
		envIntOr("RATE_LIMIT_BURST", 10),
	)

	// Setup router
	router := gin.Default()

	// CORS middleware
	allowOrigin := os.Getenv("CORS_ALLOW_ORIGIN")
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", allowOrigin)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, X-Password")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	start := time.Now()
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(start).String(),
		})
	})

	// Auth
	router.POST("/auth/login", limiter.Middleware(httpHelper), authHandler.Login)

	// Articles: reads are public, mutations are password-gated and
	// rate-limited
	articles := router.Group("/articles")
	{
		articles.GET("", articleHandler.GetArticles)
		articles.GET("/:id", articleHandler.GetArticle)

		gated := articles.Group("")
		gated.Use(limiter.Middleware(httpHelper), middleware.AuthMiddleware(httpHelper))
		{
			gated.POST("", articleHandler.CreateArticle)
			gated.PUT("/:id", articleHandler.UpdateArticle)
			gated.DELETE("/:id", articleHandler.DeleteArticle)
		}
	}

	// Tags
	router.GET("/tags", tagHandler.GetTags)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
