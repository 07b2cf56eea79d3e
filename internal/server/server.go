package server

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/breddit-app/backend/internal/database"
	"github.com/breddit-app/backend/internal/handlers"
	"github.com/breddit-app/backend/internal/middleware"
)

type Server struct {
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	db := database.New()
	handler := handlers.NewHandler(db.GetDB())

	newServer := &Server{
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("Server starting on port %s\n", port)

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.db.Health())
	})

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads. Optional auth so vote states can be annotated
		// for logged-in readers.
		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware())
		{
			public.GET("/posts", s.handler.Post.GetPosts)
			public.GET("/posts/:id", s.handler.Post.GetPost)
			public.GET("/posts/:id/comments", s.handler.Comment.GetComments)

			public.GET("/users/:id", s.handler.User.GetUserProfile)
			public.GET("/users/:id/comments", s.handler.Comment.GetUserComments)

			public.GET("/communities", s.handler.Community.GetCommunities)
			public.GET("/communities/:name", s.handler.Community.GetCommunity)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/me", s.handler.Auth.GetMe)
			protected.PUT("/users/:id", s.handler.User.UpdateUserProfile)

			protected.POST("/posts", s.handler.Post.CreatePost)
			protected.PUT("/posts/:id", s.handler.Post.UpdatePost)
			protected.DELETE("/posts/:id", s.handler.Post.DeletePost)
			protected.POST("/posts/:id/vote", s.handler.Post.VotePost)
			protected.DELETE("/posts/:id/vote", s.handler.Post.UnvotePost)

			protected.POST("/posts/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/comments/:commentId/vote", s.handler.Comment.VoteComment)
			protected.DELETE("/comments/:commentId/vote", s.handler.Comment.UnvoteComment)

			protected.POST("/communities", s.handler.Community.CreateCommunity)
			protected.POST("/communities/:name/join", s.handler.Community.JoinCommunity)
			protected.DELETE("/communities/:name", s.handler.Community.DeleteCommunity)
			protected.PUT("/communities/:name/logo", s.handler.Community.UpdateCommunityLogo)
			protected.PUT("/communities/:name/banner", s.handler.Community.UpdateCommunityBanner)
		}
	}

	return r
}
