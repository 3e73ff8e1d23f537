package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/connecthub/manexis/internal/app/controllers"
	"github.com/connecthub/manexis/internal/middleware"
	"github.com/connecthub/manexis/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	friendController *controllers.FriendController,
	postController *controllers.PostController,
	messageController *controllers.MessageController,
	settingsController *controllers.SettingsController,
	mediaController *controllers.MediaController,
	wsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Account endpoints reachable before email verification, so users can
		// still see who they are and manage their sessions
		authenticated.GET("/users/me", userController.GetMe)
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.POST("/auth/logout-all", authController.LogoutAll)
		authenticated.POST("/auth/change-password", authController.ChangePassword)
	}

	// Everything social requires a verified, active account
	verified := authenticated.Group("")
	verified.Use(authMiddleware.VerifiedOnly())
	{
		users := verified.Group("/users")
		{
			users.GET("/search", userController.Search)
			users.GET("/:id", userController.GetUser)
			users.GET("/:id/posts", postController.ListUserPosts)
			users.PUT("/me", userController.UpdateProfile)
			users.POST("/me/profile-photo", userController.UploadProfilePhoto)
			users.POST("/me/cover-photo", userController.UploadCoverPhoto)
		}

		friends := verified.Group("/friends")
		{
			friends.GET("", friendController.ListFriends)
			friends.POST("/requests", friendController.SendRequest)
			friends.GET("/requests/received", friendController.ListReceivedRequests)
			friends.GET("/requests/sent", friendController.ListSentRequests)
			friends.POST("/requests/:id/accept", friendController.AcceptRequest)
			friends.POST("/requests/:id/decline", friendController.DeclineRequest)
			friends.DELETE("/requests/:id", friendController.CancelRequest)
			friends.DELETE("/:id", friendController.RemoveFriend)
			friends.GET("/:id/status", friendController.GetRelationship)
			friends.GET("/:id/info", messageController.GetFriendInfo)
		}

		posts := verified.Group("/posts")
		{
			posts.POST("", postController.CreatePost)
			posts.GET("/feed", postController.GetFeed)
			posts.GET("/:id", postController.GetPost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/like", postController.LikePost)
			posts.DELETE("/:id/like", postController.UnlikePost)
			posts.POST("/:id/comments", postController.AddComment)
			posts.GET("/:id/comments", postController.ListComments)
			posts.DELETE("/:id/comments/:commentId", postController.DeleteComment)
		}

		conversations := verified.Group("/conversations")
		{
			conversations.POST("", messageController.CreateConversation)
			conversations.GET("", messageController.ListConversations)
			conversations.POST("/:id/messages", messageController.SendMessage)
			conversations.GET("/:id/messages", messageController.GetMessages)
			conversations.GET("/:id/ws", wsHandler.HandleConnection)
		}

		settings := verified.Group("/settings")
		{
			settings.GET("", settingsController.GetSettings)
			settings.PUT("", settingsController.UpdateSettings)
			settings.POST("/deactivate", settingsController.DeactivateAccount)
		}

		verified.GET("/media/*path", mediaController.ServeFile)
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
