package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/connecthub/manexis/internal/app/models/dto"
	"github.com/connecthub/manexis/internal/app/services"
	"github.com/connecthub/manexis/internal/middleware"
)

// PostController handles posts, the feed, likes and comments
type PostController struct {
	postService *services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

// CreatePost publishes a new post
// @Summary Create a post
// @Description Publishes a post with up to 500 characters of text and an optional image (max 2MB) with caption
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param content formData string true "Post text"
// @Param imageCaption formData string false "Caption for the attached image"
// @Param image formData file false "Image attachment"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse} "Created post"
// @Failure 400 {object} dto.ErrorResponse "Invalid content"
// @Failure 413 {object} dto.ErrorResponse "Image too large"
// @Router /posts [post]
func (c *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	// The image part is optional
	image, err := ctx.FormFile("image")
	if err != nil {
		image = nil
	}

	post, err := c.postService.CreatePost(ctx.Request.Context(), userID, &req, image)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userID", userID).Msg("Post creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(post))
}

// GetFeed returns a page of the caller's news feed
// @Summary Get the news feed
// @Description Returns the caller's and their friends' posts newest-first, 50 per page. Pass nextCursor as `before` for the next page.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param before query int false "Return posts with an ID below this cursor"
// @Success 200 {object} dto.APIResponse{data=dto.FeedResponse} "Feed page"
// @Router /posts/feed [get]
func (c *PostController) GetFeed(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	before, ok := queryID(ctx, "before")
	if !ok {
		return
	}

	feed, err := c.postService.GetFeed(ctx.Request.Context(), userID, before)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed))
}

// GetPost returns a single post
// @Summary Get a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse} "Post"
// @Failure 403 {object} dto.ErrorResponse "Not visible to the caller"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetPost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	post, err := c.postService.GetPost(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(post))
}

// DeletePost removes a post of the caller
// @Summary Delete a post
// @Description Only the author may delete a post; its likes and comments go with it
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [delete]
func (c *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.DeletePost(ctx.Request.Context(), userID, postID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Post deleted."))
}

// ListUserPosts returns a single author's posts
// @Summary List a user's posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Author's user ID"
// @Param before query int false "Return posts with an ID below this cursor"
// @Success 200 {object} dto.APIResponse{data=dto.FeedResponse} "Posts"
// @Failure 403 {object} dto.ErrorResponse "Not friends with the author"
// @Router /users/{id}/posts [get]
func (c *PostController) ListUserPosts(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	authorID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	before, ok := queryID(ctx, "before")
	if !ok {
		return
	}

	posts, err := c.postService.ListUserPosts(ctx.Request.Context(), userID, authorID, before)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(posts))
}

// LikePost likes a post
// @Summary Like a post
// @Description Records a like; liking an already-liked post changes nothing
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeStatusResponse} "Like state"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/like [post]
func (c *PostController) LikePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	status, err := c.postService.LikePost(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// UnlikePost removes a like
// @Summary Unlike a post
// @Description Removes the caller's like; unliking a never-liked post changes nothing
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.LikeStatusResponse} "Like state"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/like [delete]
func (c *PostController) UnlikePost(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	status, err := c.postService.UnlikePost(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(status))
}

// AddComment comments on a post
// @Summary Add a comment
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.AddCommentRequest true "Comment text"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse} "Created comment"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	comment, err := c.postService.AddComment(ctx.Request.Context(), userID, postID, req.Comment)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(comment))
}

// ListComments lists the comments of a post
// @Summary List comments
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CommentResponse} "Comments oldest-first"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	comments, err := c.postService.ListComments(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(comments))
}

// DeleteComment removes a comment
// @Summary Delete a comment
// @Description The comment author and the post author may both delete a comment
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Success 200 {object} dto.APIResponse "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Not allowed to delete this comment"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /posts/{id}/comments/{commentId} [delete]
func (c *PostController) DeleteComment(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	postID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(ctx, "commentId")
	if !ok {
		return
	}

	if err := c.postService.DeleteComment(ctx.Request.Context(), userID, postID, commentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Comment deleted."))
}
