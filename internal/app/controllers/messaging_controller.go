package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stagehub/stagehub/internal/app/models/dto"
	"github.com/stagehub/stagehub/internal/app/services"
	"github.com/stagehub/stagehub/internal/middleware"
	"github.com/stagehub/stagehub/internal/pkg/apperrors"
)

// MessagingController handles private conversation operations
type MessagingController struct {
	messagingService services.MessagingService
	logger           zerolog.Logger
}

// NewMessagingController creates a new MessagingController
func NewMessagingController(messagingService services.MessagingService, logger zerolog.Logger) *MessagingController {
	return &MessagingController{
		messagingService: messagingService,
		logger:           logger,
	}
}

// CreateConversation opens a conversation with another user
// @Summary Open a conversation
// @Description Opens a conversation between the caller and another user. The pair is unordered; one conversation exists per pair.
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateConversationRequest true "The other participant"
// @Success 201 {object} dto.APIResponse{data=dto.CreateConversationResponse} "Conversation created"
// @Failure 400 {object} dto.ErrorResponse "Cannot converse with yourself"
// @Failure 404 {object} dto.ErrorResponse "Participant not found"
// @Failure 409 {object} dto.ErrorResponse "Conversation already exists"
// @Router /messaging/conversations [post]
func (c *MessagingController) CreateConversation(ctx *gin.Context) {
	var req dto.CreateConversationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	resp, err := c.messagingService.CreateConversation(ctx.Request.Context(), callerID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// ListConversations lists the caller's conversations
// @Summary List own conversations
// @Description Lists the caller's conversations with the other participant's identity
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ConversationResponse} "Conversations"
// @Router /messaging/conversations [get]
func (c *MessagingController) ListConversations(ctx *gin.Context) {
	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	resp, err := c.messagingService.ListConversations(ctx.Request.Context(), callerID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetMessages returns a conversation's history
// @Summary Get a conversation's messages
// @Description Returns the full message history in send order with an isSelf flag per message. Participants only.
// @Tags messaging
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Success 200 {object} dto.APIResponse{data=dto.ConversationMessagesResponse} "Messages"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /messaging/conversations/{id} [get]
func (c *MessagingController) GetMessages(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	resp, err := c.messagingService.GetMessages(ctx.Request.Context(), callerID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// SendMessage appends a message to a conversation
// @Summary Send a message
// @Description Appends a message to a conversation the caller participates in. Content is limited to 1000 characters.
// @Tags messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Conversation ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.APIResponse{data=dto.MessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Empty or too long content"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a participant"
// @Failure 404 {object} dto.ErrorResponse "Conversation not found"
// @Router /messaging/conversations/{id}/messages [post]
func (c *MessagingController) SendMessage(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	callerID, ok := middleware.CallerID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthorized)
		return
	}

	resp, err := c.messagingService.SendMessage(ctx.Request.Context(), callerID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}
