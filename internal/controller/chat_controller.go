package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ndthang/edubot/internal/dto"
	"github.com/ndthang/edubot/internal/middleware"
	"github.com/ndthang/edubot/internal/service"
	"github.com/rs/zerolog/log"
)

type ChatController struct {
	chatService service.ChatService
}

func NewChatController(chatService service.ChatService) *ChatController {
	return &ChatController{chatService: chatService}
}

// SendMessage godoc
// @Summary Send a message; omit chatId to start a new conversation
// @Tags Chat
// @Accept json
// @Produce json
// @Param body body dto.SendMessageDTO true "Message and optional conversation id"
// @Success 200 {object} dto.SendMessageResponseDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /chat [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	var req dto.SendMessageDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.chatService.SendMessage(ctx.Request.Context(), middleware.CurrentUserID(ctx), req)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Conversation not found"})
			return
		}
		log.Error().Err(err).Msg("SendMessage: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to send message"})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// NewConversation godoc
// @Summary Start an empty conversation
// @Tags Chat
// @Produce json
// @Success 201 {object} dto.ConversationSummaryDTO
// @Security BearerAuth
// @Router /chat/new [post]
func (c *ChatController) NewConversation(ctx *gin.Context) {
	conversation, err := c.chatService.NewConversation(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create conversation"})
		return
	}
	ctx.JSON(http.StatusCreated, conversation)
}

// GetHistory godoc
// @Summary List the user's conversations, most recent first
// @Tags Chat
// @Produce json
// @Success 200 {array} dto.ConversationSummaryDTO
// @Security BearerAuth
// @Router /chat/history [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
	history, err := c.chatService.GetHistory(middleware.CurrentUserID(ctx))
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve chat history"})
		return
	}
	ctx.JSON(http.StatusOK, history)
}

// GetConversation godoc
// @Summary Get one conversation with all messages
// @Tags Chat
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} dto.ConversationDTO
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /chat/c/{id} [get]
func (c *ChatController) GetConversation(ctx *gin.Context) {
	conversation, err := c.chatService.GetConversation(middleware.CurrentUserID(ctx), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Conversation not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve conversation"})
		return
	}
	ctx.JSON(http.StatusOK, conversation)
}

// DeleteConversation godoc
// @Summary Delete one conversation
// @Tags Chat
// @Produce json
// @Param id path string true "Conversation ID"
// @Success 200 {object} dto.MessageResponse
// @Security BearerAuth
// @Router /chat/c/{id} [delete]
func (c *ChatController) DeleteConversation(ctx *gin.Context) {
	if err := c.chatService.DeleteConversation(middleware.CurrentUserID(ctx), ctx.Param("id")); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to delete conversation"})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Conversation deleted"})
}
