package handlers

import (
	"github.com/Rohan-debug788/SkillSwap/internal/middleware"
	"github.com/Rohan-debug788/SkillSwap/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *HandlerManager) History(c *gin.Context) {
	messages, err := h.Messages.History(c.Request.Context(), middleware.CurrentUserID(c), c.Param("userId"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, messages)
}

// MarkConversationRead goes through the gateway so the other side gets receipts.
func (h *HandlerManager) MarkConversationRead(c *gin.Context) {
	ids, err := h.Gateway.MarkConversationRead(c.Request.Context(), middleware.CurrentUserID(c), c.Param("userId"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, gin.H{"message": "Messages marked as read", "count": len(ids)})
}

func (h *HandlerManager) Presence(c *gin.Context) {
	utils.Success(c, h.Gateway.Presence(c.Request.Context(), c.Param("id")))
}
