package handlers

import (
	"github.com/Rohan-debug788/SkillSwap/internal/middleware"
	"github.com/Rohan-debug788/SkillSwap/pkg/utils"
	"github.com/gin-gonic/gin"
)

type createRequestBody struct {
	RecipientID string `json:"recipientId"`
	Message     string `json:"message"`
}

func (h *HandlerManager) ListMatches(c *gin.Context) {
	matches, err := h.Matches.ListMatches(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, matches)
}

func (h *HandlerManager) PotentialMatches(c *gin.Context) {
	candidates, err := h.Matches.DiscoverPotentialMatches(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, candidates)
}

func (h *HandlerManager) MatchStatus(c *gin.Context) {
	status, err := h.Matches.GetStatus(c.Request.Context(), middleware.CurrentUserID(c), c.Param("userId"))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, status)
}

func (h *HandlerManager) IncomingRequests(c *gin.Context) {
	requests, err := h.Matches.ListIncomingRequests(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, requests)
}

func (h *HandlerManager) OutgoingRequests(c *gin.Context) {
	requests, err := h.Matches.ListOutgoingRequests(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, requests)
}

func (h *HandlerManager) CreateRequest(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	req, err := h.Matches.CreateRequest(c.Request.Context(), middleware.CurrentUserID(c), body.RecipientID, body.Message)
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Created(c, gin.H{"id": req.ID, "status": req.Status})
}

func (h *HandlerManager) AcceptRequest(c *gin.Context) {
	match, err := h.Matches.Accept(c.Request.Context(), c.Param("requestId"), middleware.CurrentUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, gin.H{"id": match.ID, "requestId": match.RequestID, "status": "matched"})
}

func (h *HandlerManager) DeclineRequest(c *gin.Context) {
	req, err := h.Matches.Decline(c.Request.Context(), c.Param("requestId"), middleware.CurrentUserID(c))
	if err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, gin.H{"id": req.ID, "status": req.Status})
}

func (h *HandlerManager) CancelRequest(c *gin.Context) {
	if err := h.Matches.Cancel(c.Request.Context(), c.Param("requestId"), middleware.CurrentUserID(c)); err != nil {
		utils.FromError(c, err)
		return
	}
	utils.Success(c, gin.H{"message": "Request cancelled successfully"})
}
