package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KevinRabun/TruePulse-sub002/config"
	"github.com/KevinRabun/TruePulse-sub002/voting"
)

// voterIDString extracts the authenticated voter identity set by the JWT
// middleware. The identity never comes from the request body.
func voterIDString(c *gin.Context) (string, bool) {
	voterID, exists := c.Get("voter_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	id, ok := voterID.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return strconv.FormatUint(uint64(id), 10), true
}

// CastVote handles POST /vote. The response never contains the vote token.
func CastVote(c *gin.Context) {
	voterID, ok := voterIDString(c)
	if !ok {
		return
	}

	var input struct {
		PollID   uint `json:"poll_id" binding:"required"`
		ChoiceID uint `json:"choice_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receipt, err := voting.SubmitVote(config.DB, config.VoteTokenSalt, config.TallyMode,
		voterID, input.PollID, input.ChoiceID, time.Now())
	switch {
	case errors.Is(err, voting.ErrDuplicateVote):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already voted on this poll"})
	case errors.Is(err, voting.ErrPollClosed):
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll is not open for voting"})
	case errors.Is(err, voting.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Choice does not belong to this poll"})
	case err != nil:
		// Infrastructure fault. SubmitVote is idempotent, so the client may
		// safely retry the whole request.
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary failure, please retry"})
	default:
		c.JSON(http.StatusOK, gin.H{
			"accepted":  true,
			"poll_id":   receipt.PollID,
			"choice_id": receipt.ChoiceID,
		})
	}
}

// VoteStatus handles GET /polls/:poll_id/vote-status for the authenticated
// voter.
func VoteStatus(c *gin.Context) {
	voterID, ok := voterIDString(c)
	if !ok {
		return
	}
	pollID, ok := parsePollID(c)
	if !ok {
		return
	}

	hasVoted, err := voting.HasVoted(config.DB, config.VoteTokenSalt, voterID, pollID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary failure, please retry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"has_voted": hasVoted})
}
