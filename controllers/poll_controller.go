package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KevinRabun/TruePulse-sub002/config"
	"github.com/KevinRabun/TruePulse-sub002/models"
)

// requireAdmin loads the authenticated voter and checks the admin flag.
// Returns nil (and writes the response) when the caller is not an admin.
func requireAdmin(c *gin.Context) *models.Voter {
	voterID, exists := c.Get("voter_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil
	}

	var voter models.Voter
	if err := config.DB.First(&voter, voterID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Voter not found"})
		return nil
	}
	if !voter.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only admins can manage polls"})
		return nil
	}
	return &voter
}

func parsePollID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("poll_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid poll ID"})
		return 0, false
	}
	return uint(id), true
}

// CreatePoll handles poll creation by an admin. Poll records from the
// question-generation pipeline arrive through this same surface.
func CreatePoll(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}

	var input struct {
		Question string     `json:"question" binding:"required"`
		Choices  []string   `json:"choices" binding:"required,min=2"`
		OpensAt  *time.Time `json:"opens_at"`
		ClosesAt *time.Time `json:"closes_at"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.OpensAt != nil && input.ClosesAt != nil && !input.OpensAt.Before(*input.ClosesAt) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "opens_at must be before closes_at"})
		return
	}

	poll := models.Poll{
		Question: input.Question,
		IsActive: true,
		OpensAt:  input.OpensAt,
		ClosesAt: input.ClosesAt,
	}
	for _, text := range input.Choices {
		poll.Choices = append(poll.Choices, models.Choice{Text: text})
	}

	if err := config.DB.Create(&poll).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create poll"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Poll created successfully", "poll": poll})
}

// GetActivePolls lists polls currently open for voting.
func GetActivePolls(c *gin.Context) {
	now := time.Now()
	var polls []models.Poll
	err := config.DB.Preload("Choices").
		Where("is_active = ?", true).
		Where("opens_at IS NULL OR opens_at <= ?", now).
		Where("closes_at IS NULL OR closes_at > ?", now).
		Find(&polls).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch polls"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

// GetPollResults returns the per-choice tallies for a poll. In eventual
// tally mode the counters may trail the stored votes until the next recount.
func GetPollResults(c *gin.Context) {
	pollID, ok := parsePollID(c)
	if !ok {
		return
	}

	var poll models.Poll
	if err := config.DB.Preload("Choices").First(&poll, pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	var total uint
	results := make([]gin.H, 0, len(poll.Choices))
	for _, choice := range poll.Choices {
		total += choice.Votes
		results = append(results, gin.H{
			"choice_id": choice.ID,
			"text":      choice.Text,
			"votes":     choice.Votes,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"poll_id":     poll.ID,
		"question":    poll.Question,
		"results":     results,
		"total_votes": total,
	})
}

// DeactivatePoll closes a poll to further voting.
func DeactivatePoll(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}
	pollID, ok := parsePollID(c)
	if !ok {
		return
	}

	var poll models.Poll
	if err := config.DB.First(&poll, pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	if err := config.DB.Model(&poll).Update("is_active", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate poll"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll deactivated"})
}

// DeletePoll removes a poll and its choices. Vote records are kept: they
// hold no identity and deleting them is a data-retention decision, not a
// poll-management one.
func DeletePoll(c *gin.Context) {
	if requireAdmin(c) == nil {
		return
	}
	pollID, ok := parsePollID(c)
	if !ok {
		return
	}

	var poll models.Poll
	if err := config.DB.First(&poll, pollID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Poll not found"})
		return
	}

	if err := config.DB.Select("Choices").Delete(&poll).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete poll"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted"})
}
