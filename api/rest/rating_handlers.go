package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
)

const ratingsSheet = "Рейтинг"

type voteRequest struct {
	VoterID  int64  `json:"voter_id" binding:"required"`
	PlayerA  int64  `json:"player_a" binding:"required"`
	PlayerB  int64  `json:"player_b" binding:"required"`
	WinnerID *int64 `json:"winner_id"`
}

func (s *server) listRatings(c *gin.Context) {
	ratings, err := s.Ratings.CalculateRatings(c.Request.Context())
	if err != nil {
		s.logger.Error("calculate ratings failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not calculate ratings"})
		return
	}
	c.JSON(http.StatusOK, ratings)
}

// exportRatings отдаёт рейтинг файлом xlsx
func (s *server) exportRatings(c *gin.Context) {
	ratings, err := s.Ratings.CalculateRatings(c.Request.Context())
	if err != nil {
		s.logger.Error("calculate ratings failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not calculate ratings"})
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", ratingsSheet); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	headers := []string{"#", "ID", "Имя", "Фамилия", "Username", "Рейтинг"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ratingsSheet, cell, header)
	}
	for i, r := range ratings {
		row := i + 2
		_ = f.SetCellValue(ratingsSheet, fmt.Sprintf("A%d", row), i+1)
		_ = f.SetCellValue(ratingsSheet, fmt.Sprintf("B%d", row), r.ID)
		_ = f.SetCellValue(ratingsSheet, fmt.Sprintf("C%d", row), r.FirstName)
		_ = f.SetCellValue(ratingsSheet, fmt.Sprintf("D%d", row), r.LastName)
		_ = f.SetCellValue(ratingsSheet, fmt.Sprintf("E%d", row), r.Username)
		_ = f.SetCellValue(ratingsSheet, fmt.Sprintf("F%d", row), fmt.Sprintf("%.1f", r.Rating))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=ratings.xlsx")
	if err := f.Write(c.Writer); err != nil {
		s.logger.Error("write xlsx failed", "error", err)
	}
}

func (s *server) recordVote(c *gin.Context) {
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	vote, err := s.Ratings.RecordVote(c.Request.Context(), rating.Vote{
		VoterID:  req.VoterID,
		PlayerA:  req.PlayerA,
		PlayerB:  req.PlayerB,
		WinnerID: req.WinnerID,
	})
	switch {
	case errors.Is(err, rating.ErrInvalidVote), errors.Is(err, rating.ErrSamePlayer), errors.Is(err, rating.ErrWinnerNotInPair):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.logger.Error("record vote failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record vote"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": vote.ID})
}
