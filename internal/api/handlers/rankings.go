package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/internal/validation"
)

// RankingRequest asks for the stored ranking of a titled document.
type RankingRequest struct {
	Title string `form:"title" json:"title" validate:"required,min=1,max=500"`
}

// RankingResponse carries a document's stored ranking.
type RankingResponse struct {
	Title   string       `json:"title"`
	Ranking []RankingRow `json:"ranking"`
}

// SetupRankings registers the ranking lookup route.
func SetupRankings(router *gin.Engine, log logging.Logger, svc Service, validator *validation.Validator) {
	router.GET("/api/v1/rankings", handleRanking(svc, log, validator))
}

func handleRanking(svc Service, log logging.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := RankingRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			log.Warn("could not parse ranking query", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{"failed to parse query parameters"})
			return
		}

		if err := validator.Validate(request); err != nil {
			log.Warn("could not validate ranking query", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
			return
		}

		ranking, err := svc.Lookup(c.Request.Context(), request.Title)
		if err != nil {
			log.Warn("ranking lookup failed", "title", request.Title, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, statusForError(err), []string{err.Error()})
			return
		}

		writeResponse(c, RankingResponse{
			Title:   request.Title,
			Ranking: toRankingRows(ranking),
		}, http.StatusOK, nil)
	}
}
