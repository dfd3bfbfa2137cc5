package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/internal/validation"
)

const defaultDocumentsLimit = 20

// IngestRequest asks the pipeline to ingest one locator.
type IngestRequest struct {
	Locator string `json:"locator" validate:"required,locator"`
}

// IngestResponse is the receipt for a completed ingestion.
type IngestResponse struct {
	ReportID   string       `json:"report_id"`
	DocumentID int64        `json:"document_id"`
	Title      string       `json:"title"`
	Locator    string       `json:"locator"`
	TokenCount int          `json:"token_count"`
	IngestedAt time.Time    `json:"ingested_at"`
	Ranking    []RankingRow `json:"ranking"`
}

// ListDocumentsRequest bounds the recent-documents listing.
type ListDocumentsRequest struct {
	Limit int `form:"limit" validate:"min=0,max=100"`
}

// SetupDocuments registers the document routes.
func SetupDocuments(router *gin.Engine, log logging.Logger, svc Service, validator *validation.Validator) {
	router.POST("/api/v1/documents", handleIngest(svc, log, validator))
	router.GET("/api/v1/documents", handleListDocuments(svc, log, validator))
}

func handleIngest(svc Service, log logging.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := IngestRequest{}
		if err := c.ShouldBindJSON(&request); err != nil {
			log.Warn("could not parse ingest request body", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{"failed to parse request body"})
			return
		}

		if err := validator.Validate(request); err != nil {
			log.Warn("could not validate ingest request", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
			return
		}

		r, err := svc.Ingest(c.Request.Context(), request.Locator)
		if err != nil {
			log.Warn("ingest failed", "locator", request.Locator, "err", err.Error())
			c.Abort()
			writeResponse(c, nil, statusForError(err), []string{err.Error()})
			return
		}

		log.Info("document ingested", "locator", r.Locator, "title", r.Title, "tokens", r.TokenCount)
		writeResponse(c, IngestResponse{
			ReportID:   r.ID,
			DocumentID: r.DocID,
			Title:      r.Title,
			Locator:    r.Locator,
			TokenCount: r.TokenCount,
			IngestedAt: r.IngestedAt,
			Ranking:    toRankingRows(r.Ranking),
		}, http.StatusCreated, nil)
	}
}

func handleListDocuments(svc Service, log logging.Logger, validator *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		request := ListDocumentsRequest{}
		if err := c.ShouldBindQuery(&request); err != nil {
			log.Warn("could not parse documents query", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{"failed to parse query parameters"})
			return
		}
		if request.Limit == 0 {
			request.Limit = defaultDocumentsLimit
		}

		if err := validator.Validate(request); err != nil {
			log.Warn("could not validate documents query", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, http.StatusBadRequest, []string{err.Error()})
			return
		}

		docs, err := svc.Documents(c.Request.Context(), request.Limit)
		if err != nil {
			log.Error("listing documents failed", "err", err.Error())
			c.Abort()
			writeResponse(c, nil, statusForError(err), []string{err.Error()})
			return
		}

		writeResponse(c, toDocumentViews(docs), http.StatusOK, nil)
	}
}
