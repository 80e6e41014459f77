package response

import (
	"github.com/user/rera-scraper/internal/entity"
)

type ScrapeResponse struct {
	Status  string                 `json:"status"`
	Records []entity.ProjectRecord `json:"records"`
	Summary entity.RunSummary      `json:"summary"`
}

type ProjectsResponse struct {
	Count    int                    `json:"count"`
	Projects []entity.ProjectRecord `json:"projects"`
}

type FailuresResponse struct {
	Count    int                    `json:"count"`
	Failures []*entity.FetchFailure `json:"failures"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
