package repository

import "github.com/user/rera-scraper/internal/entity"

// RecordWriter persists a run's records to a file, replacing any previous content.
type RecordWriter interface {
	Write(path string, records []entity.ProjectRecord) error
}

// RecordPresenter shows a run's records to the operator.
type RecordPresenter interface {
	Render(records []entity.ProjectRecord)
	Saved(path string)
}
