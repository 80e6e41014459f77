package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/rera-scraper/internal/entity"
	"github.com/user/rera-scraper/internal/repository"
)

var projectColumns = []string{"registration_number", "project_name", "promoter_name", "promoter_address", "gst_number"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestEnsureSchema(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS rera_projects.+CREATE TABLE IF NOT EXISTS fetch_failures`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, EnsureSchema(context.Background(), mock))
}

func TestSaveAllUpsertsInOneTransaction(t *testing.T) {
	mock := newMock(t)
	records := []entity.ProjectRecord{
		{RegistrationNumber: "RP/01/2024/00001", ProjectName: "Green Acres", PromoterName: "Acme", PromoterAddress: "Puri", GSTNumber: entity.NotFound},
		{RegistrationNumber: "RP/01/2024/00002", ProjectName: "Blue Bay", PromoterName: "Bay Co", PromoterAddress: "Cuttack", GSTNumber: "21AAAAA0002A1Z5"},
	}
	upsert := regexp.QuoteMeta("ON CONFLICT (registration_number) DO UPDATE SET")

	mock.ExpectBegin()
	for _, r := range records {
		mock.ExpectExec(upsert).
			WithArgs(r.RegistrationNumber, r.ProjectName, r.PromoterName, r.PromoterAddress, r.GSTNumber).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, NewProjectRepo(mock).SaveAll(context.Background(), records))
}

func TestSaveAllOverwritesExistingRegistration(t *testing.T) {
	mock := newMock(t)
	rec := entity.ProjectRecord{RegistrationNumber: "RP/01/2024/00001", ProjectName: "Green Acres II", PromoterName: "Acme", PromoterAddress: "Puri", GSTNumber: "NEW"}

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT INTO rera_projects.+ON CONFLICT \(registration_number\) DO UPDATE SET.+gst_number = EXCLUDED\.gst_number`).
		WithArgs(rec.RegistrationNumber, rec.ProjectName, rec.PromoterName, rec.PromoterAddress, rec.GSTNumber).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	require.NoError(t, NewProjectRepo(mock).SaveAll(context.Background(), []entity.ProjectRecord{rec}))
}

func TestSaveAllRollsBackOnError(t *testing.T) {
	mock := newMock(t)
	rec := entity.ProjectRecord{RegistrationNumber: "RP/1"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO rera_projects")).
		WithArgs(rec.RegistrationNumber, rec.ProjectName, rec.PromoterName, rec.PromoterAddress, rec.GSTNumber).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := NewProjectRepo(mock).SaveAll(context.Background(), []entity.ProjectRecord{rec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RP/1")
}

func TestSaveAllEmptyIsNoop(t *testing.T) {
	mock := newMock(t)
	require.NoError(t, NewProjectRepo(mock).SaveAll(context.Background(), nil))
}

func TestListProjects(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(`(?s)FROM rera_projects\s+ORDER BY registration_number\s+LIMIT \$1`).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(projectColumns).
			AddRow("RP/1", "One", "P1", "A1", "G1").
			AddRow("RP/2", "Two", "P2", "A2", entity.NotFound))

	got, err := NewProjectRepo(mock).List(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "RP/1", got[0].RegistrationNumber)
	assert.Equal(t, entity.NotFound, got[1].GSTNumber)
}

func TestFindByRegistration(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE registration_number = $1")).
		WithArgs("RP/01/2024/00001").
		WillReturnRows(pgxmock.NewRows(projectColumns).
			AddRow("RP/01/2024/00001", "Green Acres", "Acme", "Puri", "G1"))

	got, err := NewProjectRepo(mock).FindByRegistration(context.Background(), "RP/01/2024/00001")
	require.NoError(t, err)
	assert.Equal(t, "Green Acres", got.ProjectName)
}

func TestFindByRegistrationNotFound(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE registration_number = $1")).
		WithArgs("RP/99").
		WillReturnError(pgx.ErrNoRows)

	got, err := NewProjectRepo(mock).FindByRegistration(context.Background(), "RP/99")
	assert.ErrorIs(t, err, repository.ErrProjectNotFound)
	assert.Nil(t, got)
}

func TestSaveFailureReturnsID(t *testing.T) {
	mock := newMock(t)
	f := &entity.FetchFailure{
		URL:            "https://rera.odisha.gov.in/projects/detail/3",
		Kind:           entity.PageKindDetail,
		Reason:         "unexpected status code 404",
		HTTPStatusCode: 404,
		AttemptedAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	mock.ExpectQuery(`(?s)INSERT INTO fetch_failures.+RETURNING id`).
		WithArgs(f.URL, f.Kind, f.Reason, f.HTTPStatusCode, f.AttemptedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(42)))

	require.NoError(t, NewFailureRepo(mock).Save(context.Background(), f))
	assert.Equal(t, int64(42), f.ID)
}

func TestRecentFailuresNewestFirst(t *testing.T) {
	mock := newMock(t)
	newer := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)
	mock.ExpectQuery(`(?s)FROM fetch_failures\s+ORDER BY attempted_at DESC\s+LIMIT \$1`).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows([]string{"id", "url", "kind", "reason", "http_status_code", "attempted_at"}).
			AddRow(int64(2), "https://x/list", entity.PageKindList, "timeout", 0, newer).
			AddRow(int64(1), "https://x/detail/1", entity.PageKindDetail, "unexpected status code 500", 500, older))

	got, err := NewFailureRepo(mock).Recent(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.True(t, got[0].AttemptedAt.After(got[1].AttemptedAt))
	assert.Equal(t, 500, got[1].HTTPStatusCode)
}

func TestRecentFailuresQueryError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM fetch_failures")).
		WithArgs(10).
		WillReturnError(errors.New("relation does not exist"))

	_, err := NewFailureRepo(mock).Recent(context.Background(), 10)
	assert.Error(t, err)
}
