package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Santos-dev-tech/beauty-express/internal/repository"
)

func newServiceHandler(t *testing.T) (*ServiceHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewServiceHandler(repository.NewServiceRepo(db)), mock
}

func TestCreateService(t *testing.T) {
	h, mock := newServiceHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO services")).
		WithArgs("Gel Manicure", "gel polish", uint32(45), uint32(3550)).
		WillReturnResult(sqlmock.NewResult(3, 1))

	c, rec := newContext(http.MethodPost, "/v1/services",
		`{"name":"Gel Manicure","description":"gel polish","duration_min":45,"price":35.50}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp serviceResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(3), resp.ID)
	assert.Equal(t, 35.50, resp.Price)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateServiceRejectsBadPrice(t *testing.T) {
	h, mock := newServiceHandler(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"name":"x"}`},
		{"negative price", `{"name":"x","duration_min":30,"price":-1}`},
		// A cent value past the storable range must 400, never truncate.
		{"price overflow", `{"name":"x","duration_min":30,"price":100000000}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext(http.MethodPost, "/v1/services", tc.body)
			require.NoError(t, h.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
	// No insert may have reached the database.
	require.NoError(t, mock.ExpectationsWereMet())
}
