package postgres

import (
	stderrors "errors"
	"testing"

	"pulse/internal/repository/interfaces"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockRepo(t *testing.T) (interfaces.CommentRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return NewCommentRepository(gdb), mock
}

func TestFindByCid(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "cid", "user_id", "text", "kind", "parent_id", "replies"}).
		AddRow(1, "abc12345", 7, "hello", "comment", "post0001", []byte(`["r1","r2"]`))
	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE cid = \$1`).
		WithArgs("abc12345", 1).
		WillReturnRows(rows)

	comment, err := repo.FindByCid("abc12345")
	require.NoError(t, err)
	assert.Equal(t, "abc12345", comment.Cid)
	assert.Equal(t, uint(7), comment.UserID)
	assert.Equal(t, []string{"r1", "r2"}, comment.Replies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCidNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "comments" WHERE cid = \$1`).
		WithArgs("missing1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByCid("missing1")
	assert.True(t, stderrors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByCid(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE cid = \$1`).
		WithArgs("abc12345").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByCid("abc12345"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCidsByUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"cid"}).AddRow("c1").AddRow("c2")
	mock.ExpectQuery(`SELECT "cid" FROM "comments" WHERE user_id = \$1`).
		WithArgs(7).
		WillReturnRows(rows)

	cids, err := repo.CidsByUser(7)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, cids)
	assert.NoError(t, mock.ExpectationsWereMet())
}
