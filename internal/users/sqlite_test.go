package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/akarpov87/budgetvault/internal/common"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE users (
  id            TEXT PRIMARY KEY,
  username      TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  q1_id         INTEGER NOT NULL,
  a1_hash       TEXT NOT NULL,
  q2_id         INTEGER NOT NULL,
  a2_hash       TEXT NOT NULL,
  q3_id         INTEGER NOT NULL,
  a3_hash       TEXT NOT NULL,
  created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`)
	require.NoError(t, err)
	return db
}

func sampleUser(username string) *User {
	return &User{
		ID:           "id-" + username,
		Username:     username,
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Answers: [3]SecurityAnswer{
			{QuestionID: 1, AnswerHash: "h1"},
			{QuestionID: 2, AnswerHash: "h2"},
			{QuestionID: 3, AnswerHash: "h3"},
		},
	}
}

func TestCreateAndGetByUsername(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	created, err := r.Create(ctx, sampleUser("alice"))
	require.NoError(t, err)

	got, err := r.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.PasswordHash, got.PasswordHash)
	assert.Equal(t, created.Answers, got.Answers)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetByUsername_CaseSensitive(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, sampleUser("Alice"))
	require.NoError(t, err)

	_, err = r.GetByUsername(ctx, "alice")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCreate_DuplicateUsername_KeepsExistingRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	first := sampleUser("bob")
	_, err := r.Create(ctx, first)
	require.NoError(t, err)

	dup := sampleUser("bob")
	dup.ID = "other-id"
	dup.PasswordHash = "other-hash"
	_, err = r.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrDuplicateUsername))

	got, err := r.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID, "existing row must not be overwritten")
	assert.Equal(t, first.PasswordHash, got.PasswordHash)
}

func TestGetByUsername_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.GetByUsername(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUpdatePasswordHash(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, sampleUser("carol"))
	require.NoError(t, err)

	require.NoError(t, r.UpdatePasswordHash(ctx, "carol", "new-hash"))

	got, err := r.GetByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)
}

func TestUpdatePasswordHash_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	err := r.UpdatePasswordHash(context.Background(), "ghost", "h")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestFetchSecurityAnswers(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	_, err := r.Create(ctx, sampleUser("dave"))
	require.NoError(t, err)

	answers, err := r.FetchSecurityAnswers(ctx, "dave")
	require.NoError(t, err)
	assert.Equal(t, [3]SecurityAnswer{
		{QuestionID: 1, AnswerHash: "h1"},
		{QuestionID: 2, AnswerHash: "h2"},
		{QuestionID: 3, AnswerHash: "h3"},
	}, answers)
}

func TestFetchSecurityAnswers_NotFound(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	_, err := r.FetchSecurityAnswers(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestCreate_DBErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO users").WillReturnError(errors.New("disk I/O error"))

	r := NewSQLiteRepository(db)
	_, err = r.Create(context.Background(), sampleUser("erin"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to insert user "erin"`)
}

func TestUpdatePasswordHash_DBErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("UPDATE users").WillReturnError(errors.New("database is locked"))

	r := NewSQLiteRepository(db)
	err = r.UpdatePasswordHash(context.Background(), "erin", "h")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to update password for "erin"`)
}
