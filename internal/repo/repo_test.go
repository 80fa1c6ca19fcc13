package repo

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Nerldy/hello-books-api/internal/models"
)

func initTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Book{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}
	return New(db)
}

func TestCreateUser_DuplicateTranslatesToErrDuplicate(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	first := models.User{Username: "tester", Email: "tester@mail.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(ctx, &first))

	sameUsername := models.User{Username: "tester", Email: "other@mail.com", PasswordHash: "x"}
	assert.ErrorIs(t, r.CreateUser(ctx, &sameUsername), ErrDuplicate)

	sameEmail := models.User{Username: "other", Email: "tester@mail.com", PasswordHash: "x"}
	assert.ErrorIs(t, r.CreateUser(ctx, &sameEmail), ErrDuplicate)
}

func TestFindByUsernameAndEmail_RequiresBoth(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	u := models.User{Username: "tester", Email: "tester@mail.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(ctx, &u))

	found, err := r.FindByUsernameAndEmail(ctx, "tester", "tester@mail.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	missing, err := r.FindByUsernameAndEmail(ctx, "tester", "wrong@mail.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByUsernameOrEmail_MatchesEither(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	u := models.User{Username: "tester", Email: "tester@mail.com", PasswordHash: "x"}
	require.NoError(t, r.CreateUser(ctx, &u))

	byName, err := r.FindByUsernameOrEmail(ctx, "tester", "nope@mail.com")
	require.NoError(t, err)
	require.NotNil(t, byName)

	byMail, err := r.FindByUsernameOrEmail(ctx, "nobody", "tester@mail.com")
	require.NoError(t, err)
	require.NotNil(t, byMail)

	none, err := r.FindByUsernameOrEmail(ctx, "nobody", "nope@mail.com")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestCreateBook_DuplicateISBN(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	b := models.Book{Title: "hello books", ISBN: "1234567890"}
	require.NoError(t, r.CreateBook(ctx, &b))

	dup := models.Book{Title: "another", ISBN: "1234567890"}
	assert.ErrorIs(t, r.CreateBook(ctx, &dup), ErrDuplicate)
}

func TestDeleteBook_MissingRow(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	assert.ErrorIs(t, r.DeleteBook(context.Background(), 99), gorm.ErrRecordNotFound)
}

func TestListBooks_Pagination(t *testing.T) {
	t.Parallel()

	r := initTestRepo(t)
	ctx := context.Background()

	isbns := []string{"1111111111", "2222222222", "3333333333"}
	for _, isbn := range isbns {
		b := models.Book{Title: "book", ISBN: isbn}
		require.NoError(t, r.CreateBook(ctx, &b))
	}

	total, items, err := r.ListBooks(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, items, 2)
	assert.Equal(t, "2222222222", items[0].ISBN)
}
