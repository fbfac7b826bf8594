package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"board/internal/config"
	"board/internal/core/apperror"
	"board/internal/core/favorite"
	"board/internal/core/notification"
	"board/internal/core/post"
	"board/internal/core/user"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB points config.DB at a sqlmock connection for the test.
func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true, TranslateError: true})
	require.NoError(t, err)

	original := config.DB
	config.DB = gdb
	t.Cleanup(func() {
		config.DB = original
		_ = sqlDB.Close()
	})
	return mock
}

func TestFindByUsernameNotFound(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	u, err := NewUserRepositoryDatabase().FindByUsername(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByUsernameStorageError(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE username = ?")).
		WillReturnError(errors.New("connection refused"))

	u, err := NewUserRepositoryDatabase().FindByUsername(context.Background(), "alice")
	assert.Error(t, err)
	assert.Nil(t, u)
}

func TestExistsByUsername(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `users` WHERE username = ?")).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := NewUserRepositoryDatabase().ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateMapsUniqueViolation(t *testing.T) {
	tests := []struct {
		name  string
		cause error
		want  apperror.Kind
	}{
		{
			name:  "username taken",
			cause: &mysqldriver.MySQLError{Number: 1062, Message: "Duplicate entry 'alice' for key 'users.username'"},
			want:  apperror.KindDuplicateUser,
		},
		{
			name:  "connection failure",
			cause: errors.New("connection refused"),
			want:  apperror.KindStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).WillReturnError(tt.cause)

			u, err := NewUserRepositoryDatabase().Create(context.Background(), &user.User{
				ID:       uuid.Must(uuid.NewV4()),
				Username: "alice",
				Nickname: "Alice",
				Password: "hash",
			})
			assert.Nil(t, u)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperror.KindOf(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCounterUpdatesAreSingleStatements(t *testing.T) {
	id := uuid.Must(uuid.NewV4())

	tests := []struct {
		name  string
		query string
		call  func(repo *PostRepositoryDatabase) error
	}{
		{
			name:  "view count",
			query: "UPDATE `posts` SET `view_count`=view_count + ? WHERE id = ?",
			call:  func(repo *PostRepositoryDatabase) error { return repo.IncreaseViewCount(context.Background(), id) },
		},
		{
			name:  "favorite count up",
			query: "UPDATE `posts` SET `favorite_count`=favorite_count + ? WHERE id = ?",
			call:  func(repo *PostRepositoryDatabase) error { return repo.IncreaseFavoriteCount(context.Background(), id) },
		},
		{
			name:  "favorite count down",
			query: "UPDATE `posts` SET `favorite_count`=favorite_count - ? WHERE id = ? AND favorite_count > 0",
			call:  func(repo *PostRepositoryDatabase) error { return repo.DecreaseFavoriteCount(context.Background(), id) },
		},
		{
			name:  "comment count",
			query: "UPDATE `posts` SET `comment_count`=comment_count + ? WHERE id = ?",
			call:  func(repo *PostRepositoryDatabase) error { return repo.IncreaseCommentCount(context.Background(), id) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta(tt.query)).
				WithArgs(sqlmock.AnyArg(), id).
				WillReturnResult(sqlmock.NewResult(0, 1))

			require.NoError(t, tt.call(NewPostRepositoryDatabase()))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFavoriteCount(t *testing.T) {
	mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT `favorite_count` FROM `posts` WHERE id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"favorite_count"}).AddRow(3))

	count, err := NewPostRepositoryDatabase().FavoriteCount(context.Background(), uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestTransactorCommits(t *testing.T) {
	mock := setupMockDB(t)
	id := uuid.Must(uuid.NewV4())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `posts` SET `view_count`=view_count + ? WHERE id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostRepositoryDatabase()
	err := NewTransactor().WithinTransaction(context.Background(), func(ctx context.Context) error {
		return repo.IncreaseViewCount(ctx, id)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactorRollsBackAndJoinsOuter(t *testing.T) {
	mock := setupMockDB(t)
	id := uuid.Must(uuid.NewV4())
	failure := errors.New("no permission")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `posts` SET `favorite_count`=favorite_count + ? WHERE id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	repo := NewPostRepositoryDatabase()
	transactor := NewTransactor()
	err := transactor.WithinTransaction(context.Background(), func(ctx context.Context) error {
		return transactor.WithinTransaction(ctx, func(ctx context.Context) error {
			if err := repo.IncreaseFavoriteCount(ctx, id); err != nil {
				return err
			}
			return failure
		})
	})
	assert.ErrorIs(t, err, failure)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePatternEscapesWildcards(t *testing.T) {
	assert.Equal(t, `%golang%`, likePattern("GoLang"))
	assert.Equal(t, `%50\%\_off\\%`, likePattern(`50%_OFF\`))
}

func TestFindByIDsWithoutIDs(t *testing.T) {
	mock := setupMockDB(t)

	rows, err := NewNotificationRepositoryDatabase().FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostDeleteCascade(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	statements := []string{
		"DELETE FROM `sub_comments` WHERE parent_comment_id IN (SELECT id FROM `comments` WHERE post_id = ?)",
		"DELETE FROM `comments` WHERE post_id = ?",
		"DELETE FROM `favorites` WHERE post_id = ?",
		"DELETE FROM `notifications` WHERE post_id = ?",
		"DELETE FROM `notification_queue` WHERE post_id = ?",
		"DELETE FROM `images` WHERE post_id = ?",
		"DELETE FROM `posts` WHERE id = ?",
	}

	tests := []struct {
		name   string
		failAt int // index of the failing statement, -1 for none
	}{
		{name: "every row hanging off the post", failAt: -1},
		{name: "stops at the first failure", failAt: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			for i, stmt := range statements {
				exp := mock.ExpectExec(regexp.QuoteMeta(stmt)).WithArgs(id)
				if i == tt.failAt {
					exp.WillReturnError(errors.New("lock wait timeout"))
					break
				}
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := NewPostRepositoryDatabase().Delete(context.Background(), id)
			if tt.failAt >= 0 {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestReplaceImages(t *testing.T) {
	postID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name   string
		images []post.Image
	}{
		{name: "empty list only clears", images: []post.Image{}},
		{name: "nil list only clears"},
		{name: "stores the new list", images: post.NewImages(postID, []string{"a.png", "b.png"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `images` WHERE post_id = ?")).
				WithArgs(postID).
				WillReturnResult(sqlmock.NewResult(0, 3))
			if len(tt.images) > 0 {
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `images` (`id`,`post_id`,`url`,`position`) VALUES (?,?,?,?),(?,?,?,?)")).
					WithArgs(
						tt.images[0].ID, postID, "a.png", 0,
						tt.images[1].ID, postID, "b.png", 1,
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
			}

			require.NoError(t, NewPostRepositoryDatabase().ReplaceImages(context.Background(), postID, tt.images))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSearchCombinesWords(t *testing.T) {
	clause := regexp.QuoteMeta("LOWER(title) LIKE ? OR LOWER(contents) LIKE ?")

	tests := []struct {
		name         string
		searchWord   string
		relationWord string
		query        string
		args         []interface{}
	}{
		{
			name:       "search word only",
			searchWord: "GoLang",
			query:      regexp.QuoteMeta("SELECT * FROM `posts` WHERE (") + clause + regexp.QuoteMeta(") ORDER BY created_at DESC"),
			args:       []interface{}{"%golang%", "%golang%"},
		},
		{
			name:         "both words must match",
			searchWord:   "Go",
			relationWord: "Tips",
			query:        regexp.QuoteMeta("SELECT * FROM `posts` WHERE ") + `\(+` + clause + `\)+ AND \(+` + clause + `\)+ ` + regexp.QuoteMeta("ORDER BY created_at DESC"),
			args:         []interface{}{"%go%", "%go%", "%tips%", "%tips%"},
		},
		{
			name:       "wildcards are literal",
			searchWord: "100%",
			query:      regexp.QuoteMeta("SELECT * FROM `posts` WHERE (") + clause + regexp.QuoteMeta(") ORDER BY created_at DESC"),
			args:       []interface{}{`%100\%%`, `%100\%%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			args := make([]driver.Value, len(tt.args))
			for i, a := range tt.args {
				args[i] = a
			}
			mock.ExpectQuery(tt.query).
				WithArgs(args...).
				WillReturnRows(sqlmock.NewRows([]string{"id"}))

			posts, err := NewPostRepositoryDatabase().Search(context.Background(), tt.searchWord, tt.relationWord)
			require.NoError(t, err)
			assert.Empty(t, posts)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindTopByCategorySince(t *testing.T) {
	mock := setupMockDB(t)
	categoryID := uuid.Must(uuid.NewV4())
	since := time.Date(2026, 10, 11, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM `posts` WHERE category_id = ? AND created_at >= ? "+
			"ORDER BY favorite_count DESC,comment_count DESC,view_count DESC,created_at DESC LIMIT ?")).
		WithArgs(categoryID, since, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	posts, err := NewPostRepositoryDatabase().FindTopByCategorySince(context.Background(), categoryID, since, 3)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCategoryAndIDIsScopedToCategory(t *testing.T) {
	id := uuid.Must(uuid.NewV4())
	categoryID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name  string
		rows  *sqlmock.Rows
		found bool
	}{
		{name: "post in category", rows: sqlmock.NewRows([]string{"id", "category_id", "title"}).AddRow(id.String(), categoryID.String(), "hello"), found: true},
		{name: "post elsewhere", rows: sqlmock.NewRows([]string{"id", "category_id", "title"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `posts` WHERE id = ? AND category_id = ?")).
				WithArgs(id, categoryID, 1).
				WillReturnRows(tt.rows)

			p, err := NewPostRepositoryDatabase().FindByCategoryAndID(context.Background(), categoryID, id)
			require.NoError(t, err)
			if tt.found {
				require.NotNil(t, p)
				assert.Equal(t, id, p.ID)
				assert.Equal(t, categoryID, p.CategoryID)
			} else {
				assert.Nil(t, p)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCommentsFindByPostIDPreloads(t *testing.T) {
	mock := setupMockDB(t)
	postID := uuid.Must(uuid.NewV4())
	commentID := uuid.Must(uuid.NewV4())
	subID := uuid.Must(uuid.NewV4())
	author := uuid.Must(uuid.NewV4())
	replier := uuid.Must(uuid.NewV4())
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `comments` WHERE post_id = ? ORDER BY created_at ASC")).
		WithArgs(postID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contents", "user_id", "post_id", "created_at"}).
			AddRow(commentID.String(), "first", author.String(), postID.String(), at))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `sub_comments` WHERE `sub_comments`.`parent_comment_id`") + ".*" + regexp.QuoteMeta("ORDER BY created_at ASC")).
		WithArgs(commentID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "content", "parent_comment_id", "user_id", "created_at"}).
			AddRow(subID.String(), "reply", commentID.String(), replier.String(), at.Add(time.Minute)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id`")).
		WithArgs(replier).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(replier.String(), "u2"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE `users`.`id`")).
		WithArgs(author).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(author.String(), "u1"))

	comments, err := NewCommentRepositoryDatabase().FindByPostID(context.Background(), postID)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, comments, 1)
	assert.Equal(t, "u1", comments[0].User.Username)
	require.Len(t, comments[0].SubComments, 1)
	require.NotNil(t, comments[0].SubComments[0].User)
	assert.Equal(t, "u2", comments[0].SubComments[0].User.Username)
}

func TestFavoriteWritesReportChangedRows(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	postID := uuid.Must(uuid.NewV4())

	tests := []struct {
		name     string
		query    string
		affected int64
		call     func(repo *FavoriteRepositoryDatabase) (bool, error)
		want     bool
	}{
		{
			name:     "insert",
			query:    regexp.QuoteMeta("INSERT INTO `favorites`") + ".*" + regexp.QuoteMeta("ON DUPLICATE KEY UPDATE"),
			affected: 1,
			call: func(repo *FavoriteRepositoryDatabase) (bool, error) {
				return repo.Create(context.Background(), &favorite.Favorite{UserID: userID, PostID: postID})
			},
			want: true,
		},
		{
			name:  "insert of an existing pair",
			query: regexp.QuoteMeta("INSERT INTO `favorites`") + ".*" + regexp.QuoteMeta("ON DUPLICATE KEY UPDATE"),
			call: func(repo *FavoriteRepositoryDatabase) (bool, error) {
				return repo.Create(context.Background(), &favorite.Favorite{UserID: userID, PostID: postID})
			},
		},
		{
			name:     "delete",
			query:    regexp.QuoteMeta("DELETE FROM `favorites` WHERE user_id = ? AND post_id = ?"),
			affected: 1,
			call: func(repo *FavoriteRepositoryDatabase) (bool, error) {
				return repo.Delete(context.Background(), userID, postID)
			},
			want: true,
		},
		{
			name:  "delete of a missing pair",
			query: regexp.QuoteMeta("DELETE FROM `favorites` WHERE user_id = ? AND post_id = ?"),
			call: func(repo *FavoriteRepositoryDatabase) (bool, error) {
				return repo.Delete(context.Background(), userID, postID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := setupMockDB(t)
			mock.ExpectExec(tt.query).WillReturnResult(sqlmock.NewResult(0, tt.affected))

			changed, err := tt.call(NewFavoriteRepositoryDatabase())
			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationAddIgnoresStoredID(t *testing.T) {
	mock := setupMockDB(t)
	n := &notification.Notification{
		ID:      uuid.Must(uuid.NewV4()),
		UserID:  uuid.Must(uuid.NewV4()),
		ActorID: uuid.Must(uuid.NewV4()),
		PostID:  uuid.Must(uuid.NewV4()),
		Kind:    notification.KindComment,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notifications`") + ".*" + regexp.QuoteMeta("ON DUPLICATE KEY UPDATE `id`=`id`")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewNotificationRepositoryDatabase().Add(context.Background(), n))
	assert.False(t, n.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
