package entries

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAddCommentBumpsEntryCounter(t *testing.T) {
	svc, mock := mockService(t)

	deviceID := uuid.New()
	entryID := uuid.New()
	commentID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "visible"}).AddRow(entryID.String(), true))

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "comments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(commentID.String()))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "entries" SET "comment_count"=comment_count \+ 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	comment, err := svc.AddComment(context.Background(), deviceID, entryID, CreateCommentRequest{
		Content: "저도 비슷한 경험이 있어요",
	})
	require.NoError(t, err)
	require.Equal(t, entryID, comment.EntryID)

	require.NoError(t, mock.ExpectationsWereMet(),
		"adding a comment must increment the entry's comment_count")
}
