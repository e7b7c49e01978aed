package apperr

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// User-facing messages for translated backend errors.
const (
	msgNotFound    = "요청한 데이터를 찾을 수 없습니다."
	msgDuplicate   = "이미 처리된 요청입니다."
	msgSchema      = "서버 데이터 구성에 문제가 있습니다. 잠시 후 다시 시도해주세요."
	msgUnavailable = "네트워크 연결을 확인해주세요."
	msgUnknown     = "알 수 없는 오류가 발생했습니다."
)

// Translate maps storage/driver errors into the application taxonomy.
// Errors that already carry a taxonomy code pass through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, msgNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(CodeDuplicate, msgDuplicate, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return Wrap(CodeUnavailable, msgUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return Wrap(CodeDuplicate, msgDuplicate, err)
		case "42P01", "42703": // undefined_table, undefined_column
			return Wrap(CodeSchema, msgSchema, err)
		}
	}

	if strings.Contains(err.Error(), "connection refused") {
		return Wrap(CodeUnavailable, msgUnavailable, err)
	}

	return Wrap(CodeUnknown, msgUnknown, err)
}

// IsDuplicate reports whether err translates to the duplicate code.
// Upsert-style callers treat duplicates as success.
func IsDuplicate(err error) bool {
	return CodeOf(Translate(err)) == CodeDuplicate
}
