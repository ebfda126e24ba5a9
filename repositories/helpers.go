package repositories

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError // Возвращаем переданную ошибку "не найдено"
	}
	return nil
}

// isDataError сообщает, относится ли ошибка postgres к классу 22
// (data exception: слишком длинная строка, неверный формат и т.п.).
func isDataError(pqErr *pq.Error) bool {
	return len(pqErr.Code) >= 2 && pqErr.Code[:2] == "22"
}
