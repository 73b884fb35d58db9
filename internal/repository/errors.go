package repository

import "errors"

var (
	// 対象の行が存在しない（外部キー先が無い場合も含む）
	ErrNotFound = errors.New("not found")
	// 一意制約違反
	ErrConflict = errors.New("conflict")
	// デッドロック・直列化失敗でトランザクションが中断された（再試行可）
	ErrTxAborted = errors.New("transaction aborted")
)
