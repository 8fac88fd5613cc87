// Package rankingdb 封装 ranking schema 的 SQL 查询，接口形态与 sqlc 生成代码一致。
package rankingdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX 抽象连接池与事务的公共能力。
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// New 基于连接池或事务构造 Queries。
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// Queries 持有所有查询方法。
type Queries struct {
	db DBTX
}

// WithTx 返回绑定到事务的 Queries。
func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{
		db: tx,
	}
}
