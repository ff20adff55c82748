package xcontext

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/kolstage/backend/config"
	"github.com/kolstage/backend/pkg/authenticator"
	"github.com/kolstage/backend/pkg/logger"
	"gorm.io/gorm"
)

type contextKey int

const (
	configsKey contextKey = iota
	loggerKey
	dbKey
	dbTransactionKey
	httpRequestKey
	httpWriterKey
	requestUserIDKey
	tokenEngineKey
	snowflakeKey
)

// dbTransaction is a mutable holder so commit/rollback can clear the
// transaction through a context value.
type dbTransaction struct {
	tx *gorm.DB
}

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.DEBUG)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey, db)
}

// DB returns the current transaction if one is in progress, otherwise the
// root connection.
func DB(ctx context.Context) *gorm.DB {
	if holder, ok := ctx.Value(dbTransactionKey).(*dbTransaction); ok && holder.tx != nil {
		return holder.tx
	}

	db, ok := ctx.Value(dbKey).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

// WithDBTransaction begins a transaction on the context database. Every
// DB(ctx) call on the returned context uses the transaction until it is
// committed or rolled back.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey, &dbTransaction{tx: DB(ctx).Begin()})
}

// WithCommitDBTransaction commits the in-progress transaction. It is a no-op
// if the transaction already finished.
func WithCommitDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTransactionKey).(*dbTransaction); ok && holder.tx != nil {
		holder.tx.Commit()
		holder.tx = nil
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the in-progress transaction. It is a
// no-op if the transaction already finished, so deferring it after a commit
// is safe.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if holder, ok := ctx.Value(dbTransactionKey).(*dbTransaction); ok && holder.tx != nil {
		holder.tx.Rollback()
		holder.tx = nil
	}

	return ctx
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	r, ok := ctx.Value(httpRequestKey).(*http.Request)
	if !ok {
		panic("no http request in context")
	}

	return r
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	w, ok := ctx.Value(httpWriterKey).(http.ResponseWriter)
	if !ok {
		panic("no http writer in context")
	}

	return w
}

func WithRequestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, requestUserIDKey, userID)
}

// RequestUserID returns the authenticated user id or an empty string for an
// anonymous request.
func RequestUserID(ctx context.Context) string {
	userID, ok := ctx.Value(requestUserIDKey).(string)
	if !ok {
		return ""
	}

	return userID
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine) context.Context {
	return context.WithValue(ctx, tokenEngineKey, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine {
	engine, ok := ctx.Value(tokenEngineKey).(authenticator.TokenEngine)
	if !ok {
		panic("no token engine in context")
	}

	return engine
}

func WithSnowFlake(ctx context.Context, node *snowflake.Node) context.Context {
	return context.WithValue(ctx, snowflakeKey, node)
}

func SnowFlake(ctx context.Context) *snowflake.Node {
	node, ok := ctx.Value(snowflakeKey).(*snowflake.Node)
	if !ok {
		panic("no snowflake node in context")
	}

	return node
}
