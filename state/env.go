// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"

	"onepaper/config"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by render subcommand
	NoDirs    bool
	Overwrite bool
	// CodePage is used for archive entry names not marked as UTF-8 and to
	// decode source documents without BOM which are not valid UTF-8. Nil
	// means such names are kept as is and such documents are rejected.
	CodePage encoding.Encoding

	documents     int
	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, &LocalEnv{start: time.Now()})
}

// StartTime returns moment program environment was created, it is used to
// stamp all documents produced by a single run.
func (e *LocalEnv) StartTime() time.Time {
	return e.start
}

// NextDocument returns sequential number of the document being processed,
// starting from 1.
func (e *LocalEnv) NextDocument() int {
	e.documents++
	return e.documents
}

// Documents returns number of documents processed so far.
func (e *LocalEnv) Documents() int {
	return e.documents
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
