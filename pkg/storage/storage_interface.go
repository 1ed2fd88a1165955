package storage

import (
	"github.com/corrigo/corrigo/pkg/ctx"
)

// TextStore archives submitted and corrected texts. Object names are
// chosen by the caller, typically "<userId>/<textId>.txt".
type TextStore interface {
	PutText(ctx *ctx.Context, objectName string, body []byte) (string, error)
	GetText(ctx *ctx.Context, objectName string) ([]byte, error)
	Delete(ctx *ctx.Context, objectName string) error
}
