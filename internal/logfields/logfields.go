// Package logfields holds canonical slog attribute keys so log lines stay
// consistent between the render pipeline, the server and the CLI.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRequestID  = "request_id"
	KeyPort       = "port"
	KeyAddr       = "addr"
	KeyRemoteAddr = "remote_addr"
	KeyTheme      = "theme"
	KeyError      = "error"
)

func Stage(name string) slog.Attr   { return slog.String(KeyStage, name) }
func Path(p string) slog.Attr       { return slog.String(KeyPath, p) }
func File(f string) slog.Attr       { return slog.String(KeyFile, f) }
func Method(m string) slog.Attr     { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr     { return slog.Int(KeyStatus, code) }
func RequestID(id string) slog.Attr { return slog.String(KeyRequestID, id) }
func Port(p int) slog.Attr          { return slog.Int(KeyPort, p) }
func Addr(a string) slog.Attr       { return slog.String(KeyAddr, a) }
func RemoteAddr(a string) slog.Attr { return slog.String(KeyRemoteAddr, a) }
func Theme(color string) slog.Attr  { return slog.String(KeyTheme, color) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
