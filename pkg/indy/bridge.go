package indy

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/sbca/indy-go/pkg/indy/ffi"
)

// run registers p, issues the native call and handles a synchronous failure.
// A non-zero immediate status means libindy will not invoke the callback, so
// the handle is removed and the completion resolved right away.
func (l *Library) run(ctx context.Context, p *pending, args []uintptr) {
	h := l.registry.allocate(p)
	args[0] = uintptr(uint32(h))
	l.metrics.started()

	runtime.LockOSThread()
	rc, err := l.native.Call(p.cmd.symbol, args...)
	if err == nil && rc != 0 {
		err = l.nativeError(rc)
	}
	runtime.UnlockOSThread()

	if err == nil {
		return
	}
	if _, terr := l.registry.take(h); terr != nil {
		// The callback fired before the call returned and already delivered.
		l.logger.Warn(ctx, "native call failed after completing", "command", p.cmd.name, "handle", h, "error", err)
		return
	}
	l.deliver(ctx, p, outcome{err: err})
}

// onComplete is the body of every trampoline. It runs on a libindy thread
// with args laid out as (handle, status, result words...).
func (l *Library) onComplete(args []uintptr) {
	ctx := context.Background()
	handle, code := int32(args[0]), int32(args[1])

	var failure error
	if code != 0 {
		failure = l.nativeError(code)
	}

	p, err := l.registry.take(handle)
	if err != nil {
		l.metrics.protocolViolation()
		l.logger.Error(ctx, "dropping native completion", "handle", handle, "code", code, "error", err)
		return
	}

	out := outcome{err: failure}
	if failure == nil {
		out.values, out.err = p.cmd.decode(args[2:])
	}
	l.deliver(ctx, p, out)
}

// deliver hands the outcome to the waiting caller. The argument frame is
// released here because libindy no longer references it.
func (l *Library) deliver(ctx context.Context, p *pending, out outcome) {
	p.frame.Release()
	elapsed := time.Since(p.started)

	if !p.done.resolve(out) {
		l.metrics.discarded(p.cmd.name)
		l.logger.Debug(ctx, "discarding completion of cancelled command", "command", p.cmd.name, "handle", p.handle)
		return
	}
	l.metrics.completed(p.cmd.name, out.err, elapsed)
	if out.err != nil {
		l.logger.Debug(ctx, "<<< command failed", "command", p.cmd.name, "handle", p.handle, "elapsed", elapsed, "error", out.err)
		return
	}
	l.logger.Debug(ctx, "<<< command completed", "command", p.cmd.name, "handle", p.handle, "elapsed", elapsed)
}

// nativeError converts a status code, reading the error detail libindy keeps
// for the calling thread. Callers must still be on the thread that observed
// the status.
func (l *Library) nativeError(code int32) error {
	if code == 0 {
		return nil
	}
	msg, backtrace := l.currentErrorDetail()
	err := NewError(code, msg, backtrace)
	var unknown *UnknownCodeError
	if errors.As(err, &unknown) {
		l.logger.Error(context.Background(), "libindy returned an unknown error code", "code", code, "message", msg)
	}
	return err
}

func (l *Library) currentErrorDetail() (string, string) {
	if !l.native.Implements(symGetCurrentError) {
		return "", ""
	}
	frame := ffi.NewFrame()
	defer frame.Release()
	addr, cell := frame.Cell()
	if _, err := l.native.Call(symGetCurrentError, addr); err != nil {
		return "", ""
	}
	raw, _ := ffi.GoString(*cell)
	d := parseErrorDetail(raw)
	return d.Message, d.Backtrace
}
