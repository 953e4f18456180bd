package rpc

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/danmuck/scadmin/internal/admin"
	"github.com/danmuck/scadmin/internal/observability"
	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/protocol/frame"
	"github.com/rs/zerolog/log"
)

// Deleter performs decoded delete requests.
type Deleter interface {
	Delete(ctx context.Context, req admin.DeleteRequest) admin.Status
}

// DeleterFunc adapts a function to Deleter.
type DeleterFunc func(ctx context.Context, req admin.DeleteRequest) admin.Status

func (f DeleterFunc) Delete(ctx context.Context, req admin.DeleteRequest) admin.Status {
	return f(ctx, req)
}

// DryRunDeleter reports success for every request without side effects.
type DryRunDeleter struct{}

func (DryRunDeleter) Delete(_ context.Context, req admin.DeleteRequest) admin.Status {
	return admin.NewStatusOK(admin.DeleteTarget(req))
}

// Dispatcher serves admin request frames.
type Dispatcher struct {
	deleter Deleter
	limits  frame.Limits
}

func NewDispatcher(deleter Deleter, limits frame.Limits) *Dispatcher {
	return &Dispatcher{deleter: deleter, limits: limits}
}

// Serve reads one request frame from rw and writes its response frame.
// Payload decode failures are answered with an error Status; frame level
// failures and write failures are returned.
func (d *Dispatcher) Serve(ctx context.Context, rw io.ReadWriter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := frame.ReadFrame(rw, d.limits)
	if err != nil {
		return err
	}
	start := time.Now()

	hdr, req, err := DecodeRequest(f)
	if err != nil {
		outcome := decodeOutcome(err)
		log.Warn().
			Err(err).
			Str("api_key", hdr.APIKey.String()).
			Uint32("correlation_id", hdr.CorrelationID).
			Str("client_id", hdr.ClientID).
			Str("outcome", outcome).
			Msg("rejecting admin request")
		status := admin.NewStatus(rejectedName(err), admin.ErrorInvalidRequest, rejectedMessage(err))
		observability.RecordAdminRequest(hdr.APIKey.String(), outcome, time.Since(start))
		return EncodeResponse(rw, hdr, &status, true, d.limits)
	}

	del, ok := req.(admin.DeleteRequest)
	if !ok {
		log.Warn().
			Str("api_key", hdr.APIKey.String()).
			Uint32("correlation_id", hdr.CorrelationID).
			Msg("no handler for admin request")
		status := admin.NewStatus("", admin.ErrorInvalidRequest, ErrUnsupportedAPIKey.Error())
		observability.RecordAdminRequest(hdr.APIKey.String(), observability.OutcomeUnsupported, time.Since(start))
		return EncodeResponse(rw, hdr, &status, true, d.limits)
	}

	status := d.deleter.Delete(ctx, del)
	outcome := observability.OutcomeOK
	if !status.IsOK() {
		outcome = observability.OutcomeHandlerError
	}
	observability.RecordDelete(del.Label(), status.ErrorCode.String())
	observability.RecordAdminRequest(hdr.APIKey.String(), outcome, time.Since(start))
	log.Info().
		Str("api_key", hdr.APIKey.String()).
		Uint32("correlation_id", hdr.CorrelationID).
		Str("label", del.Label()).
		Str("target", admin.DeleteTarget(del)).
		Str("code", status.ErrorCode.String()).
		AnErr("status", status.Err()).
		Dur("duration", time.Since(start)).
		Msg("admin delete")
	return EncodeResponse(rw, hdr, &status, !status.IsOK(), d.limits)
}

func decodeOutcome(err error) string {
	var specErr admin.InvalidSpecTypeError
	if errors.As(err, &specErr) {
		return observability.OutcomeInvalidTag
	}
	return observability.OutcomeDecodeError
}

// rejectedName and rejectedMessage stay within codec.MaxStringLen so the
// error Status always encodes.
func rejectedName(err error) string {
	var specErr admin.InvalidSpecTypeError
	if errors.As(err, &specErr) {
		return clip(specErr.Tag)
	}
	return ""
}

func rejectedMessage(err error) string {
	var specErr admin.InvalidSpecTypeError
	if errors.As(err, &specErr) {
		return admin.ErrInvalidSpecType.Error()
	}
	return clip(err.Error())
}

func clip(s string) string {
	if len(s) > codec.MaxStringLen {
		return s[:codec.MaxStringLen]
	}
	return s
}
