package rpc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/danmuck/scadmin/internal/admin"
	"github.com/danmuck/scadmin/internal/observability"
	"github.com/danmuck/scadmin/internal/protocol/codec"
	"github.com/danmuck/scadmin/internal/protocol/frame"
	"github.com/danmuck/scadmin/internal/resource/spu"
	"github.com/danmuck/scadmin/internal/testutil/testlog"
	"github.com/prometheus/client_golang/prometheus"
)

type pipe struct {
	in  *bytes.Reader
	out bytes.Buffer
}

func (p *pipe) Read(b []byte) (int, error)  { return p.in.Read(b) }
func (p *pipe) Write(b []byte) (int, error) { return p.out.Write(b) }

func requestPipe(t *testing.T, hdr RequestHeader, req admin.Request) *pipe {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeRequest(&buf, hdr, req, frame.DefaultLimits()); err != nil {
		t.Fatalf("encode request: %v", err)
	}
	return &pipe{in: bytes.NewReader(buf.Bytes())}
}

func TestDispatcherServesDelete(t *testing.T) {
	testlog.Start(t)
	var got admin.DeleteRequest
	d := NewDispatcher(DeleterFunc(func(_ context.Context, req admin.DeleteRequest) admin.Status {
		got = req
		return admin.NewStatusOK(admin.DeleteTarget(req))
	}), frame.DefaultLimits())

	req := admin.DeleteCustomSpuKey("spu-a")
	p := requestPipe(t, NewRequestHeader(req, 11, "tests"), req)
	if err := d.Serve(context.Background(), p); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if got != req {
		t.Fatalf("deleter saw %+v, want %+v", got, req)
	}

	f, err := frame.ReadFrame(&p.out, frame.DefaultLimits())
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if !f.IsResponse() || f.IsError() || f.Header.CorrelationID != 11 {
		t.Fatalf("unexpected response header: %+v", f.Header)
	}
	_, resp, err := DecodeResponse(f)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	status := resp.(*admin.Status)
	if !status.IsOK() || status.Name != "spu-a" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestDispatcherHandlerErrorSetsErrorFlag(t *testing.T) {
	testlog.Start(t)
	d := NewDispatcher(DeleterFunc(func(_ context.Context, req admin.DeleteRequest) admin.Status {
		return admin.NewStatus(admin.DeleteTarget(req), admin.ErrorSpuGroupNotFound, "missing")
	}), frame.DefaultLimits())

	req := admin.IntoRequest[admin.SpuGroupSpec]("group-9")
	p := requestPipe(t, NewRequestHeader(req, 3, "tests"), req)
	if err := d.Serve(context.Background(), p); err != nil {
		t.Fatalf("serve: %v", err)
	}
	_, status, err := DecodeStatusResponse(&p.out, frame.DefaultLimits())
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.ErrorCode != admin.ErrorSpuGroupNotFound || status.Name != "group-9" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func TestDispatcherRejectsBogusTag(t *testing.T) {
	testlog.Start(t)
	called := false
	d := NewDispatcher(DeleterFunc(func(_ context.Context, _ admin.DeleteRequest) admin.Status {
		called = true
		return admin.Status{}
	}), frame.DefaultLimits())

	var payload bytes.Buffer
	_ = codec.WriteString(&payload, "Bogus", 1)
	_ = codec.WriteString(&payload, "orders", 1)
	var buf bytes.Buffer
	err := frame.WriteFrame(&buf, frame.Frame{
		Header:  frame.Header{APIKey: uint16(admin.APIKeyDelete), APIVersion: 1, CorrelationID: 5},
		Payload: payload.Bytes(),
	}, frame.DefaultLimits())
	if err != nil {
		t.Fatalf("write frame: %v", err)
	}
	p := &pipe{in: bytes.NewReader(buf.Bytes())}

	if err := d.Serve(context.Background(), p); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if called {
		t.Fatalf("deleter must not run for a malformed tag")
	}
	f, err := frame.ReadFrame(&p.out, frame.DefaultLimits())
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if !f.IsError() || f.Header.CorrelationID != 5 {
		t.Fatalf("expected error response, got %+v", f.Header)
	}
	_, resp, err := DecodeResponse(f)
	if err != nil {
		t.Fatalf("decode response: %v", err)
	}
	status := resp.(*admin.Status)
	if status.ErrorCode != admin.ErrorInvalidRequest || status.Name != "Bogus" {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.ErrorMessage == nil || *status.ErrorMessage != admin.ErrInvalidSpecType.Error() {
		t.Fatalf("unexpected error message: %+v", status.ErrorMessage)
	}
}

func bogusTagPipe(t *testing.T, tag string, correlationID uint32) *pipe {
	t.Helper()
	var payload bytes.Buffer
	if err := codec.WriteString(&payload, tag, 1); err != nil {
		t.Fatalf("write tag: %v", err)
	}
	if err := codec.WriteString(&payload, "orders", 1); err != nil {
		t.Fatalf("write payload: %v", err)
	}
	var buf bytes.Buffer
	err := frame.WriteFrame(&buf, frame.Frame{
		Header:  frame.Header{APIKey: uint16(admin.APIKeyDelete), APIVersion: 1, CorrelationID: correlationID},
		Payload: payload.Bytes(),
	}, frame.DefaultLimits())
	if err != nil {
		t.Fatalf("write frame: %v", err)
	}
	return &pipe{in: bytes.NewReader(buf.Bytes())}
}

func TestDispatcherAnswersLongBogusTag(t *testing.T) {
	testlog.Start(t)
	for _, n := range []int{codec.MaxStringLen - 5, codec.MaxStringLen} {
		tag := strings.Repeat("B", n)
		p := bogusTagPipe(t, tag, 8)
		if err := NewDispatcher(DryRunDeleter{}, frame.DefaultLimits()).Serve(context.Background(), p); err != nil {
			t.Fatalf("serve tag len %d: %v", n, err)
		}
		_, status, err := DecodeStatusResponse(&p.out, frame.DefaultLimits())
		if err != nil {
			t.Fatalf("decode response for tag len %d: %v", n, err)
		}
		if status.ErrorCode != admin.ErrorInvalidRequest || status.Name != tag {
			t.Fatalf("unexpected status for tag len %d: code=%s name_len=%d", n, status.ErrorCode, len(status.Name))
		}
	}
}

type listRequest struct{}

func (listRequest) APIKey() admin.APIKey                            { return admin.APIKeyList }
func (listRequest) DefaultAPIVersion() codec.Version                { return 1 }
func (listRequest) WriteSize(codec.Version) int                     { return 0 }
func (listRequest) Encode(w io.Writer, version codec.Version) error { return nil }

func TestDispatcherRejectsNonDeleteRequest(t *testing.T) {
	testlog.Start(t)
	requestDecoders[admin.APIKeyList] = func(io.Reader, codec.Version) (admin.Request, error) {
		return listRequest{}, nil
	}
	t.Cleanup(func() { delete(requestDecoders, admin.APIKeyList) })

	before := requestCount(t, admin.APIKeyList.String(), observability.OutcomeUnsupported)
	p := requestPipe(t, NewRequestHeader(listRequest{}, 4, "tests"), listRequest{})
	if err := NewDispatcher(DryRunDeleter{}, frame.DefaultLimits()).Serve(context.Background(), p); err != nil {
		t.Fatalf("serve: %v", err)
	}
	f, err := frame.ReadFrame(&p.out, frame.DefaultLimits())
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if !f.IsError() || f.Header.CorrelationID != 4 {
		t.Fatalf("expected error response, got %+v", f.Header)
	}
	after := requestCount(t, admin.APIKeyList.String(), observability.OutcomeUnsupported)
	if after != before+1 {
		t.Fatalf("unsupported request not counted: before=%v after=%v", before, after)
	}
}

func TestDispatcherReturnsFrameErrors(t *testing.T) {
	testlog.Start(t)
	d := NewDispatcher(DryRunDeleter{}, frame.DefaultLimits())
	p := &pipe{in: bytes.NewReader([]byte{1, 2})}
	err := d.Serve(context.Background(), p)
	if !errors.Is(err, frame.ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
	if p.out.Len() != 0 {
		t.Fatalf("no response expected on frame error")
	}
}

func TestDispatcherHonorsCanceledContext(t *testing.T) {
	testlog.Start(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := admin.DeleteTopic{Name: "orders"}
	p := requestPipe(t, NewRequestHeader(req, 1, "tests"), req)
	err := NewDispatcher(DryRunDeleter{}, frame.DefaultLimits()).Serve(ctx, p)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDryRunDeleterNamesTarget(t *testing.T) {
	testlog.Start(t)
	status := DryRunDeleter{}.Delete(context.Background(), admin.DeleteCustomSpu{Key: spu.IDKey(42)})
	if !status.IsOK() || status.Name != "42" {
		t.Fatalf("unexpected status: %+v", status)
	}
}

func requestCount(t *testing.T, apiKey, outcome string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != "scadmin_rpc_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["api_key"] == apiKey && labels["outcome"] == outcome {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}
