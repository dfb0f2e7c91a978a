package handler

import (
	"context"
	"fmt"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"retention-engine/internal/engine"
	"retention-engine/internal/logging"
	"retention-engine/internal/metrics"
	"retention-engine/internal/model"
	"retention-engine/internal/rules"
)

func newHandler(m *metrics.Metrics) *Handler {
	e := engine.New(rules.DefaultMarkers(), nil, logging.Discard(), m)
	return New(e, m, logging.Discard())
}

func serve(h *Handler, method, path, body string) *fasthttp.RequestCtx {
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(path)
	req.SetBodyString(body)

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	h.Handle(&ctx)
	return &ctx
}

func decodeError(t *testing.T, ctx *fasthttp.RequestCtx) model.ErrorResponse {
	t.Helper()
	var er model.ErrorResponse
	if err := json.Unmarshal(ctx.Response.Body(), &er); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return er
}

func TestEvaluate(t *testing.T) {
	h := newHandler(metrics.New("test"))
	body := `{
		"hearing": {"hearingId": "h1"},
		"remitResultIds": ["remit-1"],
		"defendants": [{
			"defendantId": "d1",
			"offences": [{"id": "o1", "judicialResults": [{"category": "FINAL", "judicialResultTypeId": "remit-1", "orderedDate": "2024-01-01"}]}]
		}]
	}`

	ctx := serve(h, "POST", "/retention-policies/evaluate", body)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	if ct := string(ctx.Response.Header.ContentType()); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}

	var resp model.EvaluationResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	cp := resp.EvaluationResult.CasePolicy
	if cp == nil || cp.PolicyType != model.PolicyRemittal || cp.Period != "7Y0M0D" {
		t.Fatalf("expected Remittal(7Y0M0D), got %v", cp)
	}
	if cp.Hearing.HearingID != "h1" {
		t.Fatalf("expected hearing h1 on the policy, got %q", cp.Hearing.HearingID)
	}
}

func TestEvaluate_BadRequests(t *testing.T) {
	h := newHandler(nil)
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid json", `{"defendants": [`, "Invalid request body"},
		{"no defendants", `{"hearing": {"hearingId": "h1"}, "defendants": []}`, "At least one defendant is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(h, "POST", "/retention-policies/evaluate", tt.body)
			if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
				t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
			}
			er := decodeError(t, ctx)
			if er.Status != fasthttp.StatusBadRequest || !strings.Contains(er.Message, tt.message) {
				t.Fatalf("unexpected error response: %+v", er)
			}
		})
	}
}

func TestEvaluate_OutOfRangeCustodialPeriod(t *testing.T) {
	h := newHandler(nil)
	m := rules.DefaultMarkers()
	body := fmt.Sprintf(`{
		"hearing": {"hearingId": "h1"},
		"defendants": [{
			"defendantId": "d1",
			"judicialResults": [{"judicialResult": {
				"category": "FINAL",
				"judicialResultTypeId": %q,
				"orderedDate": "2024-01-01",
				"judicialResultPrompts": [{"judicialResultPromptTypeId": %q, "promptReference": %q, "value": "1000000000000Y"}]
			}}],
			"offences": [{"id": "o1"}]
		}]
	}`, m.CustodialResultTypeID, m.TotalCustodialPeriod.TypeID, m.TotalCustodialPeriod.Reference)

	ctx := serve(h, "POST", "/retention-policies/evaluate", body)

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var resp model.EvaluationResponse
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if cp := resp.EvaluationResult.CasePolicy; cp == nil || cp.PolicyType != model.PolicyNonCustodial {
		t.Fatalf("expected NonCustodial, got %v", cp)
	}
}

type panickingRemitSource struct{}

func (panickingRemitSource) RemitResultIDs(context.Context) ([]string, bool) {
	panic("reference data exploded")
}

func TestHandle_RecoversFromPanic(t *testing.T) {
	e := engine.New(rules.DefaultMarkers(), panickingRemitSource{}, logging.Discard(), nil)
	h := New(e, nil, logging.Discard())
	body := `{"hearing": {"hearingId": "h1"}, "defendants": [{"defendantId": "d1"}]}`

	ctx := serve(h, "POST", "/retention-policies/evaluate", body)

	if ctx.Response.StatusCode() != fasthttp.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", ctx.Response.StatusCode())
	}
	if er := decodeError(t, ctx); er.Status != fasthttp.StatusInternalServerError {
		t.Fatalf("unexpected error response: %+v", er)
	}
}

func TestResolve(t *testing.T) {
	h := newHandler(nil)
	body := `{"policies": [
		{"policyType": "Custodial", "period": "2Y0M0D", "hearing": {"hearingId": "h1"}},
		{"policyType": "Custodial", "period": "5Y0M0D", "hearing": {"hearingId": "h2"}},
		{"policyType": "Acquittal", "period": "1Y0M0D", "hearing": {"hearingId": "h3"}}
	]}`

	ctx := serve(h, "POST", "/retention-policies/resolve", body)
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}

	var got model.RetentionPolicy
	if err := json.Unmarshal(ctx.Response.Body(), &got); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if got.PolicyType != model.PolicyCustodial || got.Period != "5Y0M0D" || got.Hearing.HearingID != "h2" {
		t.Fatalf("expected Custodial(5Y0M0D) from h2, got %+v", got)
	}
}

func TestResolve_BadRequests(t *testing.T) {
	h := newHandler(nil)
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"invalid json", `{`, "Invalid request body"},
		{"empty", `{"policies": []}`, "At least one policy is required"},
		{"unknown type", `{"policies": [{"policyType": "Forever", "period": "1Y0M0D"}]}`, "Unknown policy type: Forever"},
		{"malformed period", `{"policies": [{"policyType": "Life", "period": "99Y"}]}`, "malformed duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := serve(h, "POST", "/retention-policies/resolve", tt.body)
			if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
				t.Fatalf("expected 400, got %d", ctx.Response.StatusCode())
			}
			if er := decodeError(t, ctx); !strings.Contains(er.Message, tt.message) {
				t.Fatalf("expected message containing %q, got %q", tt.message, er.Message)
			}
		})
	}
}

func TestRouting(t *testing.T) {
	h := newHandler(metrics.New("test"))

	if ctx := serve(h, "GET", "/retention-policies/evaluate", ""); ctx.Response.StatusCode() != fasthttp.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", ctx.Response.StatusCode())
	} else if allow := string(ctx.Response.Header.Peek("Allow")); allow != "POST" {
		t.Fatalf("expected Allow: POST, got %q", allow)
	}

	if ctx := serve(h, "GET", "/nope", ""); ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("expected 404, got %d", ctx.Response.StatusCode())
	}

	ctx := serve(h, "GET", "/health", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK || !strings.Contains(string(ctx.Response.Body()), `"ok"`) {
		t.Fatalf("unexpected health response: %d %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h := newHandler(metrics.New("test"))
	serve(h, "POST", "/retention-policies/evaluate", `{"hearing": {"hearingId": "h1"}, "defendants": [{"defendantId": "d1"}]}`)

	ctx := serve(h, "GET", "/metrics", "")
	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	if !strings.Contains(string(ctx.Response.Body()), `test_decisions_total{policy_type="NonCustodial",rule="NonCustodial"} 1`) {
		t.Fatalf("expected decision counter in metrics output, got:\n%s", ctx.Response.Body())
	}
}

func TestMetricsEndpoint_Disabled(t *testing.T) {
	h := newHandler(nil)
	if ctx := serve(h, "GET", "/metrics", ""); ctx.Response.StatusCode() != fasthttp.StatusNotFound {
		t.Fatalf("expected 404 when metrics are disabled, got %d", ctx.Response.StatusCode())
	}
}
