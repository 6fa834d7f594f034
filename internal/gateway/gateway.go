package gateway

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log"
    "net"
    "net/http"
    "net/url"
)

// Doer issues one HTTP request.
//
//go:generate mockgen -package=gateway_test -destination=mock_doer_test.go -source=gateway.go Doer
type Doer interface {
    Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// FailureKind tags the reason a request produced no usable body.
type FailureKind string

const (
    FailureConnection FailureKind = "connection"
    FailureTimeout    FailureKind = "timeout"
    FailureStatus     FailureKind = "status"
    FailureTransport  FailureKind = "transport"
    FailureDecode     FailureKind = "decode"
)

// Failure is the absent outcome of one outbound call. Exactly one diagnostic
// is logged per Failure before it is returned; callers decide what absence
// means for their own shape and never see a panic.
type Failure struct {
    Kind       FailureKind
    URL        string
    StatusCode int
    Body       string
    Err        error
}

func (f *Failure) Error() string {
    if f.Kind == FailureStatus {
        return fmt.Sprintf("GET %s: status %d: %s", f.URL, f.StatusCode, f.Body)
    }
    return fmt.Sprintf("GET %s: %s: %v", f.URL, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// maxBodyBytes caps how much of a response is read. The largest expected
// payload is a news page; anything past this is not a body we can use.
const maxBodyBytes = 4 << 20

// Gateway performs one GET per call and reduces every transport and parse
// problem to a single tagged Failure. No retries, no backoff: one attempt.
type Gateway struct {
    client Doer
    logger *log.Logger
}

type Option func(*Gateway)

// WithLogger redirects diagnostics, mainly for tests.
func WithLogger(l *log.Logger) Option {
    return func(g *Gateway) { g.logger = l }
}

func New(client Doer, opts ...Option) *Gateway {
    g := &Gateway{client: client, logger: log.Default()}
    for _, opt := range opts {
        opt(g)
    }
    return g
}

// GetJSON issues a GET for rawURL with params merged into the query string and
// returns the body, verified to be well-formed JSON of whatever shape the
// upstream produces. On any failure it logs one diagnostic and returns a
// *Failure.
func (g *Gateway) GetJSON(ctx context.Context, rawURL string, params url.Values) (json.RawMessage, error) {
    u, err := url.Parse(rawURL)
    if err != nil {
        return nil, g.fail(&Failure{Kind: FailureTransport, URL: rawURL, Err: err})
    }
    if len(params) > 0 {
        q := u.Query()
        for k, vs := range params {
            for _, v := range vs {
                q.Add(k, v)
            }
        }
        u.RawQuery = q.Encode()
    }

    req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
    if err != nil {
        return nil, g.fail(&Failure{Kind: FailureTransport, URL: u.String(), Err: err})
    }
    req.Header.Set("Accept", "application/json")

    resp, err := g.client.Do(ctx, req)
    if err != nil {
        return nil, g.fail(&Failure{Kind: classify(err), URL: u.String(), Err: err})
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        b, _ := io.ReadAll(io.LimitReader(resp.Body, 2<<10))
        return nil, g.fail(&Failure{Kind: FailureStatus, URL: u.String(), StatusCode: resp.StatusCode, Body: string(b)})
    }

    body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
    if err != nil {
        return nil, g.fail(&Failure{Kind: classify(err), URL: u.String(), Err: err})
    }
    if !json.Valid(body) {
        return nil, g.fail(&Failure{Kind: FailureDecode, URL: u.String(), Err: errors.New("response body is not valid JSON")})
    }
    return json.RawMessage(body), nil
}

func (g *Gateway) fail(f *Failure) *Failure {
    g.logger.Printf("gateway: %v", f)
    return f
}

// classify maps a transport-level error to its failure kind. Timeouts are
// checked first: a deadline blown mid-dial reports as a timeout, not a
// connection failure.
func classify(err error) FailureKind {
    if errors.Is(err, context.DeadlineExceeded) {
        return FailureTimeout
    }
    var nerr net.Error
    if errors.As(err, &nerr) && nerr.Timeout() {
        return FailureTimeout
    }
    var oerr *net.OpError
    if errors.As(err, &oerr) {
        return FailureConnection
    }
    return FailureTransport
}
