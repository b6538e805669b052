package server

import (
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rohan-flutterint/graphviz/pkg/buildinfo"
	"github.com/rohan-flutterint/graphviz/pkg/errors"
	"github.com/rohan-flutterint/graphviz/pkg/observability"
	"github.com/rohan-flutterint/graphviz/pkg/pipeline"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts, err := convertOptions(r)
	if err == nil {
		opts.Logger = s.logger
		err = opts.ValidateAndSetDefaults()
	}
	if err != nil {
		s.fail(w, r, err)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, pipeline.MaxInputSize))
	if err != nil {
		code := errors.ErrCodeInvalidInput
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			code = errors.ErrCodeInputTooLarge
		}
		s.fail(w, r, errors.Wrap(code, err, "read request body"))
		return
	}

	res, err := s.runner.Execute(ctx, body, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset="+opts.Encoding)
	w.Header().Set("X-Cache", cacheStatus(res.CacheHit))
	w.Header().Set("ETag", strconv.Quote(res.InputHash))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.GXL)
}

// convertOptions reads pipeline options from the query string and headers.
func convertOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:   q.Get("format"),
		Encoding: q.Get("encoding"),
	}
	if opts.Format == "" {
		opts.Format = formatFromContentType(r.Header.Get("Content-Type"))
	}
	for name, dst := range map[string]*bool{
		"indent":   &opts.Indent,
		"validate": &opts.Validate,
		"refresh":  &opts.Refresh,
	} {
		v := q.Get(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid %s value %q", name, v)
		}
		*dst = b
	}
	return opts, nil
}

func formatFromContentType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	switch {
	case mt == "application/json", strings.HasSuffix(mt, "+json"):
		return errors.FormatJSON
	case mt == "text/vnd.graphviz":
		return errors.FormatDOT
	}
	return ""
}

func cacheStatus(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	observability.HTTP().OnError(ctx, r.Method, r.Host, r.URL.Path, err)
	status := statusOf(err)
	if status >= 500 {
		s.logger.Error("conversion failed", "id", RequestID(ctx), "error", err)
	} else {
		s.logger.Debug("rejected request", "id", RequestID(ctx), "error", err)
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestID(ctx),
	})
}

// statusOf maps error codes to HTTP status codes.
func statusOf(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidEncoding:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidDOT, errors.ErrCodeInvalidJSON:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInputTooLarge:
		return http.StatusRequestEntityTooLarge
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
