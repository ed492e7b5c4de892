package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackmover/pkg/buildinfo"
	"github.com/matzehuels/stackmover/pkg/errors"
	"github.com/matzehuels/stackmover/pkg/input"
	"github.com/matzehuels/stackmover/pkg/mover"
	"github.com/matzehuels/stackmover/pkg/pipeline"
)

type rearrangeReq struct {
	Input   string `json:"input"`
	Mode    string `json:"mode,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`
}

type rearrangeRes struct {
	RunID      string   `json:"run_id"`
	Mode       string   `json:"mode"`
	Answer     string   `json:"answer"`
	Stacks     []string `json:"stacks"`
	Procedures int      `json:"procedures"`
	Cached     bool     `json:"cached"`
}

type healthRes struct {
	OK    bool           `json:"ok"`
	Build buildinfo.Info `json:"build"`
}

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleExample(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(input.Example))
}

func (s *Server) handleRearrange(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var req rearrangeReq
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: string(errors.ErrCodeInvalidInput), Message: "invalid JSON body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		writeJSON(w, http.StatusBadRequest, errorRes{Error: string(errors.ErrCodeInvalidInput), Message: `"input" is required`})
		return
	}

	mode := s.mode
	if req.Mode != "" {
		m, err := mover.ParseMode(req.Mode)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		mode = m
	}

	res, err := s.runner.Execute(r.Context(), req.Input, pipeline.Options{
		Mode:    mode,
		Refresh: req.Refresh,
		Logger:  log.FromContext(r.Context()),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rearrangeRes{
		RunID:      res.RunID,
		Mode:       res.Mode.String(),
		Answer:     res.Answer,
		Stacks:     res.Final,
		Procedures: res.Stats.ProcedureCount,
		Cached:     res.CacheInfo.Hit,
	})
}

// writeError maps an error to a status code and JSON body. Uncoded errors
// are logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	msg := err.Error()
	if code == "" {
		if r.Context().Err() != nil {
			status = http.StatusServiceUnavailable
			code = "TIMEOUT"
			msg = "request cancelled or timed out"
		} else {
			code = errors.ErrCodeInternal
			msg = "internal error"
		}
	}
	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).Error("request failed", "err", err)
	}
	writeJSON(w, status, errorRes{Error: string(code), Message: msg})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeMalformedInput, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode:
		return http.StatusBadRequest
	case errors.ErrCodeOutOfBounds, errors.ErrCodeInsufficientStackSize, errors.ErrCodeEmptyStack:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
