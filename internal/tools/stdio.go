// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/inspirehep-engine/pkg/types"
)

// maxLineBytes bounds a single request line.
const maxLineBytes = 4 << 20

// Request is one line of the stdio transport.
type Request struct {
	ToolName  string          `json:"tool_name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// StdioServer answers tool requests read line by line, writing one JSON
// document per line in request order.
type StdioServer struct {
	registry *Registry
	logger   zerolog.Logger
}

// NewStdioServer returns a server dispatching to registry.
func NewStdioServer(registry *Registry, logger zerolog.Logger) *StdioServer {
	return &StdioServer{
		registry: registry,
		logger:   logger.With().Str("component", "stdio").Logger(),
	}
}

// Serve processes requests from r until EOF or ctx is done. Blank lines are
// skipped. A line that is not a valid request, or is longer than
// maxLineBytes, produces an error document; the loop keeps going.
func (s *StdioServer) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	br := bufio.NewReaderSize(r, 64*1024)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, tooLong, readErr := readLine(br, maxLineBytes)
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("reading requests: %w", readErr)
		}

		var out any
		switch {
		case tooLong:
			s.logger.Warn().Int("limit", maxLineBytes).Msg("request line too long")
			out = types.NewErrorDocument("request line too long")
		default:
			if line = bytes.TrimSpace(line); len(line) > 0 {
				out = s.handle(ctx, line)
			}
		}
		if out != nil {
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("writing response: %w", err)
			}
		}

		if readErr != nil {
			return nil
		}
	}
}

// readLine reads up to and including the next newline. A line longer than
// limit is consumed to its end and reported as tooLong with no content.
func readLine(br *bufio.Reader, limit int) (line []byte, tooLong bool, err error) {
	for {
		chunk, rerr := br.ReadSlice('\n')
		if !tooLong {
			if len(line)+len(chunk) > limit {
				tooLong, line = true, nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(rerr, bufio.ErrBufferFull) {
			continue
		}
		return line, tooLong, rerr
	}
}

func (s *StdioServer) handle(ctx context.Context, line []byte) any {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.logger.Warn().Err(err).Msg("malformed request")
		return types.NewErrorDocument(fmt.Sprintf("malformed request: %v", err))
	}
	if req.ToolName == "" {
		return types.NewErrorDocument("malformed request: tool_name is required")
	}
	return invoke(ctx, s.registry, s.logger, req.ToolName, req.Arguments)
}

// invoke calls a tool with a request-scoped logger and logs the outcome.
// HTTP calls keep the id assigned by the router middleware; stdio calls get
// a fresh one.
func invoke(ctx context.Context, reg *Registry, logger zerolog.Logger, name string, args json.RawMessage) any {
	requestID := middleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	log := logger.With().Str("request_id", requestID).Str("tool", name).Logger()
	start := time.Now()
	log.Debug().Msg("tool call")

	out := reg.Call(log.WithContext(ctx), name, args)

	ev := log.Info()
	if doc, ok := out.(types.ErrorDocument); ok {
		ev = log.Warn().Str("error", doc.Message)
	}
	ev.Dur("elapsed", time.Since(start)).Msg("tool call finished")
	return out
}
