// Package lspserver implements a narrow Language Server Protocol server
// over go.lsp.dev/protocol: diagnostics only, no completion, hover, or
// rename, per SPEC_FULL.md §4.7. It implements the full protocol.Server
// interface, as protocol.ServerHandler requires; unimplemented.go
// declines every request this front end doesn't act on with
// jsonrpc2.ErrMethodNotFound.
package lspserver

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/mithril-lang/mithril/internal/cst"
	"github.com/mithril-lang/mithril/internal/diagnostics"
	"github.com/mithril-lang/mithril/internal/errors"
	"github.com/mithril-lang/mithril/internal/lexer"
	"github.com/mithril-lang/mithril/internal/lower"
	"github.com/mithril-lang/mithril/internal/parser"
)

// Server implements protocol.Server. Lifecycle and document sync drive
// real diagnostics; every other method is stubbed in unimplemented.go.
type Server struct {
	client protocol.Client
	logger *zap.Logger

	mu        sync.Mutex
	documents map[protocol.DocumentURI]*document
}

type document struct {
	sessionID uuid.UUID
	version   int32
}

// NewServer constructs a Server that publishes diagnostics over client.
func NewServer(client protocol.Client, logger *zap.Logger) *Server {
	return &Server{
		client:    client,
		logger:    logger,
		documents: make(map[protocol.DocumentURI]*document),
	}
}

// Initialize advertises a deliberately narrow capability set: full-text
// document sync and diagnostics only.
func (s *Server) Initialize(_ context.Context, _ *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
	}, nil
}

func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) Shutdown(_ context.Context) error {
	return nil
}

func (s *Server) Exit(_ context.Context) error {
	return nil
}

// DidOpen registers the document and runs the pipeline once.
func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := &document{sessionID: uuid.New(), version: params.TextDocument.Version}
	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	s.logger.Info("document opened",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.String("session", doc.sessionID.String()))

	return s.check(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// DidChange re-runs the pipeline over the full replacement text (the
// server advertises TextDocumentSyncKindFull, so there is always
// exactly one content change carrying the whole document).
func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	s.mu.Lock()
	doc, ok := s.documents[params.TextDocument.URI]
	s.mu.Unlock()
	if ok {
		doc.version = params.TextDocument.Version
	}
	return s.check(ctx, params.TextDocument.URI, params.ContentChanges[len(params.ContentChanges)-1].Text)
}

func (s *Server) DidClose(_ context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

func (s *Server) DidSave(_ context.Context, _ *protocol.DidSaveTextDocumentParams) error {
	return nil
}

// check lexes, parses, and lowers src, publishing the first fatal
// diagnostic (if any) and clearing prior diagnostics otherwise.
func (s *Server) check(ctx context.Context, uri protocol.DocumentURI, src string) error {
	var diags []protocol.Diagnostic

	stream := lexer.Lex(src)
	tree, err := parser.Parse(stream)
	if err == nil {
		_, err = lower.Lower([]*cst.Branch{tree})
	}
	if err != nil {
		if d, ok := err.(*errors.Diagnostic); ok {
			diags = []protocol.Diagnostic{toProtocolDiagnostic(d)}
		}
	}

	return s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	})
}

func toProtocolDiagnostic(d *errors.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: protocol.Position{}, End: protocol.Position{}},
		Severity: protocol.DiagnosticSeverityError,
		Code:     d.Code,
		Source:   d.Phase,
		Message:  diagnostics.Render(d, false),
	}
}
