package tyson

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
	"sync"
)

// Core is the central actor that owns the evaluator and handles requests.
// Connections run on their own goroutines but every evaluation happens on
// the actor goroutine, one request at a time.
type Core struct {
	eval       *Evaluator
	transcript *Transcript // nil when recording is disabled
	requests   chan coreRequest
	done       chan struct{}
	stopOnce   sync.Once
	listener   net.Listener
	traces     []Trace
	maxTraces  int
}

type coreRequest struct {
	msg      map[string]any
	response chan map[string]any
}

// NewCore creates a core listening on cfg.Socket. If cfg.Transcript is set,
// every evaluation is also recorded there.
func NewCore(cfg Config) (*Core, error) {
	// Clean up a stale socket
	os.Remove(cfg.Socket)

	c := newCore(cfg.MaxTraces)

	if cfg.Transcript != "" {
		tr, err := OpenTranscript(cfg.Transcript)
		if err != nil {
			return nil, fmt.Errorf("init transcript: %w", err)
		}
		c.transcript = tr
	}

	listener, err := net.Listen("unix", cfg.Socket)
	if err != nil {
		if c.transcript != nil {
			c.transcript.Close()
		}
		return nil, fmt.Errorf("listen: %w", err)
	}
	c.listener = listener
	return c, nil
}

func newCore(maxTraces int) *Core {
	return &Core{
		eval:      NewEvaluator(),
		requests:  make(chan coreRequest, 64),
		done:      make(chan struct{}),
		maxTraces: maxTraces,
	}
}

// Addr returns the socket address the core listens on.
func (c *Core) Addr() net.Addr {
	return c.listener.Addr()
}

// Run starts the actor goroutine and accepts connections. Blocks until shutdown.
func (c *Core) Run() {
	go c.actorLoop()
	c.acceptClients()
}

func (c *Core) acceptClients() {
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			return
		}
		go c.handleClientConnection(conn)
	}
}

// Shutdown stops accepting connections and signals the actor, which
// releases the environment and closes the transcript on its way out.
func (c *Core) Shutdown() {
	c.stopOnce.Do(func() {
		if c.listener != nil {
			c.listener.Close()
		}
		close(c.done)
	})
}

// actorLoop is the single goroutine that owns evaluator state.
func (c *Core) actorLoop() {
	for {
		select {
		case req := <-c.requests:
			req.response <- c.handleRequest(req.msg)
		case <-c.done:
			c.eval.Env.Release()
			if c.transcript != nil {
				c.transcript.Close()
			}
			return
		}
	}
}

// sendToActor sends a request to the core actor and waits for the response.
func (c *Core) sendToActor(msg map[string]any) map[string]any {
	id, _ := msg["id"].(string)
	resp := make(chan map[string]any, 1)
	select {
	case c.requests <- coreRequest{msg: msg, response: resp}:
	case <-c.done:
		return errorResponse(id, "core is shutting down")
	}
	select {
	case r := <-resp:
		return r
	case <-c.done:
		return errorResponse(id, "core is shutting down")
	}
}

func (c *Core) handleRequest(msg map[string]any) map[string]any {
	id, _ := msg["id"].(string)

	op, _ := msg["op"].(string)
	if op == "" {
		// No op: return the manual
		return c.coreManual(id)
	}

	switch op {
	case "eval":
		return c.handleEval(id, msg)
	case "env":
		return c.handleEnv(id)
	case "parse":
		return c.handleParse(id, msg)
	case "traces":
		return c.handleTraces(id, msg)
	default:
		return errorResponse(id, fmt.Sprintf("unknown op: %s", op))
	}
}

func (c *Core) coreManual(id string) map[string]any {
	names := make([]any, 0, len(builtinTable))
	for _, f := range builtinTable {
		names = append(names, f.Name)
	}
	return map[string]any{
		"id": id,
		"ok": true,
		"value": map[string]any{
			"name":    "tyson-core",
			"version": Version,
			"ops": map[string]any{
				"eval":   "Evaluate a tyson expression. Params: expr (string)",
				"env":    "List every binding in the global environment.",
				"parse":  "Show the parse tree of an expression. Params: expr (string)",
				"traces": "Return recent evaluation traces. Params: n (int, optional)",
			},
			"builtins": names,
		},
	}
}

func (c *Core) handleEval(id string, msg map[string]any) map[string]any {
	expr, ok := msg["expr"].(string)
	if !ok {
		return errorResponse(id, "eval: missing 'expr' string")
	}

	trace := c.eval.Run(expr)
	c.appendTrace(trace)
	if c.transcript != nil {
		if err := c.transcript.Record(trace); err != nil {
			log.Printf("record transcript: %v", err)
		}
	}

	defs := make([]any, len(trace.Defs))
	for i, d := range trace.Defs {
		defs[i] = d
	}
	resp := map[string]any{
		"id": id,
		"ok": !trace.Failed(),
		"value": map[string]any{
			"result": trace.Result,
			"kind":   trace.Kind,
			"defs":   defs,
		},
	}
	if trace.Failed() {
		resp["error"] = trace.Error
		if trace.Code != "" {
			resp["code"] = trace.Code
		}
	}
	return resp
}

func (c *Core) handleEnv(id string) map[string]any {
	names := c.eval.Env.Names()
	bindings := make([]any, len(names))
	for i, name := range names {
		v := c.eval.Env.Get(name)
		bindings[i] = map[string]any{"name": name, "value": v.String(), "kind": v.KindName()}
		v.Release()
	}
	return map[string]any{"id": id, "ok": true, "value": bindings}
}

func (c *Core) handleParse(id string, msg map[string]any) map[string]any {
	expr, ok := msg["expr"].(string)
	if !ok {
		return errorResponse(id, "parse: missing 'expr' string")
	}
	tree, err := Parse(expr)
	if err != nil {
		return errorResponse(id, err.Error())
	}
	var sb strings.Builder
	tree.Print(&sb)
	return map[string]any{
		"id": id,
		"ok": true,
		"value": map[string]any{
			"tree":  sb.String(),
			"nodes": tree.Count(),
		},
	}
}

// handleTraces: {"op": "traces"} or {"op": "traces", "n": N} returns the last N traces.
func (c *Core) handleTraces(id string, msg map[string]any) map[string]any {
	n := len(c.traces)
	if raw, exists := msg["n"]; exists {
		f, ok := raw.(float64)
		if !ok || f < 0 {
			return errorResponse(id, "traces: 'n' must be a non-negative number")
		}
		if f < float64(n) {
			n = int(f)
		}
	}

	start := len(c.traces) - n
	result := make([]any, n)
	for i := 0; i < n; i++ {
		result[i] = c.traces[start+i].ToMap()
	}
	return map[string]any{"id": id, "ok": true, "value": result}
}

func errorResponse(id, errMsg string) map[string]any {
	return map[string]any{"id": id, "ok": false, "error": errMsg}
}

// appendTrace adds a trace and enforces the maxTraces cap.
func (c *Core) appendTrace(t Trace) {
	if c.maxTraces == 0 {
		return
	}
	c.traces = append(c.traces, t)
	if len(c.traces) > c.maxTraces {
		// Drop oldest traces
		excess := len(c.traces) - c.maxTraces
		c.traces = c.traces[excess:]
	}
}

// --- Connection handling ---

func (c *Core) handleClientConnection(conn net.Conn) {
	defer conn.Close()

	for {
		msg, err := ReadMsg(conn)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("read client message: %v", err)
			}
			return
		}

		resp := c.sendToActor(msg)
		if err := WriteMsg(conn, resp); err != nil {
			log.Printf("write client response: %v", err)
			return
		}
	}
}
