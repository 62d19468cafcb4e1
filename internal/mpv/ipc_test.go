package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// fakeServer answers every command with success unless the command name
// is listed in failures
type fakeServer struct {
	t        *testing.T
	conn     net.Conn
	writeMu  sync.Mutex
	mu       sync.Mutex
	commands [][]any
	failures map[string]string
}

func newFakeServer(t *testing.T, conn net.Conn) *fakeServer {
	s := &fakeServer{t: t, conn: conn, failures: map[string]string{}}
	go s.serve()
	return s
}

func (s *fakeServer) serve() {
	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		var req struct {
			Command   []any `json:"command"`
			RequestID int64 `json:"request_id"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
			return
		}

		s.mu.Lock()
		s.commands = append(s.commands, req.Command)
		status := "success"
		if name, ok := req.Command[0].(string); ok {
			if msg, fail := s.failures[name]; fail {
				status = msg
			}
		}
		s.mu.Unlock()

		s.send(fmt.Sprintf(`{"request_id":%d,"error":%q,"data":null}`, req.RequestID, status))
	}
}

func (s *fakeServer) send(line string) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_, _ = s.conn.Write([]byte(line + "\n"))
}

func (s *fakeServer) fail(command, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[command] = msg
}

// sent returns the commands received, each joined as a string
func (s *fakeServer) sent() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.commands))
	for _, c := range s.commands {
		parts := make([]string, 0, len(c))
		for _, arg := range c {
			parts = append(parts, fmt.Sprint(arg))
		}
		out = append(out, strings.Join(parts, " "))
	}
	return out
}

// testDispatcher queues posted work until the test goroutine drains it,
// so the test goroutine plays the role of the UI loop
type testDispatcher struct {
	fns chan func()
}

func newTestDispatcher() *testDispatcher {
	return &testDispatcher{fns: make(chan func(), 64)}
}

func (d *testDispatcher) Post(fn func()) bool {
	d.fns <- fn
	return true
}

func (d *testDispatcher) waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for !cond() {
		select {
		case fn := <-d.fns:
			fn()
		case <-timeout:
			t.Fatal("condition not met before timeout")
		}
	}
}

func newTestClient(t *testing.T, handler func(Event)) (*Client, *fakeServer, *testDispatcher) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	d := newTestDispatcher()
	if handler == nil {
		handler = func(Event) {}
	}
	c := newClient(zap.NewNop(), clientConn, d, handler)
	s := newFakeServer(t, serverConn)
	t.Cleanup(func() {
		_ = c.Close()
		_ = serverConn.Close()
	})
	return c, s, d
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
