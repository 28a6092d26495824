package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	quic "github.com/quic-go/quic-go"

	"petvator/src/elev"
	"petvator/src/timer"
)

const (
	maxRequestSize = 256
	maxReplySize   = 4096
)

func quicConfig() *quic.Config {
	return &quic.Config{
		KeepAlivePeriod:      2 * time.Second,
		HandshakeIdleTimeout: 3 * time.Second,
		MaxIdleTimeout:       6 * time.Second,
	}
}

// Server exposes an elevator's control operations over QUIC. Every stream carries
// exactly one request line and one response.
type Server struct {
	ln    *quic.Listener
	ctl   elev.Controller
	clock *timer.Stopwatch
}

func Listen(addr string, ctl elev.Controller, clock *timer.Stopwatch) (*Server, error) {
	tlsConf, err := tlsConfig(true)
	if err != nil {
		return nil, fmt.Errorf("server tls config: %w", err)
	}
	ln, err := quic.ListenAddr(addr, tlsConf, quicConfig())
	if err != nil {
		return nil, fmt.Errorf("quic listen: %w", err)
	}
	return &Server{ln: ln, ctl: ctl, clock: clock}, nil
}

func (s *Server) Addr() net.Addr {
	return s.ln.Addr()
}

// Serve accepts connections until ctx is cancelled. The listener is closed on return.
func (s *Server) Serve(ctx context.Context) error {
	defer s.ln.Close()
	slog.Info("Control server listening", "addr", s.ln.Addr())

	for {
		conn, err := s.ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("quic accept: %w", err)
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn *quic.Conn) {
	defer conn.CloseWithError(0, "bye")
	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			slog.Debug("Control connection closed", "remote", conn.RemoteAddr(), "err", err)
			return
		}
		go s.handleStream(stream)
	}
}

func (s *Server) handleStream(stream *quic.Stream) {
	defer stream.Close()

	line, err := bufio.NewReader(io.LimitReader(stream, maxRequestSize)).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		slog.Warn("Control request read failed", "err", err)
		return
	}
	line = strings.TrimSpace(line)
	resp := Execute(s.ctl, s.clock, line)
	slog.Debug("Control request", "cmd", line, "code", resp.Code)

	if _, err := stream.Write(resp.Encode()); err != nil {
		slog.Warn("Control reply write failed", "err", err)
	}
}

// Call sends one request line to a control server and returns its response.
func Call(ctx context.Context, addr string, line string) (Response, error) {
	tlsConf, err := tlsConfig(false)
	if err != nil {
		return Response{}, err
	}
	conn, err := quic.DialAddr(ctx, addr, tlsConf, quicConfig())
	if err != nil {
		return Response{}, fmt.Errorf("quic dial: %w", err)
	}
	defer conn.CloseWithError(0, "bye")

	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		return Response{}, fmt.Errorf("open stream: %w", err)
	}
	if _, err := stream.Write([]byte(line + "\n")); err != nil {
		return Response{}, fmt.Errorf("write request: %w", err)
	}
	if err := stream.Close(); err != nil {
		return Response{}, fmt.Errorf("close request side: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(stream, maxReplySize))
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	return DecodeResponse(data)
}
