package network

import (
	"context"
	"strings"
	"testing"
	"time"

	"petvator/src/config"
	"petvator/src/elev"
	"petvator/src/timer"
	"petvator/src/types"
)

type fakeController struct {
	starts int
	issued [][3]int
	stops  int
}

func (f *fakeController) Start() error {
	f.starts++
	if f.starts > 1 {
		return types.ErrAlreadyActive
	}
	return nil
}

func (f *fakeController) IssueRequest(start, dest int, p types.PetType) error {
	f.issued = append(f.issued, [3]int{start, dest, int(p)})
	return nil
}

func (f *fakeController) Stop() error {
	f.stops++
	return nil
}

func (f *fakeController) Status() string { return "status body\n" }

func TestExecute(t *testing.T) {
	ctl := &fakeController{}

	cases := []struct {
		line string
		code int
	}{
		{"start", types.CodeOK},
		{"start", types.CodeRejected},
		{"issue 1 3 0", types.CodeOK},
		{"issue 1 3", types.CodeRejected},
		{"issue one 3 0", types.CodeRejected},
		{"stop", types.CodeOK},
		{"", types.CodeRejected},
		{"jump", types.CodeRejected},
		{"timer", types.CodeRejected},
	}
	for _, c := range cases {
		if resp := Execute(ctl, nil, c.line); resp.Code != c.code {
			t.Errorf("%q: expected code %d, got %d (%q)", c.line, c.code, resp.Code, resp.Body)
		}
	}
	if len(ctl.issued) != 1 || ctl.issued[0] != [3]int{1, 3, 0} {
		t.Errorf("Expected one issued request, got %v", ctl.issued)
	}
	if resp := Execute(ctl, nil, "status"); resp.Body != "status body\n" {
		t.Errorf("Expected status body, got %q", resp.Body)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	resp := Response{Code: types.CodeNoMemory, Body: "line one\nline two\n"}
	got, err := DecodeResponse(resp.Encode())
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if got != resp {
		t.Errorf("Expected %+v, got %+v", resp, got)
	}
	if _, err := DecodeResponse([]byte("abc\n")); err == nil {
		t.Errorf("Expected malformed code to fail")
	}
}

func TestServer_ControlsElevator(t *testing.T) {
	cfg := config.Default()
	cfg.LoadDuration = 2 * time.Millisecond
	cfg.TravelDuration = 5 * time.Millisecond
	elevator := elev.New(cfg)

	server, err := Listen("127.0.0.1:0", elevator, timer.NewStopwatch())
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.Serve(ctx) }()
	addr := server.Addr().String()

	call := func(line string) Response {
		t.Helper()
		resp, err := Call(ctx, addr, line)
		if err != nil {
			t.Fatalf("Call %q: %v", line, err)
		}
		return resp
	}

	if resp := call("issue 1 1 0"); resp.Code != types.CodeRejected {
		t.Errorf("Expected same-floor request rejected, got %+v", resp)
	}
	if resp := call("issue 1 3 0"); resp.Code != types.CodeOK {
		t.Errorf("Expected request accepted, got %+v", resp)
	}
	if resp := call("status"); !strings.Contains(resp.Body, "Number of pets waiting: 1\n") {
		t.Errorf("Expected one waiting pet in status, got:\n%s", resp.Body)
	}
	if resp := call("start"); resp.Code != types.CodeOK {
		t.Errorf("Expected start accepted, got %+v", resp)
	}
	if resp := call("start"); resp.Code != types.CodeRejected {
		t.Errorf("Expected second start rejected, got %+v", resp)
	}
	if resp := call("timer"); !strings.HasPrefix(resp.Body, "Current time: ") {
		t.Errorf("Unexpected timer body %q", resp.Body)
	}

	deadline := time.After(5 * time.Second)
	for !strings.Contains(call("status").Body, "Number of pets serviced: 1\n") {
		select {
		case <-deadline:
			t.Fatalf("Timed out waiting for delivery")
		case <-time.After(10 * time.Millisecond):
		}
	}

	if resp := call("stop"); resp.Code != types.CodeOK {
		t.Errorf("Expected stop accepted, got %+v", resp)
	}
	if resp := call("stop"); resp.Code != types.CodeRejected {
		t.Errorf("Expected second stop rejected, got %+v", resp)
	}

	if err := elevator.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
	cancel()
	if err := <-serveErr; err != nil {
		t.Errorf("Serve: %v", err)
	}
}
