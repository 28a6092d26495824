package network

import (
	"fmt"
	"strconv"
	"strings"

	"petvator/src/elev"
	"petvator/src/timer"
	"petvator/src/types"
)

// Response is the reply to one control request: a result code and an optional body.
type Response struct {
	Code int
	Body string
}

func (r Response) Encode() []byte {
	return []byte(fmt.Sprintf("%d\n%s", r.Code, r.Body))
}

func DecodeResponse(data []byte) (Response, error) {
	head, body, _ := strings.Cut(string(data), "\n")
	code, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return Response{}, fmt.Errorf("malformed response code %q: %w", head, err)
	}
	return Response{Code: code, Body: body}, nil
}

// Execute runs one request line against the controller.
//
//	start
//	issue <start> <dest> <type>
//	stop
//	status
//	timer
func Execute(ctl elev.Controller, clock *timer.Stopwatch, line string) Response {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{Code: types.CodeRejected, Body: "empty command\n"}
	}

	switch fields[0] {
	case "start":
		return result(ctl.Start())
	case "stop":
		return result(ctl.Stop())
	case "issue":
		if len(fields) != 4 {
			return Response{Code: types.CodeRejected, Body: "usage: issue <start> <dest> <type>\n"}
		}
		args := make([]int, 3)
		for i, f := range fields[1:] {
			n, err := strconv.Atoi(f)
			if err != nil {
				return Response{Code: types.CodeRejected, Body: fmt.Sprintf("bad argument %q\n", f)}
			}
			args[i] = n
		}
		return result(ctl.IssueRequest(args[0], args[1], types.PetType(args[2])))
	case "status":
		return Response{Code: types.CodeOK, Body: ctl.Status()}
	case "timer":
		if clock == nil {
			return Response{Code: types.CodeRejected, Body: "timer not available\n"}
		}
		return Response{Code: types.CodeOK, Body: clock.Read()}
	}
	return Response{Code: types.CodeRejected, Body: fmt.Sprintf("unknown command %q\n", fields[0])}
}

func result(err error) Response {
	if err != nil {
		return Response{Code: types.ResultCode(err), Body: err.Error() + "\n"}
	}
	return Response{Code: types.CodeOK}
}
