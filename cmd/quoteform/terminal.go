package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"freightquote/internal/domain/quote/download"
	"freightquote/internal/domain/quote/workflow"
)

var severityColor = map[workflow.Severity]*color.Color{
	workflow.SeveritySuccess: color.New(color.FgGreen, color.Bold),
	workflow.SeverityInfo:    color.New(color.FgCyan),
	workflow.SeverityWarn:    color.New(color.FgYellow),
	workflow.SeverityError:   color.New(color.FgRed, color.Bold),
}

// terminalUI asks on in, reports on out and saves the PDF into dir.
type terminalUI struct {
	workflow.Recorder
	in      *bufio.Reader
	out     io.Writer
	dir     download.Dir
	yes     bool
	savedTo string
}

func newTerminalUI(in io.Reader, out io.Writer, dir string, yes bool) *terminalUI {
	return &terminalUI{
		in:  bufio.NewReader(in),
		out: out,
		dir: download.Dir{Path: dir},
		yes: yes,
	}
}

func (u *terminalUI) Confirm(ctx context.Context, p workflow.Prompt) (workflow.Decision, error) {
	fmt.Fprintf(u.out, "%s\n%s ", color.New(color.Bold).Sprint(p.Header), p.Message)
	if u.yes {
		fmt.Fprintln(u.out, "yes")
		return workflow.Accept, nil
	}

	for {
		fmt.Fprint(u.out, "[y]es / [n]o / [c]ancel: ")
		line, err := u.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y", "yes":
			return workflow.Accept, nil
		case "n", "no":
			return workflow.Reject, nil
		case "c", "cancel":
			return workflow.Cancel, nil
		}
		if err != nil {
			fmt.Fprintln(u.out)
			return workflow.Cancel, err
		}
		if err := ctx.Err(); err != nil {
			return workflow.Cancel, err
		}
	}
}

func (u *terminalUI) Notify(n workflow.Notification) {
	u.Recorder.Notify(n)
	c, ok := severityColor[n.Severity]
	if !ok {
		c = color.New()
	}
	fmt.Fprintf(u.out, "%s %s\n", c.Sprint(n.Summary+":"), n.Detail)
}

func (u *terminalUI) Deliver(ctx context.Context, name string, data []byte) error {
	path, err := u.dir.Save(ctx, name, data)
	if err != nil {
		return err
	}
	u.savedTo = path
	return nil
}
