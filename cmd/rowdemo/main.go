// Copyright 2022~2024 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command rowdemo pipes a real shell's output through a terminal.TextBuffer
// so the row storage engine can be exercised against a live PTY instead of
// synthetic test input. It does not interpret escape sequences: bytes land
// in the grid exactly where a cursor tracking \n and \r would put them.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"os/user"
	"strings"
	"syscall"

	"github.com/creack/pty"

	"github.com/wangqi/rowbuf/terminal"
	"github.com/wangqi/rowbuf/util"
)

func main() {
	rows := flag.Int("rows", 24, "row buffer height")
	cols := flag.Int("cols", 80, "row buffer width")
	shellFlag := flag.String("shell", "", "shell to run (defaults to $SHELL, then /bin/sh)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		util.Logger.SetLevel(slog.LevelDebug)
	}

	shell := *shellFlag
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}

	if err := run(shell, *rows, *cols); err != nil {
		util.Logger.Error("rowdemo failed", "err", err)
		os.Exit(1)
	}
}

func run(shell string, rows, cols int) error {
	cmd := exec.Command(shell)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return fmt.Errorf("start pty: %w", err)
	}
	defer ptmx.Close()

	if ok, err := util.CheckIUTF8(int(ptmx.Fd())); err == nil && !ok {
		if err := util.SetIUTF8(int(ptmx.Fd())); err != nil {
			util.Logger.Warn("unable to set IUTF8 on pty", "err", err)
		}
	}

	host, _ := os.Hostname()
	if util.AddUtmpx(ptmx, host) {
		defer util.ClearUtmpx(ptmx)
		if u, err := user.Current(); err == nil {
			util.UpdateLastLog(ptmx.Name(), u.Username, host)
		}
	}

	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)

	tb := terminal.NewTextBuffer(rows, cols, terminal.Renditions{})

	done := make(chan error, 1)
	go func() { done <- drain(ptmx, tb) }()

	for {
		select {
		case <-winch:
			ws, err := pty.GetsizeFull(os.Stdin)
			if err != nil {
				continue
			}
			if err := pty.Setsize(ptmx, ws); err != nil {
				util.Logger.Warn("pty resize failed", "err", err)
				continue
			}
			tb.Resize(int(ws.Rows), int(ws.Cols))
			util.Logger.Debug("resized", "rows", ws.Rows, "cols", ws.Cols)
		case err := <-done:
			printBuffer(tb)
			if err != nil && err != io.EOF {
				return err
			}
			return nil
		}
	}
}

// drain copies everything the shell writes into tb, tracking a simple
// cursor: \n moves to the next row (scrolling the buffer when it falls off
// the bottom), \r returns to column 0. It never parses escape sequences.
func drain(r io.Reader, tb *terminal.TextBuffer) error {
	buf := make([]byte, 4096)
	row, col := 0, 0
	for {
		n, err := r.Read(buf)
		if n > 0 {
			for _, line := range strings.SplitAfter(string(buf[:n]), "\n") {
				if line == "" {
					continue
				}
				nl := strings.HasSuffix(line, "\n")
				line = strings.TrimSuffix(line, "\n")
				for i, seg := range strings.Split(line, "\r") {
					if i > 0 {
						col = 0
					}
					if seg == "" {
						continue
					}
					endCol, rest, werr := tb.WriteAt(row, col, seg)
					if werr != nil {
						return werr
					}
					col = endCol
					for rest != "" {
						row = advance(tb, row)
						endCol, rest, werr = tb.WriteAt(row, 0, rest)
						if werr != nil {
							return werr
						}
						col = endCol
					}
				}
				if nl {
					row = advance(tb, row)
					col = 0
				}
			}
		}
		if err != nil {
			return err
		}
	}
}

func advance(tb *terminal.TextBuffer, row int) int {
	if row+1 < tb.Rows() {
		return row + 1
	}
	tb.Scroll(1)
	return row
}

func printBuffer(tb *terminal.TextBuffer) {
	for i := 0; i < tb.Rows(); i++ {
		fmt.Println(tb.GetRow(i).GetText())
	}
}
