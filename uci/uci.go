// Package uci implements the UCI protocol adapter: it translates text
// commands on stdin into calls against the board and search packages and
// translates search progress back into "info"/"bestmove" lines. The Loop
// type can be driven from a test with an in-memory reader/writer instead
// of stdin/stdout.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"falcon/board"
	"falcon/search"
	"falcon/tablebase"
)

const engineName = "Falcon 1.0"
const engineAuthor = "falcon contributors"

// Loop owns the engine state for one UCI session: the current position,
// the searcher, and the goroutine running the current search, if any.
type Loop struct {
	out *syncWriter

	pos      *board.Position
	searcher *search.Searcher
	stopper  *search.Stopper
	tbConfig *tablebase.Config

	searchWG sync.WaitGroup
}

// syncWriter serializes writes from the UCI command goroutine and the
// background search goroutine onto the same output stream.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

func NewLoop(out io.Writer) *Loop {
	pos, _ := board.ParseFEN(board.StartFEN)
	tbConfig := tablebase.NewConfig()
	searcher := search.NewSearcher(search.NewTranspositionTable(64))
	searcher.SetTablebase(tablebase.Null{}, tbConfig)
	return &Loop{
		out:      &syncWriter{w: out},
		pos:      pos,
		searcher: searcher,
		tbConfig: tbConfig,
	}
}

// Run reads commands from in until "quit" or EOF.
func (l *Loop) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if l.handle(line) {
			return
		}
	}
}

func (l *Loop) printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

func (l *Loop) handle(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "uci":
		l.printf("id name %s\n", engineName)
		l.printf("id author %s\n", engineAuthor)
		l.printf("option name SyzygyPath type string default <empty>\n")
		l.printf("option name SyzygyProbeDepth type spin default 1 min 0 max 100\n")
		l.printf("option name Syzygy50MoveRule type check default true\n")
		l.printf("option name SyzygyProbeLimit type spin default 6 min 0 max 7\n")
		l.printf("uciok\n")
	case "isready":
		l.printf("readyok\n")
	case "ucinewgame":
		l.pos, _ = board.ParseFEN(board.StartFEN)
	case "setoption":
		l.handleSetOption(args)
	case "position":
		l.handlePosition(args)
	case "go":
		l.handleGo(args)
	case "stop":
		if l.stopper != nil {
			l.stopper.Stop()
		}
		l.searchWG.Wait()
	case "quit":
		if l.stopper != nil {
			l.stopper.Stop()
		}
		l.searchWG.Wait()
		return true
	}
	return false
}

// handleSetOption parses "setoption name <Name> value <Value>" and applies
// the tablebase-related options the engine exposes.
func (l *Loop) handleSetOption(args []string) {
	var name, value string
	section := ""
	for _, a := range args {
		switch a {
		case "name":
			section = "name"
			continue
		case "value":
			section = "value"
			continue
		}
		switch section {
		case "name":
			if name != "" {
				name += " "
			}
			name += a
		case "value":
			if value != "" {
				value += " "
			}
			value += a
		}
	}

	switch name {
	case "SyzygyPath":
		l.tbConfig.SetPath(value)
	case "SyzygyProbeDepth":
		l.tbConfig.SetProbeDepth(atoiOr([]string{value}, 0, 1))
	case "Syzygy50MoveRule":
		l.tbConfig.SetUse50MoveRule(value == "true")
	case "SyzygyProbeLimit":
		l.tbConfig.SetProbeLimit(atoiOr([]string{value}, 0, 6))
	}
}

func (l *Loop) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}
	var pos *board.Position
	var rest []string

	if args[0] == "startpos" {
		pos, _ = board.ParseFEN(board.StartFEN)
		rest = args[1:]
	} else if args[0] == "fen" {
		idx := 1
		fenParts := []string{}
		for idx < len(args) && args[idx] != "moves" {
			fenParts = append(fenParts, args[idx])
			idx++
		}
		p, err := board.ParseFEN(strings.Join(fenParts, " "))
		if err != nil {
			return
		}
		pos = p
		rest = args[idx:]
	} else {
		return
	}

	if len(rest) > 0 && rest[0] == "moves" {
		for _, mv := range rest[1:] {
			m, err := board.ParseUCIMove(pos, mv)
			if err != nil {
				return
			}
			pos.MakeMove(m)
		}
	}
	l.pos = pos
}

func (l *Loop) handleGo(args []string) {
	limits := search.Limits{}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			i++
			limits.Depth = atoiOr(args, i, 0)
		case "nodes":
			i++
			limits.Nodes = uint64(atoiOr(args, i, 0))
		case "movetime":
			i++
			limits.MoveTime = time.Duration(atoiOr(args, i, 0)) * time.Millisecond
		case "wtime":
			i++
			limits.WhiteTime = time.Duration(atoiOr(args, i, 0)) * time.Millisecond
		case "btime":
			i++
			limits.BlackTime = time.Duration(atoiOr(args, i, 0)) * time.Millisecond
		case "winc":
			i++
			limits.WhiteInc = time.Duration(atoiOr(args, i, 0)) * time.Millisecond
		case "binc":
			i++
			limits.BlackInc = time.Duration(atoiOr(args, i, 0)) * time.Millisecond
		case "movestogo":
			i++
			limits.MovesToGo = atoiOr(args, i, 0)
		case "infinite":
			limits.Infinite = true
		}
	}

	l.searchWG.Wait()
	pos := l.pos.Clone()
	l.stopper = &search.Stopper{}
	reporter := &uciReporter{out: l.out}

	l.searchWG.Add(1)
	go func() {
		defer l.searchWG.Done()
		best := l.searcher.Search(pos, limits, l.stopper, reporter)
		l.printf("bestmove %s\n", best)
	}()
}

func atoiOr(args []string, i, def int) int {
	if i < 0 || i >= len(args) {
		return def
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return def
	}
	return n
}

// uciReporter translates search.IterationInfo into UCI "info" lines.
// ReportBestMove is deliberately a no-op: handleGo prints "bestmove" itself
// once Search returns, so the two don't race on l.out.
type uciReporter struct {
	out io.Writer
}

func (r *uciReporter) ReportIteration(info search.IterationInfo) {
	pvStr := make([]string, len(info.PV))
	for i, m := range info.PV {
		pvStr[i] = m.String()
	}
	scoreStr := fmt.Sprintf("cp %d", info.Score)
	if info.Mate != 0 {
		scoreStr = fmt.Sprintf("mate %d", info.Mate)
	}
	fmt.Fprintf(r.out, "info depth %d score %s nodes %d nps %d hashfull %d time %d pv %s\n",
		info.Depth, scoreStr, info.Nodes, info.NPS, info.HashFull, info.ElapsedMs, strings.Join(pvStr, " "))
}

func (r *uciReporter) ReportBestMove(board.Move, board.Move) {}
