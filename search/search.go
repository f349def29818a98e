package search

import (
	"time"

	"falcon/board"
	"falcon/tablebase"
)

// Score constants. MateValue is the score assigned to "mate in 0" at the
// node where it is delivered; scores above MateThreshold are mate scores,
// normalized by ply before being stored in the transposition table (see
// AdjustMateScoreForStore/FromTT).
const (
	MateValue     = 10000
	MateThreshold = MateValue - maxPly
	DrawScore     = 0
)

// Searcher runs iterative-deepening alpha-beta search over a Position:
// aspiration windows, negamax alpha-beta, a transposition table,
// null-move pruning, futility pruning, principal-variation search,
// killer/MVV-LVA move ordering, quiescence search, mate-distance scoring,
// draw detection, late move reductions, and stop responsiveness.
type Searcher struct {
	tt      *TranspositionTable
	killers *KillerTable

	tb       tablebase.Probe
	tbConfig *tablebase.Config

	stopper  *Stopper
	reporter Reporter

	nodes     uint64
	deadline  time.Time
	hasDeadline bool

	rootPV []board.Move
}

func NewSearcher(tt *TranspositionTable) *Searcher {
	return &Searcher{
		tt:       tt,
		killers:  NewKillerTable(),
		tb:       tablebase.Null{},
		tbConfig: tablebase.NewConfig(),
	}
}

// SetTablebase swaps in a tablebase collaborator other than the default
// Null implementation, along with the probing configuration to use.
func (s *Searcher) SetTablebase(tb tablebase.Probe, cfg *tablebase.Config) {
	s.tb = tb
	s.tbConfig = cfg
}

// Search runs iterative deepening from pos until limits/stopper stop it,
// reporting each completed iteration and the final best move to reporter.
// It returns the best move found.
func (s *Searcher) Search(pos *board.Position, limits Limits, stopper *Stopper, reporter Reporter) board.Move {
	if reporter == nil {
		reporter = NullReporter{}
	}
	s.stopper = stopper
	s.reporter = reporter
	s.nodes = 0
	s.killers.Clear()
	s.tt.NewSearch()

	startTime := time.Now()
	s.hasDeadline = false
	if limits.MoveTime > 0 {
		s.deadline = startTime.Add(limits.MoveTime)
		s.hasDeadline = true
	} else if !limits.Infinite && (limits.WhiteTime > 0 || limits.BlackTime > 0) {
		timeLeft, inc := limits.WhiteTime, limits.WhiteInc
		if pos.SideToMove() == board.Black {
			timeLeft, inc = limits.BlackTime, limits.BlackInc
		}
		s.deadline = startTime.Add(AllocateTime(timeLeft, inc))
		s.hasDeadline = true
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = maxPly - 1
	}

	var best board.Move
	var bestScore int
	prevScore := 0

	for depth := 1; depth <= maxDepth; depth++ {
		score, pv, ok := s.searchRootWithAspiration(pos, depth, prevScore)
		if !ok {
			break
		}
		bestScore = score
		prevScore = score
		if len(pv) > 0 {
			best = pv[0]
		}
		s.rootPV = pv

		elapsed := time.Since(startTime)
		nps := uint64(0)
		if elapsed > 0 {
			nps = uint64(float64(s.nodes) / elapsed.Seconds())
		}
		info := IterationInfo{
			Depth:     depth,
			Score:     bestScore,
			Nodes:     s.nodes,
			NPS:       nps,
			ElapsedMs: elapsed.Milliseconds(),
			PV:        pv,
			HashFull:  s.tt.HashFull(),
		}
		if bestScore > MateThreshold {
			info.Mate = (MateValue - bestScore + 1) / 2
		} else if bestScore < -MateThreshold {
			info.Mate = -(MateValue + bestScore + 1) / 2
		}
		reporter.ReportIteration(info)

		if s.shouldStopBetweenIterations(limits, depth) {
			break
		}
	}

	var ponder board.Move
	if len(s.rootPV) > 1 {
		ponder = s.rootPV[1]
	}
	reporter.ReportBestMove(best, ponder)
	return best
}

func (s *Searcher) shouldStopBetweenIterations(limits Limits, depthJustFinished int) bool {
	if s.stopper != nil && s.stopper.Stopped() {
		return true
	}
	if limits.Nodes > 0 && s.nodes >= limits.Nodes {
		return true
	}
	if s.hasDeadline && time.Now().After(s.deadline) {
		return true
	}
	return false
}

// searchRootWithAspiration runs one iterative-deepening iteration with a
// narrow window around the previous iteration's score, re-searching with a
// progressively wider window on failure.
func (s *Searcher) searchRootWithAspiration(pos *board.Position, depth, prevScore int) (int, []board.Move, bool) {
	if depth <= 3 {
		pv := make([]board.Move, 0, depth)
		score := s.alphabeta(pos, depth, 0, -MateValue, MateValue, &pv, true)
		if s.outOfTime() {
			return 0, nil, false
		}
		return score, pv, true
	}

	window := 25
	alpha, beta := prevScore-window, prevScore+window
	for {
		pv := make([]board.Move, 0, depth)
		score := s.alphabeta(pos, depth, 0, alpha, beta, &pv, true)
		if s.outOfTime() {
			return 0, nil, false
		}
		if score <= alpha {
			alpha -= window
			window *= 2
			continue
		}
		if score >= beta {
			beta += window
			window *= 2
			continue
		}
		return score, pv, true
	}
}

func (s *Searcher) outOfTime() bool {
	if s.stopper != nil && s.stopper.Stopped() {
		return true
	}
	return s.hasDeadline && time.Now().After(s.deadline)
}

const nodeCheckInterval = 2048

// alphabeta is the negamax search core. ply is distance from the search
// root (used for mate-distance scoring and killer-table indexing);
// isPVNode selects principal-variation search on the first child of each
// node.
func (s *Searcher) alphabeta(pos *board.Position, depth, ply int, alpha, beta int, pv *[]board.Move, isPVNode bool) int {
	s.nodes++
	if s.nodes%nodeCheckInterval == 0 && s.outOfTime() {
		return 0
	}

	if ply > 0 {
		if pos.IsFiftyMoveDraw() || pos.IsRepetitionDraw(ply) {
			return DrawScore
		}
	}

	inCheck := pos.InCheck()
	if inCheck {
		depth++ // check extension
	}

	if depth <= 0 {
		return s.quiescence(pos, ply, alpha, beta)
	}

	if ply > 0 && tablebase.ShouldProbe(pos, depth, s.tbConfig) {
		if wdl, ok := s.tb.ProbeWDL(pos); ok {
			return tablebase.CentipawnValue(wdl)
		}
	}

	key := pos.ZobristKey()
	var ttMove board.Move
	if entry, ok := s.tt.Probe(key); ok {
		ttMove = entry.Move
		if int(entry.Depth) >= depth {
			score := AdjustMateScoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case BoundExact:
				// On a PV node this would truncate the reported
				// principal variation to just this one move; only take
				// the shortcut off the PV, where the line isn't reported.
				if !isPVNode {
					*pv = append((*pv)[:0], entry.Move)
					return score
				}
			case BoundLower:
				if score >= beta {
					return score
				}
			case BoundUpper:
				if score <= alpha {
					return score
				}
			}
		}
	}

	// Null-move pruning: skip our move entirely and see if the opponent is
	// still in trouble at a reduced depth; if so this node is unlikely to
	// matter.
	if !isPVNode && !inCheck && depth >= 3 && ply > 0 && hasNonPawnMaterial(pos) {
		pos.MakeNullMove()
		var childPV []board.Move
		score := -s.alphabeta(pos, depth-3, ply+1, -beta, -beta+1, &childPV, false)
		pos.UnmakeNullMove()
		if s.outOfTime() {
			return 0
		}
		if score >= beta {
			s.tt.Store(key, board.NullMove, AdjustMateScoreForStore(beta, ply), depth, BoundLower)
			return beta
		}
	}

	var ml board.MoveList
	board.GenerateLegalMoves(pos, &ml)
	orderMoves(pos, &ml, ttMove, s.killers, ply)

	if len(ml.Moves) == 0 {
		if inCheck {
			return -MateValue + ply
		}
		return DrawScore
	}

	originalAlpha := alpha
	var bestMove board.Move
	bestScore := -MateValue - 1

	for i, m := range ml.Moves {
		childIsPV := isPVNode && i == 0

		givesCheck := inCheck || board.GivesCheck(pos, m)
		isQuiet := !m.IsCapture() && !m.IsPromotion()

		// Futility pruning: near the leaves, a quiet move that can't plausibly
		// close a large static gap is skipped outright.
		if depth <= 2 && !childIsPV && !givesCheck && isQuiet && i > 0 {
			margin := 120 * depth
			if Evaluate(pos)+margin <= alpha {
				continue
			}
		}

		pos.MakeMove(m)

		searchDepth := depth - 1
		reduction := 0
		if !childIsPV && !givesCheck && isQuiet && depth >= 3 && i >= 3 {
			reduction = lateMoveReduction(depth, i)
			if reduction > searchDepth-1 {
				reduction = searchDepth - 1
			}
			if reduction < 0 {
				reduction = 0
			}
		}

		var childPV []board.Move
		var score int
		if i == 0 {
			score = -s.alphabeta(pos, searchDepth, ply+1, -beta, -alpha, &childPV, childIsPV)
		} else {
			// Principal variation search: try a cheap null-window search first,
			// re-searching at full width only if it beats alpha.
			score = -s.alphabeta(pos, searchDepth-reduction, ply+1, -alpha-1, -alpha, &childPV, false)
			if score > alpha && (reduction > 0 || score < beta) {
				score = -s.alphabeta(pos, searchDepth, ply+1, -beta, -alpha, &childPV, false)
			}
		}

		pos.UnmakeMove()

		if s.outOfTime() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = m
			if score > alpha {
				alpha = score
				*pv = append((*pv)[:0], m)
				*pv = append(*pv, childPV...)
			}
		}

		if alpha >= beta {
			if isQuiet {
				s.killers.Insert(ply, m)
			}
			break
		}
	}

	bound := BoundExact
	if bestScore <= originalAlpha {
		bound = BoundUpper
	} else if bestScore >= beta {
		bound = BoundLower
	}
	s.tt.Store(key, bestMove, AdjustMateScoreForStore(bestScore, ply), depth, bound)

	return bestScore
}

// quiescence extends search through captures and promotions past the
// nominal depth limit so the static evaluation is never asked to judge a
// position where material is hanging mid-exchange. Uses stand-pat plus
// delta pruning.
func (s *Searcher) quiescence(pos *board.Position, ply, alpha, beta int) int {
	s.nodes++
	if s.nodes%nodeCheckInterval == 0 && s.outOfTime() {
		return 0
	}

	standPat := Evaluate(pos)
	if standPat >= beta {
		return standPat
	}
	const deltaMargin = 975
	if standPat+deltaMargin < alpha {
		return standPat
	}
	if standPat > alpha {
		alpha = standPat
	}

	var ml board.MoveList
	board.GenerateCaptures(pos, &ml)
	orderMoves(pos, &ml, board.NullMove, s.killers, minInt(ply, maxPly-1))

	for _, m := range ml.Moves {
		pos.MakeMove(m)
		score := -s.quiescence(pos, ply+1, -beta, -alpha)
		pos.UnmakeMove()

		if s.outOfTime() {
			return 0
		}
		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func hasNonPawnMaterial(pos *board.Position) bool {
	b := pos.Board()
	c := pos.SideToMove()
	for pt := board.Knight; pt <= board.Queen; pt++ {
		if b.PieceBB(board.MakePiece(c, pt)) != 0 {
			return true
		}
	}
	return false
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// lateMoveReduction grows gently with depth and move lateness, capped so
// the reduced depth never drops below the floor alphabeta enforces.
func lateMoveReduction(depth, moveIndex int) int {
	r := 1 + depth/8 + moveIndex/16
	if r > depth-2 {
		r = depth - 2
	}
	if r < 0 {
		r = 0
	}
	return r
}
