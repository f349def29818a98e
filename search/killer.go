package search

import "falcon/board"

// KillerTable stores, per ply, up to two quiet moves that caused a beta
// cutoff, used to order quiet moves ahead of the rest in later siblings at
// the same ply.
const maxPly = 128

type KillerTable struct {
	moves [maxPly][2]board.Move
}

func NewKillerTable() *KillerTable { return &KillerTable{} }

func (k *KillerTable) Insert(ply int, m board.Move) {
	if ply >= maxPly {
		return
	}
	if k.moves[ply][0] == m {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *KillerTable) IsKiller(ply int, m board.Move) bool {
	if ply >= maxPly {
		return false
	}
	return k.moves[ply][0] == m || k.moves[ply][1] == m
}

func (k *KillerTable) Clear() { *k = KillerTable{} }
