package rating

import (
	"cmp"
	"math"
	"slices"
)

const (
	maxIterations = 10000
	tolerance     = 1e-12
	// priorGames - виртуальные победа и поражение против якоря силой 1
	priorGames = 2.0
	priorWins  = 1.0
)

type pair struct{ lo, hi int64 }

// Calculate считает рейтинги по модели Брэдли-Терри (MAP-оценка, MM-итерации).
// Учитываются только голоса с победителем. Результат не зависит от порядка голосов.
// Игроки без решённых голосов в результат не попадают, их рейтинг BaseRating.
func Calculate(votes []Vote) map[int64]float64 {
	wins := make(map[int64]float64)
	games := make(map[pair]float64)
	for _, v := range votes {
		if !v.Resolved() || v.PlayerA == v.PlayerB {
			continue
		}
		p := pair{lo: min(v.PlayerA, v.PlayerB), hi: max(v.PlayerA, v.PlayerB)}
		games[p]++
		wins[*v.WinnerID] += 1
		if _, ok := wins[v.PlayerA]; !ok {
			wins[v.PlayerA] = 0
		}
		if _, ok := wins[v.PlayerB]; !ok {
			wins[v.PlayerB] = 0
		}
	}
	if len(wins) == 0 {
		return map[int64]float64{}
	}

	ids := make([]int64, 0, len(wins))
	for id := range wins {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	pairs := make([]pair, 0, len(games))
	for p := range games {
		pairs = append(pairs, p)
	}
	slices.SortFunc(pairs, func(a, b pair) int {
		if a.lo != b.lo {
			return cmp.Compare(a.lo, b.lo)
		}
		return cmp.Compare(a.hi, b.hi)
	})

	strength := make(map[int64]float64, len(ids))
	for _, id := range ids {
		strength[id] = 1
	}
	denom := make(map[int64]float64, len(ids))
	for i := 0; i < maxIterations; i++ {
		for _, id := range ids {
			denom[id] = priorGames / (strength[id] + 1)
		}
		for _, p := range pairs {
			share := games[p] / (strength[p.lo] + strength[p.hi])
			denom[p.lo] += share
			denom[p.hi] += share
		}
		delta := 0.0
		next := make(map[int64]float64, len(ids))
		for _, id := range ids {
			s := (wins[id] + priorWins) / denom[id]
			delta = math.Max(delta, math.Abs(math.Log(s)-math.Log(strength[id])))
			next[id] = s
		}
		strength = next
		if delta < tolerance {
			break
		}
	}

	out := make(map[int64]float64, len(ids))
	for _, id := range ids {
		out[id] = BaseRating + 400*math.Log10(strength[id])
	}
	return out
}
