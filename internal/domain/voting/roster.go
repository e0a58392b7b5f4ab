package voting

// Roster - состав в порядке записи. Первые PlayersCount играют, остальные в запасе.
type Roster []Player

func (r Roster) Starters(playersCount int) Roster {
	if playersCount < 0 {
		playersCount = 0
	}
	if len(r) <= playersCount {
		return r
	}
	return r[:playersCount]
}

func (r Roster) Substitutes(playersCount int) Roster {
	if playersCount < 0 {
		playersCount = 0
	}
	if len(r) <= playersCount {
		return nil
	}
	return r[playersCount:]
}

// IndexOf возвращает позицию игрока или -1
func (r Roster) IndexOf(playerID int64) int {
	for i, p := range r {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}

func (r Roster) PlayerIDs() []int64 {
	ids := make([]int64, 0, len(r))
	for _, p := range r {
		ids = append(ids, p.PlayerID)
	}
	return ids
}
