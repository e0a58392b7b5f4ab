package voting

import (
	"fmt"
	"strings"
	"time"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
)

var weekdaysRu = map[time.Weekday]string{
	time.Monday:    "понедельник",
	time.Tuesday:   "вторник",
	time.Wednesday: "среда",
	time.Thursday:  "четверг",
	time.Friday:    "пятница",
	time.Saturday:  "суббота",
	time.Sunday:    "воскресенье",
}

func gameDate(t time.Time) string {
	return fmt.Sprintf("%s, %s в %s", weekdaysRu[t.Weekday()], t.Format("02.01"), t.Format("15:04"))
}

func pollQuestion(gameTime time.Time, loc *location.Location) string {
	q := fmt.Sprintf("🏐 Волейбол: %s", gameDate(gameTime))
	if loc != nil && loc.Name != "" {
		q += fmt.Sprintf(" (%s)", loc.Name)
	}
	return q
}

func rosterMessage(gameTime time.Time, players []user.User) string {
	if len(players) == 0 {
		return fmt.Sprintf("🏐 Игра %s: никто не записался", gameDate(gameTime))
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🏐 Состав на игру %s:\n", gameDate(gameTime))
	for i, p := range players {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p.DisplayName())
	}
	return strings.TrimRight(b.String(), "\n")
}

func joinedShortMessage(u user.User, count, minPlayers int) string {
	return fmt.Sprintf("➕ %s записался на игру, но игроков пока мало: %d из %d", u.DisplayName(), count, minPlayers)
}

func joinedSafeMessage(u user.User, count int) string {
	return fmt.Sprintf("✅ %s записался на игру. Набралось %d игроков, игра состоится!", u.DisplayName(), count)
}

func joinedMessage(u user.User, count, playersCount int) string {
	return fmt.Sprintf("➕ %s записался на игру (%d из %d)", u.DisplayName(), count, playersCount)
}

func leftShortMessage(u user.User, count, minPlayers int) string {
	return fmt.Sprintf("⚠️ %s больше не играет. Осталось %d игроков, нужно минимум %d", u.DisplayName(), count, minPlayers)
}

func swapMessage(left, joined user.User) string {
	return fmt.Sprintf("🔄 %s больше не играет, вместо него играет %s", left.DisplayName(), joined.DisplayName())
}

func leftMessage(u user.User, count, playersCount int) string {
	return fmt.Sprintf("➖ %s больше не играет, замены нет (%d из %d)", u.DisplayName(), count, playersCount)
}
