package telegram

import (
	"fmt"
	"strings"

	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/location"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/rating"
	"github.com/VolleyLabs/VolleyballRating-sub000/internal/domain/user"
)

// сколько строк рейтинга показывать в чате
const ratingLimit = 20

// Formatter форматирует данные домена для отправки в Telegram
type Formatter struct{}

// NewFormatter создает новый форматтер
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatMainMenu форматирует главное меню
func (f *Formatter) FormatMainMenu() (string, *InlineKeyboardMarkup) {
	text := "🏐 Выберите действие:"
	keyboard := NewInlineKeyboardMarkup(
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("📊 Рейтинг", "rating"),
			NewInlineKeyboardButtonData("📍 Локации", "locations"),
		),
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("👨‍ Администратор", "admin:menu"),
		),
	)
	return text, keyboard
}

// FormatRatings форматирует первые limit строк рейтинга
func (f *Formatter) FormatRatings(ratings []rating.PlayerRating, limit int) string {
	if len(ratings) == 0 {
		return "📊 Рейтинг пока пуст"
	}
	if limit > 0 && len(ratings) > limit {
		ratings = ratings[:limit]
	}
	var b strings.Builder
	b.WriteString("📊 Рейтинг игроков:\n")
	for i, r := range ratings {
		name := user.User{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName, Username: r.Username}.DisplayName()
		fmt.Fprintf(&b, "%d. %s — %.0f\n", i+1, name, r.Rating)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatLocationsList форматирует список локаций, callback каждой кнопки: prefix+id
func (f *Formatter) FormatLocationsList(locations []location.Location, prefix string) (string, *InlineKeyboardMarkup) {
	back := NewInlineKeyboardRow(NewInlineKeyboardButtonData("🏠 Главное меню", "back:main"))
	if len(locations) == 0 {
		return "Нет доступных локаций", NewInlineKeyboardMarkup(back)
	}

	// Создаем отдельную строку для каждой локации
	var rows [][]InlineKeyboardButton
	for _, loc := range locations {
		rows = append(rows, NewInlineKeyboardRow(
			NewInlineKeyboardButtonData(loc.Name, prefix+string(loc.ID)),
		))
	}
	rows = append(rows, back)

	return "📍 Доступные локации:", NewInlineKeyboardMarkup(rows...)
}

// FormatLocationDetails форматирует детали локации
func (f *Formatter) FormatLocationDetails(loc *location.Location) (string, *InlineKeyboardMarkup) {
	text := fmt.Sprintf("📍 %s", loc.Name)
	if loc.Address != "" {
		text += fmt.Sprintf("\n🏠 Адрес: %s", loc.Address)
	}

	var rows [][]InlineKeyboardButton
	if loc.AddressMapURL != "" {
		rows = append(rows, NewInlineKeyboardRow(
			NewInlineKeyboardButtonURL("🗺️ Открыть карту", loc.AddressMapURL),
		))
	}
	rows = append(rows, NewInlineKeyboardRow(
		NewInlineKeyboardButtonData("🏠 Назад к локациям", "locations"),
	))

	return text, NewInlineKeyboardMarkup(rows...)
}

// FormatAdminMenu форматирует меню администратора
func (f *Formatter) FormatAdminMenu() (string, *InlineKeyboardMarkup) {
	text := "🔧 Панель администратора\n\nВыберите действие:"
	keyboard := NewInlineKeyboardMarkup(
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("➕ Создать локацию", "admin:create_location"),
		),
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("➖ Удалить локацию", "admin:delete_location"),
		),
		NewInlineKeyboardRow(
			NewInlineKeyboardButtonData("🏠 Главное меню", "back:main"),
		),
	)
	return text, keyboard
}

// FormatCreateLocationPrompt форматирует подсказку для создания локации
func (f *Formatter) FormatCreateLocationPrompt() string {
	return "📝 Создание новой локации\n\nОтправьте команду:\n/add_location Название|Адрес|URL карты\n\nАдрес и карта необязательны.\n\nПример:\n/add_location Спортзал|ул. Ленина, д. 10|https://maps.google.com/..."
}

// FormatLocationCreated форматирует сообщение об успешном создании локации
func (f *Formatter) FormatLocationCreated(loc *location.Location) (string, *InlineKeyboardMarkup) {
	text := fmt.Sprintf("✅ Локация успешно создана!\n\n📍 Название: %s", loc.Name)
	if loc.Address != "" {
		text += fmt.Sprintf("\n🏠 Адрес: %s", loc.Address)
	}
	if loc.AddressMapURL != "" {
		text += fmt.Sprintf("\n🗺️ Карта: %s", loc.AddressMapURL)
	}
	text += fmt.Sprintf("\n🔑 ID: %s", loc.ID)

	keyboard := NewInlineKeyboardMarkup(NewInlineKeyboardRow(
		NewInlineKeyboardButtonData("🔙 В меню администратора", "admin:menu"),
	))
	return text, keyboard
}
