package entity

// InboundMessage входящее текстовое сообщение от транспорта
type InboundMessage struct {
	ChatID    int64   // Telegram Chat ID
	MessageID int64   // монотонный номер апдейта
	FirstName string  // имя отправителя
	LastName  *string // фамилия, если есть
	Text      string  // текст или данные нажатой кнопки
}

// Menu строки кнопок, отображаемые под ответом
type Menu [][]string

// Reply ответ пользователю, Menu может быть пустым
type Reply struct {
	Text string
	Menu Menu
}

// NewReply создаёт ответ без меню.
func NewReply(text string) *Reply {
	return &Reply{Text: text}
}

// NewMenuReply создаёт ответ с меню.
func NewMenuReply(text string, menu Menu) *Reply {
	return &Reply{Text: text, Menu: menu}
}
