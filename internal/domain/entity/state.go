package entity

// StateSnapshot сохраняемое состояние всех чатов бота
type StateSnapshot struct {
	LastMessageID *int64       `json:"last_message_id,omitempty"`
	Entries       []ChatRecord `json:"entries"`
}

// ChatRecord сохраняемое состояние одного чата
type ChatRecord struct {
	ChatID    int64           `json:"chat_id"`
	Profile   UserProfile     `json:"profile"`
	Processor ProcessorRecord `json:"dialog_processor"`
}

// ProcessorRecord активный диалог чата, nil если диалога нет
type ProcessorRecord struct {
	ActiveDialog *DialogEnvelope `json:"active_dialog"`
}

// DialogEnvelope тег типа диалога и его собственное сериализованное состояние
type DialogEnvelope struct {
	Tag     string `json:"tag"`
	Payload string `json:"payload"`
}
