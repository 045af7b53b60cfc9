package api

const (
	languageCookieName = "quaresma_lang"
	contextLanguageKey = "current_language"
	contextMessagesKey = "current_messages"
)
