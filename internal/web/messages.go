package web

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys shown on error screens
const (
	msgErrorTitle    = "error.title"
	msgErrorGeneric  = "error.generic"
	msgErrorNotFound = "error.notFound"
	msgRetry         = "error.retry"
	msgBackHome      = "error.backHome"
)

var supportedLanguages = []language.Tag{
	language.English,
	language.Turkish,
}

var languageMatcher = language.NewMatcher(supportedLanguages)

var messageCatalog = newMessageCatalog()

func newMessageCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	entries := map[language.Tag]map[string]string{
		language.English: {
			msgErrorTitle:    "Something went wrong",
			msgErrorGeneric:  "We could not load this page. Please try again in a moment.",
			msgErrorNotFound: "The page you are looking for does not exist.",
			msgRetry:         "Try again",
			msgBackHome:      "Back to home",
		},
		language.Turkish: {
			msgErrorTitle:    "Bir şeyler ters gitti",
			msgErrorGeneric:  "Bu sayfa yüklenemedi. Lütfen birazdan tekrar deneyin.",
			msgErrorNotFound: "Aradığınız sayfa bulunamadı.",
			msgRetry:         "Tekrar dene",
			msgBackHome:      "Ana sayfaya dön",
		},
	}
	for tag, msgs := range entries {
		for key, msg := range msgs {
			// keys and messages are static, SetString only fails on bad tags
			_ = b.SetString(tag, key, msg)
		}
	}
	return b
}

// Messages translates UI strings for one request
type Messages struct {
	Lang    string
	printer *message.Printer
}

// NewMessages picks the best supported language for an Accept-Language header
func NewMessages(acceptLanguage string) *Messages {
	tags, _, _ := language.ParseAcceptLanguage(acceptLanguage)
	_, index, _ := languageMatcher.Match(tags...)
	tag := supportedLanguages[index]

	base, _ := tag.Base()
	return &Messages{
		Lang:    base.String(),
		printer: message.NewPrinter(tag, message.Catalog(messageCatalog)),
	}
}

// Get returns the translation for key
func (m *Messages) Get(key string) string {
	return m.printer.Sprintf(key)
}
