package cont

import (
	"context"
	"factureme/entity"
)

type ctxKey string

const (
	UserDataKey ctxKey = "userData"
	LanguageKey ctxKey = "language"
)

func PutUser(c context.Context, user *entity.User) context.Context {
	return context.WithValue(c, UserDataKey, *user)
}

// GetUser returns nil when the request was not authenticated
func GetUser(c context.Context) *entity.User {
	user, ok := c.Value(UserDataKey).(entity.User)
	if !ok {
		return nil
	}
	return &user
}

func PutLanguage(c context.Context, lang string) context.Context {
	return context.WithValue(c, LanguageKey, lang)
}

func GetLanguage(c context.Context) string {
	lang, _ := c.Value(LanguageKey).(string)
	return lang
}
