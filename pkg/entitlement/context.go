package entitlement

import "context"

// Language context management. HTTP middleware (out of scope here) stores
// the caller's language so denial messages come back localized.
type languageCtxKey struct{}

// SetLanguageToContext stores the caller's language (BCP 47 tag or
// Accept-Language value) in the context.
func SetLanguageToContext(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageCtxKey{}, lang)
}

// GetLanguageFromContext retrieves the caller's language, if present.
func GetLanguageFromContext(ctx context.Context) (string, bool) {
	lang, ok := ctx.Value(languageCtxKey{}).(string)
	return lang, ok
}
