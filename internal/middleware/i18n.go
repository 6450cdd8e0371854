// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
)

// I18nMiddleware stores the caller's preferred supported language under "lang".
func I18nMiddleware(defaultLang string) gin.HandlerFunc {
	if defaultLang == "" {
		defaultLang = "en"
	}
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language"), defaultLang))
		c.Next()
	}
}

// resolveLanguage handles headers like "zh-TW,zh;q=0.9,en;q=0.8" by taking the first
// preference.
func resolveLanguage(header, defaultLang string) string {
	if header == "" {
		return defaultLang
	}

	first := strings.TrimSpace(strings.Split(strings.Split(header, ",")[0], ";")[0])
	var lang string
	switch first {
	case "zh-TW", "zh-Hant", "zh_TW", "zh-HK":
		lang = "zh_TW"
	case "en", "en-US", "en-GB":
		lang = "en"
	default:
		return defaultLang
	}

	if !i18n.IsSupported(lang) {
		return defaultLang
	}
	return lang
}
