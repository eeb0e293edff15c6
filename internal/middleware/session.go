package middleware

import (
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/hertz-contrib/sessions"
	"github.com/hertz-contrib/sessions/cookie"

	"SignMeUp/config"
)

// SessionName 向导草稿所在的会话名。
const SessionName = "signmeup-session"

// SessionMiddleware 基于 cookie 的会话，承载跨步骤的向导草稿。
func SessionMiddleware() app.HandlerFunc {
	store := cookie.NewStore([]byte(config.Cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.Cfg.SessionMaxAgeMins * 60,
		HttpOnly: true,
		Secure:   config.Cfg.IsProduction(),
	})

	return sessions.New(SessionName, store)
}
