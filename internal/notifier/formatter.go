package notifier

import (
	"fmt"
	"html"
	"strings"

	"ChartAI/internal/model"
)

// FormatMessage renders a bot chat message as Telegram HTML.
func FormatMessage(msg model.ChatMessage) string {
	switch msg.Kind {
	case model.KindBotAnalysis:
		if msg.Analysis == nil {
			return ""
		}
		return FormatAnalysis(msg.Analysis)
	case model.KindBotError:
		return "⚠️ " + html.EscapeString(msg.Text)
	case model.KindBotInfo:
		return "ℹ️ " + html.EscapeString(msg.Text)
	default:
		return html.EscapeString(msg.Text)
	}
}

// FormatAnalysis renders the six analysis sections and the disclaimer.
func FormatAnalysis(a *model.Analysis) string {
	var b strings.Builder

	b.WriteString("📊 <b>Chart Analysis</b>\n\n")
	section := func(icon, title, body string) {
		b.WriteString(fmt.Sprintf("%s <b>%s:</b>\n%s\n\n", icon, title, html.EscapeString(body)))
	}
	section("📈", "Trend", a.Trend)
	section("🔺", "Resistance", a.Resistance)
	section("🔻", "Support", a.Support)
	section("🔍", "Patterns", a.Patterns)
	section("📊", "Volume", a.Volume)
	section("📚", "Learn", a.Education)
	b.WriteString(fmt.Sprintf("<i>%s</i>", html.EscapeString(a.Disclaimer)))

	return b.String()
}
