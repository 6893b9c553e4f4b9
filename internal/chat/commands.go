package chat

import "strings"

// command is a parsed chat input.
type command int

const (
	cmdAsk command = iota
	cmdHelp
	cmdAPIKey
	cmdTest
	cmdAnalyzeScreen
)

// screenKeywords route free text to the screen-capture path.
var screenKeywords = []string{
	"chart",
	"screen",
	"analyze this",
	"analyse this",
	"what do you see",
	"look at this",
}

// HelpText is the fixed command summary.
const HelpText = `Commands:
/apikey <key>     set a new API key and test it
/test             test the connection with the current key
help              show this message

Mention "chart" or "screen" (e.g. "analyze this chart") to have the current
chart captured and analysed. Anything else is answered as a general market
question.`

// parse classifies text and returns the command argument, if any.
func parse(text string) (command, string) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	switch {
	case lower == "help" || lower == "/help":
		return cmdHelp, ""
	case lower == "/apikey" || strings.HasPrefix(lower, "/apikey "):
		return cmdAPIKey, strings.TrimSpace(trimmed[len("/apikey"):])
	case lower == "/test" || lower == "test connection":
		return cmdTest, ""
	}
	for _, kw := range screenKeywords {
		if strings.Contains(lower, kw) {
			return cmdAnalyzeScreen, ""
		}
	}
	return cmdAsk, trimmed
}
