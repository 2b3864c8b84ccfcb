package slack

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zary0/domainscout/internal/types"
)

// Message is a webhook payload
type Message struct {
	Text     string  `json:"text"`
	Username string  `json:"username,omitempty"`
	Blocks   []Block `json:"blocks,omitempty"`
}

// Block is a Block Kit block
type Block struct {
	Type   string       `json:"type"`
	Text   *TextObject  `json:"text,omitempty"`
	Fields []TextObject `json:"fields,omitempty"`
}

// TextObject is a Block Kit text object
type TextObject struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func plain(text string) *TextObject {
	return &TextObject{Type: "plain_text", Text: text}
}

func mrkdwn(text string) TextObject {
	return TextObject{Type: "mrkdwn", Text: text}
}

// AnalysisMessage renders an analysis as a header, a field summary and optional risk and recommendation sections
func AnalysisMessage(a *types.Analysis) Message {
	summary := fmt.Sprintf("%s: %.1f (%s)", a.Domain, a.Result.Score, a.Result.Status)

	blocks := []Block{
		{Type: "header", Text: plain("Domain analysis: " + a.Domain)},
		{
			Type: "section",
			Fields: []TextObject{
				mrkdwn(fmt.Sprintf("*Score*\n%.1f", a.Result.Score)),
				mrkdwn("*Status*\n" + string(a.Result.Status)),
				mrkdwn("*Available*\n" + strconv.FormatBool(a.DomainInfo.IsAvailable)),
				mrkdwn("*HTTP*\n" + optionalInt(a.DomainInfo.HTTPStatus)),
				mrkdwn("*TLS certificate*\n" + optionalBool(a.DomainInfo.SSLValid)),
				mrkdwn("*Response time*\n" + optionalSeconds(a.DomainInfo.ResponseTimeSeconds)),
			},
		},
	}

	if len(a.Result.Risks) > 0 {
		blocks = append(blocks, Block{Type: "divider"}, listSection("Risks", a.Result.Risks))
	}

	if len(a.Result.Recommendations) > 0 {
		blocks = append(blocks, Block{Type: "divider"}, listSection("Recommendations", a.Result.Recommendations))
	}

	return Message{Text: summary, Blocks: blocks}
}

func listSection(title string, items []string) Block {
	var b strings.Builder

	b.WriteString("*" + title + "*")

	for _, item := range items {
		b.WriteString("\n• " + item)
	}

	text := mrkdwn(b.String())

	return Block{Type: "section", Text: &text}
}

func optionalInt(v *int) string {
	if v == nil {
		return "n/a"
	}

	return strconv.Itoa(*v)
}

func optionalBool(v *bool) string {
	if v == nil {
		return "n/a"
	}

	return strconv.FormatBool(*v)
}

func optionalSeconds(v *float64) string {
	if v == nil {
		return "n/a"
	}

	return fmt.Sprintf("%.2fs", *v)
}
