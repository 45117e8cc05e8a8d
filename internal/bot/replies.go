package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyphera/kaia-bot/internal/client/line"
	"github.com/cyphera/kaia-bot/internal/donation"
	"github.com/cyphera/kaia-bot/internal/services"
)

const greetingText = "This is a LINE bot for connecting Kaia wallets, sending transactions and donating to fund-raising projects.\n\n" +
	"Commands list:\n" +
	"/connect - Connect to a wallet\n" +
	"/my_wallet - Show connected wallet\n" +
	"/send_tx - Send transaction\n" +
	"/donate - Donate to a project\n" +
	"/project_list - Show fund-raising projects\n" +
	"/disconnect - Disconnect from the wallet"

var commandChips = []line.QuickReplyItem{
	line.MessageAction("/connect", "/connect"),
	line.MessageAction("/my_wallet", "/my_wallet"),
	line.MessageAction("/send_tx", "/send_tx"),
	line.MessageAction("/donate", "/donate"),
	line.MessageAction("/project_list", "/project_list"),
	line.MessageAction("/disconnect", "/disconnect"),
}

// textWithCommands builds a text message with the command chips attached,
// so the user always has the next action at hand.
func textWithCommands(text string) line.TextMessage {
	msg := line.NewTextMessage(text)
	msg.QuickReply = &line.QuickReply{Items: commandChips}
	return msg
}

func greetingMessage() line.TextMessage {
	return textWithCommands(greetingText)
}

// formatProjects renders project records for the chat, newest first.
func formatProjects(projects []donation.Project, now time.Time) string {
	if len(projects) == 0 {
		return "There are no fund-raising projects yet."
	}

	var b strings.Builder
	b.WriteString("Fund-raising projects:\n")
	for _, p := range projects {
		b.WriteString(fmt.Sprintf("\n#%s %s\n", p.ID.String(), p.Title))
		if p.Description != "" {
			b.WriteString(p.Description + "\n")
		}
		b.WriteString(fmt.Sprintf("Raised %s / %s KAIA (%.1f%%)\n",
			services.FormatPeb(p.TotalFundsRaised),
			services.FormatPeb(p.Goal),
			p.ProgressPercent()))
		if p.Ended(now) {
			b.WriteString("Status: ended\n")
		} else {
			deadline := time.Unix(p.Deadline.Int64(), 0).UTC()
			b.WriteString("Deadline: " + deadline.Format("2006-01-02 15:04 MST") + "\n")
		}
	}
	b.WriteString("\nUse /donate to support a project.")
	return b.String()
}

// explorerTxURL links a transaction hash to the block explorer.
func explorerTxURL(explorerBaseURL, txHash string) string {
	return strings.TrimSuffix(explorerBaseURL, "/") + "/tx/" + txHash
}
