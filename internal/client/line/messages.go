package line

// Message is any payload the messaging API accepts in a push call.
// Concrete types carry their own "type" discriminator.
type Message interface {
	message()
}

// QuickReply attaches suggestion chips to a message.
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// QuickReplyItem is a single suggestion chip.
type QuickReplyItem struct {
	Type   string `json:"type"`
	Action Action `json:"action"`
}

// Action is either a message action (sends text back on tap) or a URI action
// (opens a link).
type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
	URI   string `json:"uri,omitempty"`
}

// TextMessage is a plain text message with optional quick replies.
type TextMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

func (TextMessage) message() {}

// ImageMessage delivers an image by URL.
type ImageMessage struct {
	Type               string `json:"type"`
	OriginalContentURL string `json:"originalContentUrl"`
	PreviewImageURL    string `json:"previewImageUrl"`
}

func (ImageMessage) message() {}

// NewTextMessage builds a plain text message.
func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

// NewImageMessage builds an image message. The preview falls back to the
// original when no separate preview URL is given.
func NewImageMessage(contentURL, previewURL string) ImageMessage {
	if previewURL == "" {
		previewURL = contentURL
	}
	return ImageMessage{
		Type:               "image",
		OriginalContentURL: contentURL,
		PreviewImageURL:    previewURL,
	}
}

// MessageAction builds a chip that sends text back when tapped.
func MessageAction(label, text string) QuickReplyItem {
	return QuickReplyItem{
		Type:   "action",
		Action: Action{Type: "message", Label: label, Text: text},
	}
}

// URIAction builds a chip that opens a link when tapped.
func URIAction(label, uri string) QuickReplyItem {
	return QuickReplyItem{
		Type:   "action",
		Action: Action{Type: "uri", Label: label, URI: uri},
	}
}
