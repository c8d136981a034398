package notify

import (
	"context"

	pubnub "github.com/pubnub/go"
)

// PubNubNotifier pushes outcome alerts to a PubNub channel so a browser or
// mobile shell can surface them as transient toasts.
type PubNubNotifier struct {
	pn      *pubnub.PubNub
	channel string
}

func NewPubNubNotifier(pn *pubnub.PubNub, channel string) *PubNubNotifier {
	return &PubNubNotifier{pn: pn, channel: channel}
}

func (n *PubNubNotifier) Notify(ctx context.Context, level Level, message string) {
	n.pn.Publish().
		Channel(n.channel).
		Message(map[string]any{
			"type":    "alert",
			"level":   string(level),
			"message": message,
		}).
		Execute()
}
