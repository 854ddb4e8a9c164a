package client

import (
	"context"
	"encoding/json"

	"github.com/giftgroup/backend/internal/common"
	"github.com/giftgroup/backend/internal/model"
	"github.com/giftgroup/backend/pkg/idutil"
	"github.com/giftgroup/backend/pkg/pubsub"
	"github.com/giftgroup/backend/pkg/xcontext"
)

// DrawNotifier tells the members of a group that a draw happened. Callers
// treat it as fire-and-forget.
type DrawNotifier interface {
	NotifyDrawPerformed(ctx context.Context, groupID string, memberIDs []string) error
}

type publisherDrawNotifier struct {
	publisher pubsub.Publisher
	topic     string
}

func NewPublisherDrawNotifier(publisher pubsub.Publisher, topic string) DrawNotifier {
	return &publisherDrawNotifier{publisher: publisher, topic: topic}
}

func (n *publisherDrawNotifier) NotifyDrawPerformed(
	ctx context.Context, groupID string, memberIDs []string,
) error {
	// The event id carries its own timestamp.
	id := idutil.GenerateEventID()
	ev := model.DrawPerformedEvent{
		EventID:     id.String(),
		GroupID:     groupID,
		MemberIDs:   memberIDs,
		PerformedBy: xcontext.RequestUserID(ctx),
		PerformedAt: idutil.TimeOf(id.Int64()).UTC().Format(common.DateTimeLayout),
	}

	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return n.publisher.Publish(ctx, n.topic, &pubsub.Pack{Key: []byte(groupID), Msg: b})
}

type logDrawNotifier struct{}

// NewLogDrawNotifier only logs, it is used when no broker is configured.
func NewLogDrawNotifier() DrawNotifier {
	return logDrawNotifier{}
}

func (logDrawNotifier) NotifyDrawPerformed(ctx context.Context, groupID string, memberIDs []string) error {
	xcontext.Logger(ctx).Infof("Draw performed in group %s for %d members", groupID, len(memberIDs))
	return nil
}
