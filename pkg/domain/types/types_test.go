package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/doorman/pkg/domain/types"
)

func TestUserID(t *testing.T) {
	gt.NoError(t, types.UserID("U123").Validate())
	gt.Error(t, types.UserID("").Validate())
	gt.Value(t, types.UserID("U123").Mention()).Equal("<@U123>")
}

func TestChannelKey(t *testing.T) {
	gt.NoError(t, types.ChannelKey("C123").Validate())
	gt.Error(t, types.ChannelKey("").Validate())

	key := types.MentionChannelKey("U123")
	gt.Value(t, key).Equal(types.ChannelKey("@U123"))
	gt.Bool(t, key.IsMention()).True()
	gt.Bool(t, types.ChannelKey("C123").IsMention()).False()
}
