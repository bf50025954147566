package tgbot

import (
	"context"
	"testing"
)

func TestStop_cancelsUpdateLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	b := Bot{ctx: ctx, cancel: cancel}
	b.Stop()
	select {
	case <-b.ctx.Done():
	default:
		t.Error("Stop() must cancel the update loop context")
	}
}

func TestStop_zeroValue(t *testing.T) {
	var b Bot
	b.Stop()
}
