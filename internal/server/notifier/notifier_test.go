package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeBroadcast(t *testing.T) {
	n := New()
	a := n.Subscribe()
	b := n.Subscribe()

	n.Broadcast()

	select {
	case <-a:
	default:
		t.Fatal("listener a did not receive a ping")
	}
	select {
	case <-b:
	default:
		t.Fatal("listener b did not receive a ping")
	}
}

func TestBroadcastDoesNotBlockOnFullChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()

	// Fill the buffer; subsequent broadcasts must not block.
	n.Broadcast()
	n.Broadcast()
	n.Broadcast()

	<-ch
	select {
	case <-ch:
		t.Fatal("coalesced pings should leave the channel empty after one read")
	default:
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	n := New()
	ch := n.Subscribe()
	n.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)

	// Broadcasting after unsubscribe must not panic.
	n.Broadcast()
}
