package realtime

import (
	"io"
	"testing"

	"homerelief/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewHub(nil, logger, 0)
}

func TestPublishReachesSubscribersOfKind(t *testing.T) {
	hub := newTestHub()

	reports, stopReports := hub.Subscribe(types.KindDamageReport)
	defer stopReports()
	donors, stopDonors := hub.Subscribe(types.KindDonationOffer)
	defer stopDonors()

	ev := types.ChangeEvent{Kind: types.KindDamageReport, Op: types.ChangeOpInsert, ID: "abc"}
	require.Equal(t, 1, hub.Publish(ev))

	require.Equal(t, ev, <-reports)
	select {
	case got := <-donors:
		t.Fatalf("unexpected event %+v", got)
	default:
	}
}

func TestPublishCoalescesForSlowSubscriber(t *testing.T) {
	hub := newTestHub()
	ch, stop := hub.Subscribe(types.KindDamageReport)
	defer stop()

	require.Equal(t, 1, hub.Publish(types.ChangeEvent{Kind: types.KindDamageReport, ID: "1"}))
	require.Equal(t, 0, hub.Publish(types.ChangeEvent{Kind: types.KindDamageReport, ID: "2"}))

	require.Equal(t, "1", (<-ch).ID)
	require.Equal(t, 1, hub.Publish(types.ChangeEvent{Kind: types.KindDamageReport, ID: "3"}))
}

func TestUnsubscribeClosesChannelOnce(t *testing.T) {
	hub := newTestHub()
	ch, stop := hub.Subscribe(types.KindVolunteerOffer)
	require.Equal(t, 1, hub.Subscribers(types.KindVolunteerOffer))

	stop()
	stop()

	_, open := <-ch
	require.False(t, open)
	require.Zero(t, hub.Subscribers(types.KindVolunteerOffer))
	require.Zero(t, hub.Publish(types.ChangeEvent{Kind: types.KindVolunteerOffer}))
}

func TestDecodeEvent(t *testing.T) {
	ev, err := decodeEvent(`{"kind":"donation_offers","op":"update","id":"x1"}`)
	require.NoError(t, err)
	require.Equal(t, types.ChangeEvent{Kind: types.KindDonationOffer, Op: types.ChangeOpUpdate, ID: "x1"}, ev)

	_, err = decodeEvent(`{"kind":"users","op":"insert"}`)
	require.Error(t, err)

	_, err = decodeEvent(`not json`)
	require.Error(t, err)
}
