package server

import (
	"testing"
	"time"

	"homerelief/internal/collection"
	"homerelief/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportView() *collection.View[*types.DamageReport] {
	return collection.NewView(collection.DamageReportSchema(10), &memoryReports{})
}

func TestViewRegistryReusesViewPerUserAndKind(t *testing.T) {
	reg := newViewRegistry(time.Minute)

	key := viewKey{userID: "u1", kind: types.KindDamageReport}
	first := getView(reg, key, newReportView)
	again := getView(reg, key, newReportView)
	other := getView(reg, viewKey{userID: "u2", kind: types.KindDamageReport}, newReportView)

	assert.Same(t, first, again)
	assert.NotSame(t, first, other)
	assert.Equal(t, 2, reg.size())
}

func TestViewRegistrySweepsIdleViews(t *testing.T) {
	now := time.Date(2024, 11, 20, 8, 0, 0, 0, time.UTC)
	reg := newViewRegistry(10 * time.Minute)
	reg.now = func() time.Time { return now }

	idle := viewKey{userID: "u1", kind: types.KindDamageReport}
	live := viewKey{userID: "u1", kind: types.KindDonationOffer}
	getView(reg, idle, newReportView)
	getView(reg, live, func() *collection.View[*types.DonationOffer] {
		return collection.NewView(collection.DonationOfferSchema(10), &memoryDonors{})
	})
	_, ok := reg.attach(live, func() {})
	require.True(t, ok)

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 0, reg.sweep())

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, reg.sweep())
	assert.Equal(t, 1, reg.size())
}

func TestViewRegistryDropStopsListeners(t *testing.T) {
	reg := newViewRegistry(time.Minute)

	key := viewKey{userID: "u1", kind: types.KindDamageReport}
	getView(reg, key, newReportView)
	getView(reg, viewKey{userID: "u2", kind: types.KindDamageReport}, newReportView)

	stopped := 0
	id, ok := reg.attach(key, func() { stopped++ })
	require.True(t, ok)

	reg.detach(key, id)
	_, ok = reg.attach(key, func() { stopped++ })
	require.True(t, ok)

	reg.drop("u1")
	assert.Equal(t, 1, stopped)
	assert.Equal(t, 1, reg.size())

	_, ok = reg.attach(key, func() {})
	assert.False(t, ok)
}

func TestViewRegistryCloseStopsEverything(t *testing.T) {
	reg := newViewRegistry(time.Minute)

	stopped := 0
	for _, user := range []string{"u1", "u2"} {
		key := viewKey{userID: user, kind: types.KindDamageReport}
		getView(reg, key, newReportView)
		_, ok := reg.attach(key, func() { stopped++ })
		require.True(t, ok)
	}

	reg.close()
	assert.Equal(t, 2, stopped)
	assert.Equal(t, 0, reg.size())
}

func TestViewRegistryTouchKeepsViewAlive(t *testing.T) {
	now := time.Date(2024, 11, 20, 8, 0, 0, 0, time.UTC)
	reg := newViewRegistry(10 * time.Minute)
	reg.now = func() time.Time { return now }

	key := viewKey{userID: "u1", kind: types.KindDamageReport}
	getView(reg, key, newReportView)

	now = now.Add(8 * time.Minute)
	reg.touch(key)
	reg.touch(viewKey{userID: "nobody", kind: types.KindDamageReport})

	now = now.Add(8 * time.Minute)
	assert.Equal(t, 0, reg.sweep())
	assert.Equal(t, 1, reg.size())

	now = now.Add(3 * time.Minute)
	assert.Equal(t, 1, reg.sweep())
}
