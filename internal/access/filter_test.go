package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kairovix/labsched/internal/domain"
)

var (
	alice = domain.Identity{Email: "alice@example.org", Lab: "Smith Lab"}
	bob   = domain.Identity{Email: "bob@example.org", Lab: "Smith Lab"}
	carol = domain.Identity{Email: "carol@example.org", Lab: "Jones Lab"}
	admin = domain.Identity{Email: "root@example.org", Lab: "Core Facility", IsAdmin: true}
)

func reservationBy(identity domain.Identity) *domain.Reservation {
	return &domain.Reservation{
		ID:             "res-1",
		RequesterEmail: identity.Email,
		Lab:            identity.Lab,
		Equipment:      "Centrifuge",
	}
}

func TestNewFilter(t *testing.T) {
	for _, policy := range []CancelPolicy{CancelOwn, CancelLab} {
		_, err := NewFilter(policy)
		assert.NoError(t, err, string(policy))
	}

	_, err := NewFilter(CancelPolicy("everyone"))
	assert.ErrorIs(t, err, ErrInvalidPolicy)
}

func TestFilter_Visible(t *testing.T) {
	f, err := NewFilter(CancelOwn)
	require.NoError(t, err)

	t.Run("member sees own lab only", func(t *testing.T) {
		visible := f.Visible(alice)
		assert.True(t, visible(reservationBy(bob)), "same lab")
		assert.False(t, visible(reservationBy(carol)), "other lab")
	})

	t.Run("admin sees everything", func(t *testing.T) {
		visible := f.Visible(admin)
		assert.True(t, visible(reservationBy(alice)))
		assert.True(t, visible(reservationBy(carol)))
	})
}

func TestFilter_MayCancel(t *testing.T) {
	t.Run("own policy", func(t *testing.T) {
		f, err := NewFilter(CancelOwn)
		require.NoError(t, err)

		assert.True(t, f.MayCancel(alice, reservationBy(alice)), "own reservation")
		assert.False(t, f.MayCancel(alice, reservationBy(bob)), "lab mate's reservation")
		assert.False(t, f.MayCancel(alice, reservationBy(carol)), "other lab")
	})

	t.Run("lab policy", func(t *testing.T) {
		f, err := NewFilter(CancelLab)
		require.NoError(t, err)

		assert.True(t, f.MayCancel(alice, reservationBy(alice)))
		assert.True(t, f.MayCancel(alice, reservationBy(bob)), "same lab is enough")
		assert.False(t, f.MayCancel(alice, reservationBy(carol)))
	})

	t.Run("admin overrides either policy", func(t *testing.T) {
		for _, policy := range []CancelPolicy{CancelOwn, CancelLab} {
			f, err := NewFilter(policy)
			require.NoError(t, err)
			assert.True(t, f.MayCancel(admin, reservationBy(carol)), string(policy))
		}
	})
}
