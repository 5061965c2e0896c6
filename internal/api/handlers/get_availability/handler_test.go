package get_availability

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kairovix/labsched/internal/domain"
	"github.com/kairovix/labsched/pkg/types"
)

func buildRequest(params map[string]string) *url.URL {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	u, _ := url.Parse("/api/v1/equipment/IncuCyte/availability")
	u.RawQuery = q.Encode()
	return u
}

func TestIntervalFromQuery(t *testing.T) {
	t.Run("complete interval", func(t *testing.T) {
		r := httptest.NewRequest("GET", buildRequest(map[string]string{
			"startDate": "2025-10-15",
			"startTime": "09:00 AM",
			"endDate":   "2025-10-15",
			"endTime":   "11:00 AM",
		}).String(), nil)

		interval, err := intervalFromQuery(r)
		require.NoError(t, err)
		require.NotNil(t, interval)
		assert.Equal(t, time.Date(2025, 10, 15, 9, 0, 0, 0, time.Local), interval.Start)
		assert.Equal(t, time.Date(2025, 10, 15, 11, 0, 0, 0, time.Local), interval.End)
	})

	t.Run("all blank means unspecified", func(t *testing.T) {
		r := httptest.NewRequest("GET", buildRequest(nil).String(), nil)

		interval, err := intervalFromQuery(r)
		require.NoError(t, err)
		assert.Nil(t, interval)
	})

	t.Run("partial parameters are an error", func(t *testing.T) {
		r := httptest.NewRequest("GET", buildRequest(map[string]string{
			"startDate": "2025-10-15",
			"startTime": "09:00 AM",
		}).String(), nil)

		_, err := intervalFromQuery(r)
		assert.ErrorIs(t, err, types.ErrInvalidFormat)
	})

	t.Run("unparseable time is an error", func(t *testing.T) {
		r := httptest.NewRequest("GET", buildRequest(map[string]string{
			"startDate": "2025-10-15",
			"startTime": "25:99 XM",
			"endDate":   "2025-10-15",
			"endTime":   "11:00 AM",
		}).String(), nil)

		_, err := intervalFromQuery(r)
		assert.ErrorIs(t, err, types.ErrInvalidFormat)
	})

	t.Run("inverted interval is an error", func(t *testing.T) {
		r := httptest.NewRequest("GET", buildRequest(map[string]string{
			"startDate": "2025-10-15",
			"startTime": "11:00 AM",
			"endDate":   "2025-10-15",
			"endTime":   "09:00 AM",
		}).String(), nil)

		_, err := intervalFromQuery(r)
		assert.ErrorIs(t, err, domain.ErrInvalidInterval)
	})
}
