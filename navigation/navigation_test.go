package navigation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	tests := []struct {
		name    string
		screen  Screen
		params  Params
		want    string
		wantErr error
	}{
		{name: "static", screen: AppShell, want: "/(app)/(tabs)"},
		{name: "tracking", screen: OrderTracking, params: Params{"id": "1"}, want: "/orderTracking/1"},
		{name: "escaped", screen: Restaurant, params: Params{"id": "a b"}, want: "/restaurant/a%20b"},
		{name: "missing param", screen: OrderTracking, wantErr: ErrMissingParam},
		{name: "blank param", screen: Restaurant, params: Params{"id": " "}, wantErr: ErrMissingParam},
		{name: "unknown", screen: Screen("/settings"), wantErr: ErrUnknownScreen},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Path(tc.screen, tc.params)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatch(t *testing.T) {
	s, p, err := Match("/orderTracking/42")
	require.NoError(t, err)
	assert.Equal(t, OrderTracking, s)
	assert.Equal(t, "42", p["id"])

	s, _, err = Match("/(auth)/login")
	require.NoError(t, err)
	assert.Equal(t, Login, s)

	_, _, err = Match("/orderTracking/")
	assert.True(t, errors.Is(err, ErrUnknownScreen))
}

func TestNavigator(t *testing.T) {
	n, err := NewNavigator(Login, nil)
	require.NoError(t, err)

	var seen []string
	n.OnChange(func(r Route) { seen = append(seen, r.Path) })

	require.NoError(t, n.Push(Signup, nil))
	assert.Equal(t, Signup, n.Current().Screen)
	require.NoError(t, n.Back())
	assert.Equal(t, Login, n.Current().Screen)

	require.NoError(t, n.Replace(AppShell, nil))
	assert.Equal(t, 1, n.Depth())
	assert.True(t, errors.Is(n.Back(), ErrNoHistory))

	require.NoError(t, n.Push(OrderTracking, Params{"id": "1"}))
	assert.Equal(t, "/orderTracking/1", n.Current().Path)

	assert.Equal(t, []string{"/(auth)/signup", "/(auth)/login", "/(app)/(tabs)", "/orderTracking/1"}, seen)
}

func TestNavigatorRejectsBadRoute(t *testing.T) {
	n, err := NewNavigator(AppShell, nil)
	require.NoError(t, err)
	assert.Error(t, n.Push(Checkout+"x", nil))
	assert.Error(t, n.Push(OrderTracking, nil))
	assert.Equal(t, AppShell, n.Current().Screen)

	_, err = NewNavigator(Screen("nope"), nil)
	assert.True(t, errors.Is(err, ErrUnknownScreen))
}

func TestRouteParamsAreCopied(t *testing.T) {
	n, err := NewNavigator(AppShell, nil)
	require.NoError(t, err)
	p := Params{"id": "1"}
	require.NoError(t, n.Push(Restaurant, p))
	p["id"] = "2"
	assert.Equal(t, "1", n.Current().Params["id"])
}
