package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"delivrya/authclient"
	"delivrya/cart"
	"delivrya/config"
	"delivrya/handlers"
	"delivrya/models"
	"delivrya/navigation"
	"delivrya/tokenstore"
	"delivrya/tracking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idleTimer struct{}

func (idleTimer) Stop() bool { return true }

// idleScheduler never fires, orders stay in preparation
type idleScheduler struct{}

func (idleScheduler) AfterFunc(time.Duration, func()) tracking.Timer { return idleTimer{} }

// eagerScheduler fires right away on its own goroutine
type eagerScheduler struct{}

func (eagerScheduler) AfterFunc(_ time.Duration, f func()) tracking.Timer {
	go f()
	return idleTimer{}
}

func setupRouter(t *testing.T, sched tracking.Scheduler) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB("sqlite", ":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Client{}))
	config.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	handlers.Configure(handlers.Deps{
		DeliveryFee:    cart.DefaultDeliveryFee,
		PublicURL:      "http://delivrya.test",
		TrackerOptions: []tracking.Option{tracking.WithScheduler(sched)},
	})
	t.Cleanup(handlers.StopTracking)
	return NewEngine(nil)
}

func do(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func signupBody(email string) gin.H {
	return gin.H{
		"prenom":     "Amina",
		"nom":        "Alaoui",
		"email":      email,
		"telephone":  "0612345678",
		"motDePasse": "secret",
		"ville":      "Rabat",
		"adresse":    "12 Avenue Hassan II",
		"role":       0,
	}
}

func register(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/clients", signupBody(email), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": email, "motDePasse": "secret", "role": 0}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	w := do(t, r, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
}

func TestSignup(t *testing.T) {
	r := setupRouter(t, idleScheduler{})

	w := do(t, r, http.MethodPost, "/api/clients", signupBody("amina@example.ma"), "")
	require.Equal(t, http.StatusCreated, w.Code)
	client := decode(t, w)["client"].(map[string]any)
	assert.Equal(t, "amina@example.ma", client["email"])
	assert.NotContains(t, client, "PasswordHash")

	w = do(t, r, http.MethodPost, "/api/clients", signupBody("Amina@Example.ma"), "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Cet email est déjà utilisé.", w.Body.String())

	body := signupBody("other@example.ma")
	delete(body, "prenom")
	w = do(t, r, http.MethodPost, "/api/clients", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = signupBody("other@example.ma")
	body["ville"] = "Paris"
	w = do(t, r, http.MethodPost, "/api/clients", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndProfile(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	token := register(t, r, "amina@example.ma")

	w := do(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "amina@example.ma", "motDePasse": "wrong", "role": 0}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/auth/login", gin.H{"email": "nobody@example.ma", "motDePasse": "secret", "role": 0}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Amina Alaoui", decode(t, w)["name"])

	w = do(t, r, http.MethodGet, "/api/profile", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/api/profile", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCatalogRoutes(t *testing.T) {
	r := setupRouter(t, idleScheduler{})

	tests := []struct {
		name  string
		path  string
		code  int
		count float64
	}{
		{name: "all restaurants", path: "/api/restaurants", code: http.StatusOK, count: 3},
		{name: "category all", path: "/api/restaurants?category=1", code: http.StatusOK, count: 3},
		{name: "category", path: "/api/restaurants?category=pastry", code: http.StatusOK, count: 1},
		{name: "cuisine list", path: "/api/restaurants?cuisine=pastry,street", code: http.StatusOK, count: 2},
		{name: "free delivery", path: "/api/restaurants?free_delivery=true", code: http.StatusOK, count: 1},
		{name: "min rating", path: "/api/restaurants?min_rating=4.6", code: http.StatusOK, count: 1},
		{name: "bad rating", path: "/api/restaurants?min_rating=abc", code: http.StatusBadRequest},
		{name: "menu", path: "/api/restaurants/1/menu", code: http.StatusOK, count: 4},
		{name: "menu section", path: "/api/restaurants/1/menu?section=mains", code: http.StatusOK, count: 1},
		{name: "unknown section", path: "/api/restaurants/1/menu?section=brunch", code: http.StatusNotFound},
		{name: "unknown restaurant menu", path: "/api/restaurants/9/menu", code: http.StatusNotFound},
		{name: "reviews", path: "/api/restaurants/1/reviews", code: http.StatusOK, count: 2},
		{name: "search", path: "/api/search?q=couscous", code: http.StatusOK, count: 2},
		{name: "empty search", path: "/api/search", code: http.StatusOK, count: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, http.MethodGet, tc.path, nil, "")
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.code == http.StatusOK {
				assert.Equal(t, tc.count, decode(t, w)["count"])
			}
		})
	}

	w := do(t, r, http.MethodGet, "/api/restaurants/2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Café Maure", decode(t, w)["restaurant"].(map[string]any)["name"])

	w = do(t, r, http.MethodGet, "/api/restaurants/9", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoriesAreLocalized(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	w := do(t, r, http.MethodGet, "/api/categories?locale=ar", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	cats := decode(t, w)["categories"].([]any)
	require.Len(t, cats, 6)
	assert.Equal(t, "الكل", cats[0].(map[string]any)["label"])

	w = do(t, r, http.MethodGet, "/api/categories", nil, "")
	cats = decode(t, w)["categories"].([]any)
	assert.Equal(t, "Tous", cats[0].(map[string]any)["label"])
}

func TestTranslations(t *testing.T) {
	r := setupRouter(t, idleScheduler{})

	w := do(t, r, http.MethodGet, "/api/translations/ar", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["rtl"])
	table := body["translations"].(map[string]any)
	assert.Equal(t, "السلة", table["cart"])

	w = do(t, r, http.MethodGet, "/api/translations/en", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStateMachineInfo(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	w := do(t, r, http.MethodGet, "/api/state-machine", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["state_machine"], 2)
	assert.Equal(t, []any{"delivered"}, body["terminal_states"])
	assert.Equal(t, "preparing", body["initial_state"])
}

func TestCheckoutOptions(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	w := do(t, r, http.MethodGet, "/api/checkout/options", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "cash", body["default_payment_method"])
	assert.Len(t, body["addresses"], 2)
}

func TestQRCode(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	w := do(t, r, http.MethodGet, "/api/orders/1/qrcode", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))

	w = do(t, r, http.MethodGet, "/api/orders/1/qrcode?size=5000", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func placeOrder(t *testing.T, r http.Handler, token string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/orders", gin.H{
		"items": []gin.H{
			{"dish_id": "3", "quantity": 1},
			{"dish_id": "1", "quantity": 1},
		},
		"address_id": "2",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	order := body["order"].(map[string]any)
	assert.Equal(t, "155", order["total"])
	assert.Equal(t, "preparing", order["status"])
	assert.Equal(t, "cash", order["payment_method_id"])
	id := order["id"].(string)
	assert.Equal(t, "/orderTracking/"+id, body["tracking_path"])
	return id
}

func TestOrders(t *testing.T) {
	r := setupRouter(t, idleScheduler{})
	token := register(t, r, "amina@example.ma")
	other := register(t, r, "karim@example.ma")

	w := do(t, r, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{}}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"dish_id": "3", "quantity": 1}, {"dish_id": "7", "quantity": 1}}}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/orders", gin.H{"items": []gin.H{{"dish_id": "3", "quantity": 1}}, "payment_method_id": "bitcoin"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	id := placeOrder(t, r, token)

	w = do(t, r, http.MethodGet, "/api/orders/"+id, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode(t, w)
	assert.Equal(t, true, detail["can_cancel"])
	assert.Equal(t, "15 min", detail["estimated_arrival"])
	assert.Len(t, detail["map"].(map[string]any)["markers"], 2)
	assert.NotContains(t, detail, "courier_contact")

	w = do(t, r, http.MethodGet, "/api/orders", nil, token)
	assert.Equal(t, float64(1), decode(t, w)["count"])

	w = do(t, r, http.MethodGet, "/api/orders/"+id, nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodGet, "/api/orders/999999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPut, "/api/orders/"+id+"/cancel", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/", decode(t, w)["redirect"])

	w = do(t, r, http.MethodGet, "/api/orders/"+id, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/orders", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCancelDeliveredOrder(t *testing.T) {
	r := setupRouter(t, eagerScheduler{})
	token := register(t, r, "amina@example.ma")
	id := placeOrder(t, r, token)

	require.Eventually(t, func() bool {
		w := do(t, r, http.MethodGet, "/api/orders/"+id, nil, token)
		return decode(t, w)["order"].(map[string]any)["status"] == "delivered"
	}, 2*time.Second, 10*time.Millisecond)

	w := do(t, r, http.MethodGet, "/api/orders/"+id, nil, token)
	assert.NotContains(t, decode(t, w), "estimated_arrival")

	w = do(t, r, http.MethodPut, "/api/orders/"+id+"/cancel", nil, token)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "delivered", decode(t, w)["current_state"])
}

func TestCORS(t *testing.T) {
	setupRouter(t, idleScheduler{})
	h := NewHandler(nil)

	for _, headers := range []string{"content-type", "authorization,content-type"} {
		t.Run(headers, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
			req.Header.Set("Origin", "http://localhost:8081")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", headers)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAuthClientAgainstServer(t *testing.T) {
	srv := httptest.NewServer(setupRouter(t, idleScheduler{}))
	defer srv.Close()

	nav, err := navigation.NewNavigator(navigation.Signup, nil)
	require.NoError(t, err)
	store := tokenstore.NewMemory()
	client := authclient.New(authclient.Config{BaseURL: srv.URL}, store, nav, nil)
	ctx := context.Background()

	require.NoError(t, client.Signup(ctx, authclient.SignupForm{
		Prenom: "Amina", Nom: "Alaoui", Email: "amina@example.ma", Telephone: "0612345678",
		MotDePasse: "secret", Ville: "Rabat", Adresse: "12 Avenue Hassan II",
	}))
	assert.Equal(t, navigation.Login, nav.Current().Screen)

	err = client.Signup(ctx, authclient.SignupForm{
		Prenom: "Amina", Nom: "Alaoui", Email: "amina@example.ma", Telephone: "0612345678",
		MotDePasse: "secret", Ville: "Rabat", Adresse: "12 Avenue Hassan II",
	})
	var dup *authclient.DuplicateEmailError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "Cet email est déjà utilisé.", dup.Message)

	_, err = client.Login(ctx, "amina@example.ma", "wrong")
	assert.ErrorIs(t, err, authclient.ErrInvalidCredentials)

	res, err := client.Login(ctx, "amina@example.ma", "secret")
	require.NoError(t, err)
	assert.Equal(t, navigation.AppShell, nav.Current().Screen)
	saved, err := store.Get(ctx, tokenstore.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, res.Token, saved)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/profile", nil)
	require.NoError(t, err)
	require.NoError(t, client.Authorize(ctx, req))
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
