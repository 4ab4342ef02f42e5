package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"rewardhub/internal/adapters/persistence/models"
	"rewardhub/internal/config"

	"github.com/stretchr/testify/require"
)

func TestNotificationServicePostsForm(t *testing.T) {
	var (
		mu       sync.Mutex
		messages []string
		auth     string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mu.Lock()
		messages = append(messages, r.PostForm.Get("message"))
		auth = r.Header.Get("Authorization")
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	svc := NewNotificationService(config.NotifyConfig{URL: srv.URL, Token: "tok"})
	require.True(t, svc.IsEnabled())

	user := &models.User{Name: "Rahim", Phone: "01711111111"}
	svc.NotifyRecharge(context.Background(), user, &models.Transaction{Reference: "REF-1", Amount: 500, Method: "bkash"})
	svc.NotifyWithdraw(context.Background(), user, &models.Transaction{Reference: "REF-2", Amount: 250, VatTax: 25, NetAmount: 225})

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, messages, 2)
	require.Contains(t, messages[0], "REF-1")
	require.Contains(t, messages[0], "500.00")
	require.Contains(t, messages[1], "225.00")
	require.Equal(t, "Bearer tok", auth)
}

func TestNotificationServiceDisabledWithoutToken(t *testing.T) {
	svc := NewNotificationService(config.NotifyConfig{URL: "http://127.0.0.1:1"})
	require.False(t, svc.IsEnabled())

	// no request is attempted
	svc.NotifyRecharge(context.Background(), &models.User{}, &models.Transaction{})
}
