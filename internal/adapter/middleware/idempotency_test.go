package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"library-circulation/internal/domain/actor"
)

// stands in for Auth: the actor id comes straight from a test header
const testActorHeader = "X-Test-Actor"

const (
	bookA   = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	bookB   = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	readerX = "cccccccccccccccccccccccccccccccc"
	key1    = "0123456789abcdef0123456789abcdef"
)

func fakeAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if id := c.Request().Header.Get(testActorHeader); id != "" {
			SetActor(c, actor.Actor{ID: id, Role: actor.RoleLibrarian})
		}
		return next(c)
	}
}

// checkoutServer mounts CheckoutReplay in front of a counting checkout handler.
type checkoutServer struct {
	e     *echo.Echo
	mr    *miniredis.Miniredis
	calls atomic.Int32
}

func newCheckoutServer(t *testing.T, ttl time.Duration, respond func(c echo.Context, n int32) error) *checkoutServer {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := &checkoutServer{e: echo.New(), mr: mr}
	s.e.POST("/loans", func(c echo.Context) error {
		return respond(c, s.calls.Add(1))
	}, fakeAuth, CheckoutReplay(rdb, ttl))
	return s
}

func (s *checkoutServer) checkout(who, idemKey, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/loans", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if who != "" {
		req.Header.Set(testActorHeader, who)
	}
	if idemKey != "" {
		req.Header.Set(HeaderIdempotencyKey, idemKey)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func checkoutBody(bookID, readerID string) string {
	b, _ := json.Marshal(map[string]string{"book_id": bookID, "reader_id": readerID})
	return string(b)
}

// loanCreated answers like the real handler, numbering loans by call.
func loanCreated(c echo.Context, n int32) error {
	return c.JSON(http.StatusCreated, map[string]any{"loan_id": n, "status": "active"})
}

func TestCheckoutReplay_RejectsBadHeaders(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, loanCreated)
	body := checkoutBody(bookA, readerX)

	if rec := s.checkout("lib-1", "", body); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing key: want 400, got %d", rec.Code)
	}
	for _, bad := range []string{"NOT-VALID", strings.ToUpper(key1), "123"} {
		if rec := s.checkout("lib-1", bad, body); rec.Code != http.StatusBadRequest {
			t.Fatalf("key %q: want 400, got %d", bad, rec.Code)
		}
	}
	if rec := s.checkout("", key1, body); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no actor: want 401, got %d", rec.Code)
	}
	if n := s.calls.Load(); n != 0 {
		t.Fatalf("handler ran %d times for rejected requests", n)
	}
}

func TestCheckoutReplay_RetryReturnsStoredLoan(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, loanCreated)
	body := checkoutBody(bookA, readerX)

	first := s.checkout("lib-1", key1, body)
	if first.Code != http.StatusCreated {
		t.Fatalf("first: want 201, got %d", first.Code)
	}
	if first.Header().Get(HeaderReplayed) != "" {
		t.Fatalf("first response must not be marked replayed")
	}

	// whitespace differences still name the same checkout
	retry := s.checkout("lib-1", key1, `{ "reader_id": " `+readerX+`", "book_id": "`+bookA+`" }`)
	if retry.Code != http.StatusCreated {
		t.Fatalf("retry: want 201, got %d", retry.Code)
	}
	if retry.Header().Get(HeaderReplayed) != "true" {
		t.Fatalf("retry not marked replayed")
	}
	if retry.Body.String() != first.Body.String() {
		t.Fatalf("replayed body differs:\n%s\n%s", retry.Body.String(), first.Body.String())
	}
	if n := s.calls.Load(); n != 1 {
		t.Fatalf("handler ran %d times, want 1", n)
	}
}

func TestCheckoutReplay_KeyReusedForOtherBook(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, loanCreated)

	if rec := s.checkout("lib-1", key1, checkoutBody(bookA, readerX)); rec.Code != http.StatusCreated {
		t.Fatalf("first: want 201, got %d", rec.Code)
	}
	rec := s.checkout("lib-1", key1, checkoutBody(bookB, readerX))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("other book: want 422, got %d", rec.Code)
	}
	if n := s.calls.Load(); n != 1 {
		t.Fatalf("handler ran %d times, want 1", n)
	}
}

func TestCheckoutReplay_UnavailableIsReplayed(t *testing.T) {
	const unavailable = `{"error":"book unavailable"}`
	s := newCheckoutServer(t, time.Minute, func(c echo.Context, _ int32) error {
		return c.Blob(http.StatusConflict, echo.MIMEApplicationJSON, []byte(unavailable))
	})
	body := checkoutBody(bookA, readerX)

	for i := 0; i < 2; i++ {
		rec := s.checkout("lib-1", key1, body)
		if rec.Code != http.StatusConflict || rec.Body.String() != unavailable {
			t.Fatalf("attempt %d: got %d %s", i, rec.Code, rec.Body.String())
		}
	}
	if n := s.calls.Load(); n != 1 {
		t.Fatalf("handler ran %d times, want 1", n)
	}
}

func TestCheckoutReplay_OtherOutcomesAreReleased(t *testing.T) {
	cases := map[string]int{
		"not found": http.StatusNotFound,
		"forbidden": http.StatusForbidden,
		"internal":  http.StatusInternalServerError,
	}
	for name, code := range cases {
		t.Run(name, func(t *testing.T) {
			s := newCheckoutServer(t, time.Minute, func(c echo.Context, n int32) error {
				if n == 1 {
					return c.JSON(code, map[string]string{"error": name})
				}
				return loanCreated(c, n)
			})
			body := checkoutBody(bookA, readerX)

			if rec := s.checkout("lib-1", key1, body); rec.Code != code {
				t.Fatalf("first: want %d, got %d", code, rec.Code)
			}
			if s.mr.Exists(replayKey("lib-1", key1)) {
				t.Fatalf("record kept after %d", code)
			}
			if rec := s.checkout("lib-1", key1, body); rec.Code != http.StatusCreated {
				t.Fatalf("retry after %d: want 201, got %d", code, rec.Code)
			}
			if n := s.calls.Load(); n != 2 {
				t.Fatalf("handler ran %d times, want 2", n)
			}
		})
	}
}

func TestCheckoutReplay_ActorsDoNotShareKeys(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, loanCreated)
	body := checkoutBody(bookA, readerX)

	a := s.checkout("lib-1", key1, body)
	b := s.checkout("lib-2", key1, body)
	if a.Code != http.StatusCreated || b.Code != http.StatusCreated {
		t.Fatalf("want 201/201, got %d/%d", a.Code, b.Code)
	}
	if b.Header().Get(HeaderReplayed) != "" {
		t.Fatalf("second actor got another actor's response")
	}
	if n := s.calls.Load(); n != 2 {
		t.Fatalf("handler ran %d times, want 2", n)
	}
}

func TestCheckoutReplay_PendingKey(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, loanCreated)
	pending, _ := json.Marshal(checkoutRecord{BookID: bookA, ReaderID: readerX, Pending: true})
	if err := s.mr.Set(replayKey("lib-1", key1), string(pending)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rec := s.checkout("lib-1", key1, checkoutBody(bookA, readerX))
	if rec.Code != http.StatusConflict || !strings.Contains(rec.Body.String(), "in progress") {
		t.Fatalf("want 409 in progress, got %d %s", rec.Code, rec.Body.String())
	}
	if n := s.calls.Load(); n != 0 {
		t.Fatalf("handler ran while pending")
	}
}

func TestCheckoutReplay_RecordExpires(t *testing.T) {
	s := newCheckoutServer(t, 5*time.Minute, loanCreated)
	body := checkoutBody(bookA, readerX)

	_ = s.checkout("lib-1", key1, body)
	if ttl := s.mr.TTL(replayKey("lib-1", key1)); ttl != 5*time.Minute {
		t.Fatalf("record ttl = %v, want 5m", ttl)
	}
	s.mr.FastForward(6 * time.Minute)

	rec := s.checkout("lib-1", key1, body)
	if rec.Code != http.StatusCreated || rec.Header().Get(HeaderReplayed) != "" {
		t.Fatalf("expired key should run again, got %d replayed=%q", rec.Code, rec.Header().Get(HeaderReplayed))
	}
	if n := s.calls.Load(); n != 2 {
		t.Fatalf("handler ran %d times, want 2", n)
	}
}

func TestCheckoutReplay_MalformedBodyGoesToHandler(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, func(c echo.Context, _ int32) error {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	})

	rec := s.checkout("lib-1", key1, `{"book_id":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want handler's 400, got %d", rec.Code)
	}
	if s.mr.Exists(replayKey("lib-1", key1)) {
		t.Fatalf("malformed request must not reserve the key")
	}
}

func TestCheckoutReplay_StoreDown(t *testing.T) {
	s := newCheckoutServer(t, time.Minute, loanCreated)
	s.mr.Close()

	rec := s.checkout("lib-1", key1, checkoutBody(bookA, readerX))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("want 503, got %d", rec.Code)
	}
	if n := s.calls.Load(); n != 0 {
		t.Fatalf("checkout must not run without the store")
	}
}

func TestValidIdemKey(t *testing.T) {
	for _, k := range []string{
		key1,
		"123e4567-e89b-42d3-a456-426614174000",
	} {
		if !validIdemKey(k) {
			t.Fatalf("%q should be accepted", k)
		}
	}
	for _, k := range []string{
		"",
		"123E4567-E89B-42D3-A456-426614174000",
		"{123e4567-e89b-42d3-a456-426614174000}",
		"urn:uuid:123e4567-e89b-42d3-a456-426614174000",
		"g123456789abcdef0123456789abcdef",
	} {
		if validIdemKey(k) {
			t.Fatalf("%q should be rejected", k)
		}
	}
}
