package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"

	// pending records expire on their own if the process dies mid-checkout
	pendingHold  = 30 * time.Second
	storeTimeout = 2 * time.Second
)

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

// validIdemKey accepts 32-char lowercase hex or a lowercase RFC 4122 uuid.
func validIdemKey(k string) bool {
	if reHex32.MatchString(k) {
		return true
	}
	if len(k) != 36 || k != strings.ToLower(k) {
		return false
	}
	u, err := uuid.Parse(k)
	return err == nil && u.Variant() == uuid.RFC4122
}

// teeWriter copies the handler's response body while it is written.
type teeWriter struct {
	http.ResponseWriter
	body bytes.Buffer
}

func (w *teeWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// replayable outcomes: the loan was created, or the book was already out.
// Anything else is released so a corrected retry runs for real.
func replayable(status int) bool {
	return status == http.StatusCreated || status == http.StatusConflict
}

// CheckoutReplay makes POST /loans safe to retry. The first request for an
// (actor, Idempotency-Key) pair runs; retries with the same book_id and
// reader_id get the stored response, retries naming another book or reader
// are rejected. Must run after Auth.
func CheckoutReplay(rdb *redis.Client, ttl time.Duration) echo.MiddlewareFunc {
	return checkoutReplay(redisReplayStore{rdb: rdb}, ttl)
}

func checkoutReplay(store replayStore, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			idemKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if idemKey == "" {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing " + HeaderIdempotencyKey})
			}
			if !validIdemKey(idemKey) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid " + HeaderIdempotencyKey})
			}
			who, ok := ActorFrom(c)
			if !ok || who.ID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}

			raw, err := io.ReadAll(req.Body)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable body"})
			}
			req.Body = io.NopCloser(bytes.NewReader(raw))
			var target struct {
				BookID   string `json:"book_id"`
				ReaderID string `json:"reader_id"`
			}
			if json.Unmarshal(raw, &target) != nil {
				// let the handler produce its own 400
				return next(c)
			}
			bookID, readerID := strings.TrimSpace(target.BookID), strings.TrimSpace(target.ReaderID)

			key := replayKey(who.ID, idemKey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			reserved, err := store.Reserve(ctx, key, checkoutRecord{
				BookID: bookID, ReaderID: readerID, Pending: true, SavedAt: nowUTC(),
			}, pendingHold)
			if err != nil {
				log.Printf("checkout replay: reserve %s: %v", key, err)
				return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
			}
			if !reserved {
				return replay(ctx, c, store, key, bookID, readerID)
			}

			tw := &teeWriter{ResponseWriter: c.Response().Writer}
			c.Response().Writer = tw
			if err := next(c); err != nil {
				c.Error(err)
			}

			// the request context may already be gone; finish the record anyway
			done, cancelDone := context.WithTimeout(context.Background(), storeTimeout)
			defer cancelDone()
			status := c.Response().Status
			if !replayable(status) {
				if err := store.Release(done, key); err != nil {
					log.Printf("checkout replay: release %s: %v", key, err)
				}
				return nil
			}
			err = store.Save(done, key, checkoutRecord{
				BookID: bookID, ReaderID: readerID, Status: status, Body: tw.body.Bytes(), SavedAt: nowUTC(),
			}, ttl)
			if err != nil {
				log.Printf("checkout replay: save %s: %v", key, err)
			}
			return nil
		}
	}
}

func replay(ctx context.Context, c echo.Context, store replayStore, key, bookID, readerID string) error {
	rec, err := store.Load(ctx, key)
	if errors.Is(err, errNoRecord) {
		// finished and released between Reserve and Load
		return c.JSON(http.StatusConflict, map[string]string{"error": "checkout with this key is being retried, try again"})
	}
	if err != nil {
		log.Printf("checkout replay: load %s: %v", key, err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "idempotency store unavailable"})
	}
	if !rec.sameCheckout(bookID, readerID) {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": HeaderIdempotencyKey + " already used for another checkout"})
	}
	if rec.Pending {
		return c.JSON(http.StatusConflict, map[string]string{"error": "checkout with this key is still in progress"})
	}
	c.Response().Header().Set(HeaderReplayed, "true")
	return c.Blob(rec.Status, echo.MIMEApplicationJSON, rec.Body)
}

func nowUTC() time.Time { return time.Now().UTC() }
